package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"salonease-backend/config"
	"salonease-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
}

type UploadController struct {
	cfg *config.Config
}

func NewUploadController(cfg *config.Config) *UploadController {
	return &UploadController{cfg: cfg}
}

// saveImage validates and stores a multipart image, returning its public URL.
// Filenames carry a timestamp so concurrent uploads never collide.
func (u *UploadController) saveImage(c *gin.Context, field, subdir, prefix string) (string, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "No file uploaded")
		return "", false
	}
	if file.Size > u.cfg.MaxFileSize {
		utils.RespondWithError(c, http.StatusBadRequest, "File too large")
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		utils.RespondWithError(c, http.StatusBadRequest, "Only image files are allowed")
		return "", false
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		utils.RespondWithError(c, http.StatusBadRequest, "Only image files are allowed")
		return "", false
	}

	filename := fmt.Sprintf("%s_%d%s", prefix, time.Now().UnixMilli(), ext)
	dest := filepath.Join(u.cfg.UploadPath, subdir, filename)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save file")
		return "", false
	}
	return fmt.Sprintf("/uploads/%s/%s", subdir, filename), true
}

// Avatar stores a user avatar image.
func (u *UploadController) Avatar(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	url, ok := u.saveImage(c, "file", "users", "avatar_"+actor.ID)
	if !ok {
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "url", url)
}

// SalonImage stores an image under the salon's namespace.
func (u *UploadController) SalonImage(c *gin.Context) {
	salonID := c.Param("salonId")
	if _, err := uuid.Parse(salonID); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salon ID format")
		return
	}
	url, ok := u.saveImage(c, "file", "salons", "salon_"+salonID)
	if !ok {
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "url", url)
}

// Image stores a generic image.
func (u *UploadController) Image(c *gin.Context) {
	url, ok := u.saveImage(c, "file", "generic", "image_"+uuid.NewString()[:8])
	if !ok {
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "imageUrl", url)
}
