package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonease-backend/config"
	"salonease-backend/models"
	"salonease-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	cfg *config.Config
}

func NewAuthController(cfg *config.Config) *AuthController {
	return &AuthController{cfg: cfg}
}

// tokenResponse shapes the authenticated user payload returned on register and
// login; the password never leaves the model layer.
func (a *AuthController) tokenResponse(c *gin.Context, code int, user *models.User) {
	token, err := utils.GenerateToken(a.cfg, user.ID.String(), user.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	c.JSON(code, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":     user.ID,
			"name":   user.Name,
			"email":  user.Email,
			"role":   user.Role,
			"avatar": user.Avatar,
		},
	})
}

// Register creates a user; role defaults to customer and duplicate emails are
// rejected.
func (a *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Role == "" {
		input.Role = models.RoleCustomer
	}
	if !models.ValidRole(input.Role) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid role")
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	var existing models.User
	result := config.DB.Where("email = ?", input.Email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Email already exists.")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password, // hashed in BeforeCreate hook
		Role:     input.Role,
		Phone:    input.Phone,
		IsActive: true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	a.tokenResponse(c, http.StatusCreated, &user)
}

// Login verifies credentials and stamps the last login time.
func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Please provide email and password.")
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	a.tokenResponse(c, http.StatusOK, &user)
}

// Logout is client-side for JWTs; the endpoint exists for API parity.
func (a *AuthController) Logout(c *gin.Context) {
	utils.RespondWithMessage(c, http.StatusOK, "Logged out successfully.")
}

// Profile returns the current user.
func (a *AuthController) Profile(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	var user models.User
	if err := config.DB.First(&user, "id = ?", actor.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "user", user)
}
