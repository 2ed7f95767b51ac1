package controllers

import (
	"errors"
	"net/http"

	"salonease-backend/config"
	"salonease-backend/models"
	"salonease-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateSalonInput struct {
	Name              string          `json:"name" binding:"required,max=100"`
	Description       string          `json:"description" binding:"max=1000"`
	Category          string          `json:"category" binding:"required"`
	Address           models.Address  `json:"address"`
	Location          models.Location `json:"location"`
	Contact           models.Contact  `json:"contact"`
	WorkingHours      models.JSONB    `json:"workingHours"`
	CancellationHours *int            `json:"cancellationHours"`
}

type UpdateSalonInput struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Category          *string          `json:"category"`
	Address           *models.Address  `json:"address"`
	Location          *models.Location `json:"location"`
	Contact           *models.Contact  `json:"contact"`
	WorkingHours      models.JSONB     `json:"workingHours"`
	IsFeatured        *bool            `json:"isFeatured"`
	IsActive          *bool            `json:"isActive"`
	CancellationHours *int             `json:"cancellationHours"`
}

// CreateSalon registers a salon for the acting owner; one active salon per
// owner, pre-checked here and backed by a unique index on owner_id.
func CreateSalon(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input CreateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.ValidSalonCategory(input.Category) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid category")
		return
	}

	ownerID, err := uuid.Parse(actor.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid user ID")
		return
	}

	var existing models.Salon
	result := config.DB.Where("owner_id = ?", ownerID).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "You already have a registered salon.")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	salon := models.Salon{
		OwnerID:      ownerID,
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		Address:      input.Address,
		Location:     input.Location,
		Contact:      input.Contact,
		WorkingHours: input.WorkingHours,
		IsActive:     true,
	}
	if input.CancellationHours != nil {
		salon.CancellationHours = *input.CancellationHours
	}
	if err := config.DB.Create(&salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create salon")
		return
	}
	utils.RespondWithSuccess(c, http.StatusCreated, "salon", salon)
}

// GetAllSalons lists active salons with optional city/state/category/featured
// filters. Public.
func GetAllSalons(c *gin.Context) {
	query := config.DB.Where("is_active = ?", true)
	if city := c.Query("city"); city != "" {
		query = query.Where("address_city = ?", city)
	}
	if state := c.Query("state"); state != "" {
		query = query.Where("address_state = ?", state)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if featured := c.Query("isFeatured"); featured != "" {
		query = query.Where("is_featured = ?", featured == "true")
	}

	var salons []models.Salon
	if err := query.Preload("Owner").Find(&salons).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve salons")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "salons", salons)
}

// GetSalonByID returns one active salon. Public.
func GetSalonByID(c *gin.Context) {
	id, ok := pathUUID(c, "id", "salon")
	if !ok {
		return
	}
	var salon models.Salon
	err := config.DB.Preload("Owner").Where("is_active = ?", true).
		First(&salon, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "salon", salon)
}

// GetSalonByOwner returns the acting owner's salon.
func GetSalonByOwner(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	var salon models.Salon
	if err := config.DB.First(&salon, "owner_id = ?", actor.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Salon not found for this owner")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "salon", salon)
}

// UpdateSalon applies a merge patch; owner or admin only. The owner reference
// can never change.
func UpdateSalon(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	id, ok := pathUUID(c, "id", "salon")
	if !ok {
		return
	}

	var salon models.Salon
	err := config.DB.First(&salon, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.OwnsOrAdmin(actor, salon.OwnerID.String()) {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	var input UpdateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		salon.Name = *input.Name
	}
	if input.Description != nil {
		salon.Description = *input.Description
	}
	if input.Category != nil {
		if !models.ValidSalonCategory(*input.Category) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid category")
			return
		}
		salon.Category = *input.Category
	}
	if input.Address != nil {
		salon.Address = *input.Address
	}
	if input.Location != nil {
		salon.Location = *input.Location
	}
	if input.Contact != nil {
		salon.Contact = *input.Contact
	}
	if input.WorkingHours != nil {
		salon.WorkingHours = input.WorkingHours
	}
	if input.IsFeatured != nil {
		salon.IsFeatured = *input.IsFeatured
	}
	if input.IsActive != nil {
		salon.IsActive = *input.IsActive
	}
	if input.CancellationHours != nil {
		salon.CancellationHours = *input.CancellationHours
	}

	if err := config.DB.Save(&salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update salon")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "salon", salon)
}

// DeleteSalon soft deletes; owner or admin only.
func DeleteSalon(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	id, ok := pathUUID(c, "id", "salon")
	if !ok {
		return
	}

	var salon models.Salon
	err := config.DB.First(&salon, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.OwnsOrAdmin(actor, salon.OwnerID.String()) {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return
	}

	if err := config.DB.Model(&salon).Update("is_active", false).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete salon")
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Salon deleted (soft delete).")
}
