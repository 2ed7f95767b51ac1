package controllers

import (
	"errors"
	"net/http"

	"salonease-backend/config"
	"salonease-backend/models"
	"salonease-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateServiceInput struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=500"`
	Category    string  `json:"category" binding:"required"`
	Subcategory string  `json:"subcategory" binding:"required"`
	Price       float64 `json:"price" binding:"min=0"`
	Currency    string  `json:"currency"`
	Duration    int     `json:"duration" binding:"required,min=5"`
}

type UpdateServiceInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Subcategory *string  `json:"subcategory"`
	Price       *float64 `json:"price"`
	Currency    *string  `json:"currency"`
	Duration    *int     `json:"duration"`
	IsActive    *bool    `json:"isActive"`
}

// loadOwnedService fetches a service together with its salon and checks the
// acting user controls it.
func loadOwnedService(c *gin.Context, actor utils.Actor) (*models.Service, bool) {
	id, ok := pathUUID(c, "id", "service")
	if !ok {
		return nil, false
	}
	var service models.Service
	err := config.DB.Preload("Salon").First(&service, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	// services are owner-only; admins manage salons, not their catalogs
	if service.Salon == nil || actor.ID != service.Salon.OwnerID.String() {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized")
		return nil, false
	}
	return &service, true
}

// CreateService attaches a new service to the acting owner's salon.
func CreateService(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.ValidSalonCategory(input.Category) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid category")
		return
	}
	if !models.ValidServiceSubcategory(input.Subcategory) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid subcategory")
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "owner_id = ?", actor.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Salon not found for this owner.")
		return
	}

	service := models.Service{
		SalonID:     salon.ID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Price:       input.Price,
		Duration:    input.Duration,
		IsActive:    true,
	}
	if input.Currency != "" {
		service.Currency = input.Currency
	}
	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}
	utils.RespondWithSuccess(c, http.StatusCreated, "service", service)
}

// GetServiceByID returns one active service. Public.
func GetServiceByID(c *gin.Context) {
	id, ok := pathUUID(c, "id", "service")
	if !ok {
		return
	}
	var service models.Service
	err := config.DB.Preload("Salon").Where("is_active = ?", true).
		First(&service, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "service", service)
}

// GetServicesBySalon lists a salon's active services. Public.
func GetServicesBySalon(c *gin.Context) {
	salonID, ok := pathUUID(c, "salonId", "salon")
	if !ok {
		return
	}
	var services []models.Service
	err := config.DB.Where("salon_id = ? AND is_active = ?", salonID, true).
		Find(&services).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "services", services)
}

// GetServicesByCurrentSalon lists all services of the acting owner's salon,
// inactive included.
func GetServicesByCurrentSalon(c *gin.Context) {
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
	var services []models.Service
	if err := config.DB.Where("salon_id = ?", salon.ID).Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "services", services)
}

// UpdateService applies a merge patch; owning salon's owner only.
func UpdateService(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	service, ok := loadOwnedService(c, actor)
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Category != nil {
		if !models.ValidSalonCategory(*input.Category) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid category")
			return
		}
		service.Category = *input.Category
	}
	if input.Subcategory != nil {
		if !models.ValidServiceSubcategory(*input.Subcategory) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid subcategory")
			return
		}
		service.Subcategory = *input.Subcategory
	}
	if input.Price != nil {
		if *input.Price < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Price cannot be negative")
			return
		}
		service.Price = *input.Price
	}
	if input.Currency != nil {
		service.Currency = *input.Currency
	}
	if input.Duration != nil {
		if *input.Duration < 5 {
			utils.RespondWithError(c, http.StatusBadRequest, "Duration must be at least 5 minutes")
			return
		}
		service.Duration = *input.Duration
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	service.Salon = nil // avoid writing the association back
	if err := config.DB.Save(service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "service", service)
}

// DeleteService soft deletes; owning salon's owner only.
func DeleteService(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	service, ok := loadOwnedService(c, actor)
	if !ok {
		return
	}
	if err := config.DB.Model(service).Update("is_active", false).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Service deleted (soft delete).")
}
