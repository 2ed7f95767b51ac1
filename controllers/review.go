package controllers

import (
	"net/http"

	"salonease-backend/services"
	"salonease-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AddReviewInput struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Review    string    `json:"review" binding:"required,max=1000"`
}

type UpdateReviewInput struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Review string `json:"review" binding:"required,max=1000"`
}

type ReviewController struct {
	svc *services.BookingService
}

func NewReviewController(svc *services.BookingService) *ReviewController {
	return &ReviewController{svc: svc}
}

// Add attaches a review to a completed booking; first review wins.
func (r *ReviewController) Add(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input AddReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := r.svc.AddReview(actor, input.BookingID, input.Rating, input.Review); err != nil {
		respondBookingError(c, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusCreated, "Review added.")
}

// Update overwrites the customer's own review.
func (r *ReviewController) Update(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	bookingID, ok := pathUUID(c, "bookingId", "booking")
	if !ok {
		return
	}

	var input UpdateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := r.svc.UpdateReview(actor, bookingID, input.Rating, input.Review); err != nil {
		respondBookingError(c, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Review updated.")
}

// Delete clears a review; the reviewing customer or an admin.
func (r *ReviewController) Delete(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	bookingID, ok := pathUUID(c, "bookingId", "booking")
	if !ok {
		return
	}

	if err := r.svc.DeleteReview(actor, bookingID); err != nil {
		respondBookingError(c, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Review deleted.")
}

// ListForSalon returns a salon's reviews. Public.
func (r *ReviewController) ListForSalon(c *gin.Context) {
	salonID, ok := pathUUID(c, "salonId", "salon")
	if !ok {
		return
	}
	reviews, err := r.svc.ReviewsForSalon(salonID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "reviews", reviews)
}

// ListForService returns a service's reviews. Public.
func (r *ReviewController) ListForService(c *gin.Context) {
	serviceID, ok := pathUUID(c, "serviceId", "service")
	if !ok {
		return
	}
	reviews, err := r.svc.ReviewsForService(serviceID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "reviews", reviews)
}
