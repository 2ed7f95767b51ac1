package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonease-backend/models"
	"salonease-backend/services"
	"salonease-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateBookingInput struct {
	SalonID         uuid.UUID  `json:"salonId" binding:"required"`
	ServiceID       uuid.UUID  `json:"serviceId" binding:"required"`
	StaffID         *uuid.UUID `json:"staffId"`
	AppointmentDate time.Time  `json:"appointmentDate" binding:"required"`
	StartTime       string     `json:"startTime" binding:"required"`
	EndTime         string     `json:"endTime" binding:"required"`
	Duration        int        `json:"duration" binding:"required,min=5"`
	TotalAmount     float64    `json:"totalAmount" binding:"min=0"`
	Currency        string     `json:"currency"`
	PaymentMethod   string     `json:"paymentMethod"`
	CustomerNotes   string     `json:"customerNotes" binding:"max=500"`
}

type UpdateBookingInput struct {
	AppointmentDate *time.Time  `json:"appointmentDate"`
	StartTime       *string     `json:"startTime"`
	EndTime         *string     `json:"endTime"`
	Duration        *int        `json:"duration"`
	StaffID         *uuid.UUID  `json:"staffId"`
	TotalAmount     *float64    `json:"totalAmount"`
	Currency        *string     `json:"currency"`
	PaymentStatus   *string     `json:"paymentStatus"`
	PaymentMethod   *string     `json:"paymentMethod"`
	CustomerNotes   *string     `json:"customerNotes"`
	SalonNotes      *string     `json:"salonNotes"`
}

type UpdateBookingStatusInput struct {
	Status string `json:"status" binding:"required"`
}

type CancelBookingInput struct {
	Reason string `json:"reason" binding:"max=200"`
}

type BookingController struct {
	svc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{svc: svc}
}

// respondBookingError translates lifecycle errors into the response envelope.
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrSalonNotFound),
		errors.Is(err, services.ErrServiceNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrBookingForbidden):
		utils.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrReviewExists),
		errors.Is(err, services.ErrReviewMissing),
		errors.Is(err, services.ErrNotCompleted),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, models.ErrInvalidTimeFormat),
		errors.Is(err, models.ErrTimeOrder),
		errors.Is(err, models.ErrPastDate):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Something went wrong")
	}
}

func bookingID(c *gin.Context) (uuid.UUID, bool) {
	return pathUUID(c, "id", "booking")
}

// Create makes a new pending booking for the acting customer.
func (b *BookingController) Create(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking := models.Booking{
		SalonID:         input.SalonID,
		ServiceID:       input.ServiceID,
		StaffID:         input.StaffID,
		AppointmentDate: input.AppointmentDate,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Duration:        input.Duration,
		TotalAmount:     input.TotalAmount,
		CustomerNotes:   input.CustomerNotes,
	}
	if input.Currency != "" {
		booking.Currency = input.Currency
	}
	if input.PaymentMethod != "" {
		booking.PaymentMethod = input.PaymentMethod
	}

	if err := b.svc.Create(actor, &booking); err != nil {
		respondBookingError(c, err)
		return
	}
	utils.RespondWithSuccess(c, http.StatusCreated, "booking", booking)
}

// Get returns one booking for its customer, salon owner, or an admin.
func (b *BookingController) Get(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	id, ok := bookingID(c)
	if !ok {
		return
	}
	booking, err := b.svc.GetByID(actor, id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "booking", booking)
}

// ListForUser returns the acting customer's bookings.
func (b *BookingController) ListForUser(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	bookings, err := b.svc.ListForCustomer(actor)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "bookings", bookings)
}

// ListForSalon returns a salon's bookings; owner or admin.
func (b *BookingController) ListForSalon(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	salonID, ok := pathUUID(c, "salonId", "salon")
	if !ok {
		return
	}
	bookings, err := b.svc.ListForSalon(actor, salonID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "bookings", bookings)
}

// ListForCurrentSalon returns the acting owner's salon bookings.
func (b *BookingController) ListForCurrentSalon(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	bookings, err := b.svc.ListForOwner(actor)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "bookings", bookings)
}

// Update merge-patches booking fields; customer, owner, or admin.
func (b *BookingController) Update(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var input UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := b.svc.Update(actor, id, services.BookingPatch{
		AppointmentDate: input.AppointmentDate,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Duration:        input.Duration,
		StaffID:         input.StaffID,
		TotalAmount:     input.TotalAmount,
		Currency:        input.Currency,
		PaymentStatus:   input.PaymentStatus,
		PaymentMethod:   input.PaymentMethod,
		CustomerNotes:   input.CustomerNotes,
		SalonNotes:      input.SalonNotes,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "booking", booking)
}

// UpdateStatus advances the state machine; owner or admin.
func (b *BookingController) UpdateStatus(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var input UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status value")
		return
	}

	booking, err := b.svc.UpdateStatus(actor, id, models.BookingStatus(input.Status))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "booking", booking)
}

// Cancel cancels a booking; customer, owner, or admin.
func (b *BookingController) Cancel(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var input CancelBookingInput
	c.ShouldBindJSON(&input) // reason is optional; an empty body is fine

	if err := b.svc.Cancel(actor, id, input.Reason); err != nil {
		respondBookingError(c, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Booking cancelled.")
}
