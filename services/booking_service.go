package services

import (
	"errors"
	"time"

	"salonease-backend/models"
	"salonease-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BookingServiceError is a typed service error mapped to an HTTP status at the
// controller boundary.
type BookingServiceError string

func (e BookingServiceError) Error() string { return string(e) }

const (
	ErrBookingNotFound   BookingServiceError = "Booking not found"
	ErrSalonNotFound     BookingServiceError = "Salon not found"
	ErrServiceNotFound   BookingServiceError = "Service not found"
	ErrBookingForbidden  BookingServiceError = "Not authorized"
	ErrInvalidStatus     BookingServiceError = "Invalid status value"
	ErrInvalidTransition BookingServiceError = "Status transition not allowed"
	ErrReviewExists      BookingServiceError = "Review already exists for this booking."
	ErrReviewMissing     BookingServiceError = "No review to update."
	ErrNotCompleted      BookingServiceError = "You can only review completed bookings."
	ErrInvalidRating     BookingServiceError = "Rating must be between 1 and 5"
)

// BookingService owns the booking lifecycle: creation, field updates, status
// transitions, cancellation, and the review operations with their rating
// aggregate side effects.
type BookingService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewBookingService(db *gorm.DB, log *zap.Logger) *BookingService {
	return &BookingService{db: db, log: log}
}

// BookingPatch carries merge-patch fields for the general update operation.
// Nil fields are left untouched.
type BookingPatch struct {
	AppointmentDate *time.Time
	StartTime       *string
	EndTime         *string
	Duration        *int
	StaffID         *uuid.UUID
	TotalAmount     *float64
	Currency        *string
	PaymentStatus   *string
	PaymentMethod   *string
	CustomerNotes   *string
	SalonNotes      *string
}

// Create validates the referenced salon and service and persists a new pending
// booking for the acting customer. Overlapping bookings for the same slot are
// not rejected; there is no availability index.
func (s *BookingService) Create(actor utils.Actor, booking *models.Booking) error {
	var salon models.Salon
	if err := s.db.Where("is_active = ?", true).First(&salon, "id = ?", booking.SalonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSalonNotFound
		}
		return err
	}
	var service models.Service
	if err := s.db.Where("is_active = ?", true).First(&service, "id = ?", booking.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return err
	}

	customerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return ErrBookingForbidden
	}
	booking.CustomerID = customerID
	booking.Status = models.StatusPending

	if err := booking.ValidateSchedule(time.Now()); err != nil {
		return err
	}
	return s.db.Create(booking).Error
}

// GetByID loads a booking with its relations; only the customer, the owning
// salon's owner, or an admin may view it.
func (s *BookingService) GetByID(actor utils.Actor, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Preload("Customer").Preload("Salon").Preload("Service").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !s.canAccess(actor, &booking) {
		return nil, ErrBookingForbidden
	}
	return &booking, nil
}

// ListForCustomer returns the acting customer's bookings.
func (s *BookingService) ListForCustomer(actor utils.Actor) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Salon").Preload("Service").
		Where("customer_id = ?", actor.ID).
		Order("appointment_date desc").
		Find(&bookings).Error
	return bookings, err
}

// ListForSalon returns a salon's bookings for its owner or an admin.
func (s *BookingService) ListForSalon(actor utils.Actor, salonID uuid.UUID) ([]models.Booking, error) {
	var salon models.Salon
	if err := s.db.First(&salon, "id = ?", salonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSalonNotFound
		}
		return nil, err
	}
	if !utils.OwnsOrAdmin(actor, salon.OwnerID.String()) {
		return nil, ErrBookingForbidden
	}
	var bookings []models.Booking
	err := s.db.Preload("Customer").Preload("Service").
		Where("salon_id = ?", salonID).
		Order("appointment_date desc").
		Find(&bookings).Error
	return bookings, err
}

// ListForOwner returns the bookings of the salon owned by the acting user.
func (s *BookingService) ListForOwner(actor utils.Actor) ([]models.Booking, error) {
	var salon models.Salon
	if err := s.db.First(&salon, "owner_id = ?", actor.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSalonNotFound
		}
		return nil, err
	}
	var bookings []models.Booking
	err := s.db.Preload("Customer").Preload("Service").
		Where("salon_id = ?", salon.ID).
		Order("appointment_date desc").
		Find(&bookings).Error
	return bookings, err
}

// Update applies a merge patch and re-runs the schedule validation.
func (s *BookingService) Update(actor utils.Actor, id uuid.UUID, patch BookingPatch) (*models.Booking, error) {
	booking, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(actor, booking) {
		return nil, ErrBookingForbidden
	}

	if patch.AppointmentDate != nil {
		booking.AppointmentDate = *patch.AppointmentDate
	}
	if patch.StartTime != nil {
		booking.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		booking.EndTime = *patch.EndTime
	}
	if patch.Duration != nil {
		booking.Duration = *patch.Duration
	}
	if patch.StaffID != nil {
		booking.StaffID = patch.StaffID
	}
	if patch.TotalAmount != nil {
		booking.TotalAmount = *patch.TotalAmount
	}
	if patch.Currency != nil {
		booking.Currency = *patch.Currency
	}
	if patch.PaymentStatus != nil {
		booking.PaymentStatus = *patch.PaymentStatus
	}
	if patch.PaymentMethod != nil {
		booking.PaymentMethod = *patch.PaymentMethod
	}
	if patch.CustomerNotes != nil {
		booking.CustomerNotes = *patch.CustomerNotes
	}
	if patch.SalonNotes != nil {
		booking.SalonNotes = *patch.SalonNotes
	}

	if err := booking.ValidateSchedule(time.Now()); err != nil {
		return nil, err
	}
	if err := s.db.Save(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateStatus advances the booking state machine. Only the owning salon's
// owner or an admin may transition, and only along declared edges.
func (s *BookingService) UpdateStatus(actor utils.Actor, id uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	booking, err := s.load(id)
	if err != nil {
		return nil, err
	}
	ownerID, err := s.salonOwner(booking.SalonID)
	if err != nil {
		return nil, err
	}
	if !utils.OwnsOrAdmin(actor, ownerID) {
		return nil, ErrBookingForbidden
	}
	if !models.ValidBookingStatus(status) {
		return nil, ErrInvalidStatus
	}
	if !booking.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	updates := map[string]interface{}{"status": status}
	now := time.Now()
	switch status {
	case models.StatusInProgress:
		updates["check_in_time"] = &now
	case models.StatusCompleted:
		updates["check_out_time"] = &now
	}
	if err := s.db.Model(booking).Updates(updates).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel marks the booking cancelled and records who did it. Eligibility
// windows are reported to clients but not enforced here.
func (s *BookingService) Cancel(actor utils.Actor, id uuid.UUID, reason string) error {
	booking, err := s.load(id)
	if err != nil {
		return err
	}
	if !s.canAccess(actor, booking) {
		return ErrBookingForbidden
	}
	now := time.Now()
	return s.db.Model(booking).Updates(map[string]interface{}{
		"status":              models.StatusCancelled,
		"cancellation_date":   &now,
		"cancellation_reason": reason,
		"cancelled_by":        actor.Role,
	}).Error
}

// AddReview attaches the first and only review to a completed booking, then
// folds the rating into the salon and service aggregates. The aggregate writes
// are best-effort; a failure leaves the review in place.
func (s *BookingService) AddReview(actor utils.Actor, bookingID uuid.UUID, rating int, review string) error {
	booking, err := s.load(bookingID)
	if err != nil {
		return err
	}
	if booking.CustomerID.String() != actor.ID {
		return ErrBookingForbidden
	}
	if booking.Status != models.StatusCompleted {
		return ErrNotCompleted
	}
	if booking.HasReview() {
		return ErrReviewExists
	}
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	now := time.Now()
	err = s.db.Model(booking).Updates(map[string]interface{}{
		"rating":      rating,
		"review":      review,
		"review_date": &now,
	}).Error
	if err != nil {
		return err
	}

	s.applyRating(booking, func(r *models.Rating) { r.Add(rating) })
	return nil
}

// UpdateReview overwrites the customer's existing review and adjusts the
// aggregates by replacing the old rating's contribution.
func (s *BookingService) UpdateReview(actor utils.Actor, bookingID uuid.UUID, rating int, review string) error {
	booking, err := s.load(bookingID)
	if err != nil {
		return err
	}
	if booking.CustomerID.String() != actor.ID {
		return ErrBookingForbidden
	}
	if !booking.HasReview() {
		return ErrReviewMissing
	}
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	oldRating := 0
	if booking.Rating != nil {
		oldRating = *booking.Rating
	}
	now := time.Now()
	err = s.db.Model(booking).Updates(map[string]interface{}{
		"rating":      rating,
		"review":      review,
		"review_date": &now,
	}).Error
	if err != nil {
		return err
	}

	s.applyRating(booking, func(r *models.Rating) { r.Replace(oldRating, rating) })
	return nil
}

// DeleteReview clears the review fields and removes the rating from the
// aggregates. Allowed for the reviewing customer or an admin.
func (s *BookingService) DeleteReview(actor utils.Actor, bookingID uuid.UUID) error {
	booking, err := s.load(bookingID)
	if err != nil {
		return err
	}
	if booking.CustomerID.String() != actor.ID && !actor.IsAdmin() {
		return ErrBookingForbidden
	}
	if !booking.HasReview() {
		return ErrReviewMissing
	}

	oldRating := 0
	if booking.Rating != nil {
		oldRating = *booking.Rating
	}
	err = s.db.Model(booking).Updates(map[string]interface{}{
		"rating":      nil,
		"review":      nil,
		"review_date": nil,
	}).Error
	if err != nil {
		return err
	}

	s.applyRating(booking, func(r *models.Rating) { r.Remove(oldRating) })
	return nil
}

// ReviewEntry is the public projection of a reviewed booking. The listings are
// unauthenticated, so nothing beyond the review itself and the reviewer's
// display identity may appear here.
type ReviewEntry struct {
	BookingID  uuid.UUID      `json:"bookingId"`
	Rating     int            `json:"rating"`
	Review     string         `json:"review"`
	ReviewDate time.Time      `json:"reviewDate"`
	Customer   ReviewCustomer `json:"customer"`
}

type ReviewCustomer struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ReviewsForSalon lists a salon's reviews, public.
func (s *BookingService) ReviewsForSalon(salonID uuid.UUID) ([]ReviewEntry, error) {
	var bookings []models.Booking
	err := s.db.Preload("Customer").
		Where("salon_id = ? AND review IS NOT NULL", salonID).
		Order("review_date desc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return projectReviews(bookings), nil
}

// ReviewsForService lists a service's reviews, public.
func (s *BookingService) ReviewsForService(serviceID uuid.UUID) ([]ReviewEntry, error) {
	var bookings []models.Booking
	err := s.db.Preload("Customer").
		Where("service_id = ? AND review IS NOT NULL", serviceID).
		Order("review_date desc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return projectReviews(bookings), nil
}

func projectReviews(bookings []models.Booking) []ReviewEntry {
	entries := make([]ReviewEntry, 0, len(bookings))
	for _, b := range bookings {
		review := b.ReviewOf()
		if review == nil {
			continue
		}
		entry := ReviewEntry{
			BookingID:  b.ID,
			Rating:     review.Rating,
			Review:     review.Review,
			ReviewDate: review.ReviewDate,
		}
		if b.Customer != nil {
			entry.Customer = ReviewCustomer{Name: b.Customer.Name, Avatar: b.Customer.Avatar}
		}
		entries = append(entries, entry)
	}
	return entries
}

func (s *BookingService) load(id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) salonOwner(salonID uuid.UUID) (string, error) {
	var salon models.Salon
	if err := s.db.First(&salon, "id = ?", salonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrSalonNotFound
		}
		return "", err
	}
	return salon.OwnerID.String(), nil
}

// canAccess allows the booking's customer, the owning salon's owner, or an
// admin.
func (s *BookingService) canAccess(actor utils.Actor, booking *models.Booking) bool {
	if utils.OwnsOrAdmin(actor, booking.CustomerID.String()) {
		return true
	}
	ownerID, err := s.salonOwner(booking.SalonID)
	if err != nil {
		return false
	}
	return actor.ID == ownerID
}

// applyRating updates both aggregates inside one helper; failures are logged
// and swallowed, the review write is never rolled back.
func (s *BookingService) applyRating(booking *models.Booking, apply func(*models.Rating)) {
	var salon models.Salon
	if err := s.db.First(&salon, "id = ?", booking.SalonID).Error; err == nil {
		apply(&salon.Rating)
		if err := s.db.Model(&salon).Updates(map[string]interface{}{
			"rating_average": salon.Rating.Average,
			"rating_count":   salon.Rating.Count,
		}).Error; err != nil {
			s.log.Warn("salon rating update failed", zap.String("salon", salon.ID.String()), zap.Error(err))
		}
	}

	var service models.Service
	if err := s.db.First(&service, "id = ?", booking.ServiceID).Error; err == nil {
		apply(&service.Rating)
		if err := s.db.Model(&service).Updates(map[string]interface{}{
			"rating_average": service.Rating.Average,
			"rating_count":   service.Rating.Count,
		}).Error; err != nil {
			s.log.Warn("service rating update failed", zap.String("service", service.ID.String()), zap.Error(err))
		}
	}
}
