package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"salonease-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// bookingTransitions is the closed set of allowed status moves. Terminal states
// have no outgoing edges.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusNoShow},
}

func ValidBookingStatus(status BookingStatus) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status move is in the declared set.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
	PaymentFailed   = "failed"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrTimeOrder         = errors.New("start time must be before end time")
	ErrPastDate          = errors.New("appointment date cannot be in the past")
)

// Review is the optional rating attached to a completed booking. It only comes
// into existence through the add-review operation.
type Review struct {
	Rating     int       `json:"rating"`
	Review     string    `json:"review"`
	ReviewDate time.Time `json:"reviewDate"`
}

type Booking struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null" json:"customerId"`
	SalonID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"salonId"`
	ServiceID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"serviceId"`
	StaffID    *uuid.UUID `gorm:"type:uuid" json:"staffId"`

	AppointmentDate time.Time `gorm:"index;not null" json:"appointmentDate"`
	StartTime       string    `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime         string    `gorm:"type:varchar(5);not null" json:"endTime"`
	Duration        int       `gorm:"not null" json:"duration"` // minutes

	Status BookingStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	TotalAmount   float64 `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	Currency      string  `gorm:"default:'USD'" json:"currency"`
	PaymentStatus string  `gorm:"type:varchar(20);default:'pending'" json:"paymentStatus"`
	PaymentMethod string  `gorm:"type:varchar(20);default:'cash'" json:"paymentMethod"`

	CustomerNotes string `gorm:"type:varchar(500)" json:"customerNotes"`
	SalonNotes    string `gorm:"type:varchar(500)" json:"salonNotes"`

	CancellationReason string     `gorm:"type:varchar(200)" json:"cancellationReason"`
	CancellationDate   *time.Time `json:"cancellationDate"`
	CancelledBy        string     `gorm:"type:varchar(20)" json:"cancelledBy"`

	CheckInTime   *time.Time `json:"checkInTime"`
	CheckOutTime  *time.Time `json:"checkOutTime"`
	IsRescheduled bool       `gorm:"default:false" json:"isRescheduled"`

	// Review fields are nil until AddReview runs; see ReviewOf.
	Rating     *int       `json:"rating"`
	Review     *string    `gorm:"type:varchar(1000)" json:"review"`
	ReviewDate *time.Time `json:"reviewDate"`

	Customer *User    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Salon    *Salon   `gorm:"foreignKey:SalonID" json:"salon,omitempty"`
	Service  *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	return
}

// ValidateSchedule checks the time strings and the appointment date. Called on
// create and general update; status transitions and cancellations skip it so
// past bookings can still be completed.
func (b *Booking) ValidateSchedule(now time.Time) error {
	if !utils.ValidTimeOfDay(b.StartTime) || !utils.ValidTimeOfDay(b.EndTime) {
		return ErrInvalidTimeFormat
	}
	if b.StartTime >= b.EndTime {
		return ErrTimeOrder
	}
	if utils.BeginningOfDay(b.AppointmentDate).Before(utils.BeginningOfDay(now)) {
		return ErrPastDate
	}
	return nil
}

// AppointmentDateTime combines the calendar date with the start time.
func (b *Booking) AppointmentDateTime() time.Time {
	return utils.CombineDateAndTime(b.AppointmentDate, b.StartTime)
}

// EndDateTime combines the calendar date with the end time.
func (b *Booking) EndDateTime() time.Time {
	return utils.CombineDateAndTime(b.AppointmentDate, b.EndTime)
}

func (b *Booking) HasReview() bool {
	return b.Review != nil
}

// ReviewOf returns the attached review, or nil when none exists.
func (b *Booking) ReviewOf() *Review {
	if !b.HasReview() {
		return nil
	}
	r := Review{Review: *b.Review}
	if b.Rating != nil {
		r.Rating = *b.Rating
	}
	if b.ReviewDate != nil {
		r.ReviewDate = *b.ReviewDate
	}
	return &r
}

// CanBeCancelled reports cancellation eligibility. In literal mode a pending
// booking is cancellable at any time; strict mode applies the 24h window to
// pending bookings as well.
func (b *Booking) CanBeCancelled(now time.Time, strict bool) bool {
	hoursUntil := b.AppointmentDateTime().Sub(now).Hours()
	if strict {
		return (b.Status == StatusPending || b.Status == StatusConfirmed) && hoursUntil > 24
	}
	return b.Status == StatusPending || (b.Status == StatusConfirmed && hoursUntil > 24)
}

// CanBeRescheduled mirrors CanBeCancelled with a 2h notice window.
func (b *Booking) CanBeRescheduled(now time.Time, strict bool) bool {
	hoursUntil := b.AppointmentDateTime().Sub(now).Hours()
	if strict {
		return (b.Status == StatusPending || b.Status == StatusConfirmed) && hoursUntil > 2
	}
	return b.Status == StatusPending || (b.Status == StatusConfirmed && hoursUntil > 2)
}

// TimeUntilAppointment buckets the remaining time for display.
func (b *Booking) TimeUntilAppointment(now time.Time) string {
	diff := b.AppointmentDateTime().Sub(now)
	if diff < 0 {
		return "Past"
	}
	if days := utils.DaysBetween(now, b.AppointmentDateTime()); days > 1 {
		return fmt.Sprintf("%d days", days)
	}
	if hours := int(math.Ceil(diff.Hours())); hours > 1 {
		return fmt.Sprintf("%d hours", hours)
	}
	return "Less than 1 hour"
}

// strictCancelWindow selects which reading of the cancellation window the
// serialized canBeCancelled/canBeRescheduled fields report. Set once at boot.
var strictCancelWindow bool

func SetStrictCancelWindow(strict bool) {
	strictCancelWindow = strict
}

// MarshalJSON adds the derived fields the clients expect on every booking read.
func (b Booking) MarshalJSON() ([]byte, error) {
	type alias Booking
	now := time.Now()
	return json.Marshal(struct {
		alias
		AppointmentDateTime  time.Time `json:"appointmentDateTime"`
		EndDateTime          time.Time `json:"endDateTime"`
		TimeUntilAppointment string    `json:"timeUntilAppointment"`
		CanBeCancelled       bool      `json:"canBeCancelled"`
		CanBeRescheduled     bool      `json:"canBeRescheduled"`
	}{
		alias:                alias(b),
		AppointmentDateTime:  b.AppointmentDateTime(),
		EndDateTime:          b.EndDateTime(),
		TimeUntilAppointment: b.TimeUntilAppointment(now),
		CanBeCancelled:       b.CanBeCancelled(now, strictCancelWindow),
		CanBeRescheduled:     b.CanBeRescheduled(now, strictCancelWindow),
	})
}
