package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var SalonCategories = []string{"hair", "nail", "spa", "massage", "beauty", "barber", "wellness", "other"}

func ValidSalonCategory(category string) bool {
	for _, c := range SalonCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Address struct {
	Street  string `json:"street"`
	City    string `gorm:"index" json:"city"`
	State   string `gorm:"index" json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `gorm:"default:'United States'" json:"country"`
}

type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Rating is the derived {average, count} aggregate kept on salons and services.
// It is maintained incrementally on review writes and recomputed nightly.
type Rating struct {
	Average float64 `gorm:"default:0" json:"average"`
	Count   int     `gorm:"default:0" json:"count"`
}

// Add folds a new rating into the weighted running average.
func (r *Rating) Add(value int) {
	total := r.Average*float64(r.Count) + float64(value)
	r.Count++
	r.Average = total / float64(r.Count)
}

// Replace swaps an old rating for a new one without changing the count.
func (r *Rating) Replace(oldValue, newValue int) {
	if r.Count == 0 {
		return
	}
	total := r.Average*float64(r.Count) - float64(oldValue) + float64(newValue)
	r.Average = total / float64(r.Count)
}

// Remove takes a rating back out of the aggregate.
func (r *Rating) Remove(value int) {
	if r.Count <= 1 {
		r.Average = 0
		r.Count = 0
		return
	}
	total := r.Average*float64(r.Count) - float64(value)
	r.Count--
	r.Average = total / float64(r.Count)
}

type Salon struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"ownerId"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Logo        string `json:"logo"`
	Category    string `gorm:"type:varchar(20);index;not null" json:"category"`

	Address  Address  `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Location Location `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Contact  Contact  `gorm:"embedded;embeddedPrefix:contact_" json:"contact"`

	WorkingHours JSONB `gorm:"type:jsonb;default:'{}'" json:"workingHours"`

	Rating Rating `gorm:"embedded;embeddedPrefix:rating_" json:"rating"`

	IsVerified bool `gorm:"default:false" json:"isVerified"`
	IsFeatured bool `gorm:"default:false;index" json:"isFeatured"`
	IsActive   bool `gorm:"default:true;index" json:"isActive"`

	CancellationHours int `gorm:"default:24" json:"cancellationHours"`

	Owner    *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Services []Service `gorm:"foreignKey:SalonID" json:"services,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Salon) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.WorkingHours == nil {
		s.WorkingHours = DefaultWorkingHours()
	}
	return
}

func DefaultWorkingHours() JSONB {
	hours := JSONB{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		hours[day] = map[string]interface{}{"isOpen": true, "openTime": "09:00", "closeTime": "20:00"}
	}
	hours["saturday"] = map[string]interface{}{"isOpen": true, "openTime": "09:00", "closeTime": "21:00"}
	hours["sunday"] = map[string]interface{}{"isOpen": false, "openTime": "10:00", "closeTime": "19:00"}
	return hours
}
