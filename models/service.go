package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ServiceSubcategories = []string{
	"haircut", "coloring", "styling", "manicure", "pedicure", "facial",
	"massage", "waxing", "makeup", "eyebrows", "lashes", "other",
}

func ValidServiceSubcategory(subcategory string) bool {
	for _, s := range ServiceSubcategories {
		if s == subcategory {
			return true
		}
	}
	return false
}

type Service struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Category    string `gorm:"type:varchar(20);index;not null" json:"category"`
	Subcategory string `gorm:"type:varchar(20);not null" json:"subcategory"`

	Price    float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Currency string  `gorm:"default:'USD'" json:"currency"`
	Duration int     `gorm:"not null" json:"duration"` // minutes

	Rating Rating `gorm:"embedded;embeddedPrefix:rating_" json:"rating"`

	IsActive bool `gorm:"default:true;index" json:"isActive"`

	Salon *Salon `gorm:"foreignKey:SalonID" json:"salon,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
