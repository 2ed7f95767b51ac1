package models

import (
	"time"

	"salonease-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCustomer   = "customer"
	RoleSalonOwner = "salon_owner"
	RoleAdmin      = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleSalonOwner, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	Role   string `gorm:"type:varchar(20);not null;default:'customer';index" json:"role"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`

	LastLogin *time.Time `json:"lastLogin"`
	IsActive  bool       `gorm:"default:true;index" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
