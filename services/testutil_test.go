package services

import (
	"testing"
	"time"

	"salonease-backend/models"
	"salonease-backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Salon{},
		&models.Service{},
		&models.Booking{},
	))
	return db
}

func newTestService(t *testing.T) (*BookingService, *gorm.DB) {
	db := newTestDB(t)
	return NewBookingService(db, zap.NewNop()), db
}

func makeUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Test " + role,
		Email:    uuid.NewString() + "@example.com",
		Password: "password1",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func makeSalon(t *testing.T, db *gorm.DB, owner *models.User) *models.Salon {
	t.Helper()
	salon := &models.Salon{
		OwnerID:  owner.ID,
		Name:     "Glam",
		Category: "hair",
		IsActive: true,
	}
	require.NoError(t, db.Create(salon).Error)
	return salon
}

func makeCatalogService(t *testing.T, db *gorm.DB, salon *models.Salon) *models.Service {
	t.Helper()
	service := &models.Service{
		SalonID:     salon.ID,
		Name:        "Cut",
		Category:    "hair",
		Subcategory: "haircut",
		Price:       30,
		Duration:    30,
		IsActive:    true,
	}
	require.NoError(t, db.Create(service).Error)
	return service
}

func makeBooking(t *testing.T, db *gorm.DB, customer *models.User, salon *models.Salon, service *models.Service, status models.BookingStatus) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		CustomerID:      customer.ID,
		SalonID:         salon.ID,
		ServiceID:       service.ID,
		AppointmentDate: time.Now().AddDate(0, 0, 1),
		StartTime:       "10:00",
		EndTime:         "10:30",
		Duration:        30,
		Status:          status,
		TotalAmount:     30,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

func actorOf(u *models.User) utils.Actor {
	return utils.Actor{ID: u.ID.String(), Role: u.Role}
}
