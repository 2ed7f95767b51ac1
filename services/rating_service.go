package services

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"salonease-backend/models"
)

// RatingService recomputes the salon and service rating aggregates from the
// source bookings. The incremental updates in BookingService can drift after
// crashes between the review write and the aggregate write; the nightly
// reconciliation heals that.
type RatingService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewRatingService(db *gorm.DB, log *zap.Logger) *RatingService {
	return &RatingService{db: db, log: log}
}

// StartScheduler runs the reconciliation every night at 3 AM.
func (s *RatingService) StartScheduler() {
	c := cron.New()
	c.AddFunc("0 3 * * *", func() {
		s.ReconcileAll()
	})
	c.Start()
	s.log.Info("rating reconciliation scheduler started")
}

// ReconcileAll recomputes every aggregate from scratch.
func (s *RatingService) ReconcileAll() {
	s.log.Info("starting rating reconciliation")

	var salons []models.Salon
	if err := s.db.Find(&salons).Error; err != nil {
		s.log.Error("failed to fetch salons", zap.Error(err))
		return
	}
	for _, salon := range salons {
		if err := s.ReconcileSalon(salon.ID.String()); err != nil {
			s.log.Warn("salon reconciliation failed", zap.String("salon", salon.ID.String()), zap.Error(err))
		}
	}

	var services []models.Service
	if err := s.db.Find(&services).Error; err != nil {
		s.log.Error("failed to fetch services", zap.Error(err))
		return
	}
	for _, service := range services {
		if err := s.ReconcileService(service.ID.String()); err != nil {
			s.log.Warn("service reconciliation failed", zap.String("service", service.ID.String()), zap.Error(err))
		}
	}

	s.log.Info("rating reconciliation finished")
}

// ReconcileSalon recomputes one salon's aggregate from its reviewed bookings.
func (s *RatingService) ReconcileSalon(salonID string) error {
	average, count, err := s.aggregate("salon_id", salonID)
	if err != nil {
		return err
	}
	return s.db.Model(&models.Salon{}).Where("id = ?", salonID).Updates(map[string]interface{}{
		"rating_average": average,
		"rating_count":   count,
	}).Error
}

// ReconcileService recomputes one service's aggregate from its reviewed bookings.
func (s *RatingService) ReconcileService(serviceID string) error {
	average, count, err := s.aggregate("service_id", serviceID)
	if err != nil {
		return err
	}
	return s.db.Model(&models.Service{}).Where("id = ?", serviceID).Updates(map[string]interface{}{
		"rating_average": average,
		"rating_count":   count,
	}).Error
}

func (s *RatingService) aggregate(column, id string) (float64, int, error) {
	var result struct {
		Average float64
		Count   int
	}
	err := s.db.Model(&models.Booking{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(rating) as count").
		Where(column+" = ? AND rating IS NOT NULL", id).
		Scan(&result).Error
	return result.Average, result.Count, err
}
