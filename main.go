package main

import (
	"os"
	"path/filepath"

	"salonease-backend/config"
	"salonease-backend/models"
	"salonease-backend/routes"
	"salonease-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// no .env in production, the environment is already set there
	_ = godotenv.Load()

	cfg := config.Load()
	config.InitLogger(cfg)
	defer config.Log.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	config.ConnectDB(cfg)
	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Salon{},
		&models.Service{},
		&models.Booking{},
	); err != nil {
		config.Log.Fatal("migration failed", zap.Error(err))
	}

	models.SetStrictCancelWindow(cfg.StrictCancelWindow)

	for _, dir := range []string{"users", "salons", "generic"} {
		if err := os.MkdirAll(filepath.Join(cfg.UploadPath, dir), 0o755); err != nil {
			config.Log.Fatal("failed to create upload directory", zap.String("dir", dir), zap.Error(err))
		}
	}

	services.NewRatingService(config.DB, config.Log).StartScheduler()

	r := routes.SetupRouter(cfg)
	config.Log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))
	if err := r.Run(":" + cfg.Port); err != nil {
		config.Log.Fatal("server exited", zap.Error(err))
	}
}
