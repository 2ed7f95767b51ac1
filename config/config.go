package config

import (
	"os"
	"strconv"
	"strings"
)

// Config carries all runtime settings. It is populated once at boot and passed
// by reference; nothing mutates it afterwards.
type Config struct {
	Port        string
	Environment string
	DatabaseURL string

	JWTSecret      string
	JWTExpiryHours int

	UploadPath  string
	MaxFileSize int64

	CORSOrigins []string

	// StrictCancelWindow applies the cancellation notice window to pending
	// bookings too, instead of only to confirmed ones.
	StrictCancelWindow bool
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		DatabaseURL:        getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=salonease port=5432 sslmode=disable"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTExpiryHours:     getEnvInt("JWT_EXPIRY_HOURS", 72),
		UploadPath:         getEnv("UPLOAD_PATH", "./uploads"),
		MaxFileSize:        int64(getEnvInt("MAX_FILE_SIZE", 5*1024*1024)),
		CORSOrigins:        strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		StrictCancelWindow: getEnvBool("STRICT_CANCEL_WINDOW", false),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
