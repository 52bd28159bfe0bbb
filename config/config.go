package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL      string
	JWTSecret        string
	JWTExpiration    time.Duration
	ServerPort       string
	InviteExpiration time.Duration

	// Geofence reference point and radius used to classify punches
	GeofenceLat     float64
	GeofenceLon     float64
	GeofenceRadiusM float64

	DailyPunchCap     int
	LunchDeductionMin int

	MaxLoginAttempts int
	LockoutDuration  time.Duration
}

func Load() *Config {
	// .env is optional; deployments usually set the environment directly
	_ = godotenv.Load()

	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", "postgresql://postgres@localhost:5432/timeclock"),
		JWTSecret:         getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTExpiration:     24 * time.Hour,
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		InviteExpiration:  7 * 24 * time.Hour, // 7 days
		GeofenceLat:       getEnvFloat("GEOFENCE_LAT", 0),
		GeofenceLon:       getEnvFloat("GEOFENCE_LON", 0),
		GeofenceRadiusM:   getEnvFloat("GEOFENCE_RADIUS", 150),
		DailyPunchCap:     getEnvInt("DAILY_PUNCH_CAP", 4),
		LunchDeductionMin: getEnvInt("LUNCH_DEDUCTION_MIN", 60),
		MaxLoginAttempts:  getEnvInt("MAX_LOGIN_ATTEMPTS", 5),
		LockoutDuration:   15 * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
