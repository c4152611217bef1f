package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port              string
	DatabasePath      string
	JWTSecret         string
	AccessTokenExpiry time.Duration
	CORSOrigins       []string
	CardImagesDir     string
	FrontendDistPath  string
	LoginRatePerMin   int
}

var Cfg *AppConfig

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: no .env file found, relying on OS environment variables and defaults")
	}

	jwtSecret := getEnv("JWT_SECRET", "insecure-dev-only-jwt-secret-change-me-in-production")
	if jwtSecret == "insecure-dev-only-jwt-secret-change-me-in-production" {
		log.Println("WARNING: Using default insecure JWT_SECRET. Set JWT_SECRET environment variable for production.")
	}

	accessTokenExpiryStr := getEnv("ACCESS_TOKEN_EXPIRY", "24h")
	accessTokenExpiry, err := time.ParseDuration(accessTokenExpiryStr)
	if err != nil {
		log.Printf("WARNING: Invalid ACCESS_TOKEN_EXPIRY format '%s'. Using default 24h. Error: %v", accessTokenExpiryStr, err)
		accessTokenExpiry = 24 * time.Hour
	}

	var corsOrigins []string
	if raw := getEnv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		corsOrigins = strings.Split(raw, ",")
	} else {
		corsOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}

	Cfg = &AppConfig{
		Port:              getEnv("PORT", "8080"),
		DatabasePath:      getEnv("DB_PATH", "./cardfolio.db"),
		JWTSecret:         jwtSecret,
		AccessTokenExpiry: accessTokenExpiry,
		CORSOrigins:       corsOrigins,
		CardImagesDir:     getEnv("CARD_IMAGES_DIR", "./data/card_images"),
		FrontendDistPath:  getEnv("FRONTEND_DIST_PATH", ""),
		LoginRatePerMin:   getEnvAsInt("LOGIN_RATE_PER_MIN", 10),
	}

	log.Printf("Configuration loaded: Port=%s, DBPath=%s, TokenExpiry=%s",
		Cfg.Port, Cfg.DatabasePath, Cfg.AccessTokenExpiry)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}
