package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port             string
	BoardHalfWidth   int
	BoardMaxHeight   int
	BotSearchDepth   int
	SessionTTL       time.Duration
	CleanupInterval  time.Duration
	AllowedOrigins   []string
	FrontendURL      string
	JWTSecret        string
	IdentityTTLHours int
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Play-area bounds. The grid is unbounded in principle; these pick the
	// finite window a concrete deployment plays in (columns
	// [-halfWidth, halfWidth], stacks up to maxHeight).
	boardHalfWidth := GetEnvAsInt("BOARD_HALF_WIDTH", 8)
	boardMaxHeight := GetEnvAsInt("BOARD_MAX_HEIGHT", 8)

	botSearchDepth := GetEnvAsInt("BOT_SEARCH_DEPTH", 6)

	sessionTTLMin := GetEnvAsInt("SESSION_TTL_MINUTES", 1440)
	cleanupIntervalMin := GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 60)

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	allowedOrigins := []string{
		frontendURL,
		"http://localhost:5173", // Local development
	}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")
	identityTTLHours := GetEnvAsInt("IDENTITY_TTL_HOURS", 72)

	AppConfig = &Config{
		Port:             port,
		BoardHalfWidth:   boardHalfWidth,
		BoardMaxHeight:   boardMaxHeight,
		BotSearchDepth:   botSearchDepth,
		SessionTTL:       time.Duration(sessionTTLMin) * time.Minute,
		CleanupInterval:  time.Duration(cleanupIntervalMin) * time.Minute,
		AllowedOrigins:   allowedOrigins,
		FrontendURL:      frontendURL,
		JWTSecret:        jwtSecret,
		IdentityTTLHours: identityTTLHours,
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
