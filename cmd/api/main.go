package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/config"
	"catalog-backend/pkg/logger"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// Load từ .env file (development/local)
	// Production sẽ dùng system environment variables
	envErr := godotenv.Load()

	// ========================================
	// LOGGER + CONFIG
	// ========================================
	logger.Init(getEnv("APP_ENV", "development"))
	if envErr != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// ========================================
	// SET GIN MODE
	// ========================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().Str("env", cfg.App.Environment).Str("version", cfg.App.Version).Msg("Starting catalog API")

	// ========================================
	// START SERVER
	// ========================================
	Serve(cfg)
}

// getEnv lấy environment variable với fallback default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
