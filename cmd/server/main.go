package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"teamcook_backend/internal/database"
	"teamcook_backend/internal/router"
	"teamcook_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize Logger
	utils.InitLogger()

	// Load database configuration from environment variables
	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "teamcook_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "teamcook_password")
	dbName := utils.Getenv("DB_NAME", "teamcook_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	// Initialize Database
	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"} // Default origins
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	// Setup all application routes
	dbConn := database.GetDB()
	reaper := router.Setup(engine, dbConn)

	// Background expiry reaper: converts expired stock lots into waste records.
	reaperInterval, err := time.ParseDuration(utils.Getenv("REAPER_INTERVAL", "1h"))
	if err != nil {
		utils.LogError(err, "Invalid REAPER_INTERVAL, falling back to 1h")
		reaperInterval = time.Hour
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reaper.Run(ctx, reaperInterval)

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "configured_from_env": true})
	utils.LogInfo("Frontend should be configured to make API calls", map[string]interface{}{"url": "http://localhost:" + port + "/api/v1"})

	if err := engine.Run(":" + port); err != nil && err != http.ErrServerClosed {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
