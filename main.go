package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"epl-api/config"
	_ "epl-api/docs" // Swagger docs
	"epl-api/packages/auth"
	"epl-api/packages/core"
	"epl-api/packages/core/cron"
	"epl-api/packages/core/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           EPL API
// @version         1.0
// @description     Football league content and statistics API with JWT authentication
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	config.SetupLogger(cfg.LogLevel, cfg.Server.GinMode)
	gin.SetMode(cfg.Server.GinMode)

	config.ConnectDatabase(cfg.Database)
	clock := clockwork.NewRealClock()

	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger())
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	authModule := auth.NewModule(config.DB, cfg.Auth, cfg.Mail, clock)
	authModule.SetupRoutes(r)

	coreModule := core.NewModule(config.DB, cfg.League, clock, core.Guard{
		Authenticated: authModule.RequireAuth(),
		Admin:         authModule.RequireAdmin(),
	})
	coreModule.SetupRoutes(r)

	scheduler := cron.NewScheduler()
	if err := coreModule.RegisterJobs(scheduler, cfg.League); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule match sweep")
	}
	if err := scheduler.Register("refresh-token-cleanup", cfg.League.TokenCleanupCron, authModule.CleanExpiredTokens); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule token cleanup")
	}
	scheduler.Start()

	// Swagger endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", healthHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	scheduler.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Message  string `json:"message" example:"Server is running"`
	Database string `json:"database" example:"connected"`
}

// @Summary Health Check
// @Description Check if the server is running and database is connected
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func healthHandler(c *gin.Context) {
	status, state := http.StatusOK, "connected"
	if sqlDB, err := config.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status, state = http.StatusServiceUnavailable, "unreachable"
	}
	c.JSON(status, HealthResponse{
		Message:  "Server is running",
		Database: state,
	})
}
