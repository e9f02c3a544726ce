// Package main runs the survey collection HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/simple-survey/backend/config"
	"github.com/simple-survey/backend/internal/middleware"
	"github.com/simple-survey/backend/internal/participants"
	"github.com/simple-survey/backend/internal/responses"
	"github.com/simple-survey/backend/internal/survey"
	"github.com/simple-survey/backend/pkg/database"
	"github.com/simple-survey/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if cfg.Admin.Token == "" {
		logger.Warn("ADMIN_TOKEN not set; admin endpoints will refuse all requests")
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// Participants
	participantRepo := participants.NewRepository(pool)
	if err := participants.Seed(ctx, participantRepo, cfg.Survey.SeedPath, logger); err != nil {
		logger.Fatal("seed participants", zap.Error(err))
	}
	participantHandler := participants.NewHandler(participantRepo, logger)

	// Responses
	responseRepo := responses.NewRepository(pool)
	responseHandler := responses.NewHandler(responseRepo, participantRepo, logger)

	// Participant-facing pages
	surveyHandler := survey.NewHandler(participantRepo, responseRepo, cfg.Survey.DefinitionPath, logger)
	templates, err := survey.Templates()
	if err != nil {
		logger.Fatal("parse templates", zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.SetHTMLTemplate(templates)

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Public: survey pages (the token in the link is the only credential)
	router.GET("/", surveyHandler.Home)
	router.GET("/s/:token", surveyHandler.Page)
	router.GET("/thank-you", surveyHandler.ThankYou)

	// Public: survey submission
	router.POST("/api/submit/:token", responseHandler.Submit)

	// Admin API (shared bearer secret)
	admin := router.Group("/api", middleware.AdminAuth(cfg.Admin.Token))
	{
		admin.GET("/participants/", participantHandler.List)
		admin.POST("/participants/", participantHandler.Create)
		admin.GET("/participants/:token", participantHandler.Get)
		admin.PUT("/participants/:token", participantHandler.Update)
		admin.DELETE("/participants/:token", participantHandler.Delete)
		admin.GET("/responses", responseHandler.List)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
