// Package main runs the spin-the-wheel coupon HTTP server with graceful shutdown.
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

	"github.com/zootechx/spinwheel-backend/config"
	"github.com/zootechx/spinwheel-backend/internal/middleware"
	"github.com/zootechx/spinwheel-backend/internal/notify"
	"github.com/zootechx/spinwheel-backend/internal/spins"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	store := spins.NewStore(cfg.Store.FilePath, logger)

	emailSender := notify.NewResendSender(cfg.Email.APIKey, cfg.Email.FromAddress, cfg.Email.SiteURL, logger)
	smsProviders := []notify.SMSProvider{
		notify.NewFast2SMS(cfg.SMS.Fast2SMSAPIKey),
		notify.NewMSG91(cfg.SMS.MSG91AuthKey, cfg.SMS.MSG91SenderID),
		notify.NewTwilio(cfg.SMS.TwilioAccountSID, cfg.SMS.TwilioAuthToken, cfg.SMS.TwilioPhone, logger),
	}
	dispatcher := notify.NewDispatcher(emailSender, smsProviders, logger)

	service := spins.NewService(store, dispatcher, logger)
	handler := spins.NewHandler(service, store, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Server is running"})
	})

	// Spin + reporting
	api := router.Group("/api")
	{
		api.POST("/spin", handler.Spin)
		api.GET("/spins", handler.List)
		api.GET("/export", handler.Export)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	smsConfigured := 0
	for _, p := range smsProviders {
		if p.Configured() {
			smsConfigured++
		}
	}

	go func() {
		logger.Info("server listening",
			zap.String("port", cfg.Server.Port),
			zap.String("store", cfg.Store.FilePath),
			zap.Bool("email_configured", emailSender.Configured()),
			zap.Int("sms_providers_configured", smsConfigured),
		)
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
