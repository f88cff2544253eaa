package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/symrax/voice-frontdesk/internal/api/router"
	"github.com/symrax/voice-frontdesk/internal/caller"
	"github.com/symrax/voice-frontdesk/internal/clinic"
	appconfig "github.com/symrax/voice-frontdesk/internal/config"
	"github.com/symrax/voice-frontdesk/internal/http/handlers"
	"github.com/symrax/voice-frontdesk/internal/observability/metrics"
	"github.com/symrax/voice-frontdesk/internal/runtime"
	"github.com/symrax/voice-frontdesk/internal/scheduling"
	"github.com/symrax/voice-frontdesk/internal/session"
	"github.com/symrax/voice-frontdesk/pkg/logging"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load(".env")

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting voice-frontdesk agent",
		"env", cfg.Env,
		"port", cfg.Port,
		"agent_name", cfg.AgentName,
	)

	agentMetrics := metrics.NewAgentMetrics(nil)

	calendar, err := clinic.NewCalendar(cfg.ClinicTimezone)
	if err != nil {
		logger.Error("failed to load clinic timezone", "error", err)
		os.Exit(1)
	}

	gateway, err := scheduling.New(scheduling.Config{
		WebhookURL: cfg.SlotWebhookURL,
		PhoneField: cfg.SlotWebhookPhoneField,
		Timeout:    cfg.SlotWebhookTimeout,
		Logger:     logger,
		Metrics:    agentMetrics,
	})
	if err != nil {
		logger.Error("failed to configure scheduling webhook", "error", err)
		os.Exit(1)
	}

	sessions := session.NewManager(session.Config{
		Checker:       gateway,
		Calendar:      calendar,
		Hours:         clinic.Hours{OpenHour: cfg.ClinicOpenHour, CloseHour: cfg.ClinicCloseHour},
		Normalizer:    caller.Normalizer{TestPhone: cfg.DefaultCallerPhone},
		RejectMessage: cfg.RejectMessage,
		Logger:        logger,
		Metrics:       agentMetrics,
	})

	voiceWebhook := handlers.NewVoiceWebhookHandler(sessions, logger)

	r := router.New(&router.Config{
		Logger:       logger,
		VoiceWebhook: voiceWebhook,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// Runtime worker link is optional; the HTTP webhook surface works
	// without it.
	if cfg.RuntimeWSURL != "" {
		worker, err := runtime.NewWorker(runtime.Config{
			URL:       cfg.RuntimeWSURL,
			AgentName: cfg.AgentName,
			Sessions:  sessions,
			Logger:    logger,
		})
		if err != nil {
			logger.Error("failed to configure runtime worker", "error", err)
			os.Exit(1)
		}
		go func() {
			if err := worker.Run(rootCtx); err != nil && rootCtx.Err() == nil {
				logger.Error("runtime worker stopped", "error", err)
			}
		}()
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
