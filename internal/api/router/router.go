package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/symrax/voice-frontdesk/internal/http/handlers"
	httpmiddleware "github.com/symrax/voice-frontdesk/internal/http/middleware"
	"github.com/symrax/voice-frontdesk/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger       *logging.Logger
	VoiceWebhook *handlers.VoiceWebhookHandler

	// MetricsHandler serves /metrics; defaults to promhttp.Handler().
	MetricsHandler http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Handle("/metrics", metricsHandler)

	if cfg.VoiceWebhook != nil {
		r.Route("/webhooks/voice", func(r chi.Router) {
			r.Post("/events", cfg.VoiceWebhook.HandleCallEvent)
			r.Post("/tool-call", cfg.VoiceWebhook.HandleToolCall)
		})
	}

	return r
}
