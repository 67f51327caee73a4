package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/tanish-jain-225/SilverCare-AI/internal/app"
	"github.com/tanish-jain-225/SilverCare-AI/internal/metrics"
	"github.com/tanish-jain-225/SilverCare-AI/internal/service"
)

// Options wires the HTTP server. Assistant may be nil, in which case
// /chat/message answers 503.
type Options struct {
	Assistant app.MessageUseCase
	Reminders service.ReminderService
	Sessions  service.ChatSessionService
	News      app.NewsUseCase

	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	Logger         *log.Logger
	CORSOrigins    []string
	RequestTimeout time.Duration
}

type Server struct {
	opts   Options
	logger *log.Logger
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	return &Server{opts: opts, logger: opts.Logger.With("component", "api")}
}

// FromApp builds a server around a wired application.
func FromApp(a *app.App, gatherer prometheus.Gatherer) *Server {
	assistant, _ := a.Assistant()
	return New(Options{
		Assistant:      assistant,
		Reminders:      a.Reminders,
		Sessions:       a.Sessions,
		News:           a.News,
		Metrics:        a.Metrics,
		Gatherer:       gatherer,
		Logger:         a.Logger,
		CORSOrigins:    a.Config.CORSOrigins,
		RequestTimeout: a.Config.RequestTimeout,
	})
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedHeaders: []string{"Authorization", "Content-Type", "Accept"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	}).Handler)
	router.Use(s.instrument)
	router.Use(s.requestTimeout)

	router.Get("/healthz", s.healthHandler)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))

	router.Post("/chat/message", s.chatMessageHandler)

	router.Get("/loadChat", s.loadChatHandler)
	router.Put("/saveChat", s.saveChatHandler)
	router.Post("/createChat", s.createChatHandler)
	router.Put("/updateMessages/{sessionID}/messages", s.updateMessagesHandler)
	router.Delete("/deleteChat/{sessionID}", s.deleteChatHandler)
	router.Patch("/updateActivity/{sessionID}/activity", s.updateActivityHandler)

	router.Get("/reminders", s.listRemindersHandler)
	router.Post("/reminder-data", s.saveReminderHandler)
	router.Post("/delete-reminder", s.deleteReminderHandler)

	router.Get("/fetch-news", s.fetchNewsHandler)
	router.Post("/fetch-news", s.fetchNewsHandler)

	return router
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services": map[string]bool{
			"assistant": s.opts.Assistant != nil,
			"news":      s.opts.News != nil,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
