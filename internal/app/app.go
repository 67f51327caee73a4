package app

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/tanish-jain-225/SilverCare-AI/internal/db"
	"github.com/tanish-jain-225/SilverCare-AI/internal/intelligence"
	"github.com/tanish-jain-225/SilverCare-AI/internal/llm"
	"github.com/tanish-jain-225/SilverCare-AI/internal/metrics"
	"github.com/tanish-jain-225/SilverCare-AI/internal/news"
	"github.com/tanish-jain-225/SilverCare-AI/internal/repository"
	"github.com/tanish-jain-225/SilverCare-AI/internal/service"
)

// ErrAssistantUnavailable is returned by App.Assistant when no LLM API key
// is configured.
var ErrAssistantUnavailable = errors.New("assistant unavailable: no LLM API key configured")

// App holds the wired services. Build it with Open and release it with Close.
type App struct {
	Config  Config
	Logger  *log.Logger
	Metrics *metrics.Metrics

	Reminders service.ReminderService
	Sessions  service.ChatSessionService
	News      NewsUseCase

	assistant MessageUseCase
	database  *sql.DB
}

// Open opens the database and wires every service. The assistant is only
// wired when the LLM configuration validates.
func Open(cfg Config, logger *log.Logger, m *metrics.Metrics) (*App, error) {
	if logger == nil {
		logger = log.Default()
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	reminderRepo := repository.NewSQLiteReminderRepo(database)
	sessionRepo := repository.NewSQLiteChatSessionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	useCaseObs := service.NewLogUseCaseObserver(logger)

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   m,
		Reminders: service.NewReminderService(reminderRepo, useCaseObs),
		Sessions:  service.NewChatSessionService(sessionRepo, uow, useCaseObs),
		database:  database,
	}
	a.News = news.NewClient(cfg.News, m, logger)

	if err := cfg.LLM.Validate(); err != nil {
		logger.Warn("chat assistant disabled", "err", err)
		return a, nil
	}

	observers := llm.Observers{m}
	if cfg.LLM.LogCalls {
		observers = append(observers, llm.NewLogObserver(logger))
	}
	client := llm.NewClient(cfg.LLM, observers)

	threshold := cfg.ReminderThreshold
	a.assistant = intelligence.NewRouter(intelligence.RouterDeps{
		Client:            client,
		Emergency:         intelligence.NewEmergencyClassifier(client, logger),
		Reminder:          intelligence.NewReminderClassifier(client, logger),
		Extractor:         intelligence.NewReminderExtractor(client, a.Reminders, logger),
		Observer:          m,
		Logger:            logger,
		ReminderThreshold: &threshold,
	})
	return a, nil
}

// Assistant returns the message router, or ErrAssistantUnavailable.
func (a *App) Assistant() (MessageUseCase, error) {
	if a.assistant == nil {
		return nil, ErrAssistantUnavailable
	}
	return a.assistant, nil
}

func (a *App) Close() error {
	if a.database == nil {
		return nil
	}
	return a.database.Close()
}
