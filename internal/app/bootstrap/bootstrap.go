// Package bootstrap is the composition root. Keep construction and wiring
// here so module code stays framework-agnostic.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	electionservice "electionportal/contexts/election-catalog/election-service"
	electionpostgres "electionportal/contexts/election-catalog/election-service/adapters/postgres"
	intakeservice "electionportal/contexts/form-intake/intake-service"
	intakepostgres "electionportal/contexts/form-intake/intake-service/adapters/postgres"
	intakeports "electionportal/contexts/form-intake/intake-service/ports"
	webhookservice "electionportal/contexts/notifications/webhook-service"
	"electionportal/contexts/notifications/webhook-service/adapters/httpclient"
	webhookpostgres "electionportal/contexts/notifications/webhook-service/adapters/postgres"
	"electionportal/contexts/notifications/webhook-service/application/workers"
	webhookentities "electionportal/contexts/notifications/webhook-service/domain/entities"
	webhookports "electionportal/contexts/notifications/webhook-service/ports"
	"electionportal/internal/platform/config"
	"electionportal/internal/platform/db"
	"electionportal/internal/platform/httpserver"
)

type APIApp struct {
	server     *httpserver.Server
	postgres   *db.Postgres
	dispatcher *workers.Dispatcher
	logger     *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	electionRepo := electionpostgres.NewRepository(pg.DB, logger)
	electionModule := electionservice.NewModule(electionservice.Dependencies{
		Repository: electionRepo,
		Clock:      electionpostgres.SystemClock{},
		IDGen:      electionpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	webhookRepo := webhookpostgres.NewRepository(pg.DB, logger)
	var deliveryLog webhookports.DeliveryLog
	if cfg.EnableDeliveryLog {
		deliveryLog = webhookRepo
	}
	webhookModule := webhookservice.NewModule(webhookservice.Dependencies{
		Webhooks:        webhookRepo,
		Directory:       webhookRepo,
		Deliverer:       httpclient.NewDeliverer(),
		Deliveries:      deliveryLog,
		Clock:           webhookpostgres.SystemClock{},
		IDGen:           webhookpostgres.UUIDGenerator{},
		Logger:          logger,
		DeliveryTimeout: cfg.WebhookDeliveryTimeout,
		MaxInFlight:     cfg.WebhookMaxInFlight,
	})

	var publisher intakeports.EventPublisher
	if cfg.EnableWebhookDispatch {
		publisher = dispatchPublisher{dispatcher: webhookModule.Dispatcher}
	}

	intakeRepo := intakepostgres.NewRepository(pg.DB, logger)
	intakeModule := intakeservice.NewModule(intakeservice.Dependencies{
		Forms:       intakeRepo,
		Submissions: intakeRepo,
		Customers:   intakeRepo,
		Publisher:   publisher,
		Clock:       intakepostgres.SystemClock{},
		IDGen:       intakepostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(electionModule, intakeModule, webhookModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:     server,
		postgres:   pg,
		dispatcher: webhookModule.Dispatcher,
		logger:     logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.dispatcher != nil {
		drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = a.dispatcher.Drain(drainCtx)
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

// dispatchPublisher bridges the form-intake event port onto the webhook
// dispatcher without either context importing the other.
type dispatchPublisher struct {
	dispatcher *workers.Dispatcher
}

func (p dispatchPublisher) PublishSubmissionEvent(ctx context.Context, event intakeports.SubmissionEvent) error {
	return p.dispatcher.Dispatch(ctx, webhookports.FormEvent{
		EventType:   mapEventKind(event.Kind),
		FormID:      event.Submission.FormID,
		CustomerID:  event.Submission.CustomerID,
		Data:        event.Submission.Answers,
		SubmittedAt: event.Submission.SubmittedAt,
		ApprovedAt:  event.Submission.ApprovedAt,
	})
}

func mapEventKind(kind intakeports.SubmissionEventKind) webhookentities.WebhookEventType {
	if kind == intakeports.SubmissionEventApproved {
		return webhookentities.EventFormApproved
	}
	return webhookentities.EventFormSubmitted
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
