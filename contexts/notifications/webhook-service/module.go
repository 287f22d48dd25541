package webhookservice

import (
	"log/slog"
	"time"

	httpadapter "electionportal/contexts/notifications/webhook-service/adapters/http"
	"electionportal/contexts/notifications/webhook-service/adapters/memory"
	"electionportal/contexts/notifications/webhook-service/application/commands"
	"electionportal/contexts/notifications/webhook-service/application/queries"
	"electionportal/contexts/notifications/webhook-service/application/workers"
	"electionportal/contexts/notifications/webhook-service/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Dispatcher *workers.Dispatcher
	Store      *memory.Store
}

type Dependencies struct {
	Webhooks   ports.WebhookRepository
	Directory  ports.Directory
	Deliverer  ports.Deliverer
	Deliveries ports.DeliveryLog
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger

	DeliveryTimeout time.Duration
	MaxInFlight     int64
}

func NewModule(deps Dependencies) Module {
	manageWebhook := commands.ManageWebhookUseCase{
		Webhooks:  deps.Webhooks,
		Directory: deps.Directory,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Webhooks:   deps.Webhooks,
		Deliveries: deps.Deliveries,
	}
	dispatcher := workers.NewDispatcher(
		workers.DispatcherConfig{
			DeliveryTimeout: deps.DeliveryTimeout,
			MaxInFlight:     deps.MaxInFlight,
		},
		deps.Webhooks,
		deps.Directory,
		deps.Deliverer,
		deps.Deliveries,
		deps.Clock,
		deps.IDGen,
		deps.Logger,
	)

	return Module{
		Handler: httpadapter.Handler{
			ManageWebhook: manageWebhook,
			Queries:       queryUseCase,
			Clock:         deps.Clock,
			Logger:        deps.Logger,
		},
		Dispatcher: dispatcher,
	}
}

func NewInMemoryModule(deliverer ports.Deliverer, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Webhooks:   store,
		Directory:  store,
		Deliverer:  deliverer,
		Deliveries: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
