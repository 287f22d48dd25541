package electionservice

import (
	"log/slog"

	httpadapter "electionportal/contexts/election-catalog/election-service/adapters/http"
	"electionportal/contexts/election-catalog/election-service/adapters/memory"
	"electionportal/contexts/election-catalog/election-service/application/commands"
	"electionportal/contexts/election-catalog/election-service/application/queries"
	"electionportal/contexts/election-catalog/election-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	manageElection := commands.ManageElectionUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	manageCustomer := commands.ManageCustomerUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
	}

	return Module{
		Handler: httpadapter.Handler{
			ManageElection: manageElection,
			ManageCustomer: manageCustomer,
			Queries:        queryUseCase,
			Logger:         deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
