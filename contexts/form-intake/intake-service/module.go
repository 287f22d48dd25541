package intakeservice

import (
	"log/slog"

	httpadapter "electionportal/contexts/form-intake/intake-service/adapters/http"
	"electionportal/contexts/form-intake/intake-service/adapters/memory"
	"electionportal/contexts/form-intake/intake-service/application/commands"
	"electionportal/contexts/form-intake/intake-service/application/queries"
	"electionportal/contexts/form-intake/intake-service/domain/entities"
	"electionportal/contexts/form-intake/intake-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Forms       ports.FormRepository
	Submissions ports.SubmissionRepository
	Customers   ports.CustomerDirectory
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	manageForm := commands.ManageFormUseCase{
		Forms:  deps.Forms,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	submitForm := commands.SubmitFormUseCase{
		Forms:       deps.Forms,
		Submissions: deps.Submissions,
		Customers:   deps.Customers,
		Publisher:   deps.Publisher,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Logger:      deps.Logger,
	}
	approveSubmission := commands.ApproveSubmissionUseCase{
		Submissions: deps.Submissions,
		Publisher:   deps.Publisher,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Forms:       deps.Forms,
		Submissions: deps.Submissions,
	}

	return Module{
		Handler: httpadapter.Handler{
			ManageForm:        manageForm,
			SubmitForm:        submitForm,
			ApproveSubmission: approveSubmission,
			Queries:           queryUseCase,
			Logger:            deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Form, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Forms:       store,
		Submissions: store,
		Customers:   store,
		Publisher:   publisher,
		Clock:       store,
		IDGen:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
