package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "electionportal/contexts/form-intake/intake-service/application"
	"electionportal/contexts/form-intake/intake-service/domain/entities"
	domainerrors "electionportal/contexts/form-intake/intake-service/domain/errors"
	"electionportal/contexts/form-intake/intake-service/domain/schema"
	"electionportal/contexts/form-intake/intake-service/ports"
)

type SaveFormCommand struct {
	Name      string
	Questions []schema.Question
}

type ManageFormUseCase struct {
	Forms  ports.FormRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc ManageFormUseCase) Create(ctx context.Context, cmd SaveFormCommand) (entities.Form, error) {
	logger := application.ResolveLogger(uc.Logger)

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return entities.Form{}, fmt.Errorf("%w: name is required", domainerrors.ErrInvalidFormDefinition)
	}
	parsed, err := schema.ParseQuestions(cmd.Questions)
	if err != nil {
		return entities.Form{}, fmt.Errorf("%w: %v", domainerrors.ErrInvalidFormDefinition, err)
	}

	formID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Form{}, err
	}
	now := uc.Clock.Now().UTC()
	form := entities.Form{
		FormID:    formID,
		Name:      name,
		Schema:    parsed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.Forms.CreateForm(ctx, form); err != nil {
		return entities.Form{}, err
	}

	logger.Info("form created",
		"event", "form_created",
		"module", "form-intake/intake-service",
		"layer", "application",
		"form_id", form.FormID,
		"question_count", len(form.Schema),
	)
	return form, nil
}

// Update replaces a form's name and schema. Existing submissions keep the
// answers they were validated against and are never revalidated.
func (uc ManageFormUseCase) Update(ctx context.Context, formID string, cmd SaveFormCommand) (entities.Form, error) {
	logger := application.ResolveLogger(uc.Logger)

	form, err := uc.Forms.GetForm(ctx, strings.TrimSpace(formID))
	if err != nil {
		return entities.Form{}, err
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return entities.Form{}, fmt.Errorf("%w: name is required", domainerrors.ErrInvalidFormDefinition)
	}
	parsed, err := schema.ParseQuestions(cmd.Questions)
	if err != nil {
		return entities.Form{}, fmt.Errorf("%w: %v", domainerrors.ErrInvalidFormDefinition, err)
	}

	form.Name = name
	form.Schema = parsed
	form.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Forms.UpdateForm(ctx, form); err != nil {
		return entities.Form{}, err
	}

	logger.Info("form updated",
		"event", "form_updated",
		"module", "form-intake/intake-service",
		"layer", "application",
		"form_id", form.FormID,
	)
	return form, nil
}

func (uc ManageFormUseCase) Delete(ctx context.Context, formID string) error {
	return uc.Forms.DeleteForm(ctx, strings.TrimSpace(formID))
}
