package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"electionportal/contexts/form-intake/intake-service/domain/entities"
	domainerrors "electionportal/contexts/form-intake/intake-service/domain/errors"
	"electionportal/contexts/form-intake/intake-service/domain/schema"
	"electionportal/contexts/form-intake/intake-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateForm(ctx context.Context, form entities.Form) error {
	row, err := formModelFromEntity(form)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidFormDefinition
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateForm(ctx context.Context, form entities.Form) error {
	row, err := formModelFromEntity(form)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&formModel{}).
		Where("form_id = ?", row.FormID).
		Updates(map[string]any{
			"name":       row.Name,
			"schema":     row.Schema,
			"updated_at": row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrFormNotFound
	}
	return nil
}

func (r *Repository) GetForm(ctx context.Context, formID string) (entities.Form, error) {
	var row formModel
	err := r.db.WithContext(ctx).
		Where("form_id = ?", strings.TrimSpace(formID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Form{}, domainerrors.ErrFormNotFound
		}
		return entities.Form{}, err
	}
	return row.toEntity()
}

func (r *Repository) ListForms(ctx context.Context) ([]entities.Form, error) {
	var rows []formModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Form, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) DeleteForm(ctx context.Context, formID string) error {
	result := r.db.WithContext(ctx).
		Where("form_id = ?", strings.TrimSpace(formID)).
		Delete(&formModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrFormNotFound
	}
	return nil
}

func (r *Repository) CreateSubmission(ctx context.Context, submission entities.Submission) error {
	row, err := submissionModelFromEntity(submission)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Submission{}, domainerrors.ErrSubmissionNotFound
		}
		return entities.Submission{}, err
	}
	return row.toEntity()
}

func (r *Repository) ListSubmissions(ctx context.Context, filter ports.SubmissionFilter) ([]entities.Submission, error) {
	tx := r.db.WithContext(ctx).Model(&submissionModel{})
	if strings.TrimSpace(filter.FormID) != "" {
		tx = tx.Where("form_id = ?", strings.TrimSpace(filter.FormID))
	}
	if strings.TrimSpace(filter.CustomerID) != "" {
		tx = tx.Where("customer_id = ?", strings.TrimSpace(filter.CustomerID))
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}

	var rows []submissionModel
	if err := tx.Order("submitted_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Submission, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// TransitionStatus is a conditional update keyed on the current status. The
// WHERE clause on status is the compare half of the compare-and-swap: a
// concurrent winner leaves zero rows for everyone else.
func (r *Repository) TransitionStatus(
	ctx context.Context,
	submissionID string,
	from entities.SubmissionStatus,
	to entities.SubmissionStatus,
	at time.Time,
) (entities.Submission, error) {
	id := strings.TrimSpace(submissionID)
	result := r.db.WithContext(ctx).
		Model(&submissionModel{}).
		Where("submission_id = ?", id).
		Where("status = ?", string(from)).
		Updates(map[string]any{
			"status":      string(to),
			"approved_at": at.UTC(),
		})
	if result.Error != nil {
		return entities.Submission{}, result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing row from a lost race.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&submissionModel{}).
			Where("submission_id = ?", id).
			Count(&count).
			Error; err != nil {
			return entities.Submission{}, err
		}
		if count == 0 {
			return entities.Submission{}, domainerrors.ErrSubmissionNotFound
		}
		return entities.Submission{}, domainerrors.ErrInvalidStatusTransition
	}
	return r.GetSubmission(ctx, id)
}

func (r *Repository) GetCustomer(ctx context.Context, customerID string) (ports.CustomerRef, error) {
	var row customerProjectionModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", strings.TrimSpace(customerID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CustomerRef{}, domainerrors.ErrCustomerNotFound
		}
		return ports.CustomerRef{}, err
	}
	return ports.CustomerRef{
		CustomerID: row.CustomerID,
		Name:       row.Name,
	}, nil
}

type formModel struct {
	FormID    string    `gorm:"column:form_id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Schema    []byte    `gorm:"column:schema"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (formModel) TableName() string {
	return "forms"
}

type questionRecord struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

func formModelFromEntity(item entities.Form) (formModel, error) {
	records := make([]questionRecord, 0, len(item.Schema))
	for _, question := range item.Schema {
		records = append(records, questionRecord{
			ID:      question.ID,
			Label:   question.Label,
			Type:    string(question.Type),
			Options: question.Options,
		})
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return formModel{}, err
	}
	return formModel{
		FormID:    strings.TrimSpace(item.FormID),
		Name:      strings.TrimSpace(item.Name),
		Schema:    raw,
		CreatedAt: item.CreatedAt.UTC(),
		UpdatedAt: item.UpdatedAt.UTC(),
	}, nil
}

func (m formModel) toEntity() (entities.Form, error) {
	var records []questionRecord
	if len(m.Schema) > 0 {
		if err := json.Unmarshal(m.Schema, &records); err != nil {
			return entities.Form{}, err
		}
	}
	questions := make(schema.Schema, 0, len(records))
	for _, record := range records {
		questions = append(questions, schema.Question{
			ID:      record.ID,
			Label:   record.Label,
			Type:    schema.QuestionType(record.Type),
			Options: record.Options,
		})
	}
	return entities.Form{
		FormID:    m.FormID,
		Name:      m.Name,
		Schema:    questions,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}, nil
}

type submissionModel struct {
	SubmissionID string     `gorm:"column:submission_id;primaryKey"`
	FormID       string     `gorm:"column:form_id"`
	CustomerID   string     `gorm:"column:customer_id"`
	Answers      []byte     `gorm:"column:answers"`
	Status       string     `gorm:"column:status"`
	SubmittedAt  time.Time  `gorm:"column:submitted_at"`
	ApprovedAt   *time.Time `gorm:"column:approved_at"`
}

func (submissionModel) TableName() string {
	return "submissions"
}

func submissionModelFromEntity(item entities.Submission) (submissionModel, error) {
	answers := item.Answers
	if answers == nil {
		answers = map[string]any{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return submissionModel{}, err
	}
	return submissionModel{
		SubmissionID: strings.TrimSpace(item.SubmissionID),
		FormID:       strings.TrimSpace(item.FormID),
		CustomerID:   strings.TrimSpace(item.CustomerID),
		Answers:      raw,
		Status:       string(item.Status),
		SubmittedAt:  item.SubmittedAt.UTC(),
		ApprovedAt:   normalizeOptionalTime(item.ApprovedAt),
	}, nil
}

func (m submissionModel) toEntity() (entities.Submission, error) {
	answers := map[string]any{}
	if len(m.Answers) > 0 {
		if err := json.Unmarshal(m.Answers, &answers); err != nil {
			return entities.Submission{}, err
		}
	}
	return entities.Submission{
		SubmissionID: m.SubmissionID,
		FormID:       m.FormID,
		CustomerID:   m.CustomerID,
		Answers:      answers,
		Status:       entities.SubmissionStatus(m.Status),
		SubmittedAt:  m.SubmittedAt.UTC(),
		ApprovedAt:   normalizeOptionalTime(m.ApprovedAt),
	}, nil
}

type customerProjectionModel struct {
	CustomerID string `gorm:"column:customer_id;primaryKey"`
	Name       string `gorm:"column:name"`
}

func (customerProjectionModel) TableName() string {
	return "customers"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
