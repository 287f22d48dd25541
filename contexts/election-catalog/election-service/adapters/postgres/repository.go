package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"electionportal/contexts/election-catalog/election-service/domain/entities"
	domainerrors "electionportal/contexts/election-catalog/election-service/domain/errors"
	"electionportal/contexts/election-catalog/election-service/ports"

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

func (r *Repository) CreateElection(ctx context.Context, election entities.Election) error {
	row := electionModelFromEntity(election)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) UpdateElection(ctx context.Context, election entities.Election) error {
	row := electionModelFromEntity(election)
	result := r.db.WithContext(ctx).
		Model(&electionModel{}).
		Where("election_id = ?", row.ElectionID).
		Updates(map[string]any{
			"name":       row.Name,
			"type":       row.Type,
			"state":      row.State,
			"updated_at": row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrElectionNotFound
	}
	return nil
}

func (r *Repository) GetElection(ctx context.Context, electionID string) (entities.Election, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetElectionDetail(ctx context.Context, electionID string) (ports.ElectionDetail, error) {
	election, err := r.GetElection(ctx, electionID)
	if err != nil {
		return ports.ElectionDetail{}, err
	}

	var customers []customerModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN election_customers ON election_customers.customer_id = customers.customer_id").
		Where("election_customers.election_id = ?", election.ElectionID).
		Order("customers.created_at ASC").
		Find(&customers).
		Error; err != nil {
		return ports.ElectionDetail{}, err
	}

	var forms []formProjectionModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN election_forms ON election_forms.form_id = forms.form_id").
		Where("election_forms.election_id = ?", election.ElectionID).
		Order("forms.created_at ASC").
		Find(&forms).
		Error; err != nil {
		return ports.ElectionDetail{}, err
	}

	var webhooks []webhookProjectionModel
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", election.ElectionID).
		Order("created_at ASC").
		Find(&webhooks).
		Error; err != nil {
		return ports.ElectionDetail{}, err
	}

	detail := ports.ElectionDetail{Election: election}
	for _, row := range customers {
		detail.Customers = append(detail.Customers, row.toEntity())
	}
	for _, row := range forms {
		detail.Forms = append(detail.Forms, ports.FormRef{FormID: row.FormID, Name: row.Name})
	}
	for _, row := range webhooks {
		detail.Webhooks = append(detail.Webhooks, ports.WebhookRef{
			WebhookID: row.WebhookID,
			EventType: row.EventType,
			URL:       row.URL,
		})
	}
	return detail, nil
}

func (r *Repository) ListElections(ctx context.Context) ([]entities.Election, error) {
	var rows []electionModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Election, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) DeleteElection(ctx context.Context, electionID string) error {
	id := strings.TrimSpace(electionID)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("election_id = ?", id).Delete(&electionModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrElectionNotFound
		}
		if err := tx.Where("election_id = ?", id).Delete(&electionCustomerModel{}).Error; err != nil {
			return err
		}
		return tx.Where("election_id = ?", id).Delete(&electionFormModel{}).Error
	})
}

func (r *Repository) CreateCustomer(ctx context.Context, customer entities.Customer) error {
	row := customerModel{
		CustomerID: strings.TrimSpace(customer.CustomerID),
		Name:       strings.TrimSpace(customer.Name),
		CreatedAt:  customer.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetCustomer(ctx context.Context, customerID string) (entities.Customer, error) {
	var row customerModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", strings.TrimSpace(customerID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Customer{}, domainerrors.ErrCustomerNotFound
		}
		return entities.Customer{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCustomers(ctx context.Context) ([]entities.Customer, error) {
	var rows []customerModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Customer, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// ReplaceCustomerAssignments swaps the whole assignment set inside one
// transaction so concurrent readers see either the old set or the new set.
func (r *Repository) ReplaceCustomerAssignments(ctx context.Context, electionID string, customerIDs []string) ([]string, error) {
	id := strings.TrimSpace(electionID)
	var kept []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&electionModel{}).Where("election_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrElectionNotFound
		}

		if err := tx.Where("election_id = ?", id).Delete(&electionCustomerModel{}).Error; err != nil {
			return err
		}
		for _, customerID := range customerIDs {
			var exists int64
			if err := tx.Model(&customerModel{}).Where("customer_id = ?", customerID).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				continue
			}
			row := electionCustomerModel{ElectionID: id, CustomerID: customerID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			kept = append(kept, customerID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return kept, nil
}

func (r *Repository) ReplaceFormAttachments(ctx context.Context, electionID string, formIDs []string) ([]string, error) {
	id := strings.TrimSpace(electionID)
	var kept []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&electionModel{}).Where("election_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrElectionNotFound
		}

		if err := tx.Where("election_id = ?", id).Delete(&electionFormModel{}).Error; err != nil {
			return err
		}
		for _, formID := range formIDs {
			var exists int64
			if err := tx.Model(&formProjectionModel{}).Where("form_id = ?", formID).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				continue
			}
			row := electionFormModel{ElectionID: id, FormID: formID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			kept = append(kept, formID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return kept, nil
}

type electionModel struct {
	ElectionID string    `gorm:"column:election_id;primaryKey"`
	Name       string    `gorm:"column:name"`
	Type       string    `gorm:"column:type"`
	State      string    `gorm:"column:state"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (electionModel) TableName() string {
	return "elections"
}

func electionModelFromEntity(item entities.Election) electionModel {
	return electionModel{
		ElectionID: strings.TrimSpace(item.ElectionID),
		Name:       strings.TrimSpace(item.Name),
		Type:       strings.TrimSpace(item.Type),
		State:      strings.TrimSpace(item.State),
		CreatedAt:  item.CreatedAt.UTC(),
		UpdatedAt:  item.UpdatedAt.UTC(),
	}
}

func (m electionModel) toEntity() entities.Election {
	return entities.Election{
		ElectionID: m.ElectionID,
		Name:       m.Name,
		Type:       m.Type,
		State:      m.State,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}

type customerModel struct {
	CustomerID string    `gorm:"column:customer_id;primaryKey"`
	Name       string    `gorm:"column:name"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (customerModel) TableName() string {
	return "customers"
}

func (m customerModel) toEntity() entities.Customer {
	return entities.Customer{
		CustomerID: m.CustomerID,
		Name:       m.Name,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

type electionCustomerModel struct {
	ElectionID string `gorm:"column:election_id;primaryKey"`
	CustomerID string `gorm:"column:customer_id;primaryKey"`
}

func (electionCustomerModel) TableName() string {
	return "election_customers"
}

type electionFormModel struct {
	ElectionID string `gorm:"column:election_id;primaryKey"`
	FormID     string `gorm:"column:form_id;primaryKey"`
}

func (electionFormModel) TableName() string {
	return "election_forms"
}

type formProjectionModel struct {
	FormID string `gorm:"column:form_id;primaryKey"`
	Name   string `gorm:"column:name"`
}

func (formProjectionModel) TableName() string {
	return "forms"
}

type webhookProjectionModel struct {
	WebhookID  string    `gorm:"column:webhook_id;primaryKey"`
	ElectionID string    `gorm:"column:election_id"`
	EventType  string    `gorm:"column:event_type"`
	URL        string    `gorm:"column:url"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (webhookProjectionModel) TableName() string {
	return "webhooks"
}
