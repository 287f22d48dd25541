package entities

import (
	"time"

	"electionportal/contexts/form-intake/intake-service/domain/schema"
)

type Form struct {
	FormID    string
	Name      string
	Schema    schema.Schema
	CreatedAt time.Time
	UpdatedAt time.Time
}
