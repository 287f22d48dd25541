package errors

import "errors"

var (
	ErrFormNotFound            = errors.New("form not found")
	ErrSubmissionNotFound      = errors.New("submission not found")
	ErrCustomerNotFound        = errors.New("customer not found")
	ErrInvalidFormDefinition   = errors.New("invalid form definition")
	ErrInvalidStatusTransition = errors.New("invalid submission status transition")
	ErrInvalidSubmissionInput  = errors.New("invalid submission input")
)
