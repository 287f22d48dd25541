package errors

import "errors"

var (
	ErrWebhookNotFound     = errors.New("webhook not found")
	ErrElectionNotFound    = errors.New("election not found")
	ErrFormNotFound        = errors.New("form not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrInvalidWebhookInput = errors.New("invalid webhook input")
)
