package errors

import "errors"

var (
	ErrElectionNotFound     = errors.New("election not found")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrInvalidElectionInput = errors.New("invalid election input")
	ErrInvalidCustomerInput = errors.New("invalid customer input")
)
