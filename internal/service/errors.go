package service

import "errors"

// Sentinel errors shared by the workflow services. Handlers translate these
// into HTTP statuses; anything else is treated as a persistence failure and
// surfaced as a generic 500 after the transaction has rolled back.
var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrNotFound           = errors.New("record not found")
	ErrInvalidState       = errors.New("operation not allowed in current state")
	ErrNegativeQty        = errors.New("quantity must not be negative")
)
