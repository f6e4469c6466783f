package repository

import "errors"

// Common repository errors
var (
	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")

	// ErrInvalidStage is returned when a stage update names no pipeline stage
	ErrInvalidStage = errors.New("invalid stage")
)
