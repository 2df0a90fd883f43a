package services

import (
	"errors"
)

// Service-level error kinds the HTTP layer maps onto status codes. Storage
// unavailability keeps its docstore sentinel; everything unexpected stays an
// ordinary wrapped error and surfaces as an internal failure.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrUpstreamAI = errors.New("ai generation failed")
)
