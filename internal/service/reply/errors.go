package reply

import "errors"

// Sentinel errors for the reply ingestion service layer.
var (
	ErrMissingSender = errors.New("no sender email provided")
	ErrLeadNotFound  = errors.New("lead not found")
)
