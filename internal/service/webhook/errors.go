package webhook

import "errors"

// Sentinel errors for the webhook pipeline. Handlers map these onto the
// response contract: unsupported events are acknowledged with 200 and zero
// writes, a missing correlation id is a 400, missing entities are 404s.
var (
	ErrUnsupportedEvent     = errors.New("unsupported event type")
	ErrMissingCorrelationID = errors.New("missing email_id in webhook data")
	ErrMessageNotFound      = errors.New("message not found")
	ErrLeadNotFound         = errors.New("lead not found")
)
