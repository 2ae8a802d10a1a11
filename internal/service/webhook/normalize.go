package webhook

import (
	"strings"

	"github.com/nickgarreis/salesurance/internal/domain"
)

// Envelope is the provider's webhook notification as received on the wire.
type Envelope struct {
	Type      string       `json:"type"`
	CreatedAt string       `json:"created_at"`
	Data      EventPayload `json:"data"`
}

// EventPayload carries the per-event data. Only the sub-object matching the
// event kind is populated; the rest stay nil.
type EventPayload struct {
	EmailID string       `json:"email_id"`
	Click   *ClickInfo   `json:"click,omitempty"`
	Bounce  *BounceInfo  `json:"bounce,omitempty"`
	Failed  *FailureInfo `json:"failed,omitempty"`
}

// ClickInfo describes a tracked link click.
type ClickInfo struct {
	Link      string `json:"link"`
	UserAgent string `json:"userAgent"`
	IPAddress string `json:"ipAddress"`
}

// BounceInfo describes a delivery bounce.
type BounceInfo struct {
	Type    string `json:"type"`
	SubType string `json:"subType"`
	Message string `json:"message"`
}

// FailureInfo describes a failed send attempt.
type FailureInfo struct {
	Reason string `json:"reason"`
}

// supportedEvents is the fixed set of provider event types this pipeline
// records. Anything else is acknowledged but ignored.
var supportedEvents = map[string]bool{
	"email.sent":             true,
	"email.delivered":        true,
	"email.bounced":          true,
	"email.opened":           true,
	"email.clicked":          true,
	"email.complained":       true,
	"email.delivery_delayed": true,
	"email.failed":           true,
	"email.unsubscribed":     true,
}

// EventKey strips the provider's category prefix from an event type:
// "email.clicked" → "clicked". Types without a dot pass through unchanged.
func EventKey(eventType string) string {
	if i := strings.Index(eventType, "."); i >= 0 {
		return eventType[i+1:]
	}
	return eventType
}

// Normalize maps a provider envelope onto the (key, detail) pair stored in a
// message's event history.
//
// Returns ErrUnsupportedEvent for types outside the supported set (the caller
// must still acknowledge the delivery so the provider doesn't retry) and
// ErrMissingCorrelationID when the envelope carries no email id, in which
// case the event cannot be attributed to a message at all.
func Normalize(env Envelope) (string, domain.EventDetail, error) {
	if !supportedEvents[env.Type] {
		return "", domain.EventDetail{}, ErrUnsupportedEvent
	}
	if env.Data.EmailID == "" {
		return "", domain.EventDetail{}, ErrMissingCorrelationID
	}

	detail := domain.EventDetail{Timestamp: env.CreatedAt}

	switch env.Type {
	case "email.clicked":
		if c := env.Data.Click; c != nil {
			detail.Link = c.Link
			detail.UserAgent = c.UserAgent
			detail.IPAddress = c.IPAddress
		}
	case "email.bounced":
		if b := env.Data.Bounce; b != nil {
			detail.Type = b.Type
			detail.SubType = b.SubType
			detail.Message = b.Message
		}
	case "email.failed":
		if f := env.Data.Failed; f != nil {
			detail.Reason = f.Reason
		}
	}

	return EventKey(env.Type), detail, nil
}
