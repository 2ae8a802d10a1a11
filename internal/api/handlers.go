package api

import (
	"database/sql"
	"time"

	"github.com/nickgarreis/salesurance/internal/service/reply"
	"github.com/nickgarreis/salesurance/internal/service/webhook"
)

// Handlers bundles the HTTP handlers for the ingestion endpoints.
type Handlers struct {
	webhooks *webhook.Service
	replies  *reply.Service

	// webhookSecret signs provider webhook bodies. Empty means signature
	// verification is bypassed (development mode).
	webhookSecret string

	db        *sql.DB
	startTime time.Time
}

// NewHandlers creates the handler set. db may be nil in tests; the health
// endpoint then skips its ping.
func NewHandlers(webhooks *webhook.Service, replies *reply.Service, webhookSecret string, db *sql.DB) *Handlers {
	return &Handlers{
		webhooks:      webhooks,
		replies:       replies,
		webhookSecret: webhookSecret,
		db:            db,
		startTime:     time.Now(),
	}
}
