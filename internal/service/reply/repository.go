package reply

import (
	"context"

	"github.com/nickgarreis/salesurance/internal/domain"
)

// LeadRepository defines the lead-store access reply ingestion needs.
type LeadRepository interface {
	// FindByEmail returns the lead with the given address. When more than one
	// lead carries the address, the most recently updated one is returned.
	// Returns ErrLeadNotFound for zero matches.
	FindByEmail(ctx context.Context, email string) (*domain.Lead, error)

	// UpdateStatus sets a lead's status.
	UpdateStatus(ctx context.Context, leadID string, status domain.LeadStatus) error
}

// MessageRepository defines the message-store access reply ingestion needs.
type MessageRepository interface {
	// Create inserts a new message row.
	Create(ctx context.Context, m *domain.Message) error
}
