package webhook

import (
	"context"

	"github.com/nickgarreis/salesurance/internal/domain"
)

// MessageRepository defines the message-store access the pipeline needs.
type MessageRepository interface {
	// FindByProviderMessageID resolves the message a delivery event belongs
	// to. Returns ErrMessageNotFound when no message carries that id.
	FindByProviderMessageID(ctx context.Context, providerMessageID string) (*domain.Message, error)

	// UpdateEventHistory writes a merged event history back to the message.
	// Only the history column (and updated_at) is touched, so concurrent
	// updates to unrelated fields on the same row are not clobbered.
	UpdateEventHistory(ctx context.Context, messageID string, history domain.EventHistory) error

	// CancelActive cancels every message of the given leads that is currently
	// active. Messages in any other status are left unchanged.
	CancelActive(ctx context.Context, leadIDs []string) (int, error)
}

// LeadRepository defines the lead-store access the cascade needs.
type LeadRepository interface {
	// Get returns a lead by id. Returns ErrLeadNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.Lead, error)

	// UnsubscribeByCompany marks every lead of the campaign sharing the
	// company website as unsubscribed in one conditional update and returns
	// the ids of all affected leads (including the originating one).
	UnsubscribeByCompany(ctx context.Context, campaignID, companyWebsite string) ([]string, error)

	// Unsubscribe marks a single lead as unsubscribed. Used when the lead has
	// no organizational key and must never be grouped with others.
	Unsubscribe(ctx context.Context, leadID string) error
}
