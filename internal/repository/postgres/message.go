package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/nickgarreis/salesurance/internal/domain"
	"github.com/nickgarreis/salesurance/internal/service/webhook"
)

// MessageRepo implements the message repository contracts of the webhook and
// reply services against PostgreSQL. The event history and thread info live
// in JSONB columns.
type MessageRepo struct{ db *sql.DB }

// NewMessageRepo creates a Postgres-backed message repository.
func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

func (r *MessageRepo) FindByProviderMessageID(ctx context.Context, providerMessageID string) (*domain.Message, error) {
	m := &domain.Message{}
	var events []byte
	var thread []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, lead_id, campaign_id, channel, status, sender,
		       COALESCE(subject,''), COALESCE(message,''), resend_email_id,
		       COALESCE(email_events, '{}'::jsonb), email_thread_data,
		       sent_at, created_at, updated_at
		FROM messages
		WHERE resend_email_id = $1
	`, providerMessageID).Scan(
		&m.ID, &m.LeadID, &m.CampaignID, &m.Channel, &m.Status, &m.Sender,
		&m.Subject, &m.Body, &m.ProviderMessageID,
		&events, &thread,
		&m.SentAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, webhook.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find message by provider id: %w", err)
	}

	if err := json.Unmarshal(events, &m.EventHistory); err != nil {
		return nil, fmt.Errorf("decode event history for message %s: %w", m.ID, err)
	}
	if len(thread) > 0 {
		if err := json.Unmarshal(thread, &m.Thread); err != nil {
			return nil, fmt.Errorf("decode thread info for message %s: %w", m.ID, err)
		}
	}
	return m, nil
}

// UpdateEventHistory writes the merged history back. Only the history column
// and updated_at are touched so concurrent updates to other columns of the
// same row survive.
func (r *MessageRepo) UpdateEventHistory(ctx context.Context, messageID string, history domain.EventHistory) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode event history: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE messages SET email_events = $1, updated_at = NOW()
		WHERE id = $2
	`, data, messageID)
	if err != nil {
		return fmt.Errorf("update event history: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return webhook.ErrMessageNotFound
	}
	return nil
}

// CancelActive cancels every active message of the given leads in one
// conditional update. Messages already cancelled, responded to, or sent are
// left untouched.
func (r *MessageRepo) CancelActive(ctx context.Context, leadIDs []string) (int, error) {
	if len(leadIDs) == 0 {
		return 0, nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE messages SET status = 'cancelled', updated_at = NOW()
		WHERE lead_id = ANY($1) AND status = 'active'
	`, pq.Array(leadIDs))
	if err != nil {
		return 0, fmt.Errorf("cancel active messages: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *MessageRepo) Create(ctx context.Context, m *domain.Message) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages
			(id, lead_id, campaign_id, channel, status, sender,
			 subject, message, sent_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`, m.ID, m.LeadID, m.CampaignID, m.Channel, m.Status, m.Sender,
		m.Subject, m.Body, m.SentAt)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}
