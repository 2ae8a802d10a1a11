package reply

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nickgarreis/salesurance/internal/domain"
)

// Logger is the narrow observability surface the service reports through.
type Logger interface {
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
}

// Service ingests inbound replies. Stateless, safe for concurrent use.
type Service struct {
	leads    LeadRepository
	messages MessageRepository
	log      Logger
	now      func() time.Time
}

// NewService creates a reply ingestion service.
func NewService(leads LeadRepository, messages MessageRepository, log Logger) *Service {
	return &Service{leads: leads, messages: messages, log: log, now: time.Now}
}

// Result identifies the records touched by one ingested reply.
type Result struct {
	LeadID    string
	MessageID string
}

// Ingest records an inbound reply from senderEmail.
//
// The reply message is always created when the lead resolves; flipping the
// lead to responded afterwards is best-effort and logged on failure, so a
// lead-status hiccup never loses the reply itself.
func (s *Service) Ingest(ctx context.Context, senderEmail, subject, body string) (*Result, error) {
	senderEmail = strings.TrimSpace(senderEmail)
	if senderEmail == "" {
		return nil, ErrMissingSender
	}

	lead, err := s.leads.FindByEmail(ctx, senderEmail)
	if err != nil {
		return nil, err
	}

	sentAt := s.now().UTC()
	msg := &domain.Message{
		ID:         uuid.New().String(),
		LeadID:     lead.ID,
		CampaignID: lead.CampaignID,
		Channel:    "email",
		Status:     domain.MessageRespond,
		Sender:     domain.SenderLead,
		Subject:    subject,
		Body:       body,
		SentAt:     &sentAt,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create reply message for lead %s: %w", lead.ID, err)
	}

	if lead.Status != domain.LeadResponded {
		if err := s.leads.UpdateStatus(ctx, lead.ID, domain.LeadResponded); err != nil {
			s.log.Error("failed to mark lead as responded", "lead_id", lead.ID, "error", err)
		}
	}

	s.log.Info("ingested reply", "lead_id", lead.ID, "message_id", msg.ID, "sender", senderEmail)
	return &Result{LeadID: lead.ID, MessageID: msg.ID}, nil
}
