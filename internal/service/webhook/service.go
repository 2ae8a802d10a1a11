package webhook

import (
	"context"
	"fmt"

	"github.com/nickgarreis/salesurance/internal/domain"
)

// Logger is the narrow observability surface the pipeline reports through.
// Best-effort failures (cascade cancellation, sibling logging) land here
// instead of being silently dropped.
type Logger interface {
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
}

// Service processes normalized delivery events against the store. It is
// stateless and safe for concurrent use; every call is one request-scoped
// unit of work.
type Service struct {
	messages MessageRepository
	leads    LeadRepository
	log      Logger
}

// NewService creates a webhook pipeline service.
func NewService(messages MessageRepository, leads LeadRepository, log Logger) *Service {
	return &Service{messages: messages, leads: leads, log: log}
}

// Result reports what a processed delivery event did.
type Result struct {
	EventType string
	MessageID string
	ThreadID  string

	// Ignored is set for event types outside the supported set. The caller
	// must still acknowledge the delivery; no store write happened.
	Ignored bool
}

// ProcessEvent runs one webhook delivery through the pipeline: normalize,
// resolve the message, cascade on unsubscribe, merge into the event history.
//
// The unsubscribe cascade runs before the merge and its lead update is the
// primary effect: if it fails the event is not recorded and the provider may
// retry. Message cancellation inside the cascade is best-effort.
func (s *Service) ProcessEvent(ctx context.Context, env Envelope) (*Result, error) {
	key, detail, err := Normalize(env)
	if err == ErrUnsupportedEvent {
		s.log.Info("ignoring unsupported event type", "type", env.Type)
		return &Result{EventType: env.Type, Ignored: true}, nil
	}
	if err != nil {
		return nil, err
	}

	msg, err := s.messages.FindByProviderMessageID(ctx, env.Data.EmailID)
	if err != nil {
		return nil, err
	}

	if key == "unsubscribed" {
		if err := s.cascade(ctx, msg); err != nil {
			return nil, err
		}
	}

	merged := msg.EventHistory.Merge(key, detail)
	if err := s.messages.UpdateEventHistory(ctx, msg.ID, merged); err != nil {
		return nil, fmt.Errorf("update event history for message %s: %w", msg.ID, err)
	}

	res := &Result{EventType: env.Type, MessageID: msg.ID}
	if msg.Thread != nil {
		res.ThreadID = msg.Thread.ThreadID
	}
	s.log.Info("processed delivery event",
		"type", env.Type, "message_id", msg.ID, "lead_id", msg.LeadID,
		"campaign_id", msg.CampaignID, "follow_up", msg.Thread.IsFollowUp())
	return res, nil
}

// cascade unsubscribes the organization behind msg's lead and cancels their
// outstanding messages.
//
// Sibling selection is one conditional update keyed on (campaign_id,
// company_website) so a crash can never leave the sibling set half
// unsubscribed. Leads without a company website are unsubscribed alone,
// since an empty grouping key must not select unrelated leads.
func (s *Service) cascade(ctx context.Context, msg *domain.Message) error {
	lead, err := s.leads.Get(ctx, msg.LeadID)
	if err != nil {
		return err
	}

	var leadIDs []string
	if lead.Cascadable() {
		leadIDs, err = s.leads.UnsubscribeByCompany(ctx, msg.CampaignID, lead.CompanyWebsite)
		if err != nil {
			return fmt.Errorf("unsubscribe leads for campaign %s: %w", msg.CampaignID, err)
		}
	} else {
		if err := s.leads.Unsubscribe(ctx, lead.ID); err != nil {
			return fmt.Errorf("unsubscribe lead %s: %w", lead.ID, err)
		}
		leadIDs = []string{lead.ID}
	}

	if len(leadIDs) == 0 {
		s.log.Info("unsubscribe matched no leads", "campaign_id", msg.CampaignID)
		return nil
	}

	// Cancellation must not undo the unsubscribe: log and move on.
	cancelled, err := s.messages.CancelActive(ctx, leadIDs)
	if err != nil {
		s.log.Error("failed to cancel pending messages after unsubscribe",
			"campaign_id", msg.CampaignID, "leads", len(leadIDs), "error", err)
		return nil
	}

	s.log.Info("unsubscribe cascade complete",
		"campaign_id", msg.CampaignID, "leads", len(leadIDs), "cancelled_messages", cancelled)
	return nil
}
