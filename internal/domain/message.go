package domain

import "time"

// MessageStatus enumerates the lifecycle states of an outreach message.
type MessageStatus string

const (
	MessageActive    MessageStatus = "active"
	MessageRespond   MessageStatus = "respond"
	MessageCancelled MessageStatus = "cancelled"
	MessageSent      MessageStatus = "sent"
)

// MessageSender identifies which side of the conversation produced a message.
type MessageSender string

const (
	SenderSystem MessageSender = "system"
	SenderLead   MessageSender = "lead"
)

// ThreadInfo carries the email-thread correlation identifiers attached to a
// message by the send pipeline. ParentMessageID is set on follow-ups.
type ThreadInfo struct {
	ThreadID        string `json:"thread_id,omitempty"`
	MessageID       string `json:"message_id,omitempty"`
	ParentMessageID string `json:"parent_message_id,omitempty"`
}

// IsFollowUp returns true when the message continues an existing thread.
func (t *ThreadInfo) IsFollowUp() bool {
	return t != nil && t.ParentMessageID != ""
}

// Message represents a single email in a campaign conversation, either sent by
// the system or received from a lead.
//
// ProviderMessageID is the email provider's id for the delivered email and is
// the correlation key for inbound delivery events. EventHistory accumulates
// those events keyed by kind, one entry per kind.
type Message struct {
	ID                string        `json:"id" db:"id"`
	LeadID            string        `json:"lead_id" db:"lead_id"`
	CampaignID        string        `json:"campaign_id" db:"campaign_id"`
	Channel           string        `json:"channel" db:"channel"`
	Status            MessageStatus `json:"status" db:"status"`
	Sender            MessageSender `json:"sender" db:"sender"`
	Subject           string        `json:"subject" db:"subject"`
	Body              string        `json:"message" db:"message"`
	ProviderMessageID string        `json:"resend_email_id" db:"resend_email_id"`
	EventHistory      EventHistory  `json:"email_events" db:"email_events"`
	Thread            *ThreadInfo   `json:"email_thread_data,omitempty" db:"email_thread_data"`
	SentAt            *time.Time    `json:"sent_at" db:"sent_at"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" db:"updated_at"`
}
