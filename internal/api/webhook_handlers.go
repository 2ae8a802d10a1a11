package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/nickgarreis/salesurance/internal/pkg/httputil"
	"github.com/nickgarreis/salesurance/internal/pkg/logger"
	"github.com/nickgarreis/salesurance/internal/service/reply"
	"github.com/nickgarreis/salesurance/internal/service/webhook"
)

// maxWebhookBody caps webhook payloads to prevent OOM on hostile input.
const maxWebhookBody = 5 * 1024 * 1024

// webhookResponse is the success body for processed delivery events.
type webhookResponse struct {
	Message   string `json:"message"`
	EventType string `json:"event_type,omitempty"`
	MessageID string `json:"message_id,omitempty"`
	ThreadID  string `json:"thread_id,omitempty"`
}

// HandleResendWebhook ingests one delivery-event notification.
//
//	POST /webhooks/resend
//
// Responses: 401 signature mismatch, 400 bad JSON or missing email_id,
// 404 message/lead not found, 500 store failure. Unsupported event types are
// acknowledged with 200 and no writes so the provider doesn't retry them.
func (h *Handlers) HandleResendWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.BadRequest(w, "failed to read body")
		return
	}

	// The provider sends the signature under either header name.
	signature := r.Header.Get("resend-signature")
	if signature == "" {
		signature = r.Header.Get("signature")
	}
	if h.webhookSecret == "" {
		logger.Warn("webhook secret not configured, skipping signature verification")
	}
	if !webhook.VerifySignature(body, signature, h.webhookSecret) {
		logger.Error("invalid webhook signature", "body_length", len(body))
		httputil.Unauthorized(w, "Invalid signature")
		return
	}

	var env webhook.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		httputil.BadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	res, err := h.webhooks.ProcessEvent(r.Context(), env)
	switch {
	case err == nil:
	case errors.Is(err, webhook.ErrMissingCorrelationID):
		httputil.BadRequest(w, "Missing email_id")
		return
	case errors.Is(err, webhook.ErrMessageNotFound):
		httputil.NotFound(w, "Message not found")
		return
	case errors.Is(err, webhook.ErrLeadNotFound):
		httputil.NotFound(w, "Lead not found")
		return
	default:
		httputil.InternalError(w, err)
		return
	}

	if res.Ignored {
		httputil.OK(w, webhookResponse{Message: "Event type not supported"})
		return
	}

	httputil.OK(w, webhookResponse{
		Message:   "Webhook processed successfully",
		EventType: res.EventType,
		MessageID: res.MessageID,
		ThreadID:  res.ThreadID,
	})
}

// inboundEmailRequest is the provider's inbound-email payload. The sender can
// arrive as a bare "from" address or nested under "sender"; HTML is preferred
// over plain text for the stored body.
type inboundEmailRequest struct {
	From    string `json:"from"`
	Sender  *struct {
		Email string `json:"email"`
	} `json:"sender"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// HandleInboundEmail ingests one email reply from a lead.
//
//	POST /webhooks/inbound-email
func (h *Handlers) HandleInboundEmail(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)

	var req inboundEmailRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	senderEmail := req.From
	if senderEmail == "" && req.Sender != nil {
		senderEmail = req.Sender.Email
	}
	subject := req.Subject
	if subject == "" {
		subject = "Re: Your message"
	}
	body := req.HTML
	if body == "" {
		body = req.Text
	}
	if body == "" {
		body = "Email received"
	}

	res, err := h.replies.Ingest(r.Context(), senderEmail, subject, body)
	switch {
	case err == nil:
	case errors.Is(err, reply.ErrMissingSender):
		httputil.BadRequest(w, "No sender email provided")
		return
	case errors.Is(err, reply.ErrLeadNotFound):
		httputil.NotFound(w, "Lead not found")
		return
	default:
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, map[string]string{
		"message":      "Email received and processed successfully",
		"lead_id":      res.LeadID,
		"message_id":   res.MessageID,
		"sender_email": senderEmail,
	})
}
