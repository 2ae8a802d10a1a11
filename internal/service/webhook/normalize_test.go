package webhook

import (
	"errors"
	"testing"

	"github.com/nickgarreis/salesurance/internal/domain"
)

func TestEventKey(t *testing.T) {
	cases := map[string]string{
		"email.clicked":          "clicked",
		"email.delivery_delayed": "delivery_delayed",
		"unsubscribed":           "unsubscribed",
	}
	for in, want := range cases {
		if got := EventKey(in); got != want {
			t.Errorf("EventKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalize_Clicked(t *testing.T) {
	env := Envelope{
		Type:      "email.clicked",
		CreatedAt: "2025-08-14T09:00:00Z",
		Data: EventPayload{
			EmailID: "m1",
			Click:   &ClickInfo{Link: "https://x", UserAgent: "UA", IPAddress: "1.2.3.4"},
		},
	}

	key, detail, err := Normalize(env)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if key != "clicked" {
		t.Errorf("key = %q", key)
	}
	want := domain.EventDetail{
		Timestamp: "2025-08-14T09:00:00Z",
		Link:      "https://x",
		UserAgent: "UA",
		IPAddress: "1.2.3.4",
	}
	if detail != want {
		t.Errorf("detail = %+v, want %+v", detail, want)
	}
}

func TestNormalize_Bounced(t *testing.T) {
	env := Envelope{
		Type:      "email.bounced",
		CreatedAt: "T0",
		Data: EventPayload{
			EmailID: "m1",
			Bounce:  &BounceInfo{Type: "Permanent", SubType: "General", Message: "550 user unknown"},
		},
	}

	key, detail, err := Normalize(env)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if key != "bounced" {
		t.Errorf("key = %q", key)
	}
	if detail.Type != "Permanent" || detail.SubType != "General" || detail.Message != "550 user unknown" {
		t.Errorf("detail = %+v", detail)
	}
}

func TestNormalize_Failed(t *testing.T) {
	env := Envelope{
		Type:      "email.failed",
		CreatedAt: "T0",
		Data:      EventPayload{EmailID: "m1", Failed: &FailureInfo{Reason: "quota exceeded"}},
	}

	_, detail, err := Normalize(env)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if detail.Reason != "quota exceeded" {
		t.Errorf("detail = %+v", detail)
	}
}

func TestNormalize_PlainKindsCarryOnlyTimestamp(t *testing.T) {
	for _, kind := range []string{"email.sent", "email.delivered", "email.opened", "email.complained", "email.delivery_delayed", "email.unsubscribed"} {
		env := Envelope{Type: kind, CreatedAt: "T0", Data: EventPayload{EmailID: "m1"}}
		_, detail, err := Normalize(env)
		if err != nil {
			t.Fatalf("Normalize(%s): %v", kind, err)
		}
		if detail != (domain.EventDetail{Timestamp: "T0"}) {
			t.Errorf("Normalize(%s) detail = %+v, want timestamp only", kind, detail)
		}
	}
}

func TestNormalize_MissingSubObjectIsTolerated(t *testing.T) {
	env := Envelope{Type: "email.clicked", CreatedAt: "T0", Data: EventPayload{EmailID: "m1"}}
	_, detail, err := Normalize(env)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if detail.Timestamp != "T0" || detail.Link != "" {
		t.Errorf("detail = %+v", detail)
	}
}

func TestNormalize_UnsupportedEvent(t *testing.T) {
	env := Envelope{Type: "email.marked_spam", CreatedAt: "T0", Data: EventPayload{EmailID: "m1"}}
	_, _, err := Normalize(env)
	if !errors.Is(err, ErrUnsupportedEvent) {
		t.Errorf("expected ErrUnsupportedEvent, got %v", err)
	}
}

func TestNormalize_MissingEmailID(t *testing.T) {
	env := Envelope{Type: "email.delivered", CreatedAt: "T0"}
	_, _, err := Normalize(env)
	if !errors.Is(err, ErrMissingCorrelationID) {
		t.Errorf("expected ErrMissingCorrelationID, got %v", err)
	}
}
