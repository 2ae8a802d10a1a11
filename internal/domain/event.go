package domain

// EventDetail holds the normalized data recorded for one delivery-event kind.
// Timestamp is always set; the remaining fields are kind-specific (click
// metadata, bounce classification, failure reason) and omitted otherwise.
type EventDetail struct {
	Timestamp string `json:"timestamp"`

	// clicked
	Link      string `json:"link,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`

	// bounced
	Type    string `json:"type,omitempty"`
	SubType string `json:"sub_type,omitempty"`
	Message string `json:"message,omitempty"`

	// failed
	Reason string `json:"reason,omitempty"`
}

// EventHistory maps a normalized event kind ("delivered", "clicked", ...) to
// the detail recorded for that kind. At most one entry exists per kind; a
// later event of the same kind replaces the earlier one.
type EventHistory map[string]EventDetail

// Merge returns a new history equal to h with key set to detail. The receiver
// is never mutated, and no other keys are touched, so merging the same event
// twice is a no-op and events of different kinds cannot clobber each other.
func (h EventHistory) Merge(key string, detail EventDetail) EventHistory {
	out := make(EventHistory, len(h)+1)
	for k, v := range h {
		out[k] = v
	}
	out[key] = detail
	return out
}
