package domain

import "time"

// LeadStatus enumerates the lifecycle states of a lead.
type LeadStatus string

const (
	LeadActive       LeadStatus = "active"
	LeadResponded    LeadStatus = "responded"
	LeadUnsubscribed LeadStatus = "unsubscribed"
	LeadPaused       LeadStatus = "paused"
)

// Lead represents a single outreach contact within a campaign.
//
// CompanyWebsite is the organizational grouping key: leads of one campaign
// sharing the same company website are treated as one organization for
// unsubscribe purposes. An empty CompanyWebsite means the lead has no
// organizational grouping and is never cascaded together with others.
type Lead struct {
	ID             string     `json:"id" db:"id"`
	CampaignID     string     `json:"campaign_id" db:"campaign_id"`
	Email          string     `json:"email" db:"email"`
	FirstName      string     `json:"first_name" db:"first_name"`
	LastName       string     `json:"last_name" db:"last_name"`
	CompanyWebsite string     `json:"company_website" db:"company_website"`
	Status         LeadStatus `json:"status" db:"status"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// Cascadable returns true if the lead can be grouped with siblings during an
// unsubscribe cascade. Leads without an organizational key are only ever
// unsubscribed individually.
func (l *Lead) Cascadable() bool {
	return l.CompanyWebsite != ""
}
