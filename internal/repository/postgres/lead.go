package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nickgarreis/salesurance/internal/domain"
	"github.com/nickgarreis/salesurance/internal/service/reply"
	"github.com/nickgarreis/salesurance/internal/service/webhook"
)

// LeadRepo implements the lead repository contracts of the webhook and reply
// services against PostgreSQL.
type LeadRepo struct{ db *sql.DB }

// NewLeadRepo creates a Postgres-backed lead repository.
func NewLeadRepo(db *sql.DB) *LeadRepo { return &LeadRepo{db: db} }

const leadColumns = `
	id, campaign_id, email, COALESCE(first_name,''), COALESCE(last_name,''),
	COALESCE(company_website,''), status, created_at, updated_at`

func scanLead(row *sql.Row) (*domain.Lead, error) {
	l := &domain.Lead{}
	err := row.Scan(
		&l.ID, &l.CampaignID, &l.Email, &l.FirstName, &l.LastName,
		&l.CompanyWebsite, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *LeadRepo) Get(ctx context.Context, id string) (*domain.Lead, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE id = $1
	`, id)
	l, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, webhook.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

// FindByEmail resolves a lead by exact address. Duplicate addresses across
// leads are broken deterministically: the most recently updated lead wins,
// with id as the tiebreak. Any lookup failure reports ErrLeadNotFound; a
// reply whose lead cannot be resolved is a 404 to the caller either way.
func (r *LeadRepo) FindByEmail(ctx context.Context, email string) (*domain.Lead, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE email = $1
		ORDER BY updated_at DESC, id
		LIMIT 1
	`, email)
	l, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, reply.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lead by email: %w: %v", reply.ErrLeadNotFound, err)
	}
	return l, nil
}

func (r *LeadRepo) UpdateStatus(ctx context.Context, leadID string, status domain.LeadStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE leads SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, leadID)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reply.ErrLeadNotFound
	}
	return nil
}

// UnsubscribeByCompany is the cascade's sibling update: one conditional
// UPDATE over (campaign_id, company_website) so the sibling set can never be
// left half unsubscribed, RETURNING the affected ids for the follow-up
// message cancellation. Callers must not pass an empty companyWebsite; an
// empty grouping key would match every ungrouped lead in the campaign.
func (r *LeadRepo) UnsubscribeByCompany(ctx context.Context, campaignID, companyWebsite string) ([]string, error) {
	if companyWebsite == "" {
		return nil, fmt.Errorf("unsubscribe by company: empty company website")
	}

	rows, err := r.db.QueryContext(ctx, `
		UPDATE leads SET status = 'unsubscribed', updated_at = NOW()
		WHERE campaign_id = $1 AND company_website = $2
		RETURNING id
	`, campaignID, companyWebsite)
	if err != nil {
		return nil, fmt.Errorf("unsubscribe leads: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan unsubscribed lead id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *LeadRepo) Unsubscribe(ctx context.Context, leadID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE leads SET status = 'unsubscribed', updated_at = NOW()
		WHERE id = $1
	`, leadID)
	if err != nil {
		return fmt.Errorf("unsubscribe lead: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return webhook.ErrLeadNotFound
	}
	return nil
}
