package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/nickgarreis/salesurance/internal/domain"
	"github.com/nickgarreis/salesurance/internal/service/reply"
	"github.com/nickgarreis/salesurance/internal/service/webhook"
)

func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return db, mock, func() { db.Close() }
}

var leadCols = []string{
	"id", "campaign_id", "email", "first_name", "last_name",
	"company_website", "status", "created_at", "updated_at",
}

func leadRow(id, campaignID, email, company string, status domain.LeadStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(leadCols).
		AddRow(id, campaignID, email, "Jane", "Doe", company, string(status), now, now)
}

func TestLeadRepo_Get(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs("l1").
		WillReturnRows(leadRow("l1", "5", "a@acme.com", "acme.com", domain.LeadActive))

	lead, err := NewLeadRepo(db).Get(context.Background(), "l1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if lead.ID != "l1" || lead.CompanyWebsite != "acme.com" || lead.Status != domain.LeadActive {
		t.Errorf("unexpected lead: %+v", lead)
	}
}

func TestLeadRepo_Get_NotFound(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := NewLeadRepo(db).Get(context.Background(), "ghost")
	if !errors.Is(err, webhook.ErrLeadNotFound) {
		t.Errorf("expected webhook.ErrLeadNotFound, got %v", err)
	}
}

func TestLeadRepo_FindByEmail(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs("a@b.com").
		WillReturnRows(leadRow("l1", "5", "a@b.com", "", domain.LeadActive))

	lead, err := NewLeadRepo(db).FindByEmail(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if lead.Email != "a@b.com" {
		t.Errorf("unexpected lead: %+v", lead)
	}
}

func TestLeadRepo_FindByEmail_NotFound(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs("ghost@b.com").
		WillReturnError(sql.ErrNoRows)

	_, err := NewLeadRepo(db).FindByEmail(context.Background(), "ghost@b.com")
	if !errors.Is(err, reply.ErrLeadNotFound) {
		t.Errorf("expected reply.ErrLeadNotFound, got %v", err)
	}
}

func TestLeadRepo_FindByEmail_LookupErrorIsNotFound(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	// A failing lookup reports the same sentinel as zero rows: the reply
	// cannot be attributed to a lead either way.
	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs("a@b.com").
		WillReturnError(errors.New("connection refused"))

	_, err := NewLeadRepo(db).FindByEmail(context.Background(), "a@b.com")
	if !errors.Is(err, reply.ErrLeadNotFound) {
		t.Errorf("expected reply.ErrLeadNotFound, got %v", err)
	}
}

func TestLeadRepo_UpdateStatus(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectExec("UPDATE leads SET status").
		WithArgs(string(domain.LeadResponded), "l1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewLeadRepo(db).UpdateStatus(context.Background(), "l1", domain.LeadResponded); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
}

func TestLeadRepo_UpdateStatus_NotFound(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectExec("UPDATE leads SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewLeadRepo(db).UpdateStatus(context.Background(), "ghost", domain.LeadResponded)
	if !errors.Is(err, reply.ErrLeadNotFound) {
		t.Errorf("expected reply.ErrLeadNotFound, got %v", err)
	}
}

func TestLeadRepo_UnsubscribeByCompany(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("UPDATE leads SET status = 'unsubscribed'").
		WithArgs("5", "acme.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("l1").AddRow("l2"))

	ids, err := NewLeadRepo(db).UnsubscribeByCompany(context.Background(), "5", "acme.com")
	if err != nil {
		t.Fatalf("UnsubscribeByCompany: %v", err)
	}
	if len(ids) != 2 || ids[0] != "l1" || ids[1] != "l2" {
		t.Errorf("unexpected ids: %v", ids)
	}
}

func TestLeadRepo_UnsubscribeByCompany_RejectsEmptyKey(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	// An empty grouping key must never reach the database: it would match
	// every ungrouped lead in the campaign.
	if _, err := NewLeadRepo(db).UnsubscribeByCompany(context.Background(), "5", ""); err == nil {
		t.Fatal("expected error for empty company website")
	}
}

func TestLeadRepo_Unsubscribe(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectExec("UPDATE leads SET status = 'unsubscribed'").
		WithArgs("l1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewLeadRepo(db).Unsubscribe(context.Background(), "l1"); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}
}
