package repository

import (
	"errors"
	"testing"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFunnelTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Lead{}, &domain.Submission{}); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return db
}

func TestLeadRepo_DuplicateEmail(t *testing.T) {
	db := setupFunnelTestDB(t)
	repo := NewLeadRepository(db)

	if err := repo.Create(&domain.Lead{PublicID: "a", Email: "user@example.com"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err := repo.Create(&domain.Lead{PublicID: "b", Email: "user@example.com"})
	if !errors.Is(err, common.ErrLeadExists) {
		t.Errorf("expected ErrLeadExists, got %v", err)
	}

	lead, err := repo.FindByEmail("user@example.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if lead.PublicID != "a" {
		t.Errorf("expected original lead, got %q", lead.PublicID)
	}
}

func TestLeadRepo_FindByEmailNotFound(t *testing.T) {
	db := setupFunnelTestDB(t)
	repo := NewLeadRepository(db)

	if _, err := repo.FindByEmail("nobody@example.com"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmissionRepo_RoundTrip(t *testing.T) {
	db := setupFunnelTestDB(t)
	repo := NewSubmissionRepository(db)

	sub := &domain.Submission{
		PublicID:   "pub-1",
		Email:      "user@example.com",
		AnswersRaw: []byte(`[{"item_id":"q1","value":2}]`),
		Score:      7,
		Level:      "medium",
		PinSource:  domain.SourceStore,
		PinRevID:   42,
		PinHash:    "abc",
	}
	if err := repo.Create(sub); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.FindByPublicID("pub-1")
	if err != nil {
		t.Fatalf("FindByPublicID failed: %v", err)
	}
	if got.Level != "medium" || got.PinRevID != 42 {
		t.Errorf("round trip mismatch: %+v", got)
	}

	pin := got.Pin()
	if pin == nil || pin.RevisionID != 42 || pin.Source != domain.SourceStore {
		t.Errorf("pin reconstruction wrong: %+v", pin)
	}

	if _, err := repo.FindByPublicID("missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
