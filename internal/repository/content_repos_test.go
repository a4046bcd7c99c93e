package repository

import (
	"errors"
	"testing"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupContentTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.ContentIdentity{},
		&domain.ContentRevision{},
		&domain.ContentPointer{},
	); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return db
}

func TestIdentityRepo_FindOrCreate(t *testing.T) {
	db := setupContentTestDB(t)
	repo := NewIdentityRepository(db)

	desc := domain.IdentityDescriptor{Kind: domain.KindResults, Version: "v1", Level: "medium"}

	first, err := repo.FindOrCreate(desc)
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}
	if first.Status != domain.IdentityActive {
		t.Errorf("expected active status, got %q", first.Status)
	}

	second, err := repo.FindOrCreate(desc)
	if err != nil {
		t.Fatalf("second FindOrCreate failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same identity row, got %d and %d", first.ID, second.ID)
	}
}

func TestIdentityRepo_UniqueKeys(t *testing.T) {
	db := setupContentTestDB(t)
	repo := NewIdentityRepository(db)

	// Differing only in level: distinct identities
	a, _ := repo.FindOrCreate(domain.IdentityDescriptor{Kind: domain.KindResults, Version: "v1", Level: "low"})
	b, _ := repo.FindOrCreate(domain.IdentityDescriptor{Kind: domain.KindResults, Version: "v1", Level: "high"})
	if a.ID == b.ID {
		t.Errorf("expected distinct identities for distinct levels")
	}
}

func TestIdentityRepo_SetStatus(t *testing.T) {
	db := setupContentTestDB(t)
	repo := NewIdentityRepository(db)

	identity, _ := repo.FindOrCreate(domain.IdentityDescriptor{Kind: domain.KindQuestionSet, Version: "v1", Locale: "en"})

	if err := repo.SetStatus(identity.ID, domain.IdentityArchived); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	active, err := repo.List(false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("archived identity still listed: %d rows", len(active))
	}

	all, _ := repo.List(true)
	if len(all) != 1 {
		t.Errorf("expected 1 row with archived included, got %d", len(all))
	}

	if err := repo.SetStatus(9999, domain.IdentityArchived); !errors.Is(err, common.ErrIdentityNotFound) {
		t.Errorf("expected ErrIdentityNotFound for unknown id, got %v", err)
	}
}

func TestIdentityRepo_HardDeleteCascades(t *testing.T) {
	db := setupContentTestDB(t)
	identities := NewIdentityRepository(db)
	revisions := NewRevisionRepository(db)
	pointers := NewPointerRepository(db)

	identity, _ := identities.FindOrCreate(domain.IdentityDescriptor{Kind: domain.KindResults, Version: "v1", Level: "low"})
	rev := &domain.ContentRevision{IdentityID: identity.ID, RevisionNo: 1, Document: []byte(`{}`)}
	if err := revisions.Create(rev); err != nil {
		t.Fatalf("revision create failed: %v", err)
	}
	if err := pointers.SetPublished(identity.ID, rev.ID); err != nil {
		t.Fatalf("pointer set failed: %v", err)
	}

	if err := identities.HardDelete(identity.ID); err != nil {
		t.Fatalf("HardDelete failed: %v", err)
	}

	if _, err := identities.FindByID(identity.ID); !errors.Is(err, common.ErrIdentityNotFound) {
		t.Errorf("identity survived delete: %v", err)
	}
	if _, err := revisions.FindByID(rev.ID); !errors.Is(err, common.ErrRevisionNotFound) {
		t.Errorf("revision survived delete: %v", err)
	}
	if _, err := pointers.Find(identity.ID); !errors.Is(err, common.ErrPointerNotFound) {
		t.Errorf("pointer survived delete: %v", err)
	}
}

func TestRevisionRepo_NextRevisionNo(t *testing.T) {
	db := setupContentTestDB(t)
	identities := NewIdentityRepository(db)
	revisions := NewRevisionRepository(db)

	identity, _ := identities.FindOrCreate(domain.IdentityDescriptor{Kind: domain.KindResults, Version: "v1", Level: "low"})

	no, err := revisions.NextRevisionNo(identity.ID)
	if err != nil || no != 1 {
		t.Fatalf("expected first number 1, got %d (%v)", no, err)
	}

	for i := uint(1); i <= 3; i++ {
		if err := revisions.Create(&domain.ContentRevision{IdentityID: identity.ID, RevisionNo: i, Document: []byte(`{}`)}); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	no, _ = revisions.NextRevisionNo(identity.ID)
	if no != 4 {
		t.Errorf("expected next number 4, got %d", no)
	}
}

func TestRevisionRepo_UniqueNumberPerIdentity(t *testing.T) {
	db := setupContentTestDB(t)
	identities := NewIdentityRepository(db)
	revisions := NewRevisionRepository(db)

	identity, _ := identities.FindOrCreate(domain.IdentityDescriptor{Kind: domain.KindResults, Version: "v1", Level: "low"})
	other, _ := identities.FindOrCreate(domain.IdentityDescriptor{Kind: domain.KindResults, Version: "v1", Level: "high"})

	if err := revisions.Create(&domain.ContentRevision{IdentityID: identity.ID, RevisionNo: 1, Document: []byte(`{}`)}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err := revisions.Create(&domain.ContentRevision{IdentityID: identity.ID, RevisionNo: 1, Document: []byte(`{}`)})
	if !IsDuplicateEntry(err) {
		t.Errorf("expected duplicate-entry error, got %v", err)
	}

	// Same number under a different identity is fine
	if err := revisions.Create(&domain.ContentRevision{IdentityID: other.ID, RevisionNo: 1, Document: []byte(`{}`)}); err != nil {
		t.Errorf("cross-identity create failed: %v", err)
	}
}

func TestRevisionRepo_ListNewestFirst(t *testing.T) {
	db := setupContentTestDB(t)
	identities := NewIdentityRepository(db)
	revisions := NewRevisionRepository(db)

	identity, _ := identities.FindOrCreate(domain.IdentityDescriptor{Kind: domain.KindResults, Version: "v1", Level: "low"})
	for i := uint(1); i <= 3; i++ {
		revisions.Create(&domain.ContentRevision{IdentityID: identity.ID, RevisionNo: i, Document: []byte(`{}`)})
	}

	list, err := revisions.ListByIdentity(identity.ID)
	if err != nil {
		t.Fatalf("ListByIdentity failed: %v", err)
	}
	if len(list) != 3 || list[0].RevisionNo != 3 {
		t.Errorf("expected 3 revisions newest first, got %d rows, first no %d", len(list), list[0].RevisionNo)
	}
}

func TestPointerRepo_UpsertPreservesOtherReference(t *testing.T) {
	db := setupContentTestDB(t)
	pointers := NewPointerRepository(db)

	if err := pointers.SetPublished(1, 10); err != nil {
		t.Fatalf("SetPublished failed: %v", err)
	}
	if err := pointers.SetPreview(1, 11); err != nil {
		t.Fatalf("SetPreview failed: %v", err)
	}

	pointer, err := pointers.Find(1)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if pointer.PublishedRevisionID == nil || *pointer.PublishedRevisionID != 10 {
		t.Errorf("published reference lost: %v", pointer.PublishedRevisionID)
	}
	if pointer.PreviewRevisionID == nil || *pointer.PreviewRevisionID != 11 {
		t.Errorf("preview reference wrong: %v", pointer.PreviewRevisionID)
	}

	// Moving published must not clobber preview
	if err := pointers.SetPublished(1, 12); err != nil {
		t.Fatalf("second SetPublished failed: %v", err)
	}
	pointer, _ = pointers.Find(1)
	if *pointer.PublishedRevisionID != 12 || *pointer.PreviewRevisionID != 11 {
		t.Errorf("upsert clobbered a reference: published=%v preview=%v",
			*pointer.PublishedRevisionID, *pointer.PreviewRevisionID)
	}
}
