package service

import (
	"errors"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/content"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"github.com/beaconhq/beacon-backend/internal/repository"
	"github.com/beaconhq/beacon-backend/pkg/logger"
)

// RevisionMeta carries the authoring metadata for a new revision
type RevisionMeta struct {
	Notes     string
	CreatedBy string
}

// ContentService is the write/admin surface of the versioned content
// store: draft import, revision history, pointer management, identity
// lifecycle.
type ContentService interface {
	CreateRevision(kind string, raw []byte, meta RevisionMeta) (*domain.ContentRevision, []domain.FieldError, error)
	ImportQuestionSet(in content.TabularInput, meta RevisionMeta) (*domain.ContentRevision, []domain.FieldError, error)

	ListIdentities() ([]domain.IdentitySummary, error)
	ListRevisions(identityID uint64) ([]*domain.ContentRevision, error)
	GetRevision(revisionID uint64) (*domain.ContentRevision, error)

	SetPublished(identityID, revisionID uint64) error
	SetPreview(identityID, revisionID uint64) error
	GetPointer(identityID uint64) (*domain.ContentPointer, error)

	Archive(identityID uint64) error
	Unarchive(identityID uint64) error
	Delete(identityID uint64) error
}

type contentService struct {
	identities repository.IdentityRepository
	revisions  repository.RevisionRepository
	pointers   repository.PointerRepository
}

// NewContentService creates a new ContentService
func NewContentService(
	identities repository.IdentityRepository,
	revisions repository.RevisionRepository,
	pointers repository.PointerRepository,
) ContentService {
	return &contentService{
		identities: identities,
		revisions:  revisions,
		pointers:   pointers,
	}
}

// CreateRevision validates and normalizes the document, computes its
// hash, allocates the next revision number for the identity and inserts.
// A unique-constraint rejection means another writer won the number: the
// current max is re-read and the insert retried exactly once before the
// error is surfaced.
func (s *contentService) CreateRevision(kind string, raw []byte, meta RevisionMeta) (*domain.ContentRevision, []domain.FieldError, error) {
	norm, fieldErrs := content.Validate(kind, raw)
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}
	return s.storeRevision(norm, meta)
}

// ImportQuestionSet runs the tabular ingestion pipeline and stores the
// assembled document as a new draft revision. A failed import creates
// nothing; the aggregated error list is the deliverable.
func (s *contentService) ImportQuestionSet(in content.TabularInput, meta RevisionMeta) (*domain.ContentRevision, []domain.FieldError, error) {
	norm, fieldErrs := content.BuildQuestionSet(in)
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}
	return s.storeRevision(norm, meta)
}

func (s *contentService) storeRevision(norm *content.Normalized, meta RevisionMeta) (*domain.ContentRevision, []domain.FieldError, error) {
	identity, err := s.identities.FindOrCreate(norm.Descriptor())
	if err != nil {
		return nil, nil, err
	}

	hash := content.Hash(norm.Canonical)

	revisionNo, err := s.revisions.NextRevisionNo(identity.ID)
	if err != nil {
		return nil, nil, err
	}

	revision := &domain.ContentRevision{
		IdentityID:    identity.ID,
		RevisionNo:    revisionNo,
		Status:        domain.RevisionDraft,
		SchemaVersion: norm.SchemaVersion,
		Document:      norm.Canonical,
		ContentHash:   hash,
		Notes:         meta.Notes,
		CreatedBy:     meta.CreatedBy,
	}

	err = s.revisions.Create(revision)
	if repository.IsDuplicateEntry(err) {
		// Lost the allocation race; re-read and retry once, bounded.
		logger.GetLogger().Warn().
			Uint64("identity_id", identity.ID).
			Uint("revision_no", revisionNo).
			Msg("revision number collision, retrying")

		revisionNo, err = s.revisions.NextRevisionNo(identity.ID)
		if err != nil {
			return nil, nil, err
		}
		revision.ID = 0
		revision.RevisionNo = revisionNo
		err = s.revisions.Create(revision)
		if repository.IsDuplicateEntry(err) {
			return nil, nil, common.ErrRevisionConflict
		}
	}
	if err != nil {
		return nil, nil, err
	}

	return revision, nil, nil
}

// ListIdentities lists active identities together with their revision
// counts and the revision numbers their pointer currently references.
func (s *contentService) ListIdentities() ([]domain.IdentitySummary, error) {
	identities, err := s.identities.List(false)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.IdentitySummary, 0, len(identities))
	for _, identity := range identities {
		summary := domain.IdentitySummary{ContentIdentity: *identity}

		count, err := s.revisions.CountByIdentity(identity.ID)
		if err != nil {
			return nil, err
		}
		summary.RevisionCount = count

		pointer, err := s.pointers.Find(identity.ID)
		if err == nil {
			summary.PublishedRevisionNo = s.revisionNo(pointer.PublishedRevisionID)
			summary.PreviewRevisionNo = s.revisionNo(pointer.PreviewRevisionID)
		} else if !errors.Is(err, common.ErrPointerNotFound) {
			return nil, err
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *contentService) revisionNo(revisionID *uint64) *uint {
	if revisionID == nil {
		return nil
	}
	revision, err := s.revisions.FindByID(*revisionID)
	if err != nil {
		return nil
	}
	return &revision.RevisionNo
}

func (s *contentService) ListRevisions(identityID uint64) ([]*domain.ContentRevision, error) {
	if _, err := s.identities.FindByID(identityID); err != nil {
		return nil, err
	}
	return s.revisions.ListByIdentity(identityID)
}

func (s *contentService) GetRevision(revisionID uint64) (*domain.ContentRevision, error) {
	return s.revisions.FindByID(revisionID)
}

// SetPublished points the identity's published reference at a revision.
// A revision that does not belong to the identity is a validation
// error; the existing pointer is left untouched.
func (s *contentService) SetPublished(identityID, revisionID uint64) error {
	if err := s.checkOwnership(identityID, revisionID); err != nil {
		return err
	}
	return s.pointers.SetPublished(identityID, revisionID)
}

// SetPreview points the identity's preview reference at a revision,
// with the same ownership check as SetPublished.
func (s *contentService) SetPreview(identityID, revisionID uint64) error {
	if err := s.checkOwnership(identityID, revisionID); err != nil {
		return err
	}
	return s.pointers.SetPreview(identityID, revisionID)
}

func (s *contentService) checkOwnership(identityID, revisionID uint64) error {
	revision, err := s.revisions.FindByID(revisionID)
	if err != nil {
		return err
	}
	if revision.IdentityID != identityID {
		return common.ErrRevisionNotOwned
	}
	return nil
}

func (s *contentService) GetPointer(identityID uint64) (*domain.ContentPointer, error) {
	return s.pointers.Find(identityID)
}

// Archive soft-deletes the identity: hidden from listing and
// resolution, reversible.
func (s *contentService) Archive(identityID uint64) error {
	return s.identities.SetStatus(identityID, domain.IdentityArchived)
}

// Unarchive restores an archived identity
func (s *contentService) Unarchive(identityID uint64) error {
	return s.identities.SetStatus(identityID, domain.IdentityActive)
}

// Delete removes the identity, its revisions and its pointer for good.
// Submissions keep their denormalized pin snapshot and are untouched.
func (s *contentService) Delete(identityID uint64) error {
	return s.identities.HardDelete(identityID)
}
