package repository

import (
	"errors"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"gorm.io/gorm"
)

// RevisionRepository content revision data access. Revisions are
// append-only: there is no update or single-row delete here by design.
type RevisionRepository interface {
	Create(revision *domain.ContentRevision) error
	FindByID(id uint64) (*domain.ContentRevision, error)
	ListByIdentity(identityID uint64) ([]*domain.ContentRevision, error)
	NextRevisionNo(identityID uint64) (uint, error)
	CountByIdentity(identityID uint64) (int64, error)
}

type revisionRepository struct {
	db *gorm.DB
}

// NewRevisionRepository creates a new RevisionRepository
func NewRevisionRepository(db *gorm.DB) RevisionRepository {
	if db == nil {
		return unavailableRevisionRepository{}
	}
	return &revisionRepository{db: db}
}

func (r *revisionRepository) Create(revision *domain.ContentRevision) error {
	return r.db.Create(revision).Error
}

func (r *revisionRepository) FindByID(id uint64) (*domain.ContentRevision, error) {
	var revision domain.ContentRevision
	err := r.db.First(&revision, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrRevisionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &revision, nil
}

func (r *revisionRepository) ListByIdentity(identityID uint64) ([]*domain.ContentRevision, error) {
	var revisions []*domain.ContentRevision
	err := r.db.
		Where("identity_id = ?", identityID).
		Order("revision_no DESC").
		Find(&revisions).Error
	return revisions, err
}

// NextRevisionNo returns max(revision_no)+1 for the identity, or 1 when
// no revisions exist. Concurrent allocators can both read the same
// number; the unique index on (identity_id, revision_no) arbitrates and
// the service retries once.
func (r *revisionRepository) NextRevisionNo(identityID uint64) (uint, error) {
	var maxNo *uint
	err := r.db.Model(&domain.ContentRevision{}).
		Where("identity_id = ?", identityID).
		Select("MAX(revision_no)").
		Scan(&maxNo).Error
	if err != nil {
		return 1, err
	}
	if maxNo == nil {
		return 1, nil
	}
	return *maxNo + 1, nil
}

func (r *revisionRepository) CountByIdentity(identityID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.ContentRevision{}).
		Where("identity_id = ?", identityID).
		Count(&count).Error
	return count, err
}
