package repository

import (
	"errors"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PointerRepository holds the single mutable published/preview row per
// identity. Ownership validation (revision belongs to identity) lives
// in the service layer; this layer only persists.
type PointerRepository interface {
	Find(identityID uint64) (*domain.ContentPointer, error)
	SetPublished(identityID, revisionID uint64) error
	SetPreview(identityID, revisionID uint64) error
}

type pointerRepository struct {
	db *gorm.DB
}

// NewPointerRepository creates a new PointerRepository
func NewPointerRepository(db *gorm.DB) PointerRepository {
	if db == nil {
		return unavailablePointerRepository{}
	}
	return &pointerRepository{db: db}
}

func (r *pointerRepository) Find(identityID uint64) (*domain.ContentPointer, error) {
	var pointer domain.ContentPointer
	err := r.db.Where("identity_id = ?", identityID).First(&pointer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrPointerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pointer, nil
}

// SetPublished upserts the pointer row, touching only the published
// reference and the timestamp. Last writer wins: pointer mutation is a
// rare human-triggered admin action and a lost update is visible and
// reversible.
func (r *pointerRepository) SetPublished(identityID, revisionID uint64) error {
	return r.upsert(identityID, "published_revision_id", revisionID)
}

// SetPreview upserts the pointer row, touching only the preview
// reference and the timestamp.
func (r *pointerRepository) SetPreview(identityID, revisionID uint64) error {
	return r.upsert(identityID, "preview_revision_id", revisionID)
}

func (r *pointerRepository) upsert(identityID uint64, column string, revisionID uint64) error {
	pointer := domain.ContentPointer{IdentityID: identityID}
	switch column {
	case "published_revision_id":
		pointer.PublishedRevisionID = &revisionID
	case "preview_revision_id":
		pointer.PreviewRevisionID = &revisionID
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{column, "updated_at"}),
	}).Create(&pointer).Error
}
