package repository

import (
	"errors"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"gorm.io/gorm"
)

// IdentityRepository content identity data access
type IdentityRepository interface {
	FindByID(id uint64) (*domain.ContentIdentity, error)
	FindByKeys(desc domain.IdentityDescriptor) (*domain.ContentIdentity, error)
	FindOrCreate(desc domain.IdentityDescriptor) (*domain.ContentIdentity, error)
	List(includeArchived bool) ([]*domain.ContentIdentity, error)
	SetStatus(id uint64, status string) error
	HardDelete(id uint64) error
}

type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository creates a new IdentityRepository
func NewIdentityRepository(db *gorm.DB) IdentityRepository {
	if db == nil {
		return unavailableIdentityRepository{}
	}
	return &identityRepository{db: db}
}

func (r *identityRepository) FindByID(id uint64) (*domain.ContentIdentity, error) {
	var identity domain.ContentIdentity
	err := r.db.First(&identity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrIdentityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *identityRepository) FindByKeys(desc domain.IdentityDescriptor) (*domain.ContentIdentity, error) {
	var identity domain.ContentIdentity
	err := r.db.
		Where("kind = ? AND version = ? AND locale = ? AND level = ?",
			desc.Kind, desc.Version, desc.Locale, desc.Level).
		First(&identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrIdentityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// FindOrCreate looks an identity up by its discriminating keys, creating
// the row on first write. A concurrent create racing on the unique key
// index resolves by re-reading.
func (r *identityRepository) FindOrCreate(desc domain.IdentityDescriptor) (*domain.ContentIdentity, error) {
	identity, err := r.FindByKeys(desc)
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, common.ErrIdentityNotFound) {
		return nil, err
	}

	created := &domain.ContentIdentity{
		Kind:    desc.Kind,
		Version: desc.Version,
		Locale:  desc.Locale,
		Level:   desc.Level,
		Status:  domain.IdentityActive,
	}
	if err := r.db.Create(created).Error; err != nil {
		if IsDuplicateEntry(err) {
			return r.FindByKeys(desc)
		}
		return nil, err
	}
	return created, nil
}

func (r *identityRepository) List(includeArchived bool) ([]*domain.ContentIdentity, error) {
	var identities []*domain.ContentIdentity
	q := r.db.Order("kind, version, locale, level")
	if !includeArchived {
		q = q.Where("status = ?", domain.IdentityActive)
	}
	err := q.Find(&identities).Error
	return identities, err
}

func (r *identityRepository) SetStatus(id uint64, status string) error {
	res := r.db.Model(&domain.ContentIdentity{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrIdentityNotFound
	}
	return nil
}

// HardDelete removes the identity with all its revisions and pointer in
// one transaction. Downstream usage records (submissions) keep only a
// denormalized snapshot and are deliberately untouched.
func (r *identityRepository) HardDelete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("identity_id = ?", id).Delete(&domain.ContentPointer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("identity_id = ?", id).Delete(&domain.ContentRevision{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.ContentIdentity{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return common.ErrIdentityNotFound
		}
		return nil
	})
}
