package repository

import (
	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/domain"
)

// The constructors in this package return these implementations when
// handed a nil *gorm.DB, so a process booted without a database serves
// every store lookup as ErrStoreUnavailable instead of dereferencing
// nil. The resolver treats that error like any other store failure and
// falls through to the bundled file documents; write surfaces surface
// it to the caller.

type unavailableIdentityRepository struct{}

func (unavailableIdentityRepository) FindByID(uint64) (*domain.ContentIdentity, error) {
	return nil, common.ErrStoreUnavailable
}

func (unavailableIdentityRepository) FindByKeys(domain.IdentityDescriptor) (*domain.ContentIdentity, error) {
	return nil, common.ErrStoreUnavailable
}

func (unavailableIdentityRepository) FindOrCreate(domain.IdentityDescriptor) (*domain.ContentIdentity, error) {
	return nil, common.ErrStoreUnavailable
}

func (unavailableIdentityRepository) List(bool) ([]*domain.ContentIdentity, error) {
	return nil, common.ErrStoreUnavailable
}

func (unavailableIdentityRepository) SetStatus(uint64, string) error {
	return common.ErrStoreUnavailable
}

func (unavailableIdentityRepository) HardDelete(uint64) error {
	return common.ErrStoreUnavailable
}

type unavailableRevisionRepository struct{}

func (unavailableRevisionRepository) Create(*domain.ContentRevision) error {
	return common.ErrStoreUnavailable
}

func (unavailableRevisionRepository) FindByID(uint64) (*domain.ContentRevision, error) {
	return nil, common.ErrStoreUnavailable
}

func (unavailableRevisionRepository) ListByIdentity(uint64) ([]*domain.ContentRevision, error) {
	return nil, common.ErrStoreUnavailable
}

func (unavailableRevisionRepository) NextRevisionNo(uint64) (uint, error) {
	return 0, common.ErrStoreUnavailable
}

func (unavailableRevisionRepository) CountByIdentity(uint64) (int64, error) {
	return 0, common.ErrStoreUnavailable
}

type unavailablePointerRepository struct{}

func (unavailablePointerRepository) Find(uint64) (*domain.ContentPointer, error) {
	return nil, common.ErrStoreUnavailable
}

func (unavailablePointerRepository) SetPublished(uint64, uint64) error {
	return common.ErrStoreUnavailable
}

func (unavailablePointerRepository) SetPreview(uint64, uint64) error {
	return common.ErrStoreUnavailable
}

type unavailableLeadRepository struct{}

func (unavailableLeadRepository) Create(*domain.Lead) error {
	return common.ErrStoreUnavailable
}

func (unavailableLeadRepository) FindByEmail(string) (*domain.Lead, error) {
	return nil, common.ErrStoreUnavailable
}

func (unavailableLeadRepository) List(int, int) ([]*domain.Lead, int64, error) {
	return nil, 0, common.ErrStoreUnavailable
}

type unavailableSubmissionRepository struct{}

func (unavailableSubmissionRepository) Create(*domain.Submission) error {
	return common.ErrStoreUnavailable
}

func (unavailableSubmissionRepository) FindByPublicID(string) (*domain.Submission, error) {
	return nil, common.ErrStoreUnavailable
}

func (unavailableSubmissionRepository) List(int, int) ([]*domain.Submission, int64, error) {
	return nil, 0, common.ErrStoreUnavailable
}
