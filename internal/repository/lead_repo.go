package repository

import (
	"errors"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"gorm.io/gorm"
)

// LeadRepository waitlist lead data access
type LeadRepository interface {
	Create(lead *domain.Lead) error
	FindByEmail(email string) (*domain.Lead, error)
	List(page, limit int) ([]*domain.Lead, int64, error)
}

type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new LeadRepository
func NewLeadRepository(db *gorm.DB) LeadRepository {
	if db == nil {
		return unavailableLeadRepository{}
	}
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(lead *domain.Lead) error {
	err := r.db.Create(lead).Error
	if IsDuplicateEntry(err) {
		return common.ErrLeadExists
	}
	return err
}

func (r *leadRepository) FindByEmail(email string) (*domain.Lead, error) {
	var lead domain.Lead
	err := r.db.Where("email = ?", email).First(&lead).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) List(page, limit int) ([]*domain.Lead, int64, error) {
	var leads []*domain.Lead
	var total int64

	if err := r.db.Model(&domain.Lead{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&leads).Error
	return leads, total, err
}
