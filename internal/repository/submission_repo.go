package repository

import (
	"errors"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"gorm.io/gorm"
)

// SubmissionRepository assessment submission data access
type SubmissionRepository interface {
	Create(submission *domain.Submission) error
	FindByPublicID(publicID string) (*domain.Submission, error)
	List(page, limit int) ([]*domain.Submission, int64, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	if db == nil {
		return unavailableSubmissionRepository{}
	}
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *domain.Submission) error {
	return r.db.Create(submission).Error
}

func (r *submissionRepository) FindByPublicID(publicID string) (*domain.Submission, error) {
	var submission domain.Submission
	err := r.db.Where("public_id = ?", publicID).First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) List(page, limit int) ([]*domain.Submission, int64, error) {
	var submissions []*domain.Submission
	var total int64

	if err := r.db.Model(&domain.Submission{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&submissions).Error
	return submissions, total, err
}
