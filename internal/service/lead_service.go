package service

import (
	"errors"
	"strings"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"github.com/beaconhq/beacon-backend/internal/repository"
	"github.com/google/uuid"
)

// LeadService captures waitlist signups from the marketing site
type LeadService interface {
	CreateLead(req *domain.CreateLeadRequest) (*domain.Lead, error)
	ListLeads(page, limit int) ([]*domain.Lead, *common.Meta, error)
}

type leadService struct {
	repo repository.LeadRepository
}

// NewLeadService creates a new LeadService
func NewLeadService(repo repository.LeadRepository) LeadService {
	return &leadService{repo: repo}
}

// CreateLead records a signup. Signing up twice with the same email is
// idempotent: the existing lead is returned rather than an error.
func (s *leadService) CreateLead(req *domain.CreateLeadRequest) (*domain.Lead, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, common.ErrInvalidInput
	}

	lead := &domain.Lead{
		PublicID: uuid.New().String(),
		Email:    email,
		Name:     strings.TrimSpace(req.Name),
		Source:   strings.TrimSpace(req.Source),
		Consent:  req.Consent,
	}

	err := s.repo.Create(lead)
	if errors.Is(err, common.ErrLeadExists) {
		return s.repo.FindByEmail(email)
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *leadService) ListLeads(page, limit int) ([]*domain.Lead, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	leads, total, err := s.repo.List(page, limit)
	if err != nil {
		return nil, nil, err
	}
	return leads, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}
