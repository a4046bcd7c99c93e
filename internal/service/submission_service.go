package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/beaconhq/beacon-backend/internal/config"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"github.com/beaconhq/beacon-backend/internal/repository"
	"github.com/google/uuid"
)

// SubmissionResult is what the funnel shows right after scoring: the
// stored submission plus the resolved results pack.
type SubmissionResult struct {
	Submission *domain.Submission `json:"submission"`
	Results    *domain.Resolution `json:"results"`
}

// SubmissionService records completed assessments. The results pack
// shown for the scored level is resolved through the content resolver
// and its pin is snapshotted onto the submission row, so the result
// stays reproducible however the pointers move later.
type SubmissionService interface {
	CreateSubmission(req *domain.CreateSubmissionRequest) (*SubmissionResult, []domain.FieldError, error)
	GetSubmission(publicID string) (*SubmissionResult, error)
	ListSubmissions(page, limit int) ([]*domain.Submission, int64, error)
}

type submissionService struct {
	repo     repository.SubmissionRepository
	resolver ResolverService
	scorer   Scorer
	cfg      config.ContentConfig
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	repo repository.SubmissionRepository,
	resolver ResolverService,
	scorer Scorer,
	cfg config.ContentConfig,
) SubmissionService {
	return &submissionService{repo: repo, resolver: resolver, scorer: scorer, cfg: cfg}
}

func (s *submissionService) CreateSubmission(req *domain.CreateSubmissionRequest) (*SubmissionResult, []domain.FieldError, error) {
	var fieldErrs []domain.FieldError
	if len(req.Answers) == 0 {
		fieldErrs = append(fieldErrs, domain.FieldError{Location: "answers", Message: "at least one answer is required"})
	}
	for i, a := range req.Answers {
		if strings.TrimSpace(a.ItemID) == "" {
			fieldErrs = append(fieldErrs, domain.FieldError{
				Location: fmt.Sprintf("answers[%d].item_id", i),
				Message:  "item id is required",
			})
		}
		if a.Value < 0 || a.Value > 3 {
			fieldErrs = append(fieldErrs, domain.FieldError{
				Location: fmt.Sprintf("answers[%d].value", i),
				Message:  fmt.Sprintf("value must be 0..3, got %d", a.Value),
			})
		}
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	level, score := s.scorer.Score(req.Answers)

	resolution, err := s.resolver.Resolve(domain.ResolveRequest{
		Descriptor: domain.IdentityDescriptor{
			Kind:    domain.KindResults,
			Version: s.cfg.Version,
			Level:   level,
		},
	})
	if err != nil {
		return nil, nil, err
	}

	answersRaw, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, nil, err
	}

	submission := &domain.Submission{
		PublicID:   uuid.New().String(),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		AnswersRaw: answersRaw,
		Score:      score,
		Level:      level,
		ResolvedAt: resolution.ResolvedAt,
	}
	if pin := resolution.Pin; pin != nil {
		submission.PinSource = pin.Source
		submission.PinRevID = pin.RevisionID
		submission.PinHash = pin.ContentHash
	}

	if err := s.repo.Create(submission); err != nil {
		return nil, nil, err
	}

	return &SubmissionResult{Submission: submission, Results: resolution}, nil, nil
}

// GetSubmission re-resolves a stored submission's results pack through
// its pin, reproducing what the respondent originally saw.
func (s *submissionService) GetSubmission(publicID string) (*SubmissionResult, error) {
	submission, err := s.repo.FindByPublicID(publicID)
	if err != nil {
		return nil, err
	}

	resolution, err := s.resolver.Resolve(domain.ResolveRequest{
		Descriptor: domain.IdentityDescriptor{
			Kind:    domain.KindResults,
			Version: s.cfg.Version,
			Level:   submission.Level,
		},
		Pin: submission.Pin(),
	})
	if err != nil {
		return nil, err
	}

	return &SubmissionResult{Submission: submission, Results: resolution}, nil
}

func (s *submissionService) ListSubmissions(page, limit int) ([]*domain.Submission, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(page, limit)
}
