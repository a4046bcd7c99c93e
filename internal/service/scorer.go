package service

import "github.com/beaconhq/beacon-backend/internal/domain"

// Scorer turns assessment answers into a result-level key. The real
// scoring engine lives outside this subsystem; this interface is the
// seam it plugs into.
type Scorer interface {
	Score(answers []domain.Answer) (level string, score int)
}

// thresholdScorer is the default collaborator: total the answer values
// and bucket by the mean.
type thresholdScorer struct{}

// NewThresholdScorer returns the built-in mean-threshold scorer
func NewThresholdScorer() Scorer {
	return thresholdScorer{}
}

func (thresholdScorer) Score(answers []domain.Answer) (string, int) {
	total := 0
	for _, a := range answers {
		total += a.Value
	}
	if len(answers) == 0 {
		return "low", 0
	}

	mean := float64(total) / float64(len(answers))
	switch {
	case mean < 1.0:
		return "low", total
	case mean < 2.0:
		return "medium", total
	default:
		return "high", total
	}
}
