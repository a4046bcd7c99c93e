package service

import (
	"testing"

	"github.com/beaconhq/beacon-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func answers(values ...int) []domain.Answer {
	out := make([]domain.Answer, len(values))
	for i, v := range values {
		out[i] = domain.Answer{ItemID: "q", Value: v}
	}
	return out
}

func TestThresholdScorer_Buckets(t *testing.T) {
	scorer := NewThresholdScorer()

	cases := []struct {
		name  string
		in    []domain.Answer
		level string
		score int
	}{
		{"all zeros", answers(0, 0, 0, 0), "low", 0},
		{"just under one", answers(0, 1, 1, 1), "low", 3},
		{"mean exactly one", answers(1, 1, 1, 1), "medium", 4},
		{"mid range", answers(1, 2, 2, 1), "medium", 6},
		{"mean exactly two", answers(2, 2, 2, 2), "high", 8},
		{"all threes", answers(3, 3, 3, 3), "high", 12},
		{"empty", nil, "low", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			level, score := scorer.Score(tc.in)
			assert.Equal(t, tc.level, level)
			assert.Equal(t, tc.score, score)
		})
	}
}
