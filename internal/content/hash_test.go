package content

import (
	"testing"

	"github.com/beaconhq/beacon-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHash_StableAcrossInputKeyOrder(t *testing.T) {
	// The same document with JSON keys in different order must produce
	// the same canonical form and therefore the same digest.
	rawA := []byte(`{
		"schema_version": "results.v1",
		"version": "v1",
		"level": "low",
		"label": "Steady Ground",
		"summary": "s",
		"key_patterns": ["p"],
		"first_focus": ["f"],
		"positioning": "pos"
	}`)
	rawB := []byte(`{
		"positioning": "pos",
		"first_focus": ["f"],
		"key_patterns": ["p"],
		"summary": "s",
		"label": "Steady Ground",
		"level": "low",
		"version": "v1",
		"schema_version": "results.v1"
	}`)

	normA, errsA := Validate(domain.KindResults, rawA)
	normB, errsB := Validate(domain.KindResults, rawB)

	assert.Empty(t, errsA)
	assert.Empty(t, errsB)
	assert.Equal(t, normA.Canonical, normB.Canonical)
	assert.Equal(t, Hash(normA.Canonical), Hash(normB.Canonical))
}

func TestHash_ChangesWithContent(t *testing.T) {
	a := Hash([]byte(`{"label":"a"}`))
	b := Hash([]byte(`{"label":"b"}`))

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 64)
	assert.Len(t, b, 64)
}

func TestHash_Deterministic(t *testing.T) {
	payload := []byte(`{"schema_version":"questionset.v1"}`)
	assert.Equal(t, Hash(payload), Hash(payload))
}
