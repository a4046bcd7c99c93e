package content

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Hash computes the integrity digest of a canonical document
// serialization. Deterministic: the canonical form has a fixed field
// order, so key-ordering artifacts from upstream parsing cannot leak
// into the digest. Used as a dedup signal between revisions and as the
// integrity tag carried in resolution pins.
func Hash(canonical []byte) string {
	sum := blake3.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}
