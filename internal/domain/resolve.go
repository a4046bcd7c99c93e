package domain

import (
	"encoding/json"
	"time"
)

// ResolveRequest asks the resolver for the single document that should
// be shown for an identity. Role is opaque input from the auth layer;
// the resolver never re-derives it.
type ResolveRequest struct {
	Descriptor IdentityDescriptor
	Pin        *Pin
	Preview    bool
	Role       string
}

// Resolution is a resolved document plus its provenance. Pin is the new
// resolution reference for the caller to persist downstream (on the pin
// tier it is the caller's original pin, unchanged).
type Resolution struct {
	Document   json.RawMessage `json:"document"`
	Source     string          `json:"source"`
	Hash       string          `json:"hash,omitempty"`
	ResolvedAt time.Time       `json:"resolved_at"`
	Pin        *Pin            `json:"pin,omitempty"`
}
