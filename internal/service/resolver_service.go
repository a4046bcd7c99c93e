package service

import (
	"time"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/config"
	"github.com/beaconhq/beacon-backend/internal/content"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"github.com/beaconhq/beacon-backend/internal/repository"
	"github.com/beaconhq/beacon-backend/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Resolution tiers, in order
const (
	tierPin       = "pin"
	tierPreview   = "preview"
	tierPublished = "published"
	tierFile      = "file"
)

var resolutionTierTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "content_resolution_tier_total",
		Help: "Content resolution attempts per tier and outcome",
	},
	[]string{"tier", "outcome"},
)

// ResolverService returns the single content document that should be
// shown for an identity descriptor, walking the tiers pin -> preview ->
// published -> bundled file. Every tier failure is non-fatal and falls
// through; only a file-tier miss is fatal. This is the only component
// rendering code talks to.
type ResolverService interface {
	Resolve(req domain.ResolveRequest) (*domain.Resolution, error)
}

type resolverService struct {
	identities repository.IdentityRepository
	revisions  repository.RevisionRepository
	pointers   repository.PointerRepository
	privileged map[string]bool
}

// NewResolverService creates a new ResolverService. The privileged-role
// set comes from explicit configuration, not ambient lookups.
func NewResolverService(
	identities repository.IdentityRepository,
	revisions repository.RevisionRepository,
	pointers repository.PointerRepository,
	cfg config.ContentConfig,
) ResolverService {
	privileged := make(map[string]bool, len(cfg.PrivilegedRoles))
	for _, role := range cfg.PrivilegedRoles {
		privileged[role] = true
	}
	return &resolverService{
		identities: identities,
		revisions:  revisions,
		pointers:   pointers,
		privileged: privileged,
	}
}

func (s *resolverService) Resolve(req domain.ResolveRequest) (*domain.Resolution, error) {
	log := logger.GetLogger().With().
		Str("kind", req.Descriptor.Kind).
		Str("version", req.Descriptor.Version).
		Str("locale", req.Descriptor.Locale).
		Str("level", req.Descriptor.Level).
		Logger()

	// Tier 1: exact pin. A previously shown result must stay
	// reproducible even after the pointer has moved.
	if req.Pin != nil && req.Pin.Source == domain.SourceStore && req.Pin.RevisionID != 0 {
		revision, err := s.revisions.FindByID(req.Pin.RevisionID)
		switch {
		case err != nil:
			resolutionTierTotal.WithLabelValues(tierPin, "miss").Inc()
			log.Warn().Err(err).Uint64("revision_id", req.Pin.RevisionID).
				Msg("pin tier: pinned revision unavailable, falling through")
		case !content.SanityCheck(revision.Document):
			resolutionTierTotal.WithLabelValues(tierPin, "miss").Inc()
			log.Warn().Uint64("revision_id", revision.ID).
				Msg("pin tier: pinned revision failed sanity check, falling through")
		default:
			resolutionTierTotal.WithLabelValues(tierPin, "hit").Inc()
			return &domain.Resolution{
				Document:   revision.Document,
				Source:     domain.SourceStore,
				Hash:       revision.ContentHash,
				ResolvedAt: time.Now().UTC(),
				Pin:        req.Pin,
			}, nil
		}
	}

	identity := s.lookupIdentity(req.Descriptor, &log)

	// Tier 2: preview, only for privileged callers that asked for it.
	// An unprivileged caller must never see a preview revision.
	if req.Preview && s.privileged[req.Role] && identity != nil {
		if res := s.resolvePointer(identity, tierPreview, &log); res != nil {
			return res, nil
		}
	}

	// Tier 3: published
	if identity != nil {
		if res := s.resolvePointer(identity, tierPublished, &log); res != nil {
			return res, nil
		}
	}

	// Tier 4: bundled file fallback. The only fatal miss.
	norm, err := content.FallbackFor(req.Descriptor)
	if err != nil {
		resolutionTierTotal.WithLabelValues(tierFile, "miss").Inc()
		log.Error().Err(err).Msg("file tier: no bundled document, resolution failed")
		return nil, common.ErrNoContent
	}

	resolutionTierTotal.WithLabelValues(tierFile, "hit").Inc()
	log.Info().Msg("resolved from bundled file fallback")
	now := time.Now().UTC()
	return &domain.Resolution{
		Document:   norm.Canonical,
		Source:     domain.SourceFile,
		Hash:       content.Hash(norm.Canonical),
		ResolvedAt: now,
		Pin:        &domain.Pin{Source: domain.SourceFile, ResolvedAt: now},
	}, nil
}

// lookupIdentity finds the active identity for the descriptor. Not
// found, archived, and store errors all yield nil: each is a non-fatal
// reason to keep falling through.
func (s *resolverService) lookupIdentity(desc domain.IdentityDescriptor, log *zerolog.Logger) *domain.ContentIdentity {
	identity, err := s.identities.FindByKeys(desc)
	if err != nil {
		log.Info().Err(err).Msg("store tiers: identity lookup failed, falling through")
		return nil
	}
	if identity.Status == domain.IdentityArchived {
		log.Info().Uint64("identity_id", identity.ID).Msg("store tiers: identity archived, falling through")
		return nil
	}
	return identity
}

// resolvePointer attempts one pointer-backed tier (preview or
// published). nil means fall through to the next tier.
func (s *resolverService) resolvePointer(identity *domain.ContentIdentity, tier string, log *zerolog.Logger) *domain.Resolution {
	pointer, err := s.pointers.Find(identity.ID)
	if err != nil {
		resolutionTierTotal.WithLabelValues(tier, "miss").Inc()
		log.Info().Err(err).Uint64("identity_id", identity.ID).
			Str("tier", tier).Msg("pointer lookup failed, falling through")
		return nil
	}

	var revisionID *uint64
	if tier == tierPreview {
		revisionID = pointer.PreviewRevisionID
	} else {
		revisionID = pointer.PublishedRevisionID
	}
	if revisionID == nil {
		resolutionTierTotal.WithLabelValues(tier, "miss").Inc()
		log.Info().Uint64("identity_id", identity.ID).
			Str("tier", tier).Msg("pointer reference not set, falling through")
		return nil
	}

	revision, err := s.revisions.FindByID(*revisionID)
	if err != nil {
		resolutionTierTotal.WithLabelValues(tier, "miss").Inc()
		log.Warn().Err(err).Uint64("identity_id", identity.ID).Uint64("revision_id", *revisionID).
			Str("tier", tier).Msg("pointed revision unavailable, falling through")
		return nil
	}

	resolutionTierTotal.WithLabelValues(tier, "hit").Inc()
	now := time.Now().UTC()
	return &domain.Resolution{
		Document:   revision.Document,
		Source:     domain.SourceStore,
		Hash:       revision.ContentHash,
		ResolvedAt: now,
		Pin: &domain.Pin{
			Source:      domain.SourceStore,
			IdentityID:  identity.ID,
			RevisionID:  revision.ID,
			ContentHash: revision.ContentHash,
			ResolvedAt:  now,
		},
	}
}
