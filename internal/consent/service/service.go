package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"consentd/internal/audit"
	"consentd/internal/consent"
	"consentd/internal/consent/metrics"
	dErrors "consentd/pkg/domain-errors"
	"consentd/pkg/platform/sentinel"
	"consentd/pkg/requestcontext"
)

// Permission check names used for metrics and the admin query endpoint.
const (
	CheckImages     = "images"
	CheckEmbeddings = "embeddings"
	CheckTraining   = "training"
)

// Service is the single authority callers use to read or change consent and
// to ask binary permission questions. It hides cache/store orchestration:
// reads degrade to the most restrictive answer when consent state cannot be
// determined, writes propagate infrastructure failures so the caller knows
// the update did not take effect.
type Service struct {
	store    consent.Store
	cache    consent.Cache
	audit    *audit.Publisher
	logger   *slog.Logger
	metrics  *metrics.Metrics
	cacheTTL time.Duration
	group    singleflight.Group
	tracer   trace.Tracer
}

// New constructs the consent service. cache may be nil; the service then
// reads through to the store on every call.
func New(store consent.Store, cache consent.Cache, auditPub *audit.Publisher, logger *slog.Logger, m *metrics.Metrics, cacheTTL time.Duration) *Service {
	return &Service{
		store:    store,
		cache:    cache,
		audit:    auditPub,
		logger:   logger,
		metrics:  m,
		cacheTTL: cacheTTL,
		tracer:   otel.Tracer("consentd/consent"),
	}
}

// Get returns the customer's consent record. It never fails: when neither
// cache nor store can produce an answer, the most restrictive default is
// returned. The default for a customer with no record is never cached or
// persisted, so "explicit none" stays distinguishable from "never asked".
func (s *Service) Get(ctx context.Context, customerID string) *consent.Record {
	ctx, span := s.tracer.Start(ctx, "consent.Get")
	defer span.End()

	if s.cache != nil {
		record, err := s.cache.Get(ctx, customerID)
		if err == nil {
			return record
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			// Cache trouble is never fatal to the caller.
			s.logger.WarnContext(ctx, "consent cache read failed, falling through to store",
				"customer_id", customerID,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}

	// Collapse concurrent misses for the same customer into one store read.
	v, err, _ := s.group.Do(customerID, func() (any, error) {
		return s.loadAndCache(ctx, customerID)
	})
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.RecordFailClosed()
			s.logger.ErrorContext(ctx, "consent store read failed, failing closed",
				"customer_id", customerID,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		return consent.DefaultRecord(customerID)
	}
	return v.(*consent.Record)
}

func (s *Service) loadAndCache(ctx context.Context, customerID string) (*consent.Record, error) {
	start := time.Now()
	record, err := s.store.GetByCustomer(ctx, customerID)
	s.metrics.ObserveLookupDuration(time.Since(start))
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, record, s.cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "consent cache populate failed",
				"customer_id", customerID,
				"error", err,
			)
		}
	}
	return record, nil
}

// CanStoreImages reports whether raw images may be stored for the customer.
func (s *Service) CanStoreImages(ctx context.Context, customerID string) bool {
	return s.allowed(ctx, customerID, CheckImages, func(r *consent.Record) bool {
		return r.Permissions.StoreImages
	})
}

// CanStoreEmbeddings reports whether embeddings may be stored for the customer.
func (s *Service) CanStoreEmbeddings(ctx context.Context, customerID string) bool {
	return s.allowed(ctx, customerID, CheckEmbeddings, func(r *consent.Record) bool {
		return r.Permissions.StoreEmbeddings
	})
}

// CanUseForTraining reports whether captured data may be used for training.
func (s *Service) CanUseForTraining(ctx context.Context, customerID string) bool {
	return s.allowed(ctx, customerID, CheckTraining, func(r *consent.Record) bool {
		return r.Permissions.UseForTraining
	})
}

// allowed enforces expiry at read time: a lapsed record answers false to
// every permission question regardless of its stored booleans.
func (s *Service) allowed(ctx context.Context, customerID, check string, pick func(*consent.Record) bool) bool {
	record := s.Get(ctx, customerID)
	ok := pick(record) && !record.Expired(requestcontext.Now(ctx))
	s.metrics.RecordDecision(check, ok)
	return ok
}

// AnonymizationLevel returns the stored level unconditionally. Anonymization
// discipline continues to apply to still-resident data even after consent
// lapses, so expiry is deliberately not consulted here.
func (s *Service) AnonymizationLevel(ctx context.Context, customerID string) consent.AnonymizationLevel {
	return s.Get(ctx, customerID).AnonymizationLevel
}

// Update validates and commits a consent change, then invalidates the cache.
// Policy violations are returned untouched and leave the store unmodified.
// The returned record is re-read from the store so the caller observes
// exactly what is now authoritative.
func (s *Service) Update(ctx context.Context, customerID string, tier consent.Tier, perms consent.Permissions, anon consent.AnonymizationLevel, expiresAt *time.Time) (*consent.Record, error) {
	ctx, span := s.tracer.Start(ctx, "consent.Update")
	defer span.End()

	if err := consent.Validate(tier, perms, anon); err != nil {
		s.rejectedByPolicy(err)
		return nil, err
	}

	// The grant instant is immutable across updates, so expiry must be
	// validated against the existing grant when one exists.
	grantedAt := requestcontext.Now(ctx)
	existing, err := s.store.GetByCustomer(ctx, customerID)
	switch {
	case err == nil:
		grantedAt = existing.GrantedAt
	case errors.Is(err, sentinel.ErrNotFound):
		// First grant.
	default:
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "consent store unavailable")
	}
	if err := consent.ValidateExpiry(grantedAt, expiresAt); err != nil {
		s.rejectedByPolicy(err)
		return nil, err
	}

	// The record carries the same instant the expiry was validated against;
	// letting the store stamp its own clock could commit a row the policy
	// check never saw.
	committed, err := s.store.Upsert(ctx, &consent.Record{
		CustomerID:         customerID,
		Tier:               tier,
		Permissions:        perms,
		AnonymizationLevel: anon,
		GrantedAt:          grantedAt,
		ExpiresAt:          expiresAt,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "consent update not committed")
	}

	// Invalidate only after the commit is durably visible; deleting (not
	// updating) the entry forces the next read through the store.
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, customerID); err != nil {
			s.metrics.RecordInvalidationFailure()
			s.logger.ErrorContext(ctx, "consent cache invalidation failed after commit, stale window up to one TTL",
				"customer_id", customerID,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}

	if err := s.emitAudit(ctx, audit.ActionConsentUpdated, committed); err != nil {
		return nil, err
	}

	fresh, err := s.store.GetByCustomer(ctx, customerID)
	if err != nil {
		// The upsert returned the committed row; serve it rather than
		// failing a write that already happened.
		s.logger.WarnContext(ctx, "consent re-read after commit failed",
			"customer_id", customerID,
			"error", err,
		)
		return committed, nil
	}
	return fresh, nil
}

// Revoke resets the customer to the restrictive default state. It is
// idempotent: revoking an already-revoked or never-granted customer succeeds
// identically.
func (s *Service) Revoke(ctx context.Context, customerID string) error {
	ctx, span := s.tracer.Start(ctx, "consent.Revoke")
	defer span.End()

	committed, err := s.store.Upsert(ctx, &consent.Record{
		CustomerID:         customerID,
		Tier:               consent.TierNone,
		AnonymizationLevel: consent.AnonymizationFull,
		GrantedAt:          requestcontext.Now(ctx),
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "consent revocation not committed")
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, customerID); err != nil {
			s.metrics.RecordInvalidationFailure()
			s.logger.ErrorContext(ctx, "consent cache invalidation failed after revoke",
				"customer_id", customerID,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}

	return s.emitAudit(ctx, audit.ActionConsentRevoked, committed)
}

func (s *Service) rejectedByPolicy(err error) {
	var pe *consent.PolicyError
	if errors.As(err, &pe) {
		s.metrics.RecordPolicyRejection(string(pe.Reason))
	}
}

// emitAudit records the mutation fail-closed: a consent change that cannot be
// audited is surfaced as an error even though the store commit stands, so the
// caller retries and the trail catches up.
func (s *Service) emitAudit(ctx context.Context, action string, record *consent.Record) error {
	if s.audit == nil {
		return nil
	}
	err := s.audit.Emit(ctx, audit.Event{
		CustomerID: record.CustomerID,
		ActorID:    requestcontext.ActorID(ctx),
		Action:     action,
		Tier:       record.Tier.String(),
		Version:    record.Version,
		RequestID:  requestcontext.RequestID(ctx),
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "consent change could not be audited")
	}
	return nil
}
