package consent

import (
	"time"

	dErrors "consentd/pkg/domain-errors"
)

// Tier is the named bundle of data-handling permissions a customer has agreed
// to. The capability sets are strictly nested: none ⊂ metadata ⊂ full.
//
// Usage: construct via ParseTier at trust boundaries to enforce the allowlist;
// direct casting bypasses validation.
type Tier string

const (
	// TierNone: no data capture of any kind.
	TierNone Tier = "none"
	// TierMetadata: embeddings and training usage, never raw images.
	TierMetadata Tier = "metadata"
	// TierFull: raw images, embeddings and training usage.
	TierFull Tier = "full"
)

// validTiers is the single source of truth for valid consent tiers.
var validTiers = map[Tier]bool{
	TierNone:     true,
	TierMetadata: true,
	TierFull:     true,
}

// ParseTier constructs a Tier from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseTier(s string) (Tier, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "tier cannot be empty")
	}
	t := Tier(s)
	if !validTiers[t] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid tier: "+s)
	}
	return t, nil
}

// IsValid checks if the tier is one of the supported enum values.
func (t Tier) IsValid() bool {
	return validTiers[t]
}

func (t Tier) String() string {
	return string(t)
}

// AnonymizationLevel is the strength of PII removal applied before or while
// storing captured data.
type AnonymizationLevel string

const (
	AnonymizationNone    AnonymizationLevel = "none"
	AnonymizationPartial AnonymizationLevel = "partial"
	AnonymizationFull    AnonymizationLevel = "full"
)

var validAnonymizationLevels = map[AnonymizationLevel]bool{
	AnonymizationNone:    true,
	AnonymizationPartial: true,
	AnonymizationFull:    true,
}

// ParseAnonymizationLevel constructs an AnonymizationLevel from external input.
func ParseAnonymizationLevel(s string) (AnonymizationLevel, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "anonymization level cannot be empty")
	}
	l := AnonymizationLevel(s)
	if !validAnonymizationLevels[l] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid anonymization level: "+s)
	}
	return l, nil
}

// IsValid checks if the level is one of the supported enum values.
func (l AnonymizationLevel) IsValid() bool {
	return validAnonymizationLevels[l]
}

func (l AnonymizationLevel) String() string {
	return string(l)
}

// Permissions is the triple of data-handling grants governed by a tier.
type Permissions struct {
	StoreImages     bool `json:"can_store_images"`
	StoreEmbeddings bool `json:"can_store_embeddings"`
	UseForTraining  bool `json:"can_use_for_training"`
}

// Record is a customer's consent state. At most one active record exists per
// customer; absence of a row is represented by DefaultRecord, never by nil.
type Record struct {
	CustomerID         string             `json:"customer_id"`
	Tier               Tier               `json:"tier"`
	Permissions        Permissions        `json:"permissions"`
	AnonymizationLevel AnonymizationLevel `json:"anonymization_level"`
	GrantedAt          time.Time          `json:"granted_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	ExpiresAt          *time.Time         `json:"expires_at,omitempty"`
	// Version increments on every policy-relevant mutation; it tracks which
	// policy text the customer agreed to.
	Version int64 `json:"version"`
}

// Expired reports whether the record's grant has lapsed at the given instant.
// Records without an expiry never expire.
func (r *Record) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}

// DefaultRecord is the virtual record returned when no consent exists or
// consent state cannot be determined: most restrictive tier, no permissions,
// full anonymization. It is never persisted and never cached, so an explicit
// "none" grant stays distinguishable from "never asked".
func DefaultRecord(customerID string) *Record {
	return &Record{
		CustomerID:         customerID,
		Tier:               TierNone,
		AnonymizationLevel: AnonymizationFull,
	}
}
