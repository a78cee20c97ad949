package consent

import (
	"fmt"
	"time"

	dErrors "consentd/pkg/domain-errors"
)

// Policy validation. This is the single authority on tier/permission
// consistency; stores and handlers must not carry their own copies of these
// rules. All functions here are pure: no I/O, deterministic, safe to call
// concurrently without synchronization.

// MaxConsentWindow bounds how far in the future an expiry may sit relative to
// the grant.
const maxConsentWindowYears = 10

// PolicyReason identifies which consistency rule a proposed consent violates.
type PolicyReason string

const (
	ReasonTierPermissionMismatch PolicyReason = "tier_permission_mismatch"
	ReasonAnonymizationRequired  PolicyReason = "anonymization_required"
	ReasonExpiryBeforeGrant      PolicyReason = "expiry_before_grant"
	ReasonExpiryTooFar           PolicyReason = "expiry_too_far"
)

// PolicyError is a user-correctable rejection of a proposed consent tuple.
// It is never silently corrected; callers see exactly which rule failed.
type PolicyError struct {
	Reason PolicyReason
	Detail string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("consent policy violation (%s): %s", e.Reason, e.Detail)
}

// tierPermissions is the only permission triple each tier admits.
var tierPermissions = map[Tier]Permissions{
	TierNone:     {StoreImages: false, StoreEmbeddings: false, UseForTraining: false},
	TierMetadata: {StoreImages: false, StoreEmbeddings: true, UseForTraining: true},
	TierFull:     {StoreImages: true, StoreEmbeddings: true, UseForTraining: true},
}

// Validate checks that a proposed (tier, permissions, anonymization) tuple is
// internally consistent before any write is committed.
func Validate(tier Tier, perms Permissions, anon AnonymizationLevel) error {
	if !tier.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid tier: "+tier.String())
	}
	if !anon.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid anonymization level: "+anon.String())
	}

	want := tierPermissions[tier]
	if perms.StoreImages != want.StoreImages {
		return &PolicyError{
			Reason: ReasonTierPermissionMismatch,
			Detail: fmt.Sprintf("tier %q requires can_store_images=%t", tier, want.StoreImages),
		}
	}
	if perms.StoreEmbeddings != want.StoreEmbeddings {
		return &PolicyError{
			Reason: ReasonTierPermissionMismatch,
			Detail: fmt.Sprintf("tier %q requires can_store_embeddings=%t", tier, want.StoreEmbeddings),
		}
	}
	if perms.UseForTraining != want.UseForTraining {
		return &PolicyError{
			Reason: ReasonTierPermissionMismatch,
			Detail: fmt.Sprintf("tier %q requires can_use_for_training=%t", tier, want.UseForTraining),
		}
	}

	if perms.StoreImages && anon == AnonymizationNone {
		return &PolicyError{
			Reason: ReasonAnonymizationRequired,
			Detail: "storing images requires partial or full anonymization",
		}
	}
	return nil
}

// ValidateExpiry checks the expiration window against the grant instant.
// A nil expiry means the consent does not lapse and is always valid.
func ValidateExpiry(grantedAt time.Time, expiresAt *time.Time) error {
	if expiresAt == nil {
		return nil
	}
	if !expiresAt.After(grantedAt) {
		return &PolicyError{
			Reason: ReasonExpiryBeforeGrant,
			Detail: "expires_at must be strictly after granted_at",
		}
	}
	if expiresAt.After(grantedAt.AddDate(maxConsentWindowYears, 0, 0)) {
		return &PolicyError{
			Reason: ReasonExpiryTooFar,
			Detail: fmt.Sprintf("expires_at may be at most %d years after granted_at", maxConsentWindowYears),
		}
	}
	return nil
}
