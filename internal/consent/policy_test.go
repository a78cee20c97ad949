package consent

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tier→permission table admits exactly one triple per tier. Exhaustively
// checking all eight triples per tier guards the table against accidental
// widening.
func TestValidate_OnlyCanonicalTripleAcceptedPerTier(t *testing.T) {
	canonical := map[Tier]Permissions{
		TierNone:     {},
		TierMetadata: {StoreEmbeddings: true, UseForTraining: true},
		TierFull:     {StoreImages: true, StoreEmbeddings: true, UseForTraining: true},
	}

	for tier, want := range canonical {
		for i := 0; i < 8; i++ {
			perms := Permissions{
				StoreImages:     i&1 != 0,
				StoreEmbeddings: i&2 != 0,
				UseForTraining:  i&4 != 0,
			}
			err := Validate(tier, perms, AnonymizationFull)
			if perms == want {
				assert.NoError(t, err, "tier %s should accept %+v", tier, perms)
				continue
			}
			var pe *PolicyError
			require.Error(t, err, "tier %s should reject %+v", tier, perms)
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, ReasonTierPermissionMismatch, pe.Reason)
		}
	}
}

func TestValidate_MismatchNamesOffendingPermission(t *testing.T) {
	err := Validate(TierMetadata, Permissions{StoreImages: true, StoreEmbeddings: true, UseForTraining: true}, AnonymizationPartial)

	var pe *PolicyError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ReasonTierPermissionMismatch, pe.Reason)
	assert.Contains(t, pe.Detail, "can_store_images")
}

func TestValidate_ImagesRequireAnonymization(t *testing.T) {
	full := Permissions{StoreImages: true, StoreEmbeddings: true, UseForTraining: true}

	err := Validate(TierFull, full, AnonymizationNone)
	var pe *PolicyError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ReasonAnonymizationRequired, pe.Reason)

	assert.NoError(t, Validate(TierFull, full, AnonymizationPartial))
	assert.NoError(t, Validate(TierFull, full, AnonymizationFull))
}

func TestValidate_NoAnonymizationNeededWithoutImages(t *testing.T) {
	// Metadata tier never stores images, so anonymization none is fine.
	err := Validate(TierMetadata, Permissions{StoreEmbeddings: true, UseForTraining: true}, AnonymizationNone)
	assert.NoError(t, err)
}

func TestValidate_RejectsUnknownEnums(t *testing.T) {
	err := Validate(Tier("basic"), Permissions{}, AnonymizationFull)
	require.Error(t, err)

	err = Validate(TierNone, Permissions{}, AnonymizationLevel("heavy"))
	require.Error(t, err)
}

func TestValidateExpiry(t *testing.T) {
	granted := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("nil expiry is valid", func(t *testing.T) {
		assert.NoError(t, ValidateExpiry(granted, nil))
	})

	t.Run("expiry equal to grant is rejected", func(t *testing.T) {
		at := granted
		err := ValidateExpiry(granted, &at)
		var pe *PolicyError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, ReasonExpiryBeforeGrant, pe.Reason)
	})

	t.Run("expiry before grant is rejected", func(t *testing.T) {
		at := granted.Add(-time.Hour)
		err := ValidateExpiry(granted, &at)
		var pe *PolicyError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, ReasonExpiryBeforeGrant, pe.Reason)
	})

	t.Run("expiry at ten years is accepted", func(t *testing.T) {
		at := granted.AddDate(10, 0, 0)
		assert.NoError(t, ValidateExpiry(granted, &at))
	})

	t.Run("expiry beyond ten years is rejected", func(t *testing.T) {
		at := granted.AddDate(10, 0, 1)
		err := ValidateExpiry(granted, &at)
		var pe *PolicyError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, ReasonExpiryTooFar, pe.Reason)
	})
}
