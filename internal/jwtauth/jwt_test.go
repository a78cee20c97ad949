package jwtauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "consentd/pkg/domain-errors"
)

func TestValidateToken_RoundTrip(t *testing.T) {
	svc := NewService("test-signing-key", "consentd", "consentd-admin")

	token, err := svc.GenerateToken("operator-1", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator-1", claims.ActorID)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewService("test-signing-key", "consentd", "consentd-admin")

	token, err := svc.GenerateToken("operator-1", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}

func TestValidateToken_WrongKey(t *testing.T) {
	minted := NewService("key-a", "consentd", "consentd-admin")
	validating := NewService("key-b", "consentd", "consentd-admin")

	token, err := minted.GenerateToken("operator-1", time.Hour)
	require.NoError(t, err)

	_, err = validating.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewService("test-signing-key", "consentd", "consentd-admin")

	_, err := svc.ValidateToken("not-a-jwt")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}
