package domainerrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "consentd/pkg/domain-errors"
	"consentd/pkg/platform/sentinel"
)

func TestIs_MatchesCodeThroughWrapping(t *testing.T) {
	err := dErrors.New(dErrors.CodePolicyViolation, "images require anonymization")

	assert.True(t, dErrors.Is(err, dErrors.CodePolicyViolation))
	assert.False(t, dErrors.Is(err, dErrors.CodeNotFound))

	wrapped := fmt.Errorf("update consent: %w", err)
	assert.True(t, dErrors.Is(wrapped, dErrors.CodePolicyViolation))
}

func TestWrap_PreservesCause(t *testing.T) {
	err := dErrors.Wrap(sentinel.ErrUnavailable, dErrors.CodeUnavailable, "store unreachable")

	assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
	assert.Equal(t, dErrors.CodeUnavailable, dErrors.CodeOf(err))
}

func TestCodeOf_DefaultsToInternal(t *testing.T) {
	assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(errors.New("plain")))
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		code   dErrors.Code
		status int
	}{
		{dErrors.CodeInvalidInput, http.StatusBadRequest},
		{dErrors.CodePolicyViolation, http.StatusBadRequest},
		{dErrors.CodeNotFound, http.StatusNotFound},
		{dErrors.CodeUnauthorized, http.StatusUnauthorized},
		{dErrors.CodeTimeout, http.StatusGatewayTimeout},
		{dErrors.CodeUnavailable, http.StatusServiceUnavailable},
		{dErrors.CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, dErrors.ToHTTPStatus(tt.code))
		})
	}
}
