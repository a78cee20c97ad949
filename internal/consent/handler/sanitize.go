package handler

import (
	"github.com/google/uuid"

	dErrors "consentd/pkg/domain-errors"
)

// parseCustomerID validates the path identifier. Customer identities are
// UUIDs everywhere in the platform; a malformed identifier cannot name any
// customer, so it maps to not-found rather than bad-request.
func parseCustomerID(raw string) (string, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", dErrors.New(dErrors.CodeNotFound, "unknown customer")
	}
	return parsed.String(), nil
}
