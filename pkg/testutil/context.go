package testutil

import (
	"net/http"
	"time"

	"consentd/pkg/requestcontext"
)

// WithTime pins the request-scoped clock on a request, bypassing the
// RequestTime middleware. Use it to test expiry behavior at a fixed instant.
func WithTime(req *http.Request, t time.Time) *http.Request {
	ctx := requestcontext.WithTime(req.Context(), t)
	return req.WithContext(ctx)
}
