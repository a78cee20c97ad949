package middleware

import (
	"net/http"

	"consentd/pkg/requestcontext"
)

// RequestTime pins the clock for the request so every expiry comparison made
// while serving it sees the same instant.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), requestcontext.Now(r.Context()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
