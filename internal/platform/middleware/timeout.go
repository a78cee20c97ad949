package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds the total time a request may spend in downstream handlers.
// Store and cache calls inherit the deadline through the request context; a
// timed-out consent read resolves to the fail-closed default downstream.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
