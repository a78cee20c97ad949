package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"consentd/internal/platform/secrets"
	"consentd/pkg/requestcontext"
)

// JWTValidator defines the interface for validating bearer tokens on the
// admin surface.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	ActorID string
}

// AdminKeyHeader carries the shared admin key for machine callers (the
// data-capture pipeline) that do not hold operator JWTs.
const AdminKeyHeader = "X-Admin-Key"

// RequireAuth authenticates admin requests. Operators present a Bearer JWT;
// machine callers may instead present the admin key, verified against a
// bcrypt hash so the plaintext never lives in config.
func RequireAuth(validator JWTValidator, adminKeyHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				claims, err := validator.ValidateToken(token)
				if err != nil {
					logger.WarnContext(ctx, "unauthorized access - invalid token",
						"error", err,
						"request_id", GetRequestID(ctx),
					)
					writeUnauthorized(w, "Invalid or expired token")
					return
				}
				ctx = requestcontext.WithActorID(ctx, claims.ActorID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if key := r.Header.Get(AdminKeyHeader); key != "" && adminKeyHash != "" {
				if err := secrets.Verify(key, adminKeyHash); err != nil {
					logger.WarnContext(ctx, "unauthorized access - invalid admin key",
						"request_id", GetRequestID(ctx),
					)
					writeUnauthorized(w, "Invalid admin key")
					return
				}
				ctx = requestcontext.WithActorID(ctx, "admin-key")
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			logger.WarnContext(ctx, "unauthorized access - missing credentials",
				"request_id", GetRequestID(ctx),
			)
			writeUnauthorized(w, "Missing or invalid Authorization header")
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
