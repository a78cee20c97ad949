package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"consentd/internal/consent"
	"consentd/internal/platform/metrics"
	"consentd/internal/platform/middleware"
	dErrors "consentd/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/consent-mocks.go -package=mocks Service

// Service defines the consent operations the admin surface exposes.
type Service interface {
	Get(ctx context.Context, customerID string) *consent.Record
	Update(ctx context.Context, customerID string, tier consent.Tier, perms consent.Permissions, anon consent.AnonymizationLevel, expiresAt *time.Time) (*consent.Record, error)
	Revoke(ctx context.Context, customerID string) error
	CanStoreImages(ctx context.Context, customerID string) bool
	CanStoreEmbeddings(ctx context.Context, customerID string) bool
	CanUseForTraining(ctx context.Context, customerID string) bool
	AnonymizationLevel(ctx context.Context, customerID string) consent.AnonymizationLevel
}

// Handler handles the consent admin endpoints.
type Handler struct {
	logger       *slog.Logger
	consent      Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
	adminKeyHash string
}

// New creates a new consent admin Handler.
func New(consentSvc Service, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator, adminKeyHash string) *Handler {
	return &Handler{
		logger:       logger,
		consent:      consentSvc,
		metrics:      m,
		jwtValidator: jwtValidator,
		adminKeyHash: adminKeyHash,
	}
}

// Register registers the consent admin routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	adminRouter := chi.NewRouter()
	adminRouter.Use(middleware.Recovery(h.logger))
	adminRouter.Use(middleware.RequestID)
	adminRouter.Use(middleware.RequestTime)
	adminRouter.Use(middleware.Logger(h.logger))
	adminRouter.Use(middleware.Timeout(30 * time.Second))
	adminRouter.Use(middleware.ContentTypeJSON)
	adminRouter.Use(middleware.Latency(h.metrics))
	adminRouter.Use(middleware.RequireAuth(h.jwtValidator, h.adminKeyHash, h.logger))
	adminRouter.Get("/admin/customers/{customerID}/consent", h.handleGetConsent)
	adminRouter.Post("/admin/customers/{customerID}/consent", h.handleUpdateConsent)
	adminRouter.Delete("/admin/customers/{customerID}/consent", h.handleRevokeConsent)
	adminRouter.Get("/admin/customers/{customerID}/consent/permissions", h.handleCheckPermission)

	r.Mount("/", adminRouter)
}

func (h *Handler) handleGetConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := parseCustomerID(chi.URLParam(r, "customerID"))
	if err != nil {
		writeError(w, err)
		return
	}

	record := h.consent.Get(ctx, customerID)
	writeJSON(w, http.StatusOK, toConsentResponse(record))
}

func (h *Handler) handleUpdateConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	customerID, err := parseCustomerID(chi.URLParam(r, "customerID"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req UpdateConsentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid consent update request",
			"request_id", requestID,
			"error", err.Error(),
		)
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	tier, err := consent.ParseTier(req.Tier)
	if err != nil {
		writeError(w, err)
		return
	}
	anon, err := consent.ParseAnonymizationLevel(req.AnonymizationLevel)
	if err != nil {
		writeError(w, err)
		return
	}
	perms := consent.Permissions{
		StoreImages:     req.CanStoreImages,
		StoreEmbeddings: req.CanStoreEmbeddings,
		UseForTraining:  req.CanUseForTraining,
	}

	record, err := h.consent.Update(ctx, customerID, tier, perms, anon, req.ExpiresAt)
	if err != nil {
		var pe *consent.PolicyError
		if errors.As(err, &pe) {
			h.logger.WarnContext(ctx, "consent update rejected by policy",
				"request_id", requestID,
				"customer_id", customerID,
				"reason", string(pe.Reason),
			)
		} else {
			h.logger.ErrorContext(ctx, "consent update failed",
				"request_id", requestID,
				"customer_id", customerID,
				"error", err.Error(),
			)
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toConsentResponse(record))
}

func (h *Handler) handleRevokeConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := parseCustomerID(chi.URLParam(r, "customerID"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.consent.Revoke(ctx, customerID); err != nil {
		h.logger.ErrorContext(ctx, "consent revocation failed",
			"request_id", middleware.GetRequestID(ctx),
			"customer_id", customerID,
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}

	// Revocation answers 200 with the reset record so callers can confirm
	// the customer is back at the restrictive default.
	writeJSON(w, http.StatusOK, toConsentResponse(h.consent.Get(ctx, customerID)))
}

func (h *Handler) handleCheckPermission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := parseCustomerID(chi.URLParam(r, "customerID"))
	if err != nil {
		writeError(w, err)
		return
	}

	check := r.URL.Query().Get("check")
	switch check {
	case "images":
		allowed := h.consent.CanStoreImages(ctx, customerID)
		writeJSON(w, http.StatusOK, PermissionResponse{Check: check, Allowed: &allowed})
	case "embeddings":
		allowed := h.consent.CanStoreEmbeddings(ctx, customerID)
		writeJSON(w, http.StatusOK, PermissionResponse{Check: check, Allowed: &allowed})
	case "training":
		allowed := h.consent.CanUseForTraining(ctx, customerID)
		writeJSON(w, http.StatusOK, PermissionResponse{Check: check, Allowed: &allowed})
	case "anonymization":
		level := h.consent.AnonymizationLevel(ctx, customerID)
		writeJSON(w, http.StatusOK, PermissionResponse{Check: check, Level: level.String()})
	default:
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "unknown check: "+check))
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError centralizes error translation to HTTP responses: policy
// violations surface the specific rule violated, domain errors map by code,
// everything else is an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	var pe *consent.PolicyError
	if errors.As(err, &pe) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  string(pe.Reason),
			"detail": pe.Detail,
		})
		return
	}

	code := dErrors.CodeOf(err)
	writeJSON(w, dErrors.ToHTTPStatus(code), map[string]string{
		"error": string(code),
	})
}
