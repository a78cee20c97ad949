package handler

import (
	"time"

	"consentd/internal/consent"
)

// UpdateConsentRequest is the admin body for creating or replacing a
// customer's consent.
type UpdateConsentRequest struct {
	Tier               string     `json:"tier"`
	CanStoreImages     bool       `json:"can_store_images"`
	CanStoreEmbeddings bool       `json:"can_store_embeddings"`
	CanUseForTraining  bool       `json:"can_use_for_training"`
	AnonymizationLevel string     `json:"anonymization_level"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
}

// ConsentResponse is the wire form of a consent record.
type ConsentResponse struct {
	CustomerID         string     `json:"customer_id"`
	Tier               string     `json:"tier"`
	CanStoreImages     bool       `json:"can_store_images"`
	CanStoreEmbeddings bool       `json:"can_store_embeddings"`
	CanUseForTraining  bool       `json:"can_use_for_training"`
	AnonymizationLevel string     `json:"anonymization_level"`
	GrantedAt          time.Time  `json:"granted_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	Version            int64      `json:"version"`
}

// PermissionResponse answers a single permission query.
type PermissionResponse struct {
	Check   string `json:"check"`
	Allowed *bool  `json:"allowed,omitempty"`
	Level   string `json:"level,omitempty"`
}

func toConsentResponse(r *consent.Record) ConsentResponse {
	return ConsentResponse{
		CustomerID:         r.CustomerID,
		Tier:               r.Tier.String(),
		CanStoreImages:     r.Permissions.StoreImages,
		CanStoreEmbeddings: r.Permissions.StoreEmbeddings,
		CanUseForTraining:  r.Permissions.UseForTraining,
		AnonymizationLevel: r.AnonymizationLevel.String(),
		GrantedAt:          r.GrantedAt,
		UpdatedAt:          r.UpdatedAt,
		ExpiresAt:          r.ExpiresAt,
		Version:            r.Version,
	}
}
