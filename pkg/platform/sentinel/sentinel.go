package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and caches return these
// (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in store, or key missing from cache
// - ErrConflict: concurrent writer won the upsert race
// - ErrInvalidState: entity in wrong state for requested operation
// - ErrUnavailable: store or cache temporarily unreachable
//
// For validation errors (bad input, policy violations), use pkg/domain-errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
