package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Backends return these (optionally
// wrapped) so the session layer can translate them into user-facing errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in the active backend
// - ErrExpired: session or token has expired
// - ErrUnsupported: operation has no meaning for the active backend
// - ErrUnavailable: backend temporarily unreachable
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrExpired     = errors.New("expired")
	ErrUnsupported = errors.New("unsupported")
	ErrUnavailable = errors.New("unavailable")
)
