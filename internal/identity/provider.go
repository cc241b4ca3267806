package identity

import "context"

// EventType classifies provider-pushed auth state changes.
type EventType string

const (
	EventSignedIn    EventType = "SIGNED_IN"
	EventSignedOut   EventType = "SIGNED_OUT"
	EventUserUpdated EventType = "USER_UPDATED"
)

// AuthEvent is pushed by a backend when auth state changes outside a direct
// call, e.g. a token refresh or a sign-out from another tab of the same client.
type AuthEvent struct {
	Type   EventType
	UserID string
}

// Provider is the contract every identity backend implements. The hosted
// client delegates to the external platform; the mock store serves local
// development with a seeded catalog. Mutual exclusion between calls is the
// caller's concern, not the backend's.
//
// Backends return sentinel errors for infrastructure facts (sentinel.ErrNotFound,
// sentinel.ErrUnsupported) and coded autherrors for anything user-facing.
type Provider interface {
	// SignIn verifies credentials and returns the matching profile.
	SignIn(ctx context.Context, email, password string) (Profile, error)

	// SignUp creates an account and returns the provisioned profile.
	SignUp(ctx context.Context, email, password, name string) (Profile, error)

	// SignOut invalidates the backend session. Calling it without an active
	// session is not an error.
	SignOut(ctx context.Context) error

	// CurrentSession recovers a persisted session, or nil when none is valid.
	// Malformed persisted state reads as "no session", never as an error.
	CurrentSession(ctx context.Context) (*Session, error)

	// GetProfile fetches a profile by user ID.
	GetProfile(ctx context.Context, userID string) (Profile, error)

	// UpdateProfile applies a partial update and returns the canonical result.
	// Backends without profile mutation return sentinel.ErrUnsupported.
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (Profile, error)

	// ListSessions returns the user's sessions, newest-active first. Backends
	// without session tracking return sentinel.ErrUnsupported.
	ListSessions(ctx context.Context, userID string) ([]Session, error)

	// RevokeSession revokes one session and reports whether it was removed.
	RevokeSession(ctx context.Context, sessionID string) (bool, error)

	// AppendAuditEvent records an audit event. Best-effort at call sites:
	// failures are logged, never surfaced.
	AppendAuditEvent(ctx context.Context, event AuditEvent) error

	// ListAuditEvents returns the user's most recent audit events, newest
	// first. Backends without an audit log return sentinel.ErrUnsupported.
	ListAuditEvents(ctx context.Context, userID string, limit int) ([]AuditEvent, error)

	// Events exposes the backend's auth-event stream. The channel is closed
	// by Close.
	Events() <-chan AuthEvent

	// Close releases the event stream and any held resources.
	Close() error
}
