// Package session owns the single source of truth for "who is currently
// authenticated". All identity operations go through the Context so every view
// observes a consistent user value, and every state-changing operation is
// mirrored by a best-effort audit append.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"testapp/internal/identity"
	"testapp/internal/platform/metrics"
	"testapp/pkg/autherrors"
	"testapp/pkg/requestcontext"
	"testapp/pkg/sentinel"
)

const auditBuffer = 64

// Context is an explicitly constructed state container injected into every
// consumer. Construct with New, start the background loop with Run, and tear
// down with Close.
type Context struct {
	provider identity.Provider
	logger   *slog.Logger
	metrics  *metrics.Metrics

	// opMu serializes state-changing operations. HTTP handlers run
	// concurrently, so two overlapping logins must not race on currentUser.
	opMu sync.Mutex

	mu            sync.RWMutex
	currentUser   *identity.Profile
	bootstrapping bool

	auditCh chan identity.AuditEvent
}

// New builds a Context around the active backend. The context reports
// bootstrapping until Bootstrap has resolved.
func New(provider identity.Provider, logger *slog.Logger, m *metrics.Metrics) *Context {
	return &Context{
		provider:      provider,
		logger:        logger,
		metrics:       m,
		bootstrapping: true,
		auditCh:       make(chan identity.AuditEvent, auditBuffer),
	}
}

// User returns a copy of the current profile, if any.
func (c *Context) User() (identity.Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.currentUser == nil {
		return identity.Profile{}, false
	}
	return *c.currentUser, true
}

// Bootstrapping reports whether session recovery is still in flight.
func (c *Context) Bootstrapping() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bootstrapping
}

func (c *Context) setUser(p *identity.Profile) {
	c.mu.Lock()
	c.currentUser = p
	c.mu.Unlock()
}

func (c *Context) setBootstrapped() {
	c.mu.Lock()
	c.bootstrapping = false
	c.mu.Unlock()
}

// Bootstrap recovers an existing session from the active backend. It never
// fails: any recovery problem degrades to "no user" with a log line.
func (c *Context) Bootstrap(ctx context.Context) {
	defer c.setBootstrapped()

	sess, err := c.provider.CurrentSession(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "session recovery failed, starting signed out", "error", err)
		return
	}
	if sess == nil {
		return
	}

	profile, err := c.provider.GetProfile(ctx, sess.UserID)
	if err != nil {
		c.logger.WarnContext(ctx, "recovered session references no profile, starting signed out",
			"error", err, "user_id", sess.UserID)
		return
	}

	c.setUser(&profile)
	c.logger.InfoContext(ctx, "session recovered", "user_id", profile.ID, "email", profile.Email)
}

// Login delegates credential verification to the backend. On success the
// current user is replaced and a signed_in event is audited; on failure state
// is left untouched.
func (c *Context) Login(ctx context.Context, email, password string) (identity.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return identity.Profile{}, autherrors.New(autherrors.CodeInvalidInput, "Email and password are required")
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	profile, err := c.provider.SignIn(ctx, email, password)
	if err != nil {
		c.metrics.IncAuthFailures()
		return identity.Profile{}, err
	}

	c.setUser(&profile)
	c.metrics.IncSignIns()
	c.audit(ctx, profile.ID, identity.ActionSignedIn, "auth", nil)
	return profile, nil
}

// Signup delegates account creation to the backend.
func (c *Context) Signup(ctx context.Context, email, password, name string) (identity.Profile, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return identity.Profile{}, autherrors.New(autherrors.CodeInvalidInput, "Name, email, and password are required")
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	profile, err := c.provider.SignUp(ctx, email, password, name)
	if err != nil {
		c.metrics.IncAuthFailures()
		return identity.Profile{}, err
	}

	c.setUser(&profile)
	c.metrics.IncSignUps()
	c.audit(ctx, profile.ID, identity.ActionSignedUp, "auth", nil)
	return profile, nil
}

// Logout audits the sign-out, invalidates the backend session, and clears the
// current user unconditionally. Clearing happens even when the backend call
// fails so the UI never shows a stale signed-in state; the error is still
// returned. Safe to call repeatedly.
func (c *Context) Logout(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if user, ok := c.User(); ok {
		c.audit(ctx, user.ID, identity.ActionSignedOut, "auth", nil)
	}

	err := c.provider.SignOut(ctx)
	c.setUser(nil)

	if err != nil {
		return autherrors.Wrap(err, autherrors.CodeUnavailable, "You have been signed out locally, but the server could not be reached.")
	}
	c.metrics.IncSignOuts()
	return nil
}

// UpdateProfile applies a partial update through the backend and replaces the
// current user with the canonical result. A silent no-op when nobody is
// signed in or the backend has no profile mutation.
func (c *Context) UpdateProfile(ctx context.Context, update identity.ProfileUpdate) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	user, ok := c.User()
	if !ok || update.IsEmpty() {
		return nil
	}

	profile, err := c.provider.UpdateProfile(ctx, user.ID, update)
	if err != nil {
		if errors.Is(err, sentinel.ErrUnsupported) {
			return nil
		}
		return err
	}

	c.setUser(&profile)
	c.audit(ctx, profile.ID, identity.ActionProfileUpdated, "profiles", update.Fields())
	return nil
}

// Sessions lists the signed-in user's sessions, newest-active first. Backends
// without session tracking yield an empty list.
func (c *Context) Sessions(ctx context.Context) ([]identity.Session, error) {
	user, ok := c.User()
	if !ok {
		return nil, autherrors.New(autherrors.CodeUnauthorized, "You must be signed in to view sessions")
	}

	sessions, err := c.provider.ListSessions(ctx, user.ID)
	if err != nil {
		if errors.Is(err, sentinel.ErrUnsupported) {
			return nil, nil
		}
		return nil, err
	}
	return sessions, nil
}

// RevokeSession revokes one of the signed-in user's sessions.
func (c *Context) RevokeSession(ctx context.Context, sessionID string) error {
	user, ok := c.User()
	if !ok {
		return autherrors.New(autherrors.CodeUnauthorized, "You must be signed in to revoke sessions")
	}
	if sessionID == "" {
		return autherrors.New(autherrors.CodeInvalidInput, "A session must be selected")
	}

	revoked, err := c.provider.RevokeSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrUnsupported) {
			return autherrors.New(autherrors.CodeInvalidInput, "Session management is not available in demo mode")
		}
		return err
	}
	if !revoked {
		return autherrors.New(autherrors.CodeUnavailable, "The session could not be revoked")
	}

	c.metrics.IncSessionsRevoked()
	c.audit(ctx, user.ID, identity.ActionSessionRevoked, "sessions", map[string]string{"session_id": sessionID})
	return nil
}

// RecentActivity returns the signed-in user's latest audit events. Backends
// without an audit log yield an empty list.
func (c *Context) RecentActivity(ctx context.Context, limit int) ([]identity.AuditEvent, error) {
	user, ok := c.User()
	if !ok {
		return nil, autherrors.New(autherrors.CodeUnauthorized, "You must be signed in to view activity")
	}

	events, err := c.provider.ListAuditEvents(ctx, user.ID, limit)
	if err != nil {
		if errors.Is(err, sentinel.ErrUnsupported) {
			return nil, nil
		}
		return nil, err
	}
	return events, nil
}

func (c *Context) audit(ctx context.Context, userID string, action identity.Action, resource string, metadata map[string]string) {
	event := identity.AuditEvent{
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		Metadata:  metadata,
		IPAddress: requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
		CreatedAt: requestcontext.Now(ctx),
	}

	select {
	case c.auditCh <- event:
	default:
		// Audit is best-effort; a full buffer loses the event, not the
		// primary operation.
		c.logger.WarnContext(ctx, "audit buffer full, dropping event", "action", string(action))
	}
}
