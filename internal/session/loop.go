package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"testapp/internal/identity"
)

const appendTimeout = 5 * time.Second

// Run drains buffered audit events and reacts to auth state pushed by the
// backend. It blocks until ctx is cancelled and is intended to run in its own
// goroutine for the lifetime of the process.
func (c *Context) Run(ctx context.Context) error {
	events := c.provider.Events()
	for {
		select {
		case <-ctx.Done():
			c.drain()
			return ctx.Err()
		case event := <-c.auditCh:
			c.append(ctx, event)
		case event, ok := <-events:
			if !ok {
				// Backend closed its event stream; keep serving audit
				// appends.
				events = nil
				continue
			}
			c.handleAuthEvent(ctx, event)
		}
	}
}

// drain flushes whatever audit events are still buffered at shutdown.
func (c *Context) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()
	for {
		select {
		case event := <-c.auditCh:
			c.append(ctx, event)
		default:
			return
		}
	}
}

// append writes one audit event through the backend. Audit failures are
// logged and swallowed; they must never surface to the user flow that
// produced them.
func (c *Context) append(ctx context.Context, event identity.AuditEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	appendCtx, cancel := context.WithTimeout(ctx, appendTimeout)
	defer cancel()

	if err := c.provider.AppendAuditEvent(appendCtx, event); err != nil {
		c.logger.ErrorContext(ctx, "failed to append audit event",
			"error", err, "action", string(event.Action), "user_id", event.UserID)
	}
}

// handleAuthEvent applies state changes pushed by the backend, for example a
// session refreshed or revoked out-of-band.
func (c *Context) handleAuthEvent(ctx context.Context, event identity.AuthEvent) {
	switch event.Type {
	case identity.EventSignedIn:
		profile, err := c.provider.GetProfile(ctx, event.UserID)
		if err != nil {
			c.logger.WarnContext(ctx, "signed-in event for unknown profile", "error", err, "user_id", event.UserID)
			return
		}
		c.setUser(&profile)
		c.audit(ctx, profile.ID, identity.ActionSignedIn, "auth", nil)
	case identity.EventSignedOut:
		c.setUser(nil)
	case identity.EventUserUpdated:
		user, ok := c.User()
		if !ok || user.ID != event.UserID {
			return
		}
		profile, err := c.provider.GetProfile(ctx, event.UserID)
		if err != nil {
			c.logger.WarnContext(ctx, "failed to refresh updated profile", "error", err, "user_id", event.UserID)
			return
		}
		c.setUser(&profile)
	default:
		c.logger.WarnContext(ctx, "ignoring unknown auth event", "type", string(event.Type))
	}
}
