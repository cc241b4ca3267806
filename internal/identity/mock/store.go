// Package mock implements the identity backend used for local development and
// demos: a seeded in-memory user catalog plus a file-based session marker.
// There is no real credential verification here; any password of sufficient
// length signs in. That is a deliberate demo simplification.
package mock

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"testapp/internal/identity"
	"testapp/pkg/autherrors"
	"testapp/pkg/requestcontext"
	"testapp/pkg/sentinel"
)

const (
	minPasswordLength = 6
	minNameLength     = 2
)

// Store is the in-memory catalog. It favors clarity over performance.
type Store struct {
	mu      sync.RWMutex
	users   []identity.Profile
	marker  *Marker
	latency time.Duration
	logger  *slog.Logger
	events  chan identity.AuthEvent
	closed  sync.Once
}

// Option configures a Store.
type Option func(*Store)

// WithLatency sets the artificial per-call delay emulating network latency.
// Tests pass zero.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// New builds a Store seeded with the fixed demo catalog.
func New(marker *Marker, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		users:  seedUsers(),
		marker: marker,
		logger: logger,
		events: make(chan identity.AuthEvent),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func seedUsers() []identity.Profile {
	return []identity.Profile{
		{
			ID:        "1",
			Email:     "admin@testapp.com",
			Name:      "Admin User",
			Role:      identity.RoleAdmin,
			CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			AvatarURL: "https://images.pexels.com/photos/1181406/pexels-photo-1181406.jpeg?auto=compress&cs=tinysrgb&w=200",
		},
		{
			ID:        "2",
			Email:     "user@testapp.com",
			Name:      "Regular User",
			Role:      identity.RoleUser,
			CreatedAt: time.Date(2024, 2, 20, 14, 30, 0, 0, time.UTC),
			AvatarURL: "https://images.pexels.com/photos/3184639/pexels-photo-3184639.jpeg?auto=compress&cs=tinysrgb&w=200",
		},
		{
			ID:        "3",
			Email:     "demo@testapp.com",
			Name:      "Demo User",
			Role:      identity.RoleDemo,
			CreatedAt: time.Date(2024, 3, 10, 9, 15, 0, 0, time.UTC),
			AvatarURL: "https://images.pexels.com/photos/3184465/pexels-photo-3184465.jpeg?auto=compress&cs=tinysrgb&w=200",
		},
		{
			ID:        "4",
			Email:     "john.doe@techcorp.com",
			Name:      "John Doe",
			Role:      identity.RoleUser,
			CreatedAt: time.Date(2024, 3, 15, 11, 20, 0, 0, time.UTC),
			AvatarURL: "https://images.pexels.com/photos/3861969/pexels-photo-3861969.jpeg?auto=compress&cs=tinysrgb&w=200",
		},
		{
			ID:        "5",
			Email:     "sarah.smith@devstudio.io",
			Name:      "Sarah Smith",
			Role:      identity.RoleUser,
			CreatedAt: time.Date(2024, 3, 18, 16, 45, 0, 0, time.UTC),
			AvatarURL: "https://images.pexels.com/photos/3184291/pexels-photo-3184291.jpeg?auto=compress&cs=tinysrgb&w=200",
		},
	}
}

// wait blocks for the configured latency, bailing out early on cancellation.
func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SignIn matches the email against the catalog. Any password of at least six
// characters is accepted.
func (s *Store) SignIn(ctx context.Context, email, password string) (identity.Profile, error) {
	if err := s.wait(ctx); err != nil {
		return identity.Profile{}, err
	}

	s.mu.RLock()
	user, found := s.findByEmail(email)
	s.mu.RUnlock()

	if !found {
		return identity.Profile{}, autherrors.New(autherrors.CodeUnauthorized, "Invalid email or password")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return identity.Profile{}, autherrors.New(autherrors.CodeUnauthorized, "Password must be at least 6 characters")
	}

	if err := s.marker.Save(user.ID); err != nil {
		s.logger.Warn("failed to persist session marker", "error", err)
	}
	return user, nil
}

// SignUp appends a new catalog entry with the standard role.
func (s *Store) SignUp(ctx context.Context, email, password, name string) (identity.Profile, error) {
	if err := s.wait(ctx); err != nil {
		return identity.Profile{}, err
	}

	if utf8.RuneCountInString(password) < minPasswordLength {
		return identity.Profile{}, autherrors.New(autherrors.CodeInvalidInput, "Password must be at least 6 characters")
	}
	if utf8.RuneCountInString(strings.TrimSpace(name)) < minNameLength {
		return identity.Profile{}, autherrors.New(autherrors.CodeInvalidInput, "Name must be at least 2 characters")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.findByEmail(email); exists {
		return identity.Profile{}, autherrors.New(autherrors.CodeConflict, "User with this email already exists")
	}

	now := requestcontext.Now(ctx)
	user := identity.Profile{
		ID:        strconv.Itoa(len(s.users) + 1),
		Email:     email,
		Name:      strings.TrimSpace(name),
		Role:      identity.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users = append(s.users, user)

	if err := s.marker.Save(user.ID); err != nil {
		s.logger.Warn("failed to persist session marker", "error", err)
	}
	return user, nil
}

// SignOut clears the persisted session marker. Idempotent.
func (s *Store) SignOut(ctx context.Context) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.marker.Clear()
}

// CurrentSession resolves the persisted marker against the catalog. An absent,
// malformed, or dangling marker reads as "no session".
func (s *Store) CurrentSession(ctx context.Context) (*identity.Session, error) {
	userID, ok := s.marker.Load()
	if !ok {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == userID {
			return &identity.Session{UserID: u.ID, ExpiresAt: requestcontext.Now(ctx).Add(24 * time.Hour)}, nil
		}
	}
	return nil, nil
}

// GetProfile looks up a catalog entry by ID.
func (s *Store) GetProfile(ctx context.Context, userID string) (identity.Profile, error) {
	if err := s.wait(ctx); err != nil {
		return identity.Profile{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return identity.Profile{}, sentinel.ErrNotFound
}

// UpdateProfile is not supported by the demo catalog.
func (s *Store) UpdateProfile(ctx context.Context, userID string, update identity.ProfileUpdate) (identity.Profile, error) {
	return identity.Profile{}, sentinel.ErrUnsupported
}

// ListSessions is not supported; the demo catalog tracks no sessions.
func (s *Store) ListSessions(ctx context.Context, userID string) ([]identity.Session, error) {
	return nil, sentinel.ErrUnsupported
}

// RevokeSession is not supported; the demo catalog tracks no sessions.
func (s *Store) RevokeSession(ctx context.Context, sessionID string) (bool, error) {
	return false, sentinel.ErrUnsupported
}

// AppendAuditEvent drops the event; audit is not recorded in mock mode.
func (s *Store) AppendAuditEvent(ctx context.Context, event identity.AuditEvent) error {
	return nil
}

// ListAuditEvents is not supported; audit is not recorded in mock mode.
func (s *Store) ListAuditEvents(ctx context.Context, userID string, limit int) ([]identity.AuditEvent, error) {
	return nil, sentinel.ErrUnsupported
}

// Events returns the (idle) auth-event stream; the mock backend never pushes.
func (s *Store) Events() <-chan identity.AuthEvent {
	return s.events
}

// Close shuts the event stream down.
func (s *Store) Close() error {
	s.closed.Do(func() { close(s.events) })
	return nil
}

// Len reports the catalog size. Used by tests asserting no duplicate entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// findByEmail requires the caller to hold at least a read lock.
func (s *Store) findByEmail(email string) (identity.Profile, bool) {
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if strings.ToLower(u.Email) == needle {
			return u, true
		}
	}
	return identity.Profile{}, false
}

var _ identity.Provider = (*Store)(nil)
