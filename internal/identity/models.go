// Package identity defines the entities shared by every identity backend: the
// authenticated profile, its sessions, and the append-only audit trail. The
// system of record for all of them is the active backend, never this process.
package identity

import "time"

// Role is the closed set of profile roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleDemo  Role = "demo"
)

// Profile represents an authenticated principal. Email is the login key and is
// unique across all profiles known to the active backend.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session represents one authenticated client instance, issued and persisted
// by the hosted backend. The mock backend does not track sessions.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Token        string    `json:"token"`
	IPAddress    string    `json:"ip_address,omitempty"`
	UserAgent    string    `json:"user_agent,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// Active reports whether the session is still valid at the given instant.
func (s Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// Action is the closed vocabulary of audited actions.
type Action string

const (
	ActionSignedIn       Action = "signed_in"
	ActionSignedUp       Action = "signed_up"
	ActionSignedOut      Action = "signed_out"
	ActionProfileUpdated Action = "profile_updated"
	ActionSessionRevoked Action = "session_revoked"
)

// AuditEvent is an immutable record of a security-relevant action. Events are
// appended after the primary operation succeeds and are never mutated.
type AuditEvent struct {
	ID        string            `json:"id,omitempty"`
	UserID    string            `json:"user_id"`
	Action    Action            `json:"action"`
	Resource  string            `json:"resource,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	IPAddress string            `json:"ip_address,omitempty"`
	UserAgent string            `json:"user_agent,omitempty"`
	CreatedAt time.Time         `json:"created_at,omitempty"`
}

// ProfileUpdate carries a partial profile mutation. Nil fields are untouched.
type ProfileUpdate struct {
	Name      *string
	AvatarURL *string
}

// IsEmpty reports whether the update would change nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.AvatarURL == nil
}

// Fields lists the submitted field set for audit metadata.
func (u ProfileUpdate) Fields() map[string]string {
	fields := make(map[string]string)
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.AvatarURL != nil {
		fields["avatar_url"] = *u.AvatarURL
	}
	return fields
}

// Apply returns a copy of p with the update folded in.
func (u ProfileUpdate) Apply(p Profile) Profile {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.AvatarURL != nil {
		p.AvatarURL = *u.AvatarURL
	}
	return p
}
