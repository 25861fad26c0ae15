// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.
package auth

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// Provider identifies how an identity was established.
type Provider string

const (
	ProviderPassword Provider = "password"
	ProviderGoogle   Provider = "google"
)

// Identity represents the authenticated principal returned by an identity
// provider (or by the local password store). Adapters map provider-specific
// claims into this shape.
type Identity struct {
	UserID    string // stable user identifier (local uuid or provider sub)
	Email     string
	FullName  string
	AvatarURL string
	Provider  Provider
	ExpiresAt time.Time // absolute session expiry
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsGuest returns true if the session role is guest.
func (s Session) IsGuest() bool { return s.Role == RoleGuest }

// IsAdmin returns true if the session carries the admin role.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// SessionEventKind describes a change to the session lifecycle.
type SessionEventKind string

const (
	// SessionEstablished fires after a login (password or OAuth) persists a session.
	SessionEstablished SessionEventKind = "established"
	// SessionCleared fires after a logout removes a session.
	SessionCleared SessionEventKind = "cleared"
)

// SessionEvent is delivered to session-change subscribers.
type SessionEvent struct {
	Kind    SessionEventKind
	Session Session
}
