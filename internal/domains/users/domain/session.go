package domain

import "time"

// Session is an opaque bearer token bound to an account until it expires.
type Session struct {
	Token     string
	Email     string
	IsAdmin   bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
