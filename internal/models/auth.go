package models

import "time"

// LoginRequest defines the structure for admin login requests
type LoginRequest struct {
	Code string `json:"code"`
}

// AdminSession is a decoded admin session token. It is never persisted; the
// signed token is the whole session.
type AdminSession struct {
	Token    string
	IssuedAt time.Time
	TTL      time.Duration
}

// ExpiresAt returns the last instant at which the session still verifies
func (s AdminSession) ExpiresAt() time.Time {
	return s.IssuedAt.Add(s.TTL)
}
