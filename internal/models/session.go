package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Session maps an opaque token to a user. A nil ExpiresAt means the session
// never expires (the original behavior, kept reachable via SESSION_TTL_HOURS=0).
type Session struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Token     string     `gorm:"uniqueIndex;size:64;not null" json:"-"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"-"`
}

// Expired reports whether the session is past its expiry, if it has one.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// NewSessionToken returns a 128-bit cryptographically random token,
// hex-encoded. Collisions are not handled; at this entropy the unique
// index on the token column is formality enough.
func NewSessionToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
