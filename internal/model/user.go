package model

import "time"

// User is the identity record behind every auth operation. PasswordHash and
// PasswordSalt are always written together: the salt is the key material of
// the keyed hash that produced the digest.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash []byte
	PasswordSalt []byte
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time

	// Current refresh token slot. At most one live token per user; empty
	// string means no token is outstanding.
	RefreshToken          string
	RefreshTokenExpiresAt *time.Time
}

// RefreshToken is the opaque long-lived token paired with a short-lived
// access token. It is stored on the user row, not in its own table.
type RefreshToken struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
