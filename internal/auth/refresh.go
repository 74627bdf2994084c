package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"time"

	"github.com/stocksmart/backend/internal/model"
)

const (
	refreshTokenBytes = 64
	refreshTokenTTL   = 7 * 24 * time.Hour
)

// RefreshManager generates, persists, validates and revokes the opaque
// long-lived refresh tokens. A user holds at most one live token; every
// successful refresh or re-login replaces it.
type RefreshManager struct {
	store UserStore
}

func NewRefreshManager(store UserStore) *RefreshManager {
	return &RefreshManager{store: store}
}

// Generate produces a fresh token from 64 bytes of crypto/rand entropy,
// valid for seven days.
func (m *RefreshManager) Generate() (*model.RefreshToken, error) {
	raw := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}

	now := time.Now()
	return &model.RefreshToken{
		Token:     base64.RawURLEncoding.EncodeToString(raw),
		IssuedAt:  now,
		ExpiresAt: now.Add(refreshTokenTTL),
	}, nil
}

// Persist overwrites the user's current refresh token slot.
func (m *RefreshManager) Persist(ctx context.Context, userID int64, token *model.RefreshToken) error {
	return m.store.SetRefreshToken(ctx, userID, token.Token, token.ExpiresAt)
}

// Validate reports whether presented matches the user's stored token and the
// token has not expired. Missing, mismatched and expired all read as false.
func (m *RefreshManager) Validate(ctx context.Context, userID int64, presented string) (bool, error) {
	stored, err := m.store.GetRefreshToken(ctx, userID)
	if err != nil {
		if err == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	if stored == nil || stored.Token == "" || presented == "" {
		return false, nil
	}

	if subtle.ConstantTimeCompare([]byte(stored.Token), []byte(presented)) != 1 {
		return false, nil
	}
	return time.Now().Before(stored.ExpiresAt), nil
}

// Revoke clears the stored token, making any outstanding refresh token
// permanently unusable even before its expiry.
func (m *RefreshManager) Revoke(ctx context.Context, userID int64) error {
	return m.store.ClearRefreshToken(ctx, userID)
}
