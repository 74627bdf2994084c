package auth

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocksmart/backend/internal/model"
)

// fakeTokenStore implements only the refresh-token slice of UserStore.
type fakeTokenStore struct {
	UserStore
	tokens map[int64]*model.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[int64]*model.RefreshToken{}}
}

func (s *fakeTokenStore) SetRefreshToken(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	s.tokens[userID] = &model.RefreshToken{Token: token, ExpiresAt: expiresAt}
	return nil
}

func (s *fakeTokenStore) GetRefreshToken(_ context.Context, userID int64) (*model.RefreshToken, error) {
	return s.tokens[userID], nil
}

func (s *fakeTokenStore) ClearRefreshToken(_ context.Context, userID int64) error {
	delete(s.tokens, userID)
	return nil
}

func TestGenerate_EntropyAndExpiry(t *testing.T) {
	t.Parallel()

	m := NewRefreshManager(newFakeTokenStore())
	before := time.Now()
	token, err := m.Generate()
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token.Token)
	require.NoError(t, err)
	assert.Len(t, raw, refreshTokenBytes)

	wantExpiry := before.Add(refreshTokenTTL)
	assert.WithinDuration(t, wantExpiry, token.ExpiresAt, 5*time.Second)

	second, err := m.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, token.Token, second.Token)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newFakeTokenStore()
	m := NewRefreshManager(store)

	token, err := m.Generate()
	require.NoError(t, err)
	require.NoError(t, m.Persist(ctx, 1, token))

	ok, err := m.Validate(ctx, 1, token.Token)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Validate(ctx, 1, "some-other-token")
	require.NoError(t, err)
	assert.False(t, ok)

	// No token stored for this user at all.
	ok, err = m.Validate(ctx, 2, token.Token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newFakeTokenStore()
	m := NewRefreshManager(store)

	store.tokens[1] = &model.RefreshToken{
		Token:     "matching-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	ok, err := m.Validate(ctx, 1, "matching-token")
	require.NoError(t, err)
	assert.False(t, ok, "an expired token must not validate even on exact match")
}

func TestRevoke(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newFakeTokenStore()
	m := NewRefreshManager(store)

	token, err := m.Generate()
	require.NoError(t, err)
	require.NoError(t, m.Persist(ctx, 1, token))
	require.NoError(t, m.Revoke(ctx, 1))

	ok, err := m.Validate(ctx, 1, token.Token)
	require.NoError(t, err)
	assert.False(t, ok, "a revoked token must be permanently unusable")
}
