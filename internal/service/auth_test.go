package service

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stocksmart/backend/internal/auth"
	"github.com/stocksmart/backend/internal/model"
)

// memoryUserStore is a mutex-held in-memory auth.UserStore.
type memoryUserStore struct {
	mu          sync.Mutex
	nextID      int64
	users       map[int64]*model.User
	insertCalls int
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: map[int64]*model.User{}}
}

func (s *memoryUserStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, auth.ErrNotFound
}

func (s *memoryUserStore) FindByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, auth.ErrNotFound
}

func (s *memoryUserStore) Exists(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryUserStore) Insert(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertCalls++
	for _, u := range s.users {
		if u.Username == user.Username {
			return auth.ErrDuplicate
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = user
	return nil
}

func (s *memoryUserStore) Update(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return auth.ErrNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *memoryUserStore) SetRefreshToken(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return auth.ErrNotFound
	}
	u.RefreshToken = token
	u.RefreshTokenExpiresAt = &expiresAt
	return nil
}

func (s *memoryUserStore) GetRefreshToken(_ context.Context, userID int64) (*model.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, auth.ErrNotFound
	}
	if u.RefreshToken == "" || u.RefreshTokenExpiresAt == nil {
		return nil, nil
	}
	return &model.RefreshToken{Token: u.RefreshToken, ExpiresAt: *u.RefreshTokenExpiresAt}, nil
}

func (s *memoryUserStore) ClearRefreshToken(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.RefreshToken = ""
		u.RefreshTokenExpiresAt = nil
	}
	return nil
}

// failingUserStore errors on every read to exercise the fault path.
type failingUserStore struct {
	memoryUserStore
}

func (s *failingUserStore) Exists(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func newTestAuthService(t *testing.T, store auth.UserStore) *AuthService {
	t.Helper()
	issuer, err := auth.NewTokenIssuer("test-secret", "stocksmart", "stocksmart-api")
	if err != nil {
		t.Fatalf("NewTokenIssuer error: %v", err)
	}
	return NewAuthService(store, issuer)
}

func TestRegister_Success(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestAuthService(t, store)

	before := time.Now()
	result, err := svc.Register(context.Background(), "alice", "a@x.com", "Pw1!")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.AccessToken == "" {
		t.Fatalf("expected non-empty access token")
	}

	raw, err := base64.RawURLEncoding.DecodeString(result.RefreshToken)
	if err != nil {
		t.Fatalf("refresh token is not base64: %v", err)
	}
	if len(raw) < 64 {
		t.Fatalf("refresh token entropy = %d bytes, want >= 64", len(raw))
	}

	user, err := store.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if user.Role != "User" {
		t.Fatalf("role = %q, want User", user.Role)
	}
	if len(user.PasswordHash) == 0 || len(user.PasswordSalt) == 0 {
		t.Fatalf("hash and salt must both be stored")
	}
	if user.RefreshToken != result.RefreshToken {
		t.Fatalf("stored refresh token does not match returned one")
	}

	wantExpiry := before.Add(7 * 24 * time.Hour)
	if d := user.RefreshTokenExpiresAt.Sub(wantExpiry); d < -5*time.Second || d > 5*time.Second {
		t.Fatalf("refresh expiry %v not ~7 days ahead", user.RefreshTokenExpiresAt)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "a@x.com", "Pw1!"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	inserts := store.insertCalls

	result, err := svc.Register(ctx, "alice", "other@x.com", "Pw2!")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if result.Success {
		t.Fatalf("expected failure for duplicate username")
	}
	if result.Kind != model.KindDuplicateUser {
		t.Fatalf("kind = %q, want %q", result.Kind, model.KindDuplicateUser)
	}
	if result.Message != "Username already exists" {
		t.Fatalf("message = %q", result.Message)
	}
	if store.insertCalls != inserts {
		t.Fatalf("duplicate registration must not call insert")
	}
}

func TestLogin_EnumerationResistance(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "a@x.com", "Pw1!"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	wrongPassword, err := svc.Login(ctx, "alice", "wrong")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	unknownUser, err := svc.Login(ctx, "nobody", "wrong")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	if wrongPassword.Success || unknownUser.Success {
		t.Fatalf("expected both logins to fail")
	}
	if wrongPassword.Kind != model.KindInvalidCredentials || unknownUser.Kind != model.KindInvalidCredentials {
		t.Fatalf("kinds = %q / %q, want both %q", wrongPassword.Kind, unknownUser.Kind, model.KindInvalidCredentials)
	}
	if wrongPassword.Message != unknownUser.Message {
		t.Fatalf("failure messages differ: %q vs %q", wrongPassword.Message, unknownUser.Message)
	}
}

func TestLogin_Success(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "a@x.com", "Pw1!")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	result, err := svc.Login(ctx, "alice", "Pw1!")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("expected a fresh token pair")
	}
	if result.RefreshToken == registered.RefreshToken {
		t.Fatalf("login must replace the prior refresh token")
	}

	user, _ := store.FindByUsername(ctx, "alice")
	if user.LastLoginAt == nil {
		t.Fatalf("last-login timestamp not updated")
	}
}

func TestRefresh_RotationSingleUse(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	login, err := svc.Register(ctx, "alice", "a@x.com", "Pw1!")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	first, err := svc.Refresh(ctx, login.AccessToken, login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if !first.Success {
		t.Fatalf("expected refresh success, got %q", first.Message)
	}
	if first.RefreshToken == login.RefreshToken {
		t.Fatalf("refresh must rotate the refresh token")
	}
	if first.AccessToken == "" {
		t.Fatalf("expected a new access token")
	}

	replay, err := svc.Refresh(ctx, login.AccessToken, login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if replay.Success {
		t.Fatalf("a used refresh token must not validate again")
	}
	if replay.Kind != model.KindInvalidRefreshToken {
		t.Fatalf("kind = %q, want %q", replay.Kind, model.KindInvalidRefreshToken)
	}
	if replay.Message != "Invalid refresh token" {
		t.Fatalf("message = %q", replay.Message)
	}
}

func TestRefresh_ExpiredRefreshToken(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	login, err := svc.Register(ctx, "alice", "a@x.com", "Pw1!")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// Force the stored token past its expiry; the string still matches.
	user, _ := store.FindByUsername(ctx, "alice")
	past := time.Now().Add(-time.Minute)
	user.RefreshTokenExpiresAt = &past

	result, err := svc.Refresh(ctx, login.AccessToken, login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if result.Success || result.Kind != model.KindInvalidRefreshToken {
		t.Fatalf("expected InvalidRefreshToken, got success=%v kind=%q", result.Success, result.Kind)
	}
}

func TestRefresh_BadAccessToken(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestAuthService(t, store)

	result, err := svc.Refresh(context.Background(), "not.a.jwt", "whatever")
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if result.Success || result.Kind != model.KindInvalidToken {
		t.Fatalf("expected InvalidToken, got success=%v kind=%q", result.Success, result.Kind)
	}
}

func TestRefresh_UnknownUser(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	login, err := svc.Register(ctx, "alice", "a@x.com", "Pw1!")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	delete(store.users, 1)

	result, err := svc.Refresh(ctx, login.AccessToken, login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if result.Success || result.Kind != model.KindInvalidUser {
		t.Fatalf("expected InvalidUser, got success=%v kind=%q", result.Success, result.Kind)
	}
}

func TestRegister_StoreFaultPropagates(t *testing.T) {
	svc := newTestAuthService(t, &failingUserStore{})

	result, err := svc.Register(context.Background(), "alice", "a@x.com", "Pw1!")
	if err == nil {
		t.Fatalf("expected a store fault to surface as an error, got %+v", result)
	}
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	login, err := svc.Register(ctx, "alice", "a@x.com", "Pw1!")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := svc.Logout(ctx, 1); err != nil {
		t.Fatalf("Logout error: %v", err)
	}

	result, err := svc.Refresh(ctx, login.AccessToken, login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if result.Success {
		t.Fatalf("refresh token must be unusable after logout")
	}
}
