package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stocksmart/backend/internal/auth"
	"github.com/stocksmart/backend/internal/model"
)

// Fixed failure messages. Login failures are deliberately identical for
// unknown usernames and wrong passwords so responses cannot be used to
// enumerate accounts.
const (
	msgDuplicateUser       = "Username already exists"
	msgRegistrationFailed  = "Registration failed"
	msgInvalidCredentials  = "Username or password is incorrect"
	msgInvalidToken        = "Invalid token"
	msgInvalidUser         = "Invalid user"
	msgInvalidRefreshToken = "Invalid refresh token"
)

const defaultRole = "User"

// AuthService coordinates the hasher, token issuer and refresh manager over
// the user store. Expected business failures come back as a non-error
// AuthResult; a returned error always means an unexpected store fault.
type AuthService struct {
	store   auth.UserStore
	hasher  *auth.Hasher
	issuer  *auth.TokenIssuer
	refresh *auth.RefreshManager
}

func NewAuthService(store auth.UserStore, issuer *auth.TokenIssuer) *AuthService {
	return &AuthService{
		store:   store,
		hasher:  auth.NewHasher(),
		issuer:  issuer,
		refresh: auth.NewRefreshManager(store),
	}
}

// TokenTTL reports the access token lifetime in seconds.
func (s *AuthService) TokenTTL() int64 {
	return s.issuer.TTL()
}

// ParseAccessToken validates a bearer token for the request middleware.
func (s *AuthService) ParseAccessToken(token string) (*model.AuthUser, error) {
	return s.issuer.Parse(token)
}

// Register creates a new user with role "User" and returns a fresh token
// pair. A taken username fails with KindDuplicateUser without touching the
// store beyond the existence check.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.AuthResult, error) {
	exists, err := s.store.Exists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if exists {
		return model.AuthFailure(model.KindDuplicateUser, msgDuplicateUser), nil
	}

	digest, salt, err := s.hasher.Hash(password)
	if err != nil {
		return model.AuthFailure(model.KindRegistrationFailed, msgRegistrationFailed), nil
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		PasswordSalt: salt,
		Role:         defaultRole,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	if err := s.store.Insert(ctx, user); err != nil {
		if errors.Is(err, auth.ErrDuplicate) {
			return model.AuthFailure(model.KindDuplicateUser, msgDuplicateUser), nil
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Login verifies the credentials, updates the last-login timestamp and
// returns a fresh token pair, replacing any outstanding refresh token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.AuthResult, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return model.AuthFailure(model.KindInvalidCredentials, msgInvalidCredentials), nil
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash, user.PasswordSalt) {
		return model.AuthFailure(model.KindInvalidCredentials, msgInvalidCredentials), nil
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.store.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Refresh exchanges an expired access token plus a live refresh token for a
// new pair. The presented refresh token is revoked before its replacement is
// persisted, so each refresh token is usable exactly once.
func (s *AuthService) Refresh(ctx context.Context, expiredAccess, presentedRefresh string) (*model.AuthResult, error) {
	identity, err := s.issuer.DecodeExpired(expiredAccess)
	if err != nil {
		return model.AuthFailure(model.KindInvalidToken, msgInvalidToken), nil
	}

	user, err := s.store.FindByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return model.AuthFailure(model.KindInvalidUser, msgInvalidUser), nil
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	ok, err := s.refresh.Validate(ctx, user.ID, presentedRefresh)
	if err != nil {
		return nil, fmt.Errorf("validating refresh token: %w", err)
	}
	if !ok {
		return model.AuthFailure(model.KindInvalidRefreshToken, msgInvalidRefreshToken), nil
	}

	if err := s.refresh.Revoke(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("revoking refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the user's stored refresh token. The access token stays
// valid until its natural expiry; only the boundary cookie is cleared.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.refresh.Revoke(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*model.AuthResult, error) {
	accessToken, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issuing access token: %w", err)
	}

	refreshToken, err := s.refresh.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating refresh token: %w", err)
	}

	if err := s.refresh.Persist(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("persisting refresh token: %w", err)
	}

	return model.AuthSuccess(accessToken, refreshToken.Token), nil
}
