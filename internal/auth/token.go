package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stocksmart/backend/internal/model"
)

const accessTokenTTL = time.Hour

var (
	ErrMisconfigured = errors.New("auth config invalid")
	ErrInvalidToken  = errors.New("invalid token")
)

type accessClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and validates the short-lived HS512 access tokens.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
}

// NewTokenIssuer fails when the signing key is empty. That is a deployment
// misconfiguration, so callers should abort startup rather than retry.
func NewTokenIssuer(secret, issuer, audience string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	return &TokenIssuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}, nil
}

// Issue signs an access token carrying the user's id, username and role,
// expiring one hour from now.
func (t *TokenIssuer) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(t.secret)
}

// TTL reports the access token lifetime in seconds, for response bodies.
func (t *TokenIssuer) TTL() int64 {
	return int64(accessTokenTTL.Seconds())
}

// Parse fully validates an access token (signature, expiry, issuer,
// audience) and returns the identity it carries.
func (t *TokenIssuer) Parse(tokenStr string) (*model.AuthUser, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, t.keyfunc,
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims.authUser()
}

// DecodeExpired checks the signature only, skipping expiry, issuer and
// audience. It exists solely to pull the identity out of an already-expired
// access token during a refresh exchange.
func (t *TokenIssuer) DecodeExpired(tokenStr string) (*model.AuthUser, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, t.keyfunc,
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims.authUser()
}

func (t *TokenIssuer) keyfunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}
	return t.secret, nil
}

func (c *accessClaims) authUser() (*model.AuthUser, error) {
	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &model.AuthUser{
		ID:       userID,
		Username: c.Username,
		Role:     c.Role,
	}, nil
}
