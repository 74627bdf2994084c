package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocksmart/backend/internal/model"
)

func testIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer("test-secret", "stocksmart", "stocksmart-api")
	require.NoError(t, err)
	return issuer
}

func testUser() *model.User {
	return &model.User{ID: 42, Username: "alice", Role: "User"}
}

func TestNewTokenIssuer_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewTokenIssuer("", "stocksmart", "stocksmart-api")
	require.ErrorIs(t, err, ErrMisconfigured)
}

func TestIssueAndParse(t *testing.T) {
	t.Parallel()

	issuer := testIssuer(t)
	token, err := issuer.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "User", user.Role)
}

func TestParse_WrongKey(t *testing.T) {
	t.Parallel()

	issuer := testIssuer(t)
	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	other, err := NewTokenIssuer("other-secret", "stocksmart", "stocksmart-api")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = other.DecodeExpired(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongIssuerOrAudience(t *testing.T) {
	t.Parallel()

	issuer := testIssuer(t)
	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	other, err := NewTokenIssuer("test-secret", "someone-else", "stocksmart-api")
	require.NoError(t, err)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// DecodeExpired checks the signature only, so issuer mismatch passes.
	user, err := other.DecodeExpired(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
}

func TestDecodeExpired_AcceptsExpiredToken(t *testing.T) {
	t.Parallel()

	issuer := testIssuer(t)

	now := time.Now()
	claims := accessClaims{
		Username: "alice",
		Role:     "User",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    "stocksmart",
			Audience:  jwt.ClaimStrings{"stocksmart-api"},
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = issuer.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	user, err := issuer.DecodeExpired(expired)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestDecodeExpired_BadSubject(t *testing.T) {
	t.Parallel()

	issuer := testIssuer(t)
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-number"},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = issuer.DecodeExpired(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeExpired_Malformed(t *testing.T) {
	t.Parallel()

	issuer := testIssuer(t)
	_, err := issuer.DecodeExpired("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsNonHMACAlg(t *testing.T) {
	t.Parallel()

	issuer := testIssuer(t)

	// alg=none must never verify, with or without expiry checking.
	claims := accessClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "42"}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = issuer.DecodeExpired(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
