package model

// FailureKind classifies an expected business failure of an auth operation.
// Unexpected faults (store unreachable etc.) are returned as plain errors
// and never reach an AuthResult.
type FailureKind string

const (
	KindDuplicateUser       FailureKind = "duplicate_user"
	KindRegistrationFailed  FailureKind = "registration_failed"
	KindInvalidCredentials  FailureKind = "invalid_credentials"
	KindInvalidToken        FailureKind = "invalid_token"
	KindInvalidUser         FailureKind = "invalid_user"
	KindInvalidRefreshToken FailureKind = "invalid_refresh_token"
)

// AuthResult is the transient outcome of Register, Login or Refresh.
// On success AccessToken and RefreshToken are set; on failure Kind and
// Message carry a fixed, enumeration-safe description.
type AuthResult struct {
	Success      bool
	Kind         FailureKind
	Message      string
	AccessToken  string
	RefreshToken string
}

// AuthFailure builds a failed result with the given kind and fixed message.
func AuthFailure(kind FailureKind, message string) *AuthResult {
	return &AuthResult{Kind: kind, Message: message}
}

// AuthSuccess builds a successful result carrying a fresh token pair.
func AuthSuccess(accessToken, refreshToken string) *AuthResult {
	return &AuthResult{Success: true, AccessToken: accessToken, RefreshToken: refreshToken}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	AccessToken string `json:"accessToken" binding:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// AuthUser is the identity extracted from a validated access token and
// attached to the request context by the auth middleware.
type AuthUser struct {
	ID       int64
	Username string
	Role     string
}
