package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stocksmart/backend/internal/config"
	"github.com/stocksmart/backend/internal/model"
	"github.com/stocksmart/backend/internal/service"
)

const refreshCookieName = "stocksmart_refresh"

// Refresh tokens live for seven days; the cookie matches.
const refreshCookieMaxAge = 7 * 24 * 60 * 60

type CookieConfig struct {
	Name   string
	Path   string
	Domain string
	Secure bool
	MaxAge int
}

type AuthHandler struct {
	svc       *service.AuthService
	cookieCfg CookieConfig
}

func NewAuthHandler(svc *service.AuthService, cfg config.AuthConfig) *AuthHandler {
	secure := true
	if parsed, err := strconv.ParseBool(cfg.CookieSecure); err == nil {
		secure = parsed
	}

	return &AuthHandler{
		svc: svc,
		cookieCfg: CookieConfig{
			Name:   refreshCookieName,
			Path:   "/",
			Domain: cfg.CookieDomain,
			Secure: secure,
			MaxAge: refreshCookieMaxAge,
		},
	}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Username, email and password"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServerError(c)
		return
	}

	h.writeAuthResult(c, result)
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Username and password"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeServerError(c)
		return
	}

	h.writeAuthResult(c, result)
}

// Refresh godoc
// @Summary Exchange an expired access token for a new token pair
// @Description The refresh token is read from the stocksmart_refresh cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RefreshRequest true "Expired access token"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	refreshToken, _ := c.Cookie(h.cookieCfg.Name)
	result, err := h.svc.Refresh(c.Request.Context(), req.AccessToken, refreshToken)
	if err != nil {
		writeServerError(c)
		return
	}

	h.writeAuthResult(c, result)
}

// Logout godoc
// @Summary Logout
// @Description Revokes the stored refresh token and clears the cookie. The
// access token stays valid until its natural expiry.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.StatusResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	_ = h.svc.Logout(c.Request.Context(), user.ID)
	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, model.StatusResponse{Status: "logged_out"})
}

// Me godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AuthUser
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) writeAuthResult(c *gin.Context, result *model.AuthResult) {
	if !result.Success {
		c.JSON(statusForKind(result.Kind), gin.H{"error": result.Message})
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	c.JSON(http.StatusOK, model.AuthResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   h.svc.TokenTTL(),
	})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookieCfg.Name, token, h.cookieCfg.MaxAge, h.cookieCfg.Path, h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookieCfg.Name, "", -1, h.cookieCfg.Path, h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

func statusForKind(kind model.FailureKind) int {
	switch kind {
	case model.KindDuplicateUser:
		return http.StatusConflict
	case model.KindRegistrationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusUnauthorized
	}
}

func writeServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
}
