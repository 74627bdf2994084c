package config

import (
	"os"
	"strings"
)

type Config struct {
	Server ServerConfig
	Auth   AuthConfig
	CORS   CORSConfig
}

type ServerConfig struct {
	Port string
}

type AuthConfig struct {
	JWTSecret    string
	JWTIssuer    string
	JWTAudience  string
	CookieDomain string
	CookieSecure string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port: getenv("PORT", "8080"),
		},
		Auth: AuthConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			JWTIssuer:    getenv("JWT_ISSUER", "stocksmart"),
			JWTAudience:  getenv("JWT_AUDIENCE", "stocksmart-api"),
			CookieDomain: os.Getenv("AUTH_COOKIE_DOMAIN"),
			CookieSecure: os.Getenv("AUTH_COOKIE_SECURE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
