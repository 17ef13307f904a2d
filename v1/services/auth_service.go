package services

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/amitjangid17/SVJSS/v1/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer is the issuer claim stamped on every access token
const TokenIssuer = "svjss-directory-backend"

// AuthService issues admin access tokens against the configured credential
// pair. Credential storage and rotation live outside this service; it only
// compares against what the environment provides.
type AuthService struct {
	adminEmail    string
	adminPassword string
	signingKey    []byte
	tokenTTL      time.Duration
}

// AuthConfig contains configuration for the auth service
type AuthConfig struct {
	AdminEmail    string
	AdminPassword string
	SigningKey    string
	TokenTTL      time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(config AuthConfig) (*AuthService, error) {
	if config.AdminEmail == "" || config.AdminPassword == "" {
		return nil, fmt.Errorf("admin credentials are not configured")
	}
	if config.SigningKey == "" {
		return nil, fmt.Errorf("JWT signing key is not configured")
	}
	ttl := config.TokenTTL
	if ttl == 0 {
		ttl = 12 * time.Hour
	}
	return &AuthService{
		adminEmail:    config.AdminEmail,
		adminPassword: config.AdminPassword,
		signingKey:    []byte(config.SigningKey),
		tokenTTL:      ttl,
	}, nil
}

// NewAuthServiceFromEnv builds the auth service from environment variables
func NewAuthServiceFromEnv() (*AuthService, error) {
	ttl := 12 * time.Hour
	if raw := os.Getenv("AUTH_TOKEN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTH_TOKEN_TTL: %w", err)
		}
		ttl = parsed
	}
	return NewAuthService(AuthConfig{
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SigningKey:    os.Getenv("JWT_SIGNING_KEY"),
		TokenTTL:      ttl,
	})
}

// SigningKey exposes the key for the authentication middleware
func (s *AuthService) SigningKey() []byte {
	return s.signingKey
}

// Login validates the credential pair and issues an HS256 access token whose
// subject is the admin's email. The email becomes the audit actor on every
// mutation performed with the token.
func (s *AuthService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(s.adminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.adminPassword)) == 1
	if !emailOK || !passwordOK {
		slog.Warn("Failed login attempt", "email", req.Email)
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Subject:   s.adminEmail,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	slog.Info("Admin logged in", "email", s.adminEmail)
	return &models.LoginResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, nil
}
