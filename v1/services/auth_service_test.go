package services

import (
	"errors"
	"testing"
	"time"

	"github.com/amitjangid17/SVJSS/v1/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func newTestAuthService(t *testing.T) *AuthService {
	service, err := NewAuthService(AuthConfig{
		AdminEmail:    "admin@jangidsamaj.org",
		AdminPassword: "test-password",
		SigningKey:    "test-signing-key",
		TokenTTL:      time.Hour,
	})
	if err != nil {
		t.Fatalf("failed to create auth service: %v", err)
	}
	return service
}

func TestAuthService_Login(t *testing.T) {
	t.Run("Login_Success", func(t *testing.T) {
		service := newTestAuthService(t)

		resp, err := service.Login(&models.LoginRequest{
			Email:    "admin@jangidsamaj.org",
			Password: "test-password",
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.NotEmpty(t, resp.Token)

		token, err := jwt.ParseWithClaims(resp.Token, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-signing-key"), nil
		})
		assert.NoError(t, err)
		assert.True(t, token.Valid)

		claims := token.Claims.(*jwt.RegisteredClaims)
		assert.Equal(t, TokenIssuer, claims.Issuer)
		assert.Equal(t, "admin@jangidsamaj.org", claims.Subject)
	})

	t.Run("Login_WrongPassword", func(t *testing.T) {
		service := newTestAuthService(t)

		resp, err := service.Login(&models.LoginRequest{
			Email:    "admin@jangidsamaj.org",
			Password: "wrong-password",
		})

		assert.True(t, errors.Is(err, ErrInvalidCredentials))
		assert.Nil(t, resp)
	})

	t.Run("Login_WrongEmail", func(t *testing.T) {
		service := newTestAuthService(t)

		resp, err := service.Login(&models.LoginRequest{
			Email:    "intruder@example.com",
			Password: "test-password",
		})

		assert.True(t, errors.Is(err, ErrInvalidCredentials))
		assert.Nil(t, resp)
	})
}

func TestNewAuthService_Validation(t *testing.T) {
	t.Run("MissingCredentials", func(t *testing.T) {
		_, err := NewAuthService(AuthConfig{SigningKey: "key"})
		assert.Error(t, err)
	})

	t.Run("MissingSigningKey", func(t *testing.T) {
		_, err := NewAuthService(AuthConfig{
			AdminEmail:    "admin@jangidsamaj.org",
			AdminPassword: "test-password",
		})
		assert.Error(t, err)
	})
}
