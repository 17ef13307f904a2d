package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/amitjangid17/SVJSS/v1/models"
	"github.com/amitjangid17/SVJSS/v1/utils"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const actorContextKey contextKey = "svjss.actor"

// JWTAuthMiddleware validates self-issued HS256 admin tokens
type JWTAuthMiddleware struct {
	signingKey     []byte
	expectedIssuer string
}

// JWTAuthConfig contains configuration for JWT authentication
type JWTAuthConfig struct {
	SigningKey     []byte
	ExpectedIssuer string
}

// Validate checks the configuration for required values
func (c JWTAuthConfig) Validate() error {
	if len(c.SigningKey) == 0 {
		return fmt.Errorf("signing key is required")
	}
	return nil
}

// NewJWTAuthMiddleware creates a new JWT authentication middleware
func NewJWTAuthMiddleware(config JWTAuthConfig) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		signingKey:     config.SigningKey,
		expectedIssuer: config.ExpectedIssuer,
	}
}

// AuthenticateJWT returns a middleware that requires a valid bearer token,
// except on public paths. Public submission endpoints pass through without a
// token; a valid token on them still identifies the actor for audit purposes.
func (j *JWTAuthMiddleware) AuthenticateJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r) {
			next.ServeHTTP(w, r)
			return
		}

		optional := isPublicSubmission(r)

		tokenString, err := utils.ExtractBearerToken(r)
		if err != nil {
			if optional {
				next.ServeHTTP(w, r)
				return
			}
			slog.Warn("Failed to extract bearer token", "error", err, "path", r.URL.Path, "method", r.Method)
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or missing authorization header")
			return
		}

		actor, err := j.validateToken(tokenString)
		if err != nil {
			slog.Warn("Token validation failed", "error", err, "path", r.URL.Path, "method", r.Method)
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		ctx := context.WithValue(r.Context(), actorContextKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validateToken parses the token and returns the admin identity (subject)
func (j *JWTAuthMiddleware) validateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	if j.expectedIssuer != "" && claims.Issuer != j.expectedIssuer {
		return "", fmt.Errorf("invalid issuer: expected %s, got %s", j.expectedIssuer, claims.Issuer)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("subject claim is missing")
	}
	return claims.Subject, nil
}

// ActorFromRequest returns the authenticated admin identity for audit
// logging, or the System actor when the request carried no valid token
func ActorFromRequest(r *http.Request) string {
	if actor, ok := r.Context().Value(actorContextKey).(string); ok && actor != "" {
		return actor
	}
	return models.SystemActor
}

// isPublicPath reports whether the path bypasses authentication entirely
func isPublicPath(r *http.Request) bool {
	switch r.URL.Path {
	case "/api/v1/auth/login":
		return true
	}
	return false
}

// isPublicSubmission reports whether this is one of the two anonymous
// submission endpoints (membership application, profile update request)
func isPublicSubmission(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}
	switch r.URL.Path {
	case "/api/v1/membership-requests", "/api/v1/membership-requests/",
		"/api/v1/update-requests", "/api/v1/update-requests/":
		return true
	}
	return false
}
