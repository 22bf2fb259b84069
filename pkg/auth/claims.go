// Package auth provides JWT bearer authentication for chat-engine.
// Tokens are validated against the identity provider's JWKS endpoints.
package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// ClaimsKey is the context key for storing JWT claims.
	ClaimsKey contextKey = "claims"
	// TokenKey is the context key for storing the raw JWT token string.
	TokenKey contextKey = "token"
)

// Claims represents the JWT claims issued by the identity provider.
// It embeds RegisteredClaims for standard fields (sub, iss, exp, etc.)
// and adds the directory claims the backend cares about.
type Claims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tid,omitempty"`   // directory tenant UUID
	ObjectID string `json:"oid,omitempty"`   // directory object ID of the caller
	Email    string `json:"email,omitempty"` // user email address
	Name     string `json:"name,omitempty"`  // display name
	Scope    string `json:"scp,omitempty"`   // granted OAuth scopes
}

// GetClaims retrieves JWT claims from the request context.
// Returns nil and false if claims are not present.
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*Claims)
	return claims, ok
}

// GetToken retrieves the raw JWT token string from the request context.
// Returns empty string and false if token is not present.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

// CallerID returns the directory object ID of the authenticated caller,
// falling back to the subject claim when oid is absent.
func CallerID(ctx context.Context) (string, error) {
	claims, ok := GetClaims(ctx)
	if !ok || claims == nil {
		return "", fmt.Errorf("authentication required: no claims in context")
	}
	if claims.ObjectID != "" {
		return claims.ObjectID, nil
	}
	if claims.Subject != "" {
		return claims.Subject, nil
	}
	return "", fmt.Errorf("missing caller identity in JWT claims")
}
