package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockValidator returns canned claims or a canned error.
type mockValidator struct {
	claims *Claims
	err    error
}

func (m *mockValidator) ValidateToken(tokenString string) (*Claims, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

func (m *mockValidator) Close() {}

func TestRequireAuthSetsClaimsInContext(t *testing.T) {
	validator := &mockValidator{claims: &Claims{
		TenantID: "8e7a3a60-1f0d-4a2e-9f6d-0c9a1b2c3d4e",
		ObjectID: "user-oid",
		Email:    "user@example.com",
	}}
	mw := NewMiddleware(validator, zap.NewNop())

	var gotClaims *Claims
	var gotToken string
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = GetClaims(r.Context())
		gotToken, _ = GetToken(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotClaims)
	assert.Equal(t, "user-oid", gotClaims.ObjectID)
	assert.Equal(t, "user@example.com", gotClaims.Email)
	assert.Equal(t, "some-token", gotToken)
}

func TestRequireAuthMissingHeader(t *testing.T) {
	mw := NewMiddleware(&mockValidator{claims: &Claims{}}, zap.NewNop())

	called := false
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	mw := NewMiddleware(&mockValidator{claims: &Claims{}}, zap.NewNop())

	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})

	for _, header := range []string{"some-token", "Basic dXNlcjpwYXNz", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	mw := NewMiddleware(&mockValidator{err: errors.New("signature invalid")}, zap.NewNop())

	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
