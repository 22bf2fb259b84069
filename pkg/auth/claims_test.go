package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallerID(t *testing.T) {
	t.Run("prefers object ID", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), ClaimsKey, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "sub-1"},
			ObjectID:         "oid-1",
		})
		id, err := CallerID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "oid-1", id)
	})

	t.Run("falls back to subject", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), ClaimsKey, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "sub-1"},
		})
		id, err := CallerID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "sub-1", id)
	})

	t.Run("no claims", func(t *testing.T) {
		_, err := CallerID(context.Background())
		assert.Error(t, err)
	})

	t.Run("empty claims", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), ClaimsKey, &Claims{})
		_, err := CallerID(ctx)
		assert.Error(t, err)
	})
}

func TestGetClaimsAbsent(t *testing.T) {
	claims, ok := GetClaims(context.Background())
	assert.False(t, ok)
	assert.Nil(t, claims)
}

func TestGetTokenRoundTrip(t *testing.T) {
	ctx := context.WithValue(context.Background(), TokenKey, "raw-token")
	token, ok := GetToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "raw-token", token)
}
