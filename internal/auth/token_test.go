package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/careers-portal/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	user := &domain.User{ID: "user-1", Email: "ada@example.com", Role: domain.RoleStudent}

	token, exp, err := tm.Generate(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, domain.RoleStudent, claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.Generate(&domain.User{ID: "u", Email: "e", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	token, _, err := tm.Generate(&domain.User{ID: "u", Email: "e", Role: domain.RoleStudent})
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.Error(t, err)
}

func TestVerifyCollapsesFailures(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	_, ok := tm.Verify("")
	assert.False(t, ok)

	_, ok = tm.Verify("not-a-token")
	assert.False(t, ok)

	token, _, err := tm.Generate(&domain.User{ID: "u", Email: "e", Role: domain.RoleEmployer})
	require.NoError(t, err)
	claims, ok := tm.Verify(token)
	require.True(t, ok)
	assert.Equal(t, "u", claims.UserID)
}
