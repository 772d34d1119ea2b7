package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/invest-account-service/internal/commons"
)

func TestGenerateAndParseRoundTrip(t *testing.T) {
	manager := NewTokenManager([]byte("test-secret"), time.Hour)

	token, err := manager.Generate("ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := manager.EmailFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", email)
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewTokenManager([]byte("issuer-secret"), time.Hour)
	verifier := NewTokenManager([]byte("other-secret"), time.Hour)

	token, err := issuer.Generate("ada@example.com")
	require.NoError(t, err)

	_, err = verifier.EmailFromToken(token)
	assert.ErrorIs(t, err, commons.ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	manager := NewTokenManager([]byte("test-secret"), -time.Minute)

	token, err := manager.Generate("ada@example.com")
	require.NoError(t, err)

	_, err = manager.EmailFromToken(token)
	assert.ErrorIs(t, err, commons.ErrInvalidToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	manager := NewTokenManager([]byte("test-secret"), time.Hour)

	_, err := manager.EmailFromToken("not-a-token")
	assert.ErrorIs(t, err, commons.ErrInvalidToken)
}
