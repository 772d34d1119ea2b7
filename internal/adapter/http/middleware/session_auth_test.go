package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/invest-account-service/internal/auth"
)

func protectedHandler(t *testing.T, wantEmail string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := EmailFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantEmail, email)
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionAuthMissingToken(t *testing.T) {
	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	handler := SessionAuth(tokens)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthMalformedHeader(t *testing.T) {
	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	handler := SessionAuth(tokens)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run with a malformed header")
	}))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthInvalidToken(t *testing.T) {
	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	handler := SessionAuth(tokens)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthInjectsEmail(t *testing.T) {
	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	token, err := tokens.Generate("ada@example.com")
	require.NoError(t, err)

	handler := SessionAuth(tokens)(protectedHandler(t, "ada@example.com"))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
