package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"text_trans_api/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func serveThrough(middleware func(http.Handler) http.Handler, req *http.Request) (*httptest.ResponseRecorder, *http.Request) {
	var seen *http.Request
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.WriteHeader(http.StatusOK)
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w, seen
}

func TestRequireUserValidToken(t *testing.T) {
	config.Cfg.Supabase.Jwt = "test-secret"
	token := signToken(t, "test-secret", jwt.MapClaims{
		"sub":   "user-42",
		"email": "u@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w, seen := serveThrough(RequireUser(), req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-42", GetUserIDFromContext(seen))
	assert.Equal(t, "u@example.com", GetEmailFromContext(seen))
	assert.Equal(t, token, GetAccessTokenFromContext(seen))
	assert.Equal(t, "user-42", GetIdentityFromContext(seen))
}

func TestRequireUserAccessTokenHeader(t *testing.T) {
	config.Cfg.Supabase.Jwt = "test-secret"
	token := signToken(t, "test-secret", jwt.MapClaims{"sub": "user-7"})

	req := httptest.NewRequest("GET", "/user/profile", nil)
	req.Header.Set("access_token", token)

	w, seen := serveThrough(RequireUser(), req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-7", GetUserIDFromContext(seen))
}

func TestRequireUserRejections(t *testing.T) {
	config.Cfg.Supabase.Jwt = "test-secret"

	tests := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"garbage token", "not-a-jwt"},
		{"wrong secret", signToken(t, "other-secret", jwt.MapClaims{"sub": "user-1"})},
		{"no subject", signToken(t, "test-secret", jwt.MapClaims{"email": "u@example.com"})},
		{"expired", signToken(t, "test-secret", jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/user/profile", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			w, _ := serveThrough(RequireUser(), req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestOptionalUserWithoutToken(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/translate", nil)

	w, seen := serveThrough(OptionalUser(), req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, GetUserIDFromContext(seen))
	assert.Equal(t, "ip:192.0.2.1", GetIdentityFromContext(seen))
}

func TestOptionalUserInvalidTokenPassesThrough(t *testing.T) {
	config.Cfg.Supabase.Jwt = "test-secret"

	req := httptest.NewRequest("POST", "/api/translate", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	w, seen := serveThrough(OptionalUser(), req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, GetUserIDFromContext(seen))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, "192.0.2.1", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ClientIP(req))
}
