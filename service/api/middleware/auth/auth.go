package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"text_trans_api/config"
	"text_trans_api/models/models"
	responsex "text_trans_api/pkg/response"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

var UserIDContextKey = contextKey("userID")
var EmailContextKey = contextKey("email")
var AccessTokenContextKey = contextKey("accessToken")

// RequireUser rejects requests without a valid Supabase access token.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			access_token := bearerToken(r)
			if access_token == "" {
				responsex.RespondWithJSON(w, http.StatusUnauthorized, models.Response{
					Code: http.StatusUnauthorized,
					Msg:  "Missing access token",
					Data: map[string]interface{}{},
				})
				return
			}

			userid, email, err := parseToken(access_token)
			if err != nil {
				responsex.RespondWithJSON(w, http.StatusUnauthorized, models.Response{
					Code: http.StatusUnauthorized,
					Msg:  err.Error(),
					Data: map[string]interface{}{},
				})
				return
			}

			ctx := context.WithValue(r.Context(), AccessTokenContextKey, access_token)
			ctx = context.WithValue(ctx, UserIDContextKey, userid)
			ctx = context.WithValue(ctx, EmailContextKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalUser attaches the user id when a valid token is present and
// lets the request through either way. Handlers fall back to the
// caller's IP as the quota identity.
func OptionalUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			access_token := bearerToken(r)
			if access_token != "" {
				userid, email, err := parseToken(access_token)
				if err == nil {
					ctx := context.WithValue(r.Context(), AccessTokenContextKey, access_token)
					ctx = context.WithValue(ctx, UserIDContextKey, userid)
					ctx = context.WithValue(ctx, EmailContextKey, email)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.Header.Get("access_token")
}

func parseToken(access_token string) (string, string, error) {
	token, err := jwt.Parse(access_token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Cfg.Supabase.Jwt), nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("unexpected token claims")
	}

	userid, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if userid == "" {
		return "", "", fmt.Errorf("token has no subject")
	}

	return userid, email, nil
}

func GetUserIDFromContext(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDContextKey).(string)
	if !ok {
		return ""
	}
	return userID
}

func GetEmailFromContext(r *http.Request) string {
	email, ok := r.Context().Value(EmailContextKey).(string)
	if !ok {
		return ""
	}
	return email
}

func GetAccessTokenFromContext(r *http.Request) string {
	access_token, ok := r.Context().Value(AccessTokenContextKey).(string)
	if !ok {
		return ""
	}
	return access_token
}

// GetIdentityFromContext resolves the quota identity: the user id for
// authenticated callers, otherwise the client IP.
func GetIdentityFromContext(r *http.Request) string {
	if userID := GetUserIDFromContext(r); userID != "" {
		return userID
	}
	return "ip:" + ClientIP(r)
}

// ClientIP takes the first X-Forwarded-For hop when present, since the
// service runs behind the platform proxy, and the peer address
// otherwise.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
