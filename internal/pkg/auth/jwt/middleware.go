package jwt

import (
	"context"
	"net/http"
	"strings"

	"footchat/internal/pkg/errs"
	"footchat/internal/pkg/resp"
)

type contextKey string

// contextClaimsKey is the context key under which verified claims are stored.
const contextClaimsKey contextKey = "auth_claims"

// Authenticator returns strict middleware: requests without a valid Bearer
// access token are rejected with 401 before reaching the handler.
func Authenticator(secretKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}

			claims, err := ParseAccessToken(tokenString, secretKey)
			if err != nil {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidToken))
				return
			}

			ctx := context.WithValue(r.Context(), contextClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified claims injected by Authenticator,
// or nil when the request was not authenticated.
func ClaimsFromContext(r *http.Request) *Claims {
	claims, ok := r.Context().Value(contextClaimsKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
