package handler

import (
	"context"
	"net/http"

	"footchat/internal/app/user"
	"footchat/internal/pkg/auth/jwt"
	"footchat/internal/pkg/errs"
	"footchat/internal/pkg/resp"
)

type contextKey string

const contextUserKey contextKey = "current_user"

// RequireUser loads the token subject from the database and rejects banned,
// inactive, or vanished accounts. It runs after jwt.Authenticator, so the
// claims are already verified; this adds the live account state the token
// cannot carry.
func RequireUser(deps *AppDeps) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := jwt.ClaimsFromContext(r)
			if claims == nil {
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}

			u, err := deps.Users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				resp.RespondError(w, r, errs.AsCustom(err))
				return
			}

			if u.Banned {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserBanned))
				return
			}

			if !u.Active {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserInactive))
				return
			}

			ctx := context.WithValue(r.Context(), contextUserKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the user injected by RequireUser, or nil.
func CurrentUser(r *http.Request) *user.User {
	u, ok := r.Context().Value(contextUserKey).(*user.User)
	if !ok {
		return nil
	}
	return u
}
