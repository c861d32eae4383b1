/*
Package handler provides the HTTP handlers and routing for the server.
*/
package handler

import (
	"net/http"
	"regexp"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"footchat/internal/pkg/auth/jwt"
	"footchat/internal/pkg/errs"
	"footchat/internal/pkg/logx"
	"footchat/internal/pkg/req"
	"footchat/internal/pkg/resp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// validPassword enforces the password strength rules: at least 8 characters
// with an uppercase letter, a lowercase letter and a digit.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasUpper && hasLower && hasDigit
}

type RegisterInput struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	FavoriteClub string `json:"favorite_club,omitempty"`
}

// HandleRegister creates a new account.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RegisterInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if len(input.Username) < 3 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidUsername))
			return
		}

		if !emailRegex.MatchString(input.Email) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidEmail))
			return
		}

		if !validPassword(input.Password) {
			resp.RespondError(w, r, errs.NewError(errs.ErrWeakPassword))
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		u, err := deps.Users.Create(r.Context(), input.Username, input.Email, string(hashed), input.FavoriteClub)
		if err != nil {
			resp.RespondError(w, r, errs.AsCustom(err))
			return
		}

		logx.Info("User registered", "user_id", u.ID, "username", u.Username)

		resp.RespondCreated(w, r, map[string]any{
			"user": u,
		})
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin authenticates an account and issues an access/refresh token pair.
// Banned and inactive accounts cannot sign in.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Email == "" || input.Password == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		u, err := deps.Users.GetByEmail(r.Context(), input.Email)
		if err != nil {
			// Do not reveal whether the account exists.
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
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

		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)) != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		accessToken, err := jwt.GenerateToken(u.ID, jwt.KindAccess, deps.Config.JWTSecret, jwt.AccessExpiration)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		refreshToken, err := jwt.GenerateToken(u.ID, jwt.KindRefresh, deps.Config.JWTSecret, jwt.RefreshExpiration)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		logx.Info("User logged in", "user_id", u.ID)

		resp.RespondSuccess(w, r, map[string]any{
			"user":          u,
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		})
	}
}

type RefreshInput struct {
	RefreshToken string `json:"refresh_token"`
}

// HandleRefresh exchanges a refresh token for a fresh access token, re-checking
// the live account state first.
func HandleRefresh(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RefreshInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		claims, err := jwt.ParseToken(input.RefreshToken, deps.Config.JWTSecret)
		if err != nil || claims.Kind != jwt.KindRefresh {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidToken))
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

		accessToken, err := jwt.GenerateToken(u.ID, jwt.KindAccess, deps.Config.JWTSecret, jwt.AccessExpiration)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"access_token": accessToken,
		})
	}
}
