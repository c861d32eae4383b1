package jwt

import "github.com/golang-jwt/jwt"

// Token kinds issued by the auth endpoints. The chat subsystem only ever
// accepts access tokens; refresh tokens are exchanged over REST.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Claims is the typed credential payload: the subject user id plus the
// standard expiry/issued-at fields. Nothing else rides in the token; username,
// avatar and ban state are always read fresh from the database.
type Claims struct {
	jwt.StandardClaims

	// UserID is the subject user's database id.
	UserID int64 `json:"uid"`

	// Kind distinguishes access tokens from refresh tokens.
	Kind string `json:"kind"`
}
