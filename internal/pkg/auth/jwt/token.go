/*
Package jwt signs and verifies the credentials used by both the REST API and
the chat subsystem.

Tokens are HS256-signed and carry only the subject user id, the token kind and
the standard expiry claims. Verification is stateless and in-memory.
*/
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// AccessExpiration is the lifetime of access tokens.
	AccessExpiration = 1 * time.Hour

	// RefreshExpiration is the lifetime of refresh tokens.
	RefreshExpiration = 30 * 24 * time.Hour

	// TokenIssuer identifies this server in the iss claim.
	TokenIssuer = "footchat-server"
)

// GenerateToken creates a signed token for the given user.
func GenerateToken(userID int64, kind string, secretKey string, duration time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: now.Add(duration).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    TokenIssuer,
		},
		UserID: userID,
		Kind:   kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secretKey))
}

// ParseToken verifies the signature and expiry of a token string and returns
// its claims. Any failure (bad signature, wrong method, expired) is reported
// as an error; callers map it to their own invalid-token error.
func ParseToken(tokenString string, secretKey string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}

// ParseAccessToken is ParseToken restricted to access tokens.
func ParseAccessToken(tokenString string, secretKey string) (*Claims, error) {
	claims, err := ParseToken(tokenString, secretKey)
	if err != nil {
		return nil, err
	}

	if claims.Kind != KindAccess {
		return nil, errors.New("token is not an access token")
	}

	return claims, nil
}
