// Package auth resolves the current user from HS256 bearer tokens issued by
// the external auth subsystem. It only verifies and extracts the login; user
// management and sessions live elsewhere.
package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

const loginKey = "auth.login"

type Verifier struct {
	Secret []byte
}

// ParseLogin verifies the token signature and returns its subject.
func (v Verifier) ParseLogin(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return v.Secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// Middleware extracts the bearer login into the gin context when a valid
// token is present. It never aborts: endpoints that require a user check
// LoginFromContext and fail with their own 401, public endpoints stay open.
func Middleware(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := strings.TrimSpace(c.GetHeader("Authorization"))
		if authz == "" {
			c.Next()
			return
		}
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.Next()
			return
		}
		if login, err := v.ParseLogin(strings.TrimSpace(parts[1])); err == nil {
			c.Set(loginKey, login)
		}
		c.Next()
	}
}

// LoginFromContext reads the authenticated login resolved by Middleware.
func LoginFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(loginKey)
	if !ok {
		return "", false
	}
	login, ok := v.(string)
	return login, ok && login != ""
}

// WithLogin injects a login directly. Useful for testing handlers.
func WithLogin(c *gin.Context, login string) {
	c.Set(loginKey, login)
}
