// Package identity resolves the calling user from a bearer JWT.
package identity

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"auction-rooms/internal/auctionerrors"
	"auction-rooms/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// userIDKey is the gin context key holding the authenticated user id
const userIDKey = "user_id"

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Verifier issues and verifies HS256 tokens
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for secret
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Issue creates a signed token for userID valid for ttl
func (v *Verifier) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// Parse verifies token and returns the user id it carries
func (v *Verifier) Parse(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("identity: %w - invalid token: %v", auctionerrors.ErrUnauthenticated, err)
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return "", fmt.Errorf("identity: %w - token has no user", auctionerrors.ErrUnauthenticated)
	}
	return userID, nil
}

// Middleware rejects requests without a valid bearer token and stores the user id on the context
func (v *Verifier) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			err := fmt.Errorf("identity: %w - missing bearer token", auctionerrors.ErrUnauthenticated)
			utils.JSONError(c, http.StatusUnauthorized, "unauthenticated", err, "authentication required")
			c.Abort()
			return
		}

		userID, err := v.Parse(strings.TrimSpace(token))
		if err != nil {
			utils.Warn("Rejected bearer token", map[string]any{"path": c.FullPath(), "error": err.Error()})
			utils.JSONError(c, http.StatusUnauthorized, "unauthenticated", err, "authentication required")
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUser returns the authenticated user id for the request
func CurrentUser(c *gin.Context) (string, error) {
	userID := c.GetString(userIDKey)
	if userID == "" {
		return "", fmt.Errorf("identity: %w", auctionerrors.ErrUnauthenticated)
	}
	return userID, nil
}

// WithUser stores userID on the context. Used by tests that skip the middleware.
func WithUser(c *gin.Context, userID string) {
	c.Set(userIDKey, userID)
}
