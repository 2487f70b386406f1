package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/mediahub/pkg/ident"
	"github.com/d60-Lab/mediahub/pkg/response"
)

const actorKey = "actorID"

// Claims 令牌声明，Subject 为用户 ID
type Claims struct {
	jwt.RegisteredClaims
}

// Auth verifies the bearer token issued by the identity service and stores
// the actor id in the gin context.
func Auth(secret, issuer string) gin.HandlerFunc {
	key := []byte(secret)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Unauthorized(c, "missing bearer token")
			return
		}
		var claims Claims
		if _, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) { return key, nil }); err != nil {
			msg := "invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "token expired"
			}
			response.Unauthorized(c, msg)
			return
		}
		if !ident.Valid(claims.Subject) {
			response.Unauthorized(c, "invalid token subject")
			return
		}
		c.Set(actorKey, claims.Subject)
		c.Next()
	}
}

// ActorID returns the verified actor set by Auth.
func ActorID(c *gin.Context) string { return c.GetString(actorKey) }

// IssueToken signs a token for userID. The identity service owns issuance in
// production; this is used by tests and local tooling.
func IssueToken(secret, issuer, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
