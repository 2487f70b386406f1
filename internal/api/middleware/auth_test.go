package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/mediahub/pkg/ident"
)

const (
	secret = "test-secret"
	issuer = "mediahub"
)

func authEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(secret, issuer), func(c *gin.Context) {
		c.String(http.StatusOK, ActorID(c))
	})
	return r
}

func call(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthAcceptsValidToken(t *testing.T) {
	id := ident.New()
	token, err := IssueToken(secret, issuer, id, time.Minute)
	require.NoError(t, err)

	w := call(authEngine(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, w.Body.String())
}

func TestAuthRejects(t *testing.T) {
	r := authEngine()
	id := ident.New()

	expired, err := IssueToken(secret, issuer, id, -time.Minute)
	require.NoError(t, err)
	wrongKey, err := IssueToken("other-secret", issuer, id, time.Minute)
	require.NoError(t, err)
	wrongIssuer, err := IssueToken(secret, "someone-else", id, time.Minute)
	require.NoError(t, err)
	badSubject, err := IssueToken(secret, issuer, "admin", time.Minute)
	require.NoError(t, err)
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: id, Issuer: issuer}).
		SignedString([]byte(secret))
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":      "",
		"scheme":       "Basic dXNlcjpwYXNz",
		"garbage":      "Bearer not.a.jwt",
		"expired":      "Bearer " + expired,
		"wrong key":    "Bearer " + wrongKey,
		"wrong issuer": "Bearer " + wrongIssuer,
		"bad subject":  "Bearer " + badSubject,
		"no expiry":    "Bearer " + noExpiry,
	} {
		w := call(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
	}
}
