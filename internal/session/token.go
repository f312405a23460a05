package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const TokenCookie = "admin_token"

// Token reads the stored admin bearer token, or "" when logged out.
func Token(c *gin.Context) string {
	tok, err := c.Cookie(TokenCookie)
	if err != nil {
		return ""
	}
	return tok
}

// SetToken stores the token issued by the backend login endpoint.
func SetToken(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookie, token, int((12 * time.Hour).Seconds()), "/", "", false, true)
}

// ClearToken evicts the session. Called on logout and whenever the backend
// answers 401.
func ClearToken(c *gin.Context) {
	c.SetCookie(TokenCookie, "", -1, "/", "", false, true)
}

// TokenValid reports whether the token still looks usable. The signature is
// the backend's business to verify; here only the exp claim matters, so a
// session known to be dead is evicted without burning a request on it.
// Opaque non-JWT tokens pass through as valid.
func TokenValid(token string) bool {
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.After(time.Now())
}
