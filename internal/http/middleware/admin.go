package middleware

import (
	"net/http"

	"boletera/internal/session"

	"github.com/gin-gonic/gin"
)

const adminTokenKey = "admin_token"

// AdminGuard gates every /admin page except login: without a usable token
// the user is sent to the login page; a stale token is evicted on the way.
func AdminGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := session.Token(c)
		if !session.TokenValid(tok) {
			if tok != "" {
				session.ClearToken(c)
			}
			c.Redirect(http.StatusSeeOther, "/admin/login")
			c.Abort()
			return
		}
		c.Set(adminTokenKey, tok)
		c.Next()
	}
}

// AdminToken returns the token stored by AdminGuard for the request.
func AdminToken(c *gin.Context) string {
	if v, ok := c.Get(adminTokenKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// LoginRedirect sends an already logged-in admin from the login page to the
// default admin page.
func LoginRedirect() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.TokenValid(session.Token(c)) {
			c.Redirect(http.StatusSeeOther, "/admin/rutas")
			c.Abort()
			return
		}
		c.Next()
	}
}
