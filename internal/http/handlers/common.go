package handlers

import (
	"net/http"
	"time"

	"boletera/internal/backend"
	"boletera/internal/booking"
	"boletera/internal/domain"
	"boletera/internal/session"

	"github.com/gin-gonic/gin"
)

// Handlers wires every page to the reservation API and the session state.
type Handlers struct {
	API          *backend.Client
	Sessions     *session.Store
	PollInterval time.Duration
}

func New(api *backend.Client, sessions *session.Store, pollInterval time.Duration) *Handlers {
	return &Handlers{API: api, Sessions: sessions, PollInterval: pollInterval}
}

// reserva loads (or creates) the visitor's wizard state and refreshes the
// session cookie.
func (h *Handlers) reserva(c *gin.Context) (string, *booking.Reserva) {
	sid, _ := c.Cookie(session.CookieName)
	sid, r := h.Sessions.Get(sid)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, sid, 0, "/", "", false, true)
	return sid, r
}

// userMessage turns a client error into the inline text shown to the user.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if domain.IsUnavailable(err) {
		return "No se pudo conectar al servidor. Intenta más tarde."
	}
	return err.Error()
}

// adminError is the single place the 401-forces-logout rule lives. It
// reports true when it already responded (token evicted, user redirected).
func adminError(c *gin.Context, err error) bool {
	if !domain.IsUnauthorized(err) {
		return false
	}
	session.ClearToken(c)
	c.Redirect(http.StatusSeeOther, "/admin/login")
	c.Abort()
	return true
}
