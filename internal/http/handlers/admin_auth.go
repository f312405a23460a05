package handlers

import (
	"errors"
	"net/http"
	"strings"

	"boletera/internal/domain"
	"boletera/internal/session"

	"github.com/gin-gonic/gin"
)

type loginView struct {
	Error    string
	Telefono string
}

func (h *Handlers) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", loginView{})
}

// Login forwards the credentials to the backend and stores the issued
// bearer token.
func (h *Handlers) Login(c *gin.Context) {
	telefono := strings.TrimSpace(c.PostForm("telefono"))
	password := c.PostForm("password")
	if telefono == "" || password == "" {
		c.HTML(http.StatusBadRequest, "admin_login.html", loginView{
			Error:    "Teléfono y contraseña son obligatorios.",
			Telefono: telefono,
		})
		return
	}

	token, err := h.API.Login(c.Request.Context(), telefono, password)
	if err != nil {
		msg := userMessage(err)
		var ue domain.UnauthorizedError
		if errors.As(err, &ue) && ue.Msg == "" {
			msg = "Credenciales inválidas"
		}
		c.HTML(http.StatusUnauthorized, "admin_login.html", loginView{
			Error:    msg,
			Telefono: telefono,
		})
		return
	}

	session.SetToken(c, token)
	c.Redirect(http.StatusSeeOther, "/admin/rutas")
}

func (h *Handlers) Logout(c *gin.Context) {
	session.ClearToken(c)
	c.Redirect(http.StatusSeeOther, "/admin/login")
}
