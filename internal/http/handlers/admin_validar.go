package handlers

import (
	"net/http"
	"strings"

	"boletera/internal/domain"
	"boletera/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type validarView struct {
	Resultado *domain.ValidacionTicket
	Error     string
}

// ValidarPage renders the scanner screen. The QR widget itself lives in the
// template (loaded deferred, torn down on a successful decode); the decoded
// code comes back through Validar below.
func (h *Handlers) ValidarPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_validar.html", validarView{})
}

// Validar checks a scanned reservation code against the backend and renders
// the valid/invalid result card.
func (h *Handlers) Validar(c *gin.Context) {
	token := middleware.AdminToken(c)

	codigo := strings.TrimSpace(c.PostForm("codigo_reserva"))
	if codigo == "" {
		c.HTML(http.StatusBadRequest, "admin_validar.html", validarView{
			Error: "No se recibió ningún código.",
		})
		return
	}

	resultado, err := h.API.ValidarTicket(c.Request.Context(), token, codigo)
	if err != nil {
		if adminError(c, err) {
			return
		}
		c.HTML(http.StatusOK, "admin_validar.html", validarView{Error: userMessage(err)})
		return
	}

	c.HTML(http.StatusOK, "admin_validar.html", validarView{Resultado: &resultado})
}
