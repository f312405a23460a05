package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"boletera/internal/backend"
	"boletera/internal/domain"
	"boletera/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type rutasView struct {
	Rutas []domain.Ruta
	Error string
}

func (h *Handlers) AdminRutas(c *gin.Context) {
	token := middleware.AdminToken(c)

	rutas, err := h.API.AdminRutas(c.Request.Context(), token)
	if err != nil {
		if adminError(c, err) {
			return
		}
		c.HTML(http.StatusOK, "admin_rutas.html", rutasView{Error: userMessage(err)})
		return
	}

	c.HTML(http.StatusOK, "admin_rutas.html", rutasView{Rutas: rutas})
}

// CrearRuta posts the create form and re-renders the list with the new
// route included.
func (h *Handlers) CrearRuta(c *gin.Context) {
	token := middleware.AdminToken(c)

	req := backend.RutaRequest{
		Origen:  strings.TrimSpace(c.PostForm("origen")),
		Destino: strings.TrimSpace(c.PostForm("destino")),
	}
	if req.Origen == "" || req.Destino == "" {
		h.renderRutas(c, token, "Origen y destino son obligatorios.")
		return
	}
	if raw := strings.TrimSpace(c.PostForm("duracion_estimada_min")); raw != "" {
		min, err := strconv.Atoi(raw)
		if err != nil || min <= 0 {
			h.renderRutas(c, token, "La duración estimada debe ser un número de minutos.")
			return
		}
		req.DuracionEstimadaMin = &min
	}

	if _, err := h.API.CrearRuta(c.Request.Context(), token, req); err != nil {
		if adminError(c, err) {
			return
		}
		h.renderRutas(c, token, userMessage(err))
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/rutas")
}

func (h *Handlers) renderRutas(c *gin.Context, token, errMsg string) {
	v := rutasView{Error: errMsg}
	rutas, err := h.API.AdminRutas(c.Request.Context(), token)
	if err != nil {
		if adminError(c, err) {
			return
		}
	} else {
		v.Rutas = rutas
	}
	c.HTML(http.StatusOK, "admin_rutas.html", v)
}
