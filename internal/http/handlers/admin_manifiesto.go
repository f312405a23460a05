package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"boletera/internal/domain"
	"boletera/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type manifiestoView struct {
	Corridas   []domain.Corrida
	Selected   int
	Manifiesto []domain.ManifiestoPasajero
	Error      string
}

// AdminManifiesto shows the paid-passenger list for a selected corrida,
// ordered by seat number.
func (h *Handlers) AdminManifiesto(c *gin.Context) {
	token := middleware.AdminToken(c)

	v := manifiestoView{}

	corridas, err := h.API.AdminCorridas(c.Request.Context(), token)
	if err != nil {
		if adminError(c, err) {
			return
		}
		v.Error = userMessage(err)
		c.HTML(http.StatusOK, "admin_manifiesto.html", v)
		return
	}
	v.Corridas = corridas

	if raw := c.Query("corrida_id"); raw != "" {
		id, convErr := strconv.Atoi(raw)
		if convErr != nil || id <= 0 {
			v.Error = "Corrida inválida."
			c.HTML(http.StatusOK, "admin_manifiesto.html", v)
			return
		}
		v.Selected = id

		pasajeros, err := h.API.Manifiesto(c.Request.Context(), token, id)
		if err != nil {
			if adminError(c, err) {
				return
			}
			v.Error = userMessage(err)
		} else {
			sort.Slice(pasajeros, func(i, j int) bool {
				return pasajeros[i].Asiento < pasajeros[j].Asiento
			})
			v.Manifiesto = pasajeros
		}
	}

	c.HTML(http.StatusOK, "admin_manifiesto.html", v)
}
