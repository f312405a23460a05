package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"boletera/internal/backend"
	"boletera/internal/domain"
	"boletera/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// datetime-local inputs submit this layout, in the operator's local time.
const fechaHoraLocal = "2006-01-02T15:04"

type corridasView struct {
	Error     string
	EditingID int
	Form      corridaForm
	Corridas  []domain.Corrida
	Catalogo  []domain.Ruta
}

type corridaForm struct {
	RutaID    string
	FechaHora string
	Precio    string
	Capacidad string
}

func (h *Handlers) AdminCorridas(c *gin.Context) {
	token := middleware.AdminToken(c)

	catalogo, corridas, ok := h.cargarCorridas(c, token)
	if !ok {
		return
	}

	v := corridasView{
		Catalogo: catalogo,
		Corridas: corridas,
		Form:     corridaForm{Capacidad: "19"},
	}

	// ?editar=<id> pre-fills the shared create/edit form.
	if raw := c.Query("editar"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			for _, co := range corridas {
				if co.ID == id {
					v.EditingID = id
					v.Form = formFromCorrida(co, catalogo)
					break
				}
			}
		}
	}

	c.HTML(http.StatusOK, "admin_corridas.html", v)
}

func (h *Handlers) CrearCorrida(c *gin.Context) {
	h.guardarCorrida(c, 0)
}

func (h *Handlers) ActualizarCorrida(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.Redirect(http.StatusSeeOther, "/admin/corridas")
		return
	}
	h.guardarCorrida(c, id)
}

// guardarCorrida handles both create and update; the same form feeds both.
func (h *Handlers) guardarCorrida(c *gin.Context, editingID int) {
	token := middleware.AdminToken(c)

	form := corridaForm{
		RutaID:    c.PostForm("ruta_id"),
		FechaHora: c.PostForm("fecha_hora"),
		Precio:    c.PostForm("precio"),
		Capacidad: c.PostForm("capacidad"),
	}

	req, err := corridaRequest(form)
	if err != nil {
		h.renderCorridas(c, token, editingID, form, userMessage(err))
		return
	}

	if editingID > 0 {
		_, err = h.API.ActualizarCorrida(c.Request.Context(), token, editingID, req)
	} else {
		_, err = h.API.CrearCorrida(c.Request.Context(), token, req)
	}
	if err != nil {
		if adminError(c, err) {
			return
		}
		h.renderCorridas(c, token, editingID, form, userMessage(err))
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/corridas")
}

// EliminarCorrida cancels a trip. The template asks for confirmation before
// this POST is ever sent.
func (h *Handlers) EliminarCorrida(c *gin.Context) {
	token := middleware.AdminToken(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.Redirect(http.StatusSeeOther, "/admin/corridas")
		return
	}

	if err := h.API.EliminarCorrida(c.Request.Context(), token, id); err != nil {
		if adminError(c, err) {
			return
		}
		h.renderCorridas(c, token, 0, corridaForm{Capacidad: "19"}, userMessage(err))
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/corridas")
}

// corridaRequest converts the raw form into the wire payload: price as a
// float, capacity as an int, departure as RFC3339 UTC.
func corridaRequest(form corridaForm) (backend.CorridaRequest, error) {
	var req backend.CorridaRequest

	rutaID, err := strconv.Atoi(strings.TrimSpace(form.RutaID))
	if err != nil || rutaID <= 0 {
		return req, domain.ValidationError{Field: "ruta_id", Msg: "selecciona una ruta"}
	}

	salida, err := time.ParseInLocation(fechaHoraLocal, strings.TrimSpace(form.FechaHora), time.Local)
	if err != nil {
		return req, domain.ValidationError{Field: "fecha_hora", Msg: "fecha y hora inválidas"}
	}

	precio, err := strconv.ParseFloat(strings.TrimSpace(form.Precio), 64)
	if err != nil || precio <= 0 {
		return req, domain.ValidationError{Field: "precio", Msg: "el precio debe ser un número mayor a cero"}
	}

	capacidad, err := strconv.Atoi(strings.TrimSpace(form.Capacidad))
	if err != nil || capacidad <= 0 {
		return req, domain.ValidationError{Field: "capacidad", Msg: "la capacidad debe ser un entero mayor a cero"}
	}

	req.RutaID = rutaID
	req.FechaHora = salida.UTC().Format(time.RFC3339)
	req.Precio = precio
	req.Capacidad = capacidad
	return req, nil
}

// formFromCorrida pre-fills the edit form. The route is resolved by id when
// the backend sends one; matching the display label is the fallback.
func formFromCorrida(co domain.Corrida, catalogo []domain.Ruta) corridaForm {
	form := corridaForm{
		Precio:    co.Precio,
		Capacidad: strconv.Itoa(co.Capacidad),
	}

	if id := resolveRutaID(co, catalogo); id > 0 {
		form.RutaID = strconv.Itoa(id)
	}

	if t, err := time.Parse(time.RFC3339, co.FechaHoraSalida); err == nil {
		form.FechaHora = t.Local().Format(fechaHoraLocal)
	} else if len(co.FechaHoraSalida) >= len(fechaHoraLocal) {
		form.FechaHora = co.FechaHoraSalida[:len(fechaHoraLocal)]
	}

	return form
}

func resolveRutaID(co domain.Corrida, catalogo []domain.Ruta) int {
	if co.RutaID > 0 {
		return co.RutaID
	}
	for _, r := range catalogo {
		if r.Nombre() == co.RutaNombre {
			return r.ID
		}
	}
	return 0
}

func (h *Handlers) cargarCorridas(c *gin.Context, token string) ([]domain.Ruta, []domain.Corrida, bool) {
	catalogo, err := h.API.AdminRutas(c.Request.Context(), token)
	if err != nil {
		if adminError(c, err) {
			return nil, nil, false
		}
		c.HTML(http.StatusOK, "admin_corridas.html", corridasView{Error: userMessage(err)})
		return nil, nil, false
	}

	corridas, err := h.API.AdminCorridas(c.Request.Context(), token)
	if err != nil {
		if adminError(c, err) {
			return nil, nil, false
		}
		c.HTML(http.StatusOK, "admin_corridas.html", corridasView{Catalogo: catalogo, Error: userMessage(err)})
		return nil, nil, false
	}

	return catalogo, corridas, true
}

func (h *Handlers) renderCorridas(c *gin.Context, token string, editingID int, form corridaForm, errMsg string) {
	catalogo, corridas, ok := h.cargarCorridas(c, token)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "admin_corridas.html", corridasView{
		Catalogo:  catalogo,
		Corridas:  corridas,
		EditingID: editingID,
		Form:      form,
		Error:     errMsg,
	})
}
