package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"boletera/internal/backend"
	"boletera/internal/booking"
	"boletera/internal/domain"
	"boletera/internal/session"

	"github.com/gin-gonic/gin"
)

type wizardView struct {
	Reserva  *booking.Reserva
	Error    string
	Corridas []domain.Corrida
	Asientos domain.AsientosInfo
	Filas    [][]int
	QRURL    string
}

// Home renders whatever screen the visitor's wizard is on.
func (h *Handlers) Home(c *gin.Context) {
	_, r := h.reserva(c)
	h.render(c, r, "")
}

func (h *Handlers) render(c *gin.Context, r *booking.Reserva, errMsg string) {
	switch r.Pantalla {
	case booking.PantallaHorarios:
		h.renderHorarios(c, r, errMsg)
	case booking.PantallaAsientos:
		h.renderAsientos(c, r, nil, errMsg)
	case booking.PantallaFormulario:
		c.HTML(http.StatusOK, "formulario.html", wizardView{Reserva: r, Error: errMsg})
	case booking.PantallaConfirmacion:
		v := wizardView{Reserva: r, Error: errMsg}
		if r.Confirmada != nil && r.Confirmada.CodigoReserva != "" {
			v.QRURL = h.API.TicketQR(r.Confirmada.CodigoReserva)
		}
		c.HTML(http.StatusOK, "confirmacion.html", v)
	default:
		c.HTML(http.StatusOK, "inicio.html", wizardView{Reserva: r, Error: errMsg})
	}
}

func (h *Handlers) renderHorarios(c *gin.Context, r *booking.Reserva, errMsg string) {
	v := wizardView{Reserva: r, Error: errMsg}
	corridas, err := h.API.Corridas(c.Request.Context(), r.RutaID, r.Fecha)
	if err != nil && v.Error == "" {
		v.Error = userMessage(err)
	}
	v.Corridas = corridas
	c.HTML(http.StatusOK, "horarios.html", v)
}

// renderAsientos draws the seat map. info may carry an already fetched map
// so a toggle does not hit the backend twice.
func (h *Handlers) renderAsientos(c *gin.Context, r *booking.Reserva, info *domain.AsientosInfo, errMsg string) {
	v := wizardView{Reserva: r, Error: errMsg}
	if info == nil {
		fetched, err := h.API.Asientos(c.Request.Context(), r.Corrida.ID)
		if err != nil && v.Error == "" {
			v.Error = userMessage(err)
		}
		info = &fetched
	}
	v.Asientos = *info
	v.Filas = booking.SeatRows(info.CapacidadTotal, info.Layout)
	c.HTML(http.StatusOK, "asientos.html", v)
}

// SelectRuta handles the route cards on the home screen.
func (h *Handlers) SelectRuta(c *gin.Context) {
	_, r := h.reserva(c)

	id, err := strconv.Atoi(c.PostForm("ruta_id"))
	nombre := strings.TrimSpace(c.PostForm("ruta_nombre"))
	if err != nil || id <= 0 || nombre == "" {
		h.render(c, r, "Selecciona una ruta válida.")
		return
	}

	r.SelectRuta(id, nombre)
	h.render(c, r, "")
}

// SetFecha re-runs the schedule lookup for a new travel date.
func (h *Handlers) SetFecha(c *gin.Context) {
	_, r := h.reserva(c)
	if err := r.SetFecha(c.PostForm("fecha")); err != nil {
		h.render(c, r, userMessage(err))
		return
	}
	h.render(c, r, "")
}

// SelectCorrida picks a departure and moves to seat selection.
func (h *Handlers) SelectCorrida(c *gin.Context) {
	_, r := h.reserva(c)

	id, err := strconv.Atoi(c.PostForm("corrida_id"))
	capacidad, errCap := strconv.Atoi(c.PostForm("capacidad"))
	if err != nil || errCap != nil || id <= 0 {
		h.render(c, r, "Corrida inválida.")
		return
	}

	r.SelectCorrida(domain.Corrida{
		ID:         id,
		HoraSalida: c.PostForm("hora_salida"),
		Precio:     c.PostForm("precio"),
		Capacidad:  capacidad,
	})
	h.render(c, r, "")
}

// ToggleAsiento adds or removes one seat against the freshest seat map.
func (h *Handlers) ToggleAsiento(c *gin.Context) {
	_, r := h.reserva(c)
	if r.Corrida == nil {
		r.Reset()
		h.render(c, r, "")
		return
	}

	num, err := strconv.Atoi(c.PostForm("asiento"))
	if err != nil || num <= 0 {
		h.renderAsientos(c, r, nil, "Asiento inválido.")
		return
	}

	info, err := h.API.Asientos(c.Request.Context(), r.Corrida.ID)
	if err != nil {
		// map unavailable: draw the grid from the last-known capacity so
		// the screen stays usable behind the error
		h.renderAsientos(c, r, &domain.AsientosInfo{CapacidadTotal: r.Corrida.Capacidad}, userMessage(err))
		return
	}

	if err := r.ToggleAsiento(num, info); err != nil {
		h.renderAsientos(c, r, &info, userMessage(err))
		return
	}
	h.renderAsientos(c, r, &info, "")
}

// ConfirmarAsientos places the short-lived block on the selection. A 409
// means someone else took a seat: the selection is cleared and the map
// reloaded so the user re-picks against fresh data.
func (h *Handlers) ConfirmarAsientos(c *gin.Context) {
	_, r := h.reserva(c)
	if r.Corrida == nil {
		r.Reset()
		h.render(c, r, "")
		return
	}
	if len(r.Seleccion) == 0 {
		h.renderAsientos(c, r, nil, "Por favor, selecciona al menos un asiento.")
		return
	}

	err := h.API.BloquearAsientos(c.Request.Context(), r.Corrida.ID, r.Asientos())
	switch {
	case err == nil:
		r.IrA(booking.PantallaFormulario)
		h.render(c, r, "")
	case domain.IsConflict(err):
		r.ClearAsientos()
		h.renderAsientos(c, r, nil, "Lo sentimos, uno o más asientos han sido tomados. El mapa se ha actualizado; selecciona de nuevo.")
	default:
		h.renderAsientos(c, r, nil, userMessage(err))
	}
}

// Reservar validates the passenger forms and submits the reservation.
func (h *Handlers) Reservar(c *gin.Context) {
	_, r := h.reserva(c)
	if r.Corrida == nil || len(r.Seleccion) == 0 {
		r.Reset()
		h.render(c, r, "")
		return
	}

	for _, num := range r.Asientos() {
		suffix := strconv.Itoa(num)
		_ = r.SetPasajero(num, domain.Pasajero{
			Nombre:   strings.TrimSpace(c.PostForm("nombre_" + suffix)),
			Telefono: strings.TrimSpace(c.PostForm("telefono_" + suffix)),
			Email:    strings.TrimSpace(c.PostForm("email_" + suffix)),
		})
	}

	if err := r.ValidarPasajeros(); err != nil {
		h.render(c, r, userMessage(err))
		return
	}

	req := backend.ReservaRequest{CorridaID: r.Corrida.ID}
	for _, sp := range r.Seleccion {
		req.Pasajeros = append(req.Pasajeros, backend.PasajeroAsignado{
			Asiento:  sp.Asiento,
			Nombre:   sp.Pasajero.Nombre,
			Telefono: sp.Pasajero.Telefono,
			Email:    sp.Pasajero.Email,
		})
	}

	rc, err := h.API.Reservar(c.Request.Context(), req)
	if err != nil {
		var conflict domain.ConflictError
		if errors.As(err, &conflict) {
			r.IrA(booking.PantallaAsientos)
			h.renderAsientos(c, r, nil, mensajeConflicto(conflict))
			return
		}
		h.render(c, r, userMessage(err))
		return
	}

	if rc.CheckoutURL != "" {
		// Payment-integrated variant: hand the browser to the hosted
		// checkout; the wizard state dies here.
		sid, _ := c.Cookie(session.CookieName)
		h.Sessions.Drop(sid)
		c.Redirect(http.StatusSeeOther, rc.CheckoutURL)
		return
	}

	r.Confirmar(rc)
	h.render(c, r, "")
}

// Volver is the back arrow: it navigates to an earlier screen keeping the
// reservation data intact.
func (h *Handlers) Volver(c *gin.Context) {
	_, r := h.reserva(c)

	destino := booking.Pantalla(c.PostForm("pantalla"))
	switch destino {
	case booking.PantallaInicio:
		r.Reset()
	case booking.PantallaHorarios, booking.PantallaAsientos:
		if r.Corrida == nil && destino == booking.PantallaAsientos {
			destino = booking.PantallaHorarios
		}
		if r.RutaID == 0 {
			r.Reset()
			break
		}
		r.IrA(destino)
	default:
		// unknown target, stay put
	}
	h.render(c, r, "")
}

// Reiniciar throws the whole reservation away and starts over.
func (h *Handlers) Reiniciar(c *gin.Context) {
	_, r := h.reserva(c)
	r.Reset()
	c.Redirect(http.StatusSeeOther, "/")
}

func mensajeConflicto(conflict domain.ConflictError) string {
	if len(conflict.AsientosOcupados) == 0 {
		return "Los asientos seleccionados ya no están disponibles. Selecciona de nuevo."
	}
	nums := make([]string, len(conflict.AsientosOcupados))
	for i, n := range conflict.AsientosOcupados {
		nums[i] = strconv.Itoa(n)
	}
	return "Los asientos " + strings.Join(nums, ", ") + " ya no están disponibles. Selecciona de nuevo."
}
