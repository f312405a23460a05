// Package booking holds the reservation-in-progress state machine behind
// the customer wizard. It is pure state: handlers feed it user actions and
// fresh seat maps, it decides transitions and keeps the invariants.
package booking

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"boletera/internal/domain"
)

// Pantalla is one screen of the wizard.
type Pantalla string

const (
	PantallaInicio       Pantalla = "inicio"
	PantallaHorarios     Pantalla = "horarios"
	PantallaAsientos     Pantalla = "asientos"
	PantallaFormulario   Pantalla = "formulario"
	PantallaConfirmacion Pantalla = "confirmacion"
)

// MaxAsientos is the per-reservation seat cap.
const MaxAsientos = 5

// SeatPasajero associates one selected seat with its passenger form data.
// The slice order is the order seats were picked in, which also fixes the
// order of the passenger sub-forms and of the reservation payload.
type SeatPasajero struct {
	Asiento  int
	Pasajero domain.Pasajero
}

// Reserva is the client-local reservation state. It is discarded on Reset
// and replaced wholesale after a successful submit.
type Reserva struct {
	Pantalla   Pantalla
	RutaID     int
	RutaNombre string
	Fecha      string
	Corrida    *domain.Corrida
	Seleccion  []SeatPasajero

	Confirmada *domain.ReservaConfirmada
}

func NewReserva() *Reserva {
	return &Reserva{
		Pantalla: PantallaInicio,
		Fecha:    time.Now().Format("2006-01-02"),
	}
}

func (r *Reserva) Reset() {
	*r = *NewReserva()
}

// SelectRuta moves from inicio to the schedule screen.
func (r *Reserva) SelectRuta(id int, nombre string) {
	r.RutaID = id
	r.RutaNombre = nombre
	r.Pantalla = PantallaHorarios
}

// SetFecha changes the travel date; the handler refetches corridas for it.
func (r *Reserva) SetFecha(fecha string) error {
	if _, err := time.Parse("2006-01-02", fecha); err != nil {
		return domain.ValidationError{Field: "fecha", Msg: "fecha inválida"}
	}
	r.Fecha = fecha
	return nil
}

// SelectCorrida picks a departure and clears any previous seat/passenger
// selection before moving to the seat screen.
func (r *Reserva) SelectCorrida(c domain.Corrida) {
	r.Corrida = &c
	r.Seleccion = nil
	r.Pantalla = PantallaAsientos
}

// ToggleAsiento adds or removes a seat from the selection. A seat that is
// occupied or blocked server-side is a silent no-op. Adding past the cap
// leaves the selection untouched and returns a ValidationError.
func (r *Reserva) ToggleAsiento(num int, info domain.AsientosInfo) error {
	if info.Ocupado(num) {
		return nil
	}

	for i, sp := range r.Seleccion {
		if sp.Asiento == num {
			r.Seleccion = append(r.Seleccion[:i], r.Seleccion[i+1:]...)
			return nil
		}
	}

	if len(r.Seleccion) >= MaxAsientos {
		return domain.ValidationError{Msg: "Solo puedes seleccionar hasta 5 asientos por reserva."}
	}

	r.Seleccion = append(r.Seleccion, SeatPasajero{Asiento: num})
	return nil
}

// ClearAsientos drops the whole selection. Used when seat blocking comes
// back 409 so the user re-selects against a fresh map.
func (r *Reserva) ClearAsientos() {
	r.Seleccion = nil
}

func (r *Reserva) Asientos() []int {
	nums := make([]int, 0, len(r.Seleccion))
	for _, sp := range r.Seleccion {
		nums = append(nums, sp.Asiento)
	}
	return nums
}

func (r *Reserva) Seleccionado(num int) bool {
	for _, sp := range r.Seleccion {
		if sp.Asiento == num {
			return true
		}
	}
	return false
}

// SetPasajero stores the form data for one selected seat.
func (r *Reserva) SetPasajero(asiento int, p domain.Pasajero) error {
	for i := range r.Seleccion {
		if r.Seleccion[i].Asiento == asiento {
			r.Seleccion[i].Pasajero = p
			return nil
		}
	}
	return domain.ValidationError{Field: "asiento", Msg: "asiento no seleccionado"}
}

// ValidarPasajeros checks every passenger before anything goes on the wire:
// name required, phone exactly 10 digits, email optional but must look like
// an address when present.
func (r *Reserva) ValidarPasajeros() error {
	if len(r.Seleccion) == 0 {
		return domain.ValidationError{Msg: "Por favor, selecciona al menos un asiento."}
	}
	for _, sp := range r.Seleccion {
		p := sp.Pasajero
		if strings.TrimSpace(p.Nombre) == "" {
			return domain.ValidationError{Field: "nombre", Msg: "el nombre es obligatorio"}
		}
		if !telefonoValido(p.Telefono) {
			return domain.ValidationError{Field: "telefono", Msg: "el teléfono debe tener 10 dígitos"}
		}
		if p.Email != "" && !emailValido(p.Email) {
			return domain.ValidationError{Field: "email", Msg: "email inválido"}
		}
	}
	return nil
}

func telefonoValido(tel string) bool {
	if len(tel) != 10 {
		return false
	}
	for _, r := range tel {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func emailValido(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t")
}

// Confirmar records the backend's answer and moves to the final screen.
func (r *Reserva) Confirmar(rc domain.ReservaConfirmada) {
	r.Confirmada = &rc
	r.Pantalla = PantallaConfirmacion
}

// IrA moves to another screen without touching the reservation data. Used
// for forward steps after a successful block and for 409-driven rollbacks.
func (r *Reserva) IrA(p Pantalla) {
	r.Pantalla = p
}

// ResumenPasajeros is the confirmation-screen passenger line: the first
// passenger's name, plus "y N más" when more seats were booked.
func (r *Reserva) ResumenPasajeros() string {
	if len(r.Seleccion) == 0 {
		return "N/A"
	}
	nombre := r.Seleccion[0].Pasajero.Nombre
	if nombre == "" {
		nombre = "N/A"
	}
	if len(r.Seleccion) > 1 {
		return nombre + " y " + strconv.Itoa(len(r.Seleccion)-1) + " más"
	}
	return nombre
}
