package domain

// Wire models shared with the reservation API. Field names follow the
// backend's JSON contract.

type Ruta struct {
	ID                  int    `json:"id"`
	Origen              string `json:"origen"`
	Destino             string `json:"destino"`
	DuracionEstimadaMin *int   `json:"duracion_estimada_min,omitempty"`
}

func (r Ruta) Nombre() string {
	return r.Origen + " → " + r.Destino
}

type Corrida struct {
	ID              int    `json:"id"`
	RutaID          int    `json:"ruta_id,omitempty"`
	RutaNombre      string `json:"ruta_nombre,omitempty"`
	FechaHoraSalida string `json:"fecha_hora_salida,omitempty"`
	HoraSalida      string `json:"hora_salida,omitempty"`
	Precio          string `json:"precio"`
	Capacidad       int    `json:"capacidad"`
}

// AsientosInfo is the seat map for one corrida: total capacity plus every
// seat that is occupied or temporarily blocked. Layout is an optional grid
// hint (rows of seat numbers) supplied by the backend.
type AsientosInfo struct {
	CapacidadTotal   int     `json:"capacidad_total"`
	AsientosOcupados []int   `json:"asientos_ocupados"`
	Layout           [][]int `json:"layout,omitempty"`
}

func (a AsientosInfo) Ocupado(num int) bool {
	for _, n := range a.AsientosOcupados {
		if n == num {
			return true
		}
	}
	return false
}

type Pasajero struct {
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

type ReservaConfirmada struct {
	Message       string `json:"message"`
	ReservaID     int    `json:"reserva_id"`
	CodigoReserva string `json:"codigo_reserva"`
	// Set by the payment-integrated backend variant: the browser must be
	// redirected to this hosted checkout page instead of showing the
	// confirmation screen.
	CheckoutURL string `json:"checkout_url,omitempty"`
	SessionID   string `json:"session_id,omitempty"`
}

type EstadoReserva struct {
	EstadoPago    string `json:"estado_pago"`
	CodigoReserva string `json:"codigo_reserva"`
}

type ManifiestoPasajero struct {
	Asiento       int    `json:"asiento"`
	Nombre        string `json:"nombre"`
	Telefono      string `json:"telefono,omitempty"`
	ReservaCodigo string `json:"reserva_codigo,omitempty"`
}

type ValidacionPasajero struct {
	Nombre  string `json:"nombre"`
	Asiento int    `json:"asiento"`
}

type ValidacionTicket struct {
	Status        string               `json:"status"`
	Error         string               `json:"error,omitempty"`
	Ruta          string               `json:"ruta,omitempty"`
	Salida        string               `json:"salida,omitempty"`
	CodigoReserva string               `json:"codigo_reserva,omitempty"`
	Pasajeros     []ValidacionPasajero `json:"pasajeros,omitempty"`
}

func (v ValidacionTicket) Valido() bool {
	return v.Status == "valido"
}
