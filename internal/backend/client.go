// Package backend is the typed HTTP client for the reservation API. It is
// the only place that talks to the external service; handlers consume the
// domain models and typed errors it returns.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"boletera/internal/domain"
)

type Client struct {
	base string
	hc   *http.Client
}

func New(base string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: timeout},
	}
}

// --- Customer endpoints ---

func (c *Client) Corridas(ctx context.Context, rutaID int, fecha string) ([]domain.Corrida, error) {
	q := url.Values{}
	q.Set("ruta_id", fmt.Sprint(rutaID))
	q.Set("fecha", fecha)

	var out []domain.Corrida
	err := c.do(ctx, http.MethodGet, "/api/corridas?"+q.Encode(), "", nil, &out)
	return out, err
}

func (c *Client) Asientos(ctx context.Context, corridaID int) (domain.AsientosInfo, error) {
	var out domain.AsientosInfo
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/asientos?corrida_id=%d", corridaID), "", nil, &out)
	return out, err
}

func (c *Client) BloquearAsientos(ctx context.Context, corridaID int, asientos []int) error {
	body := map[string]any{
		"corrida_id": corridaID,
		"asientos":   asientos,
	}
	return c.do(ctx, http.MethodPost, "/api/bloquear-asientos", "", body, nil)
}

type ReservaRequest struct {
	CorridaID int                `json:"corrida_id"`
	Pasajeros []PasajeroAsignado `json:"pasajeros"`
}

type PasajeroAsignado struct {
	Asiento  int    `json:"asiento"`
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

func (c *Client) Reservar(ctx context.Context, req ReservaRequest) (domain.ReservaConfirmada, error) {
	var out domain.ReservaConfirmada
	err := c.do(ctx, http.MethodPost, "/api/reservar", "", req, &out)
	return out, err
}

func (c *Client) EstadoReservaPorSession(ctx context.Context, sessionID string) (domain.EstadoReserva, error) {
	q := url.Values{}
	q.Set("session_id", sessionID)

	var out domain.EstadoReserva
	err := c.do(ctx, http.MethodGet, "/api/estado-reserva-por-session?"+q.Encode(), "", nil, &out)
	return out, err
}

// TicketQR returns the absolute URL of the boarding QR image for a
// reservation code. The image itself is served by the backend.
func (c *Client) TicketQR(codigo string) string {
	return c.base + "/api/ticket/qr/" + url.PathEscape(codigo)
}

func (c *Client) TicketPDF(codigo string) string {
	return c.base + "/api/ticket/pdf/" + url.PathEscape(codigo)
}

// --- Admin endpoints ---

func (c *Client) Login(ctx context.Context, telefono, password string) (string, error) {
	body := map[string]string{
		"telefono": telefono,
		"password": password,
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", "", body, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", domain.InternalError{Msg: "no se recibió token"}
	}
	return out.AccessToken, nil
}

func (c *Client) AdminRutas(ctx context.Context, token string) ([]domain.Ruta, error) {
	var out []domain.Ruta
	err := c.do(ctx, http.MethodGet, "/api/admin/rutas", token, nil, &out)
	return out, err
}

type RutaRequest struct {
	Origen              string `json:"origen"`
	Destino             string `json:"destino"`
	DuracionEstimadaMin *int   `json:"duracion_estimada_min,omitempty"`
}

func (c *Client) CrearRuta(ctx context.Context, token string, req RutaRequest) (domain.Ruta, error) {
	var out domain.Ruta
	err := c.do(ctx, http.MethodPost, "/api/admin/rutas", token, req, &out)
	return out, err
}

func (c *Client) AdminCorridas(ctx context.Context, token string) ([]domain.Corrida, error) {
	var out []domain.Corrida
	err := c.do(ctx, http.MethodGet, "/api/admin/corridas", token, nil, &out)
	return out, err
}

type CorridaRequest struct {
	RutaID    int     `json:"ruta_id"`
	FechaHora string  `json:"fecha_hora"`
	Precio    float64 `json:"precio"`
	Capacidad int     `json:"capacidad"`
}

func (c *Client) CrearCorrida(ctx context.Context, token string, req CorridaRequest) (domain.Corrida, error) {
	var out domain.Corrida
	err := c.do(ctx, http.MethodPost, "/api/admin/corridas", token, req, &out)
	return out, err
}

func (c *Client) ActualizarCorrida(ctx context.Context, token string, id int, req CorridaRequest) (domain.Corrida, error) {
	var out domain.Corrida
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/admin/corridas/%d", id), token, req, &out)
	return out, err
}

func (c *Client) EliminarCorrida(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/corridas/%d", id), token, nil, nil)
}

func (c *Client) Manifiesto(ctx context.Context, token string, corridaID int) ([]domain.ManifiestoPasajero, error) {
	var out struct {
		Manifiesto []domain.ManifiestoPasajero `json:"manifiesto"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/admin/manifiesto/%d", corridaID), token, nil, &out)
	return out.Manifiesto, err
}

func (c *Client) ValidarTicket(ctx context.Context, token, codigo string) (domain.ValidacionTicket, error) {
	body := map[string]string{"codigo_reserva": codigo}

	var out domain.ValidacionTicket
	err := c.do(ctx, http.MethodPost, "/api/validar-ticket", token, body, &out)
	// An invalid ticket comes back as a non-2xx with the same payload shape,
	// which is still a renderable result rather than a failure.
	if err != nil && out.Status == "invalido" {
		return out, nil
	}
	return out, err
}

// --- Transport ---

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return domain.InternalError{Msg: "payload no serializable", Err: err}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return domain.InternalError{Msg: "request inválido", Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return domain.UnavailableError{Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return domain.UnavailableError{Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if out != nil {
			// best effort: error payloads may share the success shape
			_ = json.Unmarshal(raw, out)
		}
		return c.asError(res.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return domain.InternalError{Msg: "respuesta no válida del servidor", Err: err}
		}
	}
	return nil
}

type errorBody struct {
	Error            string `json:"error"`
	AsientosOcupados []int  `json:"asientos_ocupados"`
}

func (c *Client) asError(status int, raw []byte) error {
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)

	switch status {
	case http.StatusUnauthorized:
		return domain.UnauthorizedError{Msg: eb.Error}
	case http.StatusConflict:
		return domain.ConflictError{Msg: eb.Error, AsientosOcupados: eb.AsientosOcupados}
	case http.StatusNotFound:
		return domain.NotFoundError{Resource: eb.Error}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ValidationError{Msg: eb.Error}
	default:
		msg := eb.Error
		if msg == "" {
			msg = fmt.Sprintf("el servidor respondió %d", status)
		}
		return domain.InternalError{Msg: msg}
	}
}
