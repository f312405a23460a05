// Package payment implements the post-checkout status poll: probe the
// reservation status for a payment session until it reads "pagado" or the
// backend reports an error.
package payment

import (
	"context"
	"time"

	"boletera/internal/domain"
)

const EstadoPagado = "pagado"

// EstadoFunc fetches the reservation status for one payment session.
type EstadoFunc func(ctx context.Context, sessionID string) (domain.EstadoReserva, error)

type Poller struct {
	Estado   EstadoFunc
	Interval time.Duration
}

func NewPoller(estado EstadoFunc, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Poller{Estado: estado, Interval: interval}
}

// Wait probes immediately and then once per interval. It returns the first
// paid status, the first error, or ctx.Err when the caller goes away. A
// pending status keeps the loop running; the ticker always stops with the
// call.
func (p *Poller) Wait(ctx context.Context, sessionID string) (domain.EstadoReserva, error) {
	if sessionID == "" {
		return domain.EstadoReserva{}, domain.ValidationError{Field: "session_id", Msg: "No se proporcionó una ID de sesión de pago."}
	}

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		estado, err := p.Estado(ctx, sessionID)
		if err != nil {
			return domain.EstadoReserva{}, err
		}
		if estado.EstadoPago == EstadoPagado {
			return estado, nil
		}

		select {
		case <-ctx.Done():
			return domain.EstadoReserva{}, ctx.Err()
		case <-ticker.C:
		}
	}
}
