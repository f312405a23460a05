package handlers

import (
	"net/http"

	"boletera/internal/payment"

	"github.com/gin-gonic/gin"
)

type pagoView struct {
	Estado        string
	Error         string
	CodigoReserva string
	PDFURL        string
}

// PagoExitoso is the return page from the hosted checkout. It waits on the
// status poll (immediate probe, then every PollInterval) and renders the
// final outcome; closing the browser cancels the poll through the request
// context.
func (h *Handlers) PagoExitoso(c *gin.Context) {
	sessionID := c.Query("session_id")

	poller := payment.NewPoller(h.API.EstadoReservaPorSession, h.PollInterval)
	estado, err := poller.Wait(c.Request.Context(), sessionID)
	if err != nil {
		c.HTML(http.StatusOK, "pago_exitoso.html", pagoView{
			Estado: "error",
			Error:  userMessage(err),
		})
		return
	}

	c.HTML(http.StatusOK, "pago_exitoso.html", pagoView{
		Estado:        estado.EstadoPago,
		CodigoReserva: estado.CodigoReserva,
		PDFURL:        h.API.TicketPDF(estado.CodigoReserva),
	})
}

func (h *Handlers) PagoCancelado(c *gin.Context) {
	c.HTML(http.StatusOK, "pago_cancelado.html", nil)
}
