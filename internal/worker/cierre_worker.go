package worker

// cierre_worker.go
// Renders the printable cierre de caja report and mails it to the supervisor
// address. Strictly best-effort: the session is already closed when this job
// runs, so failures land in the DLQ for manual inspection instead of being
// surfaced to the operator.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/infra"
)

type CierreWorker struct {
	mailer      *infra.Mailer
	storagePath string
}

func NewCierreWorker(mailer *infra.Mailer, storagePath string) *CierreWorker {
	return &CierreWorker{mailer: mailer, storagePath: storagePath}
}

// Process generates the PDF and sends the email.
func (w *CierreWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload CierreJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("cierre_worker: invalid payload")
		SendToDLQ(ctx, rdb, QueueCierre, "cierre_caja", raw, "invalid payload", 1)
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("cierre_worker: empty to_email — skipping")
		return
	}

	pdfPath, err := infra.GenerarPDFCierre(payload.Operador, &payload.Cierre, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("sesion_id", payload.Cierre.SesionID).Msg("cierre_worker: PDF generation failed")
		SendToDLQ(ctx, rdb, QueueCierre, "cierre_caja", raw, "pdf: "+err.Error(), 1)
		return
	}

	subject := fmt.Sprintf("Cierre de caja — %s", payload.Operador)
	body := fmt.Sprintf(
		"Cierre de caja del operador %s.\nRegistrado: %s\nContado: %s\nDiferencia: %s\n",
		payload.Operador,
		payload.Cierre.Registrado.Total.StringFixed(2),
		payload.Cierre.Contado.Total.StringFixed(2),
		payload.Cierre.Diferencia.Total.StringFixed(2),
	)
	if err := w.mailer.SendCierre(payload.ToEmail, subject, body, pdfPath); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("cierre_worker: failed to send email")
		SendToDLQ(ctx, rdb, QueueCierre, "cierre_caja", raw, "smtp: "+err.Error(), 1)
		return
	}
	log.Info().Str("to", payload.ToEmail).Str("sesion_id", payload.Cierre.SesionID).Msg("cierre_worker: reporte enviado")
}
