package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/dto"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/model"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/repository"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/worker"
)

// CajaService owns the open/closed lifecycle of one cash-drawer session per
// operator. The operator is an explicit argument on every operation — identity
// is resolved at the HTTP boundary, never read from ambient state.
type CajaService interface {
	Abrir(ctx context.Context, operador string, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error)
	// ObtenerActiva returns (nil, nil) when the operator has no open session.
	ObtenerActiva(ctx context.Context, operador string) (*dto.SesionCajaResponse, error)
	// Arqueo computes the reconciliation report of the operator's active session.
	Arqueo(ctx context.Context, operador string) (*dto.ArqueoResponse, error)
	Cerrar(ctx context.Context, operador string, req dto.CerrarCajaRequest) (*dto.CierreCajaResponse, error)
	RegistrarMovimiento(ctx context.Context, operador string, req dto.MovimientoManualRequest) error
	RegistrarDevolucion(ctx context.Context, operador string, req dto.DevolucionRequest) error
	Reporte(ctx context.Context, sesionID uuid.UUID) (*dto.SesionCajaResponse, error)
	Historial(ctx context.Context, page, limit int) (*dto.HistorialCajaResponse, error)
}

type cajaService struct {
	repo         repository.CajaRepository
	movimientos  repository.MovimientoRepository
	devoluciones repository.DevolucionRepository
	arqueo       ArqueoService
	// dispatcher is optional; when present, closing a session enqueues a
	// best-effort supervisor notification with the printable cierre report.
	dispatcher      *worker.Dispatcher
	emailSupervisor string
}

func NewCajaService(
	repo repository.CajaRepository,
	movimientos repository.MovimientoRepository,
	devoluciones repository.DevolucionRepository,
	arqueo ArqueoService,
	dispatcher *worker.Dispatcher,
	emailSupervisor string,
) CajaService {
	return &cajaService{
		repo:            repo,
		movimientos:     movimientos,
		devoluciones:    devoluciones,
		arqueo:          arqueo,
		dispatcher:      dispatcher,
		emailSupervisor: emailSupervisor,
	}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, operador string, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error) {
	// Check-then-insert: at most one open session per operator. Two concurrent
	// requests for the same operator can still race past this check — the
	// partial unique index on (operador) WHERE estado='abierta' created at
	// migration time is the real guard.
	existente, err := s.repo.FindSesionAbierta(ctx, operador)
	if err != nil {
		return nil, &DataUnavailableError{Consulta: "sesion_caja", Err: err}
	}
	if existente != nil {
		return nil, &ConflictError{Operador: operador}
	}

	sesion := &model.SesionCaja{
		Operador:     operador,
		MontoInicial: req.MontoInicial,
		Estado:       model.EstadoAbierta,
		OpenedAt:     time.Now().UTC(),
	}
	if err := s.repo.CreateSesion(ctx, sesion); err != nil {
		return nil, err
	}
	return sesionToResponse(sesion), nil
}

// ── ObtenerActiva ─────────────────────────────────────────────────────────────

func (s *cajaService) ObtenerActiva(ctx context.Context, operador string) (*dto.SesionCajaResponse, error) {
	sesion, err := s.repo.FindSesionAbierta(ctx, operador)
	if err != nil {
		return nil, &DataUnavailableError{Consulta: "sesion_caja", Err: err}
	}
	if sesion == nil {
		return nil, nil
	}
	return sesionToResponse(sesion), nil
}

// ── Arqueo ────────────────────────────────────────────────────────────────────

func (s *cajaService) Arqueo(ctx context.Context, operador string) (*dto.ArqueoResponse, error) {
	sesion, err := s.activa(ctx, operador)
	if err != nil {
		return nil, err
	}
	return s.arqueo.Calcular(ctx, sesion)
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// Computes the theoretical balance, records the counted amounts and the signed
// difference (positive = surplus), and moves the session to its terminal state.
// A subsequent ObtenerActiva for the operator returns none.

func (s *cajaService) Cerrar(ctx context.Context, operador string, req dto.CerrarCajaRequest) (*dto.CierreCajaResponse, error) {
	sesion, err := s.activa(ctx, operador)
	if err != nil {
		return nil, err
	}

	reporte, err := s.arqueo.Calcular(ctx, sesion)
	if err != nil {
		return nil, err
	}

	registrado := reporte.Registrado
	contado := dto.MontosPorCategoria{
		Efectivo:      req.Conteo.Efectivo,
		Tarjeta:       req.Conteo.Tarjeta,
		Transferencia: req.Conteo.Transferencia,
		Divisa:        req.Conteo.Divisa,
	}
	contado.Total = contado.Efectivo.Add(contado.Tarjeta).Add(contado.Transferencia).Add(contado.Divisa)

	diferencia := dto.MontosPorCategoria{
		Efectivo:      contado.Efectivo.Sub(registrado.Efectivo),
		Tarjeta:       contado.Tarjeta.Sub(registrado.Tarjeta),
		Transferencia: contado.Transferencia.Sub(registrado.Transferencia),
		Divisa:        contado.Divisa.Sub(registrado.Divisa),
		Total:         contado.Total.Sub(registrado.Total),
	}

	now := time.Now().UTC()
	sesion.Estado = model.EstadoCerrada
	sesion.ClosedAt = &now
	sesion.EfectivoContado = &contado.Efectivo
	sesion.TarjetaContado = &contado.Tarjeta
	sesion.TransferenciaContado = &contado.Transferencia
	sesion.DivisaContado = &contado.Divisa
	sesion.EfectivoRegistrado = &registrado.Efectivo
	sesion.TarjetaRegistrado = &registrado.Tarjeta
	sesion.TransferenciaRegistrado = &registrado.Transferencia
	sesion.DivisaRegistrado = &registrado.Divisa
	sesion.Diferencia = &diferencia.Total

	if err := s.repo.CerrarSesion(ctx, sesion); err != nil {
		return nil, err
	}

	resp := &dto.CierreCajaResponse{
		SesionID:   sesion.ID.String(),
		Registrado: registrado,
		Contado:    contado,
		Diferencia: diferencia,
		Estado:     model.EstadoCerrada,
		ClosedAt:   now.Format(time.RFC3339),
	}

	// Supervisor notification is best-effort — a queue failure never undoes a
	// close that already happened.
	if s.dispatcher != nil && s.emailSupervisor != "" {
		if err := s.dispatcher.EnqueueCierre(ctx, worker.CierreJobPayload{
			ToEmail:  s.emailSupervisor,
			Operador: operador,
			Cierre:   *resp,
		}); err != nil {
			log.Warn().Err(err).Str("sesion_id", resp.SesionID).Msg("caja: no se pudo encolar notificacion de cierre")
		}
	}

	return resp, nil
}

// ── Movimientos manuales y devoluciones ──────────────────────────────────────
// Both require an active session: an adjustment with no drawer to reconcile
// against would never surface in any arqueo.

func (s *cajaService) RegistrarMovimiento(ctx context.Context, operador string, req dto.MovimientoManualRequest) error {
	if _, err := s.activa(ctx, operador); err != nil {
		return err
	}
	return s.movimientos.Create(ctx, &model.MovimientoManual{
		Operador: operador,
		Concepto: req.Concepto,
		Monto:    req.Monto,
		Tipo:     req.Tipo,
	})
}

func (s *cajaService) RegistrarDevolucion(ctx context.Context, operador string, req dto.DevolucionRequest) error {
	if _, err := s.activa(ctx, operador); err != nil {
		return err
	}
	return s.devoluciones.Create(ctx, &model.Devolucion{
		Operador: operador,
		Monto:    req.Monto,
		Tipo:     req.Tipo,
		Concepto: req.Concepto,
	})
}

// ── Reporte / Historial ──────────────────────────────────────────────────────

func (s *cajaService) Reporte(ctx context.Context, sesionID uuid.UUID) (*dto.SesionCajaResponse, error) {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, &DataUnavailableError{Consulta: "sesion_caja", Err: err}
	}
	if sesion == nil {
		return nil, &StateError{Motivo: "sesion de caja no encontrada"}
	}
	return sesionToResponse(sesion), nil
}

func (s *cajaService) Historial(ctx context.Context, page, limit int) (*dto.HistorialCajaResponse, error) {
	sesiones, total, err := s.repo.ListCerradas(ctx, page, limit)
	if err != nil {
		return nil, &DataUnavailableError{Consulta: "sesion_caja", Err: err}
	}
	data := make([]dto.SesionCajaResponse, 0, len(sesiones))
	for i := range sesiones {
		data = append(data, *sesionToResponse(&sesiones[i]))
	}
	return &dto.HistorialCajaResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *cajaService) activa(ctx context.Context, operador string) (*model.SesionCaja, error) {
	sesion, err := s.repo.FindSesionAbierta(ctx, operador)
	if err != nil {
		return nil, &DataUnavailableError{Consulta: "sesion_caja", Err: err}
	}
	if sesion == nil {
		return nil, &StateError{Motivo: "no hay sesion de caja abierta"}
	}
	return sesion, nil
}

func sesionToResponse(sesion *model.SesionCaja) *dto.SesionCajaResponse {
	resp := &dto.SesionCajaResponse{
		SesionID:     sesion.ID.String(),
		Operador:     sesion.Operador,
		MontoInicial: sesion.MontoInicial.Round(2),
		Estado:       sesion.Estado,
		OpenedAt:     sesion.OpenedAt.UTC().Format(time.RFC3339),
	}
	if sesion.ClosedAt != nil {
		t := sesion.ClosedAt.UTC().Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	if sesion.Estado == model.EstadoCerrada {
		resp.Registrado = montosDesdeSnapshot(
			sesion.EfectivoRegistrado, sesion.TarjetaRegistrado,
			sesion.TransferenciaRegistrado, sesion.DivisaRegistrado,
		)
		resp.Contado = montosDesdeSnapshot(
			sesion.EfectivoContado, sesion.TarjetaContado,
			sesion.TransferenciaContado, sesion.DivisaContado,
		)
		resp.Diferencia = sesion.Diferencia
	}
	return resp
}

func montosDesdeSnapshot(efectivo, tarjeta, transferencia, divisa *decimal.Decimal) *dto.MontosPorCategoria {
	valor := func(d *decimal.Decimal) decimal.Decimal {
		if d == nil {
			return decimal.Zero
		}
		return *d
	}
	m := &dto.MontosPorCategoria{
		Efectivo:      valor(efectivo),
		Tarjeta:       valor(tarjeta),
		Transferencia: valor(transferencia),
		Divisa:        valor(divisa),
	}
	m.Total = m.Efectivo.Add(m.Tarjeta).Add(m.Transferencia).Add(m.Divisa)
	return m
}
