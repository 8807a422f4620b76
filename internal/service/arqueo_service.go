package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/dto"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/model"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/repository"
)

// ArqueoService computes the theoretical drawer balance of a session from the
// recorded events alone. No running counter is trusted: every figure derives
// from queries scoped by (operador, created_at >= opened_at), so the report can
// be recomputed at any time and yields identical results while the underlying
// data is unchanged.
type ArqueoService interface {
	Calcular(ctx context.Context, sesion *model.SesionCaja) (*dto.ArqueoResponse, error)
}

type arqueoService struct {
	pagos        repository.PagoRepository
	movimientos  repository.MovimientoRepository
	devoluciones repository.DevolucionRepository
}

func NewArqueoService(
	pagos repository.PagoRepository,
	movimientos repository.MovimientoRepository,
	devoluciones repository.DevolucionRepository,
) ArqueoService {
	return &arqueoService{pagos: pagos, movimientos: movimientos, devoluciones: devoluciones}
}

// montoLocalPago resolves the local-currency amount of a payment. Foreign
// payments carry the foreign amount plus a human-authored rate annotation; the
// normalization fails open so a malformed annotation never aborts the arqueo.
func montoLocalPago(p model.PagoVenta) decimal.Decimal {
	if p.MontoDivisa != nil && p.TasaCambio != nil {
		return NormalizarDivisa(*p.MontoDivisa, *p.TasaCambio)
	}
	return p.Monto
}

// Calcular fans out the three independent reads, joins, then aggregates.
// Any individual query failure aborts the whole computation with a
// DataUnavailableError — partial totals are never returned.
func (s *arqueoService) Calcular(ctx context.Context, sesion *model.SesionCaja) (*dto.ArqueoResponse, error) {
	if sesion == nil {
		return nil, &StateError{Motivo: "no hay sesion de caja"}
	}

	var (
		pagos []model.PagoVenta
		movs  []model.MovimientoManual
		devs  []model.Devolucion
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if pagos, err = s.pagos.ListarPorOperadorDesde(gctx, sesion.Operador, sesion.OpenedAt); err != nil {
			return &DataUnavailableError{Consulta: "pagos_venta", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if movs, err = s.movimientos.ListarPorOperadorDesde(gctx, sesion.Operador, sesion.OpenedAt); err != nil {
			return &DataUnavailableError{Consulta: "movimientos_manuales", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if devs, err = s.devoluciones.ListarPorOperadorDesde(gctx, sesion.Operador, sesion.OpenedAt); err != nil {
			return &DataUnavailableError{Consulta: "devoluciones", Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totPagos := Agregar(pagos,
		func(p model.PagoVenta) Categoria { return ClasificarCategoria(p.Tipo) },
		montoLocalPago,
	)
	totDevs := Agregar(devs,
		func(d model.Devolucion) Categoria { return ClasificarCategoria(d.Tipo) },
		func(d model.Devolucion) decimal.Decimal { return d.Monto },
	)

	// Manual movements are cash-equivalent for drawer purposes — they are not
	// split by payment category.
	ingresosManuales := decimal.Zero
	egresosManuales := decimal.Zero
	for _, m := range movs {
		if m.Tipo == model.MovimientoEgreso {
			egresosManuales = egresosManuales.Add(m.Monto)
		} else {
			ingresosManuales = ingresosManuales.Add(m.Monto)
		}
	}

	resp := &dto.ArqueoResponse{
		SesionID:         sesion.ID.String(),
		Operador:         sesion.Operador,
		Desde:            sesion.OpenedAt.UTC().Format(time.RFC3339),
		MontoInicial:     sesion.MontoInicial.Round(2),
		IngresosManuales: ingresosManuales.Round(2),
		EgresosManuales:  egresosManuales.Round(2),
	}

	netos := make(map[Categoria]decimal.Decimal, len(Categorias))
	for _, c := range Categorias {
		fila := dto.FilaArqueo{
			Categoria:    string(c),
			Ventas:       totPagos[c].Ingresos.Round(2),
			Anulaciones:  totPagos[c].Egresos.Round(2),
			Devoluciones: totDevs[c].Neto.Round(2),
		}
		neto := totPagos[c].Neto.Sub(totDevs[c].Neto)
		netos[c] = neto
		fila.Neto = neto.Round(2)

		resp.Desglose = append(resp.Desglose, fila)
		resp.Totales.Ventas = resp.Totales.Ventas.Add(fila.Ventas)
		resp.Totales.Anulaciones = resp.Totales.Anulaciones.Add(fila.Anulaciones)
		resp.Totales.Devoluciones = resp.Totales.Devoluciones.Add(fila.Devoluciones)
		resp.Totales.Neto = resp.Totales.Neto.Add(fila.Neto)
	}
	resp.Totales.Categoria = "total"

	// Theoretical cash balance:
	//   inicial + (ventas efectivo − anulaciones efectivo)
	//           + ingresos manuales − egresos manuales − devoluciones efectivo
	saldoEfectivo := sesion.MontoInicial.
		Add(netos[CategoriaEfectivo]).
		Add(ingresosManuales).
		Sub(egresosManuales)

	resp.Registrado = dto.MontosPorCategoria{
		Efectivo:      saldoEfectivo.Round(2),
		Tarjeta:       netos[CategoriaTarjeta].Round(2),
		Transferencia: netos[CategoriaTransferencia].Round(2),
		Divisa:        netos[CategoriaDivisa].Round(2),
	}
	resp.Registrado.Total = resp.Registrado.Efectivo.
		Add(resp.Registrado.Tarjeta).
		Add(resp.Registrado.Transferencia).
		Add(resp.Registrado.Divisa)
	resp.SaldoTeoricoEfectivo = resp.Registrado.Efectivo

	return resp, nil
}
