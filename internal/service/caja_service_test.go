package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/dto"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/model"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/repository"
)

// ── In-memory fakes ──────────────────────────────────────────────────────────

type fakeCajaRepo struct {
	sesiones map[uuid.UUID]*model.SesionCaja
	err      error
}

func newFakeCajaRepo() *fakeCajaRepo {
	return &fakeCajaRepo{sesiones: make(map[uuid.UUID]*model.SesionCaja)}
}

func (r *fakeCajaRepo) CreateSesion(_ context.Context, s *model.SesionCaja) error {
	if r.err != nil {
		return r.err
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sesiones[s.ID] = s
	return nil
}

func (r *fakeCajaRepo) FindSesionAbierta(_ context.Context, operador string) (*model.SesionCaja, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, s := range r.sesiones {
		if s.Operador == operador && s.Estado == model.EstadoAbierta {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeCajaRepo) FindSesionByID(_ context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.sesiones[id], nil
}

func (r *fakeCajaRepo) CerrarSesion(_ context.Context, s *model.SesionCaja) error {
	if r.err != nil {
		return r.err
	}
	r.sesiones[s.ID] = s
	return nil
}

func (r *fakeCajaRepo) ListCerradas(_ context.Context, page, limit int) ([]model.SesionCaja, int64, error) {
	var cerradas []model.SesionCaja
	for _, s := range r.sesiones {
		if s.Estado == model.EstadoCerrada {
			cerradas = append(cerradas, *s)
		}
	}
	return cerradas, int64(len(cerradas)), nil
}

type fakePagoRepo struct {
	pagos []model.PagoVenta
	err   error
}

func (r *fakePagoRepo) ListarPorOperadorDesde(_ context.Context, operador string, desde time.Time) ([]model.PagoVenta, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.PagoVenta
	for _, p := range r.pagos {
		if p.Operador == operador && !p.CreatedAt.Before(desde) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeMovimientoRepo struct {
	movimientos []model.MovimientoManual
	err         error
}

func (r *fakeMovimientoRepo) Create(_ context.Context, m *model.MovimientoManual) error {
	if r.err != nil {
		return r.err
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *fakeMovimientoRepo) ListarPorOperadorDesde(_ context.Context, operador string, desde time.Time) ([]model.MovimientoManual, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.MovimientoManual
	for _, m := range r.movimientos {
		if m.Operador == operador && !m.CreatedAt.Before(desde) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeDevolucionRepo struct {
	devoluciones []model.Devolucion
	err          error
}

func (r *fakeDevolucionRepo) Create(_ context.Context, d *model.Devolucion) error {
	if r.err != nil {
		return r.err
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = time.Now()
	r.devoluciones = append(r.devoluciones, *d)
	return nil
}

func (r *fakeDevolucionRepo) ListarPorOperadorDesde(_ context.Context, operador string, desde time.Time) ([]model.Devolucion, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Devolucion
	for _, d := range r.devoluciones {
		if d.Operador == operador && !d.CreatedAt.Before(desde) {
			out = append(out, d)
		}
	}
	return out, nil
}

var (
	_ repository.CajaRepository       = (*fakeCajaRepo)(nil)
	_ repository.PagoRepository       = (*fakePagoRepo)(nil)
	_ repository.MovimientoRepository = (*fakeMovimientoRepo)(nil)
	_ repository.DevolucionRepository = (*fakeDevolucionRepo)(nil)
)

type cajaFixture struct {
	svc          CajaService
	cajaRepo     *fakeCajaRepo
	pagos        *fakePagoRepo
	movimientos  *fakeMovimientoRepo
	devoluciones *fakeDevolucionRepo
}

func newCajaFixture() *cajaFixture {
	f := &cajaFixture{
		cajaRepo:     newFakeCajaRepo(),
		pagos:        &fakePagoRepo{},
		movimientos:  &fakeMovimientoRepo{},
		devoluciones: &fakeDevolucionRepo{},
	}
	arqueo := NewArqueoService(f.pagos, f.movimientos, f.devoluciones)
	f.svc = NewCajaService(f.cajaRepo, f.movimientos, f.devoluciones, arqueo, nil, "")
	return f
}

// agregarPago injects a sales payment attributed to the operator, timestamped now.
func (f *cajaFixture) agregarPago(operador, tipo string, monto float64) {
	f.pagos.pagos = append(f.pagos.pagos, model.PagoVenta{
		ID: uuid.New(), VentaID: uuid.New(), Operador: operador,
		Tipo: tipo, Monto: decimal.NewFromFloat(monto), CreatedAt: time.Now(),
	})
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

func TestAbrirCaja(t *testing.T) {
	f := newCajaFixture()

	resp, err := f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(500),
	})

	require.NoError(t, err)
	assert.Equal(t, model.EstadoAbierta, resp.Estado)
	assert.Equal(t, "maria", resp.Operador)
	assert.Equal(t, "500", resp.MontoInicial.String())
}

func TestAbrirCajaDuplicada(t *testing.T) {
	f := newCajaFixture()

	_, err := f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(500),
	})
	require.NoError(t, err)

	// Second open for the same operator must fail and never create a second row.
	_, err = f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(200),
	})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "maria", conflict.Operador)
	assert.Len(t, f.cajaRepo.sesiones, 1)

	// A different operator is unaffected.
	_, err = f.svc.Abrir(context.Background(), "pedro", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(300),
	})
	assert.NoError(t, err)
}

func TestObtenerActivaSinSesion(t *testing.T) {
	f := newCajaFixture()

	resp, err := f.svc.ObtenerActiva(context.Background(), "maria")
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestCerrarSinSesionAbierta(t *testing.T) {
	f := newCajaFixture()

	_, err := f.svc.Cerrar(context.Background(), "maria", dto.CerrarCajaRequest{})
	var state *StateError
	assert.ErrorAs(t, err, &state)
}

func TestRegistrarMovimientoSinSesion(t *testing.T) {
	f := newCajaFixture()

	err := f.svc.RegistrarMovimiento(context.Background(), "maria", dto.MovimientoManualRequest{
		Tipo: model.MovimientoIngreso, Monto: decimal.NewFromFloat(100), Concepto: "Fondo de cambio",
	})
	var state *StateError
	assert.ErrorAs(t, err, &state)
	assert.Empty(t, f.movimientos.movimientos)
}

// ── Arqueo ───────────────────────────────────────────────────────────────────

func TestArqueoSesionSinMovimientos(t *testing.T) {
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(500),
	})
	require.NoError(t, err)

	reporte, err := f.svc.Arqueo(context.Background(), "maria")
	require.NoError(t, err)
	assert.Equal(t, "500", reporte.SaldoTeoricoEfectivo.String())
	assert.True(t, reporte.Totales.Ventas.IsZero())
}

func TestArqueoVentaAnulada(t *testing.T) {
	// Venta de 120 en efectivo y su reversa de -120: el neto vuelve al inicial.
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(500),
	})
	require.NoError(t, err)

	f.agregarPago("maria", "Efectivo", 120)
	f.agregarPago("maria", "Efectivo", -120)

	reporte, err := f.svc.Arqueo(context.Background(), "maria")
	require.NoError(t, err)

	efectivo := reporte.Desglose[0]
	assert.Equal(t, string(CategoriaEfectivo), efectivo.Categoria)
	assert.Equal(t, "120", efectivo.Ventas.String())
	assert.Equal(t, "120", efectivo.Anulaciones.String())
	assert.Equal(t, "0", efectivo.Neto.String())
	assert.Equal(t, "500", reporte.SaldoTeoricoEfectivo.String())
}

func TestArqueoMovimientosManuales(t *testing.T) {
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(500),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.RegistrarMovimiento(context.Background(), "maria", dto.MovimientoManualRequest{
		Tipo: model.MovimientoIngreso, Monto: decimal.NewFromFloat(200), Concepto: "Fondo adicional",
	}))
	require.NoError(t, f.svc.RegistrarMovimiento(context.Background(), "maria", dto.MovimientoManualRequest{
		Tipo: model.MovimientoEgreso, Monto: decimal.NewFromFloat(50), Concepto: "Pago de taxi",
	}))

	reporte, err := f.svc.Arqueo(context.Background(), "maria")
	require.NoError(t, err)
	assert.Equal(t, "200", reporte.IngresosManuales.String())
	assert.Equal(t, "50", reporte.EgresosManuales.String())
	assert.Equal(t, "650", reporte.SaldoTeoricoEfectivo.String())
}

func TestArqueoDevolucionEfectivo(t *testing.T) {
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(500),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.RegistrarDevolucion(context.Background(), "maria", dto.DevolucionRequest{
		Monto: decimal.NewFromFloat(30), Tipo: "Efectivo", Concepto: "Producto dañado",
	}))

	reporte, err := f.svc.Arqueo(context.Background(), "maria")
	require.NoError(t, err)
	assert.Equal(t, "30", reporte.Desglose[0].Devoluciones.String())
	assert.Equal(t, "470", reporte.SaldoTeoricoEfectivo.String())
}

func TestArqueoPagoEnDivisa(t *testing.T) {
	// 26.27 dolares con anotacion "1 = 26.27 lps" aparece como 1.00 local en
	// la columna de divisa, sin tocar el saldo teorico de efectivo.
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(500),
	})
	require.NoError(t, err)

	montoDivisa := decimal.NewFromFloat(26.27)
	tasa := "1 = 26.27 lps"
	f.pagos.pagos = append(f.pagos.pagos, model.PagoVenta{
		ID: uuid.New(), VentaID: uuid.New(), Operador: "maria",
		Tipo: "Dolares", Monto: decimal.NewFromFloat(26.27),
		MontoDivisa: &montoDivisa, TasaCambio: &tasa,
		CreatedAt: time.Now(),
	})

	reporte, err := f.svc.Arqueo(context.Background(), "maria")
	require.NoError(t, err)

	divisa := reporte.Desglose[3]
	assert.Equal(t, string(CategoriaDivisa), divisa.Categoria)
	assert.Equal(t, "1", divisa.Ventas.String())
	assert.Equal(t, "500", reporte.SaldoTeoricoEfectivo.String())
}

func TestArqueoOperadorAjeno(t *testing.T) {
	// Pagos de otro operador no entran al arqueo.
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(500),
	})
	require.NoError(t, err)

	f.agregarPago("pedro", "Efectivo", 999)

	reporte, err := f.svc.Arqueo(context.Background(), "maria")
	require.NoError(t, err)
	assert.Equal(t, "500", reporte.SaldoTeoricoEfectivo.String())
}

func TestArqueoDeterminista(t *testing.T) {
	// Sin cambios en los datos, dos corridas producen reportes identicos.
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(500),
	})
	require.NoError(t, err)

	f.agregarPago("maria", "Efectivo", 120.50)
	f.agregarPago("maria", "Tarjeta de credito", 300)
	f.agregarPago("maria", "Efectivo", -20.50)
	require.NoError(t, f.svc.RegistrarMovimiento(context.Background(), "maria", dto.MovimientoManualRequest{
		Tipo: model.MovimientoEgreso, Monto: decimal.NewFromFloat(15), Concepto: "Compra de bolsas",
	}))

	r1, err := f.svc.Arqueo(context.Background(), "maria")
	require.NoError(t, err)
	r2, err := f.svc.Arqueo(context.Background(), "maria")
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}

func TestArqueoDatosNoDisponibles(t *testing.T) {
	// Cualquier consulta fallida aborta el arqueo completo: nunca se devuelven
	// totales parciales.
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(500),
	})
	require.NoError(t, err)

	f.pagos.err = errors.New("connection refused")

	reporte, err := f.svc.Arqueo(context.Background(), "maria")
	assert.Nil(t, reporte)
	var unavailable *DataUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "pagos_venta", unavailable.Consulta)
}

// ── Cierre ───────────────────────────────────────────────────────────────────

func TestCerrarCaja(t *testing.T) {
	f := newCajaFixture()
	abierta, err := f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(500),
	})
	require.NoError(t, err)

	f.agregarPago("maria", "Efectivo", 100)

	// Registrado efectivo: 500 + 100 = 600. Conteo fisico: 590 → faltante de 10.
	cierre, err := f.svc.Cerrar(context.Background(), "maria", dto.CerrarCajaRequest{
		Conteo: dto.ConteoCierre{Efectivo: decimal.NewFromFloat(590)},
	})
	require.NoError(t, err)

	assert.Equal(t, model.EstadoCerrada, cierre.Estado)
	assert.Equal(t, "600", cierre.Registrado.Efectivo.String())
	assert.Equal(t, "590", cierre.Contado.Efectivo.String())
	assert.Equal(t, "-10", cierre.Diferencia.Efectivo.String())
	assert.Equal(t, "-10", cierre.Diferencia.Total.String())

	// La sesion queda terminal: no hay activa hasta abrir otra.
	activa, err := f.svc.ObtenerActiva(context.Background(), "maria")
	require.NoError(t, err)
	assert.Nil(t, activa)

	// El snapshot persiste en el reporte de la sesion cerrada.
	reporte, err := f.svc.Reporte(context.Background(), uuid.MustParse(abierta.SesionID))
	require.NoError(t, err)
	assert.Equal(t, model.EstadoCerrada, reporte.Estado)
	require.NotNil(t, reporte.Registrado)
	assert.Equal(t, "600", reporte.Registrado.Efectivo.String())
	require.NotNil(t, reporte.Diferencia)
	assert.Equal(t, "-10", reporte.Diferencia.String())
	require.NotNil(t, reporte.ClosedAt)
}

func TestCerrarCajaDiferenciaGlobal(t *testing.T) {
	// La diferencia persistida es la global (todas las categorias), no solo la
	// de efectivo.
	f := newCajaFixture()
	abierta, err := f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(500),
	})
	require.NoError(t, err)

	f.agregarPago("maria", "Tarjeta de credito", 50)

	// Efectivo cuadra exacto; la tarjeta registrada (50) no se declara.
	cierre, err := f.svc.Cerrar(context.Background(), "maria", dto.CerrarCajaRequest{
		Conteo: dto.ConteoCierre{Efectivo: decimal.NewFromFloat(500)},
	})
	require.NoError(t, err)
	assert.Equal(t, "0", cierre.Diferencia.Efectivo.String())
	assert.Equal(t, "-50", cierre.Diferencia.Tarjeta.String())
	assert.Equal(t, "-50", cierre.Diferencia.Total.String())

	reporte, err := f.svc.Reporte(context.Background(), uuid.MustParse(abierta.SesionID))
	require.NoError(t, err)
	require.NotNil(t, reporte.Diferencia)
	assert.Equal(t, "-50", reporte.Diferencia.String())
}

func TestReporteSesionInexistente(t *testing.T) {
	f := newCajaFixture()

	_, err := f.svc.Reporte(context.Background(), uuid.New())
	var state *StateError
	assert.ErrorAs(t, err, &state)
}

func TestReporteConFalloDeConsulta(t *testing.T) {
	// Una base caida no se reporta como sesion inexistente.
	f := newCajaFixture()
	f.cajaRepo.err = errors.New("connection refused")

	_, err := f.svc.Reporte(context.Background(), uuid.New())
	var unavailable *DataUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "sesion_caja", unavailable.Consulta)
}

func TestCerrarYReabrir(t *testing.T) {
	// La diferencia de un cierre nunca alimenta el inicial de la siguiente sesion.
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(500),
	})
	require.NoError(t, err)

	_, err = f.svc.Cerrar(context.Background(), "maria", dto.CerrarCajaRequest{
		Conteo: dto.ConteoCierre{Efectivo: decimal.NewFromFloat(480)},
	})
	require.NoError(t, err)

	nueva, err := f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(300),
	})
	require.NoError(t, err)
	assert.Equal(t, "300", nueva.MontoInicial.String())
}

func TestHistorialSoloCerradas(t *testing.T) {
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), "maria", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(500),
	})
	require.NoError(t, err)
	_, err = f.svc.Cerrar(context.Background(), "maria", dto.CerrarCajaRequest{
		Conteo: dto.ConteoCierre{Efectivo: decimal.NewFromFloat(500)},
	})
	require.NoError(t, err)

	_, err = f.svc.Abrir(context.Background(), "pedro", dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromFloat(100),
	})
	require.NoError(t, err)

	historial, err := f.svc.Historial(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), historial.Total)
	require.Len(t, historial.Data, 1)
	assert.Equal(t, "maria", historial.Data[0].Operador)
}
