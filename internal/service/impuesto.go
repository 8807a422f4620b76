package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/repository"
)

// Default rates used whenever the configuration source yields a null, zero or
// negative value. ISV 15%, ISV alterna 18%, tasa de turismo 4%.
var (
	TasaISVDefault        = decimal.NewFromFloat(0.15)
	TasaISVAlternaDefault = decimal.NewFromFloat(0.18)
	TasaTurismoDefault    = decimal.NewFromFloat(0.04)
)

// TasasImpuesto are the three configured rates as decimal fractions.
type TasasImpuesto struct {
	ISV        decimal.Decimal `json:"isv"`
	ISVAlterna decimal.Decimal `json:"isv_alterna"`
	Turismo    decimal.Decimal `json:"turismo"`
}

// ConDefaults replaces missing/zero/negative rates with the defaults.
// Malformed rate configuration is never rejected.
func (t TasasImpuesto) ConDefaults() TasasImpuesto {
	if !t.ISV.IsPositive() {
		t.ISV = TasaISVDefault
	}
	if !t.ISVAlterna.IsPositive() {
		t.ISVAlterna = TasaISVAlternaDefault
	}
	if !t.Turismo.IsPositive() {
		t.Turismo = TasaTurismoDefault
	}
	return t
}

// LineaGravable is one sale line as seen by the tax evaluator. Precio is the
// net unit price (tax-additive convention — the persisted sale total is built
// by adding the computed tax on top of it).
type LineaGravable struct {
	Precio      decimal.Decimal
	Cantidad    int
	Exento      bool
	TasaAlterna bool
	Turismo     bool
}

// DesgloseImpuesto is the evaluated tax breakdown for one line. Amounts are not
// rounded here — rounding to 2 digits happens only at presentation boundaries
// so error does not compound across many lines.
type DesgloseImpuesto struct {
	Neto       decimal.Decimal
	ISV        decimal.Decimal
	ISVAlterna decimal.Decimal
	Turismo    decimal.Decimal
}

// Total returns neto plus all taxes.
func (d DesgloseImpuesto) Total() decimal.Decimal {
	return d.Neto.Add(d.ISV).Add(d.ISVAlterna).Add(d.Turismo)
}

// CalcularImpuestoLinea evaluates the tax rules for one line. Precedence:
//  1. Exento: every tax is zero, neto is precio × cantidad unchanged.
//  2. The base rate is ISVAlterna when TasaAlterna, otherwise ISV.
//  3. Turismo is additive on top of whichever base rate applies.
//  4. Tax is computed against the combined rate; the base and turismo portions
//     are reported separately, proportional to their share of the combined rate.
//
// Pure function — no side effects, no error conditions.
func CalcularImpuestoLinea(linea LineaGravable, tasas TasasImpuesto) DesgloseImpuesto {
	tasas = tasas.ConDefaults()
	neto := linea.Precio.Mul(decimal.NewFromInt(int64(linea.Cantidad)))

	if linea.Exento {
		return DesgloseImpuesto{Neto: neto}
	}

	base := tasas.ISV
	if linea.TasaAlterna {
		base = tasas.ISVAlterna
	}
	combinada := base
	if linea.Turismo {
		combinada = combinada.Add(tasas.Turismo)
	}

	impuesto := neto.Mul(combinada)
	desglose := DesgloseImpuesto{Neto: neto}

	// Proportional split of the combined-rate tax. With additive rates this is
	// exactly neto×base and neto×turismo.
	montoBase := impuesto.Mul(base).Div(combinada)
	if linea.TasaAlterna {
		desglose.ISVAlterna = montoBase
	} else {
		desglose.ISV = montoBase
	}
	if linea.Turismo {
		desglose.Turismo = impuesto.Sub(montoBase)
	}
	return desglose
}

// ── ImpuestoService ───────────────────────────────────────────────────────────

const (
	tasasCacheKey = "config:tasas_impuesto"
	tasasCacheTTL = 5 * time.Minute
)

// ImpuestoService evaluates sale lines against the configured rates. The
// configuration row is cached in Redis so per-line evaluation does not hit
// Postgres on every cart change.
type ImpuestoService interface {
	ObtenerTasas(ctx context.Context) TasasImpuesto
	Calcular(ctx context.Context, linea LineaGravable) DesgloseImpuesto
}

type impuestoService struct {
	repo repository.ImpuestoRepository
	rdb  *redis.Client
}

func NewImpuestoService(repo repository.ImpuestoRepository, rdb *redis.Client) ImpuestoService {
	return &impuestoService{repo: repo, rdb: rdb}
}

// ObtenerTasas resolves the configured rates: Redis cache, then the
// configuration row, then the defaults. Every failure falls through silently —
// tax evaluation must never be blocked by a configuration lookup.
func (s *impuestoService) ObtenerTasas(ctx context.Context) TasasImpuesto {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, tasasCacheKey).Bytes(); err == nil {
			var tasas TasasImpuesto
			if json.Unmarshal(raw, &tasas) == nil {
				return tasas.ConDefaults()
			}
		}
	}

	if s.repo != nil {
		if cfg, err := s.repo.ObtenerConfiguracion(ctx); err == nil && cfg != nil {
			tasas := TasasImpuesto{
				ISV:        cfg.TasaISV,
				ISVAlterna: cfg.TasaISVAlterna,
				Turismo:    cfg.TasaTurismo,
			}.ConDefaults()
			s.cachearTasas(ctx, tasas)
			return tasas
		} else if err != nil {
			log.Warn().Err(err).Msg("impuesto: configuracion no disponible, usando tasas por defecto")
		}
	}

	return TasasImpuesto{}.ConDefaults()
}

func (s *impuestoService) cachearTasas(ctx context.Context, tasas TasasImpuesto) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(tasas)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, tasasCacheKey, raw, tasasCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("impuesto: no se pudo cachear tasas")
	}
}

func (s *impuestoService) Calcular(ctx context.Context, linea LineaGravable) DesgloseImpuesto {
	return CalcularImpuestoLinea(linea, s.ObtenerTasas(ctx))
}
