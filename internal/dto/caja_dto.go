package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoInicial decimal.Decimal `json:"monto_inicial" validate:"min=0"`
}

// ConteoCierre is the physically counted amount per category at close.
type ConteoCierre struct {
	Efectivo      decimal.Decimal `json:"efectivo"      validate:"min=0"`
	Tarjeta       decimal.Decimal `json:"tarjeta"       validate:"min=0"`
	Transferencia decimal.Decimal `json:"transferencia" validate:"min=0"`
	Divisa        decimal.Decimal `json:"divisa"        validate:"min=0"`
}

type CerrarCajaRequest struct {
	Conteo ConteoCierre `json:"conteo" validate:"required"`
}

type MovimientoManualRequest struct {
	Tipo     string          `json:"tipo"     validate:"required,oneof=ingreso egreso"`
	Monto    decimal.Decimal `json:"monto"    validate:"required,gt=0"`
	Concepto string          `json:"concepto" validate:"required,min=3"`
}

type DevolucionRequest struct {
	Monto    decimal.Decimal `json:"monto" validate:"required,gt=0"`
	Tipo     string          `json:"tipo"  validate:"required"`
	Concepto string          `json:"concepto"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MontosPorCategoria struct {
	Efectivo      decimal.Decimal `json:"efectivo"`
	Tarjeta       decimal.Decimal `json:"tarjeta"`
	Transferencia decimal.Decimal `json:"transferencia"`
	Divisa        decimal.Decimal `json:"divisa"`
	Total         decimal.Decimal `json:"total"`
}

type SesionCajaResponse struct {
	SesionID     string          `json:"sesion_id"`
	Operador     string          `json:"operador"`
	MontoInicial decimal.Decimal `json:"monto_inicial"`
	Estado       string          `json:"estado"`
	OpenedAt     string          `json:"opened_at"`
	ClosedAt     *string         `json:"closed_at,omitempty"`

	// Present only for closed sessions.
	Registrado *MontosPorCategoria `json:"registrado,omitempty"`
	Contado    *MontosPorCategoria `json:"contado,omitempty"`
	Diferencia *decimal.Decimal    `json:"diferencia,omitempty"`
}

type CierreCajaResponse struct {
	SesionID   string             `json:"sesion_id"`
	Registrado MontosPorCategoria `json:"registrado"`
	Contado    MontosPorCategoria `json:"contado"`
	// Diferencia = contado − registrado, per category and overall.
	Diferencia MontosPorCategoria `json:"diferencia"`
	Estado     string             `json:"estado"`
	ClosedAt   string             `json:"closed_at"`
}

type HistorialCajaResponse struct {
	Data  []SesionCajaResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
