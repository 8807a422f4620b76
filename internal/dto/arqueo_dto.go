package dto

import "github.com/shopspring/decimal"

// FilaArqueo is one row of the reconciliation breakdown table: payments split
// into sales and reversals, plus refunds, for a single category.
type FilaArqueo struct {
	Categoria    string          `json:"categoria"`
	Ventas       decimal.Decimal `json:"ventas"`
	Anulaciones  decimal.Decimal `json:"anulaciones"`
	Devoluciones decimal.Decimal `json:"devoluciones"`
	Neto         decimal.Decimal `json:"neto"`
}

// ArqueoResponse is the reconciliation report for an open session. It derives
// entirely from timestamp-scoped queries, so recomputing it with unchanged data
// yields an identical report.
type ArqueoResponse struct {
	SesionID     string          `json:"sesion_id"`
	Operador     string          `json:"operador"`
	Desde        string          `json:"desde"`
	MontoInicial decimal.Decimal `json:"monto_inicial"`

	Desglose []FilaArqueo `json:"desglose"`
	Totales  FilaArqueo   `json:"totales"`

	// Manual movements are not categorized by payment type — they are
	// cash-equivalent for drawer purposes.
	IngresosManuales decimal.Decimal `json:"ingresos_manuales"`
	EgresosManuales  decimal.Decimal `json:"egresos_manuales"`

	// Registrado is the theoretical balance per category. Efectivo folds in the
	// opening amount and the manual movements.
	Registrado MontosPorCategoria `json:"registrado"`

	SaldoTeoricoEfectivo decimal.Decimal `json:"saldo_teorico_efectivo"`
}
