package dto

import "github.com/shopspring/decimal"

type CalcularImpuestoRequest struct {
	Precio      decimal.Decimal `json:"precio"       validate:"required,gt=0"`
	Cantidad    int             `json:"cantidad"     validate:"required,min=1"`
	Exento      bool            `json:"exento"`
	TasaAlterna bool            `json:"tasa_alterna"`
	Turismo     bool            `json:"turismo"`
}

// DesgloseImpuestoResponse carries amounts rounded to 2 digits — rounding
// happens only here, at the presentation boundary.
type DesgloseImpuestoResponse struct {
	Neto       decimal.Decimal `json:"neto"`
	ISV        decimal.Decimal `json:"isv"`
	ISVAlterna decimal.Decimal `json:"isv_alterna"`
	Turismo    decimal.Decimal `json:"turismo"`
	Total      decimal.Decimal `json:"total"`
}

type TasasImpuestoResponse struct {
	ISV        decimal.Decimal `json:"isv"`
	ISVAlterna decimal.Decimal `json:"isv_alterna"`
	Turismo    decimal.Decimal `json:"turismo"`
}
