package model

import "github.com/shopspring/decimal"

// ConfiguracionImpuesto is the single configuration row holding the three tax
// rates as decimal fractions (0.15 = 15%). A null/zero rate in this row is
// replaced by the service defaults at read time, never rejected.
type ConfiguracionImpuesto struct {
	ID             int             `gorm:"primaryKey"`
	TasaISV        decimal.Decimal `gorm:"type:decimal(6,4)"`
	TasaISVAlterna decimal.Decimal `gorm:"type:decimal(6,4)"`
	TasaTurismo    decimal.Decimal `gorm:"type:decimal(6,4)"`
}

func (ConfiguracionImpuesto) TableName() string { return "configuracion_impuestos" }
