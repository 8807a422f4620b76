package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MovimientoIngreso = "ingreso"
	MovimientoEgreso  = "egreso"
)

// MovimientoManual is an operator-entered cash-drawer adjustment not tied to a
// sale (change fund, petty-cash expense, …). Monto is always positive; Tipo
// carries the direction. Never mutated or deleted.
type MovimientoManual struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Operador  string          `gorm:"type:varchar(100);not null;index"`
	Concepto  string          `gorm:"not null"`
	Monto     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Tipo      string          `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time       `gorm:"index"`
}
