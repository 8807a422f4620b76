package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Devolucion is a customer return/credit paid out by the operator. Tipo is the
// free-text payment label of the refund, classified at read time like PagoVenta.
type Devolucion struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Operador  string          `gorm:"type:varchar(100);not null;index"`
	Monto     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Tipo      string          `gorm:"type:varchar(60);not null"`
	Concepto  string
	CreatedAt time.Time `gorm:"index"`
}
