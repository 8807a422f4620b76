package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PagoVenta is a monetary movement tied to a sale. Records are immutable once
// written: when a sale is voided its payments are not updated — a separate
// negative-amount record of the same tipo represents the reversal.
type PagoVenta struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Operador string    `gorm:"type:varchar(100);not null;index"`
	// Tipo is a free-text payment label ("Efectivo", "Tarjeta de credito", …)
	// classified at read time — the upstream data cannot be migrated to an enum.
	Tipo  string          `gorm:"type:varchar(60);not null"`
	Monto decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// MontoDivisa and TasaCambio are only present for foreign-currency payments.
	// TasaCambio is a human-authored annotation such as "1 = 26.27 lps".
	MontoDivisa *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TasaCambio  *string          `gorm:"type:varchar(60)"`
	CreatedAt   time.Time        `gorm:"index"`
}
