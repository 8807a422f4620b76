package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EstadoAbierta = "abierta"
	EstadoCerrada = "cerrada"
)

// SesionCaja represents one open/close cycle of a cash drawer for one operator.
// Estado: "abierta" | "cerrada". A closed session is terminal — it is never
// reopened and never deleted.
type SesionCaja struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Operador     string          `gorm:"type:varchar(100);not null;index"`
	MontoInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado       string          `gorm:"type:varchar(20);not null;default:'abierta'"`
	OpenedAt     time.Time       `gorm:"not null"`
	ClosedAt     *time.Time

	// Closing snapshot — written exactly once, at close.
	// Contado: physically counted per category. Registrado: theoretical per
	// category, always reproducible from the movements queried by
	// (operador, created_at >= opened_at).
	EfectivoContado      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DivisaContado        *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TarjetaContado       *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TransferenciaContado *decimal.Decimal `gorm:"type:decimal(12,2)"`

	EfectivoRegistrado      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DivisaRegistrado        *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TarjetaRegistrado       *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TransferenciaRegistrado *decimal.Decimal `gorm:"type:decimal(12,2)"`

	// Diferencia = contado − registrado, summed across every category.
	// Positive: surplus, negative: shortage. Audit-only — it is never fed into
	// the MontoInicial of a future session.
	Diferencia *decimal.Decimal `gorm:"type:decimal(12,2)"`
}
