package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/model"
)

// PagoRepository reads the sales-payment stream owned by the surrounding POS
// application. This subsystem never writes payments — reversals of voided sales
// arrive as separate negative records created by the sales module.
type PagoRepository interface {
	ListarPorOperadorDesde(ctx context.Context, operador string, desde time.Time) ([]model.PagoVenta, error)
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) ListarPorOperadorDesde(ctx context.Context, operador string, desde time.Time) ([]model.PagoVenta, error) {
	var pagos []model.PagoVenta
	err := r.db.WithContext(ctx).
		Where("operador = ? AND created_at >= ?", operador, desde).
		Order("created_at ASC").
		Find(&pagos).Error
	return pagos, err
}
