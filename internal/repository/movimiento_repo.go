package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/model"
)

type MovimientoRepository interface {
	Create(ctx context.Context, m *model.MovimientoManual) error
	ListarPorOperadorDesde(ctx context.Context, operador string, desde time.Time) ([]model.MovimientoManual, error)
}

type movimientoRepo struct{ db *gorm.DB }

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository { return &movimientoRepo{db: db} }

func (r *movimientoRepo) Create(ctx context.Context, m *model.MovimientoManual) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movimientoRepo) ListarPorOperadorDesde(ctx context.Context, operador string, desde time.Time) ([]model.MovimientoManual, error) {
	var movs []model.MovimientoManual
	err := r.db.WithContext(ctx).
		Where("operador = ? AND created_at >= ?", operador, desde).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}
