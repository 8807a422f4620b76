package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/model"
)

type DevolucionRepository interface {
	Create(ctx context.Context, d *model.Devolucion) error
	ListarPorOperadorDesde(ctx context.Context, operador string, desde time.Time) ([]model.Devolucion, error)
}

type devolucionRepo struct{ db *gorm.DB }

func NewDevolucionRepository(db *gorm.DB) DevolucionRepository { return &devolucionRepo{db: db} }

func (r *devolucionRepo) Create(ctx context.Context, d *model.Devolucion) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *devolucionRepo) ListarPorOperadorDesde(ctx context.Context, operador string, desde time.Time) ([]model.Devolucion, error) {
	var devs []model.Devolucion
	err := r.db.WithContext(ctx).
		Where("operador = ? AND created_at >= ?", operador, desde).
		Order("created_at ASC").
		Find(&devs).Error
	return devs, err
}
