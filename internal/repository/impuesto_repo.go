package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/model"
)

// ImpuestoRepository reads the tax-rate configuration row. A missing row is not
// an error — (nil, nil) tells the service to fall back to the default rates.
type ImpuestoRepository interface {
	ObtenerConfiguracion(ctx context.Context) (*model.ConfiguracionImpuesto, error)
}

type impuestoRepo struct{ db *gorm.DB }

func NewImpuestoRepository(db *gorm.DB) ImpuestoRepository { return &impuestoRepo{db: db} }

func (r *impuestoRepo) ObtenerConfiguracion(ctx context.Context) (*model.ConfiguracionImpuesto, error) {
	var cfg model.ConfiguracionImpuesto
	err := r.db.WithContext(ctx).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
