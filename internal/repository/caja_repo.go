package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/model"
)

type CajaRepository interface {
	CreateSesion(ctx context.Context, s *model.SesionCaja) error
	// FindSesionAbierta returns (nil, nil) when the operator has no open session.
	FindSesionAbierta(ctx context.Context, operador string) (*model.SesionCaja, error)
	// FindSesionByID returns (nil, nil) when no session has that id; a non-nil
	// error always means the query itself failed.
	FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error)
	// CerrarSesion persists the terminal closing snapshot. Sessions are never
	// deleted and never reopened.
	CerrarSesion(ctx context.Context, s *model.SesionCaja) error
	ListCerradas(ctx context.Context, page, limit int) ([]model.SesionCaja, int64, error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) CreateSesion(ctx context.Context, s *model.SesionCaja) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *cajaRepo) FindSesionAbierta(ctx context.Context, operador string) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).
		Where("operador = ? AND estado = ?", operador, model.EstadoAbierta).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cajaRepo) FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cajaRepo) CerrarSesion(ctx context.Context, s *model.SesionCaja) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *cajaRepo) ListCerradas(ctx context.Context, page, limit int) ([]model.SesionCaja, int64, error) {
	var (
		sesiones []model.SesionCaja
		total    int64
	)
	q := r.db.WithContext(ctx).Model(&model.SesionCaja{}).Where("estado = ?", model.EstadoCerrada)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("closed_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sesiones).Error
	return sesiones, total, err
}
