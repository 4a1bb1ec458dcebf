package repository

import (
	"context"
	"errors"

	"arkos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PrecioRepository persists combination prices and answers the aggregate
// pricing queries for the dashboard.
type PrecioRepository interface {
	Crear(ctx context.Context, p *model.Precio) error
	Listar(ctx context.Context) ([]model.Precio, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Precio, error)
	ObtenerPorCombinacion(ctx context.Context, combinacionID uuid.UUID) (*model.Precio, error)
	ExisteActivo(ctx context.Context, combinacionID uuid.UUID) (bool, error)
	Actualizar(ctx context.Context, p *model.Precio) error
	Desactivar(ctx context.Context, id uuid.UUID) (bool, error)

	// CostoActivo returns the cost of the combination's active price at this
	// moment, or zero when none exists. Runs on tx when given so sale write
	// paths read the cost inside their own transaction.
	CostoActivo(ctx context.Context, tx *gorm.DB, combinacionID uuid.UUID) (decimal.Decimal, error)

	// MetricasDashboard counts active combinations holding an active price
	// and averages their stored margin percentage.
	MetricasDashboard(ctx context.Context) (int64, decimal.Decimal, error)
}

type precioRepository struct{ db *gorm.DB }

func NewPrecioRepository(db *gorm.DB) PrecioRepository {
	return &precioRepository{db: db}
}

func (r *precioRepository) Crear(ctx context.Context, p *model.Precio) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *precioRepository) Listar(ctx context.Context) ([]model.Precio, error) {
	var list []model.Precio
	err := r.db.WithContext(ctx).
		Joins("JOIN combinaciones c ON c.id = precios_combinaciones.combinacion_id AND c.activo = ?", true).
		Where("precios_combinaciones.activo = ?", true).
		Preload("Combinacion").
		Order("c.nombre asc").
		Find(&list).Error
	return list, err
}

func (r *precioRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Precio, error) {
	var p model.Precio
	err := r.db.WithContext(ctx).Preload("Combinacion").
		First(&p, "id = ? AND activo = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *precioRepository) ObtenerPorCombinacion(ctx context.Context, combinacionID uuid.UUID) (*model.Precio, error) {
	var p model.Precio
	err := r.db.WithContext(ctx).
		Joins("JOIN combinaciones c ON c.id = precios_combinaciones.combinacion_id AND c.activo = ?", true).
		Preload("Combinacion").
		First(&p, "precios_combinaciones.combinacion_id = ? AND precios_combinaciones.activo = ?", combinacionID, true).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *precioRepository) ExisteActivo(ctx context.Context, combinacionID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Precio{}).
		Where("combinacion_id = ? AND activo = ?", combinacionID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *precioRepository) Actualizar(ctx context.Context, p *model.Precio) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *precioRepository) Desactivar(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Precio{}).Where("id = ?", id).Update("activo", false)
	return res.RowsAffected > 0, res.Error
}

func (r *precioRepository) CostoActivo(ctx context.Context, tx *gorm.DB, combinacionID uuid.UUID) (decimal.Decimal, error) {
	db := r.db
	if tx != nil {
		db = tx
	}
	var p model.Precio
	err := db.WithContext(ctx).Select("costo").
		First(&p, "combinacion_id = ? AND activo = ?", combinacionID, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return p.Costo, nil
}

func (r *precioRepository) MetricasDashboard(ctx context.Context) (int64, decimal.Decimal, error) {
	var row struct {
		Combinaciones int64
		Promedio      decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT pc.combinacion_id)            AS combinaciones,
		       COALESCE(AVG(pc.porcentaje_ganancia), 0)     AS promedio
		FROM precios_combinaciones pc
		JOIN combinaciones c ON c.id = pc.combinacion_id
		WHERE pc.activo = TRUE AND c.activo = TRUE`).Scan(&row).Error
	if err != nil {
		return 0, decimal.Zero, err
	}
	return row.Combinaciones, row.Promedio, nil
}
