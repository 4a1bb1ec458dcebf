package repository

import (
	"context"

	"arkos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EstampadoRepository interface {
	Crear(ctx context.Context, e *model.Estampado) error
	Listar(ctx context.Context) ([]model.Estampado, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Estampado, error)
	Actualizar(ctx context.Context, e *model.Estampado) error
	Desactivar(ctx context.Context, id uuid.UUID) (bool, error)
}

type estampadoRepository struct{ db *gorm.DB }

func NewEstampadoRepository(db *gorm.DB) EstampadoRepository {
	return &estampadoRepository{db: db}
}

func (r *estampadoRepository) Crear(ctx context.Context, e *model.Estampado) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *estampadoRepository) Listar(ctx context.Context) ([]model.Estampado, error) {
	var list []model.Estampado
	err := r.db.WithContext(ctx).Where("activo = ?", true).Order("codigo asc").Find(&list).Error
	return list, err
}

func (r *estampadoRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Estampado, error) {
	var e model.Estampado
	err := r.db.WithContext(ctx).First(&e, "id = ? AND activo = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *estampadoRepository) Actualizar(ctx context.Context, e *model.Estampado) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *estampadoRepository) Desactivar(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Estampado{}).Where("id = ?", id).Update("activo", false)
	return res.RowsAffected > 0, res.Error
}
