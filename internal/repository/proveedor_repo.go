package repository

import (
	"context"

	"arkos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProveedorRepository interface {
	Crear(ctx context.Context, p *model.Proveedor) error
	Listar(ctx context.Context) ([]model.Proveedor, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	Actualizar(ctx context.Context, p *model.Proveedor) error
	Desactivar(ctx context.Context, id uuid.UUID) (bool, error)
}

type proveedorRepository struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository {
	return &proveedorRepository{db: db}
}

func (r *proveedorRepository) Crear(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proveedorRepository) Listar(ctx context.Context) ([]model.Proveedor, error) {
	var list []model.Proveedor
	err := r.db.WithContext(ctx).Where("activo = ?", true).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *proveedorRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).First(&p, "id = ? AND activo = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proveedorRepository) Actualizar(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *proveedorRepository) Desactivar(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("id = ?", id).Update("activo", false)
	return res.RowsAffected > 0, res.Error
}
