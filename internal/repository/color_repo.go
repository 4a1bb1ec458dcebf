package repository

import (
	"context"

	"arkos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ColorRepository defines CRUD operations for the color catalog. Reads only
// see active rows; soft-deleted rows stay in storage with activo=false.
type ColorRepository interface {
	Crear(ctx context.Context, c *model.Color) error
	Listar(ctx context.Context) ([]model.Color, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Color, error)
	Actualizar(ctx context.Context, c *model.Color) error
	Desactivar(ctx context.Context, id uuid.UUID) (bool, error)
}

type colorRepository struct{ db *gorm.DB }

func NewColorRepository(db *gorm.DB) ColorRepository {
	return &colorRepository{db: db}
}

func (r *colorRepository) Crear(ctx context.Context, c *model.Color) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *colorRepository) Listar(ctx context.Context) ([]model.Color, error) {
	var list []model.Color
	err := r.db.WithContext(ctx).Where("activo = ?", true).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *colorRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Color, error) {
	var c model.Color
	err := r.db.WithContext(ctx).First(&c, "id = ? AND activo = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *colorRepository) Actualizar(ctx context.Context, c *model.Color) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Desactivar flips the activo flag. The bool result reports whether a row
// with that id existed at all.
func (r *colorRepository) Desactivar(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Color{}).Where("id = ?", id).Update("activo", false)
	return res.RowsAffected > 0, res.Error
}
