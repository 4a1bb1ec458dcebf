package repository

import (
	"context"

	"arkos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TelaRepository interface {
	Crear(ctx context.Context, t *model.TipoTela) error
	Listar(ctx context.Context) ([]model.TipoTela, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.TipoTela, error)
	Actualizar(ctx context.Context, t *model.TipoTela) error
	Desactivar(ctx context.Context, id uuid.UUID) (bool, error)
}

type telaRepository struct{ db *gorm.DB }

func NewTelaRepository(db *gorm.DB) TelaRepository {
	return &telaRepository{db: db}
}

func (r *telaRepository) Crear(ctx context.Context, t *model.TipoTela) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *telaRepository) Listar(ctx context.Context) ([]model.TipoTela, error) {
	var list []model.TipoTela
	err := r.db.WithContext(ctx).Where("activo = ?", true).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *telaRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.TipoTela, error) {
	var t model.TipoTela
	err := r.db.WithContext(ctx).First(&t, "id = ? AND activo = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *telaRepository) Actualizar(ctx context.Context, t *model.TipoTela) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *telaRepository) Desactivar(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.TipoTela{}).Where("id = ?", id).Update("activo", false)
	return res.RowsAffected > 0, res.Error
}
