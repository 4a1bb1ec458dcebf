package repository

import (
	"context"

	"arkos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CombinacionRepository persists the combination aggregate. The write methods
// taking a tx argument participate in the service-owned transaction; passing
// nil falls back to the repository's own connection (unit test mode).
type CombinacionRepository interface {
	DB() *gorm.DB

	Listar(ctx context.Context) ([]model.Combinacion, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Combinacion, error)

	Crear(ctx context.Context, tx *gorm.DB, c *model.Combinacion) error
	ActualizarCabecera(ctx context.Context, tx *gorm.DB, id uuid.UUID, nombre string, descripcion *string) (bool, error)
	Desactivar(ctx context.Context, id uuid.UUID) (bool, error)

	BorrarRelaciones(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	VincularColores(ctx context.Context, tx *gorm.DB, id uuid.UUID, colorIDs []uuid.UUID) error
	VincularTelas(ctx context.Context, tx *gorm.DB, id uuid.UUID, telaIDs []uuid.UUID) error
	VincularProveedores(ctx context.Context, tx *gorm.DB, id uuid.UUID, proveedorIDs []uuid.UUID) error
	CrearEstampados(ctx context.Context, tx *gorm.DB, estampados []model.CombinacionEstampado) error

	BorrarImagenes(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	CrearImagenes(ctx context.Context, tx *gorm.DB, imagenes []model.CombinacionImagen) error
}

type combinacionRepository struct{ db *gorm.DB }

func NewCombinacionRepository(db *gorm.DB) CombinacionRepository {
	return &combinacionRepository{db: db}
}

func (r *combinacionRepository) DB() *gorm.DB { return r.db }

func (r *combinacionRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// preloaded applies every association the read path needs. Related catalog
// rows and estampados are filtered to active ones; images come back
// default-first in insertion order so readers can fall back to the first.
func (r *combinacionRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Colores", "activo = ?", true).
		Preload("Telas", "activo = ?", true).
		Preload("Proveedores", "activo = ?", true).
		Preload("Estampados.Estampado").
		Preload("Precio", "activo = ?", true).
		Preload("Imagenes", func(db *gorm.DB) *gorm.DB {
			return db.Order("es_predeterminada DESC, created_at ASC")
		})
}

func (r *combinacionRepository) Listar(ctx context.Context) ([]model.Combinacion, error) {
	var list []model.Combinacion
	err := r.preloaded(ctx).Where("activo = ?", true).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *combinacionRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Combinacion, error) {
	var c model.Combinacion
	err := r.preloaded(ctx).First(&c, "id = ? AND activo = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *combinacionRepository) Crear(ctx context.Context, tx *gorm.DB, c *model.Combinacion) error {
	// Associations are written explicitly by the service inside the same
	// transaction; only the header row is created here.
	return r.conn(tx).WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *combinacionRepository) ActualizarCabecera(ctx context.Context, tx *gorm.DB, id uuid.UUID, nombre string, descripcion *string) (bool, error) {
	res := r.conn(tx).WithContext(ctx).Model(&model.Combinacion{}).
		Where("id = ? AND activo = ?", id, true).
		Updates(map[string]interface{}{"nombre": nombre, "descripcion": descripcion})
	return res.RowsAffected > 0, res.Error
}

func (r *combinacionRepository) Desactivar(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Combinacion{}).Where("id = ?", id).Update("activo", false)
	return res.RowsAffected > 0, res.Error
}

func (r *combinacionRepository) BorrarRelaciones(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	db := r.conn(tx).WithContext(ctx)
	if err := db.Where("combinacion_id = ?", id).Delete(&model.CombinacionColor{}).Error; err != nil {
		return err
	}
	if err := db.Where("combinacion_id = ?", id).Delete(&model.CombinacionTela{}).Error; err != nil {
		return err
	}
	if err := db.Where("combinacion_id = ?", id).Delete(&model.CombinacionProveedor{}).Error; err != nil {
		return err
	}
	return db.Where("combinacion_id = ?", id).Delete(&model.CombinacionEstampado{}).Error
}

func (r *combinacionRepository) VincularColores(ctx context.Context, tx *gorm.DB, id uuid.UUID, colorIDs []uuid.UUID) error {
	if len(colorIDs) == 0 {
		return nil
	}
	rows := make([]model.CombinacionColor, 0, len(colorIDs))
	for _, colorID := range colorIDs {
		rows = append(rows, model.CombinacionColor{CombinacionID: id, ColorID: colorID})
	}
	return r.conn(tx).WithContext(ctx).Create(&rows).Error
}

func (r *combinacionRepository) VincularTelas(ctx context.Context, tx *gorm.DB, id uuid.UUID, telaIDs []uuid.UUID) error {
	if len(telaIDs) == 0 {
		return nil
	}
	rows := make([]model.CombinacionTela, 0, len(telaIDs))
	for _, telaID := range telaIDs {
		rows = append(rows, model.CombinacionTela{CombinacionID: id, TipoTelaID: telaID})
	}
	return r.conn(tx).WithContext(ctx).Create(&rows).Error
}

func (r *combinacionRepository) VincularProveedores(ctx context.Context, tx *gorm.DB, id uuid.UUID, proveedorIDs []uuid.UUID) error {
	if len(proveedorIDs) == 0 {
		return nil
	}
	rows := make([]model.CombinacionProveedor, 0, len(proveedorIDs))
	for _, proveedorID := range proveedorIDs {
		rows = append(rows, model.CombinacionProveedor{CombinacionID: id, ProveedorID: proveedorID})
	}
	return r.conn(tx).WithContext(ctx).Create(&rows).Error
}

func (r *combinacionRepository) CrearEstampados(ctx context.Context, tx *gorm.DB, estampados []model.CombinacionEstampado) error {
	if len(estampados) == 0 {
		return nil
	}
	return r.conn(tx).WithContext(ctx).Create(&estampados).Error
}

func (r *combinacionRepository) BorrarImagenes(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Where("combinacion_id = ?", id).Delete(&model.CombinacionImagen{}).Error
}

func (r *combinacionRepository) CrearImagenes(ctx context.Context, tx *gorm.DB, imagenes []model.CombinacionImagen) error {
	if len(imagenes) == 0 {
		return nil
	}
	return r.conn(tx).WithContext(ctx).Create(&imagenes).Error
}
