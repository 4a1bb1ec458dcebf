package repository

import (
	"context"

	"arkos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResumenVentas is the aggregate row the dashboard reads from the ledger.
type ResumenVentas struct {
	Ingresos  decimal.Decimal
	Costos    decimal.Decimal
	Ganancias decimal.Decimal
	Ventas    int64
}

// VentaRepository persists sale headers and line items. Sales are
// hard-deleted; multi-row writes run on the tx handed in by the service.
type VentaRepository interface {
	DB() *gorm.DB

	Listar(ctx context.Context) ([]model.Venta, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Venta, error)

	Crear(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	ActualizarCabecera(ctx context.Context, tx *gorm.DB, v *model.Venta) (bool, error)
	ActualizarTotales(ctx context.Context, tx *gorm.DB, id uuid.UUID, total, costo, ganancia decimal.Decimal) error
	CrearDetalles(ctx context.Context, tx *gorm.DB, detalles []model.DetalleVenta) error
	BorrarDetalles(ctx context.Context, tx *gorm.DB, ventaID uuid.UUID) error
	Eliminar(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)

	ResumenTotal(ctx context.Context) (ResumenVentas, error)
	ResumenMesActual(ctx context.Context) (ResumenVentas, error)
}

type ventaRepository struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository {
	return &ventaRepository{db: db}
}

func (r *ventaRepository) DB() *gorm.DB { return r.db }

func (r *ventaRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *ventaRepository) Listar(ctx context.Context) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Preload("Detalles.Combinacion.Imagenes", func(db *gorm.DB) *gorm.DB {
			return db.Order("es_predeterminada DESC, created_at ASC")
		}).
		Preload("Detalles.Combinacion").
		Order("fecha_venta DESC, created_at DESC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Detalles.Combinacion.Imagenes", func(db *gorm.DB) *gorm.DB {
			return db.Order("es_predeterminada DESC, created_at ASC")
		}).
		Preload("Detalles.Combinacion").
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepository) Crear(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return r.conn(tx).WithContext(ctx).Omit("Detalles").Create(v).Error
}

func (r *ventaRepository) ActualizarCabecera(ctx context.Context, tx *gorm.DB, v *model.Venta) (bool, error) {
	res := r.conn(tx).WithContext(ctx).Model(&model.Venta{}).
		Where("id = ?", v.ID).
		Updates(map[string]interface{}{
			"fecha_venta":   v.FechaVenta,
			"cliente":       v.Cliente,
			"metodo_pago":   v.MetodoPago,
			"estado_venta":  v.EstadoVenta,
			"fecha_pago":    v.FechaPago,
			"observaciones": v.Observaciones,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *ventaRepository) ActualizarTotales(ctx context.Context, tx *gorm.DB, id uuid.UUID, total, costo, ganancia decimal.Decimal) error {
	return r.conn(tx).WithContext(ctx).Model(&model.Venta{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total":          total,
			"costo_total":    costo,
			"ganancia_total": ganancia,
		}).Error
}

func (r *ventaRepository) CrearDetalles(ctx context.Context, tx *gorm.DB, detalles []model.DetalleVenta) error {
	if len(detalles) == 0 {
		return nil
	}
	return r.conn(tx).WithContext(ctx).Create(&detalles).Error
}

func (r *ventaRepository) BorrarDetalles(ctx context.Context, tx *gorm.DB, ventaID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Where("venta_id = ?", ventaID).Delete(&model.DetalleVenta{}).Error
}

func (r *ventaRepository) Eliminar(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	res := r.conn(tx).WithContext(ctx).Delete(&model.Venta{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *ventaRepository) ResumenTotal(ctx context.Context) (ResumenVentas, error) {
	var row ResumenVentas
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0)          AS ingresos,
		       COALESCE(SUM(costo_total), 0)    AS costos,
		       COALESCE(SUM(ganancia_total), 0) AS ganancias,
		       COUNT(*)                         AS ventas
		FROM ventas`).Scan(&row).Error
	return row, err
}

func (r *ventaRepository) ResumenMesActual(ctx context.Context) (ResumenVentas, error) {
	var row ResumenVentas
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0)          AS ingresos,
		       COALESCE(SUM(costo_total), 0)    AS costos,
		       COALESCE(SUM(ganancia_total), 0) AS ganancias,
		       COUNT(*)                         AS ventas
		FROM ventas
		WHERE date_trunc('month', fecha_venta) = date_trunc('month', CURRENT_DATE)`).Scan(&row).Error
	return row, err
}
