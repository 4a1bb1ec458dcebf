package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPrecioRequest struct {
	CombinacionID uuid.UUID       `json:"combinacion_id" validate:"required"`
	Costo         decimal.Decimal `json:"costo"          validate:"min=0"`
	PrecioVenta   decimal.Decimal `json:"precio_venta"   validate:"min=0"`
}

type ActualizarPrecioRequest struct {
	Costo       decimal.Decimal `json:"costo"        validate:"min=0"`
	PrecioVenta decimal.Decimal `json:"precio_venta" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PrecioResponse struct {
	ID                 uuid.UUID       `json:"id"`
	CombinacionID      uuid.UUID       `json:"combinacion_id"`
	CombinacionNombre  string          `json:"combinacion_nombre,omitempty"`
	Costo              decimal.Decimal `json:"costo"`
	PrecioVenta        decimal.Decimal `json:"precio_venta"`
	MargenGanancia     decimal.Decimal `json:"margen_ganancia"`
	PorcentajeGanancia decimal.Decimal `json:"porcentaje_ganancia"`
	Activo             bool            `json:"activo"`
}

// DashboardResponse carries the aggregate business metrics. Every field is
// zero-valued (never null) when the underlying tables are empty; the figures
// are recomputed on every request.
type DashboardResponse struct {
	IngresosTotales  decimal.Decimal `json:"ingresos_totales"`
	CostosTotales    decimal.Decimal `json:"costos_totales"`
	GananciasTotales decimal.Decimal `json:"ganancias_totales"`
	TotalVentas      int64           `json:"total_ventas"`

	IngresosMes  decimal.Decimal `json:"ingresos_mes"`
	CostosMes    decimal.Decimal `json:"costos_mes"`
	GananciasMes decimal.Decimal `json:"ganancias_mes"`
	VentasMes    int64           `json:"ventas_mes"`

	TotalCombinaciones      int64           `json:"total_combinaciones"`
	PromedioMargenGanancia  decimal.Decimal `json:"promedio_margen_ganancia"`
}
