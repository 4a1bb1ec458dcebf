package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	CombinacionID  uuid.UUID       `json:"combinacion_id" validate:"required"`
	Talla          string          `json:"talla"          validate:"omitempty,max=10"`
	Cantidad       int             `json:"cantidad"       validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
}

// GuardarVentaRequest is shared by POST (create) and PUT (replace-all-items
// update). A sale must carry at least one item.
type GuardarVentaRequest struct {
	FechaVenta    string             `json:"fecha_venta"  validate:"required,datetime=2006-01-02"`
	Cliente       string             `json:"cliente"      validate:"required,min=2,max=150"`
	MetodoPago    string             `json:"metodo_pago"  validate:"omitempty,oneof=efectivo transferencia tarjeta yape plin"`
	EstadoVenta   string             `json:"estado_venta" validate:"omitempty,oneof=pagado pendiente cancelado"`
	FechaPago     *string            `json:"fecha_pago"   validate:"omitempty,datetime=2006-01-02"`
	Observaciones *string            `json:"observaciones"`
	Items         []ItemVentaRequest `json:"items" validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleVentaResponse struct {
	ID                uuid.UUID       `json:"id"`
	CombinacionID     uuid.UUID       `json:"combinacion_id"`
	CombinacionNombre string          `json:"combinacion_nombre"`
	Talla             string          `json:"talla"`
	Cantidad          int             `json:"cantidad"`
	PrecioUnitario    decimal.Decimal `json:"precio_unitario"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	ImagenPredeterminada *ImagenResponse `json:"imagen_predeterminada"`
}

type VentaResponse struct {
	ID            uuid.UUID       `json:"id"`
	FechaVenta    string          `json:"fecha_venta"`
	Cliente       string          `json:"cliente"`
	MetodoPago    string          `json:"metodo_pago"`
	EstadoVenta   string          `json:"estado_venta"`
	FechaPago     *string         `json:"fecha_pago,omitempty"`
	Observaciones *string         `json:"observaciones,omitempty"`
	Total         decimal.Decimal `json:"total"`
	CostoTotal    decimal.Decimal `json:"costo_total"`
	GananciaTotal decimal.Decimal `json:"ganancia_total"`

	Detalles []DetalleVentaResponse `json:"detalles"`

	CreatedAt string `json:"created_at"`
}

// VentaListItem summarizes one sale for the list view: header totals plus the
// detalle rows grouped by combination and size.
type VentaListItem struct {
	ID             uuid.UUID       `json:"id"`
	FechaVenta     string          `json:"fecha_venta"`
	Cliente        string          `json:"cliente"`
	MetodoPago     string          `json:"metodo_pago"`
	EstadoVenta    string          `json:"estado_venta"`
	Total          decimal.Decimal `json:"total"`
	CostoTotal     decimal.Decimal `json:"costo_total"`
	GananciaTotal  decimal.Decimal `json:"ganancia_total"`
	TotalProductos int             `json:"total_productos"`

	Combinaciones []VentaCombinacionResumen `json:"combinaciones"`
}

// VentaCombinacionResumen groups a sale's line items by combination + talla.
type VentaCombinacionResumen struct {
	CombinacionID        uuid.UUID       `json:"combinacion_id"`
	CombinacionNombre    string          `json:"combinacion_nombre"`
	Talla                string          `json:"talla"`
	CantidadTotal        int             `json:"cantidad_total"`
	ImagenPredeterminada *ImagenResponse `json:"imagen_predeterminada"`
}
