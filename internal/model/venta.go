package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is a sale header. Total, CostoTotal and GananciaTotal are derived
// from the detalle rows at write time and stored denormalized; any edit of
// the items rewrites them in the same transaction. Ventas are hard-deleted,
// unlike catalog entities.
type Venta struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FechaVenta    time.Time  `gorm:"type:date;not null;index"`
	Cliente       string     `gorm:"not null"`
	MetodoPago    string     `gorm:"not null;default:'efectivo'"`
	EstadoVenta   string     `gorm:"not null;default:'pagado'"` // pagado | pendiente | cancelado
	FechaPago     *time.Time `gorm:"type:date"`
	Observaciones *string
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CostoTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GananciaTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Detalles []DetalleVenta `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// DetalleVenta is one line item: a quantity of one combination at one size
// and unit price. Subtotal = Cantidad × PrecioUnitario, fixed at write time.
type DetalleVenta struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CombinacionID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Talla          string          `gorm:"not null;default:'M'"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Combinacion *Combinacion `gorm:"foreignKey:CombinacionID"`
}

func (DetalleVenta) TableName() string { return "detalle_venta" }
