package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Precio is the cost / sale-price pair of a combination. Only one row per
// combination should be active at a time; the guard is a pre-check query in
// the service, not a DB constraint (see DESIGN.md).
type Precio struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CombinacionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Costo         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioVenta   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// MargenGanancia = PrecioVenta - Costo; PorcentajeGanancia =
	// MargenGanancia / PrecioVenta * 100 (0 when PrecioVenta is 0).
	// Both are derived at write time and stored.
	MargenGanancia     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PorcentajeGanancia decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Activo             bool            `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Combinacion *Combinacion `gorm:"foreignKey:CombinacionID"`
}

func (Precio) TableName() string { return "precios_combinaciones" }
