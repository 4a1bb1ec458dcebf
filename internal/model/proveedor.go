package model

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor represents a fabric/garment supplier with commercial data.
type Proveedor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null;index"`
	Direccion *string
	Telefono  *string
	Email     *string
	RUC       *string `gorm:"column:ruc"`
	Activo    bool    `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Proveedor) TableName() string { return "proveedores" }
