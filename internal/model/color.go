package model

import (
	"time"

	"github.com/google/uuid"
)

// Color is a catalog entry for garment base colors.
type Color struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null;index"`
	CodigoHex *string   `gorm:"size:7"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Color) TableName() string { return "colores" }
