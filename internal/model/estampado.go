package model

import (
	"time"

	"github.com/google/uuid"
)

// Estampado is a print design identified by a short code, optionally backed
// by a reference image stored under the uploads directory.
type Estampado struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo      string    `gorm:"not null;index"`
	Descripcion *string
	ImagenURL   *string `gorm:"column:imagen_url"`
	Activo      bool    `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Estampado) TableName() string { return "estampados" }
