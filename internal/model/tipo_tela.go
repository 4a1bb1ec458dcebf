package model

import (
	"time"

	"github.com/google/uuid"
)

// TipoTela is a catalog entry for fabric types (algodón, pique, etc.).
type TipoTela struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null;index"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TipoTela) TableName() string { return "tipos_tela" }
