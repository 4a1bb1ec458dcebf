package model

import (
	"time"

	"github.com/google/uuid"
)

// Combinacion is a sellable product: a named set of colors, fabrics,
// suppliers, print placements, images and (at most) one active price.
// Relation sets are replaced wholesale on every update — there is no
// incremental diffing of join rows.
type Combinacion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null;index"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Colores     []Color               `gorm:"many2many:combinacion_colores"`
	Telas       []TipoTela            `gorm:"many2many:combinacion_telas"`
	Proveedores []Proveedor           `gorm:"many2many:combinacion_proveedores"`
	Estampados  []CombinacionEstampado `gorm:"foreignKey:CombinacionID"`
	Imagenes    []CombinacionImagen    `gorm:"foreignKey:CombinacionID"`
	Precio      *Precio                `gorm:"foreignKey:CombinacionID"`
}

func (Combinacion) TableName() string { return "combinaciones" }

// CombinacionColor maps to the many2many join table so the write path can
// delete-all-then-reinsert rows explicitly inside a transaction.
type CombinacionColor struct {
	CombinacionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ColorID       uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (CombinacionColor) TableName() string { return "combinacion_colores" }

type CombinacionTela struct {
	CombinacionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TipoTelaID    uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (CombinacionTela) TableName() string { return "combinacion_telas" }

type CombinacionProveedor struct {
	CombinacionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProveedorID   uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (CombinacionProveedor) TableName() string { return "combinacion_proveedores" }

// CombinacionEstampado is a print placement: a print design applied to the
// combination at a given size and body location.
type CombinacionEstampado struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CombinacionID uuid.UUID `gorm:"type:uuid;not null;index"`
	EstampadoID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Medida        string    `gorm:"not null"`
	Ubicacion     string    `gorm:"not null"`

	Estampado *Estampado `gorm:"foreignKey:EstampadoID"`
}

func (CombinacionEstampado) TableName() string { return "combinacion_estampados" }

// CombinacionImagen is an uploaded product photo. At most one row per
// combination carries EsPredeterminada; when none does, readers fall back to
// the first image by insertion order.
type CombinacionImagen struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CombinacionID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ImagenURL        string    `gorm:"column:imagen_url;not null"`
	EsPredeterminada bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time
}

func (CombinacionImagen) TableName() string { return "combinacion_imagenes" }
