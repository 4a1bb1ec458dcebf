package dto

import "github.com/google/uuid"

// GuardarEstampadoRequest is bound from JSON or from the non-file fields of a
// multipart form; the optional image upload travels separately.
type GuardarEstampadoRequest struct {
	Codigo      string  `json:"codigo" form:"codigo" validate:"required,min=1,max=50"`
	Descripcion *string `json:"descripcion" form:"descripcion"`
}

type EstampadoResponse struct {
	ID          uuid.UUID `json:"id"`
	Codigo      string    `json:"codigo"`
	Descripcion *string   `json:"descripcion,omitempty"`
	ImagenURL   *string   `json:"imagen_url,omitempty"`
	Activo      bool      `json:"activo"`
}
