package dto

import "github.com/google/uuid"

type GuardarTelaRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
}

type TelaResponse struct {
	ID          uuid.UUID `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion *string   `json:"descripcion,omitempty"`
	Activo      bool      `json:"activo"`
}
