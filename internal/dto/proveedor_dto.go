package dto

import "github.com/google/uuid"

type GuardarProveedorRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=150"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	RUC       *string `json:"ruc"`
}

type ProveedorResponse struct {
	ID        uuid.UUID `json:"id"`
	Nombre    string    `json:"nombre"`
	Direccion *string   `json:"direccion,omitempty"`
	Telefono  *string   `json:"telefono,omitempty"`
	Email     *string   `json:"email,omitempty"`
	RUC       *string   `json:"ruc,omitempty"`
	Activo    bool      `json:"activo"`
}
