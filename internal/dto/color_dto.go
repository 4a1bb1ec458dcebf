package dto

import "github.com/google/uuid"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type GuardarColorRequest struct {
	Nombre    string  `json:"nombre"     validate:"required,min=2,max=100"`
	CodigoHex *string `json:"codigo_hex" validate:"omitempty,hexcolor"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type ColorResponse struct {
	ID        uuid.UUID `json:"id"`
	Nombre    string    `json:"nombre"`
	CodigoHex *string   `json:"codigo_hex,omitempty"`
	Activo    bool      `json:"activo"`
}
