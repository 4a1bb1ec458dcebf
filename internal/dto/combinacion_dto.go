package dto

import "github.com/google/uuid"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// EstampadoColocadoRequest is one print placement inside the `estampados`
// JSON field of the multipart form.
type EstampadoColocadoRequest struct {
	EstampadoID uuid.UUID `json:"estampado_id" validate:"required"`
	Medida      string    `json:"medida"       validate:"required,max=50"`
	Ubicacion   string    `json:"ubicacion"    validate:"required,max=100"`
}

// ImagenExistenteRequest identifies an already-stored image the client wants
// to keep through a combination update.
type ImagenExistenteRequest struct {
	ID        uuid.UUID `json:"id"`
	ImagenURL string    `json:"imagen_url" validate:"required"`
}

// GuardarCombinacionRequest is the assembled multipart payload for creating
// or replacing a combination. ImagenesNuevas holds the upload URLs in form
// order — the handler writes the files to disk before the service opens its
// transaction. The two default-image fields resolve against the new and the
// retained group respectively; at most one of them should be set.
type GuardarCombinacionRequest struct {
	Nombre       string                     `validate:"required,min=2,max=150"`
	Descripcion  *string                    `validate:"-"`
	ColorIDs     []uuid.UUID                `validate:"-"`
	TelaIDs      []uuid.UUID                `validate:"-"`
	ProveedorIDs []uuid.UUID                `validate:"-"`
	Estampados   []EstampadoColocadoRequest `validate:"omitempty,dive"`

	ImagenesNuevas            []string
	ImagenPredeterminadaIndex *int

	// Update only.
	ImagenesExistentes              []ImagenExistenteRequest `validate:"omitempty,dive"`
	ImagenPredeterminadaExistenteID *uuid.UUID
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EstampadoColocadoResponse struct {
	EstampadoID uuid.UUID `json:"estampado_id"`
	Codigo      string    `json:"codigo"`
	Descripcion *string   `json:"descripcion,omitempty"`
	ImagenURL   *string   `json:"imagen_url,omitempty"`
	Medida      string    `json:"medida"`
	Ubicacion   string    `json:"ubicacion"`
}

type ImagenResponse struct {
	ID               uuid.UUID `json:"id"`
	ImagenURL        string    `json:"imagen_url"`
	EsPredeterminada bool      `json:"es_predeterminada"`
}

type CombinacionResponse struct {
	ID          uuid.UUID `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion *string   `json:"descripcion,omitempty"`
	Activo      bool      `json:"activo"`

	ColorIDs     []uuid.UUID `json:"color_ids"`
	Colores      []string    `json:"colores"`
	TelaIDs      []uuid.UUID `json:"tela_ids"`
	Telas        []string    `json:"telas"`
	ProveedorIDs []uuid.UUID `json:"proveedor_ids"`
	Proveedores  []string    `json:"proveedores"`

	Estampados           []EstampadoColocadoResponse `json:"estampados"`
	Precio               *PrecioResponse             `json:"precio"`
	Imagenes             []ImagenResponse            `json:"imagenes"`
	ImagenPredeterminada *ImagenResponse             `json:"imagen_predeterminada"`

	CreatedAt string `json:"created_at"`
}
