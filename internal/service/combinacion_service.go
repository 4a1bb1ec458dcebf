package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"arkos/internal/dto"
	"arkos/internal/model"
	"arkos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CombinacionService owns the combination aggregate: the header plus its
// color/fabric/supplier links, print placements and images. Every write
// replaces the full relation set inside one transaction — on failure nothing
// is committed (§ delete-all-then-reinsert, no diffing).
type CombinacionService interface {
	Listar(ctx context.Context) ([]dto.CombinacionResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.CombinacionResponse, error)
	Crear(ctx context.Context, req dto.GuardarCombinacionRequest) (dto.CombinacionResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarCombinacionRequest) (dto.CombinacionResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type combinacionService struct {
	repo repository.CombinacionRepository
}

func NewCombinacionService(repo repository.CombinacionRepository) CombinacionService {
	return &combinacionService{repo: repo}
}

// ─── Reads ───────────────────────────────────────────────────────────────────

func (s *combinacionService) Listar(ctx context.Context) ([]dto.CombinacionResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CombinacionResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCombinacion(c))
	}
	return result, nil
}

func (s *combinacionService) Obtener(ctx context.Context, id uuid.UUID) (dto.CombinacionResponse, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CombinacionResponse{}, fmt.Errorf("%w: combinación", ErrNoEncontrado)
		}
		return dto.CombinacionResponse{}, err
	}
	return mapCombinacion(*c), nil
}

// ─── Writes ──────────────────────────────────────────────────────────────────

func (s *combinacionService) Crear(ctx context.Context, req dto.GuardarCombinacionRequest) (dto.CombinacionResponse, error) {
	if req.Nombre == "" {
		return dto.CombinacionResponse{}, fmt.Errorf("%w: nombre es obligatorio", ErrValidacion)
	}
	if err := validarPredeterminada(req); err != nil {
		return dto.CombinacionResponse{}, err
	}

	c := &model.Combinacion{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Crear(ctx, tx, c); err != nil {
			return err
		}
		if err := s.vincular(ctx, tx, c.ID, req); err != nil {
			return err
		}
		return s.repo.CrearImagenes(ctx, tx, imagenesDe(c.ID, req))
	})
	if txErr != nil {
		return dto.CombinacionResponse{}, txErr
	}

	return s.Obtener(ctx, c.ID)
}

func (s *combinacionService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarCombinacionRequest) (dto.CombinacionResponse, error) {
	if req.Nombre == "" {
		return dto.CombinacionResponse{}, fmt.Errorf("%w: nombre es obligatorio", ErrValidacion)
	}
	if err := validarPredeterminada(req); err != nil {
		return dto.CombinacionResponse{}, err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		existia, err := s.repo.ActualizarCabecera(ctx, tx, id, req.Nombre, req.Descripcion)
		if err != nil {
			return err
		}
		if !existia {
			return fmt.Errorf("%w: combinación", ErrNoEncontrado)
		}

		// Replace every relation set wholesale.
		if err := s.repo.BorrarRelaciones(ctx, tx, id); err != nil {
			return err
		}
		if err := s.vincular(ctx, tx, id, req); err != nil {
			return err
		}

		if err := s.repo.BorrarImagenes(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.CrearImagenes(ctx, tx, imagenesDe(id, req))
	})
	if txErr != nil {
		return dto.CombinacionResponse{}, txErr
	}

	return s.Obtener(ctx, id)
}

func (s *combinacionService) Desactivar(ctx context.Context, id uuid.UUID) error {
	existia, err := s.repo.Desactivar(ctx, id)
	if err != nil {
		return err
	}
	if !existia {
		return fmt.Errorf("%w: combinación", ErrNoEncontrado)
	}
	return nil
}

// vincular writes the join rows and print placements for one combination.
// Ids are deduplicated so the persisted row count matches the unique set.
func (s *combinacionService) vincular(ctx context.Context, tx *gorm.DB, id uuid.UUID, req dto.GuardarCombinacionRequest) error {
	if err := s.repo.VincularColores(ctx, tx, id, dedupe(req.ColorIDs)); err != nil {
		return err
	}
	if err := s.repo.VincularTelas(ctx, tx, id, dedupe(req.TelaIDs)); err != nil {
		return err
	}
	if err := s.repo.VincularProveedores(ctx, tx, id, dedupe(req.ProveedorIDs)); err != nil {
		return err
	}

	estampados := make([]model.CombinacionEstampado, 0, len(req.Estampados))
	for _, e := range req.Estampados {
		estampados = append(estampados, model.CombinacionEstampado{
			CombinacionID: id,
			EstampadoID:   e.EstampadoID,
			Medida:        e.Medida,
			Ubicacion:     e.Ubicacion,
		})
	}
	return s.repo.CrearEstampados(ctx, tx, estampados)
}

// validarPredeterminada rejects default-image declarations that cannot
// resolve: an index outside the new-uploads range, a retained-image id that
// is not being retained, or a default declared in both groups at once.
func validarPredeterminada(req dto.GuardarCombinacionRequest) error {
	if req.ImagenPredeterminadaIndex != nil {
		idx := *req.ImagenPredeterminadaIndex
		if idx < 0 || idx >= len(req.ImagenesNuevas) {
			return fmt.Errorf("%w: índice de imagen predeterminada fuera de rango", ErrValidacion)
		}
	}
	if req.ImagenPredeterminadaExistenteID != nil {
		if req.ImagenPredeterminadaIndex != nil {
			return fmt.Errorf("%w: la imagen predeterminada debe declararse en un solo grupo", ErrValidacion)
		}
		found := false
		for _, img := range req.ImagenesExistentes {
			if img.ID == *req.ImagenPredeterminadaExistenteID {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: la imagen predeterminada no está entre las imágenes retenidas", ErrValidacion)
		}
	}
	return nil
}

// imagenesDe builds the full image row set: retained images first (original
// insertion order), then the new uploads, with the default flag resolved
// against whichever group declared it. When neither did, no row is flagged
// and readers fall back to the first image.
func imagenesDe(id uuid.UUID, req dto.GuardarCombinacionRequest) []model.CombinacionImagen {
	rows := make([]model.CombinacionImagen, 0, len(req.ImagenesExistentes)+len(req.ImagenesNuevas))
	for _, img := range req.ImagenesExistentes {
		rows = append(rows, model.CombinacionImagen{
			CombinacionID:    id,
			ImagenURL:        img.ImagenURL,
			EsPredeterminada: req.ImagenPredeterminadaExistenteID != nil && img.ID == *req.ImagenPredeterminadaExistenteID,
		})
	}
	for i, url := range req.ImagenesNuevas {
		rows = append(rows, model.CombinacionImagen{
			CombinacionID:    id,
			ImagenURL:        url,
			EsPredeterminada: req.ImagenPredeterminadaIndex != nil && *req.ImagenPredeterminadaIndex == i,
		})
	}
	return rows
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ─── Mapping ─────────────────────────────────────────────────────────────────

func mapCombinacion(c model.Combinacion) dto.CombinacionResponse {
	resp := dto.CombinacionResponse{
		ID:           c.ID,
		Nombre:       c.Nombre,
		Descripcion:  c.Descripcion,
		Activo:       c.Activo,
		ColorIDs:     make([]uuid.UUID, 0, len(c.Colores)),
		Colores:      make([]string, 0, len(c.Colores)),
		TelaIDs:      make([]uuid.UUID, 0, len(c.Telas)),
		Telas:        make([]string, 0, len(c.Telas)),
		ProveedorIDs: make([]uuid.UUID, 0, len(c.Proveedores)),
		Proveedores:  make([]string, 0, len(c.Proveedores)),
		Estampados:   make([]dto.EstampadoColocadoResponse, 0, len(c.Estampados)),
		Imagenes:     make([]dto.ImagenResponse, 0, len(c.Imagenes)),
		CreatedAt:    c.CreatedAt.UTC().Format(time.RFC3339),
	}

	for _, col := range c.Colores {
		resp.ColorIDs = append(resp.ColorIDs, col.ID)
		resp.Colores = append(resp.Colores, col.Nombre)
	}
	for _, t := range c.Telas {
		resp.TelaIDs = append(resp.TelaIDs, t.ID)
		resp.Telas = append(resp.Telas, t.Nombre)
	}
	for _, p := range c.Proveedores {
		resp.ProveedorIDs = append(resp.ProveedorIDs, p.ID)
		resp.Proveedores = append(resp.Proveedores, p.Nombre)
	}

	for _, ce := range c.Estampados {
		// Placements pointing at soft-deleted designs stay in storage but
		// are not reported.
		if ce.Estampado == nil || !ce.Estampado.Activo {
			continue
		}
		resp.Estampados = append(resp.Estampados, dto.EstampadoColocadoResponse{
			EstampadoID: ce.EstampadoID,
			Codigo:      ce.Estampado.Codigo,
			Descripcion: ce.Estampado.Descripcion,
			ImagenURL:   ce.Estampado.ImagenURL,
			Medida:      ce.Medida,
			Ubicacion:   ce.Ubicacion,
		})
	}

	if c.Precio != nil {
		precio := mapPrecio(*c.Precio)
		resp.Precio = &precio
	}

	for _, img := range c.Imagenes {
		resp.Imagenes = append(resp.Imagenes, dto.ImagenResponse{
			ID:               img.ID,
			ImagenURL:        img.ImagenURL,
			EsPredeterminada: img.EsPredeterminada,
		})
	}
	resp.ImagenPredeterminada = imagenPredeterminada(resp.Imagenes)

	return resp
}

// imagenPredeterminada picks the flagged image, falling back to the first by
// insertion order when none is flagged.
func imagenPredeterminada(imagenes []dto.ImagenResponse) *dto.ImagenResponse {
	for i := range imagenes {
		if imagenes[i].EsPredeterminada {
			return &imagenes[i]
		}
	}
	if len(imagenes) > 0 {
		return &imagenes[0]
	}
	return nil
}
