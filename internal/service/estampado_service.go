package service

import (
	"context"
	"errors"
	"fmt"

	"arkos/internal/dto"
	"arkos/internal/model"
	"arkos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EstampadoService manages the print-design catalog. The optional image is
// uploaded by the handler before the service runs; imagenURL carries the
// stored relative URL, or nil when no file accompanied the request.
type EstampadoService interface {
	Crear(ctx context.Context, req dto.GuardarEstampadoRequest, imagenURL *string) (dto.EstampadoResponse, error)
	Listar(ctx context.Context) ([]dto.EstampadoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.EstampadoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarEstampadoRequest, imagenURL *string) (dto.EstampadoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type estampadoService struct {
	repo repository.EstampadoRepository
}

func NewEstampadoService(repo repository.EstampadoRepository) EstampadoService {
	return &estampadoService{repo: repo}
}

func mapEstampado(e model.Estampado) dto.EstampadoResponse {
	return dto.EstampadoResponse{
		ID:          e.ID,
		Codigo:      e.Codigo,
		Descripcion: e.Descripcion,
		ImagenURL:   e.ImagenURL,
		Activo:      e.Activo,
	}
}

func (s *estampadoService) Crear(ctx context.Context, req dto.GuardarEstampadoRequest, imagenURL *string) (dto.EstampadoResponse, error) {
	e := &model.Estampado{
		Codigo:      req.Codigo,
		Descripcion: req.Descripcion,
		ImagenURL:   imagenURL,
		Activo:      true,
	}
	if err := s.repo.Crear(ctx, e); err != nil {
		return dto.EstampadoResponse{}, err
	}
	return mapEstampado(*e), nil
}

func (s *estampadoService) Listar(ctx context.Context) ([]dto.EstampadoResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.EstampadoResponse, 0, len(list))
	for _, e := range list {
		result = append(result, mapEstampado(e))
	}
	return result, nil
}

func (s *estampadoService) Obtener(ctx context.Context, id uuid.UUID) (dto.EstampadoResponse, error) {
	e, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EstampadoResponse{}, fmt.Errorf("%w: estampado", ErrNoEncontrado)
		}
		return dto.EstampadoResponse{}, err
	}
	return mapEstampado(*e), nil
}

func (s *estampadoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarEstampadoRequest, imagenURL *string) (dto.EstampadoResponse, error) {
	e, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EstampadoResponse{}, fmt.Errorf("%w: estampado", ErrNoEncontrado)
		}
		return dto.EstampadoResponse{}, err
	}

	e.Codigo = req.Codigo
	e.Descripcion = req.Descripcion
	// A new upload replaces the reference image; without one the current
	// image is kept.
	if imagenURL != nil {
		e.ImagenURL = imagenURL
	}
	if err := s.repo.Actualizar(ctx, e); err != nil {
		return dto.EstampadoResponse{}, err
	}
	return mapEstampado(*e), nil
}

func (s *estampadoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	existia, err := s.repo.Desactivar(ctx, id)
	if err != nil {
		return err
	}
	if !existia {
		return fmt.Errorf("%w: estampado", ErrNoEncontrado)
	}
	return nil
}
