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

// ColorService defines the catalog lifecycle for colors.
type ColorService interface {
	Crear(ctx context.Context, req dto.GuardarColorRequest) (dto.ColorResponse, error)
	Listar(ctx context.Context) ([]dto.ColorResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.ColorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarColorRequest) (dto.ColorResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type colorService struct {
	repo repository.ColorRepository
}

func NewColorService(repo repository.ColorRepository) ColorService {
	return &colorService{repo: repo}
}

func mapColor(c model.Color) dto.ColorResponse {
	return dto.ColorResponse{
		ID:        c.ID,
		Nombre:    c.Nombre,
		CodigoHex: c.CodigoHex,
		Activo:    c.Activo,
	}
}

func (s *colorService) Crear(ctx context.Context, req dto.GuardarColorRequest) (dto.ColorResponse, error) {
	c := &model.Color{
		Nombre:    req.Nombre,
		CodigoHex: req.CodigoHex,
		Activo:    true,
	}
	if err := s.repo.Crear(ctx, c); err != nil {
		return dto.ColorResponse{}, err
	}
	return mapColor(*c), nil
}

func (s *colorService) Listar(ctx context.Context) ([]dto.ColorResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ColorResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapColor(c))
	}
	return result, nil
}

func (s *colorService) Obtener(ctx context.Context, id uuid.UUID) (dto.ColorResponse, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ColorResponse{}, fmt.Errorf("%w: color", ErrNoEncontrado)
		}
		return dto.ColorResponse{}, err
	}
	return mapColor(*c), nil
}

func (s *colorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarColorRequest) (dto.ColorResponse, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ColorResponse{}, fmt.Errorf("%w: color", ErrNoEncontrado)
		}
		return dto.ColorResponse{}, err
	}

	c.Nombre = req.Nombre
	c.CodigoHex = req.CodigoHex
	if err := s.repo.Actualizar(ctx, c); err != nil {
		return dto.ColorResponse{}, err
	}
	return mapColor(*c), nil
}

func (s *colorService) Desactivar(ctx context.Context, id uuid.UUID) error {
	existia, err := s.repo.Desactivar(ctx, id)
	if err != nil {
		return err
	}
	if !existia {
		return fmt.Errorf("%w: color", ErrNoEncontrado)
	}
	return nil
}
