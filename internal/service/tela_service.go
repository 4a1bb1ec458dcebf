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

type TelaService interface {
	Crear(ctx context.Context, req dto.GuardarTelaRequest) (dto.TelaResponse, error)
	Listar(ctx context.Context) ([]dto.TelaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.TelaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarTelaRequest) (dto.TelaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type telaService struct {
	repo repository.TelaRepository
}

func NewTelaService(repo repository.TelaRepository) TelaService {
	return &telaService{repo: repo}
}

func mapTela(t model.TipoTela) dto.TelaResponse {
	return dto.TelaResponse{
		ID:          t.ID,
		Nombre:      t.Nombre,
		Descripcion: t.Descripcion,
		Activo:      t.Activo,
	}
}

func (s *telaService) Crear(ctx context.Context, req dto.GuardarTelaRequest) (dto.TelaResponse, error) {
	t := &model.TipoTela{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	if err := s.repo.Crear(ctx, t); err != nil {
		return dto.TelaResponse{}, err
	}
	return mapTela(*t), nil
}

func (s *telaService) Listar(ctx context.Context) ([]dto.TelaResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.TelaResponse, 0, len(list))
	for _, t := range list {
		result = append(result, mapTela(t))
	}
	return result, nil
}

func (s *telaService) Obtener(ctx context.Context, id uuid.UUID) (dto.TelaResponse, error) {
	t, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TelaResponse{}, fmt.Errorf("%w: tipo de tela", ErrNoEncontrado)
		}
		return dto.TelaResponse{}, err
	}
	return mapTela(*t), nil
}

func (s *telaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarTelaRequest) (dto.TelaResponse, error) {
	t, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TelaResponse{}, fmt.Errorf("%w: tipo de tela", ErrNoEncontrado)
		}
		return dto.TelaResponse{}, err
	}

	t.Nombre = req.Nombre
	t.Descripcion = req.Descripcion
	if err := s.repo.Actualizar(ctx, t); err != nil {
		return dto.TelaResponse{}, err
	}
	return mapTela(*t), nil
}

func (s *telaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	existia, err := s.repo.Desactivar(ctx, id)
	if err != nil {
		return err
	}
	if !existia {
		return fmt.Errorf("%w: tipo de tela", ErrNoEncontrado)
	}
	return nil
}
