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

type ProveedorService interface {
	Crear(ctx context.Context, req dto.GuardarProveedorRequest) (dto.ProveedorResponse, error)
	Listar(ctx context.Context) ([]dto.ProveedorResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarProveedorRequest) (dto.ProveedorResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func mapProveedor(p model.Proveedor) dto.ProveedorResponse {
	return dto.ProveedorResponse{
		ID:        p.ID,
		Nombre:    p.Nombre,
		Direccion: p.Direccion,
		Telefono:  p.Telefono,
		Email:     p.Email,
		RUC:       p.RUC,
		Activo:    p.Activo,
	}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.GuardarProveedorRequest) (dto.ProveedorResponse, error) {
	p := &model.Proveedor{
		Nombre:    req.Nombre,
		Direccion: req.Direccion,
		Telefono:  req.Telefono,
		Email:     req.Email,
		RUC:       req.RUC,
		Activo:    true,
	}
	if err := s.repo.Crear(ctx, p); err != nil {
		return dto.ProveedorResponse{}, err
	}
	return mapProveedor(*p), nil
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		result = append(result, mapProveedor(p))
	}
	return result, nil
}

func (s *proveedorService) Obtener(ctx context.Context, id uuid.UUID) (dto.ProveedorResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProveedorResponse{}, fmt.Errorf("%w: proveedor", ErrNoEncontrado)
		}
		return dto.ProveedorResponse{}, err
	}
	return mapProveedor(*p), nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarProveedorRequest) (dto.ProveedorResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProveedorResponse{}, fmt.Errorf("%w: proveedor", ErrNoEncontrado)
		}
		return dto.ProveedorResponse{}, err
	}

	p.Nombre = req.Nombre
	p.Direccion = req.Direccion
	p.Telefono = req.Telefono
	p.Email = req.Email
	p.RUC = req.RUC
	if err := s.repo.Actualizar(ctx, p); err != nil {
		return dto.ProveedorResponse{}, err
	}
	return mapProveedor(*p), nil
}

func (s *proveedorService) Desactivar(ctx context.Context, id uuid.UUID) error {
	existia, err := s.repo.Desactivar(ctx, id)
	if err != nil {
		return err
	}
	if !existia {
		return fmt.Errorf("%w: proveedor", ErrNoEncontrado)
	}
	return nil
}
