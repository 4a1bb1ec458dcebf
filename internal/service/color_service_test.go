package service_test

import (
	"context"
	"testing"

	"arkos/internal/dto"
	"arkos/internal/model"
	"arkos/internal/repository"
	"arkos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Representative catalog tests; telas, proveedores and estampados share the
// same soft-delete CRUD shape.

type stubColorRepo struct {
	colores map[uuid.UUID]*model.Color
}

func newStubColorRepo() *stubColorRepo {
	return &stubColorRepo{colores: make(map[uuid.UUID]*model.Color)}
}

func (r *stubColorRepo) Crear(_ context.Context, c *model.Color) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.colores[c.ID] = c
	return nil
}

func (r *stubColorRepo) Listar(_ context.Context) ([]model.Color, error) {
	var list []model.Color
	for _, c := range r.colores {
		if c.Activo {
			list = append(list, *c)
		}
	}
	return list, nil
}

func (r *stubColorRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Color, error) {
	c, ok := r.colores[id]
	if !ok || !c.Activo {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubColorRepo) Actualizar(_ context.Context, c *model.Color) error {
	r.colores[c.ID] = c
	return nil
}

func (r *stubColorRepo) Desactivar(_ context.Context, id uuid.UUID) (bool, error) {
	c, ok := r.colores[id]
	if !ok {
		return false, nil
	}
	c.Activo = false
	return true, nil
}

var _ repository.ColorRepository = (*stubColorRepo)(nil)

func TestColorCrearYObtener(t *testing.T) {
	svc := service.NewColorService(newStubColorRepo())

	hex := "#FF0000"
	creado, err := svc.Crear(context.Background(), dto.GuardarColorRequest{Nombre: "Rojo", CodigoHex: &hex})
	require.NoError(t, err)
	assert.True(t, creado.Activo)

	obtenido, err := svc.Obtener(context.Background(), creado.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rojo", obtenido.Nombre)
	require.NotNil(t, obtenido.CodigoHex)
	assert.Equal(t, "#FF0000", *obtenido.CodigoHex)
}

func TestColorActualizarNoExistente(t *testing.T) {
	svc := service.NewColorService(newStubColorRepo())

	_, err := svc.Actualizar(context.Background(), uuid.New(), dto.GuardarColorRequest{Nombre: "Azul"})
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestColorDesactivadoDesapareceDeLecturas(t *testing.T) {
	repo := newStubColorRepo()
	svc := service.NewColorService(repo)

	creado, err := svc.Crear(context.Background(), dto.GuardarColorRequest{Nombre: "Rojo"})
	require.NoError(t, err)

	require.NoError(t, svc.Desactivar(context.Background(), creado.ID))

	_, err = svc.Obtener(context.Background(), creado.ID)
	assert.ErrorIs(t, err, service.ErrNoEncontrado)

	lista, err := svc.Listar(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lista)

	// The row survives as inactive, it is not deleted.
	assert.Contains(t, repo.colores, creado.ID)
	assert.False(t, repo.colores[creado.ID].Activo)
}

func TestColorDesactivarNoExistente(t *testing.T) {
	svc := service.NewColorService(newStubColorRepo())
	assert.ErrorIs(t, svc.Desactivar(context.Background(), uuid.New()), service.ErrNoEncontrado)
}
