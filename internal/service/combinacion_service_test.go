package service_test

import (
	"context"
	"testing"

	"arkos/internal/dto"
	"arkos/internal/model"
	"arkos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedColor(repo *stubCombinacionRepo, nombre string) uuid.UUID {
	id := uuid.New()
	repo.catalogoColores[id] = model.Color{ID: id, Nombre: nombre, Activo: true}
	return id
}

func seedTela(repo *stubCombinacionRepo, nombre string) uuid.UUID {
	id := uuid.New()
	repo.catalogoTelas[id] = model.TipoTela{ID: id, Nombre: nombre, Activo: true}
	return id
}

func seedEstampadoCatalogo(repo *stubCombinacionRepo, codigo string) uuid.UUID {
	id := uuid.New()
	repo.catalogoEstampados[id] = model.Estampado{ID: id, Codigo: codigo, Activo: true}
	return id
}

func TestCombinacionCrearVinculaRelacionesSinDuplicados(t *testing.T) {
	repo := newStubCombinacionRepo()
	svc := service.NewCombinacionService(repo)

	rojo := seedColor(repo, "Rojo")
	azul := seedColor(repo, "Azul")
	algodon := seedTela(repo, "Algodón")
	calavera := seedEstampadoCatalogo(repo, "EST-001")

	resp, err := svc.Crear(context.Background(), dto.GuardarCombinacionRequest{
		Nombre:   "Polo clásico",
		ColorIDs: []uuid.UUID{rojo, azul, rojo}, // repeated on purpose
		TelaIDs:  []uuid.UUID{algodon},
		Estampados: []dto.EstampadoColocadoRequest{
			{EstampadoID: calavera, Medida: "20cm", Ubicacion: "pecho"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Polo clásico", resp.Nombre)
	assert.Len(t, resp.ColorIDs, 2)
	assert.ElementsMatch(t, []string{"Rojo", "Azul"}, resp.Colores)
	assert.Equal(t, []string{"Algodón"}, resp.Telas)
	require.Len(t, resp.Estampados, 1)
	assert.Equal(t, "EST-001", resp.Estampados[0].Codigo)
	assert.Equal(t, "pecho", resp.Estampados[0].Ubicacion)
}

func TestCombinacionCrearSinNombre(t *testing.T) {
	svc := service.NewCombinacionService(newStubCombinacionRepo())

	_, err := svc.Crear(context.Background(), dto.GuardarCombinacionRequest{})
	assert.ErrorIs(t, err, service.ErrValidacion)
}

func TestCombinacionCrearIndicePredeterminadoFueraDeRango(t *testing.T) {
	svc := service.NewCombinacionService(newStubCombinacionRepo())

	idx := 2
	_, err := svc.Crear(context.Background(), dto.GuardarCombinacionRequest{
		Nombre:                    "Polo",
		ImagenesNuevas:            []string{"/uploads/combinaciones/a.jpg"},
		ImagenPredeterminadaIndex: &idx,
	})
	assert.ErrorIs(t, err, service.ErrValidacion)
}

func TestCombinacionCrearMarcaImagenPredeterminada(t *testing.T) {
	repo := newStubCombinacionRepo()
	svc := service.NewCombinacionService(repo)

	idx := 1
	resp, err := svc.Crear(context.Background(), dto.GuardarCombinacionRequest{
		Nombre: "Polo",
		ImagenesNuevas: []string{
			"/uploads/combinaciones/a.jpg",
			"/uploads/combinaciones/b.jpg",
		},
		ImagenPredeterminadaIndex: &idx,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.ImagenPredeterminada)
	assert.Equal(t, "/uploads/combinaciones/b.jpg", resp.ImagenPredeterminada.ImagenURL)
	assert.Len(t, resp.Imagenes, 2)
}

func TestCombinacionSinPredeterminadaUsaPrimera(t *testing.T) {
	repo := newStubCombinacionRepo()
	svc := service.NewCombinacionService(repo)

	resp, err := svc.Crear(context.Background(), dto.GuardarCombinacionRequest{
		Nombre: "Polo",
		ImagenesNuevas: []string{
			"/uploads/combinaciones/a.jpg",
			"/uploads/combinaciones/b.jpg",
		},
	})
	require.NoError(t, err)

	require.NotNil(t, resp.ImagenPredeterminada)
	assert.Equal(t, "/uploads/combinaciones/a.jpg", resp.ImagenPredeterminada.ImagenURL)
	assert.False(t, resp.ImagenPredeterminada.EsPredeterminada)
}

func TestCombinacionActualizarReemplazaRelaciones(t *testing.T) {
	repo := newStubCombinacionRepo()
	svc := service.NewCombinacionService(repo)

	rojo := seedColor(repo, "Rojo")
	verde := seedColor(repo, "Verde")

	creado, err := svc.Crear(context.Background(), dto.GuardarCombinacionRequest{
		Nombre:         "Polo",
		ColorIDs:       []uuid.UUID{rojo},
		ImagenesNuevas: []string{"/uploads/combinaciones/a.jpg"},
	})
	require.NoError(t, err)

	actualizado, err := svc.Actualizar(context.Background(), creado.ID, dto.GuardarCombinacionRequest{
		Nombre:         "Polo v2",
		ColorIDs:       []uuid.UUID{verde},
		ImagenesNuevas: []string{"/uploads/combinaciones/b.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Polo v2", actualizado.Nombre)
	assert.Equal(t, []string{"Verde"}, actualizado.Colores)
	// Old image set is fully replaced, not appended to.
	require.Len(t, actualizado.Imagenes, 1)
	assert.Equal(t, "/uploads/combinaciones/b.jpg", actualizado.Imagenes[0].ImagenURL)
}

func TestCombinacionActualizarRetieneImagenesExistentes(t *testing.T) {
	repo := newStubCombinacionRepo()
	svc := service.NewCombinacionService(repo)

	creado, err := svc.Crear(context.Background(), dto.GuardarCombinacionRequest{
		Nombre: "Polo",
		ImagenesNuevas: []string{
			"/uploads/combinaciones/a.jpg",
			"/uploads/combinaciones/b.jpg",
		},
	})
	require.NoError(t, err)
	retenida := creado.Imagenes[1]

	actualizado, err := svc.Actualizar(context.Background(), creado.ID, dto.GuardarCombinacionRequest{
		Nombre: "Polo",
		ImagenesExistentes: []dto.ImagenExistenteRequest{
			{ID: retenida.ID, ImagenURL: retenida.ImagenURL},
		},
		ImagenPredeterminadaExistenteID: &retenida.ID,
		ImagenesNuevas:                  []string{"/uploads/combinaciones/c.jpg"},
	})
	require.NoError(t, err)

	assert.Len(t, actualizado.Imagenes, 2)
	require.NotNil(t, actualizado.ImagenPredeterminada)
	assert.Equal(t, retenida.ImagenURL, actualizado.ImagenPredeterminada.ImagenURL)
	assert.True(t, actualizado.ImagenPredeterminada.EsPredeterminada)
}

func TestCombinacionActualizarPredeterminadaNoRetenida(t *testing.T) {
	svc := service.NewCombinacionService(newStubCombinacionRepo())

	otra := uuid.New()
	_, err := svc.Actualizar(context.Background(), uuid.New(), dto.GuardarCombinacionRequest{
		Nombre:                          "Polo",
		ImagenPredeterminadaExistenteID: &otra,
	})
	assert.ErrorIs(t, err, service.ErrValidacion)
}

func TestCombinacionActualizarNoExistente(t *testing.T) {
	svc := service.NewCombinacionService(newStubCombinacionRepo())

	_, err := svc.Actualizar(context.Background(), uuid.New(), dto.GuardarCombinacionRequest{Nombre: "Polo"})
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestCombinacionDesactivar(t *testing.T) {
	repo := newStubCombinacionRepo()
	svc := service.NewCombinacionService(repo)

	creado, err := svc.Crear(context.Background(), dto.GuardarCombinacionRequest{Nombre: "Polo"})
	require.NoError(t, err)

	require.NoError(t, svc.Desactivar(context.Background(), creado.ID))

	_, err = svc.Obtener(context.Background(), creado.ID)
	assert.ErrorIs(t, err, service.ErrNoEncontrado)

	assert.ErrorIs(t, svc.Desactivar(context.Background(), uuid.New()), service.ErrNoEncontrado)
}
