//go:build integration

package e2e

// End-to-end tests against a real Postgres via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - catalog CRUD with soft delete
//   - combination create with relation sets
//   - price creation with derived margin, duplicate-active rejection
//   - sale with write-time totals, dashboard aggregation
//   - dashboard route not shadowed by /:id

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"arkos/internal/config"
	"arkos/internal/infra"
	"arkos/internal/router"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// assertDecimalEqual compares numerically: "130" and "130.00" are the same amount.
func assertDecimalEqual(t *testing.T, esperado, recibido string) {
	t.Helper()
	e, err := decimal.NewFromString(esperado)
	require.NoError(t, err)
	r, err := decimal.NewFromString(recibido)
	require.NoError(t, err)
	assert.True(t, e.Equal(r), "esperado %s, recibido %s", esperado, recibido)
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("arkos_test"),
		tcPostgres.WithUsername("arkos"),
		tcPostgres.WithPassword("arkos"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := &config.Config{
		Port:              8000,
		Env:               "test",
		DatabaseURL:       pgURL,
		RateLimitRequests: 10000,
		RateLimitWindowS:  60,
		UploadDir:         t.TempDir(),
		UploadMaxBytes:    60 * 1024 * 1024,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	storage := infra.NewStorage(cfg.UploadDir, cfg.UploadMaxBytes)

	srv := httptest.NewServer(router.New(cfg, db, storage))
	t.Cleanup(srv.Close)
	return srv
}

func crearColor(t *testing.T, srv *httptest.Server, nombre string) string {
	t.Helper()
	resp := do(t, srv, "POST", "/api/colores", jsonBody(t, map[string]any{"nombre": nombre}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &out)
	return out.ID
}

func crearCombinacion(t *testing.T, srv *httptest.Server, nombre string, colorIDs []string) string {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("nombre", nombre))
	ids, err := json.Marshal(colorIDs)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("color_ids", string(ids)))
	require.NoError(t, mw.Close())

	req, err := http.NewRequest("POST", srv.URL+"/api/combinaciones", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &out)
	return out.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CatalogoSoftDelete(t *testing.T) {
	srv := setupServer(t)

	id := crearColor(t, srv, "Rojo E2E")

	resp := do(t, srv, "GET", "/api/colores/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, "DELETE", "/api/colores/"+id, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, "GET", "/api/colores/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, "GET", "/api/colores", nil)
	var lista []map[string]any
	decodeJSON(t, resp, &lista)
	for _, c := range lista {
		assert.NotEqual(t, id, c["id"], "soft-deleted row must not be listed")
	}
}

func TestE2E_CombinacionConRelaciones(t *testing.T) {
	srv := setupServer(t)

	rojo := crearColor(t, srv, "Rojo")
	azul := crearColor(t, srv, "Azul")
	id := crearCombinacion(t, srv, "Polo clásico", []string{rojo, azul})

	resp := do(t, srv, "GET", "/api/combinaciones/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var combo struct {
		Nombre  string   `json:"nombre"`
		Colores []string `json:"colores"`
		Precio  any      `json:"precio"`
	}
	decodeJSON(t, resp, &combo)

	assert.Equal(t, "Polo clásico", combo.Nombre)
	assert.ElementsMatch(t, []string{"Rojo", "Azul"}, combo.Colores)
	assert.Nil(t, combo.Precio, "no active price yet")
}

func TestE2E_PrecioYVenta(t *testing.T) {
	srv := setupServer(t)

	id := crearCombinacion(t, srv, "Polo premium", nil)

	// Price with derived margin.
	resp := do(t, srv, "POST", "/api/precios-combinaciones", jsonBody(t, map[string]any{
		"combinacion_id": id,
		"costo":          "50",
		"precio_venta":   "130",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var precio struct {
		MargenGanancia     string `json:"margen_ganancia"`
		PorcentajeGanancia string `json:"porcentaje_ganancia"`
	}
	decodeJSON(t, resp, &precio)
	assertDecimalEqual(t, "80", precio.MargenGanancia)
	assertDecimalEqual(t, "61.54", precio.PorcentajeGanancia)

	// A second active price for the same combination is rejected.
	resp = do(t, srv, "POST", "/api/precios-combinaciones", jsonBody(t, map[string]any{
		"combinacion_id": id,
		"costo":          "60",
		"precio_venta":   "140",
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Sale snapshots the cost at write time.
	resp = do(t, srv, "POST", "/api/ventas", jsonBody(t, map[string]any{
		"fecha_venta": "2026-08-15",
		"cliente":     "María Torres",
		"items": []map[string]any{
			{"combinacion_id": id, "talla": "M", "cantidad": 2, "precio_unitario": "65"},
		},
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var venta struct {
		ID            string `json:"id"`
		Total         string `json:"total"`
		CostoTotal    string `json:"costo_total"`
		GananciaTotal string `json:"ganancia_total"`
	}
	decodeJSON(t, resp, &venta)
	assertDecimalEqual(t, "130", venta.Total)
	assertDecimalEqual(t, "100", venta.CostoTotal)
	assertDecimalEqual(t, "30", venta.GananciaTotal)

	// Receipt renders.
	resp = do(t, srv, "GET", fmt.Sprintf("/api/ventas/%s/recibo", venta.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	resp.Body.Close()
}

func TestE2E_DashboardNoShadowedPorID(t *testing.T) {
	srv := setupServer(t)

	resp := do(t, srv, "GET", "/api/precios-combinaciones/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dash struct {
		TotalVentas        int64  `json:"total_ventas"`
		TotalCombinaciones int64  `json:"total_combinaciones"`
		IngresosTotales    string `json:"ingresos_totales"`
	}
	decodeJSON(t, resp, &dash)
	assert.Zero(t, dash.TotalVentas)
	assert.Zero(t, dash.TotalCombinaciones)
	assertDecimalEqual(t, "0", dash.IngresosTotales)
}

func TestE2E_PrecioDeCombinacionSinPrecioDevuelveNull(t *testing.T) {
	srv := setupServer(t)

	id := crearCombinacion(t, srv, "Polo sin precio", nil)

	resp := do(t, srv, "GET", "/api/precios-combinaciones/combinacion/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body any
	decodeJSON(t, resp, &body)
	assert.Nil(t, body)
}
