// Package client is a typed Go client for the Arkos API. GET responses are
// served from a TTL cache; every mutating call clears it so readers never see
// stale derived data (combination prices, dashboard totals).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"arkos/internal/dto"

	"github.com/google/uuid"
)

const defaultTTL = 5 * time.Minute

// APIError carries the server's error envelope plus the HTTP status.
type APIError struct {
	Status int
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Detail)
}

// Client talks to one Arkos server. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *Cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCacheTTL overrides the default 5 minute response cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache = NewCache(ttl) }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   NewCache(defaultTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ─── Transport helpers ───────────────────────────────────────────────────────

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	if body := c.cache.Get(path); body != nil {
		return json.Unmarshal(body, out)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	body, err := c.do(req)
	if err != nil {
		return err
	}
	c.cache.Set(path, body)
	return json.Unmarshal(body, out)
}

func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	c.cache.InvalidateAll()
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	c.cache.InvalidateAll()
	return err
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(body, apiErr) != nil || apiErr.Detail == "" {
			apiErr.Detail = strings.TrimSpace(string(body))
		}
		return nil, apiErr
	}
	return body, nil
}

// ─── Catalogs ────────────────────────────────────────────────────────────────

func (c *Client) ListarColores(ctx context.Context) ([]dto.ColorResponse, error) {
	var out []dto.ColorResponse
	return out, c.get(ctx, "/api/colores", &out)
}

func (c *Client) ObtenerColor(ctx context.Context, id uuid.UUID) (dto.ColorResponse, error) {
	var out dto.ColorResponse
	return out, c.get(ctx, "/api/colores/"+id.String(), &out)
}

func (c *Client) CrearColor(ctx context.Context, req dto.GuardarColorRequest) (dto.ColorResponse, error) {
	var out dto.ColorResponse
	return out, c.sendJSON(ctx, http.MethodPost, "/api/colores", req, &out)
}

func (c *Client) ActualizarColor(ctx context.Context, id uuid.UUID, req dto.GuardarColorRequest) (dto.ColorResponse, error) {
	var out dto.ColorResponse
	return out, c.sendJSON(ctx, http.MethodPut, "/api/colores/"+id.String(), req, &out)
}

func (c *Client) EliminarColor(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/api/colores/"+id.String())
}

func (c *Client) ListarTelas(ctx context.Context) ([]dto.TelaResponse, error) {
	var out []dto.TelaResponse
	return out, c.get(ctx, "/api/telas", &out)
}

func (c *Client) ObtenerTela(ctx context.Context, id uuid.UUID) (dto.TelaResponse, error) {
	var out dto.TelaResponse
	return out, c.get(ctx, "/api/telas/"+id.String(), &out)
}

func (c *Client) CrearTela(ctx context.Context, req dto.GuardarTelaRequest) (dto.TelaResponse, error) {
	var out dto.TelaResponse
	return out, c.sendJSON(ctx, http.MethodPost, "/api/telas", req, &out)
}

func (c *Client) ActualizarTela(ctx context.Context, id uuid.UUID, req dto.GuardarTelaRequest) (dto.TelaResponse, error) {
	var out dto.TelaResponse
	return out, c.sendJSON(ctx, http.MethodPut, "/api/telas/"+id.String(), req, &out)
}

func (c *Client) EliminarTela(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/api/telas/"+id.String())
}

func (c *Client) ListarProveedores(ctx context.Context) ([]dto.ProveedorResponse, error) {
	var out []dto.ProveedorResponse
	return out, c.get(ctx, "/api/proveedores", &out)
}

func (c *Client) ObtenerProveedor(ctx context.Context, id uuid.UUID) (dto.ProveedorResponse, error) {
	var out dto.ProveedorResponse
	return out, c.get(ctx, "/api/proveedores/"+id.String(), &out)
}

func (c *Client) CrearProveedor(ctx context.Context, req dto.GuardarProveedorRequest) (dto.ProveedorResponse, error) {
	var out dto.ProveedorResponse
	return out, c.sendJSON(ctx, http.MethodPost, "/api/proveedores", req, &out)
}

func (c *Client) ActualizarProveedor(ctx context.Context, id uuid.UUID, req dto.GuardarProveedorRequest) (dto.ProveedorResponse, error) {
	var out dto.ProveedorResponse
	return out, c.sendJSON(ctx, http.MethodPut, "/api/proveedores/"+id.String(), req, &out)
}

func (c *Client) EliminarProveedor(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/api/proveedores/"+id.String())
}

func (c *Client) ListarEstampados(ctx context.Context) ([]dto.EstampadoResponse, error) {
	var out []dto.EstampadoResponse
	return out, c.get(ctx, "/api/estampados", &out)
}

func (c *Client) ObtenerEstampado(ctx context.Context, id uuid.UUID) (dto.EstampadoResponse, error) {
	var out dto.EstampadoResponse
	return out, c.get(ctx, "/api/estampados/"+id.String(), &out)
}

func (c *Client) CrearEstampado(ctx context.Context, req dto.GuardarEstampadoRequest) (dto.EstampadoResponse, error) {
	var out dto.EstampadoResponse
	return out, c.sendJSON(ctx, http.MethodPost, "/api/estampados", req, &out)
}

func (c *Client) ActualizarEstampado(ctx context.Context, id uuid.UUID, req dto.GuardarEstampadoRequest) (dto.EstampadoResponse, error) {
	var out dto.EstampadoResponse
	return out, c.sendJSON(ctx, http.MethodPut, "/api/estampados/"+id.String(), req, &out)
}

func (c *Client) EliminarEstampado(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/api/estampados/"+id.String())
}

// ─── Combinaciones ───────────────────────────────────────────────────────────

// Imagen is one image file attached to a combination form.
type Imagen struct {
	Nombre    string
	Contenido io.Reader
	// MIME type; defaults to image/jpeg when empty.
	ContentType string
}

// CombinacionForm mirrors the server's multipart contract. The update-only
// fields are ignored by CrearCombinacion.
type CombinacionForm struct {
	Nombre       string
	Descripcion  *string
	ColorIDs     []uuid.UUID
	TelaIDs      []uuid.UUID
	ProveedorIDs []uuid.UUID
	Estampados   []dto.EstampadoColocadoRequest

	Imagenes                  []Imagen
	ImagenPredeterminadaIndex *int

	ImagenesExistentes              []dto.ImagenExistenteRequest
	ImagenPredeterminadaExistenteID *uuid.UUID
}

func (c *Client) ListarCombinaciones(ctx context.Context) ([]dto.CombinacionResponse, error) {
	var out []dto.CombinacionResponse
	return out, c.get(ctx, "/api/combinaciones", &out)
}

func (c *Client) ObtenerCombinacion(ctx context.Context, id uuid.UUID) (dto.CombinacionResponse, error) {
	var out dto.CombinacionResponse
	return out, c.get(ctx, "/api/combinaciones/"+id.String(), &out)
}

func (c *Client) CrearCombinacion(ctx context.Context, form CombinacionForm) (dto.CombinacionResponse, error) {
	var out dto.CombinacionResponse
	return out, c.sendMultipart(ctx, http.MethodPost, "/api/combinaciones", form, false, &out)
}

func (c *Client) ActualizarCombinacion(ctx context.Context, id uuid.UUID, form CombinacionForm) (dto.CombinacionResponse, error) {
	var out dto.CombinacionResponse
	return out, c.sendMultipart(ctx, http.MethodPut, "/api/combinaciones/"+id.String(), form, true, &out)
}

func (c *Client) EliminarCombinacion(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/api/combinaciones/"+id.String())
}

func (c *Client) sendMultipart(ctx context.Context, method, path string, form CombinacionForm, esActualizacion bool, out interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := escribirCampos(mw, form, esActualizacion); err != nil {
		return err
	}
	for _, img := range form.Imagenes {
		ct := img.ContentType
		if ct == "" {
			ct = "image/jpeg"
		}
		hdr := make(map[string][]string)
		hdr["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="imagenes"; filename=%q`, img.Nombre)}
		hdr["Content-Type"] = []string{ct}
		part, err := mw.CreatePart(hdr)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, img.Contenido); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.do(req)
	c.cache.InvalidateAll()
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func escribirCampos(mw *multipart.Writer, form CombinacionForm, esActualizacion bool) error {
	if err := mw.WriteField("nombre", form.Nombre); err != nil {
		return err
	}
	if form.Descripcion != nil {
		if err := mw.WriteField("descripcion", *form.Descripcion); err != nil {
			return err
		}
	}

	campos := []struct {
		nombre string
		valor  interface{}
	}{
		{"color_ids", form.ColorIDs},
		{"tela_ids", form.TelaIDs},
		{"proveedor_ids", form.ProveedorIDs},
		{"estampados", form.Estampados},
	}
	if esActualizacion {
		campos = append(campos, struct {
			nombre string
			valor  interface{}
		}{"imagenes_existentes", form.ImagenesExistentes})
	}
	for _, campo := range campos {
		encoded, err := json.Marshal(campo.valor)
		if err != nil {
			return err
		}
		if err := mw.WriteField(campo.nombre, string(encoded)); err != nil {
			return err
		}
	}

	indexField := "imagen_predeterminada_index"
	if esActualizacion {
		indexField = "imagen_predeterminada_nueva_index"
		if form.ImagenPredeterminadaExistenteID != nil {
			if err := mw.WriteField("imagen_predeterminada_existente_id", form.ImagenPredeterminadaExistenteID.String()); err != nil {
				return err
			}
		}
	}
	if form.ImagenPredeterminadaIndex != nil {
		if err := mw.WriteField(indexField, strconv.Itoa(*form.ImagenPredeterminadaIndex)); err != nil {
			return err
		}
	}
	return nil
}

// ─── Precios ─────────────────────────────────────────────────────────────────

func (c *Client) ListarPrecios(ctx context.Context) ([]dto.PrecioResponse, error) {
	var out []dto.PrecioResponse
	return out, c.get(ctx, "/api/precios-combinaciones", &out)
}

func (c *Client) ObtenerPrecio(ctx context.Context, id uuid.UUID) (dto.PrecioResponse, error) {
	var out dto.PrecioResponse
	return out, c.get(ctx, "/api/precios-combinaciones/"+id.String(), &out)
}

// PrecioDeCombinacion returns nil when the combination has no active price.
func (c *Client) PrecioDeCombinacion(ctx context.Context, combinacionID uuid.UUID) (*dto.PrecioResponse, error) {
	var out *dto.PrecioResponse
	err := c.get(ctx, "/api/precios-combinaciones/combinacion/"+combinacionID.String(), &out)
	return out, err
}

func (c *Client) CrearPrecio(ctx context.Context, req dto.CrearPrecioRequest) (dto.PrecioResponse, error) {
	var out dto.PrecioResponse
	return out, c.sendJSON(ctx, http.MethodPost, "/api/precios-combinaciones", req, &out)
}

func (c *Client) ActualizarPrecio(ctx context.Context, id uuid.UUID, req dto.ActualizarPrecioRequest) (dto.PrecioResponse, error) {
	var out dto.PrecioResponse
	return out, c.sendJSON(ctx, http.MethodPut, "/api/precios-combinaciones/"+id.String(), req, &out)
}

func (c *Client) EliminarPrecio(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/api/precios-combinaciones/"+id.String())
}

func (c *Client) Dashboard(ctx context.Context) (dto.DashboardResponse, error) {
	var out dto.DashboardResponse
	return out, c.get(ctx, "/api/precios-combinaciones/dashboard", &out)
}

// ─── Ventas ──────────────────────────────────────────────────────────────────

func (c *Client) ListarVentas(ctx context.Context) ([]dto.VentaListItem, error) {
	var out []dto.VentaListItem
	return out, c.get(ctx, "/api/ventas", &out)
}

func (c *Client) ObtenerVenta(ctx context.Context, id uuid.UUID) (dto.VentaResponse, error) {
	var out dto.VentaResponse
	return out, c.get(ctx, "/api/ventas/"+id.String(), &out)
}

func (c *Client) CrearVenta(ctx context.Context, req dto.GuardarVentaRequest) (dto.VentaResponse, error) {
	var out dto.VentaResponse
	return out, c.sendJSON(ctx, http.MethodPost, "/api/ventas", req, &out)
}

func (c *Client) ActualizarVenta(ctx context.Context, id uuid.UUID, req dto.GuardarVentaRequest) (dto.VentaResponse, error) {
	var out dto.VentaResponse
	return out, c.sendJSON(ctx, http.MethodPut, "/api/ventas/"+id.String(), req, &out)
}

func (c *Client) EliminarVenta(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/api/ventas/"+id.String())
}

// ReciboVenta downloads the sale's PDF receipt. Never cached.
func (c *Client) ReciboVenta(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return c.getRaw(ctx, "/api/ventas/"+id.String()+"/recibo")
}
