package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"arkos/internal/apierror"
	"arkos/internal/dto"
	"arkos/internal/infra"
	"arkos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxImagenesPorCombinacion = 10

// CombinacionesHandler parses the multipart combination payload: scalar form
// fields, JSON-encoded array fields and up to 10 `imagenes` files. Files are
// written to storage before the service transaction opens; non-image files are
// skipped, the rest of the form is still processed.
type CombinacionesHandler struct {
	svc     service.CombinacionService
	storage *infra.Storage
}

func NewCombinacionesHandler(svc service.CombinacionService, storage *infra.Storage) *CombinacionesHandler {
	return &CombinacionesHandler{svc: svc, storage: storage}
}

func (h *CombinacionesHandler) Crear(c *gin.Context) {
	req, ok := h.bind(c, false)
	if !ok {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CombinacionesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombinacionesHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombinacionesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	req, ok := h.bind(c, true)
	if !ok {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombinacionesHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bind assembles GuardarCombinacionRequest from the multipart form. The
// update-only fields are read only when esActualizacion is set.
func (h *CombinacionesHandler) bind(c *gin.Context, esActualizacion bool) (dto.GuardarCombinacionRequest, bool) {
	var req dto.GuardarCombinacionRequest

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Formulario invalido: "+err.Error()))
		return req, false
	}

	req.Nombre = strings.TrimSpace(c.PostForm("nombre"))
	if d := c.PostForm("descripcion"); d != "" {
		req.Descripcion = &d
	}

	if !decodificarJSON(c, "color_ids", c.PostForm("color_ids"), &req.ColorIDs) ||
		!decodificarJSON(c, "tela_ids", c.PostForm("tela_ids"), &req.TelaIDs) ||
		!decodificarJSON(c, "proveedor_ids", c.PostForm("proveedor_ids"), &req.ProveedorIDs) ||
		!decodificarJSON(c, "estampados", c.PostForm("estampados"), &req.Estampados) {
		return req, false
	}

	indexField := "imagen_predeterminada_index"
	if esActualizacion {
		indexField = "imagen_predeterminada_nueva_index"

		if !decodificarJSON(c, "imagenes_existentes", c.PostForm("imagenes_existentes"), &req.ImagenesExistentes) {
			return req, false
		}
		if v := c.PostForm("imagen_predeterminada_existente_id"); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, apierror.New("imagen_predeterminada_existente_id invalido"))
				return req, false
			}
			req.ImagenPredeterminadaExistenteID = &id
		}
	}
	if v := c.PostForm(indexField); v != "" {
		idx, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New(indexField+" invalido"))
			return req, false
		}
		req.ImagenPredeterminadaIndex = &idx
	}

	if !validarStruct(c, &req) {
		return req, false
	}

	archivos := form.File["imagenes"]
	if len(archivos) > maxImagenesPorCombinacion {
		c.JSON(http.StatusBadRequest, apierror.New("Se permiten como maximo 10 imagenes por combinacion"))
		return req, false
	}
	for _, fh := range archivos {
		if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
			continue
		}
		url, err := h.storage.GuardarImagen(fh, "combinaciones")
		if err != nil {
			responderError(c, err)
			return req, false
		}
		req.ImagenesNuevas = append(req.ImagenesNuevas, url)
	}

	return req, true
}

// decodificarJSON parses a JSON-encoded form field. An absent field is left at
// its zero value.
func decodificarJSON(c *gin.Context, nombre, valor string, dest interface{}) bool {
	if valor == "" {
		return true
	}
	if err := json.Unmarshal([]byte(valor), dest); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(nombre+" invalido: "+err.Error()))
		return false
	}
	return true
}
