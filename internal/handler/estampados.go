package handler

import (
	"net/http"
	"strings"

	"arkos/internal/apierror"
	"arkos/internal/dto"
	"arkos/internal/infra"
	"arkos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EstampadosHandler accepts the catalog payload either as JSON or as a
// multipart form carrying an optional `imagen` file. The file is stored
// before the service runs; a failed write leaves no orphan row.
type EstampadosHandler struct {
	svc     service.EstampadoService
	storage *infra.Storage
}

func NewEstampadosHandler(svc service.EstampadoService, storage *infra.Storage) *EstampadosHandler {
	return &EstampadosHandler{svc: svc, storage: storage}
}

func (h *EstampadosHandler) Crear(c *gin.Context) {
	req, imagenURL, ok := h.bind(c)
	if !ok {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req, imagenURL)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EstampadosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EstampadosHandler) Obtener(c *gin.Context) {
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

func (h *EstampadosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	req, imagenURL, ok := h.bind(c)
	if !ok {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req, imagenURL)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EstampadosHandler) Desactivar(c *gin.Context) {
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

// bind reads the request in either encoding. The returned URL is non-nil only
// when a multipart `imagen` file was uploaded and stored.
func (h *EstampadosHandler) bind(c *gin.Context) (dto.GuardarEstampadoRequest, *string, bool) {
	var req dto.GuardarEstampadoRequest

	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if !bindAndValidate(c, &req) {
			return req, nil, false
		}
		return req, nil, true
	}

	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Formulario invalido: "+err.Error()))
		return req, nil, false
	}
	if !validarStruct(c, &req) {
		return req, nil, false
	}

	fh, err := c.FormFile("imagen")
	if err != nil {
		// No file attached; the catalog entry keeps (or starts without) its image.
		return req, nil, true
	}
	url, err := h.storage.GuardarImagen(fh, "estampados")
	if err != nil {
		responderError(c, err)
		return req, nil, false
	}
	return req, &url, true
}
