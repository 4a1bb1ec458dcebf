package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"arkos/internal/dto"
	"arkos/internal/infra"
	"arkos/internal/model"
	"arkos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const formatoFecha = "2006-01-02"

// VentaService owns the sale ledger. Totals and the cost snapshot are
// computed inside the write transaction: each item's unit cost is read from
// the combination's active price at that moment (zero when it has none), so
// later price edits never rewrite history.
type VentaService interface {
	Crear(ctx context.Context, req dto.GuardarVentaRequest) (dto.VentaResponse, error)
	Listar(ctx context.Context) ([]dto.VentaListItem, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.VentaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarVentaRequest) (dto.VentaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	// Recibo renders the printable PDF receipt for one sale.
	Recibo(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type ventaService struct {
	ventas  repository.VentaRepository
	precios repository.PrecioRepository
}

func NewVentaService(ventas repository.VentaRepository, precios repository.PrecioRepository) VentaService {
	return &ventaService{ventas: ventas, precios: precios}
}

func (s *ventaService) Crear(ctx context.Context, req dto.GuardarVentaRequest) (dto.VentaResponse, error) {
	v, err := cabeceraDe(req)
	if err != nil {
		return dto.VentaResponse{}, err
	}

	txErr := runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		if err := s.ventas.Crear(ctx, tx, v); err != nil {
			return err
		}
		return s.escribirDetalles(ctx, tx, v.ID, req.Items)
	})
	if txErr != nil {
		return dto.VentaResponse{}, txErr
	}

	return s.Obtener(ctx, v.ID)
}

func (s *ventaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarVentaRequest) (dto.VentaResponse, error) {
	v, err := cabeceraDe(req)
	if err != nil {
		return dto.VentaResponse{}, err
	}
	v.ID = id

	txErr := runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		existia, err := s.ventas.ActualizarCabecera(ctx, tx, v)
		if err != nil {
			return err
		}
		if !existia {
			return fmt.Errorf("%w: venta", ErrNoEncontrado)
		}
		if err := s.ventas.BorrarDetalles(ctx, tx, id); err != nil {
			return err
		}
		return s.escribirDetalles(ctx, tx, id, req.Items)
	})
	if txErr != nil {
		return dto.VentaResponse{}, txErr
	}

	return s.Obtener(ctx, id)
}

// escribirDetalles persists the line items and stamps the header totals, all
// on the caller's transaction.
func (s *ventaService) escribirDetalles(ctx context.Context, tx *gorm.DB, ventaID uuid.UUID, items []dto.ItemVentaRequest) error {
	detalles := make([]model.DetalleVenta, 0, len(items))
	total := decimal.Zero
	costoTotal := decimal.Zero

	for _, item := range items {
		costo, err := s.precios.CostoActivo(ctx, tx, item.CombinacionID)
		if err != nil {
			return err
		}

		cantidad := decimal.NewFromInt(int64(item.Cantidad))
		subtotal := item.PrecioUnitario.Mul(cantidad)

		talla := item.Talla
		if talla == "" {
			talla = "M"
		}

		detalles = append(detalles, model.DetalleVenta{
			VentaID:        ventaID,
			CombinacionID:  item.CombinacionID,
			Talla:          talla,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       subtotal,
		})
		total = total.Add(subtotal)
		costoTotal = costoTotal.Add(costo.Mul(cantidad))
	}

	if err := s.ventas.CrearDetalles(ctx, tx, detalles); err != nil {
		return err
	}
	return s.ventas.ActualizarTotales(ctx, tx, ventaID, total, costoTotal, total.Sub(costoTotal))
}

func (s *ventaService) Listar(ctx context.Context) ([]dto.VentaListItem, error) {
	ventas, err := s.ventas.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.VentaListItem, 0, len(ventas))
	for _, v := range ventas {
		result = append(result, resumirVenta(v))
	}
	return result, nil
}

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (dto.VentaResponse, error) {
	v, err := s.ventas.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.VentaResponse{}, fmt.Errorf("%w: venta", ErrNoEncontrado)
		}
		return dto.VentaResponse{}, err
	}
	return mapVenta(*v), nil
}

func (s *ventaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		if err := s.ventas.BorrarDetalles(ctx, tx, id); err != nil {
			return err
		}
		existia, err := s.ventas.Eliminar(ctx, tx, id)
		if err != nil {
			return err
		}
		if !existia {
			return fmt.Errorf("%w: venta", ErrNoEncontrado)
		}
		return nil
	})
}

func (s *ventaService) Recibo(ctx context.Context, id uuid.UUID) ([]byte, error) {
	v, err := s.ventas.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: venta", ErrNoEncontrado)
		}
		return nil, err
	}
	return infra.GenerarReciboPDF(v)
}

// cabeceraDe validates the dates and builds the header model. The totals stay
// zero; escribirDetalles stamps them once the items are priced.
func cabeceraDe(req dto.GuardarVentaRequest) (*model.Venta, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: la venta debe tener al menos un producto", ErrValidacion)
	}

	fechaVenta, err := time.Parse(formatoFecha, req.FechaVenta)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha_venta inválida", ErrValidacion)
	}

	// Sin fecha de pago explícita se asume pagada el mismo día de la venta.
	fechaPago := &fechaVenta
	if req.FechaPago != nil && *req.FechaPago != "" {
		fp, err := time.Parse(formatoFecha, *req.FechaPago)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha_pago inválida", ErrValidacion)
		}
		fechaPago = &fp
	}

	metodo := req.MetodoPago
	if metodo == "" {
		metodo = "efectivo"
	}
	estado := req.EstadoVenta
	if estado == "" {
		estado = "pagado"
	}

	return &model.Venta{
		FechaVenta:    fechaVenta,
		Cliente:       req.Cliente,
		MetodoPago:    metodo,
		EstadoVenta:   estado,
		FechaPago:     fechaPago,
		Observaciones: req.Observaciones,
		Total:         decimal.Zero,
		CostoTotal:    decimal.Zero,
		GananciaTotal: decimal.Zero,
	}, nil
}

// ─── Mapping ─────────────────────────────────────────────────────────────────

func mapVenta(v model.Venta) dto.VentaResponse {
	resp := dto.VentaResponse{
		ID:            v.ID,
		FechaVenta:    v.FechaVenta.Format(formatoFecha),
		Cliente:       v.Cliente,
		MetodoPago:    v.MetodoPago,
		EstadoVenta:   v.EstadoVenta,
		Observaciones: v.Observaciones,
		Total:         v.Total,
		CostoTotal:    v.CostoTotal,
		GananciaTotal: v.GananciaTotal,
		Detalles:      make([]dto.DetalleVentaResponse, 0, len(v.Detalles)),
		CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.FechaPago != nil {
		fp := v.FechaPago.Format(formatoFecha)
		resp.FechaPago = &fp
	}

	for _, d := range v.Detalles {
		det := dto.DetalleVentaResponse{
			ID:             d.ID,
			CombinacionID:  d.CombinacionID,
			Talla:          d.Talla,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		}
		if d.Combinacion != nil {
			det.CombinacionNombre = d.Combinacion.Nombre
			det.ImagenPredeterminada = imagenDeCombinacion(d.Combinacion)
		}
		resp.Detalles = append(resp.Detalles, det)
	}
	return resp
}

// resumirVenta collapses the detalle rows of one sale into per-combination,
// per-talla groups for the list view.
func resumirVenta(v model.Venta) dto.VentaListItem {
	item := dto.VentaListItem{
		ID:            v.ID,
		FechaVenta:    v.FechaVenta.Format(formatoFecha),
		Cliente:       v.Cliente,
		MetodoPago:    v.MetodoPago,
		EstadoVenta:   v.EstadoVenta,
		Total:         v.Total,
		CostoTotal:    v.CostoTotal,
		GananciaTotal: v.GananciaTotal,
		Combinaciones: make([]dto.VentaCombinacionResumen, 0, len(v.Detalles)),
	}

	type clave struct {
		combinacion uuid.UUID
		talla       string
	}
	indice := make(map[clave]int)

	for _, d := range v.Detalles {
		item.TotalProductos += d.Cantidad

		k := clave{combinacion: d.CombinacionID, talla: d.Talla}
		if i, ok := indice[k]; ok {
			item.Combinaciones[i].CantidadTotal += d.Cantidad
			continue
		}

		resumen := dto.VentaCombinacionResumen{
			CombinacionID: d.CombinacionID,
			Talla:         d.Talla,
			CantidadTotal: d.Cantidad,
		}
		if d.Combinacion != nil {
			resumen.CombinacionNombre = d.Combinacion.Nombre
			resumen.ImagenPredeterminada = imagenDeCombinacion(d.Combinacion)
		}
		indice[k] = len(item.Combinaciones)
		item.Combinaciones = append(item.Combinaciones, resumen)
	}
	return item
}

func imagenDeCombinacion(c *model.Combinacion) *dto.ImagenResponse {
	imagenes := make([]dto.ImagenResponse, 0, len(c.Imagenes))
	for _, img := range c.Imagenes {
		imagenes = append(imagenes, dto.ImagenResponse{
			ID:               img.ID,
			ImagenURL:        img.ImagenURL,
			EsPredeterminada: img.EsPredeterminada,
		})
	}
	return imagenPredeterminada(imagenes)
}
