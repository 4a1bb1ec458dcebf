package service

import (
	"context"
	"errors"
	"fmt"

	"arkos/internal/dto"
	"arkos/internal/model"
	"arkos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var cien = decimal.NewFromInt(100)

// PrecioService manages combination prices. The margin figures are never
// taken from the client: they are derived from costo and precio_venta on
// every write and stored alongside them.
type PrecioService interface {
	Crear(ctx context.Context, req dto.CrearPrecioRequest) (dto.PrecioResponse, error)
	Listar(ctx context.Context) ([]dto.PrecioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.PrecioResponse, error)

	// ObtenerPorCombinacion returns nil (not an error) when the combination
	// has no active price, so the handler can reply 200 with a null body.
	ObtenerPorCombinacion(ctx context.Context, combinacionID uuid.UUID) (*dto.PrecioResponse, error)

	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPrecioRequest) (dto.PrecioResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error

	Dashboard(ctx context.Context) (dto.DashboardResponse, error)
}

type precioService struct {
	precios repository.PrecioRepository
	ventas  repository.VentaRepository
}

func NewPrecioService(precios repository.PrecioRepository, ventas repository.VentaRepository) PrecioService {
	return &precioService{precios: precios, ventas: ventas}
}

func (s *precioService) Crear(ctx context.Context, req dto.CrearPrecioRequest) (dto.PrecioResponse, error) {
	if req.Costo.IsNegative() || req.PrecioVenta.IsNegative() {
		return dto.PrecioResponse{}, fmt.Errorf("%w: costo y precio de venta no pueden ser negativos", ErrValidacion)
	}

	existe, err := s.precios.ExisteActivo(ctx, req.CombinacionID)
	if err != nil {
		return dto.PrecioResponse{}, err
	}
	if existe {
		return dto.PrecioResponse{}, fmt.Errorf("%w: la combinación ya tiene un precio activo", ErrValidacion)
	}

	margen, porcentaje := derivarMargen(req.Costo, req.PrecioVenta)
	p := &model.Precio{
		CombinacionID:      req.CombinacionID,
		Costo:              req.Costo,
		PrecioVenta:        req.PrecioVenta,
		MargenGanancia:     margen,
		PorcentajeGanancia: porcentaje,
		Activo:             true,
	}
	if err := s.precios.Crear(ctx, p); err != nil {
		return dto.PrecioResponse{}, err
	}
	return mapPrecio(*p), nil
}

func (s *precioService) Listar(ctx context.Context) ([]dto.PrecioResponse, error) {
	list, err := s.precios.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.PrecioResponse, 0, len(list))
	for _, p := range list {
		result = append(result, mapPrecio(p))
	}
	return result, nil
}

func (s *precioService) Obtener(ctx context.Context, id uuid.UUID) (dto.PrecioResponse, error) {
	p, err := s.precios.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PrecioResponse{}, fmt.Errorf("%w: precio", ErrNoEncontrado)
		}
		return dto.PrecioResponse{}, err
	}
	return mapPrecio(*p), nil
}

func (s *precioService) ObtenerPorCombinacion(ctx context.Context, combinacionID uuid.UUID) (*dto.PrecioResponse, error) {
	p, err := s.precios.ObtenerPorCombinacion(ctx, combinacionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := mapPrecio(*p)
	return &resp, nil
}

func (s *precioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPrecioRequest) (dto.PrecioResponse, error) {
	if req.Costo.IsNegative() || req.PrecioVenta.IsNegative() {
		return dto.PrecioResponse{}, fmt.Errorf("%w: costo y precio de venta no pueden ser negativos", ErrValidacion)
	}

	p, err := s.precios.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PrecioResponse{}, fmt.Errorf("%w: precio", ErrNoEncontrado)
		}
		return dto.PrecioResponse{}, err
	}

	p.Costo = req.Costo
	p.PrecioVenta = req.PrecioVenta
	p.MargenGanancia, p.PorcentajeGanancia = derivarMargen(req.Costo, req.PrecioVenta)
	if err := s.precios.Actualizar(ctx, p); err != nil {
		return dto.PrecioResponse{}, err
	}
	return mapPrecio(*p), nil
}

func (s *precioService) Desactivar(ctx context.Context, id uuid.UUID) error {
	existia, err := s.precios.Desactivar(ctx, id)
	if err != nil {
		return err
	}
	if !existia {
		return fmt.Errorf("%w: precio", ErrNoEncontrado)
	}
	return nil
}

// Dashboard aggregates the sale ledger and the active price catalog. It is
// computed fresh on every call; an empty database yields all zeros.
func (s *precioService) Dashboard(ctx context.Context) (dto.DashboardResponse, error) {
	total, err := s.ventas.ResumenTotal(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	mes, err := s.ventas.ResumenMesActual(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	combinaciones, promedio, err := s.precios.MetricasDashboard(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	return dto.DashboardResponse{
		IngresosTotales:  total.Ingresos,
		CostosTotales:    total.Costos,
		GananciasTotales: total.Ganancias,
		TotalVentas:      total.Ventas,

		IngresosMes:  mes.Ingresos,
		CostosMes:    mes.Costos,
		GananciasMes: mes.Ganancias,
		VentasMes:    mes.Ventas,

		TotalCombinaciones:     combinaciones,
		PromedioMargenGanancia: promedio.Round(2),
	}, nil
}

// derivarMargen computes the absolute margin and its percentage over the sale
// price. A zero sale price yields a zero percentage rather than dividing.
func derivarMargen(costo, precioVenta decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	margen := precioVenta.Sub(costo)
	if precioVenta.IsZero() {
		return margen, decimal.Zero
	}
	return margen, margen.Div(precioVenta).Mul(cien).Round(2)
}

func mapPrecio(p model.Precio) dto.PrecioResponse {
	resp := dto.PrecioResponse{
		ID:                 p.ID,
		CombinacionID:      p.CombinacionID,
		Costo:              p.Costo,
		PrecioVenta:        p.PrecioVenta,
		MargenGanancia:     p.MargenGanancia,
		PorcentajeGanancia: p.PorcentajeGanancia,
		Activo:             p.Activo,
	}
	if p.Combinacion != nil {
		resp.CombinacionNombre = p.Combinacion.Nombre
	}
	return resp
}
