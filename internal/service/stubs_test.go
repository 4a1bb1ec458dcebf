package service_test

import (
	"context"

	"arkos/internal/model"
	"arkos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. DB() returns nil so runTx executes the service
// callback without a real transaction.

// ── CombinacionRepository stub ───────────────────────────────────────────────

type stubCombinacionRepo struct {
	combinaciones map[uuid.UUID]*model.Combinacion

	colores     map[uuid.UUID][]uuid.UUID
	telas       map[uuid.UUID][]uuid.UUID
	proveedores map[uuid.UUID][]uuid.UUID
	estampados  map[uuid.UUID][]model.CombinacionEstampado
	imagenes    map[uuid.UUID][]model.CombinacionImagen

	// Catalogs used to resolve names on reads, as the SQL preloads would.
	catalogoColores    map[uuid.UUID]model.Color
	catalogoTelas      map[uuid.UUID]model.TipoTela
	catalogoEstampados map[uuid.UUID]model.Estampado

	precios map[uuid.UUID]*model.Precio
}

func newStubCombinacionRepo() *stubCombinacionRepo {
	return &stubCombinacionRepo{
		combinaciones:      make(map[uuid.UUID]*model.Combinacion),
		colores:            make(map[uuid.UUID][]uuid.UUID),
		telas:              make(map[uuid.UUID][]uuid.UUID),
		proveedores:        make(map[uuid.UUID][]uuid.UUID),
		estampados:         make(map[uuid.UUID][]model.CombinacionEstampado),
		imagenes:           make(map[uuid.UUID][]model.CombinacionImagen),
		catalogoColores:    make(map[uuid.UUID]model.Color),
		catalogoTelas:      make(map[uuid.UUID]model.TipoTela),
		catalogoEstampados: make(map[uuid.UUID]model.Estampado),
		precios:            make(map[uuid.UUID]*model.Precio),
	}
}

func (r *stubCombinacionRepo) DB() *gorm.DB { return nil }

func (r *stubCombinacionRepo) Listar(ctx context.Context) ([]model.Combinacion, error) {
	var list []model.Combinacion
	for id, c := range r.combinaciones {
		if !c.Activo {
			continue
		}
		view, err := r.ObtenerPorID(ctx, id)
		if err != nil {
			return nil, err
		}
		list = append(list, *view)
	}
	return list, nil
}

func (r *stubCombinacionRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Combinacion, error) {
	c, ok := r.combinaciones[id]
	if !ok || !c.Activo {
		return nil, gorm.ErrRecordNotFound
	}

	view := *c
	view.Colores = nil
	for _, colorID := range r.colores[id] {
		if col, ok := r.catalogoColores[colorID]; ok && col.Activo {
			view.Colores = append(view.Colores, col)
		}
	}
	view.Telas = nil
	for _, telaID := range r.telas[id] {
		if t, ok := r.catalogoTelas[telaID]; ok && t.Activo {
			view.Telas = append(view.Telas, t)
		}
	}
	view.Estampados = nil
	for _, ce := range r.estampados[id] {
		if e, ok := r.catalogoEstampados[ce.EstampadoID]; ok {
			copia := e
			ce.Estampado = &copia
		}
		view.Estampados = append(view.Estampados, ce)
	}
	// Default-first, then insertion order, as the SQL read does.
	view.Imagenes = nil
	for _, img := range r.imagenes[id] {
		if img.EsPredeterminada {
			view.Imagenes = append(view.Imagenes, img)
		}
	}
	for _, img := range r.imagenes[id] {
		if !img.EsPredeterminada {
			view.Imagenes = append(view.Imagenes, img)
		}
	}
	if p, ok := r.precios[id]; ok && p.Activo {
		copia := *p
		view.Precio = &copia
	}
	return &view, nil
}

func (r *stubCombinacionRepo) Crear(_ context.Context, _ *gorm.DB, c *model.Combinacion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.combinaciones[c.ID] = c
	return nil
}

func (r *stubCombinacionRepo) ActualizarCabecera(_ context.Context, _ *gorm.DB, id uuid.UUID, nombre string, descripcion *string) (bool, error) {
	c, ok := r.combinaciones[id]
	if !ok || !c.Activo {
		return false, nil
	}
	c.Nombre = nombre
	c.Descripcion = descripcion
	return true, nil
}

func (r *stubCombinacionRepo) Desactivar(_ context.Context, id uuid.UUID) (bool, error) {
	c, ok := r.combinaciones[id]
	if !ok {
		return false, nil
	}
	c.Activo = false
	return true, nil
}

func (r *stubCombinacionRepo) BorrarRelaciones(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.colores, id)
	delete(r.telas, id)
	delete(r.proveedores, id)
	delete(r.estampados, id)
	return nil
}

func (r *stubCombinacionRepo) VincularColores(_ context.Context, _ *gorm.DB, id uuid.UUID, ids []uuid.UUID) error {
	r.colores[id] = append(r.colores[id], ids...)
	return nil
}

func (r *stubCombinacionRepo) VincularTelas(_ context.Context, _ *gorm.DB, id uuid.UUID, ids []uuid.UUID) error {
	r.telas[id] = append(r.telas[id], ids...)
	return nil
}

func (r *stubCombinacionRepo) VincularProveedores(_ context.Context, _ *gorm.DB, id uuid.UUID, ids []uuid.UUID) error {
	r.proveedores[id] = append(r.proveedores[id], ids...)
	return nil
}

func (r *stubCombinacionRepo) CrearEstampados(_ context.Context, _ *gorm.DB, estampados []model.CombinacionEstampado) error {
	for _, e := range estampados {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		r.estampados[e.CombinacionID] = append(r.estampados[e.CombinacionID], e)
	}
	return nil
}

func (r *stubCombinacionRepo) BorrarImagenes(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.imagenes, id)
	return nil
}

func (r *stubCombinacionRepo) CrearImagenes(_ context.Context, _ *gorm.DB, imagenes []model.CombinacionImagen) error {
	for _, img := range imagenes {
		if img.ID == uuid.Nil {
			img.ID = uuid.New()
		}
		r.imagenes[img.CombinacionID] = append(r.imagenes[img.CombinacionID], img)
	}
	return nil
}

var _ repository.CombinacionRepository = (*stubCombinacionRepo)(nil)

// ── PrecioRepository stub ────────────────────────────────────────────────────

type stubPrecioRepo struct {
	precios map[uuid.UUID]*model.Precio

	metricaCombinaciones int64
	metricaPromedio      decimal.Decimal
}

func newStubPrecioRepo() *stubPrecioRepo {
	return &stubPrecioRepo{precios: make(map[uuid.UUID]*model.Precio)}
}

func (r *stubPrecioRepo) Crear(_ context.Context, p *model.Precio) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.precios[p.ID] = p
	return nil
}

func (r *stubPrecioRepo) Listar(_ context.Context) ([]model.Precio, error) {
	var list []model.Precio
	for _, p := range r.precios {
		if p.Activo {
			list = append(list, *p)
		}
	}
	return list, nil
}

func (r *stubPrecioRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Precio, error) {
	p, ok := r.precios[id]
	if !ok || !p.Activo {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPrecioRepo) ObtenerPorCombinacion(_ context.Context, combinacionID uuid.UUID) (*model.Precio, error) {
	for _, p := range r.precios {
		if p.CombinacionID == combinacionID && p.Activo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPrecioRepo) ExisteActivo(_ context.Context, combinacionID uuid.UUID) (bool, error) {
	for _, p := range r.precios {
		if p.CombinacionID == combinacionID && p.Activo {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPrecioRepo) Actualizar(_ context.Context, p *model.Precio) error {
	r.precios[p.ID] = p
	return nil
}

func (r *stubPrecioRepo) Desactivar(_ context.Context, id uuid.UUID) (bool, error) {
	p, ok := r.precios[id]
	if !ok {
		return false, nil
	}
	p.Activo = false
	return true, nil
}

func (r *stubPrecioRepo) CostoActivo(_ context.Context, _ *gorm.DB, combinacionID uuid.UUID) (decimal.Decimal, error) {
	for _, p := range r.precios {
		if p.CombinacionID == combinacionID && p.Activo {
			return p.Costo, nil
		}
	}
	return decimal.Zero, nil
}

func (r *stubPrecioRepo) MetricasDashboard(_ context.Context) (int64, decimal.Decimal, error) {
	return r.metricaCombinaciones, r.metricaPromedio, nil
}

var _ repository.PrecioRepository = (*stubPrecioRepo)(nil)

// ── VentaRepository stub ─────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas   map[uuid.UUID]*model.Venta
	detalles []model.DetalleVenta

	resumenTotal repository.ResumenVentas
	resumenMes   repository.ResumenVentas
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

func (r *stubVentaRepo) Listar(ctx context.Context) ([]model.Venta, error) {
	var list []model.Venta
	for id := range r.ventas {
		v, err := r.ObtenerPorID(ctx, id)
		if err != nil {
			return nil, err
		}
		list = append(list, *v)
	}
	return list, nil
}

func (r *stubVentaRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	view := *v
	view.Detalles = nil
	for _, d := range r.detalles {
		if d.VentaID == id {
			view.Detalles = append(view.Detalles, d)
		}
	}
	return &view, nil
}

func (r *stubVentaRepo) Crear(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) ActualizarCabecera(_ context.Context, _ *gorm.DB, v *model.Venta) (bool, error) {
	actual, ok := r.ventas[v.ID]
	if !ok {
		return false, nil
	}
	actual.FechaVenta = v.FechaVenta
	actual.Cliente = v.Cliente
	actual.MetodoPago = v.MetodoPago
	actual.EstadoVenta = v.EstadoVenta
	actual.FechaPago = v.FechaPago
	actual.Observaciones = v.Observaciones
	return true, nil
}

func (r *stubVentaRepo) ActualizarTotales(_ context.Context, _ *gorm.DB, id uuid.UUID, total, costo, ganancia decimal.Decimal) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Total = total
	v.CostoTotal = costo
	v.GananciaTotal = ganancia
	return nil
}

func (r *stubVentaRepo) CrearDetalles(_ context.Context, _ *gorm.DB, detalles []model.DetalleVenta) error {
	for _, d := range detalles {
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		r.detalles = append(r.detalles, d)
	}
	return nil
}

func (r *stubVentaRepo) BorrarDetalles(_ context.Context, _ *gorm.DB, ventaID uuid.UUID) error {
	restantes := r.detalles[:0]
	for _, d := range r.detalles {
		if d.VentaID != ventaID {
			restantes = append(restantes, d)
		}
	}
	r.detalles = restantes
	return nil
}

func (r *stubVentaRepo) Eliminar(_ context.Context, _ *gorm.DB, id uuid.UUID) (bool, error) {
	if _, ok := r.ventas[id]; !ok {
		return false, nil
	}
	delete(r.ventas, id)
	return true, nil
}

func (r *stubVentaRepo) ResumenTotal(_ context.Context) (repository.ResumenVentas, error) {
	return r.resumenTotal, nil
}

func (r *stubVentaRepo) ResumenMesActual(_ context.Context) (repository.ResumenVentas, error) {
	return r.resumenMes, nil
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)
