package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/model"
	"github.com/luisjoselares/Pegasus-v1/internal/repository"
	"github.com/luisjoselares/Pegasus-v1/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory repository stubs. Services run their transactions through
// runTx, which calls the closure with a nil *gorm.DB when the repository
// reports no database, so every Tx method here accepts a nil tx.

// ── Configuracion ─────────────────────────────────────────────────────────────

type stubConfigRepo struct {
	cfg       model.Configuracion
	historial []model.HistorialTasa
}

func newStubConfigRepo() *stubConfigRepo {
	return &stubConfigRepo{cfg: model.Configuracion{
		ID:                model.ConfiguracionID,
		TasaBcv:           decimal.NewFromInt(40),
		TasaCop:           decimal.NewFromInt(4000),
		PorcentajeIgtf:    decimal.NewFromInt(3),
		ProximoNroFactura: 1,
		ProximoNroNe:      1,
		ProximoNroNc:      1,
		ProximoNroControl: 1,
		ProximoNroZ:       1,
	}}
}

func (r *stubConfigRepo) Obtener(_ context.Context) (*model.Configuracion, error) {
	cp := r.cfg
	return &cp, nil
}

func (r *stubConfigRepo) Guardar(_ context.Context, c *model.Configuracion) error {
	r.cfg = *c
	return nil
}

func (r *stubConfigRepo) ObtenerBloqueadoTx(_ *gorm.DB) (*model.Configuracion, error) {
	cp := r.cfg
	return &cp, nil
}

func (r *stubConfigRepo) IncrementarCorrelativosTx(_ *gorm.DB, columnas ...string) error {
	for _, col := range columnas {
		switch col {
		case repository.ColNroFactura:
			r.cfg.ProximoNroFactura++
		case repository.ColNroNe:
			r.cfg.ProximoNroNe++
		case repository.ColNroNc:
			r.cfg.ProximoNroNc++
		case repository.ColNroControl:
			r.cfg.ProximoNroControl++
		case repository.ColNroZ:
			r.cfg.ProximoNroZ++
		default:
			return errors.New("columna desconocida: " + col)
		}
	}
	return nil
}

func (r *stubConfigRepo) CrearHistorialTasa(_ context.Context, _ *gorm.DB, h *model.HistorialTasa) error {
	h.ID = uuid.New()
	h.CreatedAt = time.Now()
	r.historial = append(r.historial, *h)
	return nil
}

func (r *stubConfigRepo) ListarHistorialTasas(_ context.Context, limit int) ([]model.HistorialTasa, error) {
	if len(r.historial) > limit {
		return r.historial[:limit], nil
	}
	return r.historial, nil
}

func (r *stubConfigRepo) DB() *gorm.DB { return nil }

var _ repository.ConfiguracionRepository = (*stubConfigRepo)(nil)

// ── Producto ──────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoInterno == codigo && p.Activo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) FindBloqueadoTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockActual = p.StockActual.Add(delta)
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── Kardex de inventario ──────────────────────────────────────────────────────

type stubKardexRepo struct {
	entradas []model.InventarioKardex
}

func (r *stubKardexRepo) CrearTx(_ *gorm.DB, k *model.InventarioKardex) error {
	k.ID = uuid.New()
	k.CreatedAt = time.Now()
	r.entradas = append(r.entradas, *k)
	return nil
}

func (r *stubKardexRepo) ListarPorProducto(_ context.Context, productoID uuid.UUID, limit int) ([]model.InventarioKardex, error) {
	var out []model.InventarioKardex
	for i := len(r.entradas) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entradas[i].ProductoID == productoID {
			out = append(out, r.entradas[i])
		}
	}
	return out, nil
}

func (r *stubKardexRepo) SaldoCalculado(_ context.Context, productoID uuid.UUID) (decimal.Decimal, error) {
	saldo := decimal.Zero
	for _, k := range r.entradas {
		if k.ProductoID != productoID {
			continue
		}
		if k.TipoMovimiento == model.MovEntrada {
			saldo = saldo.Add(k.Cantidad)
		} else {
			saldo = saldo.Sub(k.Cantidad)
		}
	}
	return saldo, nil
}

// porMotivo filters the ledger by reason code, newest last.
func (r *stubKardexRepo) porMotivo(motivo string) []model.InventarioKardex {
	var out []model.InventarioKardex
	for _, k := range r.entradas {
		if k.Motivo == motivo {
			out = append(out, k)
		}
	}
	return out
}

var _ repository.KardexRepository = (*stubKardexRepo)(nil)

// ── Cliente ───────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.clientes[c.ID] = &cp
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClienteRepo) FindByCedula(_ context.Context, cedulaRif string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.CedulaRif == cedulaRif {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	cp := *c
	r.clientes[c.ID] = &cp
	return nil
}

func (r *stubClienteRepo) IncrementarSaldoFavorTx(_ *gorm.DB, id uuid.UUID, monto decimal.Decimal) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.SaldoFavor = c.SaldoFavor.Add(monto)
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Documento ─────────────────────────────────────────────────────────────────

type stubDocumentoRepo struct {
	productos *stubProductoRepo
	clientes  *stubClienteRepo
	docs      map[uuid.UUID]*model.Documento
	porNumero map[string]uuid.UUID
	detalles  map[uuid.UUID][]*model.DocumentoDetalle // by documento ID
}

func newStubDocumentoRepo(productos *stubProductoRepo, clientes *stubClienteRepo) *stubDocumentoRepo {
	return &stubDocumentoRepo{
		productos: productos,
		clientes:  clientes,
		docs:      make(map[uuid.UUID]*model.Documento),
		porNumero: make(map[string]uuid.UUID),
		detalles:  make(map[uuid.UUID][]*model.DocumentoDetalle),
	}
}

func (r *stubDocumentoRepo) CreateTx(_ *gorm.DB, d *model.Documento) error {
	if _, dup := r.porNumero[d.NroDocumento]; dup {
		return errors.New("duplicate key value violates unique constraint")
	}
	d.ID = uuid.New()
	for i := range d.Detalles {
		d.Detalles[i].ID = uuid.New()
		d.Detalles[i].DocumentoID = d.ID
		if p, ok := r.productos.productos[d.Detalles[i].ProductoID]; ok {
			d.Detalles[i].Producto = p
		}
	}
	cabecera := *d
	cabecera.Detalles = nil
	r.docs[d.ID] = &cabecera
	r.porNumero[d.NroDocumento] = d.ID
	for i := range d.Detalles {
		det := d.Detalles[i]
		r.detalles[d.ID] = append(r.detalles[d.ID], &det)
	}
	return nil
}

func (r *stubDocumentoRepo) cargar(id uuid.UUID) (*model.Documento, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	for _, det := range r.detalles[id] {
		cp.Detalles = append(cp.Detalles, *det)
	}
	if c, ok := r.clientes.clientes[d.ClienteID]; ok {
		cp.Cliente = c
	}
	return &cp, nil
}

func (r *stubDocumentoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Documento, error) {
	return r.cargar(id)
}

func (r *stubDocumentoRepo) FindByNumero(_ context.Context, nroDocumento string) (*model.Documento, error) {
	id, ok := r.porNumero[nroDocumento]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.cargar(id)
}

func (r *stubDocumentoRepo) FindByNumeroBloqueadoTx(_ *gorm.DB, nroDocumento string) (*model.Documento, error) {
	id, ok := r.porNumero[nroDocumento]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.docs[id]
	return &cp, nil
}

func (r *stubDocumentoRepo) FindDetallesTx(_ *gorm.DB, documentoID uuid.UUID) ([]model.DocumentoDetalle, error) {
	var out []model.DocumentoDetalle
	for _, det := range r.detalles[documentoID] {
		out = append(out, *det)
	}
	return out, nil
}

func (r *stubDocumentoRepo) IncrementarDevueltoTx(_ *gorm.DB, detalleID uuid.UUID, cantidad decimal.Decimal) error {
	for _, dets := range r.detalles {
		for _, det := range dets {
			if det.ID == detalleID {
				det.CantidadDevuelta = det.CantidadDevuelta.Add(cantidad)
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubDocumentoRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string, motivo *string) error {
	d, ok := r.docs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Estado = estado
	d.MotivoAnulacion = motivo
	return nil
}

func (r *stubDocumentoRepo) TotalesDevolucionTx(_ *gorm.DB, documentoID uuid.UUID) (*repository.TotalesDevolucion, error) {
	t := &repository.TotalesDevolucion{}
	for _, det := range r.detalles[documentoID] {
		t.Cantidad = t.Cantidad.Add(det.Cantidad)
		t.Devuelta = t.Devuelta.Add(det.CantidadDevuelta)
	}
	return t, nil
}

func (r *stubDocumentoRepo) ResumenFiscal(_ context.Context, desde, hasta time.Time) (*repository.ResumenFiscal, error) {
	res := &repository.ResumenFiscal{}
	for _, d := range r.docs {
		if d.TipoDoc != model.DocFactura || d.Estado != model.EstadoProcesado {
			continue
		}
		if d.Fecha.Before(desde) || d.Fecha.After(hasta) {
			continue
		}
		res.CantidadFacturas++
		if res.DocInicial == "" || d.NroDocumento < res.DocInicial {
			res.DocInicial = d.NroDocumento
		}
		if d.NroDocumento > res.DocFinal {
			res.DocFinal = d.NroDocumento
		}
		res.SubtotalBs = res.SubtotalBs.Add(d.SubtotalUsd.Mul(d.TasaCambioMomento))
		res.IvaBs = res.IvaBs.Add(d.ImpuestoIvaUsd.Mul(d.TasaCambioMomento))
		res.TotalBs = res.TotalBs.Add(d.TotalUsd.Mul(d.TasaCambioMomento))
	}
	return res, nil
}

func (r *stubDocumentoRepo) List(_ context.Context, tipoDoc string, _ string, page, limit int) ([]model.Documento, int64, error) {
	var out []model.Documento
	for id := range r.docs {
		d, _ := r.cargar(id)
		if tipoDoc != "" && tipoDoc != "all" && d.TipoDoc != tipoDoc {
			continue
		}
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (r *stubDocumentoRepo) DB() *gorm.DB { return nil }

var _ repository.DocumentoRepository = (*stubDocumentoRepo)(nil)

// ── Caja ──────────────────────────────────────────────────────────────────────

type stubCajaRepo struct {
	sesiones    map[uuid.UUID]*model.SesionCaja
	movimientos []model.CajaMovimiento
	kardex      []model.CajaKardex

	// errCreateSesion, when set, is returned by the next CreateSesionTx.
	errCreateSesion error
}

func newStubCajaRepo() *stubCajaRepo {
	return &stubCajaRepo{sesiones: make(map[uuid.UUID]*model.SesionCaja)}
}

func (r *stubCajaRepo) CreateSesionTx(_ *gorm.DB, s *model.SesionCaja) error {
	if r.errCreateSesion != nil {
		err := r.errCreateSesion
		r.errCreateSesion = nil
		return err
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.sesiones[s.ID] = &cp
	return nil
}

func (r *stubCajaRepo) FindSesionByID(_ context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	s, ok := r.sesiones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubCajaRepo) FindSesionAbiertaPorUsuario(_ context.Context, usuarioID uuid.UUID) (*model.SesionCaja, error) {
	for _, s := range r.sesiones {
		if s.UsuarioID == usuarioID && s.Estado == model.SesionAbierta {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCajaRepo) FindSesionAbierta(_ context.Context) (*model.SesionCaja, error) {
	for _, s := range r.sesiones {
		if s.Estado == model.SesionAbierta {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCajaRepo) UpdateSesionTx(_ *gorm.DB, s *model.SesionCaja) error {
	cp := *s
	r.sesiones[s.ID] = &cp
	return nil
}

func (r *stubCajaRepo) ListSesiones(_ context.Context, limit int) ([]model.SesionCaja, error) {
	var out []model.SesionCaja
	for _, s := range r.sesiones {
		if len(out) == limit {
			break
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubCajaRepo) CreateMovimientoTx(_ *gorm.DB, m *model.CajaMovimiento) error {
	m.ID = uuid.New()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubCajaRepo) CreateKardexTx(_ *gorm.DB, k *model.CajaKardex) error {
	k.ID = uuid.New()
	k.CreatedAt = time.Now()
	r.kardex = append(r.kardex, *k)
	return nil
}

func (r *stubCajaRepo) UltimoKardexTx(_ *gorm.DB, sesionID uuid.UUID) (*model.CajaKardex, error) {
	return r.ultimo(sesionID), nil
}

func (r *stubCajaRepo) UltimoKardex(_ context.Context, sesionID uuid.UUID) (*model.CajaKardex, error) {
	return r.ultimo(sesionID), nil
}

func (r *stubCajaRepo) ultimo(sesionID uuid.UUID) *model.CajaKardex {
	for i := len(r.kardex) - 1; i >= 0; i-- {
		if r.kardex[i].SesionID == sesionID {
			cp := r.kardex[i]
			return &cp
		}
	}
	return nil
}

func (r *stubCajaRepo) ListKardex(_ context.Context, sesionID uuid.UUID) ([]model.CajaKardex, error) {
	var out []model.CajaKardex
	for _, k := range r.kardex {
		if k.SesionID == sesionID {
			out = append(out, k)
		}
	}
	return out, nil
}

func (r *stubCajaRepo) SumarVentasKardex(_ context.Context, sesionID uuid.UUID) (*repository.VentasCaja, error) {
	v := &repository.VentasCaja{}
	for _, k := range r.kardex {
		if k.SesionID != sesionID || (k.Operacion != model.OpVenta && k.Operacion != model.OpNotaEntrega) {
			continue
		}
		v.Usd = decimal.NewNullDecimal(v.Usd.Decimal.Add(k.EntradaUsd).Sub(k.SalidaUsd))
		v.Bs = decimal.NewNullDecimal(v.Bs.Decimal.Add(k.EntradaBs).Sub(k.SalidaBs))
		v.Cop = decimal.NewNullDecimal(v.Cop.Decimal.Add(k.EntradaCop).Sub(k.SalidaCop))
	}
	return v, nil
}

func (r *stubCajaRepo) DB() *gorm.DB { return nil }

var _ repository.CajaRepository = (*stubCajaRepo)(nil)

// ── Compra / maestros ─────────────────────────────────────────────────────────

type stubCompraRepo struct {
	compras []model.Compra
}

func (r *stubCompraRepo) CreateTx(_ *gorm.DB, c *model.Compra) error {
	c.ID = uuid.New()
	r.compras = append(r.compras, *c)
	return nil
}

func (r *stubCompraRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Compra, error) {
	for i := range r.compras {
		if r.compras[i].ID == id {
			return &r.compras[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCompraRepo) ExisteFacturaProveedor(_ context.Context, proveedorID uuid.UUID, nroFactura string) (bool, error) {
	for _, c := range r.compras {
		if c.ProveedorID == proveedorID && c.NroFactura == nroFactura {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCompraRepo) List(_ context.Context, _, _ int) ([]model.Compra, int64, error) {
	return r.compras, int64(len(r.compras)), nil
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

var _ repository.CompraRepository = (*stubCompraRepo)(nil)

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.proveedores[p.ID] = &cp
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProveedorRepo) FindByRif(_ context.Context, rif string) (*model.Proveedor, error) {
	for _, p := range r.proveedores {
		if p.Rif == rif {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProveedorRepo) List(_ context.Context) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	cp := *p
	r.proveedores[p.ID] = &cp
	return nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

type stubCategoriaRepo struct {
	categorias []model.Categoria
}

func (r *stubCategoriaRepo) Create(_ context.Context, c *model.Categoria) error {
	c.ID = uuid.New()
	r.categorias = append(r.categorias, *c)
	return nil
}

func (r *stubCategoriaRepo) List(_ context.Context) ([]model.Categoria, error) {
	return r.categorias, nil
}

func (r *stubCategoriaRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range r.categorias {
		if c.ID == id {
			r.categorias = append(r.categorias[:i], r.categorias[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

// ── Notificador ───────────────────────────────────────────────────────────────

type stubNotificador struct {
	canales []string
}

func (n *stubNotificador) Publicar(_ context.Context, canal string, _ interface{}) {
	n.canales = append(n.canales, canal)
}

// ── Entorno de pruebas ────────────────────────────────────────────────────────

// entorno wires the full service graph over in-memory stubs, mirroring the
// composition root.
type entorno struct {
	configRepo   *stubConfigRepo
	productoRepo *stubProductoRepo
	kardexRepo   *stubKardexRepo
	clienteRepo  *stubClienteRepo
	docRepo      *stubDocumentoRepo
	cajaRepo     *stubCajaRepo
	notif        *stubNotificador

	inventario   service.InventarioService
	caja         service.CajaService
	ventas       service.VentaService
	devoluciones service.DevolucionService
	reportes     service.ReporteService
}

func newEntorno() *entorno {
	e := &entorno{
		configRepo:   newStubConfigRepo(),
		productoRepo: newStubProductoRepo(),
		kardexRepo:   &stubKardexRepo{},
		clienteRepo:  newStubClienteRepo(),
		cajaRepo:     newStubCajaRepo(),
		notif:        &stubNotificador{},
	}
	e.docRepo = newStubDocumentoRepo(e.productoRepo, e.clienteRepo)
	e.inventario = service.NewInventarioService(e.productoRepo, e.kardexRepo, e.notif)
	e.caja = service.NewCajaService(e.cajaRepo)
	e.ventas = service.NewVentaService(e.docRepo, e.configRepo, e.clienteRepo, e.productoRepo, e.inventario, e.caja, e.notif)
	e.devoluciones = service.NewDevolucionService(e.docRepo, e.configRepo, e.clienteRepo, e.inventario, e.caja, e.notif)
	e.reportes = service.NewReporteService(e.docRepo, e.cajaRepo, e.configRepo)
	return e
}

func (e *entorno) seedProducto(codigo, descripcion string, precio float64, stock int64, exento bool) *model.Producto {
	p := &model.Producto{
		ID:            uuid.New(),
		CodigoInterno: codigo,
		Descripcion:   descripcion,
		PrecioUsd:     decimal.NewFromFloat(precio),
		EsExento:      exento,
		StockActual:   decimal.NewFromInt(stock),
		Activo:        true,
	}
	e.productoRepo.productos[p.ID] = p
	return p
}

func (e *entorno) seedCliente(cedula, nombre string) *model.Cliente {
	c := &model.Cliente{ID: uuid.New(), CedulaRif: cedula, Nombre: nombre}
	e.clienteRepo.clientes[c.ID] = c
	return c
}

func (e *entorno) abrirCaja(t *testing.T, usuarioID uuid.UUID, usd, bs, cop float64) uuid.UUID {
	t.Helper()
	resp, err := e.caja.Abrir(context.Background(), usuarioID, dto.AbrirCajaRequest{
		InicialUsd: decimal.NewFromFloat(usd),
		InicialBs:  decimal.NewFromFloat(bs),
		InicialCop: decimal.NewFromFloat(cop),
	})
	require.NoError(t, err)
	return uuid.MustParse(resp.ID)
}

// requireDecimal fails unless actual equals the expected decimal literal.
func requireDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.True(t, actual.Equal(decimal.RequireFromString(expected)),
		"expected %s, got %s", expected, actual.String())
}
