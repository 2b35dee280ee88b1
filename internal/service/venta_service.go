package service

import (
	"context"
	"fmt"
	"time"

	"github.com/luisjoselares/Pegasus-v1/internal/apierror"
	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/model"
	"github.com/luisjoselares/Pegasus-v1/internal/repository"
	"github.com/luisjoselares/Pegasus-v1/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Document number formats. Facturas, notas de entrega and notas de credito
// run independent series; all three consume the shared fiscal control series.
const (
	formatoFactura     = "FAC-%08d"
	formatoNotaEntrega = "NE-%08d"
	formatoNotaCredito = "NC-%08d"
	formatoControl     = "00-%08d"
)

// tasaIva is the standard SENIAT VAT rate applied to non-exempt lines.
var tasaIva = decimal.NewFromFloat(0.16)

var cien = decimal.NewFromInt(100)

type VentaService interface {
	RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerDocumento(ctx context.Context, nroDocumento string) (*dto.VentaResponse, error)
	ListDocumentos(ctx context.Context, tipoDoc, fecha string, page, limit int) (*dto.DocumentoListResponse, error)
}

type ventaService struct {
	docRepo      repository.DocumentoRepository
	configRepo   repository.ConfiguracionRepository
	clienteRepo  repository.ClienteRepository
	productoRepo repository.ProductoRepository
	inventario   InventarioService
	caja         CajaService
	notificador  worker.Notificador
}

func NewVentaService(
	docRepo repository.DocumentoRepository,
	configRepo repository.ConfiguracionRepository,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	inventario InventarioService,
	caja CajaService,
	notificador worker.Notificador,
) VentaService {
	return &ventaService{
		docRepo:      docRepo,
		configRepo:   configRepo,
		clienteRepo:  clienteRepo,
		productoRepo: productoRepo,
		inventario:   inventario,
		caja:         caja,
		notificador:  notificador,
	}
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// One ACID transaction:
//  1. caller must have an open cash session
//  2. lock the configuracion row, allocate document + control numbers
//  3. compute totals at the captured rate
//  4. per line: lock product, debit stock, append inventory kardex
//  5. settle physical cash (net of change) into the cash kardex
//  6. bump the consumed counters
// A rollback leaves counters, stock and caja untouched. Lock contention is
// surfaced as a concurrency conflict and retried a bounded number of times.

func (s *ventaService) RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	var resp *dto.VentaResponse
	err := conReintentos(func() error {
		var opErr error
		resp, opErr = s.registrarVenta(ctx, usuarioID, req)
		return opErr
	})
	return resp, err
}

func (s *ventaService) registrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	sesion, err := s.caja.SesionAbierta(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido, "cliente_id invalido")
	}
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido, "cliente no encontrado")
	}
	if req.DescuentoPorcentaje.IsNegative() || req.DescuentoPorcentaje.GreaterThan(cien) {
		return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
			"descuento_porcentaje debe estar entre 0 y 100")
	}

	// Resolve products and compute totals outside the transaction; stock is
	// re-checked under lock inside it.
	type lineaVenta struct {
		productoID  uuid.UUID
		descripcion string
		precio      decimal.Decimal
		cantidad    decimal.Decimal
		subtotal    decimal.Decimal
		esExento    bool
	}

	var lineas []lineaVenta
	subtotal := decimal.Zero
	subtotalGravado := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido, "producto_id invalido")
		}
		if !item.Cantidad.IsPositive() {
			return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
				"la cantidad de cada item debe ser mayor que cero")
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
				"producto %s no encontrado", item.ProductoID)
		}
		if !p.Activo {
			return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
				"el producto %s esta inactivo", p.Descripcion)
		}
		precio := p.PrecioUsd
		if req.TipoDoc == model.DocNotaEntrega && !p.EsExento {
			// A nota de entrega prints no tax line, so non-exempt prices
			// carry the tax embedded: the customer pays the same
			// tax-inclusive amount as on a factura.
			precio = precio.Mul(decimal.NewFromInt(1).Add(tasaIva))
		}
		lineaSubtotal := precio.Mul(item.Cantidad)
		subtotal = subtotal.Add(lineaSubtotal)
		if !p.EsExento {
			subtotalGravado = subtotalGravado.Add(lineaSubtotal)
		}
		lineas = append(lineas, lineaVenta{
			productoID:  pid,
			descripcion: p.Descripcion,
			precio:      precio,
			cantidad:    item.Cantidad,
			subtotal:    lineaSubtotal,
			esExento:    p.EsExento,
		})
	}

	descuentoMonto := subtotal.Mul(req.DescuentoPorcentaje).Div(cien).Round(2)

	// Facturas break the IVA out on the taxable base net of the
	// proportional discount. Notas de entrega keep impuesto_iva_usd at
	// zero because the tax already sits inside the line prices.
	iva := decimal.Zero
	if req.TipoDoc == model.DocFactura {
		factorDescuento := decimal.NewFromInt(1).Sub(req.DescuentoPorcentaje.Div(cien))
		iva = subtotalGravado.Mul(factorDescuento).Mul(tasaIva).Round(2)
	}
	total := subtotal.Sub(descuentoMonto).Add(iva).Add(req.ImpuestoIgtfUsd)

	var doc model.Documento
	txErr := runTx(ctx, s.docRepo.DB(), func(tx *gorm.DB) error {
		cfg, err := s.configRepo.ObtenerBloqueadoTx(tx)
		if err != nil {
			return traducirConflicto(err)
		}

		var nroDocumento string
		columnas := []string{repository.ColNroControl}
		switch req.TipoDoc {
		case model.DocFactura:
			nroDocumento = fmt.Sprintf(formatoFactura, cfg.ProximoNroFactura)
			columnas = append(columnas, repository.ColNroFactura)
		case model.DocNotaEntrega:
			nroDocumento = fmt.Sprintf(formatoNotaEntrega, cfg.ProximoNroNe)
			columnas = append(columnas, repository.ColNroNe)
		default:
			return apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
				"tipo de documento no valido: %s", req.TipoDoc)
		}
		nroControl := fmt.Sprintf(formatoControl, cfg.ProximoNroControl)

		ivaRetenidoBs := req.MontoRetenidoUsd.Mul(cfg.TasaBcv).Round(2)

		doc = model.Documento{
			TipoDoc:             req.TipoDoc,
			NroDocumento:        nroDocumento,
			NroControl:          nroControl,
			ClienteID:           clienteID,
			Fecha:               time.Now(),
			TasaCambioMomento:   cfg.TasaBcv,
			SubtotalUsd:         subtotal,
			DescuentoPorcentaje: req.DescuentoPorcentaje,
			DescuentoMonto:      descuentoMonto,
			ImpuestoIvaUsd:      iva,
			ImpuestoIgtfUsd:     req.ImpuestoIgtfUsd,
			TotalUsd:            total,
			MetodoPago:          req.MetodoPago,
			MontoRecibidoUsd:    req.Pagos.UsdEfectivo.Add(req.Pagos.UsdZelle),
			MontoRecibidoBs:     req.Pagos.BsEfectivo.Add(req.Pagos.BsPunto).Add(req.Pagos.BsTransf),
			MontoRecibidoCop:    req.Pagos.CopEfectivo.Add(req.Pagos.CopTransf),
			MontoVueltoUsd:      req.Vuelto.Usd,
			MontoVueltoBs:       req.Vuelto.Bs,
			MontoVueltoCop:      req.Vuelto.Cop,
			PagoUsdEfectivo:     req.Pagos.UsdEfectivo,
			PagoUsdZelle:        req.Pagos.UsdZelle,
			PagoBsEfectivo:      req.Pagos.BsEfectivo,
			PagoBsPunto:         req.Pagos.BsPunto,
			PagoBsTransf:        req.Pagos.BsTransf,
			PagoCopEfectivo:     req.Pagos.CopEfectivo,
			PagoCopTransf:       req.Pagos.CopTransf,
			IvaRetenidoBs:       ivaRetenidoBs,
			DocumentoReferencia: req.ComprobanteRetencion,
			Estado:              model.EstadoProcesado,
			UsuarioID:           usuarioID,
		}
		for _, l := range lineas {
			doc.Detalles = append(doc.Detalles, model.DocumentoDetalle{
				ProductoID:        l.productoID,
				Cantidad:          l.cantidad,
				PrecioUnitarioUsd: l.precio,
				SubtotalUsd:       l.subtotal,
			})
		}
		if err := s.docRepo.CreateTx(tx, &doc); err != nil {
			return traducirConflicto(err)
		}

		motivo := model.MotivoVenta
		if req.TipoDoc == model.DocNotaEntrega {
			motivo = model.MotivoNotaEntrega
		}
		for _, l := range lineas {
			ref := nroDocumento
			if _, err := s.inventario.AplicarMovimientoTx(tx, MovimientoStock{
				ProductoID: l.productoID,
				Tipo:       model.MovSalida,
				Cantidad:   l.cantidad,
				Motivo:     motivo,
				Referencia: &ref,
				UsuarioID:  usuarioID,
			}); err != nil {
				return traducirConflicto(err)
			}
		}

		if err := s.asentarCobroTx(tx, sesion.ID, &doc, usuarioID); err != nil {
			return traducirConflicto(err)
		}

		return s.configRepo.IncrementarCorrelativosTx(tx, columnas...)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.notificador != nil {
		s.notificador.Publicar(ctx, worker.CanalVentas, map[string]interface{}{
			"nro_documento": doc.NroDocumento,
			"tipo_doc":      doc.TipoDoc,
			"total_usd":     doc.TotalUsd.String(),
		})
		s.notificador.Publicar(ctx, worker.CanalInventario, map[string]interface{}{
			"referencia": doc.NroDocumento,
		})
	}

	resp := documentoToResponse(&doc)
	for i, l := range lineas {
		resp.Items[i].Producto = l.descripcion
	}
	return resp, nil
}

// asentarCobroTx posts the sale's physical cash, net of change, into the cash
// kardex. Electronic instruments stay on the document. When the sale nets to
// zero in every currency (fully electronic, or store-credit settled) nothing
// is posted: a zero-movement entry would only pad the chain.
func (s *ventaService) asentarCobroTx(tx *gorm.DB, sesionID uuid.UUID, doc *model.Documento, usuarioID uuid.UUID) error {
	netoUsd := doc.PagoUsdEfectivo.Sub(doc.MontoVueltoUsd)
	netoBs := doc.PagoBsEfectivo.Sub(doc.MontoVueltoBs)
	netoCop := doc.PagoCopEfectivo.Sub(doc.MontoVueltoCop)

	if netoUsd.IsZero() && netoBs.IsZero() && netoCop.IsZero() {
		return nil
	}

	mov := MovimientoCaja{
		SesionID:      sesionID,
		Operacion:     model.OpVenta,
		Descripcion:   "Cobro " + doc.NroDocumento,
		ReferenciaDoc: doc.NroDocumento,
		UsuarioID:     usuarioID,
	}
	if doc.TipoDoc == model.DocNotaEntrega {
		mov.Operacion = model.OpNotaEntrega
	}

	// Change can be given in a currency other than the one received, so a
	// per-currency net may be negative: that leg is an outflow.
	asignar := func(neto decimal.Decimal, entrada, salida *decimal.Decimal) {
		if neto.IsNegative() {
			*salida = neto.Neg()
		} else {
			*entrada = neto
		}
	}
	asignar(netoUsd, &mov.Entrada.Usd, &mov.Salida.Usd)
	asignar(netoBs, &mov.Entrada.Bs, &mov.Salida.Bs)
	asignar(netoCop, &mov.Entrada.Cop, &mov.Salida.Cop)

	_, err := s.caja.RegistrarKardexTx(tx, mov)
	return err
}

func (s *ventaService) ObtenerDocumento(ctx context.Context, nroDocumento string) (*dto.VentaResponse, error) {
	doc, err := s.docRepo.FindByNumero(ctx, nroDocumento)
	if err != nil {
		return nil, err
	}
	return documentoToResponse(doc), nil
}

func (s *ventaService) ListDocumentos(ctx context.Context, tipoDoc, fecha string, page, limit int) (*dto.DocumentoListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	docs, total, err := s.docRepo.List(ctx, tipoDoc, fecha, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(docs))
	for i := range docs {
		data = append(data, *documentoToResponse(&docs[i]))
	}
	return &dto.DocumentoListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func documentoToResponse(d *model.Documento) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(d.Detalles))
	for _, det := range d.Detalles {
		nombre := ""
		if det.Producto != nil {
			nombre = det.Producto.Descripcion
		}
		items = append(items, dto.ItemVentaResponse{
			Producto:          nombre,
			Cantidad:          det.Cantidad,
			PrecioUnitarioUsd: det.PrecioUnitarioUsd,
			SubtotalUsd:       det.SubtotalUsd,
		})
	}
	return &dto.VentaResponse{
		ID:                d.ID.String(),
		TipoDoc:           d.TipoDoc,
		NroDocumento:      d.NroDocumento,
		NroControl:        d.NroControl,
		Estado:            d.Estado,
		TasaCambioMomento: d.TasaCambioMomento,
		SubtotalUsd:       d.SubtotalUsd,
		DescuentoMonto:    d.DescuentoMonto,
		ImpuestoIvaUsd:    d.ImpuestoIvaUsd,
		ImpuestoIgtfUsd:   d.ImpuestoIgtfUsd,
		TotalUsd:          d.TotalUsd,
		TotalBs:           d.TotalUsd.Mul(d.TasaCambioMomento).Round(2),
		IvaRetenidoBs:     d.IvaRetenidoBs,
		Items:             items,
		Fecha:             d.Fecha.Format("2006-01-02T15:04:05Z"),
	}
}
