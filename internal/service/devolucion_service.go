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

// DevolucionService processes returns against facturas: it emits the nota de
// credito, restocks the returned items, refunds the customer and voids the
// factura automatically once every unit has come back.
type DevolucionService interface {
	BuscarFactura(ctx context.Context, nroFactura string) (*dto.FacturaDevolucionResponse, error)
	ProcesarDevolucion(ctx context.Context, usuarioID uuid.UUID, req dto.ProcesarDevolucionRequest) (*dto.DevolucionResponse, error)
}

type devolucionService struct {
	docRepo     repository.DocumentoRepository
	configRepo  repository.ConfiguracionRepository
	clienteRepo repository.ClienteRepository
	inventario  InventarioService
	caja        CajaService
	notificador worker.Notificador
}

func NewDevolucionService(
	docRepo repository.DocumentoRepository,
	configRepo repository.ConfiguracionRepository,
	clienteRepo repository.ClienteRepository,
	inventario InventarioService,
	caja CajaService,
	notificador worker.Notificador,
) DevolucionService {
	return &devolucionService{
		docRepo:     docRepo,
		configRepo:  configRepo,
		clienteRepo: clienteRepo,
		inventario:  inventario,
		caja:        caja,
		notificador: notificador,
	}
}

// BuscarFactura loads a factura with its returnable balance per line. Only
// facturas admit returns; notas de entrega are non-fiscal and notas de
// credito are themselves the result of one.
func (s *devolucionService) BuscarFactura(ctx context.Context, nroFactura string) (*dto.FacturaDevolucionResponse, error) {
	doc, err := s.docRepo.FindByNumero(ctx, nroFactura)
	if err != nil {
		return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
			"factura %s no encontrada", nroFactura)
	}
	if doc.TipoDoc != model.DocFactura {
		return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
			"el documento %s no es una factura", nroFactura)
	}

	resp := &dto.FacturaDevolucionResponse{
		NroDocumento:      doc.NroDocumento,
		TasaCambioMomento: doc.TasaCambioMomento,
		TotalUsd:          doc.TotalUsd,
	}
	if doc.Cliente != nil {
		resp.Cliente = doc.Cliente.Nombre
		resp.CedulaRif = doc.Cliente.CedulaRif
	}
	for _, det := range doc.Detalles {
		d := dto.DetalleFacturaResponse{
			DetalleID:         det.ID.String(),
			ProductoID:        det.ProductoID.String(),
			Cantidad:          det.Cantidad,
			CantidadDevuelta:  det.CantidadDevuelta,
			Disponible:        det.Cantidad.Sub(det.CantidadDevuelta),
			PrecioUnitarioUsd: det.PrecioUnitarioUsd,
		}
		if det.Producto != nil {
			d.CodigoInterno = det.Producto.CodigoInterno
			d.Descripcion = det.Producto.Descripcion
			d.EsExento = det.Producto.EsExento
		}
		resp.Detalles = append(resp.Detalles, d)
	}
	return resp, nil
}

// ── ProcesarDevolucion ────────────────────────────────────────────────────────
// One ACID transaction:
//  1. lock the factura header (concurrent returns serialize)
//  2. cap each line at cantidad - cantidad_devuelta
//  3. allocate the NC number and control number
//  4. restock each returned line, accumulate cantidad_devuelta
//  5. refund: cash (checked against the drawer) or store credit
//  6. void the factura when nothing remains to return

func (s *devolucionService) ProcesarDevolucion(ctx context.Context, usuarioID uuid.UUID, req dto.ProcesarDevolucionRequest) (*dto.DevolucionResponse, error) {
	var resp *dto.DevolucionResponse
	err := conReintentos(func() error {
		var opErr error
		resp, opErr = s.procesarDevolucion(ctx, usuarioID, req)
		return opErr
	})
	return resp, err
}

func (s *devolucionService) procesarDevolucion(ctx context.Context, usuarioID uuid.UUID, req dto.ProcesarDevolucionRequest) (*dto.DevolucionResponse, error) {
	esEfectivo := req.MetodoReembolso != dto.ReembolsoSaldoFavor

	// Cash refunds leave the drawer; they need the caller's open session.
	var sesion *model.SesionCaja
	if esEfectivo {
		var err error
		sesion, err = s.caja.SesionAbierta(ctx, usuarioID)
		if err != nil {
			return nil, err
		}
	}

	var resp *dto.DevolucionResponse
	txErr := runTx(ctx, s.docRepo.DB(), func(tx *gorm.DB) error {
		factura, err := s.docRepo.FindByNumeroBloqueadoTx(tx, req.NroFactura)
		if err != nil {
			return apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
				"factura %s no encontrada", req.NroFactura)
		}
		if factura.TipoDoc != model.DocFactura {
			return apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
				"el documento %s no es una factura", req.NroFactura)
		}
		if factura.Estado != model.EstadoProcesado {
			return apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
				"la factura %s ya esta anulada", req.NroFactura)
		}

		detalles, err := s.docRepo.FindDetallesTx(tx, factura.ID)
		if err != nil {
			return err
		}
		porID := make(map[string]*model.DocumentoDetalle, len(detalles))
		for i := range detalles {
			porID[detalles[i].ID.String()] = &detalles[i]
		}

		type lineaDevolucion struct {
			detalle  *model.DocumentoDetalle
			cantidad decimal.Decimal
		}
		var lineas []lineaDevolucion
		subtotal := decimal.Zero
		subtotalGravado := decimal.Zero

		for _, item := range req.Items {
			det, ok := porID[item.DetalleID]
			if !ok {
				return apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
					"el detalle %s no pertenece a la factura", item.DetalleID)
			}
			if !item.Cantidad.IsPositive() {
				return apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
					"la cantidad a devolver debe ser mayor que cero")
			}
			disponible := det.Cantidad.Sub(det.CantidadDevuelta)
			if item.Cantidad.GreaterThan(disponible) {
				return apierror.NewReglaNegocio(apierror.CodigoDevolucionExcedida,
					"cantidad a devolver excede lo disponible: disponible %s, solicitado %s",
					disponible.String(), item.Cantidad.String())
			}
			lineaSubtotal := det.PrecioUnitarioUsd.Mul(item.Cantidad)
			subtotal = subtotal.Add(lineaSubtotal)
			if det.Producto != nil && !det.Producto.EsExento {
				subtotalGravado = subtotalGravado.Add(lineaSubtotal)
			}
			lineas = append(lineas, lineaDevolucion{detalle: det, cantidad: item.Cantidad})
		}

		// The NC mirrors the factura's commercial terms: same discount rate,
		// same tax treatment, same captured exchange rate.
		descuento := subtotal.Mul(factura.DescuentoPorcentaje).Div(cien).Round(2)
		factorDescuento := decimal.NewFromInt(1).Sub(factura.DescuentoPorcentaje.Div(cien))
		iva := subtotalGravado.Mul(factorDescuento).Mul(tasaIva).Round(2)
		total := subtotal.Sub(descuento).Add(iva)

		cfg, err := s.configRepo.ObtenerBloqueadoTx(tx)
		if err != nil {
			return traducirConflicto(err)
		}
		nroNc := fmt.Sprintf(formatoNotaCredito, cfg.ProximoNroNc)
		nroControl := fmt.Sprintf(formatoControl, cfg.ProximoNroControl)

		facturaRef := factura.NroDocumento
		nc := model.Documento{
			TipoDoc:             model.DocNotaCredito,
			NroDocumento:        nroNc,
			NroControl:          nroControl,
			ClienteID:           factura.ClienteID,
			Fecha:               time.Now(),
			TasaCambioMomento:   factura.TasaCambioMomento,
			SubtotalUsd:         subtotal,
			DescuentoPorcentaje: factura.DescuentoPorcentaje,
			DescuentoMonto:      descuento,
			ImpuestoIvaUsd:      iva,
			TotalUsd:            total,
			MetodoPago:          req.MetodoReembolso,
			DocumentoReferencia: &facturaRef,
			Estado:              model.EstadoProcesado,
			UsuarioID:           usuarioID,
		}
		for _, l := range lineas {
			nc.Detalles = append(nc.Detalles, model.DocumentoDetalle{
				ProductoID:        l.detalle.ProductoID,
				Cantidad:          l.cantidad,
				PrecioUnitarioUsd: l.detalle.PrecioUnitarioUsd,
				SubtotalUsd:       l.detalle.PrecioUnitarioUsd.Mul(l.cantidad),
			})
		}
		if err := s.docRepo.CreateTx(tx, &nc); err != nil {
			return traducirConflicto(err)
		}

		for _, l := range lineas {
			ref := nroNc
			if _, err := s.inventario.AplicarMovimientoTx(tx, MovimientoStock{
				ProductoID: l.detalle.ProductoID,
				Tipo:       model.MovEntrada,
				Cantidad:   l.cantidad,
				Motivo:     model.MotivoDevolucion,
				Referencia: &ref,
				UsuarioID:  usuarioID,
			}); err != nil {
				return traducirConflicto(err)
			}
			if err := s.docRepo.IncrementarDevueltoTx(tx, l.detalle.ID, l.cantidad); err != nil {
				return err
			}
		}

		monto, err := s.reembolsarTx(tx, sesion, factura, cfg, req.MetodoReembolso, total, nroNc, usuarioID)
		if err != nil {
			return err
		}

		// Void the factura once every unit has been returned. The aggregate
		// runs after the increments so it sees them.
		anulada := false
		totales, err := s.docRepo.TotalesDevolucionTx(tx, factura.ID)
		if err != nil {
			return err
		}
		if totales.Devuelta.GreaterThanOrEqual(totales.Cantidad) {
			motivo := "Devolucion total mediante " + nroNc
			if err := s.docRepo.UpdateEstadoTx(tx, factura.ID, model.EstadoAnulado, &motivo); err != nil {
				return err
			}
			anulada = true
		}

		if err := s.configRepo.IncrementarCorrelativosTx(tx, repository.ColNroNc, repository.ColNroControl); err != nil {
			return err
		}

		resp = &dto.DevolucionResponse{
			NroNotaCredito:  nroNc,
			NroControl:      nroControl,
			FacturaAfectada: factura.NroDocumento,
			SubtotalUsd:     subtotal,
			ImpuestoIvaUsd:  iva,
			TotalUsd:        total,
			MetodoReembolso: req.MetodoReembolso,
			MontoReembolso:  monto,
			FacturaAnulada:  anulada,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.notificador != nil {
		s.notificador.Publicar(ctx, worker.CanalInventario, map[string]interface{}{
			"referencia": resp.NroNotaCredito,
		})
		s.notificador.Publicar(ctx, worker.CanalVentas, map[string]interface{}{
			"nro_documento": resp.NroNotaCredito,
			"tipo_doc":      model.DocNotaCredito,
			"total_usd":     resp.TotalUsd.String(),
		})
	}
	return resp, nil
}

// reembolsarTx pays the customer back. Cash refunds convert at the rate the
// customer originally paid under for Bs (the factura's captured rate) and at
// the current rate for COP; both are checked against the drawer balance.
// Store credit is USD and never touches the drawer.
func (s *devolucionService) reembolsarTx(
	tx *gorm.DB,
	sesion *model.SesionCaja,
	factura *model.Documento,
	cfg *model.Configuracion,
	metodo string,
	totalUsd decimal.Decimal,
	nroNc string,
	usuarioID uuid.UUID,
) (decimal.Decimal, error) {
	if metodo == dto.ReembolsoSaldoFavor {
		return totalUsd, s.clienteRepo.IncrementarSaldoFavorTx(tx, factura.ClienteID, totalUsd)
	}

	mov := MovimientoCaja{
		SesionID:        sesion.ID,
		Operacion:       model.OpEgreso,
		Descripcion:     "Reembolso " + nroNc,
		ReferenciaDoc:   nroNc,
		UsuarioID:       usuarioID,
		VerificarFondos: true,
	}

	var monto decimal.Decimal
	switch metodo {
	case dto.ReembolsoEfectivoUsd:
		monto = totalUsd
		mov.Salida.Usd = monto
	case dto.ReembolsoEfectivoBs:
		monto = totalUsd.Mul(factura.TasaCambioMomento).Round(2)
		mov.Salida.Bs = monto
	case dto.ReembolsoEfectivoCop:
		monto = totalUsd.Mul(cfg.TasaCop).Round(2)
		mov.Salida.Cop = monto
	default:
		return decimal.Zero, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
			"metodo de reembolso desconocido: %s", metodo)
	}

	if _, err := s.caja.RegistrarKardexTx(tx, mov); err != nil {
		return decimal.Zero, err
	}
	return monto, nil
}
