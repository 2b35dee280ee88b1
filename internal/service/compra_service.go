package service

import (
	"context"
	"time"

	"github.com/luisjoselares/Pegasus-v1/internal/apierror"
	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/model"
	"github.com/luisjoselares/Pegasus-v1/internal/repository"
	"github.com/luisjoselares/Pegasus-v1/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompraService registers supplier invoices for the libro de compras and
// feeds the received merchandise into the stock ledger.
type CompraService interface {
	RegistrarCompra(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error)
	ListCompras(ctx context.Context, page, limit int) (*dto.CompraListResponse, error)
}

type compraService struct {
	repo          repository.CompraRepository
	proveedorRepo repository.ProveedorRepository
	inventario    InventarioService
	notificador   worker.Notificador
}

func NewCompraService(
	repo repository.CompraRepository,
	proveedorRepo repository.ProveedorRepository,
	inventario InventarioService,
	notificador worker.Notificador,
) CompraService {
	return &compraService{
		repo:          repo,
		proveedorRepo: proveedorRepo,
		inventario:    inventario,
		notificador:   notificador,
	}
}

func (s *compraService) RegistrarCompra(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido, "proveedor_id invalido")
	}
	proveedor, err := s.proveedorRepo.FindByID(ctx, proveedorID)
	if err != nil {
		return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido, "proveedor no encontrado")
	}
	if !req.TasaCambio.IsPositive() {
		return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
			"la tasa de cambio de la compra debe ser mayor que cero")
	}
	fechaEmision, err := time.Parse("2006-01-02", req.FechaEmision)
	if err != nil {
		return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido, "fecha_emision invalida")
	}

	// The same physical invoice must not enter the purchases book twice.
	existe, err := s.repo.ExisteFacturaProveedor(ctx, proveedorID, req.NroFactura)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, apierror.NewReglaNegocio(apierror.CodigoCompraDuplicada,
			"la factura %s del proveedor %s ya fue registrada", req.NroFactura, proveedor.RazonSocial)
	}

	compra := model.Compra{
		ProveedorID:     proveedorID,
		NroFactura:      req.NroFactura,
		NroControl:      req.NroControl,
		FechaEmision:    fechaEmision,
		FechaRegistro:   time.Now(),
		TasaCambio:      req.TasaCambio,
		TotalCompraBs:   req.TotalCompraBs,
		BaseImponibleBs: req.BaseImponibleBs,
		MontoExentoBs:   req.MontoExentoBs,
		ImpuestoIvaBs:   req.ImpuestoIvaBs,
		IvaRetenidoBs:   req.IvaRetenidoBs,
		IgtfPagadoBs:    req.IgtfPagadoBs,
		Observaciones:   req.Observaciones,
		UsuarioID:       usuarioID,
	}
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido, "producto_id invalido")
		}
		compra.Detalles = append(compra.Detalles, model.CompraDetalle{
			ProductoID:      pid,
			Cantidad:        item.Cantidad,
			CostoUnitarioBs: item.CostoUnitarioBs,
		})
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &compra); err != nil {
			return traducirConflicto(err)
		}
		for _, det := range compra.Detalles {
			ref := compra.NroFactura
			if _, err := s.inventario.AplicarMovimientoTx(tx, MovimientoStock{
				ProductoID:  det.ProductoID,
				Tipo:        model.MovEntrada,
				Cantidad:    det.Cantidad,
				Motivo:      model.MotivoCompra,
				Referencia:  &ref,
				ProveedorID: &compra.ProveedorID,
				UsuarioID:   usuarioID,
			}); err != nil {
				return traducirConflicto(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notificador != nil {
		s.notificador.Publicar(ctx, worker.CanalInventario, map[string]interface{}{
			"referencia": compra.NroFactura,
		})
	}

	resp := compraToResponse(&compra)
	resp.Proveedor = proveedor.RazonSocial
	return resp, nil
}

func (s *compraService) ListCompras(ctx context.Context, page, limit int) (*dto.CompraListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	compras, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CompraResponse, 0, len(compras))
	for i := range compras {
		r := compraToResponse(&compras[i])
		if compras[i].Proveedor != nil {
			r.Proveedor = compras[i].Proveedor.RazonSocial
		}
		data = append(data, *r)
	}
	return &dto.CompraListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func compraToResponse(c *model.Compra) *dto.CompraResponse {
	return &dto.CompraResponse{
		ID:            c.ID.String(),
		NroFactura:    c.NroFactura,
		FechaEmision:  c.FechaEmision.Format("2006-01-02"),
		FechaRegistro: c.FechaRegistro.Format("2006-01-02T15:04:05Z"),
		TotalCompraBs: c.TotalCompraBs,
		ImpuestoIvaBs: c.ImpuestoIvaBs,
	}
}
