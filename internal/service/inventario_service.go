package service

import (
	"context"
	"fmt"

	"github.com/luisjoselares/Pegasus-v1/internal/apierror"
	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/model"
	"github.com/luisjoselares/Pegasus-v1/internal/repository"
	"github.com/luisjoselares/Pegasus-v1/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MovimientoStock describes one stock movement to apply. Referencia carries
// the originating document number when the movement comes from a sale,
// purchase or return.
type MovimientoStock struct {
	ProductoID    uuid.UUID
	Tipo          string // ENTRADA | SALIDA
	Cantidad      decimal.Decimal
	Motivo        string
	Referencia    *string
	ProveedorID   *uuid.UUID
	Observaciones *string
	UsuarioID     uuid.UUID
}

// InventarioService owns the stock ledger. Every stock change (sale,
// purchase, return or manual adjustment) funnels through AplicarMovimientoTx
// so the kardex and productos.stock_actual can never diverge.
type InventarioService interface {
	// AplicarMovimientoTx locks the product row, validates the movement,
	// updates the cached stock and appends the kardex entry, all inside the
	// caller's transaction. Returns the resulting stock.
	AplicarMovimientoTx(tx *gorm.DB, mov MovimientoStock) (decimal.Decimal, error)

	AjustarStock(ctx context.Context, usuarioID uuid.UUID, req dto.AjusteStockRequest) (*dto.KardexInventarioResponse, error)
	Kardex(ctx context.Context, productoID uuid.UUID, limit int) ([]dto.KardexInventarioResponse, error)
	// VerificarStock replays the ledger and compares it against the cached
	// stock, for audit.
	VerificarStock(ctx context.Context, productoID uuid.UUID) (*dto.StockResponse, error)
}

type inventarioService struct {
	productoRepo repository.ProductoRepository
	kardexRepo   repository.KardexRepository
	notificador  worker.Notificador
}

func NewInventarioService(
	productoRepo repository.ProductoRepository,
	kardexRepo repository.KardexRepository,
	notificador worker.Notificador,
) InventarioService {
	return &inventarioService{
		productoRepo: productoRepo,
		kardexRepo:   kardexRepo,
		notificador:  notificador,
	}
}

func (s *inventarioService) AplicarMovimientoTx(tx *gorm.DB, mov MovimientoStock) (decimal.Decimal, error) {
	if !mov.Cantidad.IsPositive() {
		return decimal.Zero, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
			"la cantidad del movimiento debe ser mayor que cero")
	}

	p, err := s.productoRepo.FindBloqueadoTx(tx, mov.ProductoID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("producto %s no encontrado: %w", mov.ProductoID, err)
	}

	var resultante decimal.Decimal
	switch mov.Tipo {
	case model.MovEntrada:
		resultante = p.StockActual.Add(mov.Cantidad)
	case model.MovSalida:
		resultante = p.StockActual.Sub(mov.Cantidad)
		if resultante.IsNegative() {
			return decimal.Zero, apierror.NewReglaNegocio(apierror.CodigoStockInsuficiente,
				"stock insuficiente para %s: disponible %s, solicitado %s",
				p.Descripcion, p.StockActual.String(), mov.Cantidad.String())
		}
	default:
		return decimal.Zero, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
			"tipo de movimiento desconocido: %s", mov.Tipo)
	}

	delta := mov.Cantidad
	if mov.Tipo == model.MovSalida {
		delta = mov.Cantidad.Neg()
	}
	if err := s.productoRepo.UpdateStockTx(tx, mov.ProductoID, delta); err != nil {
		return decimal.Zero, err
	}

	entrada := &model.InventarioKardex{
		ProductoID:      mov.ProductoID,
		TipoMovimiento:  mov.Tipo,
		Cantidad:        mov.Cantidad,
		StockResultante: resultante,
		Motivo:          mov.Motivo,
		Referencia:      mov.Referencia,
		ProveedorID:     mov.ProveedorID,
		Observaciones:   mov.Observaciones,
		UsuarioID:       mov.UsuarioID,
	}
	if err := s.kardexRepo.CrearTx(tx, entrada); err != nil {
		return decimal.Zero, err
	}
	return resultante, nil
}

// AjustarStock applies a manual correction (recount, breakage, initial load)
// as a regular kardex movement.
func (s *inventarioService) AjustarStock(ctx context.Context, usuarioID uuid.UUID, req dto.AjusteStockRequest) (*dto.KardexInventarioResponse, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido, "producto_id invalido")
	}

	var proveedorID *uuid.UUID
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido, "proveedor_id invalido")
		}
		proveedorID = &pid
	}

	var resultante decimal.Decimal
	err = runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		var txErr error
		resultante, txErr = s.AplicarMovimientoTx(tx, MovimientoStock{
			ProductoID:    productoID,
			Tipo:          req.Tipo,
			Cantidad:      req.Cantidad,
			Motivo:        model.MotivoAjuste,
			Referencia:    req.Referencia,
			ProveedorID:   proveedorID,
			Observaciones: &req.Motivo,
			UsuarioID:     usuarioID,
		})
		return txErr
	})
	if err != nil {
		return nil, traducirConflicto(err)
	}

	if s.notificador != nil {
		s.notificador.Publicar(ctx, worker.CanalInventario, map[string]interface{}{
			"producto_id": productoID.String(),
			"stock":       resultante.String(),
		})
	}

	return &dto.KardexInventarioResponse{
		TipoMovimiento:  req.Tipo,
		Cantidad:        req.Cantidad,
		StockResultante: resultante,
		Motivo:          model.MotivoAjuste,
		Referencia:      req.Referencia,
	}, nil
}

func (s *inventarioService) Kardex(ctx context.Context, productoID uuid.UUID, limit int) ([]dto.KardexInventarioResponse, error) {
	if limit < 1 {
		limit = 100
	}
	entradas, err := s.kardexRepo.ListarPorProducto(ctx, productoID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.KardexInventarioResponse, 0, len(entradas))
	for _, k := range entradas {
		out = append(out, dto.KardexInventarioResponse{
			TipoMovimiento:  k.TipoMovimiento,
			Cantidad:        k.Cantidad,
			StockResultante: k.StockResultante,
			Motivo:          k.Motivo,
			Referencia:      k.Referencia,
			Fecha:           k.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return out, nil
}

func (s *inventarioService) VerificarStock(ctx context.Context, productoID uuid.UUID) (*dto.StockResponse, error) {
	p, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, err
	}
	calculado, err := s.kardexRepo.SaldoCalculado(ctx, productoID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		ProductoID:     productoID.String(),
		StockActual:    p.StockActual,
		StockCalculado: calculado,
		Cuadrado:       p.StockActual.Equal(calculado),
	}, nil
}
