package service

import (
	"context"
	"errors"
	"strings"

	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/model"
	"github.com/luisjoselares/Pegasus-v1/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductoService is the catalog CRUD. A new product always starts with zero
// stock: inventory enters exclusively through the kardex (purchases or
// manual adjustments), never by editing the product record.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	BuscarPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error)
	List(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo       repository.ProductoRepository
	configRepo repository.ConfiguracionRepository
}

func NewProductoService(repo repository.ProductoRepository, configRepo repository.ConfiguracionRepository) ProductoService {
	return &productoService{repo: repo, configRepo: configRepo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if !req.PrecioUsd.IsPositive() {
		return nil, errors.New("el precio debe ser mayor que cero")
	}
	codigo := strings.TrimSpace(strings.ToUpper(req.CodigoInterno))
	if existing, err := s.repo.FindByCodigo(ctx, codigo); err == nil && existing != nil && existing.ID != uuid.Nil {
		return nil, errors.New("ya existe un producto con el codigo " + codigo)
	}

	p := &model.Producto{
		CodigoInterno: codigo,
		Descripcion:   strings.TrimSpace(req.Descripcion),
		PrecioUsd:     req.PrecioUsd,
		EsExento:      req.EsExento,
		StockActual:   decimal.Zero,
		StockMinimo:   req.StockMinimo,
		Activo:        true,
	}
	if err := asignarRelaciones(p, req.CategoriaID, req.ProveedorID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.conTasas(ctx, p)
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	if !req.PrecioUsd.IsPositive() {
		return nil, errors.New("el precio debe ser mayor que cero")
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}

	// StockActual is deliberately untouchable here.
	p.Descripcion = strings.TrimSpace(req.Descripcion)
	p.PrecioUsd = req.PrecioUsd
	p.EsExento = req.EsExento
	p.StockMinimo = req.StockMinimo
	if err := asignarRelaciones(p, req.CategoriaID, req.ProveedorID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.conTasas(ctx, p)
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	return s.conTasas(ctx, p)
}

func (s *productoService) BuscarPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByCodigo(ctx, strings.TrimSpace(strings.ToUpper(codigo)))
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	return s.conTasas(ctx, p)
}

func (s *productoService) List(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	cfg, err := s.configRepo.Obtener(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i], cfg.TasaBcv, cfg.TasaCop))
	}
	return &dto.ProductoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("producto no encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) conTasas(ctx context.Context, p *model.Producto) (*dto.ProductoResponse, error) {
	cfg, err := s.configRepo.Obtener(ctx)
	if err != nil {
		return nil, err
	}
	return productoToResponse(p, cfg.TasaBcv, cfg.TasaCop), nil
}

func asignarRelaciones(p *model.Producto, categoriaID, proveedorID *string) error {
	p.CategoriaID = nil
	p.ProveedorID = nil
	if categoriaID != nil && *categoriaID != "" {
		id, err := uuid.Parse(*categoriaID)
		if err != nil {
			return errors.New("categoria_id invalido")
		}
		p.CategoriaID = &id
	}
	if proveedorID != nil && *proveedorID != "" {
		id, err := uuid.Parse(*proveedorID)
		if err != nil {
			return errors.New("proveedor_id invalido")
		}
		p.ProveedorID = &id
	}
	return nil
}

func productoToResponse(p *model.Producto, tasaBcv, tasaCop decimal.Decimal) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:            p.ID.String(),
		CodigoInterno: p.CodigoInterno,
		Descripcion:   p.Descripcion,
		PrecioUsd:     p.PrecioUsd,
		PrecioBs:      p.PrecioUsd.Mul(tasaBcv).Round(2),
		PrecioCop:     p.PrecioUsd.Mul(tasaCop).Round(2),
		EsExento:      p.EsExento,
		StockActual:   p.StockActual,
		StockMinimo:   p.StockMinimo,
		Activo:        p.Activo,
	}
	if p.Categoria != nil {
		resp.Categoria = p.Categoria.Nombre
	}
	if p.Proveedor != nil {
		resp.Proveedor = p.Proveedor.RazonSocial
	}
	return resp
}
