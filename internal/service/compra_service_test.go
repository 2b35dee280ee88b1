package service_test

import (
	"context"
	"testing"

	"github.com/luisjoselares/Pegasus-v1/internal/apierror"
	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/model"
	"github.com/luisjoselares/Pegasus-v1/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compraEntorno() (*entorno, *stubCompraRepo, *stubProveedorRepo, service.CompraService, *model.Proveedor) {
	e := newEntorno()
	compraRepo := &stubCompraRepo{}
	proveedorRepo := newStubProveedorRepo()
	svc := service.NewCompraService(compraRepo, proveedorRepo, e.inventario, e.notif)

	proveedor := &model.Proveedor{ID: uuid.New(), Rif: "J987654321", RazonSocial: "Alimentos Polar CA", Activo: true}
	proveedorRepo.proveedores[proveedor.ID] = proveedor
	return e, compraRepo, proveedorRepo, svc, proveedor
}

func TestRegistrarCompra_AumentaStock(t *testing.T) {
	e, _, _, svc, proveedor := compraEntorno()
	producto := e.seedProducto("HAR-001", "Harina PAN 1kg", 5, 2, false)

	resp, err := svc.RegistrarCompra(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID:   proveedor.ID.String(),
		NroFactura:    "F-00012345",
		FechaEmision:  "2026-08-20",
		TasaCambio:    decimal.NewFromInt(40),
		TotalCompraBs: decimal.NewFromInt(4640),
		ImpuestoIvaBs: decimal.NewFromInt(640),
		Items: []dto.ItemCompraRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(20), CostoUnitarioBs: decimal.NewFromInt(200)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Alimentos Polar CA", resp.Proveedor)

	p, _ := e.productoRepo.FindByID(context.Background(), producto.ID)
	requireDecimal(t, "22", p.StockActual)

	entradas := e.kardexRepo.porMotivo(model.MotivoCompra)
	require.Len(t, entradas, 1)
	assert.Equal(t, "F-00012345", *entradas[0].Referencia)
	require.NotNil(t, entradas[0].ProveedorID)
	assert.Equal(t, proveedor.ID, *entradas[0].ProveedorID)
}

func TestRegistrarCompra_FacturaDuplicada(t *testing.T) {
	e, _, _, svc, proveedor := compraEntorno()
	producto := e.seedProducto("HAR-001", "Harina PAN 1kg", 5, 0, false)

	req := dto.RegistrarCompraRequest{
		ProveedorID:  proveedor.ID.String(),
		NroFactura:   "F-00012345",
		FechaEmision: "2026-08-20",
		TasaCambio:   decimal.NewFromInt(40),
		Items: []dto.ItemCompraRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(5), CostoUnitarioBs: decimal.NewFromInt(200)},
		},
	}
	_, err := svc.RegistrarCompra(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	_, err = svc.RegistrarCompra(context.Background(), uuid.New(), req)
	rn, ok := apierror.EsReglaNegocio(err)
	require.True(t, ok)
	assert.Equal(t, apierror.CodigoCompraDuplicada, rn.Codigo)
}

func TestRegistrarCompra_TasaInvalida(t *testing.T) {
	e, _, _, svc, proveedor := compraEntorno()
	producto := e.seedProducto("HAR-001", "Harina PAN 1kg", 5, 0, false)

	_, err := svc.RegistrarCompra(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID:  proveedor.ID.String(),
		NroFactura:   "F-1",
		FechaEmision: "2026-08-20",
		TasaCambio:   decimal.Zero,
		Items: []dto.ItemCompraRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(5), CostoUnitarioBs: decimal.NewFromInt(200)},
		},
	})
	rn, ok := apierror.EsReglaNegocio(err)
	require.True(t, ok)
	assert.Equal(t, apierror.CodigoDocumentoInvalido, rn.Codigo)
}
