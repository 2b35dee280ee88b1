package service_test

import (
	"context"
	"testing"

	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productoEntorno() (*stubProductoRepo, *stubConfigRepo, service.ProductoService) {
	repo := newStubProductoRepo()
	configRepo := newStubConfigRepo()
	return repo, configRepo, service.NewProductoService(repo, configRepo)
}

func TestCrearProducto_NormalizaCodigoYArrancaSinStock(t *testing.T) {
	_, _, svc := productoEntorno()

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		CodigoInterno: "  har-001 ",
		Descripcion:   " Harina PAN 1kg ",
		PrecioUsd:     decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	assert.Equal(t, "HAR-001", resp.CodigoInterno)
	assert.Equal(t, "Harina PAN 1kg", resp.Descripcion)
	assert.True(t, resp.Activo)
	requireDecimal(t, "0", resp.StockActual)
	// Bs/COP equivalents come from the current rates (40 and 4000).
	requireDecimal(t, "200", resp.PrecioBs)
	requireDecimal(t, "20000", resp.PrecioCop)
}

func TestCrearProducto_RechazaCodigoDuplicado(t *testing.T) {
	_, _, svc := productoEntorno()

	req := dto.CrearProductoRequest{
		CodigoInterno: "HAR-001",
		Descripcion:   "Harina PAN 1kg",
		PrecioUsd:     decimal.NewFromInt(5),
	}
	_, err := svc.Crear(context.Background(), req)
	require.NoError(t, err)

	req.CodigoInterno = "har-001"
	_, err = svc.Crear(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HAR-001")
}

func TestCrearProducto_RechazaPrecioNoPositivo(t *testing.T) {
	_, _, svc := productoEntorno()

	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		CodigoInterno: "HAR-001",
		Descripcion:   "Harina PAN 1kg",
		PrecioUsd:     decimal.Zero,
	})
	require.Error(t, err)
}

func TestActualizarProducto_NoTocaStock(t *testing.T) {
	repo, _, svc := productoEntorno()

	creado, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		CodigoInterno: "HAR-001",
		Descripcion:   "Harina PAN 1kg",
		PrecioUsd:     decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	id := uuid.MustParse(creado.ID)

	// Inventory enters through the kardex, not the catalog.
	require.NoError(t, repo.UpdateStockTx(nil, id, decimal.NewFromInt(14)))

	resp, err := svc.Actualizar(context.Background(), id, dto.ActualizarProductoRequest{
		Descripcion: "Harina PAN precocida 1kg",
		PrecioUsd:   decimal.RequireFromString("5.50"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Harina PAN precocida 1kg", resp.Descripcion)
	requireDecimal(t, "5.5", resp.PrecioUsd)
	requireDecimal(t, "14", resp.StockActual)
}

func TestBuscarPorCodigo_IgnoraInactivos(t *testing.T) {
	_, _, svc := productoEntorno()

	creado, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		CodigoInterno: "HAR-001",
		Descripcion:   "Harina PAN 1kg",
		PrecioUsd:     decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	encontrado, err := svc.BuscarPorCodigo(context.Background(), "har-001")
	require.NoError(t, err)
	assert.Equal(t, creado.ID, encontrado.ID)

	require.NoError(t, svc.Desactivar(context.Background(), uuid.MustParse(creado.ID)))
	_, err = svc.BuscarPorCodigo(context.Background(), "HAR-001")
	require.Error(t, err)
}

func TestListProductos_RevaluaConTasasActuales(t *testing.T) {
	_, configRepo, svc := productoEntorno()

	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		CodigoInterno: "HAR-001",
		Descripcion:   "Harina PAN 1kg",
		PrecioUsd:     decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	configRepo.cfg.TasaBcv = decimal.NewFromInt(50)

	lista, err := svc.List(context.Background(), dto.ProductoFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), lista.Total)
	requireDecimal(t, "250", lista.Data[0].PrecioBs)
}
