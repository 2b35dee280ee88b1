package service_test

import (
	"context"
	"testing"

	"github.com/luisjoselares/Pegasus-v1/internal/apierror"
	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/model"
	"github.com/luisjoselares/Pegasus-v1/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAjustarStock_Entrada(t *testing.T) {
	e := newEntorno()
	producto := e.seedProducto("HAR-001", "Harina PAN 1kg", 5, 0, false)

	resp, err := e.inventario.AjustarStock(context.Background(), uuid.New(), dto.AjusteStockRequest{
		ProductoID: producto.ID.String(),
		Tipo:       model.MovEntrada,
		Cantidad:   decimal.NewFromInt(12),
		Motivo:     "Carga inicial de inventario",
	})
	require.NoError(t, err)
	requireDecimal(t, "12", resp.StockResultante)
	assert.Equal(t, model.MotivoAjuste, resp.Motivo)

	p, _ := e.productoRepo.FindByID(context.Background(), producto.ID)
	requireDecimal(t, "12", p.StockActual)
	assert.Contains(t, e.notif.canales, worker.CanalInventario)
}

func TestAjustarStock_SalidaNoPuedeDejarNegativo(t *testing.T) {
	e := newEntorno()
	producto := e.seedProducto("HAR-001", "Harina PAN 1kg", 5, 3, false)

	_, err := e.inventario.AjustarStock(context.Background(), uuid.New(), dto.AjusteStockRequest{
		ProductoID: producto.ID.String(),
		Tipo:       model.MovSalida,
		Cantidad:   decimal.NewFromInt(5),
		Motivo:     "Merma por vencimiento",
	})

	rn, ok := apierror.EsReglaNegocio(err)
	require.True(t, ok)
	assert.Equal(t, apierror.CodigoStockInsuficiente, rn.Codigo)

	p, _ := e.productoRepo.FindByID(context.Background(), producto.ID)
	requireDecimal(t, "3", p.StockActual)
}

func TestAjustarStock_CantidadFraccionaria(t *testing.T) {
	e := newEntorno()
	producto := e.seedProducto("QUE-001", "Queso blanco por kg", 8, 0, false)

	resp, err := e.inventario.AjustarStock(context.Background(), uuid.New(), dto.AjusteStockRequest{
		ProductoID: producto.ID.String(),
		Tipo:       model.MovEntrada,
		Cantidad:   decimal.RequireFromString("2.450"),
		Motivo:     "Recepcion por peso",
	})
	require.NoError(t, err)
	requireDecimal(t, "2.450", resp.StockResultante)
}

func TestVerificarStock_CuadraContraKardex(t *testing.T) {
	e := newEntorno()
	producto := e.seedProducto("HAR-001", "Harina PAN 1kg", 5, 0, false)
	usuario := uuid.New()

	for _, mov := range []struct {
		tipo     string
		cantidad int64
	}{
		{model.MovEntrada, 10},
		{model.MovSalida, 4},
		{model.MovEntrada, 1},
	} {
		_, err := e.inventario.AjustarStock(context.Background(), usuario, dto.AjusteStockRequest{
			ProductoID: producto.ID.String(),
			Tipo:       mov.tipo,
			Cantidad:   decimal.NewFromInt(mov.cantidad),
			Motivo:     "Movimiento de prueba",
		})
		require.NoError(t, err)
	}

	resp, err := e.inventario.VerificarStock(context.Background(), producto.ID)
	require.NoError(t, err)
	requireDecimal(t, "7", resp.StockActual)
	requireDecimal(t, "7", resp.StockCalculado)
	assert.True(t, resp.Cuadrado)
}

func TestKardex_DevuelveMovimientosDelProducto(t *testing.T) {
	e := newEntorno()
	producto := e.seedProducto("HAR-001", "Harina PAN 1kg", 5, 0, false)
	otro := e.seedProducto("ARR-001", "Arroz 1kg", 2, 0, false)
	usuario := uuid.New()

	for _, id := range []uuid.UUID{producto.ID, otro.ID, producto.ID} {
		_, err := e.inventario.AjustarStock(context.Background(), usuario, dto.AjusteStockRequest{
			ProductoID: id.String(),
			Tipo:       model.MovEntrada,
			Cantidad:   decimal.NewFromInt(1),
			Motivo:     "Carga",
		})
		require.NoError(t, err)
	}

	entradas, err := e.inventario.Kardex(context.Background(), producto.ID, 50)
	require.NoError(t, err)
	assert.Len(t, entradas, 2)
}
