//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luisjoselares/Pegasus-v1/internal/config"
	"github.com/luisjoselares/Pegasus-v1/internal/infra"
	"github.com/luisjoselares/Pegasus-v1/internal/router"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type testEnv struct {
	server  *httptest.Server
	usuario string // acting operator, sent as X-Usuario-ID
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func (env *testEnv) do(t *testing.T, method, path string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, env.server.URL+path, body)
	} else {
		req, err = http.NewRequest(method, env.server.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Usuario-ID", env.usuario)
	resp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("pegasus_test"),
		tcPostgres.WithUsername("pegasus"),
		tcPostgres.WithPassword("pegasus"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:           8000,
		Env:            "test",
		WorkerPoolSize: 1,
		DatabaseURL:    pgURL,
		RedisURL:       rdURL,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	env := &testEnv{server: srv, usuario: uuid.New().String()}

	// Exchange rates start unset; the terminal publishes them at startup.
	tasasResp := env.do(t, "PUT", "/v1/configuracion/tasas",
		jsonBody(t, map[string]any{"tasa_bcv": "40", "tasa_cop": "4000"}))
	require.Equal(t, http.StatusOK, tasasResp.StatusCode)
	tasasResp.Body.Close()

	return env
}

func (env *testEnv) crearProducto(t *testing.T, codigo, descripcion string, precio string) string {
	t.Helper()
	resp := env.do(t, "POST", "/v1/productos", jsonBody(t, map[string]any{
		"codigo_interno": codigo,
		"descripcion":    descripcion,
		"precio_usd":     precio,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

func (env *testEnv) crearCliente(t *testing.T, cedula, nombre string) string {
	t.Helper()
	resp := env.do(t, "POST", "/v1/clientes", jsonBody(t, map[string]any{
		"cedula_rif": cedula,
		"nombre":     nombre,
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cliente struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &cliente)
	return cliente.ID
}

func (env *testEnv) ajustarStock(t *testing.T, productoID string, cantidad string) {
	t.Helper()
	resp := env.do(t, "POST", "/v1/inventario/ajuste", jsonBody(t, map[string]any{
		"producto_id": productoID,
		"tipo":        "ENTRADA",
		"cantidad":    cantidad,
		"motivo":      "Carga inicial de inventario",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func (env *testEnv) abrirCaja(t *testing.T, usd string) string {
	t.Helper()
	resp := env.do(t, "POST", "/v1/caja/abrir", jsonBody(t, map[string]any{
		"inicial_usd": usd,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sesion struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &sesion)
	return sesion.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CicloFiscalCompleto(t *testing.T) {
	env := setupTestEnv(t)

	clienteID := env.crearCliente(t, "V-12.345.678", "Maria Perez")
	productoID := env.crearProducto(t, "HAR-001", "Harina PAN 1kg", "5")
	env.ajustarStock(t, productoID, "10")
	sesionID := env.abrirCaja(t, "50")

	// Factura: 2 x $5 gravado, IVA 16%, paid in cash USD.
	ventaResp := env.do(t, "POST", "/v1/ventas", jsonBody(t, map[string]any{
		"tipo_doc":   "FACTURA",
		"cliente_id": clienteID,
		"items": []map[string]any{
			{"producto_id": productoID, "cantidad": "2"},
		},
		"pagos": map[string]any{"usd_efectivo": "11.60"},
	}))
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var venta struct {
		NroDocumento string          `json:"nro_documento"`
		NroControl   string          `json:"nro_control"`
		TotalUsd     decimal.Decimal `json:"total_usd"`
		TotalBs      decimal.Decimal `json:"total_bs"`
	}
	decodeJSON(t, ventaResp, &venta)
	assert.Equal(t, "FAC-00000001", venta.NroDocumento)
	assert.Equal(t, "00-00000001", venta.NroControl)
	assert.True(t, venta.TotalUsd.Equal(decimal.RequireFromString("11.60")), "total %s", venta.TotalUsd)
	assert.True(t, venta.TotalBs.Equal(decimal.NewFromInt(464)), "total bs %s", venta.TotalBs)

	// Stock moved through the kardex and still squares against it.
	verResp := env.do(t, "GET", "/v1/inventario/"+productoID+"/verificar", nil)
	require.Equal(t, http.StatusOK, verResp.StatusCode)
	var stock struct {
		StockActual decimal.Decimal `json:"stock_actual"`
		Cuadrado    bool            `json:"cuadrado"`
	}
	decodeJSON(t, verResp, &stock)
	assert.True(t, stock.StockActual.Equal(decimal.NewFromInt(8)), "stock %s", stock.StockActual)
	assert.True(t, stock.Cuadrado)

	// Partial return of 1 unit, refunded from the drawer in USD.
	factResp := env.do(t, "GET", "/v1/devoluciones/factura/"+venta.NroDocumento, nil)
	require.Equal(t, http.StatusOK, factResp.StatusCode)
	var factura struct {
		Detalles []struct {
			DetalleID string `json:"detalle_id"`
		} `json:"detalles"`
	}
	decodeJSON(t, factResp, &factura)
	require.Len(t, factura.Detalles, 1)

	devResp := env.do(t, "POST", "/v1/devoluciones", jsonBody(t, map[string]any{
		"nro_factura": venta.NroDocumento,
		"items": []map[string]any{
			{"detalle_id": factura.Detalles[0].DetalleID, "cantidad": "1"},
		},
		"metodo_reembolso": "EFECTIVO_USD",
	}))
	require.Equal(t, http.StatusCreated, devResp.StatusCode)
	var nc struct {
		NroNotaCredito string          `json:"nro_nota_credito"`
		NroControl     string          `json:"nro_control"`
		MontoReembolso decimal.Decimal `json:"monto_reembolso"`
		FacturaAnulada bool            `json:"factura_anulada"`
	}
	decodeJSON(t, devResp, &nc)
	assert.Equal(t, "NC-00000001", nc.NroNotaCredito)
	assert.Equal(t, "00-00000002", nc.NroControl)
	assert.True(t, nc.MontoReembolso.Equal(decimal.RequireFromString("5.80")), "reembolso %s", nc.MontoReembolso)
	assert.False(t, nc.FacturaAnulada)

	// Close the drawer: 50 + 11.60 - 5.80 = 55.80 expected in USD.
	cierreResp := env.do(t, "POST", "/v1/caja/cerrar", jsonBody(t, map[string]any{
		"sesion_id":   sesionID,
		"contado_usd": "55.80",
	}))
	require.Equal(t, http.StatusOK, cierreResp.StatusCode)
	var cierre struct {
		Estado     string `json:"estado"`
		Diferencia struct {
			Usd decimal.Decimal `json:"usd"`
		} `json:"diferencia"`
	}
	decodeJSON(t, cierreResp, &cierre)
	assert.Equal(t, "CERRADA", cierre.Estado)
	assert.True(t, cierre.Diferencia.Usd.IsZero(), "diferencia %s", cierre.Diferencia.Usd)

	// Z report seals the shift under its own number series.
	zResp := env.do(t, "POST", "/v1/reportes/z/"+sesionID, nil)
	require.Equal(t, http.StatusCreated, zResp.StatusCode)
	var z struct {
		Tipo    string  `json:"tipo"`
		NumeroZ *string `json:"numero_z"`
		Fiscal  struct {
			CantidadFacturas int64           `json:"cantidad_facturas"`
			IvaBs            decimal.Decimal `json:"iva_bs"`
		} `json:"fiscal"`
	}
	decodeJSON(t, zResp, &z)
	assert.Equal(t, "Z", z.Tipo)
	require.NotNil(t, z.NumeroZ)
	assert.Equal(t, "00000001", *z.NumeroZ)
	assert.Equal(t, int64(1), z.Fiscal.CantidadFacturas)
	assert.True(t, z.Fiscal.IvaBs.Equal(decimal.NewFromInt(64)), "iva bs %s", z.Fiscal.IvaBs)
}

func TestE2E_VentaFallidaNoConsumeNumeracion(t *testing.T) {
	env := setupTestEnv(t)

	clienteID := env.crearCliente(t, "V-22.222.222", "Luisa Torres")
	conStock := env.crearProducto(t, "HAR-001", "Harina PAN 1kg", "5")
	sinStock := env.crearProducto(t, "ACE-001", "Aceite 1L", "8")
	env.ajustarStock(t, conStock, "5")
	env.abrirCaja(t, "0")

	// Second line has no stock: the whole sale rolls back.
	resp := env.do(t, "POST", "/v1/ventas", jsonBody(t, map[string]any{
		"tipo_doc":   "FACTURA",
		"cliente_id": clienteID,
		"items": []map[string]any{
			{"producto_id": conStock, "cantidad": "2"},
			{"producto_id": sinStock, "cantidad": "1"},
		},
	}))
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var apiErr struct {
		Codigo string `json:"codigo"`
	}
	decodeJSON(t, resp, &apiErr)
	assert.Equal(t, "STOCK_INSUFICIENTE", apiErr.Codigo)

	// The first line's debit did not survive the rollback.
	verResp := env.do(t, "GET", "/v1/inventario/"+conStock+"/verificar", nil)
	require.Equal(t, http.StatusOK, verResp.StatusCode)
	var stock struct {
		StockActual decimal.Decimal `json:"stock_actual"`
		Cuadrado    bool            `json:"cuadrado"`
	}
	decodeJSON(t, verResp, &stock)
	assert.True(t, stock.StockActual.Equal(decimal.NewFromInt(5)), "stock %s", stock.StockActual)
	assert.True(t, stock.Cuadrado)

	// No kardex rows either, beyond the initial load.
	kardexResp := env.do(t, "GET", "/v1/inventario/"+conStock+"/kardex", nil)
	require.Equal(t, http.StatusOK, kardexResp.StatusCode)
	var kardex []struct {
		Motivo string `json:"motivo"`
	}
	decodeJSON(t, kardexResp, &kardex)
	require.Len(t, kardex, 1)
	assert.Equal(t, "AJUSTE", kardex[0].Motivo)

	// The failed attempt consumed no number: the next sale opens the series.
	okResp := env.do(t, "POST", "/v1/ventas", jsonBody(t, map[string]any{
		"tipo_doc":   "FACTURA",
		"cliente_id": clienteID,
		"items": []map[string]any{
			{"producto_id": conStock, "cantidad": "1"},
		},
		"pagos": map[string]any{"usd_efectivo": "5.80"},
	}))
	require.Equal(t, http.StatusCreated, okResp.StatusCode)
	var venta struct {
		NroDocumento string `json:"nro_documento"`
		NroControl   string `json:"nro_control"`
	}
	decodeJSON(t, okResp, &venta)
	assert.Equal(t, "FAC-00000001", venta.NroDocumento)
	assert.Equal(t, "00-00000001", venta.NroControl)
}

func TestE2E_VentaSinCajaRechazada(t *testing.T) {
	env := setupTestEnv(t)

	clienteID := env.crearCliente(t, "V-11.111.111", "Pedro Gomez")
	productoID := env.crearProducto(t, "ARR-001", "Arroz 1kg", "2")
	env.ajustarStock(t, productoID, "5")

	resp := env.do(t, "POST", "/v1/ventas", jsonBody(t, map[string]any{
		"tipo_doc":   "FACTURA",
		"cliente_id": clienteID,
		"items": []map[string]any{
			{"producto_id": productoID, "cantidad": "1"},
		},
	}))
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var apiErr struct {
		Codigo string `json:"codigo"`
	}
	decodeJSON(t, resp, &apiErr)
	assert.Equal(t, "SIN_CAJA_ABIERTA", apiErr.Codigo)
}

func TestE2E_CompraDuplicadaRechazada(t *testing.T) {
	env := setupTestEnv(t)

	provResp := env.do(t, "POST", "/v1/proveedores", jsonBody(t, map[string]any{
		"rif":          "J-30137013-9",
		"razon_social": "Alimentos Polar CA",
	}))
	require.Equal(t, http.StatusOK, provResp.StatusCode)
	var prov struct {
		ID string `json:"id"`
	}
	decodeJSON(t, provResp, &prov)

	productoID := env.crearProducto(t, "HAR-001", "Harina PAN 1kg", "5")

	compra := map[string]any{
		"proveedor_id":  prov.ID,
		"nro_factura":   "F-00012345",
		"fecha_emision": "2026-08-27",
		"tasa_cambio":   "40",
		"items": []map[string]any{
			{"producto_id": productoID, "cantidad": "20", "costo_unitario_bs": "120"},
		},
	}
	first := env.do(t, "POST", "/v1/compras", jsonBody(t, compra))
	require.Equal(t, http.StatusCreated, first.StatusCode)
	first.Body.Close()

	second := env.do(t, "POST", "/v1/compras", jsonBody(t, compra))
	require.Equal(t, http.StatusConflict, second.StatusCode)
	var apiErr struct {
		Codigo string `json:"codigo"`
	}
	decodeJSON(t, second, &apiErr)
	assert.Equal(t, "COMPRA_DUPLICADA", apiErr.Codigo)

	// The delivery did land once: 20 units on hand.
	verResp := env.do(t, "GET", "/v1/inventario/"+productoID+"/verificar", nil)
	require.Equal(t, http.StatusOK, verResp.StatusCode)
	var stock struct {
		StockActual decimal.Decimal `json:"stock_actual"`
	}
	decodeJSON(t, verResp, &stock)
	assert.True(t, stock.StockActual.Equal(decimal.NewFromInt(20)), "stock %s", stock.StockActual)
}

func TestE2E_EscrituraSinUsuarioRechazada(t *testing.T) {
	env := setupTestEnv(t)

	req, err := http.NewRequest("POST", env.server.URL+"/v1/caja/abrir",
		jsonBody(t, map[string]any{"inicial_usd": "10"}))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
