package dto

import "github.com/shopspring/decimal"

type AjusteStockRequest struct {
	ProductoID    string          `json:"producto_id" validate:"required,uuid"`
	Tipo          string          `json:"tipo"        validate:"required,oneof=ENTRADA SALIDA"`
	Cantidad      decimal.Decimal `json:"cantidad"    validate:"required"`
	Motivo        string          `json:"motivo"      validate:"required,min=3"`
	Referencia    *string         `json:"referencia"`
	ProveedorID   *string         `json:"proveedor_id" validate:"omitempty,uuid"`
	Observaciones *string         `json:"observaciones"`
}

type KardexInventarioResponse struct {
	TipoMovimiento  string          `json:"tipo_movimiento"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	StockResultante decimal.Decimal `json:"stock_resultante"`
	Motivo          string          `json:"motivo"`
	Referencia      *string         `json:"referencia"`
	Fecha           string          `json:"fecha"`
}

type StockResponse struct {
	ProductoID  string          `json:"producto_id"`
	StockActual decimal.Decimal `json:"stock_actual"`
	// StockCalculado is the ledger replay; it must equal StockActual.
	StockCalculado decimal.Decimal `json:"stock_calculado"`
	Cuadrado       bool            `json:"cuadrado"`
}
