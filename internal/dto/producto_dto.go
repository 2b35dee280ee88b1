package dto

import "github.com/shopspring/decimal"

type ProductoFilter struct {
	Texto       string
	CategoriaID string
	ProveedorID string
	Activo      string // "true" (default) | "false" | "all"
	Page        int
	Limit       int
}

type CrearProductoRequest struct {
	CodigoInterno string          `json:"codigo_interno" validate:"required,min=1"`
	Descripcion   string          `json:"descripcion"    validate:"required,min=2"`
	PrecioUsd     decimal.Decimal `json:"precio_usd"     validate:"required"`
	EsExento      bool            `json:"es_exento"`
	StockMinimo   decimal.Decimal `json:"stock_minimo"`
	CategoriaID   *string         `json:"categoria_id"   validate:"omitempty,uuid"`
	ProveedorID   *string         `json:"proveedor_id"   validate:"omitempty,uuid"`
}

type ActualizarProductoRequest struct {
	Descripcion string          `json:"descripcion"  validate:"required,min=2"`
	PrecioUsd   decimal.Decimal `json:"precio_usd"   validate:"required"`
	EsExento    bool            `json:"es_exento"`
	StockMinimo decimal.Decimal `json:"stock_minimo"`
	CategoriaID *string         `json:"categoria_id" validate:"omitempty,uuid"`
	ProveedorID *string         `json:"proveedor_id" validate:"omitempty,uuid"`
}

// ProductoResponse carries the USD price plus its Bs/COP equivalents at the
// CURRENT rates. Only listings are revalued this way; committed documents
// keep their captured rate.
type ProductoResponse struct {
	ID            string          `json:"id"`
	CodigoInterno string          `json:"codigo_interno"`
	Descripcion   string          `json:"descripcion"`
	PrecioUsd     decimal.Decimal `json:"precio_usd"`
	PrecioBs      decimal.Decimal `json:"precio_bs"`
	PrecioCop     decimal.Decimal `json:"precio_cop"`
	EsExento      bool            `json:"es_exento"`
	StockActual   decimal.Decimal `json:"stock_actual"`
	StockMinimo   decimal.Decimal `json:"stock_minimo"`
	Categoria     string          `json:"categoria,omitempty"`
	Proveedor     string          `json:"proveedor,omitempty"`
	Activo        bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
