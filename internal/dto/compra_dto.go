package dto

import "github.com/shopspring/decimal"

type ItemCompraRequest struct {
	ProductoID      string          `json:"producto_id"       validate:"required,uuid"`
	Cantidad        decimal.Decimal `json:"cantidad"          validate:"required"`
	CostoUnitarioBs decimal.Decimal `json:"costo_unitario_bs" validate:"required"`
}

type RegistrarCompraRequest struct {
	ProveedorID     string          `json:"proveedor_id"  validate:"required,uuid"`
	NroFactura      string          `json:"nro_factura"   validate:"required,min=1"`
	NroControl      *string         `json:"nro_control"`
	FechaEmision    string          `json:"fecha_emision" validate:"required,datetime=2006-01-02"`
	TasaCambio      decimal.Decimal `json:"tasa_cambio"   validate:"required"`
	TotalCompraBs   decimal.Decimal `json:"total_compra_bs"`
	BaseImponibleBs decimal.Decimal `json:"base_imponible_bs"`
	MontoExentoBs   decimal.Decimal `json:"monto_exento_bs"`
	ImpuestoIvaBs   decimal.Decimal `json:"impuesto_iva_bs"`
	IvaRetenidoBs   decimal.Decimal `json:"iva_retenido_bs"`
	IgtfPagadoBs    decimal.Decimal `json:"igtf_pagado_bs"`
	Observaciones   *string         `json:"observaciones"`
	Items           []ItemCompraRequest `json:"items" validate:"required,min=1,dive"`
}

type CompraResponse struct {
	ID            string          `json:"id"`
	Proveedor     string          `json:"proveedor"`
	NroFactura    string          `json:"nro_factura"`
	FechaEmision  string          `json:"fecha_emision"`
	FechaRegistro string          `json:"fecha_registro"`
	TotalCompraBs decimal.Decimal `json:"total_compra_bs"`
	ImpuestoIvaBs decimal.Decimal `json:"impuesto_iva_bs"`
}

type CompraListResponse struct {
	Data  []CompraResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
