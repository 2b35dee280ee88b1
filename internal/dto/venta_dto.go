package dto

import "github.com/shopspring/decimal"

type ItemVentaRequest struct {
	ProductoID string          `json:"producto_id" validate:"required,uuid"`
	Cantidad   decimal.Decimal `json:"cantidad"    validate:"required"`
}

// PagosRequest is the multi-currency, multi-instrument payment breakdown.
// The efectivo buckets are physical cash and are the only ones that reach
// the cash kardex; zelle/punto/transferencia settle electronically.
type PagosRequest struct {
	UsdEfectivo decimal.Decimal `json:"usd_efectivo" validate:"min=0"`
	UsdZelle    decimal.Decimal `json:"usd_zelle"    validate:"min=0"`
	BsEfectivo  decimal.Decimal `json:"bs_efectivo"  validate:"min=0"`
	BsPunto     decimal.Decimal `json:"bs_punto"     validate:"min=0"`
	BsTransf    decimal.Decimal `json:"bs_transf"    validate:"min=0"`
	CopEfectivo decimal.Decimal `json:"cop_efectivo" validate:"min=0"`
	CopTransf   decimal.Decimal `json:"cop_transf"   validate:"min=0"`
}

type VueltoRequest struct {
	Usd decimal.Decimal `json:"usd" validate:"min=0"`
	Bs  decimal.Decimal `json:"bs"  validate:"min=0"`
	Cop decimal.Decimal `json:"cop" validate:"min=0"`
}

type RegistrarVentaRequest struct {
	TipoDoc             string             `json:"tipo_doc"   validate:"required,oneof=FACTURA NOTA_ENTREGA"`
	ClienteID           string             `json:"cliente_id" validate:"required,uuid"`
	Items               []ItemVentaRequest `json:"items"      validate:"required,min=1,dive"`
	DescuentoPorcentaje decimal.Decimal    `json:"descuento_porcentaje"`
	MetodoPago          string             `json:"metodo_pago"`
	Pagos               PagosRequest       `json:"pagos"`
	Vuelto              VueltoRequest      `json:"vuelto"`
	ImpuestoIgtfUsd     decimal.Decimal    `json:"impuesto_igtf_usd" validate:"min=0"`
	// IVA withheld by special-taxpayer customers, in USD. Stored in Bs at
	// the document's captured rate.
	MontoRetenidoUsd     decimal.Decimal `json:"monto_retenido_usd" validate:"min=0"`
	ComprobanteRetencion *string         `json:"comprobante_retencion"`
}

type ItemVentaResponse struct {
	Producto          string          `json:"producto"`
	Cantidad          decimal.Decimal `json:"cantidad"`
	PrecioUnitarioUsd decimal.Decimal `json:"precio_unitario_usd"`
	SubtotalUsd       decimal.Decimal `json:"subtotal_usd"`
}

type VentaResponse struct {
	ID                string              `json:"id"`
	TipoDoc           string              `json:"tipo_doc"`
	NroDocumento      string              `json:"nro_documento"`
	NroControl        string              `json:"nro_control"`
	Estado            string              `json:"estado"`
	TasaCambioMomento decimal.Decimal     `json:"tasa_cambio_momento"`
	SubtotalUsd       decimal.Decimal     `json:"subtotal_usd"`
	DescuentoMonto    decimal.Decimal     `json:"descuento_monto"`
	ImpuestoIvaUsd    decimal.Decimal     `json:"impuesto_iva_usd"`
	ImpuestoIgtfUsd   decimal.Decimal     `json:"impuesto_igtf_usd"`
	TotalUsd          decimal.Decimal     `json:"total_usd"`
	TotalBs           decimal.Decimal     `json:"total_bs"`
	IvaRetenidoBs     decimal.Decimal     `json:"iva_retenido_bs"`
	Items             []ItemVentaResponse `json:"items"`
	Fecha             string              `json:"fecha"`
}

type DocumentoListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
