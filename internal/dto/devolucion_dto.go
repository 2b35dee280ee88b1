package dto

import "github.com/shopspring/decimal"

// Refund methods for a return. Store credit is the only method that does not
// touch the cash drawer.
const (
	ReembolsoEfectivoUsd = "EFECTIVO_USD"
	ReembolsoEfectivoBs  = "EFECTIVO_BS"
	ReembolsoEfectivoCop = "EFECTIVO_COP"
	ReembolsoSaldoFavor  = "SALDO_FAVOR"
)

type ItemDevolucionRequest struct {
	DetalleID string          `json:"detalle_id" validate:"required,uuid"`
	Cantidad  decimal.Decimal `json:"cantidad"   validate:"required"`
}

type ProcesarDevolucionRequest struct {
	NroFactura      string                  `json:"nro_factura" validate:"required"`
	Items           []ItemDevolucionRequest `json:"items"       validate:"required,min=1,dive"`
	MetodoReembolso string                  `json:"metodo_reembolso" validate:"required,oneof=EFECTIVO_USD EFECTIVO_BS EFECTIVO_COP SALDO_FAVOR"`
}

type DetalleFacturaResponse struct {
	DetalleID         string          `json:"detalle_id"`
	ProductoID        string          `json:"producto_id"`
	CodigoInterno     string          `json:"codigo_interno"`
	Descripcion       string          `json:"descripcion"`
	Cantidad          decimal.Decimal `json:"cantidad"`
	CantidadDevuelta  decimal.Decimal `json:"cantidad_devuelta"`
	Disponible        decimal.Decimal `json:"disponible"`
	PrecioUnitarioUsd decimal.Decimal `json:"precio_unitario_usd"`
	EsExento          bool            `json:"es_exento"`
}

type FacturaDevolucionResponse struct {
	NroDocumento      string                   `json:"nro_documento"`
	Cliente           string                   `json:"cliente"`
	CedulaRif         string                   `json:"cedula_rif"`
	TasaCambioMomento decimal.Decimal          `json:"tasa_cambio_momento"`
	TotalUsd          decimal.Decimal          `json:"total_usd"`
	Detalles          []DetalleFacturaResponse `json:"detalles"`
}

type DevolucionResponse struct {
	NroNotaCredito  string          `json:"nro_nota_credito"`
	NroControl      string          `json:"nro_control"`
	FacturaAfectada string          `json:"factura_afectada"`
	SubtotalUsd     decimal.Decimal `json:"subtotal_usd"`
	ImpuestoIvaUsd  decimal.Decimal `json:"impuesto_iva_usd"`
	TotalUsd        decimal.Decimal `json:"total_usd"`
	MetodoReembolso string          `json:"metodo_reembolso"`
	// MontoReembolso is in the refund currency (USD for saldo a favor).
	MontoReembolso  decimal.Decimal `json:"monto_reembolso"`
	FacturaAnulada  bool            `json:"factura_anulada"`
}
