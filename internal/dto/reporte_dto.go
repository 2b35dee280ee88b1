package dto

import "github.com/shopspring/decimal"

// ReporteFiscalResponse is the fiscal block of an X/Z report: PROCESADO
// facturas emitted during the session window, valued in Bs at each
// document's own captured rate. Base imponible and exento are derived by
// working backwards from the IVA at the standard 16% rate, exactly as the
// printed report does.
type ReporteFiscalResponse struct {
	CantidadFacturas int64           `json:"cantidad_facturas"`
	DocInicial       string          `json:"doc_inicial"`
	DocFinal         string          `json:"doc_final"`
	VentasExentasBs  decimal.Decimal `json:"ventas_exentas_bs"`
	BaseImponibleBs  decimal.Decimal `json:"base_imponible_bs"`
	IvaBs            decimal.Decimal `json:"iva_bs"`
	TotalBs          decimal.Decimal `json:"total_bs"`
}

type ReporteSesionResponse struct {
	Tipo    string                `json:"tipo"` // "X" en curso | "Z" cierre
	NumeroZ *string               `json:"numero_z,omitempty"`
	Empresa EmpresaResponse       `json:"empresa"`
	Sesion  SesionCajaResponse    `json:"sesion"`
	Fiscal  ReporteFiscalResponse `json:"fiscal"`
}
