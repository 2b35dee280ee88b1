package dto

import "github.com/shopspring/decimal"

type ActualizarTasasRequest struct {
	TasaBcv decimal.Decimal `json:"tasa_bcv" validate:"required"`
	TasaCop decimal.Decimal `json:"tasa_cop" validate:"required"`
}

type TasasResponse struct {
	TasaBcv decimal.Decimal `json:"tasa_bcv"`
	TasaCop decimal.Decimal `json:"tasa_cop"`
}

type HistorialTasaResponse struct {
	Moneda       string          `json:"moneda"`
	TasaAnterior decimal.Decimal `json:"tasa_anterior"`
	TasaNueva    decimal.Decimal `json:"tasa_nueva"`
	Fecha        string          `json:"fecha"`
}

type EmpresaRequest struct {
	Rif                     string          `json:"rif"          validate:"required,min=5"`
	RazonSocial             string          `json:"razon_social" validate:"required,min=2"`
	DireccionFiscal         string          `json:"direccion_fiscal" validate:"required"`
	EsContribuyenteEspecial bool            `json:"es_contribuyente_especial"`
	PorcentajeIgtf          decimal.Decimal `json:"porcentaje_igtf"`
}

type EmpresaResponse struct {
	Rif                     string          `json:"rif"`
	RazonSocial             string          `json:"razon_social"`
	DireccionFiscal         string          `json:"direccion_fiscal"`
	EsContribuyenteEspecial bool            `json:"es_contribuyente_especial"`
	PorcentajeIgtf          decimal.Decimal `json:"porcentaje_igtf"`
}
