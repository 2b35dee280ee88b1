package dto

import "github.com/shopspring/decimal"

type GuardarClienteRequest struct {
	CedulaRif string  `json:"cedula_rif" validate:"required,min=2"`
	Nombre    string  `json:"nombre"     validate:"required,min=2"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
}

type ClienteResponse struct {
	ID         string          `json:"id"`
	CedulaRif  string          `json:"cedula_rif"`
	Nombre     string          `json:"nombre"`
	Direccion  *string         `json:"direccion"`
	Telefono   *string         `json:"telefono"`
	SaldoFavor decimal.Decimal `json:"saldo_favor"`
}
