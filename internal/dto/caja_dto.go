package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	InicialUsd decimal.Decimal `json:"inicial_usd" validate:"min=0"`
	InicialBs  decimal.Decimal `json:"inicial_bs"  validate:"min=0"`
	InicialCop decimal.Decimal `json:"inicial_cop" validate:"min=0"`
}

type MovimientoManualRequest struct {
	SesionID string          `json:"sesion_id" validate:"required,uuid"`
	Tipo     string          `json:"tipo"      validate:"required,oneof=INGRESO EGRESO"`
	MontoUsd decimal.Decimal `json:"monto_usd" validate:"min=0"`
	MontoBs  decimal.Decimal `json:"monto_bs"  validate:"min=0"`
	MontoCop decimal.Decimal `json:"monto_cop" validate:"min=0"`
	Motivo   string          `json:"motivo"    validate:"required,min=3"`
}

type CerrarCajaRequest struct {
	SesionID      string          `json:"sesion_id"  validate:"required,uuid"`
	ContadoUsd    decimal.Decimal `json:"contado_usd" validate:"min=0"`
	ContadoBs     decimal.Decimal `json:"contado_bs"  validate:"min=0"`
	ContadoCop    decimal.Decimal `json:"contado_cop" validate:"min=0"`
	Observaciones *string         `json:"observaciones"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// MontosPorMoneda groups one amount per physical currency.
type MontosPorMoneda struct {
	Usd decimal.Decimal `json:"usd"`
	Bs  decimal.Decimal `json:"bs"`
	Cop decimal.Decimal `json:"cop"`
}

type SesionCajaResponse struct {
	ID            string          `json:"id"`
	UsuarioID     string          `json:"usuario_id"`
	Estado        string          `json:"estado"`
	FechaApertura string          `json:"fecha_apertura"`
	FechaCierre   *string         `json:"fecha_cierre"`
	MontoInicial  MontosPorMoneda `json:"monto_inicial"`
	MontoFinal    MontosPorMoneda `json:"monto_final"`
	MontoSistema  MontosPorMoneda `json:"monto_sistema"`
	Diferencia    MontosPorMoneda `json:"diferencia"`
	Observaciones *string         `json:"observaciones"`
}

type SaldosCajaResponse struct {
	SesionID string          `json:"sesion_id"`
	Saldos   MontosPorMoneda `json:"saldos"`
}

// ResumenCajaResponse is the X-report data block: opening floats, net sales
// collected and the system balances as of the latest kardex entry.
type ResumenCajaResponse struct {
	SesionID string          `json:"sesion_id"`
	Estado   string          `json:"estado"`
	Inicial  MontosPorMoneda `json:"inicial"`
	Ventas   MontosPorMoneda `json:"ventas"`
	Sistema  MontosPorMoneda `json:"sistema"`
}

type KardexCajaResponse struct {
	Operacion   string          `json:"operacion"`
	Entrada     MontosPorMoneda `json:"entrada"`
	Salida      MontosPorMoneda `json:"salida"`
	Saldo       MontosPorMoneda `json:"saldo"`
	Descripcion string          `json:"descripcion"`
	Referencia  string          `json:"referencia"`
	Fecha       string          `json:"fecha"`
}
