// Package apierror provides the error taxonomy of the ledger engine and the
// standardized error envelopes returned to API clients. Internal details (DB
// errors, stack traces) never reach a client; business-rule rejections carry
// their specific reason so the UI can show the exact shortfall.
package apierror

import (
	"errors"
	"fmt"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
	Codigo string `json:"codigo,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// Business-rule codes. Each maps to one invariant of the ledger engine.
const (
	CodigoStockInsuficiente   = "STOCK_INSUFICIENTE"
	CodigoFondosInsuficientes = "FONDOS_INSUFICIENTES"
	CodigoDevolucionExcedida  = "DEVOLUCION_EXCEDIDA"
	CodigoCajaYaAbierta       = "CAJA_YA_ABIERTA"
	CodigoSinCajaAbierta      = "SIN_CAJA_ABIERTA"
	CodigoCompraDuplicada     = "COMPRA_DUPLICADA"
	CodigoDocumentoInvalido   = "DOCUMENTO_INVALIDO"
)

// ReglaNegocio is a business-rule violation. The enclosing transaction has
// been rolled back completely; no partial state was persisted.
type ReglaNegocio struct {
	Codigo  string
	Mensaje string
}

func (e *ReglaNegocio) Error() string { return e.Mensaje }

func NewReglaNegocio(codigo, formato string, args ...interface{}) *ReglaNegocio {
	return &ReglaNegocio{Codigo: codigo, Mensaje: fmt.Sprintf(formato, args...)}
}

// EsReglaNegocio reports whether err (or anything it wraps) is a
// business-rule violation, returning it when so.
func EsReglaNegocio(err error) (*ReglaNegocio, bool) {
	var rn *ReglaNegocio
	if errors.As(err, &rn) {
		return rn, true
	}
	return nil, false
}

// ErrConflictoConcurrencia marks a lock timeout or serialization failure.
// The failed operation left no state behind and is safe to retry a bounded
// number of times.
var ErrConflictoConcurrencia = errors.New("conflicto de concurrencia, reintente la operacion")

func EsConflictoConcurrencia(err error) bool {
	return errors.Is(err, ErrConflictoConcurrencia)
}
