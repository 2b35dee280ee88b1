package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Document type tags.
const (
	DocFactura     = "FACTURA"
	DocNotaEntrega = "NOTA_ENTREGA"
	DocNotaCredito = "NOTA_CREDITO"
)

// Document lifecycle states. PROCESADO is the initial, valid state; ANULADO
// is terminal and reached only when a document has been fully returned.
const (
	EstadoProcesado = "PROCESADO"
	EstadoAnulado   = "ANULADO"
)

// Documento is a commercial document (factura, nota de entrega or nota de
// credito). Monetary fields are in USD; TasaCambioMomento is the Bs/USD rate
// captured at creation time and is immutable afterwards; later rate changes
// never revalue historical documents.
type Documento struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TipoDoc      string    `gorm:"type:varchar(20);not null;index"`
	NroDocumento string    `gorm:"uniqueIndex;not null"` // e.g. FAC-00000001
	NroControl   string    `gorm:"not null"`             // e.g. 00-00000001
	ClienteID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Fecha        time.Time `gorm:"not null;index"`

	TasaCambioMomento decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	SubtotalUsd         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DescuentoPorcentaje decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DescuentoMonto      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ImpuestoIvaUsd      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ImpuestoIgtfUsd     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalUsd            decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	MetodoPago string `gorm:"not null;default:''"`

	// Amounts received and change given, per physical currency.
	MontoRecibidoUsd decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontoRecibidoBs  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	MontoRecibidoCop decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	MontoVueltoUsd   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontoVueltoBs    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	MontoVueltoCop   decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`

	// Payment breakdown per instrument × currency. Only the efectivo buckets
	// (net of vuelto) ever reach the cash kardex; electronic instruments are
	// settlement data on the document alone.
	PagoUsdEfectivo decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PagoUsdZelle    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PagoBsEfectivo  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PagoBsPunto     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PagoBsTransf    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PagoCopEfectivo decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	PagoCopTransf   decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`

	// IVA withheld by the customer, expressed in Bs at TasaCambioMomento as
	// SENIAT requires, plus the withholding receipt number when present.
	IvaRetenidoBs decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`

	// For notas de credito this references the source factura; for facturas
	// it carries the withholding receipt number when one was presented.
	DocumentoReferencia *string

	Estado          string  `gorm:"type:varchar(20);not null;default:'PROCESADO';index"`
	MotivoAnulacion *string
	UsuarioID       uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt       time.Time

	Cliente  *Cliente           `gorm:"foreignKey:ClienteID"`
	Detalles []DocumentoDetalle `gorm:"foreignKey:DocumentoID"`
}

// DocumentoDetalle is one line of a document. CantidadDevuelta accumulates
// across partial returns and never decreases; it caps future returns at
// Cantidad.
type DocumentoDetalle struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentoID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad          decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	PrecioUnitarioUsd decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SubtotalUsd       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CantidadDevuelta  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
