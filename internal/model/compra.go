package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compra is a supplier invoice registered for the fiscal purchases book.
// Fiscal amounts are stored in Bs at the purchase-time rate, as the libro de
// compras requires. (ProveedorID, NroFactura) is unique: the same physical
// invoice must not be registered twice.
type Compra struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_compras_proveedor_factura"`
	NroFactura  string    `gorm:"not null;uniqueIndex:idx_compras_proveedor_factura"`
	NroControl  *string
	// FechaEmision is the date printed on the physical invoice;
	// FechaRegistro is when it was keyed into the system.
	FechaEmision  time.Time `gorm:"not null"`
	FechaRegistro time.Time `gorm:"not null"`

	TasaCambio      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalCompraBs   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	BaseImponibleBs decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	MontoExentoBs   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	ImpuestoIvaBs   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	IvaRetenidoBs   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	IgtfPagadoBs    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`

	TipoTransaccion string `gorm:"type:varchar(10);not null;default:'01-REG'"`
	FacturaAfectada *string
	Observaciones   *string
	UsuarioID       uuid.UUID `gorm:"type:uuid;not null"`

	Proveedor *Proveedor      `gorm:"foreignKey:ProveedorID"`
	Detalles  []CompraDetalle `gorm:"foreignKey:CompraID"`
}

type CompraDetalle struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompraID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad        decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CostoUnitarioBs decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
