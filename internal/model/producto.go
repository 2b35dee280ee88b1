package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a sellable item priced in USD (the functional currency).
// StockActual is a derived cache: it must always equal the sum of the signed
// inventario_kardex entries for the product. Fractional quantities are legal
// (products sold by weight), hence decimal stock.
type Producto struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoInterno string    `gorm:"uniqueIndex;not null"`
	Descripcion   string    `gorm:"index;not null"`
	PrecioUsd     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// EsExento marks the line as outside the standard 16% IVA rate
	EsExento    bool            `gorm:"not null;default:false"`
	StockActual decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	StockMinimo decimal.Decimal `gorm:"type:decimal(12,3);not null;default:5"`
	CategoriaID *uuid.UUID      `gorm:"type:uuid;index"`
	ProveedorID *uuid.UUID      `gorm:"type:uuid;index"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}
