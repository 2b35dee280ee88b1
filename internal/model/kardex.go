package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Inventory movement kinds and reason codes.
const (
	MovEntrada = "ENTRADA"
	MovSalida  = "SALIDA"

	MotivoCompra      = "COMPRA"
	MotivoVenta       = "VENTA"
	MotivoNotaEntrega = "NOTA_ENTREGA"
	MotivoDevolucion  = "DEVOLUCION"
	MotivoAjuste      = "AJUSTE"
)

// InventarioKardex is one immutable line of the stock ledger. Corrections are
// new compensating entries; rows are never updated or deleted.
// StockResultante snapshots the product stock after the movement was applied.
type InventarioKardex struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TipoMovimiento  string          `gorm:"type:varchar(10);not null"` // ENTRADA | SALIDA
	Cantidad        decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	StockResultante decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Motivo          string          `gorm:"not null"`
	Referencia      *string         // originating document number
	ProveedorID     *uuid.UUID      `gorm:"type:uuid"`
	Observaciones   *string
	UsuarioID       uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt       time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (InventarioKardex) TableName() string { return "inventario_kardex" }
