package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConfiguracionID is the fixed primary key of the configuration singleton.
const ConfiguracionID = 1

// Configuracion is the single-row table holding the company fiscal identity,
// the current exchange rates and the next value of every document sequence.
// Sequence allocation reads this row FOR UPDATE and increments the consumed
// counters inside the same transaction that persists the document, so a
// rollback never burns a number.
type Configuracion struct {
	ID              int `gorm:"primaryKey"`
	Rif             *string
	RazonSocial     *string
	DireccionFiscal *string
	// TasaBcv: Bs per USD. TasaCop: COP per USD.
	TasaBcv decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	TasaCop decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	EsContribuyenteEspecial bool            `gorm:"not null;default:false"`
	PorcentajeIgtf          decimal.Decimal `gorm:"type:decimal(5,2);not null;default:3"`

	// Document sequences. Facturas and notas de entrega have independent
	// document series but share the fiscal control-number series with
	// notas de credito.
	ProximoNroFactura int64 `gorm:"not null;default:1"`
	ProximoNroNe      int64 `gorm:"not null;default:1"`
	ProximoNroNc      int64 `gorm:"not null;default:1"`
	ProximoNroControl int64 `gorm:"not null;default:1"`
	ProximoNroZ       int64 `gorm:"not null;default:1"`

	UpdatedAt time.Time
}

func (Configuracion) TableName() string { return "configuracion" }

// HistorialTasa is an immutable record of an exchange-rate change.
// One row per currency whose value actually changed.
type HistorialTasa struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Moneda       string    `gorm:"type:varchar(5);not null"` // "BCV" | "COP"
	TasaAnterior decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TasaNueva    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt    time.Time
}

func (HistorialTasa) TableName() string { return "historial_tasas" }
