package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente is a customer account. SaldoFavor is store credit in USD, granted
// by returns refunded as "saldo a favor" and usable against future purchases.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CedulaRif string    `gorm:"uniqueIndex;not null"`
	Nombre    string    `gorm:"not null"`
	Direccion *string
	Telefono  *string
	SaldoFavor decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
