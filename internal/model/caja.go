package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cash session states and kardex operation tags.
const (
	SesionAbierta = "ABIERTA"
	SesionCerrada = "CERRADA"

	OpApertura    = "APERTURA"
	OpIngreso     = "INGRESO"
	OpEgreso      = "EGRESO"
	OpVenta       = "VENTA"
	OpNotaEntrega = "NOTA_ENTREGA"
	OpCierre      = "CIERRE"
)

// SesionCaja is one cash-drawer shift. At most one ABIERTA session may exist
// per user. Closing records the user's physical count, the system-computed
// expected balance and the variance, all per currency.
type SesionCaja struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	FechaApertura time.Time  `gorm:"not null"`
	FechaCierre   *time.Time

	MontoInicialUsd decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontoInicialBs  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	MontoInicialCop decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`

	MontoFinalUsd decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontoFinalBs  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	MontoFinalCop decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`

	MontoSistemaUsd decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontoSistemaBs  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	MontoSistemaCop decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`

	DiferenciaUsd decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiferenciaBs  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	DiferenciaCop decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`

	Estado        string `gorm:"type:varchar(10);not null;default:'ABIERTA';index"`
	Observaciones *string
}

func (SesionCaja) TableName() string { return "caja_sesiones" }

// CajaMovimiento records a manual INGRESO/EGRESO request as entered by the
// cashier. The authoritative running balances live in CajaKardex; this table
// keeps the operator's intent (amount and reason) for audit.
type CajaMovimiento struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SesionID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo      string          `gorm:"type:varchar(10);not null"` // INGRESO | EGRESO
	MontoUsd  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontoBs   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	MontoCop  decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	Motivo    string          `gorm:"not null"`
	UsuarioID uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}

func (CajaMovimiento) TableName() string { return "caja_movimientos" }

// CajaKardex is one immutable line of the cash ledger. Running balances are
// chained: each entry's saldo is the previous entry's saldo plus this entry's
// inflow minus its outflow, independently per currency. The balance before
// the first entry of a session is zero; the opening float enters the ledger
// as the APERTURA entry's inflow, not as an implicit starting balance.
type CajaKardex struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SesionID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Operacion string    `gorm:"type:varchar(15);not null"`

	EntradaUsd decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SalidaUsd  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SaldoUsd   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	EntradaBs decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	SalidaBs  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	SaldoBs   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`

	EntradaCop decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	SalidaCop  decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	SaldoCop   decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`

	Descripcion   string    `gorm:"not null"`
	ReferenciaDoc string    `gorm:"not null;default:''"`
	UsuarioID     uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
}

func (CajaKardex) TableName() string { return "caja_kardex" }
