package model

import (
	"time"

	"github.com/google/uuid"
)

type Proveedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Rif         string    `gorm:"uniqueIndex;not null"`
	RazonSocial string    `gorm:"not null"`
	Contacto    *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default pluralization (proveedors → proveedores).
func (Proveedor) TableName() string { return "proveedores" }
