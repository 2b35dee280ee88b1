package infra

import (
	"fmt"

	"github.com/luisjoselares/Pegasus-v1/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then seeds the rows the engine cannot operate
// without: the configuracion singleton and the walk-in customer.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the schema and seed rows. Also used by integration
// tests against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() defaults require pgcrypto (built in since PG13).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Configuracion{},
		&model.HistorialTasa{},
		&model.Categoria{},
		&model.Proveedor{},
		&model.Producto{},
		&model.Cliente{},
		&model.Documento{},
		&model.DocumentoDetalle{},
		&model.InventarioKardex{},
		&model.SesionCaja{},
		&model.CajaMovimiento{},
		&model.CajaKardex{},
		&model.Compra{},
		&model.CompraDetalle{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	// One open drawer per operator, enforced at the database so two
	// concurrent opens cannot both slip past the service-level check.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_caja_sesiones_abierta
		ON caja_sesiones (usuario_id) WHERE estado = 'ABIERTA'`).Error; err != nil {
		return fmt.Errorf("indice caja abierta: %w", err)
	}

	return seed(db)
}

// seed inserts the rows every deployment starts from. Idempotent: existing
// rows are left untouched.
func seed(db *gorm.DB) error {
	// Configuration singleton; all sequences start at 1.
	cfg := model.Configuracion{ID: model.ConfiguracionID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cfg).Error; err != nil {
		return fmt.Errorf("seed configuracion: %w", err)
	}

	// Walk-in customer for anonymous sales. Stored in normalized cedula form
	// (no dots or dashes), matching what lookups produce.
	generico := model.Cliente{
		CedulaRif: "V00000000",
		Nombre:    "CONSUMIDOR FINAL",
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cedula_rif"}},
		DoNothing: true,
	}).Create(&generico).Error; err != nil {
		return fmt.Errorf("seed consumidor final: %w", err)
	}

	return nil
}
