package repository

import (
	"context"

	"github.com/luisjoselares/Pegasus-v1/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Counter column names on the configuracion singleton. Services pass these to
// IncrementarCorrelativosTx after reading the locked row.
const (
	ColNroFactura = "proximo_nro_factura"
	ColNroNe      = "proximo_nro_ne"
	ColNroNc      = "proximo_nro_nc"
	ColNroControl = "proximo_nro_control"
	ColNroZ       = "proximo_nro_z"
)

// ConfiguracionRepository is the data access contract for the configuration
// singleton and the exchange-rate history. Sequence allocation always goes
// through ObtenerBloqueadoTx + IncrementarCorrelativosTx inside the caller's
// transaction: the row lock serializes concurrent allocations and a rollback
// leaves the counters untouched.
type ConfiguracionRepository interface {
	Obtener(ctx context.Context) (*model.Configuracion, error)
	Guardar(ctx context.Context, c *model.Configuracion) error

	// ObtenerBloqueadoTx reads the singleton FOR UPDATE inside tx.
	ObtenerBloqueadoTx(tx *gorm.DB) (*model.Configuracion, error)
	// IncrementarCorrelativosTx bumps each named counter column by one.
	IncrementarCorrelativosTx(tx *gorm.DB, columnas ...string) error

	CrearHistorialTasa(ctx context.Context, tx *gorm.DB, h *model.HistorialTasa) error
	ListarHistorialTasas(ctx context.Context, limit int) ([]model.HistorialTasa, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *configuracionRepo) Obtener(ctx context.Context) (*model.Configuracion, error) {
	var c model.Configuracion
	err := r.db.WithContext(ctx).First(&c, "id = ?", model.ConfiguracionID).Error
	return &c, err
}

func (r *configuracionRepo) Guardar(ctx context.Context, c *model.Configuracion) error {
	c.ID = model.ConfiguracionID
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *configuracionRepo) ObtenerBloqueadoTx(tx *gorm.DB) (*model.Configuracion, error) {
	var c model.Configuracion
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", model.ConfiguracionID).Error
	return &c, err
}

func (r *configuracionRepo) IncrementarCorrelativosTx(tx *gorm.DB, columnas ...string) error {
	updates := make(map[string]interface{}, len(columnas))
	for _, col := range columnas {
		updates[col] = gorm.Expr(col + " + 1")
	}
	return tx.Model(&model.Configuracion{}).
		Where("id = ?", model.ConfiguracionID).
		Updates(updates).Error
}

func (r *configuracionRepo) CrearHistorialTasa(ctx context.Context, tx *gorm.DB, h *model.HistorialTasa) error {
	return r.conn(tx).WithContext(ctx).Create(h).Error
}

func (r *configuracionRepo) ListarHistorialTasas(ctx context.Context, limit int) ([]model.HistorialTasa, error) {
	var hist []model.HistorialTasa
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&hist).Error
	return hist, err
}

func (r *configuracionRepo) DB() *gorm.DB { return r.db }
