package repository

import (
	"context"

	"github.com/luisjoselares/Pegasus-v1/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// KardexRepository is the append-only access contract for the inventory
// ledger. There is deliberately no Update or Delete: corrections are new
// compensating entries.
type KardexRepository interface {
	CrearTx(tx *gorm.DB, k *model.InventarioKardex) error
	ListarPorProducto(ctx context.Context, productoID uuid.UUID, limit int) ([]model.InventarioKardex, error)
	// SaldoCalculado replays the ledger for audit/repair: the signed sum of
	// all entries for the product, which must equal productos.stock_actual.
	SaldoCalculado(ctx context.Context, productoID uuid.UUID) (decimal.Decimal, error)
}

type kardexRepo struct{ db *gorm.DB }

func NewKardexRepository(db *gorm.DB) KardexRepository { return &kardexRepo{db: db} }

func (r *kardexRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *kardexRepo) CrearTx(tx *gorm.DB, k *model.InventarioKardex) error {
	return r.conn(tx).Create(k).Error
}

func (r *kardexRepo) ListarPorProducto(ctx context.Context, productoID uuid.UUID, limit int) ([]model.InventarioKardex, error) {
	var entradas []model.InventarioKardex
	err := r.db.WithContext(ctx).
		Where("producto_id = ?", productoID).
		Order("created_at DESC").Limit(limit).
		Find(&entradas).Error
	return entradas, err
}

func (r *kardexRepo) SaldoCalculado(ctx context.Context, productoID uuid.UUID) (decimal.Decimal, error) {
	var saldo decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.InventarioKardex{}).
		Select("SUM(CASE WHEN tipo_movimiento = 'ENTRADA' THEN cantidad ELSE -cantidad END)").
		Where("producto_id = ?", productoID).
		Scan(&saldo).Error
	if err != nil || !saldo.Valid {
		return decimal.Zero, err
	}
	return saldo.Decimal, nil
}
