package repository

import (
	"context"

	"github.com/luisjoselares/Pegasus-v1/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompraRepository interface {
	CreateTx(tx *gorm.DB, c *model.Compra) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error)
	// ExisteFacturaProveedor reports whether the supplier already has an
	// invoice registered under the same number.
	ExisteFacturaProveedor(ctx context.Context, proveedorID uuid.UUID, nroFactura string) (bool, error)
	List(ctx context.Context, page, limit int) ([]model.Compra, int64, error)
	DB() *gorm.DB
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *compraRepo) CreateTx(tx *gorm.DB, c *model.Compra) error {
	return r.conn(tx).Create(c).Error
}

func (r *compraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error) {
	var c model.Compra
	err := r.db.WithContext(ctx).
		Preload("Proveedor").Preload("Detalles.Producto").
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *compraRepo) ExisteFacturaProveedor(ctx context.Context, proveedorID uuid.UUID, nroFactura string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Compra{}).
		Where("proveedor_id = ? AND nro_factura = ?", proveedorID, nroFactura).
		Count(&count).Error
	return count > 0, err
}

func (r *compraRepo) List(ctx context.Context, page, limit int) ([]model.Compra, int64, error) {
	var compras []model.Compra
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Compra{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Preload("Proveedor").
		Order("fecha_registro DESC").Offset(offset).Limit(limit).
		Find(&compras).Error
	return compras, total, err
}

func (r *compraRepo) DB() *gorm.DB { return r.db }
