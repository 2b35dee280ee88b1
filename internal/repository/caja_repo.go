package repository

import (
	"context"
	"errors"

	"github.com/luisjoselares/Pegasus-v1/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CajaRepository covers cash sessions, manual movements and the cash kardex.
// Kardex rows are append-only; running balances are chained off the latest
// entry, which must be read under lock inside the posting transaction so
// concurrent postings to the same session serialize.
type CajaRepository interface {
	CreateSesionTx(tx *gorm.DB, s *model.SesionCaja) error
	FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error)
	FindSesionAbiertaPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.SesionCaja, error)
	FindSesionAbierta(ctx context.Context) (*model.SesionCaja, error)
	UpdateSesionTx(tx *gorm.DB, s *model.SesionCaja) error
	ListSesiones(ctx context.Context, limit int) ([]model.SesionCaja, error)

	CreateMovimientoTx(tx *gorm.DB, m *model.CajaMovimiento) error

	CreateKardexTx(tx *gorm.DB, k *model.CajaKardex) error
	// UltimoKardexTx returns the latest kardex entry of the session, locked
	// FOR UPDATE, or (nil, nil) when the session has no entries yet.
	UltimoKardexTx(tx *gorm.DB, sesionID uuid.UUID) (*model.CajaKardex, error)
	UltimoKardex(ctx context.Context, sesionID uuid.UUID) (*model.CajaKardex, error)
	ListKardex(ctx context.Context, sesionID uuid.UUID) ([]model.CajaKardex, error)
	// SumarVentasKardex totals the net kardex flow (entradas - salidas) of
	// VENTA and NOTA_ENTREGA operations for the session, per currency.
	SumarVentasKardex(ctx context.Context, sesionID uuid.UUID) (*VentasCaja, error)

	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *cajaRepo) CreateSesionTx(tx *gorm.DB, s *model.SesionCaja) error {
	return r.conn(tx).Create(s).Error
}

func (r *cajaRepo) FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *cajaRepo) FindSesionAbiertaPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND estado = ?", usuarioID, model.SesionAbierta).
		First(&s).Error
	return &s, err
}

func (r *cajaRepo) FindSesionAbierta(ctx context.Context) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).
		Where("estado = ?", model.SesionAbierta).
		Order("fecha_apertura DESC").
		First(&s).Error
	return &s, err
}

func (r *cajaRepo) UpdateSesionTx(tx *gorm.DB, s *model.SesionCaja) error {
	return r.conn(tx).Save(s).Error
}

func (r *cajaRepo) ListSesiones(ctx context.Context, limit int) ([]model.SesionCaja, error) {
	var sesiones []model.SesionCaja
	err := r.db.WithContext(ctx).Order("fecha_apertura DESC").Limit(limit).Find(&sesiones).Error
	return sesiones, err
}

func (r *cajaRepo) CreateMovimientoTx(tx *gorm.DB, m *model.CajaMovimiento) error {
	return r.conn(tx).Create(m).Error
}

func (r *cajaRepo) CreateKardexTx(tx *gorm.DB, k *model.CajaKardex) error {
	return r.conn(tx).Create(k).Error
}

func (r *cajaRepo) UltimoKardexTx(tx *gorm.DB, sesionID uuid.UUID) (*model.CajaKardex, error) {
	var k model.CajaKardex
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sesion_id = ?", sesionID).
		Order("created_at DESC").
		First(&k).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *cajaRepo) UltimoKardex(ctx context.Context, sesionID uuid.UUID) (*model.CajaKardex, error) {
	var k model.CajaKardex
	err := r.db.WithContext(ctx).
		Where("sesion_id = ?", sesionID).
		Order("created_at DESC").
		First(&k).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *cajaRepo) ListKardex(ctx context.Context, sesionID uuid.UUID) ([]model.CajaKardex, error) {
	var entradas []model.CajaKardex
	err := r.db.WithContext(ctx).
		Where("sesion_id = ?", sesionID).
		Order("created_at ASC").
		Find(&entradas).Error
	return entradas, err
}

// VentasCaja carries the per-currency net sales flow of a session.
type VentasCaja struct {
	Usd decimal.NullDecimal
	Bs  decimal.NullDecimal
	Cop decimal.NullDecimal
}

func (r *cajaRepo) SumarVentasKardex(ctx context.Context, sesionID uuid.UUID) (*VentasCaja, error) {
	var v VentasCaja
	err := r.db.WithContext(ctx).
		Model(&model.CajaKardex{}).
		Select("SUM(entrada_usd - salida_usd) AS usd, SUM(entrada_bs - salida_bs) AS bs, SUM(entrada_cop - salida_cop) AS cop").
		Where("sesion_id = ? AND operacion IN ?", sesionID, []string{model.OpVenta, model.OpNotaEntrega}).
		Scan(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *cajaRepo) DB() *gorm.DB { return r.db }
