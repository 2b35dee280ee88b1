package repository

import (
	"context"
	"time"

	"github.com/luisjoselares/Pegasus-v1/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TotalesDevolucion aggregates a document's sold vs returned quantities.
type TotalesDevolucion struct {
	Cantidad decimal.Decimal
	Devuelta decimal.Decimal
}

// ResumenFiscal is the fiscal extraction for X/Z reports: PROCESADO facturas
// in a window, with Bs amounts valued at each document's own captured rate.
type ResumenFiscal struct {
	CantidadFacturas int64
	DocInicial       string
	DocFinal         string
	SubtotalBs       decimal.Decimal
	IvaBs            decimal.Decimal
	TotalBs          decimal.Decimal
}

type DocumentoRepository interface {
	CreateTx(tx *gorm.DB, d *model.Documento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Documento, error)
	FindByNumero(ctx context.Context, nroDocumento string) (*model.Documento, error)
	// FindByNumeroBloqueadoTx locks the header row FOR UPDATE so concurrent
	// returns against the same factura serialize.
	FindByNumeroBloqueadoTx(tx *gorm.DB, nroDocumento string) (*model.Documento, error)
	FindDetallesTx(tx *gorm.DB, documentoID uuid.UUID) ([]model.DocumentoDetalle, error)
	// IncrementarDevueltoTx bumps cantidad_devuelta on a line; it never
	// decreases.
	IncrementarDevueltoTx(tx *gorm.DB, detalleID uuid.UUID, cantidad decimal.Decimal) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string, motivo *string) error
	TotalesDevolucionTx(tx *gorm.DB, documentoID uuid.UUID) (*TotalesDevolucion, error)
	ResumenFiscal(ctx context.Context, desde, hasta time.Time) (*ResumenFiscal, error)
	List(ctx context.Context, tipoDoc string, fecha string, page, limit int) ([]model.Documento, int64, error)
	DB() *gorm.DB
}

type documentoRepo struct{ db *gorm.DB }

func NewDocumentoRepository(db *gorm.DB) DocumentoRepository { return &documentoRepo{db: db} }

func (r *documentoRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *documentoRepo) CreateTx(tx *gorm.DB, d *model.Documento) error {
	return r.conn(tx).Create(d).Error
}

func (r *documentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Documento, error) {
	var d model.Documento
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Detalles.Producto").
		First(&d, "id = ?", id).Error
	return &d, err
}

func (r *documentoRepo) FindByNumero(ctx context.Context, nroDocumento string) (*model.Documento, error) {
	var d model.Documento
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Detalles.Producto").
		Where("nro_documento = ?", nroDocumento).
		First(&d).Error
	return &d, err
}

func (r *documentoRepo) FindByNumeroBloqueadoTx(tx *gorm.DB, nroDocumento string) (*model.Documento, error) {
	var d model.Documento
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("nro_documento = ?", nroDocumento).
		First(&d).Error
	return &d, err
}

func (r *documentoRepo) FindDetallesTx(tx *gorm.DB, documentoID uuid.UUID) ([]model.DocumentoDetalle, error) {
	var detalles []model.DocumentoDetalle
	err := r.conn(tx).Preload("Producto").
		Where("documento_id = ?", documentoID).
		Find(&detalles).Error
	return detalles, err
}

func (r *documentoRepo) IncrementarDevueltoTx(tx *gorm.DB, detalleID uuid.UUID, cantidad decimal.Decimal) error {
	return tx.Model(&model.DocumentoDetalle{}).
		Where("id = ?", detalleID).
		Update("cantidad_devuelta", gorm.Expr("cantidad_devuelta + ?", cantidad)).Error
}

func (r *documentoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string, motivo *string) error {
	updates := map[string]interface{}{"estado": estado}
	if motivo != nil {
		updates["motivo_anulacion"] = *motivo
	}
	return tx.Model(&model.Documento{}).Where("id = ?", id).Updates(updates).Error
}

func (r *documentoRepo) TotalesDevolucionTx(tx *gorm.DB, documentoID uuid.UUID) (*TotalesDevolucion, error) {
	var row struct {
		Cantidad decimal.NullDecimal
		Devuelta decimal.NullDecimal
	}
	err := r.conn(tx).Model(&model.DocumentoDetalle{}).
		Select("SUM(cantidad) AS cantidad, SUM(cantidad_devuelta) AS devuelta").
		Where("documento_id = ?", documentoID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	t := &TotalesDevolucion{}
	if row.Cantidad.Valid {
		t.Cantidad = row.Cantidad.Decimal
	}
	if row.Devuelta.Valid {
		t.Devuelta = row.Devuelta.Decimal
	}
	return t, nil
}

func (r *documentoRepo) ResumenFiscal(ctx context.Context, desde, hasta time.Time) (*ResumenFiscal, error) {
	var row struct {
		CantidadFacturas int64
		DocInicial       *string
		DocFinal         *string
		SubtotalBs       decimal.NullDecimal
		IvaBs            decimal.NullDecimal
		TotalBs          decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).Model(&model.Documento{}).
		Select(`COUNT(id) AS cantidad_facturas,
			MIN(nro_documento) AS doc_inicial,
			MAX(nro_documento) AS doc_final,
			SUM(subtotal_usd * tasa_cambio_momento) AS subtotal_bs,
			SUM(impuesto_iva_usd * tasa_cambio_momento) AS iva_bs,
			SUM(total_usd * tasa_cambio_momento) AS total_bs`).
		Where("tipo_doc = ? AND estado = ? AND fecha BETWEEN ? AND ?",
			model.DocFactura, model.EstadoProcesado, desde, hasta).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	res := &ResumenFiscal{CantidadFacturas: row.CantidadFacturas}
	if row.DocInicial != nil {
		res.DocInicial = *row.DocInicial
	}
	if row.DocFinal != nil {
		res.DocFinal = *row.DocFinal
	}
	if row.SubtotalBs.Valid {
		res.SubtotalBs = row.SubtotalBs.Decimal
	}
	if row.IvaBs.Valid {
		res.IvaBs = row.IvaBs.Decimal
	}
	if row.TotalBs.Valid {
		res.TotalBs = row.TotalBs.Decimal
	}
	return res, nil
}

func (r *documentoRepo) List(ctx context.Context, tipoDoc string, fecha string, page, limit int) ([]model.Documento, int64, error) {
	var docs []model.Documento
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Documento{})
	if tipoDoc != "" && tipoDoc != "all" {
		q = q.Where("tipo_doc = ?", tipoDoc)
	}
	if fecha != "" {
		q = q.Where("DATE(fecha) = ?", fecha)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Preload("Cliente").Preload("Detalles.Producto").
		Order("fecha DESC").Offset(offset).Limit(limit).
		Find(&docs).Error
	return docs, total, err
}

func (r *documentoRepo) DB() *gorm.DB { return r.db }
