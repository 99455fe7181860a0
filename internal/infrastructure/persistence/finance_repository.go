package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/finance"
	"github.com/petroerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSalesInvoiceRepository implements finance.SalesInvoiceRepository using GORM
type GormSalesInvoiceRepository struct {
	gormRepository[finance.SalesInvoice]
}

// NewGormSalesInvoiceRepository creates a new GormSalesInvoiceRepository
func NewGormSalesInvoiceRepository(db *gorm.DB) *GormSalesInvoiceRepository {
	return &GormSalesInvoiceRepository{gormRepository[finance.SalesInvoice]{
		db:            db,
		searchColumns: []string{"invoice_number", "buyer_name"},
	}}
}

// FindByID finds an invoice with its lines preloaded
func (r *GormSalesInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.SalesInvoice, error) {
	var invoice finance.SalesInvoice
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByNumber finds an invoice by its invoice number
func (r *GormSalesInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*finance.SalesInvoice, error) {
	var invoice finance.SalesInvoice
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("invoice_number = ?", invoiceNumber).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// ExistsByNumber reports whether an invoice with the number exists
func (r *GormSalesInvoiceRepository) ExistsByNumber(ctx context.Context, invoiceNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&finance.SalesInvoice{}).
		Where("invoice_number = ?", invoiceNumber).
		Count(&count).Error
	return count > 0, err
}

// FindByBuyer finds invoices issued to a buyer
func (r *GormSalesInvoiceRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]finance.SalesInvoice, error) {
	var invoices []finance.SalesInvoice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.SalesInvoice{}).Where("buyer_id = ?", buyerID),
		filter,
	)
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByStatus finds invoices in the given status
func (r *GormSalesInvoiceRepository) FindByStatus(ctx context.Context, status finance.InvoiceStatus, filter shared.Filter) ([]finance.SalesInvoice, error) {
	var invoices []finance.SalesInvoice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.SalesInvoice{}).Where("status = ?", status),
		filter,
	)
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// GormGoodsReceiptRepository implements finance.GoodsReceiptRepository using GORM
type GormGoodsReceiptRepository struct {
	gormRepository[finance.GoodsReceipt]
}

// NewGormGoodsReceiptRepository creates a new GormGoodsReceiptRepository
func NewGormGoodsReceiptRepository(db *gorm.DB) *GormGoodsReceiptRepository {
	return &GormGoodsReceiptRepository{gormRepository[finance.GoodsReceipt]{
		db:            db,
		searchColumns: []string{"receipt_number", "supplier_name"},
	}}
}

// FindByNumber finds a goods receipt by its receipt number
func (r *GormGoodsReceiptRepository) FindByNumber(ctx context.Context, receiptNumber string) (*finance.GoodsReceipt, error) {
	var receipt finance.GoodsReceipt
	if err := r.db.WithContext(ctx).
		Where("receipt_number = ?", receiptNumber).
		First(&receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// ExistsByNumber reports whether a goods receipt with the number exists
func (r *GormGoodsReceiptRepository) ExistsByNumber(ctx context.Context, receiptNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&finance.GoodsReceipt{}).
		Where("receipt_number = ?", receiptNumber).
		Count(&count).Error
	return count > 0, err
}

// FindBySupplier finds goods receipts posted against a supplier
func (r *GormGoodsReceiptRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]finance.GoodsReceipt, error) {
	var receipts []finance.GoodsReceipt
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.GoodsReceipt{}).Where("supplier_id = ?", supplierID),
		filter,
	)
	if err := query.Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

var (
	_ finance.SalesInvoiceRepository = (*GormSalesInvoiceRepository)(nil)
	_ finance.GoodsReceiptRepository = (*GormGoodsReceiptRepository)(nil)
)
