package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/shared"
)

// SalesInvoiceRepository defines persistence operations for sales invoices
type SalesInvoiceRepository interface {
	shared.Repository[SalesInvoice]
	FindByNumber(ctx context.Context, invoiceNumber string) (*SalesInvoice, error)
	ExistsByNumber(ctx context.Context, invoiceNumber string) (bool, error)
	FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]SalesInvoice, error)
	FindByStatus(ctx context.Context, status InvoiceStatus, filter shared.Filter) ([]SalesInvoice, error)
}

// GoodsReceiptRepository defines persistence operations for goods receipts
type GoodsReceiptRepository interface {
	shared.Repository[GoodsReceipt]
	FindByNumber(ctx context.Context, receiptNumber string) (*GoodsReceipt, error)
	ExistsByNumber(ctx context.Context, receiptNumber string) (bool, error)
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]GoodsReceipt, error)
}
