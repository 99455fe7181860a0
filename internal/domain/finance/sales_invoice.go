package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle state of a sales invoice
type InvoiceStatus string

const (
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoid   InvoiceStatus = "void"
)

// SalesInvoice represents an invoice issued to a buyer for product sold.
// The invoice number is allocated by the sequence allocator at issue time; an
// invoice is never persisted without a committed reference number, and the
// unique index on the number is the final uniqueness backstop.
type SalesInvoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_invoice_number"`
	BuyerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	BuyerName     string          `gorm:"type:varchar(200);not null"`
	ContractID    *uuid.UUID      `gorm:"type:uuid;index"`
	IssueDate     time.Time       `gorm:"not null"`
	DueDate       time.Time       `gorm:"not null"`
	Currency      string          `gorm:"type:varchar(10);not null;default:'USD'"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status        InvoiceStatus   `gorm:"type:varchar(20);not null;default:'issued'"`
	PaidAt        *time.Time
	Notes         string        `gorm:"type:text"`
	Lines         []InvoiceLine `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SalesInvoice) TableName() string {
	return "sales_invoices"
}

// InvoiceLine represents a single charged item on a sales invoice
type InvoiceLine struct {
	shared.BaseEntity
	InvoiceID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductGrade string          `gorm:"type:varchar(100);not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit         string          `gorm:"type:varchar(20);not null;default:'MT'"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoiceLine) TableName() string {
	return "sales_invoice_lines"
}

// NewInvoiceLine creates an invoice line, computing its amount
func NewInvoiceLine(productGrade string, quantity, unitPrice decimal.Decimal) (*InvoiceLine, error) {
	if productGrade == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_GRADE", "Product grade cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	return &InvoiceLine{
		BaseEntity:   shared.NewBaseEntity(),
		ProductGrade: productGrade,
		Quantity:     quantity,
		Unit:         "MT",
		UnitPrice:    unitPrice,
		Amount:       quantity.Mul(unitPrice),
	}, nil
}

// NewSalesInvoice issues a new invoice with an allocated reference number
func NewSalesInvoice(invoiceNumber string, buyerID uuid.UUID, buyerName string, lines []InvoiceLine, taxRate decimal.Decimal, creditDays int) (*SalesInvoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer is required")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_LINES", "Invoice requires at least one line")
	}
	if taxRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	if creditDays < 0 {
		return nil, shared.NewDomainError("INVALID_CREDIT_DAYS", "Credit days cannot be negative")
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Amount)
	}
	tax := subtotal.Mul(taxRate)
	now := time.Now()

	inv := &SalesInvoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		BuyerID:           buyerID,
		BuyerName:         buyerName,
		IssueDate:         now,
		DueDate:           now.AddDate(0, 0, creditDays),
		Currency:          "USD",
		Subtotal:          subtotal,
		TaxAmount:         tax,
		Total:             subtotal.Add(tax),
		Status:            InvoiceStatusIssued,
		Lines:             lines,
	}
	for i := range inv.Lines {
		inv.Lines[i].InvoiceID = inv.ID
	}
	return inv, nil
}

// MarkPaid marks an issued invoice as settled
func (i *SalesInvoice) MarkPaid() error {
	if i.Status != InvoiceStatusIssued {
		return shared.ErrInvalidState
	}
	now := time.Now()
	i.Status = InvoiceStatusPaid
	i.PaidAt = &now
	i.touch()
	return nil
}

// Void cancels an issued invoice. The reference number stays consumed; voided
// numbers are the gaps the numbering scheme tolerates.
func (i *SalesInvoice) Void() error {
	if i.Status != InvoiceStatusIssued {
		return shared.ErrInvalidState
	}
	i.Status = InvoiceStatusVoid
	i.touch()
	return nil
}

// IsOverdue reports whether an unpaid invoice is past its due date
func (i *SalesInvoice) IsOverdue(at time.Time) bool {
	return i.Status == InvoiceStatusIssued && at.After(i.DueDate)
}

func (i *SalesInvoice) touch() {
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}
