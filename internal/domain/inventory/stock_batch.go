package inventory

import (
	"context"
	"time"

	"github.com/petroerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BatchStatus represents the state of a stock batch
type BatchStatus string

const (
	BatchStatusAvailable  BatchStatus = "available"
	BatchStatusDepleted   BatchStatus = "depleted"
	BatchStatusQuarantine BatchStatus = "quarantine" // Held pending quality inspection
)

// StockBatch represents a parcel of product held in a tank or terminal,
// traced back to the goods receipt that brought it in.
type StockBatch struct {
	shared.BaseAggregateRoot
	BatchNumber   string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_stock_batch_number"`
	Terminal      string          `gorm:"type:varchar(100);not null;index"`
	Tank          string          `gorm:"type:varchar(50)"`
	ProductGrade  string          `gorm:"type:varchar(100);not null;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit          string          `gorm:"type:varchar(20);not null;default:'MT'"`
	UnitCost      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReceivedAt    time.Time       `gorm:"not null"`
	ReceiptNumber string          `gorm:"type:varchar(50);index"` // Source goods receipt reference
	Status        BatchStatus     `gorm:"type:varchar(20);not null;default:'available'"`
}

// TableName returns the table name for GORM
func (StockBatch) TableName() string {
	return "stock_batches"
}

// NewStockBatch creates a batch from a posted goods receipt
func NewStockBatch(batchNumber, terminal, productGrade, receiptNumber string, quantity, unitCost decimal.Decimal, receivedAt time.Time) (*StockBatch, error) {
	if batchNumber == "" {
		return nil, shared.NewDomainError("INVALID_BATCH_NUMBER", "Batch number cannot be empty")
	}
	if terminal == "" {
		return nil, shared.NewDomainError("INVALID_TERMINAL", "Terminal cannot be empty")
	}
	if productGrade == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_GRADE", "Product grade cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Batch quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	return &StockBatch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BatchNumber:       batchNumber,
		Terminal:          terminal,
		ProductGrade:      productGrade,
		Quantity:          quantity,
		Unit:              "MT",
		UnitCost:          unitCost,
		ReceivedAt:        receivedAt,
		ReceiptNumber:     receiptNumber,
		Status:            BatchStatusAvailable,
	}, nil
}

// Draw removes quantity from the batch, marking it depleted when exhausted
func (b *StockBatch) Draw(qty decimal.Decimal) error {
	if b.Status != BatchStatusAvailable {
		return shared.ErrInvalidState
	}
	if !qty.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Draw quantity must be positive")
	}
	if qty.GreaterThan(b.Quantity) {
		return shared.ErrInsufficientStock
	}
	b.Quantity = b.Quantity.Sub(qty)
	if b.Quantity.IsZero() {
		b.Status = BatchStatusDepleted
	}
	b.touch()
	return nil
}

// Adjust corrects the batch quantity after a physical survey
func (b *StockBatch) Adjust(newQty decimal.Decimal) error {
	if newQty.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Adjusted quantity cannot be negative")
	}
	b.Quantity = newQty
	if newQty.IsZero() {
		b.Status = BatchStatusDepleted
	} else if b.Status == BatchStatusDepleted {
		b.Status = BatchStatusAvailable
	}
	b.touch()
	return nil
}

// Quarantine holds the batch pending quality inspection
func (b *StockBatch) Quarantine() error {
	if b.Status != BatchStatusAvailable {
		return shared.ErrInvalidState
	}
	b.Status = BatchStatusQuarantine
	b.touch()
	return nil
}

// Release returns a quarantined batch to available stock
func (b *StockBatch) Release() error {
	if b.Status != BatchStatusQuarantine {
		return shared.ErrInvalidState
	}
	b.Status = BatchStatusAvailable
	b.touch()
	return nil
}

func (b *StockBatch) touch() {
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// StockBatchRepository defines persistence operations for stock batches
type StockBatchRepository interface {
	shared.Repository[StockBatch]
	FindByBatchNumber(ctx context.Context, batchNumber string) (*StockBatch, error)
	FindAvailableByGrade(ctx context.Context, productGrade string, filter shared.Filter) ([]StockBatch, error)
	FindByTerminal(ctx context.Context, terminal string, filter shared.Filter) ([]StockBatch, error)
}
