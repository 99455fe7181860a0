package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReceiptStatus represents the lifecycle state of a goods receipt
type ReceiptStatus string

const (
	ReceiptStatusPosted   ReceiptStatus = "posted"
	ReceiptStatusReversed ReceiptStatus = "reversed"
)

// GoodsReceipt documents product taken into stock from a discharged shipment.
// Like the sales invoice, its reference number comes exclusively from the
// sequence allocator and carries a unique index.
type GoodsReceipt struct {
	shared.BaseAggregateRoot
	ReceiptNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_goods_receipt_number"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierName  string          `gorm:"type:varchar(200);not null"`
	ShipmentID    *uuid.UUID      `gorm:"type:uuid;index"`
	ContractID    *uuid.UUID      `gorm:"type:uuid;index"`
	ProductGrade  string          `gorm:"type:varchar(100);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit          string          `gorm:"type:varchar(20);not null;default:'MT'"`
	UnitCost      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalCost     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency      string          `gorm:"type:varchar(10);not null;default:'USD'"`
	ReceivedAt    time.Time       `gorm:"not null"`
	Status        ReceiptStatus   `gorm:"type:varchar(20);not null;default:'posted'"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (GoodsReceipt) TableName() string {
	return "goods_receipts"
}

// NewGoodsReceipt posts a receipt with an allocated reference number
func NewGoodsReceipt(receiptNumber string, supplierID uuid.UUID, supplierName, productGrade string, quantity, unitCost decimal.Decimal) (*GoodsReceipt, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier is required")
	}
	if productGrade == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_GRADE", "Product grade cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	return &GoodsReceipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReceiptNumber:     receiptNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		ProductGrade:      productGrade,
		Quantity:          quantity,
		Unit:              "MT",
		UnitCost:          unitCost,
		TotalCost:         quantity.Mul(unitCost),
		Currency:          "USD",
		ReceivedAt:        time.Now(),
		Status:            ReceiptStatusPosted,
	}, nil
}

// LinkShipment associates the receipt with the shipment it settles
func (r *GoodsReceipt) LinkShipment(shipmentID, contractID uuid.UUID) {
	if shipmentID != uuid.Nil {
		r.ShipmentID = &shipmentID
	}
	if contractID != uuid.Nil {
		r.ContractID = &contractID
	}
	r.touch()
}

// Reverse backs out a posted receipt. The reference number stays consumed.
func (r *GoodsReceipt) Reverse() error {
	if r.Status != ReceiptStatusPosted {
		return shared.ErrInvalidState
	}
	r.Status = ReceiptStatusReversed
	r.touch()
	return nil
}

func (r *GoodsReceipt) touch() {
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}
