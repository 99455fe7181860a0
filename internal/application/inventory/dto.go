package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// AdjustBatchRequest corrects a batch quantity after a physical survey
type AdjustBatchRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// DrawBatchRequest draws product out of a batch
type DrawBatchRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// StockBatchResponse represents a stock batch in API responses
type StockBatchResponse struct {
	ID            uuid.UUID       `json:"id"`
	BatchNumber   string          `json:"batch_number"`
	Terminal      string          `json:"terminal"`
	Tank          string          `json:"tank,omitempty"`
	ProductGrade  string          `json:"product_grade"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	ReceivedAt    time.Time       `json:"received_at"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToStockBatchResponse converts a domain batch to its response DTO
func ToStockBatchResponse(b *inventory.StockBatch) *StockBatchResponse {
	return &StockBatchResponse{
		ID:            b.ID,
		BatchNumber:   b.BatchNumber,
		Terminal:      b.Terminal,
		Tank:          b.Tank,
		ProductGrade:  b.ProductGrade,
		Quantity:      b.Quantity,
		Unit:          b.Unit,
		UnitCost:      b.UnitCost,
		ReceivedAt:    b.ReceivedAt,
		ReceiptNumber: b.ReceiptNumber,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
