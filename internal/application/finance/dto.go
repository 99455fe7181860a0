package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest represents a single line on an invoice request
type InvoiceLineRequest struct {
	ProductGrade string          `json:"product_grade" binding:"required,min=1,max=100"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice    decimal.Decimal `json:"unit_price" binding:"required"`
}

// IssueInvoiceRequest represents a request to issue a sales invoice
type IssueInvoiceRequest struct {
	BuyerID    uuid.UUID            `json:"buyer_id" binding:"required"`
	ContractID *uuid.UUID           `json:"contract_id"`
	Lines      []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
	TaxRate    decimal.Decimal      `json:"tax_rate"`
	Notes      string               `json:"notes"`
}

// InvoiceLineResponse represents an invoice line in API responses
type InvoiceLineResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductGrade string          `json:"product_grade"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Amount       decimal.Decimal `json:"amount"`
}

// InvoiceResponse represents a sales invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	BuyerID       uuid.UUID             `json:"buyer_id"`
	BuyerName     string                `json:"buyer_name"`
	ContractID    *uuid.UUID            `json:"contract_id,omitempty"`
	IssueDate     time.Time             `json:"issue_date"`
	DueDate       time.Time             `json:"due_date"`
	Currency      string                `json:"currency"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxAmount     decimal.Decimal       `json:"tax_amount"`
	Total         decimal.Decimal       `json:"total"`
	Status        string                `json:"status"`
	PaidAt        *time.Time            `json:"paid_at,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Lines         []InvoiceLineResponse `json:"lines"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ToInvoiceResponse converts a domain invoice to its response DTO
func ToInvoiceResponse(inv *finance.SalesInvoice) *InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, line := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			ID:           line.ID,
			ProductGrade: line.ProductGrade,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
			UnitPrice:    line.UnitPrice,
			Amount:       line.Amount,
		}
	}
	return &InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		BuyerID:       inv.BuyerID,
		BuyerName:     inv.BuyerName,
		ContractID:    inv.ContractID,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Currency:      inv.Currency,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		Status:        string(inv.Status),
		PaidAt:        inv.PaidAt,
		Notes:         inv.Notes,
		Lines:         lines,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// PreviewNumberResponse carries a non-reserving preview of the next number
type PreviewNumberResponse struct {
	Next string `json:"next"`
}

// PostReceiptRequest represents a request to post a goods receipt from a
// discharged shipment
type PostReceiptRequest struct {
	ShipmentID uuid.UUID       `json:"shipment_id" binding:"required"`
	SupplierID uuid.UUID       `json:"supplier_id" binding:"required"`
	UnitCost   decimal.Decimal `json:"unit_cost" binding:"required"`
	Terminal   string          `json:"terminal" binding:"required,min=1,max=100"`
	Tank       string          `json:"tank" binding:"max=50"`
	Notes      string          `json:"notes"`
}

// ReceiptResponse represents a goods receipt in API responses
type ReceiptResponse struct {
	ID            uuid.UUID       `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	ShipmentID    *uuid.UUID      `json:"shipment_id,omitempty"`
	ContractID    *uuid.UUID      `json:"contract_id,omitempty"`
	ProductGrade  string          `json:"product_grade"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Currency      string          `json:"currency"`
	ReceivedAt    time.Time       `json:"received_at"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToReceiptResponse converts a domain receipt to its response DTO
func ToReceiptResponse(r *finance.GoodsReceipt) *ReceiptResponse {
	return &ReceiptResponse{
		ID:            r.ID,
		ReceiptNumber: r.ReceiptNumber,
		SupplierID:    r.SupplierID,
		SupplierName:  r.SupplierName,
		ShipmentID:    r.ShipmentID,
		ContractID:    r.ContractID,
		ProductGrade:  r.ProductGrade,
		Quantity:      r.Quantity,
		Unit:          r.Unit,
		UnitCost:      r.UnitCost,
		TotalCost:     r.TotalCost,
		Currency:      r.Currency,
		ReceivedAt:    r.ReceivedAt,
		Status:        string(r.Status),
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
