package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CreateSupplierRequest represents a request to create a new supplier
type CreateSupplierRequest struct {
	Code        string           `json:"code" binding:"required,min=1,max=50"`
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Type        string           `json:"type" binding:"required,oneof=producer refiner trader"`
	ContactName string           `json:"contact_name" binding:"max=100"`
	Phone       string           `json:"phone" binding:"max=50"`
	Email       string           `json:"email" binding:"omitempty,email,max=200"`
	Country     string           `json:"country" binding:"max=100"`
	TaxID       string           `json:"tax_id" binding:"max=50"`
	CreditDays  int              `json:"credit_days" binding:"min=0"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
	Notes       string           `json:"notes"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	ShortName   *string          `json:"short_name" binding:"omitempty,max=100"`
	ContactName *string          `json:"contact_name" binding:"omitempty,max=100"`
	Phone       *string          `json:"phone" binding:"omitempty,max=50"`
	Email       *string          `json:"email" binding:"omitempty,email,max=200"`
	CreditDays  *int             `json:"credit_days" binding:"omitempty,min=0"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
	Notes       *string          `json:"notes"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	ShortName   string          `json:"short_name,omitempty"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	ContactName string          `json:"contact_name,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty"`
	Country     string          `json:"country,omitempty"`
	TaxID       string          `json:"tax_id,omitempty"`
	CreditDays  int             `json:"credit_days"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToSupplierResponse converts a domain supplier to its response DTO
func ToSupplierResponse(s *partner.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:          s.ID,
		Code:        s.Code,
		Name:        s.Name,
		ShortName:   s.ShortName,
		Type:        string(s.Type),
		Status:      string(s.Status),
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Country:     s.Country,
		TaxID:       s.TaxID,
		CreditDays:  s.CreditDays,
		CreditLimit: s.CreditLimit,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// CreateBuyerRequest represents a request to create a new buyer
type CreateBuyerRequest struct {
	Code        string           `json:"code" binding:"required,min=1,max=50"`
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	ContactName string           `json:"contact_name" binding:"max=100"`
	Phone       string           `json:"phone" binding:"max=50"`
	Email       string           `json:"email" binding:"omitempty,email,max=200"`
	Country     string           `json:"country" binding:"max=100"`
	TaxID       string           `json:"tax_id" binding:"max=50"`
	CreditDays  int              `json:"credit_days" binding:"min=0"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
	Notes       string           `json:"notes"`
}

// UpdateBuyerRequest represents a request to update a buyer
type UpdateBuyerRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	ShortName   *string          `json:"short_name" binding:"omitempty,max=100"`
	ContactName *string          `json:"contact_name" binding:"omitempty,max=100"`
	Phone       *string          `json:"phone" binding:"omitempty,max=50"`
	Email       *string          `json:"email" binding:"omitempty,email,max=200"`
	CreditDays  *int             `json:"credit_days" binding:"omitempty,min=0"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
	Notes       *string          `json:"notes"`
}

// BuyerResponse represents a buyer in API responses
type BuyerResponse struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	ShortName   string          `json:"short_name,omitempty"`
	Status      string          `json:"status"`
	ContactName string          `json:"contact_name,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty"`
	Country     string          `json:"country,omitempty"`
	TaxID       string          `json:"tax_id,omitempty"`
	CreditDays  int             `json:"credit_days"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Balance     decimal.Decimal `json:"balance"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToBuyerResponse converts a domain buyer to its response DTO
func ToBuyerResponse(b *partner.Buyer) *BuyerResponse {
	return &BuyerResponse{
		ID:          b.ID,
		Code:        b.Code,
		Name:        b.Name,
		ShortName:   b.ShortName,
		Status:      string(b.Status),
		ContactName: b.ContactName,
		Phone:       b.Phone,
		Email:       b.Email,
		Country:     b.Country,
		TaxID:       b.TaxID,
		CreditDays:  b.CreditDays,
		CreditLimit: b.CreditLimit,
		Balance:     b.Balance,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
