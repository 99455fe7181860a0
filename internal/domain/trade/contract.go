package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ContractSide distinguishes purchase contracts from sales contracts
type ContractSide string

const (
	ContractSidePurchase ContractSide = "purchase" // We buy from a supplier
	ContractSideSale     ContractSide = "sale"     // We sell to a buyer
)

// ContractStatus represents the lifecycle state of a contract
type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "draft"
	ContractStatusActive    ContractStatus = "active"
	ContractStatusCompleted ContractStatus = "completed"
	ContractStatusCancelled ContractStatus = "cancelled"
)

// PriceBasis represents how the contract price is quoted
type PriceBasis string

const (
	PriceBasisFixed   PriceBasis = "fixed"   // Fixed price per unit
	PriceBasisFormula PriceBasis = "formula" // Index-linked formula price
)

// Contract represents a term or spot contract for physical product.
// It is the aggregate root of the trade context.
type Contract struct {
	shared.BaseAggregateRoot
	ContractNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_contract_number"`
	Side           ContractSide    `gorm:"type:varchar(20);not null"`
	CounterpartyID uuid.UUID       `gorm:"type:uuid;not null;index"` // Supplier or buyer depending on side
	Counterparty   string          `gorm:"type:varchar(200);not null"`
	ProductGrade   string          `gorm:"type:varchar(100);not null"` // e.g. "Gasoil 10ppm", "Murban"
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit           string          `gorm:"type:varchar(20);not null;default:'MT'"`
	PriceBasis     PriceBasis      `gorm:"type:varchar(20);not null;default:'fixed'"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency       string          `gorm:"type:varchar(10);not null;default:'USD'"`
	LaycanStart    *time.Time      // Delivery window open
	LaycanEnd      *time.Time      // Delivery window close
	Status         ContractStatus  `gorm:"type:varchar(20);not null;default:'draft'"`
	Notes          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Contract) TableName() string {
	return "contracts"
}

// NewContract creates a new draft contract
func NewContract(contractNumber string, side ContractSide, counterpartyID uuid.UUID, counterparty, productGrade string, quantity decimal.Decimal) (*Contract, error) {
	if contractNumber == "" {
		return nil, shared.NewDomainError("INVALID_CONTRACT_NUMBER", "Contract number cannot be empty")
	}
	if len(contractNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_CONTRACT_NUMBER", "Contract number cannot exceed 50 characters")
	}
	if side != ContractSidePurchase && side != ContractSideSale {
		return nil, shared.NewDomainError("INVALID_CONTRACT_SIDE", "Contract side must be purchase or sale")
	}
	if counterpartyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty is required")
	}
	if productGrade == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_GRADE", "Product grade cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Contract quantity must be positive")
	}

	return &Contract{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ContractNumber:    strings.ToUpper(contractNumber),
		Side:              side,
		CounterpartyID:    counterpartyID,
		Counterparty:      counterparty,
		ProductGrade:      productGrade,
		Quantity:          quantity,
		Unit:              "MT",
		PriceBasis:        PriceBasisFixed,
		UnitPrice:         decimal.Zero,
		Currency:          "USD",
		Status:            ContractStatusDraft,
	}, nil
}

// SetPricing sets the price basis, unit price and currency
func (c *Contract) SetPricing(basis PriceBasis, unitPrice decimal.Decimal, currency string) error {
	if c.Status == ContractStatusCompleted || c.Status == ContractStatusCancelled {
		return shared.ErrInvalidState
	}
	if basis != PriceBasisFixed && basis != PriceBasisFormula {
		return shared.NewDomainError("INVALID_PRICE_BASIS", "Unknown price basis")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	c.PriceBasis = basis
	c.UnitPrice = unitPrice
	if currency != "" {
		c.Currency = strings.ToUpper(currency)
	}
	c.touch()
	return nil
}

// SetLaycan sets the delivery window
func (c *Contract) SetLaycan(start, end time.Time) error {
	if end.Before(start) {
		return shared.NewDomainError("INVALID_LAYCAN", "Laycan end cannot precede laycan start")
	}
	c.LaycanStart = &start
	c.LaycanEnd = &end
	c.touch()
	return nil
}

// Activate moves a draft contract into force
func (c *Contract) Activate() error {
	if c.Status != ContractStatusDraft {
		return shared.ErrInvalidState
	}
	c.Status = ContractStatusActive
	c.touch()
	return nil
}

// Complete marks an active contract fully performed
func (c *Contract) Complete() error {
	if c.Status != ContractStatusActive {
		return shared.ErrInvalidState
	}
	c.Status = ContractStatusCompleted
	c.touch()
	return nil
}

// Cancel cancels a contract that has not completed
func (c *Contract) Cancel() error {
	if c.Status == ContractStatusCompleted || c.Status == ContractStatusCancelled {
		return shared.ErrInvalidState
	}
	c.Status = ContractStatusCancelled
	c.touch()
	return nil
}

// IsActive reports whether shipments may be nominated against the contract
func (c *Contract) IsActive() bool {
	return c.Status == ContractStatusActive
}

func (c *Contract) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
