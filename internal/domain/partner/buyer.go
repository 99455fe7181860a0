package partner

import (
	"strings"
	"time"

	"github.com/petroerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BuyerStatus represents the status of a buyer
type BuyerStatus string

const (
	BuyerStatusActive   BuyerStatus = "active"
	BuyerStatusInactive BuyerStatus = "inactive"
	BuyerStatusOnHold   BuyerStatus = "on_hold" // Credit hold
)

// Buyer represents a purchasing counterparty in the partner context.
// It is the aggregate root for buyer-related operations.
type Buyer struct {
	shared.BaseAggregateRoot
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_buyer_code"`
	Name        string          `gorm:"type:varchar(200);not null"`
	ShortName   string          `gorm:"type:varchar(100)"`
	Status      BuyerStatus     `gorm:"type:varchar(20);not null;default:'active'"`
	ContactName string          `gorm:"type:varchar(100)"`
	Phone       string          `gorm:"type:varchar(50);index"`
	Email       string          `gorm:"type:varchar(200);index"`
	Address     string          `gorm:"type:text"`
	Country     string          `gorm:"type:varchar(100)"`
	TaxID       string          `gorm:"type:varchar(50)"`
	CreditDays  int             `gorm:"not null;default:0"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Outstanding receivables
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Buyer) TableName() string {
	return "buyers"
}

// NewBuyer creates a new buyer with required fields
func NewBuyer(code, name string) (*Buyer, error) {
	if err := validatePartnerCode(code); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Buyer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            BuyerStatusActive,
		CreditLimit:       decimal.Zero,
		Balance:           decimal.Zero,
	}, nil
}

// Update updates the buyer's basic information
func (b *Buyer) Update(name, shortName string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	if len(shortName) > 100 {
		return shared.NewDomainError("INVALID_SHORT_NAME", "Short name cannot exceed 100 characters")
	}
	b.Name = name
	b.ShortName = shortName
	b.touch()
	return nil
}

// SetContact sets the buyer's contact information
func (b *Buyer) SetContact(contactName, phone, email string) error {
	if len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	b.ContactName = contactName
	b.Phone = phone
	b.Email = strings.ToLower(email)
	b.touch()
	return nil
}

// SetPaymentTerms sets credit days and credit limit
func (b *Buyer) SetPaymentTerms(creditDays int, creditLimit decimal.Decimal) error {
	if creditDays < 0 {
		return shared.NewDomainError("INVALID_CREDIT_DAYS", "Credit days cannot be negative")
	}
	if creditLimit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	b.CreditDays = creditDays
	b.CreditLimit = creditLimit
	b.touch()
	return nil
}

// AddReceivable increases the buyer's outstanding balance
func (b *Buyer) AddReceivable(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	b.Balance = b.Balance.Add(amount)
	b.touch()
	return nil
}

// SettleReceivable reduces the buyer's outstanding balance
func (b *Buyer) SettleReceivable(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if amount.GreaterThan(b.Balance) {
		return shared.NewDomainError("INVALID_AMOUNT", "Settlement exceeds outstanding balance")
	}
	b.Balance = b.Balance.Sub(amount)
	b.touch()
	return nil
}

// Hold places the buyer on credit hold
func (b *Buyer) Hold() error {
	if b.Status == BuyerStatusOnHold {
		return shared.ErrInvalidState
	}
	b.Status = BuyerStatusOnHold
	b.touch()
	return nil
}

// Activate reactivates the buyer
func (b *Buyer) Activate() {
	b.Status = BuyerStatusActive
	b.touch()
}

// IsActive reports whether the buyer may be invoiced
func (b *Buyer) IsActive() bool {
	return b.Status == BuyerStatusActive
}

func (b *Buyer) touch() {
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}
