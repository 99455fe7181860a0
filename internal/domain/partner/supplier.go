package partner

import (
	"strings"
	"time"

	"github.com/petroerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
	SupplierStatusBlocked  SupplierStatus = "blocked" // Blocked due to quality or payment disputes
)

// SupplierType represents the kind of counterparty supplying product
type SupplierType string

const (
	SupplierTypeProducer SupplierType = "producer" // Upstream producer
	SupplierTypeRefiner  SupplierType = "refiner"  // Refinery
	SupplierTypeTrader   SupplierType = "trader"   // Trading house / reseller
)

// Supplier represents a supplying counterparty in the partner context.
// It is the aggregate root for supplier-related operations.
type Supplier struct {
	shared.BaseAggregateRoot
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_supplier_code"`
	Name        string          `gorm:"type:varchar(200);not null"`
	ShortName   string          `gorm:"type:varchar(100)"`
	Type        SupplierType    `gorm:"type:varchar(20);not null;default:'trader'"`
	Status      SupplierStatus  `gorm:"type:varchar(20);not null;default:'active'"`
	ContactName string          `gorm:"type:varchar(100)"`
	Phone       string          `gorm:"type:varchar(50);index"`
	Email       string          `gorm:"type:varchar(200);index"`
	Address     string          `gorm:"type:text"`
	Country     string          `gorm:"type:varchar(100)"`
	TaxID       string          `gorm:"type:varchar(50)"`
	BankName    string          `gorm:"type:varchar(200)"`
	BankAccount string          `gorm:"type:varchar(100)"`
	CreditDays  int             `gorm:"not null;default:0"`                    // Payment terms: days until payment due
	CreditLimit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Maximum credit allowed
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(code, name string, supplierType SupplierType) (*Supplier, error) {
	if err := validatePartnerCode(code); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}
	switch supplierType {
	case SupplierTypeProducer, SupplierTypeRefiner, SupplierTypeTrader:
	default:
		return nil, shared.NewDomainError("INVALID_SUPPLIER_TYPE", "Unknown supplier type")
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Type:              supplierType,
		Status:            SupplierStatusActive,
		CreditLimit:       decimal.Zero,
	}, nil
}

// Update updates the supplier's basic information
func (s *Supplier) Update(name, shortName string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	if len(shortName) > 100 {
		return shared.NewDomainError("INVALID_SHORT_NAME", "Short name cannot exceed 100 characters")
	}
	s.Name = name
	s.ShortName = shortName
	s.touch()
	return nil
}

// SetContact sets the supplier's contact information
func (s *Supplier) SetContact(contactName, phone, email string) error {
	if len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	s.ContactName = contactName
	s.Phone = phone
	s.Email = strings.ToLower(email)
	s.touch()
	return nil
}

// SetPaymentTerms sets credit days and credit limit
func (s *Supplier) SetPaymentTerms(creditDays int, creditLimit decimal.Decimal) error {
	if creditDays < 0 {
		return shared.NewDomainError("INVALID_CREDIT_DAYS", "Credit days cannot be negative")
	}
	if creditLimit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	s.CreditDays = creditDays
	s.CreditLimit = creditLimit
	s.touch()
	return nil
}

// Block blocks the supplier from new contracts
func (s *Supplier) Block() error {
	if s.Status == SupplierStatusBlocked {
		return shared.ErrInvalidState
	}
	s.Status = SupplierStatusBlocked
	s.touch()
	return nil
}

// Activate reactivates the supplier
func (s *Supplier) Activate() {
	s.Status = SupplierStatusActive
	s.touch()
}

// Deactivate marks the supplier as inactive
func (s *Supplier) Deactivate() {
	s.Status = SupplierStatusInactive
	s.touch()
}

// IsActive reports whether the supplier may enter new contracts
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}

func (s *Supplier) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

func validatePartnerCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Code cannot exceed 50 characters")
	}
	return nil
}

func validatePartnerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
