package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ShipmentStatus represents the lifecycle state of a shipment
type ShipmentStatus string

const (
	ShipmentStatusNominated  ShipmentStatus = "nominated"
	ShipmentStatusLoaded     ShipmentStatus = "loaded"
	ShipmentStatusDischarged ShipmentStatus = "discharged"
	ShipmentStatusCompleted  ShipmentStatus = "completed"
	ShipmentStatusCancelled  ShipmentStatus = "cancelled"
)

// Shipment represents a cargo movement performing part of a contract
type Shipment struct {
	shared.BaseAggregateRoot
	ContractID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ContractNumber    string          `gorm:"type:varchar(50);not null;index"`
	VesselName        string          `gorm:"type:varchar(200)"`
	BillOfLading      string          `gorm:"type:varchar(100);index"` // BL number, assigned at loading
	BillOfLadingDate  *time.Time
	LoadPort          string          `gorm:"type:varchar(100)"`
	DischargePort     string          `gorm:"type:varchar(100)"`
	NominatedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LoadedQuantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OutturnQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Quantity received at discharge
	Status            ShipmentStatus  `gorm:"type:varchar(20);not null;default:'nominated'"`
	ReceiptNumber     string          `gorm:"type:varchar(50);index"` // Goods receipt reference, set on posting
	Notes             string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipment nominates a new shipment against a contract
func NewShipment(contract *Contract, vesselName, loadPort, dischargePort string, nominatedQty decimal.Decimal) (*Shipment, error) {
	if contract == nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Contract is required")
	}
	if !contract.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Shipments can only be nominated against active contracts")
	}
	if !nominatedQty.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Nominated quantity must be positive")
	}

	return &Shipment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ContractID:        contract.ID,
		ContractNumber:    contract.ContractNumber,
		VesselName:        vesselName,
		LoadPort:          loadPort,
		DischargePort:     dischargePort,
		NominatedQuantity: nominatedQty,
		LoadedQuantity:    decimal.Zero,
		OutturnQuantity:   decimal.Zero,
		Status:            ShipmentStatusNominated,
	}, nil
}

// RecordLoading records the bill of lading figures
func (s *Shipment) RecordLoading(blNumber string, blDate time.Time, loadedQty decimal.Decimal) error {
	if s.Status != ShipmentStatusNominated {
		return shared.ErrInvalidState
	}
	if blNumber == "" {
		return shared.NewDomainError("INVALID_BL", "Bill of lading number cannot be empty")
	}
	if !loadedQty.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Loaded quantity must be positive")
	}
	s.BillOfLading = blNumber
	s.BillOfLadingDate = &blDate
	s.LoadedQuantity = loadedQty
	s.Status = ShipmentStatusLoaded
	s.touch()
	return nil
}

// RecordDischarge records the outturn quantity at the discharge port
func (s *Shipment) RecordDischarge(outturnQty decimal.Decimal) error {
	if s.Status != ShipmentStatusLoaded {
		return shared.ErrInvalidState
	}
	if !outturnQty.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Outturn quantity must be positive")
	}
	s.OutturnQuantity = outturnQty
	s.Status = ShipmentStatusDischarged
	s.touch()
	return nil
}

// AttachReceipt links the posted goods receipt and completes the shipment.
// The receipt number comes from the sequence allocator; a shipment is never
// completed without one.
func (s *Shipment) AttachReceipt(receiptNumber string) error {
	if s.Status != ShipmentStatusDischarged {
		return shared.ErrInvalidState
	}
	if receiptNumber == "" {
		return shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	s.ReceiptNumber = receiptNumber
	s.Status = ShipmentStatusCompleted
	s.touch()
	return nil
}

// Cancel cancels a shipment that has not discharged
func (s *Shipment) Cancel() error {
	if s.Status == ShipmentStatusDischarged || s.Status == ShipmentStatusCompleted || s.Status == ShipmentStatusCancelled {
		return shared.ErrInvalidState
	}
	s.Status = ShipmentStatusCancelled
	s.touch()
	return nil
}

func (s *Shipment) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
