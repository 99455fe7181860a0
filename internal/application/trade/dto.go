package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// CreateContractRequest represents a request to book a new contract
type CreateContractRequest struct {
	ContractNumber string           `json:"contract_number" binding:"required,min=1,max=50"`
	Side           string           `json:"side" binding:"required,oneof=purchase sale"`
	CounterpartyID uuid.UUID        `json:"counterparty_id" binding:"required"`
	Counterparty   string           `json:"counterparty" binding:"required,min=1,max=200"`
	ProductGrade   string           `json:"product_grade" binding:"required,min=1,max=100"`
	Quantity       decimal.Decimal  `json:"quantity" binding:"required"`
	PriceBasis     string           `json:"price_basis" binding:"omitempty,oneof=fixed formula"`
	UnitPrice      *decimal.Decimal `json:"unit_price"`
	Currency       string           `json:"currency" binding:"omitempty,len=3"`
	LaycanStart    *time.Time       `json:"laycan_start"`
	LaycanEnd      *time.Time       `json:"laycan_end"`
	Notes          string           `json:"notes"`
}

// ContractResponse represents a contract in API responses
type ContractResponse struct {
	ID             uuid.UUID       `json:"id"`
	ContractNumber string          `json:"contract_number"`
	Side           string          `json:"side"`
	CounterpartyID uuid.UUID       `json:"counterparty_id"`
	Counterparty   string          `json:"counterparty"`
	ProductGrade   string          `json:"product_grade"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	PriceBasis     string          `json:"price_basis"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Currency       string          `json:"currency"`
	LaycanStart    *time.Time      `json:"laycan_start,omitempty"`
	LaycanEnd      *time.Time      `json:"laycan_end,omitempty"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToContractResponse converts a domain contract to its response DTO
func ToContractResponse(c *trade.Contract) *ContractResponse {
	return &ContractResponse{
		ID:             c.ID,
		ContractNumber: c.ContractNumber,
		Side:           string(c.Side),
		CounterpartyID: c.CounterpartyID,
		Counterparty:   c.Counterparty,
		ProductGrade:   c.ProductGrade,
		Quantity:       c.Quantity,
		Unit:           c.Unit,
		PriceBasis:     string(c.PriceBasis),
		UnitPrice:      c.UnitPrice,
		Currency:       c.Currency,
		LaycanStart:    c.LaycanStart,
		LaycanEnd:      c.LaycanEnd,
		Status:         string(c.Status),
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// NominateShipmentRequest represents a request to nominate a shipment
type NominateShipmentRequest struct {
	ContractID        uuid.UUID       `json:"contract_id" binding:"required"`
	VesselName        string          `json:"vessel_name" binding:"max=200"`
	LoadPort          string          `json:"load_port" binding:"max=100"`
	DischargePort     string          `json:"discharge_port" binding:"max=100"`
	NominatedQuantity decimal.Decimal `json:"nominated_quantity" binding:"required"`
}

// RecordLoadingRequest represents bill of lading figures at load port
type RecordLoadingRequest struct {
	BillOfLading     string          `json:"bill_of_lading" binding:"required,min=1,max=100"`
	BillOfLadingDate time.Time       `json:"bill_of_lading_date" binding:"required"`
	LoadedQuantity   decimal.Decimal `json:"loaded_quantity" binding:"required"`
}

// RecordDischargeRequest represents outturn figures at discharge port
type RecordDischargeRequest struct {
	OutturnQuantity decimal.Decimal `json:"outturn_quantity" binding:"required"`
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID                uuid.UUID       `json:"id"`
	ContractID        uuid.UUID       `json:"contract_id"`
	ContractNumber    string          `json:"contract_number"`
	VesselName        string          `json:"vessel_name,omitempty"`
	BillOfLading      string          `json:"bill_of_lading,omitempty"`
	BillOfLadingDate  *time.Time      `json:"bill_of_lading_date,omitempty"`
	LoadPort          string          `json:"load_port,omitempty"`
	DischargePort     string          `json:"discharge_port,omitempty"`
	NominatedQuantity decimal.Decimal `json:"nominated_quantity"`
	LoadedQuantity    decimal.Decimal `json:"loaded_quantity"`
	OutturnQuantity   decimal.Decimal `json:"outturn_quantity"`
	Status            string          `json:"status"`
	ReceiptNumber     string          `json:"receipt_number,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToShipmentResponse converts a domain shipment to its response DTO
func ToShipmentResponse(s *trade.Shipment) *ShipmentResponse {
	return &ShipmentResponse{
		ID:                s.ID,
		ContractID:        s.ContractID,
		ContractNumber:    s.ContractNumber,
		VesselName:        s.VesselName,
		BillOfLading:      s.BillOfLading,
		BillOfLadingDate:  s.BillOfLadingDate,
		LoadPort:          s.LoadPort,
		DischargePort:     s.DischargePort,
		NominatedQuantity: s.NominatedQuantity,
		LoadedQuantity:    s.LoadedQuantity,
		OutturnQuantity:   s.OutturnQuantity,
		Status:            string(s.Status),
		ReceiptNumber:     s.ReceiptNumber,
		Notes:             s.Notes,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
