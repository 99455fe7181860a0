package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/shared"
	"github.com/petroerp/backend/internal/domain/trade"
)

// ShipmentService handles shipment lifecycle operations up to discharge.
// Posting the goods receipt that completes a shipment belongs to the finance
// layer, which owns the reference-number allocation.
type ShipmentService struct {
	shipmentRepo trade.ShipmentRepository
	contractRepo trade.ContractRepository
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(shipmentRepo trade.ShipmentRepository, contractRepo trade.ContractRepository) *ShipmentService {
	return &ShipmentService{
		shipmentRepo: shipmentRepo,
		contractRepo: contractRepo,
	}
}

// Nominate nominates a shipment against an active contract
func (s *ShipmentService) Nominate(ctx context.Context, req NominateShipmentRequest) (*ShipmentResponse, error) {
	contract, err := s.contractRepo.FindByID(ctx, req.ContractID)
	if err != nil {
		return nil, err
	}

	shipment, err := trade.NewShipment(contract, req.VesselName, req.LoadPort, req.DischargePort, req.NominatedQuantity)
	if err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	return ToShipmentResponse(shipment), nil
}

// Get returns a shipment by ID
func (s *ShipmentService) Get(ctx context.Context, id uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToShipmentResponse(shipment), nil
}

// List returns shipments matching the filter, with the total count
func (s *ShipmentService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ShipmentResponse], error) {
	shipments, err := s.shipmentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.shipmentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ShipmentResponse, len(shipments))
	for i := range shipments {
		items[i] = *ToShipmentResponse(&shipments[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &page, nil
}

// ListByContract returns shipments nominated against a contract
func (s *ShipmentService) ListByContract(ctx context.Context, contractID uuid.UUID, filter shared.Filter) ([]ShipmentResponse, error) {
	shipments, err := s.shipmentRepo.FindByContract(ctx, contractID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]ShipmentResponse, len(shipments))
	for i := range shipments {
		items[i] = *ToShipmentResponse(&shipments[i])
	}
	return items, nil
}

// RecordLoading records the bill of lading figures at the load port
func (s *ShipmentService) RecordLoading(ctx context.Context, id uuid.UUID, req RecordLoadingRequest) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shipment.RecordLoading(req.BillOfLading, req.BillOfLadingDate, req.LoadedQuantity); err != nil {
		return nil, err
	}
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	return ToShipmentResponse(shipment), nil
}

// RecordDischarge records the outturn quantity at the discharge port
func (s *ShipmentService) RecordDischarge(ctx context.Context, id uuid.UUID, req RecordDischargeRequest) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shipment.RecordDischarge(req.OutturnQuantity); err != nil {
		return nil, err
	}
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	return ToShipmentResponse(shipment), nil
}

// Cancel cancels a shipment that has not discharged
func (s *ShipmentService) Cancel(ctx context.Context, id uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shipment.Cancel(); err != nil {
		return nil, err
	}
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	return ToShipmentResponse(shipment), nil
}
