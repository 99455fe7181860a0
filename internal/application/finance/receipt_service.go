package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/finance"
	"github.com/petroerp/backend/internal/domain/inventory"
	"github.com/petroerp/backend/internal/domain/partner"
	"github.com/petroerp/backend/internal/domain/sequence"
	"github.com/petroerp/backend/internal/domain/shared"
	"github.com/petroerp/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// ReceiptPrefix is the reference-code prefix for goods receipts. Receipts and
// invoices issued on the same day number independently.
const ReceiptPrefix = "RCP"

// ReceiptService posts goods receipts from discharged shipments. Posting
// allocates the receipt number, completes the shipment and books the product
// into a stock batch.
type ReceiptService struct {
	receiptRepo  finance.GoodsReceiptRepository
	supplierRepo partner.SupplierRepository
	shipmentRepo trade.ShipmentRepository
	contractRepo trade.ContractRepository
	batchRepo    inventory.StockBatchRepository
	allocator    sequence.Issuer
	logger       *zap.Logger
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(
	receiptRepo finance.GoodsReceiptRepository,
	supplierRepo partner.SupplierRepository,
	shipmentRepo trade.ShipmentRepository,
	contractRepo trade.ContractRepository,
	batchRepo inventory.StockBatchRepository,
	allocator sequence.Issuer,
	logger *zap.Logger,
) *ReceiptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptService{
		receiptRepo:  receiptRepo,
		supplierRepo: supplierRepo,
		shipmentRepo: shipmentRepo,
		contractRepo: contractRepo,
		batchRepo:    batchRepo,
		allocator:    allocator,
		logger:       logger,
	}
}

// Post posts a goods receipt for a discharged shipment
func (s *ReceiptService) Post(ctx context.Context, req PostReceiptRequest) (*ReceiptResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, req.ShipmentID)
	if err != nil {
		return nil, err
	}
	if shipment.Status != trade.ShipmentStatusDischarged {
		return nil, shared.NewDomainError("INVALID_STATE", "Only discharged shipments can be received")
	}

	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsActive() {
		return nil, shared.NewDomainError("SUPPLIER_NOT_ACTIVE", "Cannot receive from a blocked or inactive supplier")
	}

	contract, err := s.contractRepo.FindByID(ctx, shipment.ContractID)
	if err != nil {
		return nil, err
	}

	number, err := s.allocator.AllocateNext(ctx, sequence.TodayKey(), ReceiptPrefix)
	if err != nil {
		if errors.Is(err, sequence.ErrStoreUnreachable) {
			s.logger.Error("receipt posting aborted, sequence store unreachable", zap.Error(err))
		}
		return nil, err
	}

	receipt, err := finance.NewGoodsReceipt(number, supplier.ID, supplier.Name, contract.ProductGrade, shipment.OutturnQuantity, req.UnitCost)
	if err != nil {
		return nil, err
	}
	receipt.LinkShipment(shipment.ID, shipment.ContractID)
	receipt.Notes = req.Notes

	if err := shipment.AttachReceipt(number); err != nil {
		return nil, err
	}

	batch, err := inventory.NewStockBatch(
		fmt.Sprintf("%s-%s", number, req.Terminal),
		req.Terminal,
		contract.ProductGrade,
		number,
		shipment.OutturnQuantity,
		req.UnitCost,
		receipt.ReceivedAt,
	)
	if err != nil {
		return nil, err
	}
	batch.Tank = req.Tank

	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, err
	}
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info("goods receipt posted",
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.String("supplier", supplier.Code),
		zap.String("quantity", receipt.Quantity.String()),
	)
	return ToReceiptResponse(receipt), nil
}

// PreviewNextNumber returns the number the next Post would most likely
// assign, without reserving it
func (s *ReceiptService) PreviewNextNumber(ctx context.Context) (*PreviewNumberResponse, error) {
	next, err := s.allocator.PreviewNext(ctx, sequence.TodayKey(), ReceiptPrefix)
	if err != nil {
		return nil, err
	}
	return &PreviewNumberResponse{Next: next}, nil
}

// Get returns a receipt by ID
func (s *ReceiptService) Get(ctx context.Context, id uuid.UUID) (*ReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToReceiptResponse(receipt), nil
}

// GetByNumber returns a receipt by its receipt number
func (s *ReceiptService) GetByNumber(ctx context.Context, receiptNumber string) (*ReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByNumber(ctx, receiptNumber)
	if err != nil {
		return nil, err
	}
	return ToReceiptResponse(receipt), nil
}

// List returns receipts matching the filter, with the total count
func (s *ReceiptService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ReceiptResponse], error) {
	receipts, err := s.receiptRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.receiptRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ReceiptResponse, len(receipts))
	for i := range receipts {
		items[i] = *ToReceiptResponse(&receipts[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &page, nil
}

// Reverse backs out a posted receipt. The number stays consumed.
func (s *ReceiptService) Reverse(ctx context.Context, id uuid.UUID) (*ReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := receipt.Reverse(); err != nil {
		return nil, err
	}
	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, err
	}
	return ToReceiptResponse(receipt), nil
}
