package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/inventory"
	"github.com/petroerp/backend/internal/domain/shared"
)

// BatchService handles stock batch operations. Batches are created by goods
// receipt posting in the finance layer; this service manages what happens to
// them afterwards.
type BatchService struct {
	batchRepo inventory.StockBatchRepository
}

// NewBatchService creates a new BatchService
func NewBatchService(batchRepo inventory.StockBatchRepository) *BatchService {
	return &BatchService{batchRepo: batchRepo}
}

// Get returns a batch by ID
func (s *BatchService) Get(ctx context.Context, id uuid.UUID) (*StockBatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToStockBatchResponse(batch), nil
}

// List returns batches matching the filter, with the total count
func (s *BatchService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[StockBatchResponse], error) {
	batches, err := s.batchRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.batchRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]StockBatchResponse, len(batches))
	for i := range batches {
		items[i] = *ToStockBatchResponse(&batches[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &page, nil
}

// ListAvailableByGrade returns available batches of a product grade
func (s *BatchService) ListAvailableByGrade(ctx context.Context, productGrade string, filter shared.Filter) ([]StockBatchResponse, error) {
	batches, err := s.batchRepo.FindAvailableByGrade(ctx, productGrade, filter)
	if err != nil {
		return nil, err
	}
	items := make([]StockBatchResponse, len(batches))
	for i := range batches {
		items[i] = *ToStockBatchResponse(&batches[i])
	}
	return items, nil
}

// Draw removes quantity from a batch
func (s *BatchService) Draw(ctx context.Context, id uuid.UUID, req DrawBatchRequest) (*StockBatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := batch.Draw(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}
	return ToStockBatchResponse(batch), nil
}

// Adjust corrects a batch quantity after a physical survey
func (s *BatchService) Adjust(ctx context.Context, id uuid.UUID, req AdjustBatchRequest) (*StockBatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := batch.Adjust(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}
	return ToStockBatchResponse(batch), nil
}

// Quarantine holds a batch pending quality inspection
func (s *BatchService) Quarantine(ctx context.Context, id uuid.UUID) (*StockBatchResponse, error) {
	return s.transition(ctx, id, (*inventory.StockBatch).Quarantine)
}

// Release returns a quarantined batch to available stock
func (s *BatchService) Release(ctx context.Context, id uuid.UUID) (*StockBatchResponse, error) {
	return s.transition(ctx, id, (*inventory.StockBatch).Release)
}

func (s *BatchService) transition(ctx context.Context, id uuid.UUID, op func(*inventory.StockBatch) error) (*StockBatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := op(batch); err != nil {
		return nil, err
	}
	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}
	return ToStockBatchResponse(batch), nil
}
