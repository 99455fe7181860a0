package persistence

import (
	"context"
	"errors"

	"github.com/petroerp/backend/internal/domain/inventory"
	"github.com/petroerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockBatchRepository implements inventory.StockBatchRepository using GORM
type GormStockBatchRepository struct {
	gormRepository[inventory.StockBatch]
}

// NewGormStockBatchRepository creates a new GormStockBatchRepository
func NewGormStockBatchRepository(db *gorm.DB) *GormStockBatchRepository {
	return &GormStockBatchRepository{gormRepository[inventory.StockBatch]{
		db:            db,
		searchColumns: []string{"batch_number", "terminal", "product_grade"},
	}}
}

// FindByBatchNumber finds a batch by its batch number
func (r *GormStockBatchRepository) FindByBatchNumber(ctx context.Context, batchNumber string) (*inventory.StockBatch, error) {
	var batch inventory.StockBatch
	if err := r.db.WithContext(ctx).
		Where("batch_number = ?", batchNumber).
		First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindAvailableByGrade finds available batches of a product grade
func (r *GormStockBatchRepository) FindAvailableByGrade(ctx context.Context, productGrade string, filter shared.Filter) ([]inventory.StockBatch, error) {
	var batches []inventory.StockBatch
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockBatch{}).
			Where("product_grade = ? AND status = ?", productGrade, inventory.BatchStatusAvailable),
		filter,
	)
	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindByTerminal finds batches held at a terminal
func (r *GormStockBatchRepository) FindByTerminal(ctx context.Context, terminal string, filter shared.Filter) ([]inventory.StockBatch, error) {
	var batches []inventory.StockBatch
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockBatch{}).Where("terminal = ?", terminal),
		filter,
	)
	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

var _ inventory.StockBatchRepository = (*GormStockBatchRepository)(nil)
