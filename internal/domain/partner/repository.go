package partner

import (
	"context"

	"github.com/petroerp/backend/internal/domain/shared"
)

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	shared.Repository[Supplier]
	FindByCode(ctx context.Context, code string) (*Supplier, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// BuyerRepository defines persistence operations for buyers
type BuyerRepository interface {
	shared.Repository[Buyer]
	FindByCode(ctx context.Context, code string) (*Buyer, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
