package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/shared"
)

// ContractRepository defines persistence operations for contracts
type ContractRepository interface {
	shared.Repository[Contract]
	FindByNumber(ctx context.Context, contractNumber string) (*Contract, error)
	ExistsByNumber(ctx context.Context, contractNumber string) (bool, error)
	FindByStatus(ctx context.Context, status ContractStatus, filter shared.Filter) ([]Contract, error)
}

// ShipmentRepository defines persistence operations for shipments
type ShipmentRepository interface {
	shared.Repository[Shipment]
	FindByContract(ctx context.Context, contractID uuid.UUID, filter shared.Filter) ([]Shipment, error)
	FindByBillOfLading(ctx context.Context, blNumber string) (*Shipment, error)
}
