package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/shared"
	"github.com/petroerp/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ContractService handles contract lifecycle operations
type ContractService struct {
	contractRepo trade.ContractRepository
}

// NewContractService creates a new ContractService
func NewContractService(contractRepo trade.ContractRepository) *ContractService {
	return &ContractService{contractRepo: contractRepo}
}

// Create books a new draft contract
func (s *ContractService) Create(ctx context.Context, req CreateContractRequest) (*ContractResponse, error) {
	exists, err := s.contractRepo.ExistsByNumber(ctx, req.ContractNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Contract with this number already exists")
	}

	contract, err := trade.NewContract(
		req.ContractNumber,
		trade.ContractSide(req.Side),
		req.CounterpartyID,
		req.Counterparty,
		req.ProductGrade,
		req.Quantity,
	)
	if err != nil {
		return nil, err
	}

	if req.PriceBasis != "" || req.UnitPrice != nil {
		basis := contract.PriceBasis
		if req.PriceBasis != "" {
			basis = trade.PriceBasis(req.PriceBasis)
		}
		price := decimal.Zero
		if req.UnitPrice != nil {
			price = *req.UnitPrice
		}
		if err := contract.SetPricing(basis, price, req.Currency); err != nil {
			return nil, err
		}
	}
	if req.LaycanStart != nil && req.LaycanEnd != nil {
		if err := contract.SetLaycan(*req.LaycanStart, *req.LaycanEnd); err != nil {
			return nil, err
		}
	}
	contract.Notes = req.Notes

	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return nil, err
	}
	return ToContractResponse(contract), nil
}

// Get returns a contract by ID
func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*ContractResponse, error) {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToContractResponse(contract), nil
}

// List returns contracts matching the filter, with the total count
func (s *ContractService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ContractResponse], error) {
	contracts, err := s.contractRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.contractRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ContractResponse, len(contracts))
	for i := range contracts {
		items[i] = *ToContractResponse(&contracts[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &page, nil
}

// Activate moves a draft contract into force
func (s *ContractService) Activate(ctx context.Context, id uuid.UUID) (*ContractResponse, error) {
	return s.transition(ctx, id, (*trade.Contract).Activate)
}

// Complete marks an active contract fully performed
func (s *ContractService) Complete(ctx context.Context, id uuid.UUID) (*ContractResponse, error) {
	return s.transition(ctx, id, (*trade.Contract).Complete)
}

// Cancel cancels a contract that has not completed
func (s *ContractService) Cancel(ctx context.Context, id uuid.UUID) (*ContractResponse, error) {
	return s.transition(ctx, id, (*trade.Contract).Cancel)
}

func (s *ContractService) transition(ctx context.Context, id uuid.UUID, op func(*trade.Contract) error) (*ContractResponse, error) {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := op(contract); err != nil {
		return nil, err
	}
	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return nil, err
	}
	return ToContractResponse(contract), nil
}
