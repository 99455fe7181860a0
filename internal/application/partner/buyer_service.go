package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/partner"
	"github.com/petroerp/backend/internal/domain/shared"
)

// BuyerService handles buyer-related business operations
type BuyerService struct {
	buyerRepo partner.BuyerRepository
}

// NewBuyerService creates a new BuyerService
func NewBuyerService(buyerRepo partner.BuyerRepository) *BuyerService {
	return &BuyerService{buyerRepo: buyerRepo}
}

// Create creates a new buyer
func (s *BuyerService) Create(ctx context.Context, req CreateBuyerRequest) (*BuyerResponse, error) {
	exists, err := s.buyerRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Buyer with this code already exists")
	}

	buyer, err := partner.NewBuyer(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.ContactName != "" || req.Phone != "" || req.Email != "" {
		if err := buyer.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}
	if req.CreditLimit != nil || req.CreditDays > 0 {
		limit := buyer.CreditLimit
		if req.CreditLimit != nil {
			limit = *req.CreditLimit
		}
		if err := buyer.SetPaymentTerms(req.CreditDays, limit); err != nil {
			return nil, err
		}
	}
	buyer.Country = req.Country
	buyer.TaxID = req.TaxID
	buyer.Notes = req.Notes

	if err := s.buyerRepo.Save(ctx, buyer); err != nil {
		return nil, err
	}
	return ToBuyerResponse(buyer), nil
}

// Get returns a buyer by ID
func (s *BuyerService) Get(ctx context.Context, id uuid.UUID) (*BuyerResponse, error) {
	buyer, err := s.buyerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToBuyerResponse(buyer), nil
}

// List returns buyers matching the filter, with the total count
func (s *BuyerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[BuyerResponse], error) {
	buyers, err := s.buyerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.buyerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]BuyerResponse, len(buyers))
	for i := range buyers {
		items[i] = *ToBuyerResponse(&buyers[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &page, nil
}

// Update applies partial updates to a buyer
func (s *BuyerService) Update(ctx context.Context, id uuid.UUID, req UpdateBuyerRequest) (*BuyerResponse, error) {
	buyer, err := s.buyerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.ShortName != nil {
		name := buyer.Name
		if req.Name != nil {
			name = *req.Name
		}
		shortName := buyer.ShortName
		if req.ShortName != nil {
			shortName = *req.ShortName
		}
		if err := buyer.Update(name, shortName); err != nil {
			return nil, err
		}
	}
	if req.ContactName != nil || req.Phone != nil || req.Email != nil {
		contactName := buyer.ContactName
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		phone := buyer.Phone
		if req.Phone != nil {
			phone = *req.Phone
		}
		email := buyer.Email
		if req.Email != nil {
			email = *req.Email
		}
		if err := buyer.SetContact(contactName, phone, email); err != nil {
			return nil, err
		}
	}
	if req.CreditDays != nil || req.CreditLimit != nil {
		days := buyer.CreditDays
		if req.CreditDays != nil {
			days = *req.CreditDays
		}
		limit := buyer.CreditLimit
		if req.CreditLimit != nil {
			limit = *req.CreditLimit
		}
		if err := buyer.SetPaymentTerms(days, limit); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		buyer.Notes = *req.Notes
	}

	if err := s.buyerRepo.Save(ctx, buyer); err != nil {
		return nil, err
	}
	return ToBuyerResponse(buyer), nil
}

// Hold places the buyer on credit hold
func (s *BuyerService) Hold(ctx context.Context, id uuid.UUID) (*BuyerResponse, error) {
	buyer, err := s.buyerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := buyer.Hold(); err != nil {
		return nil, err
	}
	if err := s.buyerRepo.Save(ctx, buyer); err != nil {
		return nil, err
	}
	return ToBuyerResponse(buyer), nil
}

// Activate takes the buyer off hold
func (s *BuyerService) Activate(ctx context.Context, id uuid.UUID) (*BuyerResponse, error) {
	buyer, err := s.buyerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	buyer.Activate()
	if err := s.buyerRepo.Save(ctx, buyer); err != nil {
		return nil, err
	}
	return ToBuyerResponse(buyer), nil
}
