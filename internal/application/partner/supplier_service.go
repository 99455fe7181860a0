package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/partner"
	"github.com/petroerp/backend/internal/domain/shared"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.supplierRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier with this code already exists")
	}

	supplier, err := partner.NewSupplier(req.Code, req.Name, partner.SupplierType(req.Type))
	if err != nil {
		return nil, err
	}

	if req.ContactName != "" || req.Phone != "" || req.Email != "" {
		if err := supplier.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}
	if req.CreditLimit != nil || req.CreditDays > 0 {
		limit := supplier.CreditLimit
		if req.CreditLimit != nil {
			limit = *req.CreditLimit
		}
		if err := supplier.SetPaymentTerms(req.CreditDays, limit); err != nil {
			return nil, err
		}
	}
	supplier.Country = req.Country
	supplier.TaxID = req.TaxID
	supplier.Notes = req.Notes

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// Get returns a supplier by ID
func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// List returns suppliers matching the filter, with the total count
func (s *SupplierService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[SupplierResponse], error) {
	suppliers, err := s.supplierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.supplierRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		items[i] = *ToSupplierResponse(&suppliers[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &page, nil
}

// Update applies partial updates to a supplier
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.ShortName != nil {
		name := supplier.Name
		if req.Name != nil {
			name = *req.Name
		}
		shortName := supplier.ShortName
		if req.ShortName != nil {
			shortName = *req.ShortName
		}
		if err := supplier.Update(name, shortName); err != nil {
			return nil, err
		}
	}
	if req.ContactName != nil || req.Phone != nil || req.Email != nil {
		contactName := supplier.ContactName
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		phone := supplier.Phone
		if req.Phone != nil {
			phone = *req.Phone
		}
		email := supplier.Email
		if req.Email != nil {
			email = *req.Email
		}
		if err := supplier.SetContact(contactName, phone, email); err != nil {
			return nil, err
		}
	}
	if req.CreditDays != nil || req.CreditLimit != nil {
		days := supplier.CreditDays
		if req.CreditDays != nil {
			days = *req.CreditDays
		}
		limit := supplier.CreditLimit
		if req.CreditLimit != nil {
			limit = *req.CreditLimit
		}
		if err := supplier.SetPaymentTerms(days, limit); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		supplier.Notes = *req.Notes
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// Block blocks the supplier from new business
func (s *SupplierService) Block(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := supplier.Block(); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// Activate reactivates a supplier
func (s *SupplierService) Activate(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	supplier.Activate()
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}
