package finance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/finance"
	"github.com/petroerp/backend/internal/domain/partner"
	"github.com/petroerp/backend/internal/domain/sequence"
	"github.com/petroerp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvoicePrefix is the reference-code prefix for sales invoices
const InvoicePrefix = "INV"

// InvoiceService issues and settles sales invoices. Issuing an invoice is the
// primary consumer of the sequence allocator: no invoice exists without an
// allocated number, and a store outage aborts the issue rather than inventing
// a number locally.
type InvoiceService struct {
	invoiceRepo finance.SalesInvoiceRepository
	buyerRepo   partner.BuyerRepository
	allocator   sequence.Issuer
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo finance.SalesInvoiceRepository,
	buyerRepo partner.BuyerRepository,
	allocator sequence.Issuer,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		buyerRepo:   buyerRepo,
		allocator:   allocator,
		logger:      logger,
	}
}

// Issue allocates an invoice number and persists the invoice. The buyer's
// receivables balance grows by the invoice total.
func (s *InvoiceService) Issue(ctx context.Context, req IssueInvoiceRequest) (*InvoiceResponse, error) {
	buyer, err := s.buyerRepo.FindByID(ctx, req.BuyerID)
	if err != nil {
		return nil, err
	}
	if !buyer.IsActive() {
		return nil, shared.NewDomainError("BUYER_NOT_ACTIVE", "Cannot invoice a buyer on hold")
	}

	lines := make([]finance.InvoiceLine, 0, len(req.Lines))
	for _, lr := range req.Lines {
		line, err := finance.NewInvoiceLine(lr.ProductGrade, lr.Quantity, lr.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}

	number, err := s.allocator.AllocateNext(ctx, sequence.TodayKey(), InvoicePrefix)
	if err != nil {
		if errors.Is(err, sequence.ErrStoreUnreachable) {
			s.logger.Error("invoice issue aborted, sequence store unreachable", zap.Error(err))
		}
		return nil, err
	}

	invoice, err := finance.NewSalesInvoice(number, buyer.ID, buyer.Name, lines, req.TaxRate, buyer.CreditDays)
	if err != nil {
		return nil, err
	}
	invoice.ContractID = req.ContractID
	invoice.Notes = req.Notes

	if err := buyer.AddReceivable(invoice.Total); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	if err := s.buyerRepo.Save(ctx, buyer); err != nil {
		return nil, err
	}

	s.logger.Info("sales invoice issued",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("buyer", buyer.Code),
		zap.String("total", invoice.Total.String()),
	)
	return ToInvoiceResponse(invoice), nil
}

// PreviewNextNumber returns the number the next Issue would most likely
// assign, without reserving it. Concurrent issuance can still claim it first.
func (s *InvoiceService) PreviewNextNumber(ctx context.Context) (*PreviewNumberResponse, error) {
	next, err := s.allocator.PreviewNext(ctx, sequence.TodayKey(), InvoicePrefix)
	if err != nil {
		return nil, err
	}
	return &PreviewNumberResponse{Next: next}, nil
}

// Get returns an invoice by ID
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// GetByNumber returns an invoice by its invoice number
func (s *InvoiceService) GetByNumber(ctx context.Context, invoiceNumber string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// List returns invoices matching the filter, with the total count
func (s *InvoiceService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[InvoiceResponse], error) {
	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		items[i] = *ToInvoiceResponse(&invoices[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &page, nil
}

// MarkPaid settles an issued invoice and reduces the buyer's balance
func (s *InvoiceService) MarkPaid(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.MarkPaid(); err != nil {
		return nil, err
	}

	buyer, err := s.buyerRepo.FindByID(ctx, invoice.BuyerID)
	if err != nil {
		return nil, err
	}
	if err := buyer.SettleReceivable(invoice.Total); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	if err := s.buyerRepo.Save(ctx, buyer); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// Void cancels an issued invoice. The allocated number stays consumed, which
// leaves a gap in the sequence; gaps are acceptable, duplicates are not.
func (s *InvoiceService) Void(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.Void(); err != nil {
		return nil, err
	}

	buyer, err := s.buyerRepo.FindByID(ctx, invoice.BuyerID)
	if err != nil {
		return nil, err
	}
	if err := buyer.SettleReceivable(invoice.Total); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	if err := s.buyerRepo.Save(ctx, buyer); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}
