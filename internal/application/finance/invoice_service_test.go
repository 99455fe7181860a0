package finance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/finance"
	"github.com/petroerp/backend/internal/domain/partner"
	"github.com/petroerp/backend/internal/domain/sequence"
	"github.com/petroerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSalesInvoiceRepository is a mock implementation of SalesInvoiceRepository
type MockSalesInvoiceRepository struct {
	mock.Mock
}

func (m *MockSalesInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.SalesInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.SalesInvoice), args.Error(1)
}

func (m *MockSalesInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.SalesInvoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.SalesInvoice), args.Error(1)
}

func (m *MockSalesInvoiceRepository) Save(ctx context.Context, invoice *finance.SalesInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockSalesInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSalesInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*finance.SalesInvoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.SalesInvoice), args.Error(1)
}

func (m *MockSalesInvoiceRepository) ExistsByNumber(ctx context.Context, invoiceNumber string) (bool, error) {
	args := m.Called(ctx, invoiceNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockSalesInvoiceRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]finance.SalesInvoice, error) {
	args := m.Called(ctx, buyerID, filter)
	return args.Get(0).([]finance.SalesInvoice), args.Error(1)
}

func (m *MockSalesInvoiceRepository) FindByStatus(ctx context.Context, status finance.InvoiceStatus, filter shared.Filter) ([]finance.SalesInvoice, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]finance.SalesInvoice), args.Error(1)
}

// MockBuyerRepository is a mock implementation of BuyerRepository
type MockBuyerRepository struct {
	mock.Mock
}

func (m *MockBuyerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Buyer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Buyer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) Save(ctx context.Context, buyer *partner.Buyer) error {
	args := m.Called(ctx, buyer)
	return args.Error(0)
}

func (m *MockBuyerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBuyerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBuyerRepository) FindByCode(ctx context.Context, code string) (*partner.Buyer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockIssuer is a mock implementation of sequence.Issuer
type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) AllocateNext(ctx context.Context, counterKey, prefix string) (string, error) {
	args := m.Called(ctx, counterKey, prefix)
	return args.String(0), args.Error(1)
}

func (m *MockIssuer) PreviewNext(ctx context.Context, counterKey, prefix string) (string, error) {
	args := m.Called(ctx, counterKey, prefix)
	return args.String(0), args.Error(1)
}

func newTestBuyer(t *testing.T) *partner.Buyer {
	t.Helper()
	buyer, err := partner.NewBuyer("SHELL", "Shell Trading")
	require.NoError(t, err)
	return buyer
}

func TestInvoiceServiceIssue(t *testing.T) {
	invoiceRepo := new(MockSalesInvoiceRepository)
	buyerRepo := new(MockBuyerRepository)
	issuer := new(MockIssuer)
	svc := NewInvoiceService(invoiceRepo, buyerRepo, issuer, nil)

	buyer := newTestBuyer(t)
	buyerRepo.On("FindByID", mock.Anything, buyer.ID).Return(buyer, nil)
	issuer.On("AllocateNext", mock.Anything, sequence.TodayKey(), InvoicePrefix).
		Return("INV-20260203-0001", nil)
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.SalesInvoice")).Return(nil)
	buyerRepo.On("Save", mock.Anything, buyer).Return(nil)

	resp, err := svc.Issue(context.Background(), IssueInvoiceRequest{
		BuyerID: buyer.ID,
		Lines: []InvoiceLineRequest{
			{ProductGrade: "Gasoil 10ppm", Quantity: decimal.NewFromInt(5000), UnitPrice: decimal.NewFromInt(650)},
		},
		TaxRate: decimal.Zero,
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-20260203-0001", resp.InvoiceNumber)
	assert.Equal(t, "issued", resp.Status)
	assert.True(t, decimal.NewFromInt(3250000).Equal(resp.Total))
	assert.True(t, buyer.Balance.Equal(resp.Total), "issuing adds the total to the buyer's receivables")
	issuer.AssertExpectations(t)
	invoiceRepo.AssertExpectations(t)
}

func TestInvoiceServiceIssueAbortsWhenStoreUnreachable(t *testing.T) {
	invoiceRepo := new(MockSalesInvoiceRepository)
	buyerRepo := new(MockBuyerRepository)
	issuer := new(MockIssuer)
	svc := NewInvoiceService(invoiceRepo, buyerRepo, issuer, nil)

	buyer := newTestBuyer(t)
	buyerRepo.On("FindByID", mock.Anything, buyer.ID).Return(buyer, nil)
	issuer.On("AllocateNext", mock.Anything, mock.Anything, InvoicePrefix).
		Return("", sequence.ErrStoreUnreachable)

	_, err := svc.Issue(context.Background(), IssueInvoiceRequest{
		BuyerID: buyer.ID,
		Lines: []InvoiceLineRequest{
			{ProductGrade: "Murban", Quantity: decimal.NewFromInt(1000), UnitPrice: decimal.NewFromInt(80)},
		},
	})
	assert.ErrorIs(t, err, sequence.ErrStoreUnreachable)
	invoiceRepo.AssertNotCalled(t, "Save")
	buyerRepo.AssertNotCalled(t, "Save")
}

func TestInvoiceServiceIssueRejectsBuyerOnHold(t *testing.T) {
	invoiceRepo := new(MockSalesInvoiceRepository)
	buyerRepo := new(MockBuyerRepository)
	issuer := new(MockIssuer)
	svc := NewInvoiceService(invoiceRepo, buyerRepo, issuer, nil)

	buyer := newTestBuyer(t)
	require.NoError(t, buyer.Hold())
	buyerRepo.On("FindByID", mock.Anything, buyer.ID).Return(buyer, nil)

	_, err := svc.Issue(context.Background(), IssueInvoiceRequest{
		BuyerID: buyer.ID,
		Lines: []InvoiceLineRequest{
			{ProductGrade: "Murban", Quantity: decimal.NewFromInt(1000), UnitPrice: decimal.NewFromInt(80)},
		},
	})
	require.Error(t, err)
	issuer.AssertNotCalled(t, "AllocateNext")
}

func TestInvoiceServicePreviewDoesNotAllocate(t *testing.T) {
	invoiceRepo := new(MockSalesInvoiceRepository)
	buyerRepo := new(MockBuyerRepository)
	issuer := new(MockIssuer)
	svc := NewInvoiceService(invoiceRepo, buyerRepo, issuer, nil)

	issuer.On("PreviewNext", mock.Anything, sequence.TodayKey(), InvoicePrefix).
		Return("INV-20260203-0042", nil)

	resp, err := svc.PreviewNextNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "INV-20260203-0042", resp.Next)
	issuer.AssertNotCalled(t, "AllocateNext")
}

func TestInvoiceServiceMarkPaidSettlesBuyer(t *testing.T) {
	invoiceRepo := new(MockSalesInvoiceRepository)
	buyerRepo := new(MockBuyerRepository)
	issuer := new(MockIssuer)
	svc := NewInvoiceService(invoiceRepo, buyerRepo, issuer, nil)

	buyer := newTestBuyer(t)
	line, err := finance.NewInvoiceLine("Gasoil 10ppm", decimal.NewFromInt(100), decimal.NewFromInt(650))
	require.NoError(t, err)
	invoice, err := finance.NewSalesInvoice("INV-20260203-0007", buyer.ID, buyer.Name, []finance.InvoiceLine{*line}, decimal.Zero, 30)
	require.NoError(t, err)
	require.NoError(t, buyer.AddReceivable(invoice.Total))

	invoiceRepo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	buyerRepo.On("FindByID", mock.Anything, buyer.ID).Return(buyer, nil)
	invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)
	buyerRepo.On("Save", mock.Anything, buyer).Return(nil)

	resp, err := svc.MarkPaid(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.Status)
	assert.True(t, buyer.Balance.IsZero())
}

func TestInvoiceServiceVoidKeepsNumberConsumed(t *testing.T) {
	invoiceRepo := new(MockSalesInvoiceRepository)
	buyerRepo := new(MockBuyerRepository)
	issuer := new(MockIssuer)
	svc := NewInvoiceService(invoiceRepo, buyerRepo, issuer, nil)

	buyer := newTestBuyer(t)
	line, err := finance.NewInvoiceLine("Murban", decimal.NewFromInt(10), decimal.NewFromInt(80))
	require.NoError(t, err)
	invoice, err := finance.NewSalesInvoice("INV-20260203-0008", buyer.ID, buyer.Name, []finance.InvoiceLine{*line}, decimal.Zero, 0)
	require.NoError(t, err)
	require.NoError(t, buyer.AddReceivable(invoice.Total))

	invoiceRepo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	buyerRepo.On("FindByID", mock.Anything, buyer.ID).Return(buyer, nil)
	invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)
	buyerRepo.On("Save", mock.Anything, buyer).Return(nil)

	resp, err := svc.Void(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "void", resp.Status)
	assert.Equal(t, "INV-20260203-0008", resp.InvoiceNumber, "voided numbers are gaps, never reissued")
}
