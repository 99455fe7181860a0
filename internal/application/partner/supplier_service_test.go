package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/partner"
	"github.com/petroerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) FindByCode(ctx context.Context, code string) (*partner.Supplier, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func TestSupplierServiceCreate(t *testing.T) {
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo)

	repo.On("ExistsByCode", mock.Anything, "ADNOC").Return(false, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Supplier")).Return(nil)

	limit := decimal.NewFromInt(5000000)
	resp, err := svc.Create(context.Background(), CreateSupplierRequest{
		Code:        "adnoc",
		Name:        "Abu Dhabi National Oil Company",
		Type:        "producer",
		CreditDays:  30,
		CreditLimit: &limit,
	})
	require.NoError(t, err)
	assert.Equal(t, "ADNOC", resp.Code)
	assert.Equal(t, "producer", resp.Type)
	assert.Equal(t, 30, resp.CreditDays)
	assert.True(t, limit.Equal(resp.CreditLimit))
	repo.AssertExpectations(t)
}

func TestSupplierServiceCreateDuplicateCode(t *testing.T) {
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo)

	repo.On("ExistsByCode", mock.Anything, "ADNOC").Return(true, nil)

	_, err := svc.Create(context.Background(), CreateSupplierRequest{
		Code: "ADNOC",
		Name: "Abu Dhabi National Oil Company",
		Type: "producer",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	repo.AssertNotCalled(t, "Save")
}

func TestSupplierServiceCreateInvalidType(t *testing.T) {
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo)

	repo.On("ExistsByCode", mock.Anything, "X1").Return(false, nil)

	_, err := svc.Create(context.Background(), CreateSupplierRequest{
		Code: "X1",
		Name: "Unknown",
		Type: "wholesaler",
	})
	assert.Error(t, err)
}

func TestSupplierServiceUpdatePartial(t *testing.T) {
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo)

	existing, err := partner.NewSupplier("VITOL", "Vitol SA", partner.SupplierTypeTrader)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	newName := "Vitol Group"
	resp, err := svc.Update(context.Background(), existing.ID, UpdateSupplierRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Vitol Group", resp.Name)
	assert.Equal(t, "VITOL", resp.Code)
}

func TestSupplierServiceGetNotFound(t *testing.T) {
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSupplierServiceBlock(t *testing.T) {
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo)

	existing, err := partner.NewSupplier("GLEN", "Glencore", partner.SupplierTypeTrader)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	resp, err := svc.Block(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, string(partner.SupplierStatusBlocked), resp.Status)
}
