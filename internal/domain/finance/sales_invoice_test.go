package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLines(t *testing.T) []InvoiceLine {
	t.Helper()
	line, err := NewInvoiceLine("Gasoil 10ppm", decimal.NewFromInt(5000), decimal.NewFromInt(650))
	require.NoError(t, err)
	return []InvoiceLine{*line}
}

func TestNewSalesInvoiceComputesTotals(t *testing.T) {
	lines := testLines(t)
	inv, err := NewSalesInvoice("INV-20260203-0001", uuid.New(), "Horizon Energy", lines, decimal.NewFromFloat(0.05), 30)
	require.NoError(t, err)

	assert.Equal(t, "INV-20260203-0001", inv.InvoiceNumber)
	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(3250000)))
	assert.True(t, inv.TaxAmount.Equal(decimal.NewFromInt(162500)))
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(3412500)))
	assert.Equal(t, InvoiceStatusIssued, inv.Status)
	assert.Equal(t, inv.IssueDate.AddDate(0, 0, 30).Unix(), inv.DueDate.Unix())
	for _, line := range inv.Lines {
		assert.Equal(t, inv.ID, line.InvoiceID)
	}
}

func TestNewSalesInvoiceRejectsEmptyNumber(t *testing.T) {
	_, err := NewSalesInvoice("", uuid.New(), "Horizon Energy", testLines(t), decimal.Zero, 0)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INVOICE_NUMBER", domainErr.Code)
}

func TestNewSalesInvoiceRejectsNoLines(t *testing.T) {
	_, err := NewSalesInvoice("INV-20260203-0001", uuid.New(), "Horizon Energy", nil, decimal.Zero, 0)
	require.Error(t, err)
}

func TestNewInvoiceLineRejectsNonPositiveQuantity(t *testing.T) {
	_, err := NewInvoiceLine("Murban", decimal.Zero, decimal.NewFromInt(70))
	require.Error(t, err)
}

func TestMarkPaid(t *testing.T) {
	inv, err := NewSalesInvoice("INV-20260203-0002", uuid.New(), "Horizon Energy", testLines(t), decimal.Zero, 0)
	require.NoError(t, err)

	require.NoError(t, inv.MarkPaid())
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	require.NotNil(t, inv.PaidAt)

	// Paying twice is not a valid transition
	assert.ErrorIs(t, inv.MarkPaid(), shared.ErrInvalidState)
}

func TestVoidKeepsNumber(t *testing.T) {
	inv, err := NewSalesInvoice("INV-20260203-0003", uuid.New(), "Horizon Energy", testLines(t), decimal.Zero, 0)
	require.NoError(t, err)

	require.NoError(t, inv.Void())
	assert.Equal(t, InvoiceStatusVoid, inv.Status)
	assert.Equal(t, "INV-20260203-0003", inv.InvoiceNumber)
	assert.ErrorIs(t, inv.MarkPaid(), shared.ErrInvalidState)
}

func TestIsOverdue(t *testing.T) {
	inv, err := NewSalesInvoice("INV-20260203-0004", uuid.New(), "Horizon Energy", testLines(t), decimal.Zero, 15)
	require.NoError(t, err)

	assert.False(t, inv.IsOverdue(inv.DueDate.Add(-time.Hour)))
	assert.True(t, inv.IsOverdue(inv.DueDate.Add(time.Hour)))

	require.NoError(t, inv.MarkPaid())
	assert.False(t, inv.IsOverdue(inv.DueDate.Add(time.Hour)))
}
