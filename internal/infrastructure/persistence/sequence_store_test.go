package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/petroerp/backend/internal/domain/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockSequenceStore(t *testing.T) (*GormSequenceStore, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSequenceStore(gormDB), mock
}

func TestIncrementAndGetReturnsNewSequence(t *testing.T) {
	store, mock := newMockSequenceStore(t)

	mock.ExpectQuery(`UPDATE sequence_counters`).
		WillReturnRows(sqlmock.NewRows([]string{"current_sequence"}).AddRow(int64(7)))

	seq, err := store.IncrementAndGet(context.Background(), "INV-20260203")
	require.NoError(t, err)
	assert.Equal(t, int64(7), seq)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementAndGetMissingCounterRow(t *testing.T) {
	store, mock := newMockSequenceStore(t)

	mock.ExpectQuery(`UPDATE sequence_counters`).
		WillReturnRows(sqlmock.NewRows([]string{"current_sequence"}))

	_, err := store.IncrementAndGet(context.Background(), "INV-20260203")
	assert.ErrorIs(t, err, sequence.ErrPrimitiveUnavailable)
}

func TestIncrementAndGetClassifiesUnreachable(t *testing.T) {
	store, mock := newMockSequenceStore(t)

	mock.ExpectQuery(`UPDATE sequence_counters`).
		WillReturnError(driver.ErrBadConn)

	_, err := store.IncrementAndGet(context.Background(), "INV-20260203")
	assert.ErrorIs(t, err, sequence.ErrStoreUnreachable)
}

func TestMaxIssuedSequenceCombinesCounterAndClaims(t *testing.T) {
	store, mock := newMockSequenceStore(t)

	mock.ExpectQuery(`SELECT .* FROM "sequence_counters"`).
		WillReturnRows(sqlmock.NewRows([]string{"current_sequence"}).AddRow(int64(3)))
	mock.ExpectQuery(`SELECT .* FROM "sequence_issued_codes"`).
		WillReturnRows(sqlmock.NewRows([]string{"code"}).AddRow("INV-20260203-0005"))

	max, err := store.MaxIssuedSequence(context.Background(), "INV-20260203")
	require.NoError(t, err)
	assert.Equal(t, int64(5), max)
}

func TestMaxIssuedSequenceEmptyStream(t *testing.T) {
	store, mock := newMockSequenceStore(t)

	mock.ExpectQuery(`SELECT .* FROM "sequence_counters"`).
		WillReturnRows(sqlmock.NewRows([]string{"current_sequence"}))
	mock.ExpectQuery(`SELECT .* FROM "sequence_issued_codes"`).
		WillReturnRows(sqlmock.NewRows([]string{"code"}))

	max, err := store.MaxIssuedSequence(context.Background(), "INV-20260203")
	require.NoError(t, err)
	assert.Equal(t, int64(0), max)
}

func TestClaimCodeClassifiesDuplicate(t *testing.T) {
	store, mock := newMockSequenceStore(t)

	mock.ExpectExec(`INSERT INTO "sequence_issued_codes"`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := store.ClaimCode(context.Background(), "INV-20260203", "INV-20260203-0001")
	assert.ErrorIs(t, err, sequence.ErrUniquenessConflict)
}

func TestClaimCodeSucceeds(t *testing.T) {
	store, mock := newMockSequenceStore(t)

	mock.ExpectExec(`INSERT INTO "sequence_issued_codes"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.ClaimCode(context.Background(), "INV-20260203", "INV-20260203-0001")
	assert.NoError(t, err)
}

func TestClassifyErrorTaxonomy(t *testing.T) {
	store := &GormSequenceStore{}

	assert.ErrorIs(t, store.classify(gorm.ErrDuplicatedKey), sequence.ErrUniquenessConflict)
	assert.ErrorIs(t, store.classify(errors.New("UNIQUE constraint failed: sequence_issued_codes.code")), sequence.ErrUniquenessConflict)
	assert.ErrorIs(t, store.classify(errors.New("dial tcp 127.0.0.1:5432: connection refused")), sequence.ErrStoreUnreachable)
	assert.ErrorIs(t, store.classify(driver.ErrBadConn), sequence.ErrStoreUnreachable)

	plain := errors.New("syntax error")
	assert.Equal(t, plain, store.classify(plain))
}
