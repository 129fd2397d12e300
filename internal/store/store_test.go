package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayveeee07/spaylater-tracker/internal/ledgererror"
	"github.com/dayveeee07/spaylater-tracker/internal/models"
)

func newTestStore(t *testing.T) *LedgerStore {
	t.Helper()
	return NewLedgerStore(t.TempDir())
}

func sampleTransaction(id string) models.Transaction {
	return models.Transaction{
		ID:              id,
		ProductName:     "Phone",
		Amount:          decimal.NewFromInt(3000),
		Borrower:        "Personal",
		PaymentPlan:     models.Plan3Months,
		OrderDate:       models.NewDate(2025, time.January, 20),
		MonthlyPayment:  decimal.NewFromInt(1000),
		Mode:            models.ModeSingle,
		TotalMonths:     3,
		StartCycleIndex: 24301,
		CreatedAt:       time.Date(2025, time.January, 21, 9, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2025, time.January, 21, 9, 0, 0, 0, time.UTC),
	}
}

func TestLoadMissingFilesAreEmpty(t *testing.T) {
	s := newTestStore(t)

	transactions, err := s.LoadTransactions()
	require.NoError(t, err)
	assert.Empty(t, transactions)

	payments, err := s.LoadPayments()
	require.NoError(t, err)
	assert.Empty(t, payments)

	limit, err := s.LoadCreditLimit()
	require.NoError(t, err)
	assert.True(t, limit.IsZero())

	cycles, err := s.LoadPaidCycles()
	require.NoError(t, err)
	assert.Empty(t, cycles)
}

func TestLoadBorrowersAlwaysHasDefault(t *testing.T) {
	s := newTestStore(t)

	borrowers, err := s.LoadBorrowers()
	require.NoError(t, err)
	assert.Equal(t, []string{models.DefaultBorrower}, borrowers)
}

func TestTransactionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	tx := sampleTransaction("t1")

	require.NoError(t, s.AppendTransaction(tx))

	loaded, err := s.LoadTransactions()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, tx.ID, loaded[0].ID)
	assert.True(t, loaded[0].Amount.Equal(tx.Amount))
	assert.Equal(t, tx.OrderDate.String(), loaded[0].OrderDate.String())
	assert.Equal(t, tx.StartCycleIndex, loaded[0].StartCycleIndex)
	assert.Equal(t, tx.TotalMonths, loaded[0].TotalMonths)
}

func TestUpdateTransaction(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AppendTransaction(sampleTransaction("t1")))

	updated := sampleTransaction("t1")
	updated.ProductName = "Tablet"
	require.NoError(t, s.UpdateTransaction(updated))

	loaded, err := s.LoadTransactions()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Tablet", loaded[0].ProductName)

	missing := sampleTransaction("nope")
	err = s.UpdateTransaction(missing)
	var validationErr *ledgererror.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestRemoveTransaction(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AppendTransaction(sampleTransaction("t1")))
	require.NoError(t, s.AppendTransaction(sampleTransaction("t2")))

	require.NoError(t, s.RemoveTransaction("t1"))

	loaded, err := s.LoadTransactions()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "t2", loaded[0].ID)

	assert.Error(t, s.RemoveTransaction("t1"), "removing twice fails")
}

func TestBorrowerManagement(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddBorrower("Anna"))
	require.NoError(t, s.AddBorrower("Anna"), "adding twice is a no-op")
	require.NoError(t, s.AddBorrower("Ben"))

	borrowers, err := s.LoadBorrowers()
	require.NoError(t, err)
	assert.Equal(t, []string{"Personal", "Anna", "Ben"}, borrowers)

	require.NoError(t, s.RemoveBorrower("Anna"))
	borrowers, err = s.LoadBorrowers()
	require.NoError(t, err)
	assert.Equal(t, []string{"Personal", "Ben"}, borrowers)

	err = s.RemoveBorrower(models.DefaultBorrower)
	var validationErr *ledgererror.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	assert.Error(t, s.AddBorrower(""))
}

func TestPaymentRoundTrip(t *testing.T) {
	s := newTestStore(t)
	payment := models.Payment{
		ID:         "p1",
		Borrower:   "Anna",
		CycleIndex: 24301,
		Amount:     decimal.NewFromInt(500),
		Date:       models.NewDate(2025, time.February, 1),
		Method:     models.MethodGcash,
		MethodNote: "ref 123",
	}

	require.NoError(t, s.AppendPayment(payment))

	loaded, err := s.LoadPayments()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, payment.ID, loaded[0].ID)
	assert.Equal(t, payment.CycleIndex, loaded[0].CycleIndex)
	assert.Equal(t, models.MethodGcash, loaded[0].Method)
	assert.True(t, loaded[0].Amount.Equal(payment.Amount))

	payment.Amount = decimal.NewFromInt(750)
	require.NoError(t, s.UpdatePayment(payment))
	loaded, err = s.LoadPayments()
	require.NoError(t, err)
	assert.True(t, loaded[0].Amount.Equal(decimal.NewFromInt(750)))

	require.NoError(t, s.RemovePayment("p1"))
	assert.Error(t, s.RemovePayment("p1"))
}

func TestCreditLimit(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveCreditLimit(decimal.NewFromInt(25000)))
	limit, err := s.LoadCreditLimit()
	require.NoError(t, err)
	assert.True(t, limit.Equal(decimal.NewFromInt(25000)))

	assert.Error(t, s.SaveCreditLimit(decimal.NewFromInt(-1)))
}

func TestTogglePaidCycle(t *testing.T) {
	s := newTestStore(t)

	paid, err := s.TogglePaidCycle(24301)
	require.NoError(t, err)
	assert.True(t, paid)

	cycles, err := s.LoadPaidCycles()
	require.NoError(t, err)
	assert.Equal(t, []int{24301}, cycles)

	paid, err = s.TogglePaidCycle(24301)
	require.NoError(t, err)
	assert.False(t, paid)

	cycles, err = s.LoadPaidCycles()
	require.NoError(t, err)
	assert.Empty(t, cycles)
}

func TestCorruptFileIsStorageError(t *testing.T) {
	dir := t.TempDir()
	s := NewLedgerStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, TransactionsFile), []byte("{not json"), 0644))

	_, err := s.LoadTransactions()
	var storageErr *ledgererror.StorageError
	assert.ErrorAs(t, err, &storageErr)
}

func TestEnsureDefaultBorrower(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"nil list", nil, []string{"Personal"}},
		{"already present", []string{"Personal", "Anna"}, []string{"Personal", "Anna"}},
		{"missing default", []string{"Anna"}, []string{"Personal", "Anna"}},
		{"duplicates and empties dropped", []string{"Anna", "", "Anna", "Personal"}, []string{"Personal", "Anna"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, EnsureDefaultBorrower(tc.input))
		})
	}
}
