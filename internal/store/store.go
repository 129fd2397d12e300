// Package store persists the ledger collections as JSON files in a data
// directory: transactions, borrowers, payments, the credit limit and the set
// of paid cycles. Each record is an independent file loaded at startup and
// rewritten whole on every mutation. A missing file is an empty collection,
// never an error.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/dayveeee07/spaylater-tracker/internal/ledgererror"
	"github.com/dayveeee07/spaylater-tracker/internal/logging"
	"github.com/dayveeee07/spaylater-tracker/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// File names of the persisted records inside the data directory.
const (
	TransactionsFile = "transactions.json"
	BorrowersFile    = "borrowers.json"
	PaymentsFile     = "payments.json"
	CreditLimitFile  = "credit-limit.json"
	PaidCyclesFile   = "paid-cycles.json"
)

// LedgerStore reads and writes the persisted ledger records.
type LedgerStore struct {
	DataDir string
}

// NewLedgerStore creates a store rooted at dataDir.
func NewLedgerStore(dataDir string) *LedgerStore {
	return &LedgerStore{DataDir: dataDir}
}

func (s *LedgerStore) path(name string) string {
	return filepath.Join(s.DataDir, name)
}

// readInto unmarshals a JSON file into v. Returns (false, nil) when the
// file does not exist.
func (s *LedgerStore) readInto(name string, v interface{}) (bool, error) {
	filePath := s.path(name)
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField(logging.FieldFile, filePath).Debug("Record file not found, using empty collection")
			return false, nil
		}
		return false, &ledgererror.StorageError{Path: filePath, Op: "read", Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, &ledgererror.StorageError{Path: filePath, Op: "decode", Err: err}
	}
	return true, nil
}

// write marshals v and rewrites the record file, creating the data
// directory if needed.
func (s *LedgerStore) write(name string, v interface{}) error {
	filePath := s.path(name)
	if err := os.MkdirAll(s.DataDir, 0755); err != nil {
		return &ledgererror.StorageError{Path: s.DataDir, Op: "mkdir", Err: err}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &ledgererror.StorageError{Path: filePath, Op: "encode", Err: err}
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return &ledgererror.StorageError{Path: filePath, Op: "write", Err: err}
	}
	log.WithField(logging.FieldFile, filePath).Debug("Wrote record file")
	return nil
}

// LoadTransactions loads the transaction collection.
func (s *LedgerStore) LoadTransactions() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if _, err := s.readInto(TransactionsFile, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// SaveTransactions rewrites the whole transaction collection.
func (s *LedgerStore) SaveTransactions(transactions []models.Transaction) error {
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return s.write(TransactionsFile, transactions)
}

// AppendTransaction adds one transaction and persists the collection.
func (s *LedgerStore) AppendTransaction(tx models.Transaction) error {
	transactions, err := s.LoadTransactions()
	if err != nil {
		return err
	}
	return s.SaveTransactions(append(transactions, tx))
}

// UpdateTransaction replaces the transaction with the same ID.
func (s *LedgerStore) UpdateTransaction(tx models.Transaction) error {
	transactions, err := s.LoadTransactions()
	if err != nil {
		return err
	}
	for i := range transactions {
		if transactions[i].ID == tx.ID {
			transactions[i] = tx
			return s.SaveTransactions(transactions)
		}
	}
	return &ledgererror.ValidationError{Field: "id", Reason: "no transaction with id " + tx.ID}
}

// RemoveTransaction deletes the transaction with the given ID.
func (s *LedgerStore) RemoveTransaction(id string) error {
	transactions, err := s.LoadTransactions()
	if err != nil {
		return err
	}
	kept := transactions[:0]
	found := false
	for _, tx := range transactions {
		if tx.ID == id {
			found = true
			continue
		}
		kept = append(kept, tx)
	}
	if !found {
		return &ledgererror.ValidationError{Field: "id", Reason: "no transaction with id " + id}
	}
	return s.SaveTransactions(kept)
}

// LoadBorrowers loads the borrower list, always containing the default
// borrower.
func (s *LedgerStore) LoadBorrowers() ([]string, error) {
	var borrowers []string
	if _, err := s.readInto(BorrowersFile, &borrowers); err != nil {
		return nil, err
	}
	return EnsureDefaultBorrower(borrowers), nil
}

// SaveBorrowers rewrites the borrower list, re-ensuring the default
// borrower is present.
func (s *LedgerStore) SaveBorrowers(borrowers []string) error {
	return s.write(BorrowersFile, EnsureDefaultBorrower(borrowers))
}

// AddBorrower appends a borrower unless the name is empty or already known.
func (s *LedgerStore) AddBorrower(name string) error {
	if name == "" {
		return &ledgererror.ValidationError{Field: "borrower", Reason: "borrower name is required"}
	}
	borrowers, err := s.LoadBorrowers()
	if err != nil {
		return err
	}
	for _, existing := range borrowers {
		if existing == name {
			return nil
		}
	}
	return s.SaveBorrowers(append(borrowers, name))
}

// RemoveBorrower deletes a borrower. The default borrower cannot be removed.
func (s *LedgerStore) RemoveBorrower(name string) error {
	if name == models.DefaultBorrower {
		return &ledgererror.ValidationError{Field: "borrower", Reason: models.DefaultBorrower + " cannot be removed"}
	}
	borrowers, err := s.LoadBorrowers()
	if err != nil {
		return err
	}
	kept := borrowers[:0]
	for _, existing := range borrowers {
		if existing != name {
			kept = append(kept, existing)
		}
	}
	return s.SaveBorrowers(kept)
}

// LoadPayments loads the payment collection.
func (s *LedgerStore) LoadPayments() ([]models.Payment, error) {
	var payments []models.Payment
	if _, err := s.readInto(PaymentsFile, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// SavePayments rewrites the whole payment collection.
func (s *LedgerStore) SavePayments(payments []models.Payment) error {
	if payments == nil {
		payments = []models.Payment{}
	}
	return s.write(PaymentsFile, payments)
}

// AppendPayment adds one payment and persists the collection.
func (s *LedgerStore) AppendPayment(p models.Payment) error {
	payments, err := s.LoadPayments()
	if err != nil {
		return err
	}
	return s.SavePayments(append(payments, p))
}

// UpdatePayment replaces the payment with the same ID.
func (s *LedgerStore) UpdatePayment(p models.Payment) error {
	payments, err := s.LoadPayments()
	if err != nil {
		return err
	}
	for i := range payments {
		if payments[i].ID == p.ID {
			payments[i] = p
			return s.SavePayments(payments)
		}
	}
	return &ledgererror.ValidationError{Field: "id", Reason: "no payment with id " + p.ID}
}

// RemovePayment deletes the payment with the given ID.
func (s *LedgerStore) RemovePayment(id string) error {
	payments, err := s.LoadPayments()
	if err != nil {
		return err
	}
	kept := payments[:0]
	found := false
	for _, p := range payments {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return &ledgererror.ValidationError{Field: "id", Reason: "no payment with id " + id}
	}
	return s.SavePayments(kept)
}

// LoadCreditLimit loads the configured credit limit; zero means no limit.
// Negative stored values are treated as unset.
func (s *LedgerStore) LoadCreditLimit() (decimal.Decimal, error) {
	var limit decimal.Decimal
	if _, err := s.readInto(CreditLimitFile, &limit); err != nil {
		return decimal.Zero, err
	}
	if limit.IsNegative() {
		return decimal.Zero, nil
	}
	return limit, nil
}

// SaveCreditLimit persists the credit limit.
func (s *LedgerStore) SaveCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return &ledgererror.ValidationError{Field: "creditLimit", Reason: "credit limit must be non-negative"}
	}
	return s.write(CreditLimitFile, limit)
}

// LoadPaidCycles loads the set of cycle indices marked fully settled.
func (s *LedgerStore) LoadPaidCycles() ([]int, error) {
	var cycles []int
	if _, err := s.readInto(PaidCyclesFile, &cycles); err != nil {
		return nil, err
	}
	return cycles, nil
}

// SavePaidCycles persists the paid-cycle set.
func (s *LedgerStore) SavePaidCycles(cycles []int) error {
	if cycles == nil {
		cycles = []int{}
	}
	return s.write(PaidCyclesFile, cycles)
}

// TogglePaidCycle marks the cycle settled, or unmarks it when already
// marked. Returns the new paid state.
func (s *LedgerStore) TogglePaidCycle(index int) (bool, error) {
	cycles, err := s.LoadPaidCycles()
	if err != nil {
		return false, err
	}
	for i, c := range cycles {
		if c == index {
			cycles = append(cycles[:i], cycles[i+1:]...)
			return false, s.SavePaidCycles(cycles)
		}
	}
	return true, s.SavePaidCycles(append(cycles, index))
}

// EnsureDefaultBorrower guarantees the default borrower is present,
// first, and deduplicates the rest preserving order.
func EnsureDefaultBorrower(borrowers []string) []string {
	result := []string{models.DefaultBorrower}
	seen := map[string]struct{}{models.DefaultBorrower: {}}
	for _, name := range borrowers {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}
