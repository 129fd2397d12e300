// Package backup implements the import/export document: a versioned JSON
// snapshot of the full ledger. Import is a validated full replace, never a
// merge; nothing is mutated until the document has passed validation.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/dayveeee07/spaylater-tracker/internal/ledgererror"
	"github.com/dayveeee07/spaylater-tracker/internal/logging"
	"github.com/dayveeee07/spaylater-tracker/internal/models"
	"github.com/dayveeee07/spaylater-tracker/internal/store"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// DocumentVersion is the export format version this build writes.
const DocumentVersion = "1.0"

// Document is the interchange format for a full ledger snapshot.
type Document struct {
	Version         string               `json:"version"`
	ExportedAt      time.Time            `json:"exportedAt"`
	CycleAnchorDate time.Time            `json:"cycleAnchorDate"`
	CreditLimit     *decimal.Decimal     `json:"creditLimit,omitempty"`
	PaidCycles      []int                `json:"paidCycles,omitempty"`
	Borrowers       []string             `json:"borrowers"`
	Transactions    []models.Transaction `json:"transactions"`
}

// BuildDocument assembles an export document from the current collections.
func BuildDocument(s *store.LedgerStore, anchorDate time.Time) (*Document, error) {
	transactions, err := s.LoadTransactions()
	if err != nil {
		return nil, err
	}
	borrowers, err := s.LoadBorrowers()
	if err != nil {
		return nil, err
	}
	creditLimit, err := s.LoadCreditLimit()
	if err != nil {
		return nil, err
	}
	paidCycles, err := s.LoadPaidCycles()
	if err != nil {
		return nil, err
	}

	if transactions == nil {
		transactions = []models.Transaction{}
	}
	if paidCycles == nil {
		paidCycles = []int{}
	}

	doc := &Document{
		Version:         DocumentVersion,
		ExportedAt:      time.Now(),
		CycleAnchorDate: anchorDate,
		PaidCycles:      paidCycles,
		Borrowers:       borrowers,
		Transactions:    transactions,
	}
	if creditLimit.IsPositive() {
		doc.CreditLimit = &creditLimit
	}
	return doc, nil
}

// WriteFile writes the document as pretty-printed JSON.
func (d *Document) WriteFile(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return &ledgererror.StorageError{Path: path, Op: "encode", Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &ledgererror.StorageError{Path: path, Op: "write", Err: err}
	}
	log.WithFields(logrus.Fields{
		logging.FieldFile:  path,
		logging.FieldCount: len(d.Transactions),
	}).Info("Exported ledger")
	return nil
}

// DefaultExportName is the conventional export filename for a given day.
func DefaultExportName(now time.Time) string {
	return fmt.Sprintf("spaylater-export-%s.json", now.Format("2006-01-02"))
}

// ReadDocument parses and validates an import file. The borrowers and
// transactions fields must be present JSON arrays; anything else is an
// ImportFormatError and no document is returned.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ledgererror.StorageError{Path: path, Op: "read", Err: err}
	}
	return parseDocument(data, path)
}

func parseDocument(data []byte, path string) (*Document, error) {
	// Probe the collections before the full decode so a missing field is
	// reported as a format error rather than silently becoming nil.
	var probe struct {
		Borrowers    json.RawMessage `json:"borrowers"`
		Transactions json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &ledgererror.ImportFormatError{FilePath: path, Reason: "not a valid JSON document"}
	}
	if !isJSONArray(probe.Borrowers) {
		return nil, &ledgererror.ImportFormatError{FilePath: path, Reason: "borrowers must be an array"}
	}
	if !isJSONArray(probe.Transactions) {
		return nil, &ledgererror.ImportFormatError{FilePath: path, Reason: "transactions must be an array"}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ledgererror.ImportFormatError{FilePath: path, Reason: err.Error()}
	}
	return &doc, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Restore replaces the persisted collections with the document's contents.
// Transactions are re-normalized with the same defaulting applied to any
// replace-all, so documents from older versions stay importable.
func Restore(s *store.LedgerStore, doc *Document, now time.Time) error {
	if err := s.SaveBorrowers(doc.Borrowers); err != nil {
		return err
	}

	normalized := make([]models.Transaction, len(doc.Transactions))
	for i, tx := range doc.Transactions {
		normalized[i] = normalizeImported(tx, now)
	}
	if err := s.SaveTransactions(normalized); err != nil {
		return err
	}

	if doc.CreditLimit != nil && !doc.CreditLimit.IsNegative() {
		if err := s.SaveCreditLimit(*doc.CreditLimit); err != nil {
			return err
		}
	}
	if doc.PaidCycles != nil {
		if err := s.SavePaidCycles(doc.PaidCycles); err != nil {
			return err
		}
	}

	log.WithFields(logrus.Fields{
		logging.FieldCount: len(normalized),
		"borrowers":        len(doc.Borrowers),
	}).Info("Imported ledger")
	return nil
}

// normalizeImported fills the defaults for a transaction coming from an
// import document, mirroring what a replace-all has always done: missing
// id gets a fresh one, missing borrower falls back to the default, missing
// plan to single-pay, missing dates to today.
func normalizeImported(tx models.Transaction, now time.Time) models.Transaction {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Borrower == "" {
		tx.Borrower = models.DefaultBorrower
	}
	if tx.PaymentPlan == "" {
		tx.PaymentPlan = models.PlanSinglePay
	}
	if tx.OrderDate.IsZero() {
		tx.OrderDate = models.DateOf(now)
	}
	if tx.Mode == "" {
		tx.Mode = models.ModeSingle
	}
	if tx.TotalMonths == 0 {
		tx.TotalMonths = 1
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	if tx.UpdatedAt.IsZero() {
		tx.UpdatedAt = now
	}
	return tx
}
