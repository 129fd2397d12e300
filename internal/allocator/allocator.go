// Package allocator turns transaction input into persisted records. It
// resolves every plan/borrower default exactly once at creation time,
// validates shared splits against the per-cycle due amount, and answers
// which cycles a record is active in and what it owes per cycle.
package allocator

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/dayveeee07/spaylater-tracker/internal/billing"
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

// ShareTolerance is the maximum absolute drift allowed between the sum of
// share amounts and the required per-cycle amount.
var ShareTolerance = decimal.New(1, -2) // 0.01

// Input is the raw user input for a new transaction, before any defaults
// are resolved.
type Input struct {
	ProductName    string
	Description    string
	Amount         decimal.Decimal
	OrderDate      models.Date
	PaymentPlan    models.PaymentPlan
	MonthlyPayment decimal.Decimal
	Mode           models.Mode
	Borrower       string
	Shares         []models.Share
}

// Normalize validates the input and produces the persisted record with all
// derived fields resolved: the plan's cached month count, the anchoring
// start cycle index, the borrower fallback and fresh audit timestamps.
// Returns a ValidationError and no record on bad input.
func Normalize(in Input, now time.Time) (models.Transaction, error) {
	if in.ProductName == "" {
		return models.Transaction{}, &ledgererror.ValidationError{Field: "productName", Reason: "product name is required"}
	}
	if !in.Amount.IsPositive() {
		return models.Transaction{}, &ledgererror.ValidationError{Field: "amount", Reason: "amount must be a positive number"}
	}
	if in.OrderDate.IsZero() {
		return models.Transaction{}, &ledgererror.ValidationError{Field: "orderDate", Reason: "order date is required"}
	}

	totalMonths, ok := models.PaymentPlanMonths[in.PaymentPlan]
	if !ok {
		return models.Transaction{}, &ledgererror.ValidationError{Field: "paymentPlan", Reason: "unknown payment plan: " + string(in.PaymentPlan)}
	}

	mode := in.Mode
	if mode == "" {
		mode = models.ModeSingle
	}

	tx := models.Transaction{
		ID:              uuid.NewString(),
		ProductName:     in.ProductName,
		Description:     in.Description,
		Amount:          in.Amount,
		PaymentPlan:     in.PaymentPlan,
		OrderDate:       in.OrderDate,
		MonthlyPayment:  in.MonthlyPayment,
		Mode:            mode,
		TotalMonths:     totalMonths,
		StartCycleIndex: billing.IndexFor(in.OrderDate.Time),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	switch mode {
	case models.ModeShared:
		required := requiredPerCycle(in.Amount, in.MonthlyPayment, totalMonths)
		if err := ValidateShares(in.Shares, required); err != nil {
			return models.Transaction{}, err
		}
		tx.Shares = in.Shares
	case models.ModeSingle:
		tx.Borrower = in.Borrower
		if tx.Borrower == "" {
			tx.Borrower = models.DefaultBorrower
		}
	default:
		return models.Transaction{}, &ledgererror.ValidationError{Field: "mode", Reason: "unknown mode: " + string(mode)}
	}

	log.WithFields(logrus.Fields{
		logging.FieldTransaction: tx.ID,
		logging.FieldCycle:       tx.StartCycleIndex,
		"total_months":           tx.TotalMonths,
	}).Debug("Normalized transaction")

	return tx, nil
}

// requiredPerCycle is the amount every active cycle of the transaction owes:
// the full principal for single-cycle plans, the monthly payment for
// installments. A missing monthly payment falls back to the principal; that
// is a data-entry compatibility fallback, not a computed schedule.
func requiredPerCycle(amount, monthly decimal.Decimal, totalMonths int) decimal.Decimal {
	if totalMonths > 1 && !monthly.IsZero() {
		return monthly
	}
	return amount
}

// AmountForCycle returns the transaction's due amount in any cycle it is
// active in.
func AmountForCycle(tx models.Transaction) decimal.Decimal {
	if tx.IsInstallment() && !tx.MonthlyPayment.IsZero() {
		return tx.MonthlyPayment
	}
	return tx.Amount
}

// ValidateShares checks a shared split: at least two rows, every row with a
// borrower and a positive amount, and the row sum within ShareTolerance of
// the required per-cycle amount.
func ValidateShares(shares []models.Share, required decimal.Decimal) error {
	if len(shares) < 2 {
		return &ledgererror.ValidationError{Field: "shares", Reason: "shared transactions must include at least two borrowers with amounts"}
	}
	sum := decimal.Zero
	for _, share := range shares {
		if share.Borrower == "" {
			return &ledgererror.ValidationError{Field: "shares", Reason: "every share needs a borrower"}
		}
		if !share.AmountPerCycle.IsPositive() {
			return &ledgererror.ValidationError{Field: "shares", Reason: "every share needs a positive amount"}
		}
		sum = sum.Add(share.AmountPerCycle)
	}
	if sum.Sub(required).Abs().GreaterThan(ShareTolerance) {
		return &ledgererror.ValidationError{
			Field:  "shares",
			Reason: "share amounts must add up to the required per-cycle amount (" + required.StringFixed(2) + "), got " + sum.StringFixed(2),
		}
	}
	return nil
}

// SplitEvenly divides the required per-cycle amount across n rows, rounded
// to two decimals. The rounding remainder lands on the last row so the rows
// always sum exactly to required.
func SplitEvenly(required decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	per := required.Div(decimal.NewFromInt(int64(n))).Round(2)
	amounts := make([]decimal.Decimal, n)
	running := decimal.Zero
	for i := 0; i < n-1; i++ {
		amounts[i] = per
		running = running.Add(per)
	}
	amounts[n-1] = required.Sub(running)
	return amounts
}

// ActiveIn reports whether tx is active in the given cycle. Single-pay
// transactions are active only in the exact cycle containing their order
// date, matched on start and end instants. Installments are active in the
// index range [StartCycleIndex, StartCycleIndex+TotalMonths-1], anchored to
// the index cached at creation.
func ActiveIn(tx models.Transaction, cycle billing.Cycle, cycleIndex int) bool {
	if tx.OrderDate.IsZero() {
		return false
	}

	totalMonths := tx.TotalMonths
	if totalMonths == 0 {
		totalMonths = models.PaymentPlanMonths[tx.PaymentPlan]
		if totalMonths == 0 {
			totalMonths = 1
		}
	}

	if tx.PaymentPlan == models.PlanSinglePay || totalMonths == 1 {
		return billing.CycleFor(tx.OrderDate.Time).Matches(cycle)
	}

	endIndex := tx.StartCycleIndex + totalMonths - 1
	return cycleIndex >= tx.StartCycleIndex && cycleIndex <= endIndex
}
