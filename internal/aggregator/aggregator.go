// Package aggregator computes the derived views of the ledger for one
// billing cycle: the active transaction list, the cycle totals, the
// per-borrower ledger, and the cycle-independent used-credit figure. All
// functions are pure over the collections passed in; nothing here touches
// storage.
package aggregator

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/dayveeee07/spaylater-tracker/internal/allocator"
	"github.com/dayveeee07/spaylater-tracker/internal/billing"
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

// BorrowerTotal is one borrower's position in a cycle. Paid is never
// clamped: an overpayment stays visible as paid exceeding due, while
// Balance floors at zero.
type BorrowerTotal struct {
	Due     decimal.Decimal `json:"due" yaml:"due"`
	Count   int             `json:"count" yaml:"count"`
	Paid    decimal.Decimal `json:"paid" yaml:"paid"`
	Balance decimal.Decimal `json:"balance" yaml:"balance"`
}

// Summary is the full aggregation for one cycle.
type Summary struct {
	Cycle      billing.Cycle  `json:"cycle" yaml:"cycle"`
	CycleIndex int            `json:"cycleIndex" yaml:"cycle_index"`
	CyclePaid  bool           `json:"cyclePaid" yaml:"cycle_paid"`

	Active []models.Transaction `json:"active" yaml:"active"`

	CycleTotal       decimal.Decimal `json:"cycleTotal" yaml:"cycle_total"`
	BnplTotal        decimal.Decimal `json:"bnplTotal" yaml:"bnpl_total"`
	InstallmentTotal decimal.Decimal `json:"installmentTotal" yaml:"installment_total"`

	Borrowers map[string]BorrowerTotal `json:"borrowers" yaml:"borrowers"`

	UsedCredit      decimal.Decimal  `json:"usedCredit" yaml:"used_credit"`
	CreditLimit     decimal.Decimal  `json:"creditLimit" yaml:"credit_limit"`
	RemainingCredit *decimal.Decimal `json:"remainingCredit,omitempty" yaml:"remaining_credit,omitempty"`
	Utilization     *decimal.Decimal `json:"utilization,omitempty" yaml:"utilization,omitempty"`
}

// Aggregate computes the summary for the given cycle over in-memory
// collections. Known borrowers always get an entry; borrowers appearing only
// in shares are added as they are found.
func Aggregate(
	transactions []models.Transaction,
	payments []models.Payment,
	borrowers []string,
	cycle billing.Cycle,
	cycleIndex int,
	paidCycles []int,
	creditLimit decimal.Decimal,
) Summary {
	active := ActiveTransactions(transactions, cycle, cycleIndex)

	summary := Summary{
		Cycle:      cycle,
		CycleIndex: cycleIndex,
		CyclePaid:  containsCycle(paidCycles, cycleIndex),
		Active:     active,
		CycleTotal: decimal.Zero,
		BnplTotal:  decimal.Zero,
		Borrowers:  make(map[string]BorrowerTotal, len(borrowers)),
	}

	for _, tx := range active {
		amountForCycle := allocator.AmountForCycle(tx)
		summary.CycleTotal = summary.CycleTotal.Add(amountForCycle)
		if tx.PaymentPlan == models.PlanSinglePay {
			summary.BnplTotal = summary.BnplTotal.Add(tx.Amount)
		}
	}
	summary.InstallmentTotal = summary.CycleTotal.Sub(summary.BnplTotal)

	summary.Borrowers = borrowerTotals(active, payments, borrowers, cycleIndex)

	summary.UsedCredit = UsedCredit(transactions, paidCycles)
	summary.RemainingCredit, summary.Utilization = creditFigures(creditLimit, summary.UsedCredit)
	summary.CreditLimit = creditLimit

	log.WithFields(logrus.Fields{
		logging.FieldCycle: cycleIndex,
		logging.FieldCount: len(active),
		"cycle_total":      summary.CycleTotal.StringFixed(2),
		"used_credit":      summary.UsedCredit.StringFixed(2),
	}).Debug("Aggregated cycle")

	return summary
}

// ActiveTransactions filters the transactions active in the cycle and sorts
// them by order date descending, ties broken by creation time descending.
func ActiveTransactions(transactions []models.Transaction, cycle billing.Cycle, cycleIndex int) []models.Transaction {
	var active []models.Transaction
	for _, tx := range transactions {
		if allocator.ActiveIn(tx, cycle, cycleIndex) {
			active = append(active, tx)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if !active[i].OrderDate.Equal(active[j].OrderDate.Time) {
			return active[i].OrderDate.After(active[j].OrderDate.Time)
		}
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})

	return active
}

// borrowerTotals accumulates due amounts per borrower over the active list,
// then folds in the cycle's payments.
func borrowerTotals(active []models.Transaction, payments []models.Payment, borrowers []string, cycleIndex int) map[string]BorrowerTotal {
	totals := make(map[string]BorrowerTotal, len(borrowers))
	for _, name := range borrowers {
		totals[name] = BorrowerTotal{Due: decimal.Zero, Paid: decimal.Zero, Balance: decimal.Zero}
	}

	for _, tx := range active {
		if tx.IsShared() {
			for _, share := range tx.Shares {
				name := share.Borrower
				if name == "" {
					name = models.DefaultBorrower
				}
				entry := totals[name]
				entry.Due = entry.Due.Add(share.AmountPerCycle)
				entry.Count++
				totals[name] = entry
			}
			continue
		}

		name := tx.Borrower
		if name == "" {
			name = models.DefaultBorrower
		}
		entry := totals[name]
		entry.Due = entry.Due.Add(allocator.AmountForCycle(tx))
		entry.Count++
		totals[name] = entry
	}

	credits := paymentsByBorrower(payments, cycleIndex)
	for name, entry := range totals {
		paid := credits[name]
		entry.Paid = paid
		entry.Balance = entry.Due.Sub(paid)
		if entry.Balance.IsNegative() {
			entry.Balance = decimal.Zero
		}
		totals[name] = entry
	}

	return totals
}

// paymentsByBorrower sums each borrower's payments recorded against the
// given cycle. Payments for other cycles do not count.
func paymentsByBorrower(payments []models.Payment, cycleIndex int) map[string]decimal.Decimal {
	credits := make(map[string]decimal.Decimal)
	for _, p := range payments {
		if p.Borrower == "" || p.CycleIndex != cycleIndex {
			continue
		}
		credits[p.Borrower] = credits[p.Borrower].Add(p.Amount)
	}
	return credits
}

// UsedCredit is the all-time outstanding liability across every transaction,
// independent of the current cycle. Each transaction's principal is spread
// uniformly across its installment months; a month is outstanding unless its
// cycle index is in paidCycles. This deliberately ignores MonthlyPayment,
// which only shapes per-cycle display amounts.
func UsedCredit(transactions []models.Transaction, paidCycles []int) decimal.Decimal {
	paid := make(map[int]struct{}, len(paidCycles))
	for _, index := range paidCycles {
		paid[index] = struct{}{}
	}

	used := decimal.Zero
	for _, tx := range transactions {
		if tx.Amount.IsZero() {
			continue
		}

		totalMonths := tx.TotalMonths
		if totalMonths == 0 {
			totalMonths = models.PaymentPlanMonths[tx.PaymentPlan]
			if totalMonths == 0 {
				totalMonths = 1
			}
		}

		startIndex := tx.StartCycleIndex
		if startIndex == 0 && !tx.OrderDate.IsZero() {
			startIndex = billing.IndexFor(tx.OrderDate.Time)
		}

		unpaid := 0
		for i := 0; i < totalMonths; i++ {
			if _, ok := paid[startIndex+i]; !ok {
				unpaid++
			}
		}
		if unpaid == 0 {
			continue
		}

		outstanding := tx.Amount.
			Mul(decimal.NewFromInt(int64(unpaid))).
			Div(decimal.NewFromInt(int64(totalMonths)))
		used = used.Add(outstanding)
	}

	return used
}

// creditFigures derives remaining credit and utilization percent. Both are
// nil when no positive limit is configured; utilization is zero when used
// credit is non-positive.
func creditFigures(creditLimit, usedCredit decimal.Decimal) (*decimal.Decimal, *decimal.Decimal) {
	if !creditLimit.IsPositive() {
		return nil, nil
	}
	remaining := creditLimit.Sub(usedCredit)
	if !usedCredit.IsPositive() {
		zero := decimal.Zero
		return &remaining, &zero
	}
	utilization := usedCredit.Div(creditLimit).Mul(decimal.NewFromInt(100))
	return &remaining, &utilization
}

func containsCycle(paidCycles []int, index int) bool {
	for _, c := range paidCycles {
		if c == index {
			return true
		}
	}
	return false
}
