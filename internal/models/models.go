// Package models defines the persisted records of the tracker: transactions
// with their payment plans and borrower shares, recorded payments, and the
// borrower list.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are serialized as plain JSON numbers so exports stay readable
	// and compatible with documents produced by earlier versions.
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultBorrower is the sentinel borrower that always exists, cannot be
// removed, and absorbs any transaction or share without an explicit borrower.
const DefaultBorrower = "Personal"

// PaymentPlan identifies how a purchase is paid off.
type PaymentPlan string

const (
	// PlanSinglePay is a one-off purchase settled in full in its own cycle.
	PlanSinglePay PaymentPlan = "bnpl"
	Plan3Months   PaymentPlan = "3months"
	Plan6Months   PaymentPlan = "6months"
	Plan12Months  PaymentPlan = "12months"
)

// PaymentPlanMonths maps each plan to its fixed month count. The table is
// immutable; records cache TotalMonths at creation so later table changes
// never alter existing transactions.
var PaymentPlanMonths = map[PaymentPlan]int{
	PlanSinglePay: 1,
	Plan3Months:   3,
	Plan6Months:   6,
	Plan12Months:  12,
}

// PlanLabels holds the display names of the payment plans.
var PlanLabels = map[PaymentPlan]string{
	PlanSinglePay: "BNPL 0%",
	Plan3Months:   "3-Month Installment",
	Plan6Months:   "6-Month Installment",
	Plan12Months:  "12-Month Installment",
}

// Mode distinguishes single-borrower transactions from shared ones.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeShared Mode = "shared"
)

// PaymentMethod enumerates how a payment was made.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodGcash        PaymentMethod = "gcash"
	MethodMaya         PaymentMethod = "maya"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodOther        PaymentMethod = "other"
)

// PaymentMethods lists the valid payment methods.
var PaymentMethods = []PaymentMethod{
	MethodCash, MethodGcash, MethodMaya, MethodBankTransfer, MethodOther,
}

// IsValidMethod reports whether m is a known payment method.
func IsValidMethod(m PaymentMethod) bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// Share is one borrower's per-cycle slice of a shared transaction.
type Share struct {
	Borrower       string          `json:"borrower" yaml:"borrower"`
	AmountPerCycle decimal.Decimal `json:"amountPerCycle" yaml:"amount_per_cycle"`
}

// Transaction is a recorded purchase. TotalMonths and StartCycleIndex are
// derived once at creation time and are the anchors for every later
// cycle-membership check; they are never recomputed from OrderDate.
type Transaction struct {
	ID              string          `json:"id" yaml:"id"`
	ProductName     string          `json:"productName" yaml:"product_name"`
	Description     string          `json:"description,omitempty" yaml:"description,omitempty"`
	Amount          decimal.Decimal `json:"amount" yaml:"amount"`
	Borrower        string          `json:"borrower" yaml:"borrower"`
	PaymentPlan     PaymentPlan     `json:"paymentPlan" yaml:"payment_plan"`
	OrderDate       Date            `json:"orderDate" yaml:"order_date"`
	MonthlyPayment  decimal.Decimal `json:"monthlyPayment,omitempty" yaml:"monthly_payment,omitempty"`
	Mode            Mode            `json:"mode" yaml:"mode"`
	Shares          []Share         `json:"shares,omitempty" yaml:"shares,omitempty"`
	TotalMonths     int             `json:"totalMonths" yaml:"total_months"`
	StartCycleIndex int             `json:"startCycleIndex" yaml:"start_cycle_index"`
	CreatedAt       time.Time       `json:"createdAt" yaml:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" yaml:"updated_at"`
}

// IsInstallment reports whether the transaction spans more than one cycle.
func (t Transaction) IsInstallment() bool {
	return t.PaymentPlan != PlanSinglePay && t.TotalMonths > 1
}

// IsShared reports whether the transaction is split across borrowers.
func (t Transaction) IsShared() bool {
	return t.Mode == ModeShared && len(t.Shares) > 0
}

// Payment is money handed over by a borrower, counted against one cycle.
// The cycle association is fixed at creation and only changes through an
// explicit edit.
type Payment struct {
	ID         string          `json:"id" yaml:"id"`
	Borrower   string          `json:"borrower" yaml:"borrower"`
	CycleIndex int             `json:"cycleIndex" yaml:"cycle_index"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	Date       Date            `json:"date" yaml:"date"`
	Method     PaymentMethod   `json:"method" yaml:"method"`
	MethodNote string          `json:"methodNote,omitempty" yaml:"method_note,omitempty"`
}

// InterestPreview summarizes the cost of an installment plan over its life.
type InterestPreview struct {
	TotalPaid     decimal.Decimal
	TotalInterest decimal.Decimal
	Percent       decimal.Decimal
}

// ComputeInterestPreview derives the total paid, total interest and interest
// percentage for an installment plan. Returns nil for single-cycle plans or
// when either amount is missing.
func ComputeInterestPreview(principal, monthly decimal.Decimal, plan PaymentPlan) *InterestPreview {
	totalMonths := PaymentPlanMonths[plan]
	if totalMonths <= 1 {
		return nil
	}
	if principal.IsZero() || monthly.IsZero() {
		return nil
	}
	totalPaid := monthly.Mul(decimal.NewFromInt(int64(totalMonths)))
	totalInterest := totalPaid.Sub(principal)
	if totalInterest.IsNegative() {
		return &InterestPreview{TotalPaid: totalPaid, TotalInterest: decimal.Zero, Percent: decimal.Zero}
	}
	percent := totalInterest.Div(principal).Mul(decimal.NewFromInt(100))
	return &InterestPreview{TotalPaid: totalPaid, TotalInterest: totalInterest, Percent: percent}
}
