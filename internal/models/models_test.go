package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"iso date", "2025-01-20", "2025-01-20", false},
		{"rfc3339 timestamp", "2025-01-20T15:04:05Z", "2025-01-20", false},
		{"datetime without zone", "2025-01-20 15:04:05", "2025-01-20", false},
		{"surrounding whitespace", "  2025-01-20  ", "2025-01-20", false},
		{"empty", "", "", true},
		{"garbage", "not-a-date", "", true},
		{"wrong order", "20-01-2025", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := ParseDate(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, d.String())
		})
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.January, 20)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-20"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, d.String(), parsed.String())
}

func TestDateZeroValue(t *testing.T) {
	var d Date
	assert.Equal(t, "", d.String())

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &parsed))
	assert.True(t, parsed.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`null`), &parsed))
	assert.True(t, parsed.IsZero())
}

func TestDecimalMarshalsAsNumber(t *testing.T) {
	tx := Transaction{Amount: decimal.NewFromFloat(1234.5)}
	data, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"amount":1234.5`)
}

func TestPaymentPlanMonths(t *testing.T) {
	assert.Equal(t, 1, PaymentPlanMonths[PlanSinglePay])
	assert.Equal(t, 3, PaymentPlanMonths[Plan3Months])
	assert.Equal(t, 6, PaymentPlanMonths[Plan6Months])
	assert.Equal(t, 12, PaymentPlanMonths[Plan12Months])
}

func TestIsValidMethod(t *testing.T) {
	for _, method := range PaymentMethods {
		assert.True(t, IsValidMethod(method), string(method))
	}
	assert.False(t, IsValidMethod("check"))
	assert.False(t, IsValidMethod(""))
}

func TestTransactionPredicates(t *testing.T) {
	installment := Transaction{PaymentPlan: Plan6Months, TotalMonths: 6}
	assert.True(t, installment.IsInstallment())

	single := Transaction{PaymentPlan: PlanSinglePay, TotalMonths: 1}
	assert.False(t, single.IsInstallment())

	shared := Transaction{Mode: ModeShared, Shares: []Share{{Borrower: "Anna"}}}
	assert.True(t, shared.IsShared())

	sharedNoRows := Transaction{Mode: ModeShared}
	assert.False(t, sharedNoRows.IsShared())
}

func TestComputeInterestPreview(t *testing.T) {
	tests := []struct {
		name             string
		principal        string
		monthly          string
		plan             PaymentPlan
		expectNil        bool
		expectedPaid     string
		expectedInterest string
		expectedPercent  string
	}{
		{
			name:      "single pay has no preview",
			principal: "1000", monthly: "1000", plan: PlanSinglePay,
			expectNil: true,
		},
		{
			name:      "zero monthly has no preview",
			principal: "1000", monthly: "0", plan: Plan6Months,
			expectNil: true,
		},
		{
			name:      "zero principal has no preview",
			principal: "0", monthly: "200", plan: Plan6Months,
			expectNil: true,
		},
		{
			name:      "interest-bearing plan",
			principal: "6000", monthly: "1100", plan: Plan6Months,
			expectedPaid: "6600", expectedInterest: "600", expectedPercent: "10",
		},
		{
			name:      "zero-interest plan",
			principal: "6000", monthly: "1000", plan: Plan6Months,
			expectedPaid: "6000", expectedInterest: "0", expectedPercent: "0",
		},
		{
			name:      "monthly below even split clamps to zero interest",
			principal: "6000", monthly: "900", plan: Plan6Months,
			expectedPaid: "5400", expectedInterest: "0", expectedPercent: "0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			preview := ComputeInterestPreview(
				decimal.RequireFromString(tc.principal),
				decimal.RequireFromString(tc.monthly),
				tc.plan,
			)
			if tc.expectNil {
				assert.Nil(t, preview)
				return
			}
			require.NotNil(t, preview)
			assert.True(t, preview.TotalPaid.Equal(decimal.RequireFromString(tc.expectedPaid)),
				"paid %s", preview.TotalPaid)
			assert.True(t, preview.TotalInterest.Equal(decimal.RequireFromString(tc.expectedInterest)),
				"interest %s", preview.TotalInterest)
			assert.True(t, preview.Percent.Equal(decimal.RequireFromString(tc.expectedPercent)),
				"percent %s", preview.Percent)
		})
	}
}
