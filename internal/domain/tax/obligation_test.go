package tax

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_IsValid(t *testing.T) {
	tests := []struct {
		kind    Kind
		isValid bool
	}{
		{KindVAT, true},
		{KindPayroll, true},
		{KindCorporate, true},
		{Kind("INVALID"), false},
		{Kind(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.kind.IsValid())
		})
	}
}

func TestObligation_Key_NormalizesDueDateToDay(t *testing.T) {
	a := Obligation{Kind: KindVAT, DueDate: time.Date(2026, time.May, 7, 0, 0, 0, 0, time.UTC)}
	b := Obligation{Kind: KindVAT, DueDate: time.Date(2026, time.May, 7, 15, 30, 0, 0, time.UTC)}
	assert.Equal(t, a.Key(), b.Key())
}

func TestMergeObligations_PersistedWinsOnConflict(t *testing.T) {
	due := time.Date(2026, time.May, 7, 0, 0, 0, 0, time.UTC)
	persisted := []Obligation{
		{Kind: KindVAT, DueDate: due, Amount: decimal.NewFromInt(3200), Reference: "filed"},
	}
	calculated := []Obligation{
		{Kind: KindVAT, DueDate: due, Amount: decimal.NewFromInt(3000), Reference: "estimated"},
		{Kind: KindPayroll, DueDate: time.Date(2026, time.April, 22, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(1500)},
	}

	merged := MergeObligations(persisted, calculated)
	require.Len(t, merged, 2)

	// Sorted by due date: payroll (April) before VAT (May).
	assert.Equal(t, KindPayroll, merged[0].Kind)
	assert.Equal(t, KindVAT, merged[1].Kind)
	assert.Equal(t, "filed", merged[1].Reference)
	assert.True(t, decimal.NewFromInt(3200).Equal(merged[1].Amount))
}

func TestMergeObligations_EmptyInputs(t *testing.T) {
	assert.Empty(t, MergeObligations(nil, nil))

	calculated := []Obligation{{Kind: KindVAT, DueDate: time.Now(), Amount: decimal.NewFromInt(1)}}
	assert.Len(t, MergeObligations(nil, calculated), 1)
}
