package deposit

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFixedMaturityAmount(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      float64
		months    int
		want      string
	}{
		{"one year at 6 percent", "1000", 6.0, 12, "1061.68"},
		{"one lakh at 6.5 percent", "100000", 6.5, 12, "106697.19"},
		{"two months at 12 percent", "1000", 12.0, 2, "1020.10"},
		{"zero rate", "1000", 0.0, 12, "1000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FixedMaturityAmount(decimal.RequireFromString(tt.principal), tt.rate, tt.months)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestRecurringMaturityAmount(t *testing.T) {
	tests := []struct {
		name        string
		installment string
		rate        float64
		months      int
		want        string
	}{
		{"two months at 12 percent", "1000", 12.0, 2, "2030.10"},
		{"zero rate degenerates to sum of installments", "1000", 0.0, 12, "12000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecurringMaturityAmount(decimal.RequireFromString(tt.installment), tt.rate, tt.months)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestMaturityAmountsAreDeterministic(t *testing.T) {
	principal := decimal.RequireFromString("98765.43")
	a := FixedMaturityAmount(principal, 7.35, 36)
	b := FixedMaturityAmount(principal, 7.35, 36)
	assert.True(t, a.Equal(b))

	installment := decimal.RequireFromString("2500")
	c := RecurringMaturityAmount(installment, 7.35, 36)
	d := RecurringMaturityAmount(installment, 7.35, 36)
	assert.True(t, c.Equal(d))
}
