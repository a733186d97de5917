package deposit

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	one     = decimal.NewFromInt(1)
)

// FixedMaturityAmount computes compound interest with monthly compounding:
// principal * (1 + r/12)^months, where r is the annual rate as a fraction.
// Intermediate divisions are carried at 10 decimal places, half-up; the
// result is rounded to 2 places.
func FixedMaturityAmount(principal decimal.Decimal, annualRatePercent float64, tenureMonths int) decimal.Decimal {
	rate := decimal.NewFromFloat(annualRatePercent).DivRound(hundred, 10)
	base := one.Add(rate.DivRound(twelve, 10))
	amount := principal
	for i := 0; i < tenureMonths; i++ {
		amount = amount.Mul(base)
	}
	return amount.Round(2)
}

// RecurringMaturityAmount computes the future value of a monthly installment
// annuity-due: installment * ((1+r)^n - 1) / r * (1+r), with r the monthly
// rate. A zero rate degenerates to installment * n.
func RecurringMaturityAmount(installment decimal.Decimal, annualRatePercent float64, tenureMonths int) decimal.Decimal {
	r := decimal.NewFromFloat(annualRatePercent).DivRound(hundred, 10).DivRound(twelve, 10)
	if r.IsZero() {
		return installment.Mul(decimal.NewFromInt(int64(tenureMonths))).Round(2)
	}
	growth := one.Add(r)
	compounded := one
	for i := 0; i < tenureMonths; i++ {
		compounded = compounded.Mul(growth)
	}
	factor := compounded.Sub(one).DivRound(r, 10).Mul(growth)
	return installment.Mul(factor).Round(2)
}
