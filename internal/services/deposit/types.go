package deposit

import "github.com/shopspring/decimal"

// CreateFDRequest opens a fixed deposit funded out of band. The linked
// account, when set, receives the maturity credit.
type CreateFDRequest struct {
	Principal       decimal.Decimal `json:"principal"`
	AnnualRate      float64         `json:"annual_rate"`
	TenureMonths    int             `json:"tenure_months"`
	AutoRenew       bool            `json:"auto_renew"`
	LinkedAccountID *uint           `json:"linked_account_id"`
}

// CreateRDRequest opens a recurring deposit with a fixed monthly
// installment.
type CreateRDRequest struct {
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	AnnualRate         float64         `json:"annual_rate"`
	TenureMonths       int             `json:"tenure_months"`
	LinkedAccountID    *uint           `json:"linked_account_id"`
}

// SweepReport summarizes one maturity sweep run.
type SweepReport struct {
	FixedMatured     int `json:"fixed_matured"`
	FixedRenewed     int `json:"fixed_renewed"`
	FixedFailed      int `json:"fixed_failed"`
	RecurringMatured int `json:"recurring_matured"`
	RecurringFailed  int `json:"recurring_failed"`
}
