package projection

import "math"

// Default projection parameters.
const (
	DefaultRevenueGrowthPercent  = 5.0
	DefaultCashFlowGrowthPercent = 10.0
	DefaultExpenseGrowthPercent  = 5.0
	DefaultPayrollGrowthPercent  = 3.0
	DefaultBalanceTolerance      = 1000.0
	DefaultYears                 = 3
	daysPerYear                  = 365.0
)

// Assumptions are the growth rates and working-capital terms of a projection.
// Each growth rate belongs to one context and is never reused for another.
type Assumptions struct {
	// RevenueGrowthPercent drives sales volumes in the income statement.
	RevenueGrowthPercent float64 `json:"revenueGrowthPercent"`
	// CashFlowGrowthPercent drives receipts in the monthly cash-flow plan.
	CashFlowGrowthPercent float64 `json:"cashFlowGrowthPercent"`
	ExpenseGrowthPercent  float64 `json:"expenseGrowthPercent"`
	PayrollGrowthPercent  float64 `json:"payrollGrowthPercent"`

	ReceivableDays float64 `json:"receivableDays" validate:"gte=0,lte=365"`
	InventoryDays  float64 `json:"inventoryDays" validate:"gte=0,lte=365"`
	PayableDays    float64 `json:"payableDays" validate:"gte=0,lte=365"`

	BalanceTolerance float64 `json:"balanceTolerance" validate:"gte=0"`
	Years            int     `json:"years" validate:"gte=0,lte=10"`
}

// DefaultAssumptions returns the documented defaults.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		RevenueGrowthPercent:  DefaultRevenueGrowthPercent,
		CashFlowGrowthPercent: DefaultCashFlowGrowthPercent,
		ExpenseGrowthPercent:  DefaultExpenseGrowthPercent,
		PayrollGrowthPercent:  DefaultPayrollGrowthPercent,
		BalanceTolerance:      DefaultBalanceTolerance,
		Years:                 DefaultYears,
	}
}

// Normalised fills unset horizon and tolerance with their defaults.
func (a Assumptions) Normalised() Assumptions {
	if a.Years <= 0 {
		a.Years = DefaultYears
	}
	if a.BalanceTolerance <= 0 {
		a.BalanceTolerance = DefaultBalanceTolerance
	}
	return a
}

// GrowthFactor is (1 + percent/100)^(year-1); year 1 is the base year.
func GrowthFactor(percent float64, year int) float64 {
	if year <= 1 {
		return 1
	}
	return math.Pow(1+percent/100, float64(year-1))
}
