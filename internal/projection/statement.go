package projection

import "github.com/agriprojet/agriprojet/internal/cycles"

// YearStatement is the projected income statement of one year together with
// the balances the balance sheet needs.
type YearStatement struct {
	Year              int     `json:"year"`
	Revenue           float64 `json:"revenue"`
	CostOfSales       float64 `json:"costOfSales"`
	GrossMargin       float64 `json:"grossMargin"`
	OperatingExpenses float64 `json:"operatingExpenses"`
	Payroll           float64 `json:"payroll"`
	Depreciation      float64 `json:"depreciation"`
	OperatingResult   float64 `json:"operatingResult"`
	InterestExpense   float64 `json:"interestExpense"`
	NetResult         float64 `json:"netResult"`

	GrossFixedAssets   float64 `json:"grossFixedAssets"`
	NetFixedAssets     float64 `json:"netFixedAssets"`
	DebtRepayment      float64 `json:"debtRepayment"`
	Receivables        float64 `json:"receivables"`
	Inventory          float64 `json:"inventory"`
	CurrentLiabilities float64 `json:"currentLiabilities"`
}

// ProjectStatement projects the statement of the given year (1-based; lower
// values are treated as year 1).
func ProjectStatement(plan Plan, a Assumptions, year int) YearStatement {
	if year < 1 {
		year = 1
	}
	s := YearStatement{Year: year}

	s.Revenue = Revenue(plan.Products, a.RevenueGrowthPercent, year)
	s.CostOfSales = CostOfSales(plan.Products, a.RevenueGrowthPercent, year)
	s.GrossMargin = s.Revenue - s.CostOfSales
	s.OperatingExpenses = OperatingExpenses(plan.Expenses, a.ExpenseGrowthPercent, year)
	s.Payroll = PayrollCost(plan.Payroll, a.PayrollGrowthPercent, year)

	for _, asset := range plan.FixedAssets {
		s.Depreciation += asset.DepreciationCharge(year)
		s.GrossFixedAssets += asset.GrossValue()
		s.NetFixedAssets += asset.NetBookValue(year)
	}

	s.OperatingResult = s.Revenue - s.CostOfSales - s.OperatingExpenses - s.Payroll - s.Depreciation

	for _, src := range plan.Funding {
		s.InterestExpense += src.Interest(year)
		s.DebtRepayment += src.Repayment(year)
	}
	s.NetResult = s.OperatingResult - s.InterestExpense

	s.Receivables = s.Revenue * a.ReceivableDays / daysPerYear
	s.Inventory = s.CostOfSales * a.InventoryDays / daysPerYear
	s.CurrentLiabilities = (s.CostOfSales + s.OperatingExpenses) * a.PayableDays / daysPerYear
	return s
}

// ProjectYears projects years 1..a.Years.
func ProjectYears(plan Plan, a Assumptions) []YearStatement {
	a = a.Normalised()
	out := make([]YearStatement, 0, a.Years)
	for year := 1; year <= a.Years; year++ {
		out = append(out, ProjectStatement(plan, a, year))
	}
	return out
}

// Revenue is the sum over products of annual production times unit price,
// scaled by the revenue growth factor of the year.
func Revenue(products []Product, growthPercent float64, year int) float64 {
	var total float64
	for _, p := range products {
		total += p.AnnualProduction() * p.PricePerUnit
	}
	return total * GrowthFactor(growthPercent, year)
}

// CostOfSales prices the same volumes as Revenue at their unit cost.
func CostOfSales(products []Product, growthPercent float64, year int) float64 {
	var total float64
	for _, p := range products {
		total += p.AnnualProduction() * p.CostPerUnit
	}
	return total * GrowthFactor(growthPercent, year)
}

// OperatingExpenses sums the manual expenses of a year. Auto-calculated entries
// are always excluded.
func OperatingExpenses(expenses []OperatingExpense, growthPercent float64, year int) float64 {
	var monthly float64
	for _, e := range expenses {
		if e.AutoCalculated {
			continue
		}
		monthly += e.MonthlyAmount
	}
	return monthly * cycles.MonthsPerYear * GrowthFactor(growthPercent, year)
}

// PayrollCost is salaries plus employer charges over a year.
func PayrollCost(p Payroll, growthPercent float64, year int) float64 {
	return (p.MonthlySalaries() + p.MonthlyCharges()) * cycles.MonthsPerYear * GrowthFactor(growthPercent, year)
}
