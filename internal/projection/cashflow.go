package projection

import "github.com/agriprojet/agriprojet/internal/cycles"

// MonthFlow is one month of the cash-flow plan.
type MonthFlow struct {
	Month      int     `json:"month"`
	Receipts   float64 `json:"receipts"`
	Purchases  float64 `json:"purchases"`
	Expenses   float64 `json:"expenses"`
	Payroll    float64 `json:"payroll"`
	Financing  float64 `json:"financing"`
	NetFlow    float64 `json:"netFlow"`
	Cumulative float64 `json:"cumulative"`
}

// CashFlowPlan is a year of monthly flows starting from an opening balance.
type CashFlowPlan struct {
	Year           int         `json:"year"`
	OpeningCash    float64     `json:"openingCash"`
	Months         []MonthFlow `json:"months"`
	TotalReceipts  float64     `json:"totalReceipts"`
	TotalOutflows  float64     `json:"totalOutflows"`
	ClosingCash    float64     `json:"closingCash"`
	LowestCash     float64     `json:"lowestCash"`
	LowestMonth    int         `json:"lowestMonth"`
	NegativeMonths int         `json:"negativeMonths"`
}

// MonthlyCashFlow spreads a projected year over twelve months. Receipts grow
// with CashFlowGrowthPercent. Monthly products sell evenly; yield products
// cash a whole cycle, and pay for it, in each harvest month. Loan service is
// spread evenly and depreciation, being non-cash, is left out.
func MonthlyCashFlow(plan Plan, a Assumptions, openingCash float64, year int) CashFlowPlan {
	if year < 1 {
		year = 1
	}
	var months [cycles.MonthsPerYear]MonthFlow
	for i := range months {
		months[i].Month = i + 1
	}

	growth := GrowthFactor(a.CashFlowGrowthPercent, year)
	for _, p := range plan.Products {
		if !p.yieldBased() {
			for i := range months {
				months[i].Receipts += p.UnitsPerMonth * p.PricePerUnit * growth
				months[i].Purchases += p.UnitsPerMonth * p.CostPerUnit * growth
			}
			continue
		}
		s := p.Schedule()
		for _, m := range cycles.HarvestMonths(0, s.CycleMonths, s.RestMonths) {
			months[m].Receipts += p.CycleYield() * p.PricePerUnit * growth
			months[m].Purchases += p.CycleYield() * p.CostPerUnit * growth
		}
	}

	opex := OperatingExpenses(plan.Expenses, a.ExpenseGrowthPercent, year) / cycles.MonthsPerYear
	payroll := PayrollCost(plan.Payroll, a.PayrollGrowthPercent, year) / cycles.MonthsPerYear
	var service float64
	for _, f := range plan.Funding {
		service += f.Interest(year) + f.Repayment(year)
	}
	service /= cycles.MonthsPerYear

	out := CashFlowPlan{Year: year, OpeningCash: openingCash}
	cash := openingCash
	for i := range months {
		m := &months[i]
		m.Expenses = opex
		m.Payroll = payroll
		m.Financing = service
		outflows := m.Purchases + m.Expenses + m.Payroll + m.Financing
		m.NetFlow = m.Receipts - outflows
		cash += m.NetFlow
		m.Cumulative = cash

		out.TotalReceipts += m.Receipts
		out.TotalOutflows += outflows
		if i == 0 || cash < out.LowestCash {
			out.LowestCash = cash
			out.LowestMonth = m.Month
		}
		if cash < 0 {
			out.NegativeMonths++
		}
	}
	out.Months = months[:]
	out.ClosingCash = cash
	return out
}
