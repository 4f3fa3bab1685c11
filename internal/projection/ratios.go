package projection

import "github.com/agriprojet/agriprojet/internal/cycles"

// Ratios are the headline indicators of one projected year. Percentages are
// 0 when their denominator is 0.
type Ratios struct {
	Year                   int     `json:"year"`
	GrossMarginPercent     float64 `json:"grossMarginPercent"`
	OperatingMarginPercent float64 `json:"operatingMarginPercent"`
	NetMarginPercent       float64 `json:"netMarginPercent"`
	ReturnOnEquityPercent  float64 `json:"returnOnEquityPercent"`
	DebtToEquity           float64 `json:"debtToEquity"`
	CurrentRatio           float64 `json:"currentRatio"`
}

// ComputeRatios derives the ratios of a year from its statement and closing
// balance sheet.
func ComputeRatios(s YearStatement, bs BalanceSheet) Ratios {
	equity := bs.Equity + bs.RetainedEarnings
	currentAssets := bs.Cash + bs.Receivables + bs.Inventory
	r := Ratios{
		Year:                   s.Year,
		GrossMarginPercent:     safeDiv(s.GrossMargin*100, s.Revenue),
		OperatingMarginPercent: safeDiv(s.OperatingResult*100, s.Revenue),
		NetMarginPercent:       safeDiv(s.NetResult*100, s.Revenue),
		CurrentRatio:           safeDiv(currentAssets, bs.CurrentLiabilities),
	}
	// a negative equity makes both ratios meaningless
	if equity > 0 {
		r.ReturnOnEquityPercent = s.NetResult * 100 / equity
		r.DebtToEquity = bs.LongTermDebt / equity
	}
	return r
}

// Breakeven is the revenue at which the year's contribution covers fixed
// costs.
type Breakeven struct {
	Year                int     `json:"year"`
	FixedCosts          float64 `json:"fixedCosts"`
	VariableCosts       float64 `json:"variableCosts"`
	VariableCostRate    float64 `json:"variableCostRate"`
	ContributionRate    float64 `json:"contributionRate"`
	BreakevenRevenue    float64 `json:"breakevenRevenue"`
	SafetyMargin        float64 `json:"safetyMargin"`
	SafetyMarginPercent float64 `json:"safetyMarginPercent"`
	BreakevenMonth      float64 `json:"breakevenMonth"`
	Reachable           bool    `json:"reachable"`
}

// ComputeBreakeven treats cost of sales as the only variable cost. When sales
// do not contribute anything the breakeven is unreachable and only the cost
// split is reported.
func ComputeBreakeven(s YearStatement) Breakeven {
	b := Breakeven{
		Year:          s.Year,
		FixedCosts:    s.OperatingExpenses + s.Payroll + s.Depreciation + s.InterestExpense,
		VariableCosts: s.CostOfSales,
	}
	if s.Revenue <= 0 {
		return b
	}
	b.VariableCostRate = s.CostOfSales / s.Revenue
	b.ContributionRate = 1 - b.VariableCostRate
	if b.ContributionRate <= 0 {
		return b
	}
	b.Reachable = true
	b.BreakevenRevenue = b.FixedCosts / b.ContributionRate
	b.SafetyMargin = s.Revenue - b.BreakevenRevenue
	b.SafetyMarginPercent = b.SafetyMargin * 100 / s.Revenue
	b.BreakevenMonth = b.BreakevenRevenue / s.Revenue * cycles.MonthsPerYear
	return b
}
