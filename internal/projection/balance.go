package projection

import (
	"math"
	"sort"
)

// BalanceSheet is the projected closing position of one year.
type BalanceSheet struct {
	Year           int     `json:"year"`
	NetFixedAssets float64 `json:"netFixedAssets"`
	Cash           float64 `json:"cash"`
	Receivables    float64 `json:"receivables"`
	Inventory      float64 `json:"inventory"`
	TotalAssets    float64 `json:"totalAssets"`

	Equity                    float64 `json:"equity"`
	RetainedEarnings          float64 `json:"retainedEarnings"`
	LongTermDebt              float64 `json:"longTermDebt"`
	CurrentLiabilities        float64 `json:"currentLiabilities"`
	TotalLiabilitiesAndEquity float64 `json:"totalLiabilitiesAndEquity"`

	Difference   float64 `json:"difference"`
	BalanceCheck bool    `json:"balanceCheck"`
}

// OpeningEquity is the declared apport and subvention total. When the plan
// declares none, equity is whatever funds the opening position not covered by
// loans.
func OpeningEquity(funding []FundingSource, openingCash, grossFixedAssets float64) float64 {
	var equity, loans float64
	var declared bool
	for _, f := range funding {
		switch {
		case f.isEquity():
			equity += f.Amount
			declared = true
		case f.isLoan():
			loans += f.Amount
		}
	}
	if declared {
		return equity
	}
	return openingCash + grossFixedAssets - loans
}

// GenerateBalanceSheet builds the closing balance sheet of every statement.
// Cash accumulates the cash-basis result: net result plus depreciation, less
// loan repayments and the increase in working capital. The check compares
// total assets with liabilities plus equity within tolerance (the default
// tolerance when tolerance <= 0).
func GenerateBalanceSheet(statements []YearStatement, openingCash float64, funding []FundingSource, tolerance float64) []BalanceSheet {
	if len(statements) == 0 {
		return nil
	}
	if tolerance <= 0 {
		tolerance = DefaultBalanceTolerance
	}
	ordered := make([]YearStatement, len(statements))
	copy(ordered, statements)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Year < ordered[j].Year })

	equity := OpeningEquity(funding, openingCash, ordered[0].GrossFixedAssets)

	var (
		cash     = openingCash
		retained float64
		prev     YearStatement
		out      = make([]BalanceSheet, 0, len(ordered))
	)
	for _, s := range ordered {
		workingCapitalIncrease := (s.Receivables - prev.Receivables) +
			(s.Inventory - prev.Inventory) -
			(s.CurrentLiabilities - prev.CurrentLiabilities)
		cash += s.NetResult + s.Depreciation - s.DebtRepayment - workingCapitalIncrease
		retained += s.NetResult

		var debt float64
		for _, f := range funding {
			debt += f.Outstanding(s.Year)
		}

		bs := BalanceSheet{
			Year:               s.Year,
			NetFixedAssets:     s.NetFixedAssets,
			Cash:               cash,
			Receivables:        s.Receivables,
			Inventory:          s.Inventory,
			Equity:             equity,
			RetainedEarnings:   retained,
			LongTermDebt:       debt,
			CurrentLiabilities: s.CurrentLiabilities,
		}
		bs.TotalAssets = bs.NetFixedAssets + bs.Cash + bs.Receivables + bs.Inventory
		bs.TotalLiabilitiesAndEquity = bs.Equity + bs.RetainedEarnings + bs.LongTermDebt + bs.CurrentLiabilities
		bs.Difference = bs.TotalAssets - bs.TotalLiabilitiesAndEquity
		bs.BalanceCheck = math.Abs(bs.Difference) < tolerance
		out = append(out, bs)
		prev = s
	}
	return out
}
