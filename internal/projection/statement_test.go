package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tractor() FixedAsset {
	return FixedAsset{ID: "fa1", Name: "Tracteur", Quantity: 1, UnitPrice: 100000, DepreciationRatePercent: 5}
}

func TestBalanceSheetWithoutRevenueBalances(t *testing.T) {
	plan := Plan{FixedAssets: []FixedAsset{tractor()}}
	a := DefaultAssumptions()

	statements := ProjectYears(plan, a)
	require.Len(t, statements, 3)

	s1 := statements[0]
	assert.Equal(t, 0.0, s1.Revenue)
	assert.Equal(t, 5000.0, s1.Depreciation)
	assert.Equal(t, -5000.0, s1.NetResult)
	assert.Equal(t, 95000.0, s1.NetFixedAssets)

	sheets := GenerateBalanceSheet(statements, 25000, nil, a.BalanceTolerance)
	require.Len(t, sheets, 3)
	y1 := sheets[0]
	assert.Equal(t, 25000.0, y1.Cash)
	assert.Equal(t, 120000.0, y1.TotalAssets)
	assert.Equal(t, 125000.0, y1.Equity)
	assert.Equal(t, -5000.0, y1.RetainedEarnings)
	assert.InDelta(t, y1.TotalAssets, y1.TotalLiabilitiesAndEquity, 1000)
	for _, bs := range sheets {
		assert.True(t, bs.BalanceCheck, "year %d", bs.Year)
	}
}

func TestBalanceSheetWithLoanAndWorkingCapital(t *testing.T) {
	plan := Plan{
		Products: []Product{
			{ID: "p1", Name: "Tomate", Mode: ModeMonthly, UnitsPerMonth: 100, PricePerUnit: 500, CostPerUnit: 200},
			{ID: "p2", Name: "Manioc", Mode: ModeYield, CycleMonths: 12, EstimatedYield: 2000, PricePerUnit: 150, CostPerUnit: 60},
		},
		Expenses: []OperatingExpense{
			{ID: "e1", Name: "Loyer", MonthlyAmount: 5000},
			{ID: "auto-x", Name: "Coûts parcelle", MonthlyAmount: 99999, AutoCalculated: true},
		},
		Payroll: Payroll{Employees: []Employee{
			{Position: "Ouvrier", Count: 2, MonthlySalary: 60000, ChargeRatePercent: 20},
		}},
		FixedAssets: []FixedAsset{tractor()},
		Funding: []FundingSource{
			{ID: "f1", Name: "Apport", Type: FundingApport, Amount: 75000},
			{ID: "f2", Name: "Prêt BNI", Type: FundingEmprunt, Amount: 50000, InterestRatePercent: 10, DurationYears: 5},
		},
	}
	a := DefaultAssumptions()
	a.ReceivableDays = 30
	a.InventoryDays = 15
	a.PayableDays = 45

	statements := ProjectYears(plan, a)
	sheets := GenerateBalanceSheet(statements, 25000, plan.Funding, a.BalanceTolerance)
	require.Len(t, sheets, 3)
	for _, bs := range sheets {
		assert.True(t, bs.BalanceCheck, "year %d off by %f", bs.Year, bs.Difference)
		assert.InDelta(t, 0, bs.Difference, 1e-6)
	}

	s1 := statements[0]
	assert.Equal(t, 100*500*12+2000*150.0, s1.Revenue)
	assert.Equal(t, 5000.0*12, s1.OperatingExpenses, "auto-calculated expenses are excluded")
	assert.Equal(t, (120000+24000)*12.0, s1.Payroll)
	assert.Equal(t, 5000.0, s1.InterestExpense)
	assert.Equal(t, 10000.0, s1.DebtRepayment)
	assert.Equal(t, 40000.0, sheets[0].LongTermDebt)
	assert.Equal(t, 75000.0, sheets[0].Equity)
}

func TestGrowthRatesStayInTheirContext(t *testing.T) {
	plan := Plan{
		Products: []Product{{ID: "p", Name: "p", Mode: ModeMonthly, UnitsPerMonth: 1, PricePerUnit: 1200}},
		Expenses: []OperatingExpense{{ID: "e", Name: "e", MonthlyAmount: 100}},
		Payroll:  Payroll{Employees: []Employee{{Position: "x", Count: 1, MonthlySalary: 1000}}},
	}
	a := Assumptions{RevenueGrowthPercent: 10, ExpenseGrowthPercent: 20, PayrollGrowthPercent: 0}

	s2 := ProjectStatement(plan, a, 2)
	assert.InDelta(t, 14400*1.1, s2.Revenue, 1e-9)
	assert.InDelta(t, 1200*1.2, s2.OperatingExpenses, 1e-9)
	assert.Equal(t, 12000.0, s2.Payroll)
}

func TestProjectStatementIsIdempotent(t *testing.T) {
	plan := Plan{
		Products:    []Product{{ID: "p", Name: "Riz", CycleMonths: 4, RestMonths: 2, EstimatedYield: 3000, PricePerUnit: 350}},
		FixedAssets: []FixedAsset{tractor()},
	}
	a := DefaultAssumptions()
	first := ProjectStatement(plan, a, 2)
	second := ProjectStatement(plan, a, 2)
	assert.Equal(t, first, second)
}

func TestProjectStatementCoercesYear(t *testing.T) {
	s := ProjectStatement(Plan{}, DefaultAssumptions(), 0)
	assert.Equal(t, 1, s.Year)
}

func TestNetBookValueNeverNegative(t *testing.T) {
	asset := FixedAsset{ID: "a", Name: "Pompe", Quantity: 2, UnitPrice: 10000, DepreciationRatePercent: 40}
	assert.Equal(t, 12000.0, asset.NetBookValue(1))
	assert.Equal(t, 0.0, asset.NetBookValue(3))
	assert.Equal(t, 0.0, asset.NetBookValue(10))
	assert.Equal(t, 4000.0, asset.DepreciationCharge(3))
	assert.Equal(t, 0.0, asset.DepreciationCharge(4))

	plan := Plan{FixedAssets: []FixedAsset{asset}}
	a := DefaultAssumptions()
	a.Years = 5
	for _, s := range ProjectYears(plan, a) {
		assert.GreaterOrEqual(t, s.NetFixedAssets, 0.0)
	}
}

func TestLoanSchedule(t *testing.T) {
	loan := FundingSource{ID: "l", Name: "Prêt", Type: FundingEmprunt, Amount: 30000, InterestRatePercent: 8, DurationYears: 2}
	assert.Equal(t, 15000.0, loan.Repayment(1))
	assert.Equal(t, 15000.0, loan.Repayment(2))
	assert.Equal(t, 0.0, loan.Repayment(3))
	assert.Equal(t, 2400.0, loan.Interest(2))
	assert.Equal(t, 0.0, loan.Interest(3))

	open := FundingSource{ID: "o", Name: "Crédit", Type: "EMPRUNT", Amount: 1000, InterestRatePercent: 5}
	assert.Equal(t, 1000.0, open.Outstanding(5))
	assert.Equal(t, 50.0, open.Interest(5))

	grant := FundingSource{ID: "g", Name: "Subvention", Type: FundingSubvention, Amount: 1000, InterestRatePercent: 5}
	assert.False(t, grant.InterestBearing())
	assert.Equal(t, 0.0, grant.Outstanding(0))
}

func TestGenerateBalanceSheetSortsStatements(t *testing.T) {
	plan := Plan{FixedAssets: []FixedAsset{tractor()}}
	statements := ProjectYears(plan, DefaultAssumptions())
	reversed := []YearStatement{statements[2], statements[1], statements[0]}

	sheets := GenerateBalanceSheet(reversed, 25000, nil, 0)
	require.Len(t, sheets, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{sheets[0].Year, sheets[1].Year, sheets[2].Year})
	assert.Equal(t, 3, reversed[0].Year, "input must not be reordered")
	assert.Nil(t, GenerateBalanceSheet(nil, 0, nil, 0))
}

func TestBalanceCheckFailsOutsideTolerance(t *testing.T) {
	statements := []YearStatement{{Year: 1, NetResult: 0}}
	// declared equity does not match the opening position
	funding := []FundingSource{{ID: "f", Name: "Apport", Type: FundingApport, Amount: 10000}}
	sheets := GenerateBalanceSheet(statements, 25000, funding, 1000)
	assert.False(t, sheets[0].BalanceCheck)
	assert.Equal(t, 15000.0, sheets[0].Difference)
}

func TestProductionModes(t *testing.T) {
	monthly := Product{UnitsPerMonth: 10}
	assert.Equal(t, 120.0, monthly.AnnualProduction())

	yield := Product{CycleMonths: 4, RestMonths: 2, EstimatedYield: 100, ActualYield: 150}
	assert.Equal(t, 300.0, yield.AnnualProduction())

	// no cycle: default 3-month schedule
	noCycle := Product{Mode: ModeYield, EstimatedYield: 10}
	assert.Equal(t, 40.0, noCycle.AnnualProduction())
}
