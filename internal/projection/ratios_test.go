package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriprojet/agriprojet/internal/crops"
	"github.com/agriprojet/agriprojet/internal/cycles"
	"github.com/agriprojet/agriprojet/internal/parcels"
)

func TestComputeBreakeven(t *testing.T) {
	s := YearStatement{Year: 1, Revenue: 1000, CostOfSales: 400, OperatingExpenses: 100, Payroll: 150, Depreciation: 30, InterestExpense: 20}
	b := ComputeBreakeven(s)
	require.True(t, b.Reachable)
	assert.Equal(t, 300.0, b.FixedCosts)
	assert.InDelta(t, 0.6, b.ContributionRate, 1e-9)
	assert.InDelta(t, 500.0, b.BreakevenRevenue, 1e-9)
	assert.InDelta(t, 500.0, b.SafetyMargin, 1e-9)
	assert.InDelta(t, 50.0, b.SafetyMarginPercent, 1e-9)
	assert.InDelta(t, 6.0, b.BreakevenMonth, 1e-9)
}

func TestBreakevenUnreachable(t *testing.T) {
	b := ComputeBreakeven(YearStatement{Revenue: 1000, CostOfSales: 1200, Payroll: 10})
	assert.False(t, b.Reachable)
	assert.Equal(t, 0.0, b.BreakevenRevenue)

	b = ComputeBreakeven(YearStatement{Payroll: 10})
	assert.False(t, b.Reachable)
	assert.Equal(t, 10.0, b.FixedCosts)
}

func TestComputeRatios(t *testing.T) {
	s := YearStatement{Year: 1, Revenue: 2000, GrossMargin: 1000, OperatingResult: 500, NetResult: 400}
	bs := BalanceSheet{Equity: 3000, RetainedEarnings: 1000, LongTermDebt: 2000, Cash: 900, Receivables: 100, CurrentLiabilities: 500}
	r := ComputeRatios(s, bs)
	assert.Equal(t, 50.0, r.GrossMarginPercent)
	assert.Equal(t, 25.0, r.OperatingMarginPercent)
	assert.Equal(t, 20.0, r.NetMarginPercent)
	assert.Equal(t, 10.0, r.ReturnOnEquityPercent)
	assert.Equal(t, 0.5, r.DebtToEquity)
	assert.Equal(t, 2.0, r.CurrentRatio)

	zero := ComputeRatios(YearStatement{}, BalanceSheet{Equity: -10})
	assert.Equal(t, Ratios{}, zero)
}

func TestMonthlyCashFlowHarvests(t *testing.T) {
	plan := Plan{
		Products: []Product{{ID: "g", Name: "Gombo", Mode: ModeYield, CycleMonths: 4, EstimatedYield: 100, PricePerUnit: 10}},
		Expenses: []OperatingExpense{{ID: "e", Name: "Loyer", MonthlyAmount: 500}},
	}
	cf := MonthlyCashFlow(plan, DefaultAssumptions(), 1000, 1)
	require.Len(t, cf.Months, 12)

	assert.Equal(t, 1000.0, cf.Months[3].Receipts)
	assert.Equal(t, 1000.0, cf.Months[7].Receipts)
	assert.Equal(t, 1000.0, cf.Months[11].Receipts)
	assert.Equal(t, 0.0, cf.Months[0].Receipts)
	assert.Equal(t, 3000.0, cf.TotalReceipts)
	assert.Equal(t, 6000.0, cf.TotalOutflows)

	assert.Equal(t, -2500.0, cf.LowestCash)
	assert.Equal(t, 11, cf.LowestMonth)
	assert.Equal(t, 9, cf.NegativeMonths)
	assert.Equal(t, -2000.0, cf.ClosingCash)
}

func TestMonthlyCashFlowUsesCashFlowGrowth(t *testing.T) {
	plan := Plan{Products: []Product{{ID: "p", Name: "p", Mode: ModeMonthly, UnitsPerMonth: 1, PricePerUnit: 100}}}
	a := Assumptions{RevenueGrowthPercent: 5, CashFlowGrowthPercent: 10}
	cf := MonthlyCashFlow(plan, a, 0, 2)
	assert.InDelta(t, 110.0, cf.Months[0].Receipts, 1e-9)
	assert.Equal(t, 2, cf.Year)
}

func TestSalesLineFromParcelMatchesParcelMetrics(t *testing.T) {
	crop := crops.Crop{
		ID: "gombo", Name: "Gombo", Category: crops.CategoryMaraichage, Unit: crops.UnitKg,
		CycleMonths: 3, RestMonths: 1, YieldPerHectare: 1000,
		Price:           crops.PriceRange{Min: 150, Max: 250, Average: 200},
		ProductionCosts: crops.ProductionCosts{Seeds: 50000, Fertilizer: 100000, Pesticides: 50000, Labor: 100000},
	}
	parcel := parcels.Parcel{ID: "p1", Name: "Bas-fond", Surface: 2, CropID: "gombo"}

	line, ok := SalesLineFromParcel(parcel, &crop)
	require.True(t, ok)
	assert.Equal(t, ModeYield, line.Mode)
	assert.Equal(t, 2000.0, line.EstimatedYield)
	assert.Equal(t, 6000.0, line.AnnualProduction())
	assert.Equal(t, 100.0, line.CostPerUnit)

	m := parcels.CalculateParcelMetrics(parcel, &crop)
	assert.Equal(t, m.Revenue, Revenue([]Product{line}, 0, 1))
	assert.Equal(t, m.TotalCosts, CostOfSales([]Product{line}, 0, 1))

	_, ok = SalesLineFromParcel(parcel, nil)
	assert.False(t, ok)
}

func TestSalesLineFromParcelWithoutCycleLength(t *testing.T) {
	catalog, err := crops.NewCatalog(crops.Crop{
		ID: "perenne", Name: "Pérenne", Category: crops.CategoryVivrier, Unit: crops.UnitKg,
		YieldPerHectare: 1000,
		Price:           crops.PriceRange{Min: 100, Max: 100, Average: 100},
	})
	require.NoError(t, err)
	list := []parcels.Parcel{{ID: "p1", Name: "Plateau", Surface: 1, CropID: "perenne"}}

	crop, ok := catalog.Lookup()("perenne")
	require.True(t, ok)
	m := parcels.CalculateParcelMetrics(list[0], &crop)
	assert.Equal(t, 1, m.CyclesPerYear)
	assert.Equal(t, 100000.0, m.Revenue)

	products, _ := DerivePlanFromParcels(list, catalog.Lookup())
	require.Len(t, products, 1)
	assert.Equal(t, 1, products[0].Schedule().PerYear())
	assert.Equal(t, m.Revenue, Revenue(products, 0, 1))
	assert.InDelta(t, m.TotalCosts, CostOfSales(products, 0, 1), 1e-6)

	flow := MonthlyCashFlow(Plan{Products: products}, DefaultAssumptions(), 0, 1)
	var receipts float64
	for _, month := range flow.Months {
		receipts += month.Receipts
	}
	assert.Equal(t, m.Revenue, receipts)
}

func TestUnlinkedProductUsesDefaultCycle(t *testing.T) {
	p := Product{ID: "jus", Name: "Jus", Mode: ModeYield, EstimatedYield: 10, PricePerUnit: 1}
	assert.Equal(t, cycles.Default, p.Schedule())
	assert.Equal(t, 40.0, p.AnnualProduction())
}

func TestDerivePlanFromParcels(t *testing.T) {
	catalog := crops.MustDefault()
	list := []parcels.Parcel{
		{ID: "1", Name: "Nord", Surface: 1, CropID: "tomate"},
		{ID: "2", Name: "Sud", Surface: 1, CropID: "disparu"},
		{ID: "3", Name: "Est", Surface: 1},
	}
	products, expenses := DerivePlanFromParcels(list, catalog.Lookup())
	require.Len(t, products, 1)
	require.Len(t, expenses, 1)
	assert.True(t, expenses[0].AutoCalculated)
	assert.Equal(t, AutoExpenseCategory, expenses[0].Category)

	plan := Plan{
		Products: []Product{{ID: "parcel-1", Name: "stale"}, {ID: "manual", Name: "Jus"}},
		Expenses: []OperatingExpense{{ID: "rent", Name: "Loyer", MonthlyAmount: 100}},
	}
	merged := MergeDerived(plan, products, expenses)
	require.Len(t, merged.Products, 2)
	assert.Equal(t, "manual", merged.Products[0].ID)
	assert.Equal(t, "parcel-1", merged.Products[1].ID)
	assert.NotEqual(t, "stale", merged.Products[1].Name)
	assert.Len(t, merged.Expenses, 2)
	// derived expenses never reach the operating expense total
	assert.Equal(t, 1200.0, OperatingExpenses(merged.Expenses, 0, 1))
}
