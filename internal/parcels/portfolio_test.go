package parcels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioProfitabilityFromTotals(t *testing.T) {
	parcels := []Parcel{
		{ID: "a", Surface: 1, Costs: ManualCosts{Other: 100}, ExpectedYield: 150},
		{ID: "b", Surface: 1, Costs: ManualCosts{Other: 900}, ExpectedYield: 990},
	}
	a := MetricsFor(parcels[0], nil)
	b := MetricsFor(parcels[1], nil)
	require.InDelta(t, 50.0, a.ProfitabilityPercent, 1e-9)
	require.InDelta(t, 10.0, b.ProfitabilityPercent, 1e-9)

	agg := CalculatePortfolioMetrics(parcels, nil)
	assert.Equal(t, 1000.0, agg.TotalCosts)
	assert.Equal(t, 140.0, agg.TotalMargin)
	assert.InDelta(t, 14.0, agg.ProfitabilityPercent, 1e-9)
	naive := (a.ProfitabilityPercent + b.ProfitabilityPercent) / 2
	assert.NotEqual(t, naive, agg.ProfitabilityPercent)
	assert.Equal(t, 0.0, agg.MarginPerHectare)
}

func TestPortfolioCountsAndMeans(t *testing.T) {
	crop := testCrop()
	long := testCrop()
	long.ID = "manioc"
	long.CycleMonths = 14
	long.RestMonths = 0
	lookup := lookupOf(crop, long)

	parcels := []Parcel{
		{ID: "1", Surface: 1, CropID: "gombo"},
		{ID: "2", Surface: 2, CropID: "gombo"},
		{ID: "3", Surface: 1, CropID: "manioc"},
		{ID: "4", Surface: 1, CropID: "inconnu", ExpectedYield: 1200},
		{ID: "5", Surface: 0.5},
	}
	agg := CalculatePortfolioMetrics(parcels, lookup)

	assert.Equal(t, 5, agg.ParcelCount)
	assert.Equal(t, 5.5, agg.TotalSurface)
	assert.Equal(t, 3, agg.ParcellesActives)
	assert.Equal(t, 2, agg.CulturesDistinctes)
	// manioc has no cycle in a year and is left out of the means: (3+3+4+4)/4
	assert.Equal(t, 3.5, agg.CyclesPerYear)

	var sumPerCycle float64
	for _, p := range parcels {
		m := MetricsFor(p, lookup)
		if m.CyclesPerYear >= 1 {
			sumPerCycle += m.AverageRevenuePerCycle
		}
	}
	assert.InDelta(t, sumPerCycle/4, agg.AverageRevenuePerCycle, 1e-6)
	assert.InDelta(t, agg.Revenue/12, agg.AverageMonthlyRevenue, 1e-6)
}

func TestPortfolioEmpty(t *testing.T) {
	agg := CalculatePortfolioMetrics(nil, nil)
	assert.Equal(t, PortfolioMetrics{}, agg)
}

func TestPlantationMetrics(t *testing.T) {
	pl := Plantation{ID: "pl1", Name: "Bouaké Nord", DeclaredSurface: 3}
	parcels := []Parcel{
		{ID: "1", PlantationID: "pl1", Surface: 1, ExpectedYield: 100},
		{ID: "2", PlantationID: "pl1", Surface: 1.5, ExpectedYield: 100},
		{ID: "3", PlantationID: "pl2", Surface: 4, ExpectedYield: 100},
	}
	m := CalculatePlantationMetrics(pl, parcels, nil)
	assert.Equal(t, "pl1", m.PlantationID)
	assert.Equal(t, 2, m.ParcelCount)
	assert.Equal(t, 2.5, m.SurfaceUsed)
	assert.Equal(t, 0.5, m.SurfaceAvailable)
	assert.False(t, m.OverAllocated)
	assert.Equal(t, 250.0, m.Revenue)

	pl.DeclaredSurface = 2
	m = CalculatePlantationMetrics(pl, parcels, nil)
	assert.True(t, m.OverAllocated)
	assert.Equal(t, 0.0, m.SurfaceAvailable)
}
