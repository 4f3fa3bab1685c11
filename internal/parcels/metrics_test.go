package parcels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriprojet/agriprojet/internal/crops"
	_ "github.com/agriprojet/agriprojet/testing"
)

func testCrop() crops.Crop {
	return crops.Crop{
		ID:              "gombo",
		Name:            "Gombo",
		Category:        crops.CategoryMaraichage,
		CycleMonths:     3,
		RestMonths:      1,
		Unit:            crops.UnitKg,
		YieldPerHectare: 8000,
		Price:           crops.PriceRange{Min: 200, Max: 600, Average: 350},
		ProductionCosts: crops.ProductionCosts{Seeds: 60000, Fertilizer: 150000, Pesticides: 80000, Labor: 250000},
	}
}

func lookupOf(list ...crops.Crop) crops.Lookup {
	return func(id string) (crops.Crop, bool) {
		for _, c := range list {
			if c.ID == id {
				return c, true
			}
		}
		return crops.Crop{}, false
	}
}

func TestParcelWithoutCrop(t *testing.T) {
	p := Parcel{
		ID:            "p1",
		Surface:       2,
		Costs:         ManualCosts{Preparation: 100000, Inputs: 200000, Labor: 150000, Other: 50000},
		ExpectedYield: 400000,
	}
	m := CalculateParcelMetrics(p, nil)

	assert.Equal(t, 500000.0, m.TotalCosts)
	assert.Equal(t, 800000.0, m.Revenue)
	assert.Equal(t, 300000.0, m.TotalMargin)
	assert.Equal(t, 150000.0, m.MarginPerHectare)
	assert.InDelta(t, 60.0, m.ProfitabilityPercent, 1e-9)
	assert.InDelta(t, 800000.0/12, m.AverageMonthlyRevenue, 1e-9)
	assert.Equal(t, 4, m.CyclesPerYear)
	assert.Equal(t, 200000.0, m.AverageRevenuePerCycle)
}

func TestParcelWithCrop(t *testing.T) {
	crop := testCrop()
	p := Parcel{ID: "p1", Surface: 1.5, CropID: crop.ID, Costs: ManualCosts{Other: 999}}
	m := CalculateParcelMetrics(p, &crop)

	// 12 / (3+1) = 3 cycles; 8000 kg * 1.5 ha * 350 FCFA per cycle
	assert.Equal(t, 3, m.CyclesPerYear)
	assert.Equal(t, 540000.0*1.5, m.TotalCosts)
	assert.Equal(t, 8000*1.5*350*3.0, m.Revenue)
	assert.Equal(t, 8000*1.5*350.0, m.AverageRevenuePerCycle)
	assert.InDelta(t, (m.Revenue-m.TotalCosts)/1.5, m.MarginPerHectare, 1e-6)
}

func TestParcelZeroSurface(t *testing.T) {
	crop := testCrop()
	for _, c := range []*crops.Crop{nil, &crop} {
		p := Parcel{ID: "p0", Surface: 0, ExpectedYield: 1000, CropID: "gombo"}
		m := CalculateParcelMetrics(p, c)
		assert.Equal(t, 0.0, m.Revenue)
		assert.Equal(t, 0.0, m.MarginPerHectare)
	}
}

func TestParcelZeroCostProfitability(t *testing.T) {
	m := CalculateParcelMetrics(Parcel{ID: "p", Surface: 1, ExpectedYield: 5000}, nil)
	assert.Equal(t, 0.0, m.TotalCosts)
	assert.Equal(t, 0.0, m.ProfitabilityPercent)
}

func TestParcelCropLongerThanYear(t *testing.T) {
	crop := testCrop()
	crop.CycleMonths = 18
	m := CalculateParcelMetrics(Parcel{ID: "p", Surface: 1, CropID: crop.ID}, &crop)
	assert.Equal(t, 0, m.CyclesPerYear)
	assert.Equal(t, 0.0, m.Revenue)
	assert.Equal(t, 0.0, m.AverageRevenuePerCycle)
}

func TestDanglingCropIsNoCrop(t *testing.T) {
	p := Parcel{ID: "p", Surface: 2, CropID: "disparu", ExpectedYield: 100, Costs: ManualCosts{Labor: 50}}
	assert.Nil(t, ResolveCrop(p, lookupOf(testCrop())))
	assert.Nil(t, ResolveCrop(p, nil))

	dangling := MetricsFor(p, lookupOf(testCrop()))
	p.CropID = ""
	none := MetricsFor(p, lookupOf(testCrop()))
	assert.Equal(t, none, dangling)
}

func TestMetricsAreIdempotent(t *testing.T) {
	crop := testCrop()
	p := Parcel{ID: "p", Surface: 3.3, CropID: crop.ID}
	assert.Equal(t, CalculateParcelMetrics(p, &crop), CalculateParcelMetrics(p, &crop))
}

func TestAssignCropKeepsHistory(t *testing.T) {
	t0 := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	t1 := t0.AddDate(0, 4, 0)
	p := Parcel{ID: "p"}
	p.AssignCrop("tomate", t0)
	require.Empty(t, p.History)

	p.AssignCrop("tomate", t1)
	require.Empty(t, p.History)

	p.AssignCrop("mais", t1)
	require.Len(t, p.History, 1)
	assert.Equal(t, CropAssignment{CropID: "tomate", AssignedAt: t0, RemovedAt: t1}, p.History[0])
	assert.Equal(t, "mais", p.CropID)

	p.AssignCrop("", t1.AddDate(0, 1, 0))
	assert.Len(t, p.History, 2)
	assert.False(t, p.HasCrop())
	assert.True(t, p.CropAssigned.IsZero())
}

func TestAdvanceLifecycle(t *testing.T) {
	p := Parcel{Status: StatusPrepared}
	assert.Equal(t, StatusPlanted, p.Advance())
	assert.Equal(t, StatusGrowing, p.Advance())
	assert.Equal(t, StatusHarvested, p.Advance())
	assert.Equal(t, StatusPrepared, p.Advance())

	unknown := Parcel{Status: "semis"}
	assert.Equal(t, StatusPrepared, unknown.Advance())
}
