package parcels

import (
	"github.com/agriprojet/agriprojet/internal/crops"
	"github.com/agriprojet/agriprojet/internal/cycles"
)

// Metrics are the derived financials of a single parcel over one year.
type Metrics struct {
	TotalCosts             float64 `json:"totalCosts"`
	Revenue                float64 `json:"revenue"`
	MarginPerHectare       float64 `json:"marginPerHectare"`
	TotalMargin            float64 `json:"totalMargin"`
	ProfitabilityPercent   float64 `json:"profitabilityPercent"`
	AverageMonthlyRevenue  float64 `json:"averageMonthlyRevenue"`
	AverageRevenuePerCycle float64 `json:"averageRevenuePerCycle"`
	CyclesPerYear          int     `json:"cyclesPerYear"`
}

// ResolveCrop returns the parcel's crop, or nil when none is set or the id no
// longer resolves.
func ResolveCrop(p Parcel, lookup crops.Lookup) *crops.Crop {
	if !p.HasCrop() || lookup == nil {
		return nil
	}
	crop, ok := lookup(p.CropID)
	if !ok {
		return nil
	}
	return &crop
}

// CalculateParcelMetrics computes cost, revenue and margins for one parcel.
// Without a crop the manual costs and expected yield are used; with a crop the
// catalog costs and yield are scaled by surface and cycles per year.
func CalculateParcelMetrics(p Parcel, crop *crops.Crop) Metrics {
	var m Metrics
	surface := nonNegative(p.Surface)

	if crop == nil {
		m.CyclesPerYear = cycles.Default.PerYear()
		m.TotalCosts = p.Costs.Total()
		m.Revenue = p.ExpectedYield * surface
	} else {
		m.CyclesPerYear = crop.CyclesPerYear()
		m.TotalCosts = crop.ProductionCosts.PerHectare() * surface
		perCycle := crop.YieldPerHectare * surface * crop.Price.Average
		m.Revenue = perCycle * float64(m.CyclesPerYear)
	}

	m.TotalMargin = m.Revenue - m.TotalCosts
	m.MarginPerHectare = safeDiv(m.TotalMargin, surface)
	m.ProfitabilityPercent = safeDiv(m.TotalMargin*100, m.TotalCosts)
	m.AverageMonthlyRevenue = m.Revenue / cycles.MonthsPerYear
	m.AverageRevenuePerCycle = safeDiv(m.Revenue, float64(m.CyclesPerYear))
	return m
}

// MetricsFor resolves the parcel crop and computes its metrics.
func MetricsFor(p Parcel, lookup crops.Lookup) Metrics {
	return CalculateParcelMetrics(p, ResolveCrop(p, lookup))
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
