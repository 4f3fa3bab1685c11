package parcels

import (
	"strings"

	"github.com/agriprojet/agriprojet/internal/crops"
	"github.com/agriprojet/agriprojet/internal/cycles"
)

// PortfolioMetrics aggregates parcel metrics. MarginPerHectare has no meaning at
// this level and is always 0; ProfitabilityPercent is recomputed from the
// summed totals.
type PortfolioMetrics struct {
	TotalCosts             float64 `json:"totalCosts"`
	Revenue                float64 `json:"revenue"`
	MarginPerHectare       float64 `json:"marginPerHectare"`
	TotalMargin            float64 `json:"totalMargin"`
	ProfitabilityPercent   float64 `json:"profitabilityPercent"`
	AverageMonthlyRevenue  float64 `json:"averageMonthlyRevenue"`
	AverageRevenuePerCycle float64 `json:"averageRevenuePerCycle"`
	CyclesPerYear          float64 `json:"cyclesPerYear"`
	ParcellesActives       int     `json:"parcellesActives"`
	CulturesDistinctes     int     `json:"culturesDistinctes"`
	ParcelCount            int     `json:"parcelCount"`
	TotalSurface           float64 `json:"totalSurface"`
}

// CalculatePortfolioMetrics sums the metrics of every parcel. Parcels whose crop
// id does not resolve count as parcels without a crop.
func CalculatePortfolioMetrics(parcels []Parcel, lookup crops.Lookup) PortfolioMetrics {
	var (
		out          PortfolioMetrics
		cycleParcels int
		cycleSum     int
		perCycleSum  float64
		distinct     = make(map[string]struct{})
	)
	for _, p := range parcels {
		crop := ResolveCrop(p, lookup)
		m := CalculateParcelMetrics(p, crop)
		out.TotalCosts += m.TotalCosts
		out.Revenue += m.Revenue
		out.TotalMargin += m.TotalMargin
		out.TotalSurface += nonNegative(p.Surface)
		out.ParcelCount++

		if m.CyclesPerYear >= 1 {
			cycleParcels++
			cycleSum += m.CyclesPerYear
			perCycleSum += m.AverageRevenuePerCycle
		}
		if crop != nil {
			out.ParcellesActives++
			distinct[strings.ToLower(crop.ID)] = struct{}{}
		}
	}
	out.ProfitabilityPercent = safeDiv(out.TotalMargin*100, out.TotalCosts)
	out.AverageMonthlyRevenue = out.Revenue / cycles.MonthsPerYear
	if cycleParcels > 0 {
		out.CyclesPerYear = float64(cycleSum) / float64(cycleParcels)
		out.AverageRevenuePerCycle = perCycleSum / float64(cycleParcels)
	}
	out.CulturesDistinctes = len(distinct)
	return out
}

// ForPlantation returns the parcels attached to the given plantation.
func ForPlantation(parcels []Parcel, plantationID string) []Parcel {
	var out []Parcel
	for _, p := range parcels {
		if p.PlantationID == plantationID {
			out = append(out, p)
		}
	}
	return out
}

// PlantationMetrics extends the portfolio aggregate with surface usage.
type PlantationMetrics struct {
	PortfolioMetrics
	PlantationID     string  `json:"plantationId"`
	SurfaceUsed      float64 `json:"surfaceUsed"`
	SurfaceAvailable float64 `json:"surfaceAvailable"`
	OverAllocated    bool    `json:"overAllocated"`
}

// CalculatePlantationMetrics aggregates the parcels of one plantation.
func CalculatePlantationMetrics(pl Plantation, parcels []Parcel, lookup crops.Lookup) PlantationMetrics {
	own := ForPlantation(parcels, pl.ID)
	agg := CalculatePortfolioMetrics(own, lookup)
	out := PlantationMetrics{
		PortfolioMetrics: agg,
		PlantationID:     pl.ID,
		SurfaceUsed:      agg.TotalSurface,
	}
	declared := nonNegative(pl.DeclaredSurface)
	out.SurfaceAvailable = nonNegative(declared - agg.TotalSurface)
	out.OverAllocated = agg.TotalSurface > declared
	return out
}
