// Package cycles derives how many production cycles fit in a year and annualises
// per-cycle quantities. Parcel metrics, sales lines and the cash-flow plan all go
// through this package so the formula and its defaults live in one place.
package cycles

// MonthsPerYear is the length of the projection year.
const MonthsPerYear = 12

const (
	// DefaultCycleMonths applies when nothing defines a cycle length.
	DefaultCycleMonths = 3
	// DefaultRestMonths applies whenever a rest period is missing.
	DefaultRestMonths = 0
)

// Schedule is a crop cycle length plus the fallow period that follows it.
type Schedule struct {
	CycleMonths int `json:"cycleMonths"`
	RestMonths  int `json:"periodeRepos"`
}

// Default is the schedule assumed for parcels and products without a crop.
var Default = Schedule{CycleMonths: DefaultCycleMonths, RestMonths: DefaultRestMonths}

// PerYear returns floor(12 / (cycleMonths + restMonths)). Negative inputs count as
// zero and an empty schedule falls back to one cycle per year. A schedule longer
// than a year yields 0.
func PerYear(cycleMonths, restMonths int) int {
	if cycleMonths < 0 {
		cycleMonths = 0
	}
	if restMonths < 0 {
		restMonths = 0
	}
	span := cycleMonths + restMonths
	if span == 0 {
		return 1
	}
	return MonthsPerYear / span
}

// PerYear reports the number of cycles per year for the schedule.
func (s Schedule) PerYear() int {
	return PerYear(s.CycleMonths, s.RestMonths)
}

// AnnualProduction scales a per-cycle yield to a yearly quantity.
func AnnualProduction(cycleYield float64, cyclesPerYear int) float64 {
	if cyclesPerYear <= 0 {
		return 0
	}
	return cycleYield * float64(cyclesPerYear)
}

// HarvestMonths lists the zero-based months of the year in which a cycle ends,
// assuming the first planting happens in startMonth.
func HarvestMonths(startMonth, cycleMonths, restMonths int) []int {
	n := PerYear(cycleMonths, restMonths)
	if n == 0 {
		return nil
	}
	if startMonth < 0 {
		startMonth = 0
	}
	if restMonths < 0 {
		restMonths = 0
	}
	if cycleMonths < 0 {
		cycleMonths = 0
	}
	if cycleMonths+restMonths == 0 {
		// one undated cycle per year; book it at the end of the year
		return []int{MonthsPerYear - 1}
	}
	months := make([]int, 0, n)
	month := startMonth
	for i := 0; i < n; i++ {
		span := cycleMonths
		if span == 0 {
			// without a growing period the harvest closes each rest period
			span = restMonths
		}
		months = append(months, (month+span-1)%MonthsPerYear)
		month += cycleMonths + restMonths
	}
	return months
}
