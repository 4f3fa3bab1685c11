// Package projection projects yearly statements, balance sheets, ratios and a
// monthly cash-flow plan from a business plan. Every function is pure.
package projection

import (
	"strings"

	"github.com/agriprojet/agriprojet/internal/cycles"
)

// ProductionMode tells how a sales line derives its yearly volume.
type ProductionMode string

const (
	// ModeMonthly sells a fixed number of units every month.
	ModeMonthly ProductionMode = "monthly"
	// ModeYield sells a per-cycle harvest a number of times per year.
	ModeYield ProductionMode = "yield"
)

// Valid reports whether m is a known production mode.
func (m ProductionMode) Valid() bool {
	return m == ModeMonthly || m == ModeYield
}

// Product is a sales forecast line.
type Product struct {
	ID             string         `json:"id" validate:"required"`
	Name           string         `json:"name" validate:"required,max=120"`
	Mode           ProductionMode `json:"mode"`
	UnitsPerMonth  float64        `json:"unitsPerMonth" validate:"gte=0"`
	PricePerUnit   float64        `json:"pricePerUnit" validate:"gte=0"`
	CostPerUnit    float64        `json:"costPerUnit" validate:"gte=0"`
	CropID         string         `json:"cropId,omitempty"`
	ParcelID       string         `json:"parcelId,omitempty"`
	CycleMonths    int            `json:"cycleMonths" validate:"gte=0"`
	RestMonths     int            `json:"periodeRepos" validate:"gte=0"`
	EstimatedYield float64        `json:"estimatedYield" validate:"gte=0"`
	ActualYield    float64        `json:"actualYield" validate:"gte=0"`
}

func (p Product) yieldBased() bool {
	switch p.Mode {
	case ModeYield:
		return true
	case ModeMonthly:
		return false
	}
	return p.UnitsPerMonth == 0
}

// Schedule returns the product cycle. A line linked to a crop keeps the crop's
// schedule as is so it annualises exactly like the parcel it came from; only
// unlinked lines fall back to the default cycle.
func (p Product) Schedule() cycles.Schedule {
	s := cycles.Schedule{CycleMonths: p.CycleMonths, RestMonths: p.RestMonths}
	if s.CycleMonths <= 0 && p.CropID == "" {
		s.CycleMonths = cycles.DefaultCycleMonths
	}
	if s.RestMonths < 0 {
		s.RestMonths = cycles.DefaultRestMonths
	}
	return s
}

// CycleYield is the harvest of one cycle, preferring the measured yield.
func (p Product) CycleYield() float64 {
	if p.ActualYield > 0 {
		return p.ActualYield
	}
	return p.EstimatedYield
}

// AnnualProduction is the number of units sold in a base year.
func (p Product) AnnualProduction() float64 {
	if !p.yieldBased() {
		return p.UnitsPerMonth * cycles.MonthsPerYear
	}
	return cycles.AnnualProduction(p.CycleYield(), p.Schedule().PerYear())
}

// OperatingExpense is a recurring monthly charge. Auto-calculated entries are
// synthesised from parcel costs and are never part of the manual expense total.
type OperatingExpense struct {
	ID             string  `json:"id" validate:"required"`
	Name           string  `json:"name" validate:"required,max=120"`
	Category       string  `json:"category,omitempty"`
	MonthlyAmount  float64 `json:"monthlyAmount" validate:"gte=0"`
	AutoCalculated bool    `json:"autoCalculated"`
}

// Employee is a payroll line covering Count identical positions.
type Employee struct {
	Position          string  `json:"position" validate:"required"`
	Count             int     `json:"count" validate:"gte=0"`
	MonthlySalary     float64 `json:"monthlySalary" validate:"gte=0"`
	ChargeRatePercent float64 `json:"chargeRatePercent" validate:"gte=0,lte=100"`
}

// Payroll aggregates the staff of the business.
type Payroll struct {
	Employees []Employee `json:"employees" validate:"dive"`
}

// MonthlySalaries is the gross monthly wage bill.
func (p Payroll) MonthlySalaries() float64 {
	var total float64
	for _, e := range p.Employees {
		total += float64(e.Count) * e.MonthlySalary
	}
	return total
}

// MonthlyCharges is the monthly employer social charge.
func (p Payroll) MonthlyCharges() float64 {
	var total float64
	for _, e := range p.Employees {
		total += float64(e.Count) * e.MonthlySalary * e.ChargeRatePercent / 100
	}
	return total
}

// Headcount is the number of employees.
func (p Payroll) Headcount() int {
	var n int
	for _, e := range p.Employees {
		n += e.Count
	}
	return n
}

// FixedAsset is equipment bought at the start of the plan and depreciated
// linearly.
type FixedAsset struct {
	ID                      string  `json:"id" validate:"required"`
	Name                    string  `json:"name" validate:"required,max=120"`
	Category                string  `json:"category,omitempty"`
	Quantity                float64 `json:"quantity" validate:"gte=0"`
	UnitPrice               float64 `json:"unitPrice" validate:"gte=0"`
	DepreciationRatePercent float64 `json:"depreciationRatePercent" validate:"gte=0,lte=100"`
}

// GrossValue is quantity times unit price.
func (a FixedAsset) GrossValue() float64 {
	return a.Quantity * a.UnitPrice
}

// AnnualDepreciation is the flat yearly charge.
func (a FixedAsset) AnnualDepreciation() float64 {
	return a.GrossValue() * a.DepreciationRatePercent / 100
}

// NetBookValue is the value after the given number of years, never below 0.
func (a FixedAsset) NetBookValue(years int) float64 {
	if years < 0 {
		years = 0
	}
	return clampZero(a.GrossValue() - float64(years)*a.AnnualDepreciation())
}

// DepreciationCharge is the charge booked in the given year; it stops once the
// asset is fully depreciated.
func (a FixedAsset) DepreciationCharge(year int) float64 {
	if year < 1 {
		return 0
	}
	return a.NetBookValue(year-1) - a.NetBookValue(year)
}

// FundingType classifies funding sources.
type FundingType string

const (
	FundingApport     FundingType = "apport"
	FundingEmprunt    FundingType = "emprunt"
	FundingSubvention FundingType = "subvention"
)

// Valid reports whether t is a known funding type.
func (t FundingType) Valid() bool {
	switch t {
	case FundingApport, FundingEmprunt, FundingSubvention:
		return true
	}
	return false
}

// FundingSource is money brought into the business at the start of the plan.
type FundingSource struct {
	ID                  string      `json:"id" validate:"required"`
	Name                string      `json:"name" validate:"required,max=120"`
	Type                FundingType `json:"type" validate:"required"`
	Amount              float64     `json:"amount" validate:"gte=0"`
	InterestRatePercent float64     `json:"interestRatePercent" validate:"gte=0,lte=100"`
	DurationYears       int         `json:"durationYears" validate:"gte=0"`
}

func (f FundingSource) isLoan() bool {
	return FundingType(strings.ToLower(string(f.Type))) == FundingEmprunt
}

func (f FundingSource) isEquity() bool {
	switch FundingType(strings.ToLower(string(f.Type))) {
	case FundingApport, FundingSubvention:
		return true
	}
	return false
}

// InterestBearing reports whether the source is a loan with a positive rate.
func (f FundingSource) InterestBearing() bool {
	return f.isLoan() && f.InterestRatePercent > 0
}

func (f FundingSource) annualRepayment() float64 {
	if !f.isLoan() || f.DurationYears <= 0 {
		return 0
	}
	return f.Amount / float64(f.DurationYears)
}

// Outstanding is the loan principal left after the given number of years. A
// loan without a duration is never repaid within the plan.
func (f FundingSource) Outstanding(years int) float64 {
	if !f.isLoan() {
		return 0
	}
	if years < 0 {
		years = 0
	}
	return clampZero(f.Amount - float64(years)*f.annualRepayment())
}

// Repayment is the principal repaid during the given year.
func (f FundingSource) Repayment(year int) float64 {
	if year < 1 {
		return 0
	}
	return f.Outstanding(year-1) - f.Outstanding(year)
}

// Interest is the flat interest charged in the given year: principal times
// rate, for as long as some principal is outstanding at the start of the year.
func (f FundingSource) Interest(year int) float64 {
	if year < 1 || !f.InterestBearing() || f.Outstanding(year-1) <= 0 {
		return 0
	}
	return f.Amount * f.InterestRatePercent / 100
}

// Plan gathers the collections a projection is computed from.
type Plan struct {
	Products    []Product          `json:"products" validate:"dive"`
	Expenses    []OperatingExpense `json:"expenses" validate:"dive"`
	Payroll     Payroll            `json:"payroll"`
	FixedAssets []FixedAsset       `json:"fixedAssets" validate:"dive"`
	Funding     []FundingSource    `json:"funding" validate:"dive"`
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
