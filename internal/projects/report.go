package projects

import (
	"github.com/agriprojet/agriprojet/internal/crops"
	"github.com/agriprojet/agriprojet/internal/parcels"
	"github.com/agriprojet/agriprojet/internal/projection"
)

// EffectivePlan is the plan the projections run on: the stored plan, plus the
// parcel-derived sales lines when the project asks for them.
func EffectivePlan(content Content, lookup crops.Lookup) projection.Plan {
	if !content.Parameters.DeriveSalesFromParcels {
		return content.Plan
	}
	products, expenses := projection.DerivePlanFromParcels(content.Parcels, lookup)
	return projection.MergeDerived(content.Plan, products, expenses)
}

// BuildReport computes every derived figure of a project. It performs no I/O.
func BuildReport(p Project, catalog *crops.Catalog, a projection.Assumptions) Report {
	a = a.Normalised()
	lookup := catalog.Lookup()

	report := Report{
		ProjectID:   p.ID,
		Assumptions: a,
		Portfolio:   parcels.CalculatePortfolioMetrics(p.Parcels, lookup),
	}

	for _, pl := range p.Plantations {
		report.Plantations = append(report.Plantations, parcels.CalculatePlantationMetrics(pl, p.Parcels, lookup))
	}
	for _, parcel := range p.Parcels {
		crop := parcels.ResolveCrop(parcel, lookup)
		line := ParcelLine{
			ParcelID:     parcel.ID,
			Name:         parcel.Name,
			PlantationID: parcel.PlantationID,
			Surface:      parcel.Surface,
			Status:       parcel.Status,
			Metrics:      parcels.CalculateParcelMetrics(parcel, crop),
		}
		if crop != nil {
			line.CropID = crop.ID
			line.CropName = crop.Name
		}
		report.Parcels = append(report.Parcels, line)
	}

	plan := EffectivePlan(p.Content, lookup)
	report.Statements = projection.ProjectYears(plan, a)
	report.BalanceSheets = projection.GenerateBalanceSheet(report.Statements, p.Parameters.OpeningCash, plan.Funding, a.BalanceTolerance)
	for i, s := range report.Statements {
		report.Ratios = append(report.Ratios, projection.ComputeRatios(s, report.BalanceSheets[i]))
		report.Breakeven = append(report.Breakeven, projection.ComputeBreakeven(s))
	}
	report.CashFlow = projection.MonthlyCashFlow(plan, a, p.Parameters.OpeningCash, 1)
	return report
}
