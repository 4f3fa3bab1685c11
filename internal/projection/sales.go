package projection

import (
	"github.com/agriprojet/agriprojet/internal/crops"
	"github.com/agriprojet/agriprojet/internal/cycles"
	"github.com/agriprojet/agriprojet/internal/parcels"
)

// AutoExpenseCategory tags the expenses synthesised from parcel costs.
const AutoExpenseCategory = "parcelle"

// WithCrop fills the mode, cycle and price a sales line leaves empty from its
// crop.
func (p Product) WithCrop(crop crops.Crop) Product {
	if p.CropID == "" {
		p.CropID = crop.ID
	}
	if p.Mode == "" {
		p.Mode = ModeYield
	}
	if p.CycleMonths <= 0 {
		p.CycleMonths = crop.CycleMonths
		p.RestMonths = crop.RestMonths
	}
	if p.PricePerUnit == 0 {
		p.PricePerUnit = crop.Price.Average
	}
	return p
}

// SalesLineFromParcel turns a cultivated parcel into a yield-mode sales line.
// The unit cost spreads the parcel's yearly costs over its annual production
// so that cost of sales equals the parcel cost. It reports false when the
// parcel has no crop.
func SalesLineFromParcel(parcel parcels.Parcel, crop *crops.Crop) (Product, bool) {
	if crop == nil {
		return Product{}, false
	}
	metrics := parcels.CalculateParcelMetrics(parcel, crop)
	line := Product{
		ID:             "parcel-" + parcel.ID,
		Name:           crop.Name + " - " + parcel.Name,
		ParcelID:       parcel.ID,
		EstimatedYield: crop.YieldPerHectare * clampZero(parcel.Surface),
	}.WithCrop(*crop)
	line.CostPerUnit = safeDiv(metrics.TotalCosts, line.AnnualProduction())
	return line, true
}

// DerivePlanFromParcels builds the sales lines of every cultivated parcel and
// one auto-calculated expense per parcel carrying its yearly cost. The
// expenses are informational: projections never add them to operating
// expenses since the same cost flows through cost of sales.
func DerivePlanFromParcels(list []parcels.Parcel, lookup crops.Lookup) ([]Product, []OperatingExpense) {
	var (
		products []Product
		expenses []OperatingExpense
	)
	for _, parcel := range list {
		crop := parcels.ResolveCrop(parcel, lookup)
		line, ok := SalesLineFromParcel(parcel, crop)
		if !ok {
			continue
		}
		products = append(products, line)
		expenses = append(expenses, OperatingExpense{
			ID:             "auto-" + parcel.ID,
			Name:           "Coûts de production - " + parcel.Name,
			Category:       AutoExpenseCategory,
			MonthlyAmount:  parcels.CalculateParcelMetrics(parcel, crop).TotalCosts / cycles.MonthsPerYear,
			AutoCalculated: true,
		})
	}
	return products, expenses
}

// MergeDerived appends derived sales lines and expenses to a plan, replacing
// any previously derived entries for the same parcels.
func MergeDerived(plan Plan, products []Product, expenses []OperatingExpense) Plan {
	derived := make(map[string]struct{}, len(products)+len(expenses))
	for _, p := range products {
		derived[p.ID] = struct{}{}
	}
	for _, e := range expenses {
		derived[e.ID] = struct{}{}
	}

	out := plan
	out.Products = make([]Product, 0, len(plan.Products)+len(products))
	for _, p := range plan.Products {
		if _, ok := derived[p.ID]; !ok {
			out.Products = append(out.Products, p)
		}
	}
	out.Products = append(out.Products, products...)

	out.Expenses = make([]OperatingExpense, 0, len(plan.Expenses)+len(expenses))
	for _, e := range plan.Expenses {
		if _, ok := derived[e.ID]; !ok {
			out.Expenses = append(out.Expenses, e)
		}
	}
	out.Expenses = append(out.Expenses, expenses...)
	return out
}
