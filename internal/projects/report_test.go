package projects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriprojet/agriprojet/internal/crops"
	"github.com/agriprojet/agriprojet/internal/projection"
)

func TestBuildReportIsPure(t *testing.T) {
	p := Project{Content: sampleContent()}
	catalog := crops.MustDefault()
	a := projection.DefaultAssumptions()

	first := BuildReport(p, catalog, a)
	second := BuildReport(p, catalog, a)
	assert.Equal(t, first, second)
}

func TestDerivedSalesMatchParcelMetrics(t *testing.T) {
	content := sampleContent()
	content.Parameters.DeriveSalesFromParcels = true
	p := Project{Content: content}

	report := BuildReport(p, crops.MustDefault(), projection.DefaultAssumptions())
	require.NotEmpty(t, report.Statements)
	tomato := report.Parcels[0].Metrics
	y1 := report.Statements[0]
	assert.InDelta(t, tomato.Revenue, y1.Revenue, 1e-6)
	assert.InDelta(t, tomato.TotalCosts, y1.CostOfSales, 1e-6)
	// the auto-calculated parcel expense never doubles the cost
	assert.Equal(t, 0.0, y1.OperatingExpenses)
	assert.True(t, report.Balanced())

	plan := EffectivePlan(content, crops.MustDefault().Lookup())
	assert.Len(t, plan.Products, 1)
	assert.Len(t, plan.Expenses, 1)
}

func TestProjectAssumptionsOverrideDefaults(t *testing.T) {
	content := sampleContent()
	custom := projection.Assumptions{RevenueGrowthPercent: 12, Years: 5}
	content.Parameters.Assumptions = &custom

	svc := NewService(newFakeStore(), nil, nil, ServiceConfig{})
	report, err := svc.build(Project{Content: content}, "h")
	require.NoError(t, err)
	assert.Len(t, report.Statements, 5)
	assert.Equal(t, 12.0, report.Assumptions.RevenueGrowthPercent)
	assert.Equal(t, projection.DefaultBalanceTolerance, report.Assumptions.BalanceTolerance)
	assert.Equal(t, "h", report.ContentHash)
}

func TestContentHashTracksChanges(t *testing.T) {
	a, err := ContentHash(sampleContent())
	require.NoError(t, err)
	b, err := ContentHash(sampleContent())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	changed := sampleContent()
	changed.Parcels[0].Surface = 3
	c, err := ContentHash(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
