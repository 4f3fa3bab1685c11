package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agriprojet/agriprojet/internal/crops"
	"github.com/agriprojet/agriprojet/internal/parcels"
	"github.com/agriprojet/agriprojet/internal/projection"
	"github.com/agriprojet/agriprojet/internal/projects"
)

func sampleDocument() Document {
	content := projects.Content{
		Company: projects.Company{Name: "Ferme <Kouassi>", Location: "Bouaké"},
		Parcels: []parcels.Parcel{
			{ID: "p1", Name: "Nord", Surface: 1, CropID: "tomate"},
			{ID: "p2", Name: "Sud", Surface: 0.5},
		},
		Plan: projection.Plan{
			FixedAssets: []projection.FixedAsset{{ID: "a", Name: "Pompe", Quantity: 1, UnitPrice: 100000, DepreciationRatePercent: 5}},
		},
		Parameters: projects.Parameters{OpeningCash: 25000, DeriveSalesFromParcels: true},
	}
	p := projects.Project{Content: content}
	report := projects.BuildReport(p, crops.MustDefault(), projection.DefaultAssumptions())
	return NewDocument(p, report, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
}

func TestFormatFCFA(t *testing.T) {
	assert.Equal(t, "1 234 567 FCFA", FormatFCFA(1234567.4))
	assert.Equal(t, "1 235 FCFA", FormatFCFA(1234.5))
	assert.Equal(t, "0 FCFA", FormatFCFA(0))
	assert.True(t, strings.HasSuffix(FormatFCFA(-2500), "2 500 FCFA"))
	assert.Equal(t, int64(-3), RoundFCFA(-2.5))
	assert.Equal(t, "12,5 %", FormatPercent(12.46))
}

func TestWriteStatementCSV(t *testing.T) {
	doc := sampleDocument()
	buf := &bytes.Buffer{}
	require.NoError(t, WriteStatementCSV(buf, doc.Report))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+len(doc.Report.Statements))
	assert.Equal(t, "Year", records[0][0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "true", records[1][len(records[1])-1])
}

func TestWriteCashFlowCSV(t *testing.T) {
	doc := sampleDocument()
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCashFlowCSV(buf, doc.Report))
	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 13)
	assert.Equal(t, "12", records[12][0])
}

func TestWriteWorkbook(t *testing.T) {
	doc := sampleDocument()
	buf := &bytes.Buffer{}
	require.NoError(t, WriteWorkbook(buf, doc))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetIncome, SheetBalance, SheetParcels, SheetCashFlow}, f.GetSheetList())

	title, err := f.GetCellValue(SheetIncome, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Chiffre d'affaires", title)

	rows, err := f.GetRows(SheetParcels)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Nord", rows[1][0])
	assert.Equal(t, "Tomate", rows[1][1])
	assert.Equal(t, "-", rows[2][1])
	assert.Equal(t, "Total", rows[3][0])

	months, err := f.GetRows(SheetCashFlow)
	require.NoError(t, err)
	assert.Len(t, months, 13)

	balanced, err := f.GetCellValue(SheetBalance, "M2")
	require.NoError(t, err)
	assert.Equal(t, "oui", balanced)
}

type stubRenderer struct {
	html string
}

func (s *stubRenderer) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	s.html = html
	return []byte("%PDF"), nil
}

func TestRenderBusinessPlan(t *testing.T) {
	renderer := &stubRenderer{}
	exporter := &PDFExporter{Renderer: renderer}

	pdf, err := exporter.RenderBusinessPlan(context.Background(), sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf))
	assert.Contains(t, renderer.html, "Ferme &lt;Kouassi&gt;")
	assert.Contains(t, renderer.html, "Compte de résultat prévisionnel")
	assert.Contains(t, renderer.html, "Année 3")
	assert.Contains(t, renderer.html, "édité le 01/06/2025")
	assert.NotContains(t, renderer.html, "<Kouassi>")

	_, err = (&PDFExporter{}).RenderBusinessPlan(context.Background(), sampleDocument())
	assert.Error(t, err)
}
