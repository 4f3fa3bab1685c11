package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the business-plan workbook.
const (
	SheetIncome   = "Compte de résultat"
	SheetBalance  = "Bilan"
	SheetParcels  = "Parcelles"
	SheetCashFlow = "Trésorerie"
)

type workbook struct {
	f      *excelize.File
	header int
	amount int
}

// BuildWorkbook lays the report out on four sheets.
func BuildWorkbook(doc Document) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetIncome); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetBalance, SheetParcels, SheetCashFlow} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return nil, err
	}
	wb := workbook{f: f, header: header, amount: amount}

	if err := wb.incomeSheet(doc); err != nil {
		return nil, err
	}
	if err := wb.balanceSheet(doc); err != nil {
		return nil, err
	}
	if err := wb.parcelSheet(doc); err != nil {
		return nil, err
	}
	if err := wb.cashFlowSheet(doc); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook writes the XLSX workbook of doc to w.
func WriteWorkbook(w io.Writer, doc Document) error {
	f, err := BuildWorkbook(doc)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return f.Write(w)
}

func (wb workbook) incomeSheet(doc Document) error {
	headers := []string{"Année", "Chiffre d'affaires", "Coût des ventes", "Marge brute", "Charges d'exploitation",
		"Salaires et charges", "Amortissements", "Résultat d'exploitation", "Charges financières", "Résultat net"}
	rows := make([][]any, 0, len(doc.Report.Statements))
	for _, s := range doc.Report.Statements {
		rows = append(rows, []any{s.Year,
			RoundFCFA(s.Revenue), RoundFCFA(s.CostOfSales), RoundFCFA(s.GrossMargin), RoundFCFA(s.OperatingExpenses),
			RoundFCFA(s.Payroll), RoundFCFA(s.Depreciation), RoundFCFA(s.OperatingResult), RoundFCFA(s.InterestExpense),
			RoundFCFA(s.NetResult)})
	}
	return wb.table(SheetIncome, headers, rows)
}

func (wb workbook) balanceSheet(doc Document) error {
	headers := []string{"Année", "Immobilisations nettes", "Trésorerie", "Créances", "Stocks", "Total actif",
		"Capitaux propres", "Résultats cumulés", "Dettes financières", "Dettes fournisseurs", "Total passif", "Écart", "Équilibré"}
	rows := make([][]any, 0, len(doc.Report.BalanceSheets))
	for _, bs := range doc.Report.BalanceSheets {
		balanced := "non"
		if bs.BalanceCheck {
			balanced = "oui"
		}
		rows = append(rows, []any{bs.Year,
			RoundFCFA(bs.NetFixedAssets), RoundFCFA(bs.Cash), RoundFCFA(bs.Receivables), RoundFCFA(bs.Inventory),
			RoundFCFA(bs.TotalAssets), RoundFCFA(bs.Equity), RoundFCFA(bs.RetainedEarnings), RoundFCFA(bs.LongTermDebt),
			RoundFCFA(bs.CurrentLiabilities), RoundFCFA(bs.TotalLiabilitiesAndEquity), RoundFCFA(bs.Difference), balanced})
	}
	return wb.table(SheetBalance, headers, rows)
}

func (wb workbook) parcelSheet(doc Document) error {
	headers := []string{"Parcelle", "Culture", "Surface (ha)", "Cycles/an", "Coûts totaux", "Chiffre d'affaires",
		"Marge totale", "Marge/ha", "Rentabilité (%)"}
	rows := make([][]any, 0, len(doc.Report.Parcels)+1)
	for _, p := range doc.Report.Parcels {
		crop := p.CropName
		if crop == "" {
			crop = "-"
		}
		m := p.Metrics
		rows = append(rows, []any{p.Name, crop, p.Surface, m.CyclesPerYear,
			RoundFCFA(m.TotalCosts), RoundFCFA(m.Revenue), RoundFCFA(m.TotalMargin), RoundFCFA(m.MarginPerHectare),
			FormatPercent(m.ProfitabilityPercent)})
	}
	pf := doc.Report.Portfolio
	rows = append(rows, []any{"Total", fmt.Sprintf("%d cultures", pf.CulturesDistinctes), pf.TotalSurface, pf.CyclesPerYear,
		RoundFCFA(pf.TotalCosts), RoundFCFA(pf.Revenue), RoundFCFA(pf.TotalMargin), "",
		FormatPercent(pf.ProfitabilityPercent)})
	return wb.table(SheetParcels, headers, rows)
}

func (wb workbook) cashFlowSheet(doc Document) error {
	headers := []string{"Mois", "Encaissements", "Achats", "Charges", "Salaires", "Financement", "Flux net", "Trésorerie cumulée"}
	plan := doc.Report.CashFlow
	rows := make([][]any, 0, len(plan.Months))
	for _, m := range plan.Months {
		rows = append(rows, []any{m.Month,
			RoundFCFA(m.Receipts), RoundFCFA(m.Purchases), RoundFCFA(m.Expenses), RoundFCFA(m.Payroll),
			RoundFCFA(m.Financing), RoundFCFA(m.NetFlow), RoundFCFA(m.Cumulative)})
	}
	return wb.table(SheetCashFlow, headers, rows)
}

func (wb workbook) table(sheet string, headers []string, rows [][]any) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := wb.f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	if err := wb.f.SetRowStyle(sheet, 1, 1, wb.header); err != nil {
		return err
	}
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := wb.f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
			if _, ok := val.(int64); ok {
				if err := wb.f.SetCellStyle(sheet, cell, cell, wb.amount); err != nil {
					return err
				}
			}
		}
	}
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := wb.f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return err
	}
	return wb.f.SetColWidth(sheet, "B", last, 18)
}
