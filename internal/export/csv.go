package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/agriprojet/agriprojet/internal/projects"
)

// WriteStatementCSV emits one row per projected year with the income statement
// and balance sheet figures.
func WriteStatementCSV(w io.Writer, report projects.Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{
		"Year", "Revenue", "Cost of Sales", "Gross Margin", "Operating Expenses", "Payroll",
		"Depreciation", "Operating Result", "Interest", "Net Result",
		"Cash", "Total Assets", "Total Liabilities and Equity", "Balanced",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for i, s := range report.Statements {
		record := []string{
			strconv.Itoa(s.Year),
			plain(s.Revenue),
			plain(s.CostOfSales),
			plain(s.GrossMargin),
			plain(s.OperatingExpenses),
			plain(s.Payroll),
			plain(s.Depreciation),
			plain(s.OperatingResult),
			plain(s.InterestExpense),
			plain(s.NetResult),
		}
		if i < len(report.BalanceSheets) {
			bs := report.BalanceSheets[i]
			record = append(record,
				plain(bs.Cash),
				plain(bs.TotalAssets),
				plain(bs.TotalLiabilitiesAndEquity),
				strconv.FormatBool(bs.BalanceCheck),
			)
		} else {
			record = append(record, "", "", "", "")
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCashFlowCSV emits the monthly cash-flow plan.
func WriteCashFlowCSV(w io.Writer, report projects.Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Month", "Receipts", "Purchases", "Expenses", "Payroll", "Financing", "Net Flow", "Cumulative"}); err != nil {
		return err
	}
	for _, m := range report.CashFlow.Months {
		if err := writer.Write([]string{
			strconv.Itoa(m.Month),
			plain(m.Receipts),
			plain(m.Purchases),
			plain(m.Expenses),
			plain(m.Payroll),
			plain(m.Financing),
			plain(m.NetFlow),
			plain(m.Cumulative),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
