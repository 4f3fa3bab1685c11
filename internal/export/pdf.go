package export

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
)

// HTMLRenderer converts an HTML document to PDF.
type HTMLRenderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// PDFExporter renders the business-plan summary through an HTML renderer.
type PDFExporter struct {
	Renderer HTMLRenderer
}

// RenderBusinessPlan builds the HTML summary of doc and converts it to PDF.
func (p *PDFExporter) RenderBusinessPlan(ctx context.Context, doc Document) ([]byte, error) {
	if p == nil || p.Renderer == nil {
		return nil, errors.New("pdf exporter not initialised")
	}
	return p.Renderer.RenderHTML(ctx, BusinessPlanHTML(doc))
}

// BusinessPlanHTML lays out the company, parcel portfolio, projected
// statements, balance sheets and year-one cash-flow plan.
func BusinessPlanHTML(doc Document) string {
	r := doc.Report
	var b strings.Builder
	b.WriteString("<html><head><meta charset=\"utf-8\"><style>")
	b.WriteString("body{font-family:sans-serif;margin:24px;font-size:12px;}h1{font-size:20px;}h2{font-size:15px;margin-top:24px;}table{width:100%;border-collapse:collapse;margin-bottom:16px;}th,td{border:1px solid #ddd;padding:4px 6px;text-align:right;}th{background:#E2E8F0;}td.label,th.label{text-align:left;}.warn{color:#b91c1c;}")
	b.WriteString("</style></head><body>")
	b.WriteString("<h1>Plan d'affaires - " + templateEscape(doc.Company.Name) + "</h1>")
	var meta []string
	if doc.Company.LegalForm != "" {
		meta = append(meta, templateEscape(doc.Company.LegalForm))
	}
	if doc.Company.Location != "" {
		meta = append(meta, templateEscape(doc.Company.Location))
	}
	if !doc.GeneratedAt.IsZero() {
		meta = append(meta, "édité le "+doc.GeneratedAt.Format("02/01/2006"))
	}
	if len(meta) > 0 {
		b.WriteString("<p>" + strings.Join(meta, " · ") + "</p>")
	}

	pf := r.Portfolio
	b.WriteString("<h2>Exploitation</h2><table><tbody>")
	writeRow(&b, "Parcelles", strconv.Itoa(pf.ParcelCount))
	writeRow(&b, "Parcelles cultivées", strconv.Itoa(pf.ParcellesActives))
	writeRow(&b, "Cultures distinctes", strconv.Itoa(pf.CulturesDistinctes))
	writeRow(&b, "Surface totale", strconv.FormatFloat(pf.TotalSurface, 'f', 2, 64)+" ha")
	writeRow(&b, "Chiffre d'affaires annuel", FormatFCFA(pf.Revenue))
	writeRow(&b, "Coûts de production", FormatFCFA(pf.TotalCosts))
	writeRow(&b, "Marge totale", FormatFCFA(pf.TotalMargin))
	writeRow(&b, "Rentabilité", FormatPercent(pf.ProfitabilityPercent))
	b.WriteString("</tbody></table>")

	if len(r.Parcels) > 0 {
		b.WriteString("<h2>Parcelles</h2><table><thead><tr><th class=\"label\">Parcelle</th><th class=\"label\">Culture</th><th>Surface</th><th>Chiffre d'affaires</th><th>Marge</th></tr></thead><tbody>")
		for _, p := range r.Parcels {
			crop := p.CropName
			if crop == "" {
				crop = "-"
			}
			fmt.Fprintf(&b, "<tr><td class=\"label\">%s</td><td class=\"label\">%s</td><td>%s ha</td><td>%s</td><td>%s</td></tr>",
				templateEscape(p.Name), templateEscape(crop), strconv.FormatFloat(p.Surface, 'f', 2, 64),
				FormatFCFA(p.Metrics.Revenue), FormatFCFA(p.Metrics.TotalMargin))
		}
		b.WriteString("</tbody></table>")
	}

	if len(r.Statements) > 0 {
		b.WriteString("<h2>Compte de résultat prévisionnel</h2><table><thead><tr><th class=\"label\">Poste</th>")
		for _, s := range r.Statements {
			fmt.Fprintf(&b, "<th>Année %d</th>", s.Year)
		}
		b.WriteString("</tr></thead><tbody>")
		lines := []struct {
			label string
			value func(i int) float64
		}{
			{"Chiffre d'affaires", func(i int) float64 { return r.Statements[i].Revenue }},
			{"Coût des ventes", func(i int) float64 { return r.Statements[i].CostOfSales }},
			{"Charges d'exploitation", func(i int) float64 { return r.Statements[i].OperatingExpenses }},
			{"Salaires et charges", func(i int) float64 { return r.Statements[i].Payroll }},
			{"Amortissements", func(i int) float64 { return r.Statements[i].Depreciation }},
			{"Résultat d'exploitation", func(i int) float64 { return r.Statements[i].OperatingResult }},
			{"Charges financières", func(i int) float64 { return r.Statements[i].InterestExpense }},
			{"Résultat net", func(i int) float64 { return r.Statements[i].NetResult }},
		}
		for _, line := range lines {
			b.WriteString("<tr><td class=\"label\">" + templateEscape(line.label) + "</td>")
			for i := range r.Statements {
				b.WriteString("<td>" + FormatFCFA(line.value(i)) + "</td>")
			}
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")
	}

	if len(r.BalanceSheets) > 0 {
		b.WriteString("<h2>Bilan prévisionnel</h2><table><thead><tr><th>Année</th><th>Total actif</th><th>Total passif</th><th>Trésorerie</th><th>Équilibre</th></tr></thead><tbody>")
		for _, bs := range r.BalanceSheets {
			status := "équilibré"
			if !bs.BalanceCheck {
				status = "<span class=\"warn\">écart " + FormatFCFA(bs.Difference) + "</span>"
			}
			fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
				bs.Year, FormatFCFA(bs.TotalAssets), FormatFCFA(bs.TotalLiabilitiesAndEquity), FormatFCFA(bs.Cash), status)
		}
		b.WriteString("</tbody></table>")
	}

	if len(r.Breakeven) > 0 {
		be := r.Breakeven[0]
		b.WriteString("<h2>Seuil de rentabilité (année 1)</h2><table><tbody>")
		if be.Reachable {
			writeRow(&b, "Chiffre d'affaires critique", FormatFCFA(be.BreakevenRevenue))
			writeRow(&b, "Marge de sécurité", FormatFCFA(be.SafetyMargin))
			writeRow(&b, "Point mort", strconv.FormatFloat(be.BreakevenMonth, 'f', 1, 64)+" mois")
		} else {
			writeRow(&b, "Chiffre d'affaires critique", "non atteignable")
		}
		b.WriteString("</tbody></table>")
	}

	if cf := r.CashFlow; len(cf.Months) > 0 {
		b.WriteString("<h2>Plan de trésorerie (année 1)</h2><table><thead><tr><th>Mois</th><th>Encaissements</th><th>Décaissements</th><th>Flux net</th><th>Cumul</th></tr></thead><tbody>")
		for _, m := range cf.Months {
			out := m.Purchases + m.Expenses + m.Payroll + m.Financing
			fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
				m.Month, FormatFCFA(m.Receipts), FormatFCFA(out), FormatFCFA(m.NetFlow), FormatFCFA(m.Cumulative))
		}
		b.WriteString("</tbody></table>")
		if cf.NegativeMonths > 0 {
			fmt.Fprintf(&b, "<p class=\"warn\">Trésorerie négative pendant %d mois, point bas de %s au mois %d.</p>",
				cf.NegativeMonths, FormatFCFA(cf.LowestCash), cf.LowestMonth)
		}
	}

	b.WriteString("</body></html>")
	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString("<tr><td class=\"label\">" + templateEscape(label) + "</td><td>" + value + "</td></tr>")
}

func templateEscape(s string) string {
	return html.EscapeString(s)
}
