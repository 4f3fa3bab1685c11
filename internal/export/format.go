// Package export renders project reports as CSV, XLSX and PDF documents.
package export

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var frenchPrinter = message.NewPrinter(language.French)

var spaceNormaliser = strings.NewReplacer("\u202f", " ", "\u00a0", " ")

// RoundFCFA rounds an amount to whole francs, half away from zero.
func RoundFCFA(v float64) int64 {
	return decimal.NewFromFloat(v).Round(0).IntPart()
}

// FormatAmount groups thousands the French way: 1 234 567.
func FormatAmount(v float64) string {
	return spaceNormaliser.Replace(frenchPrinter.Sprintf("%d", RoundFCFA(v)))
}

// FormatFCFA formats an amount as "1 234 567 FCFA".
func FormatFCFA(v float64) string {
	return FormatAmount(v) + " FCFA"
}

// FormatPercent formats a percentage with one decimal and a French comma.
func FormatPercent(v float64) string {
	d := decimal.NewFromFloat(v).Round(1)
	return strings.Replace(d.StringFixed(1), ".", ",", 1) + " %"
}

// plain renders a rounded amount without grouping, for machine-readable output.
func plain(v float64) string {
	return decimal.NewFromFloat(v).Round(0).String()
}
