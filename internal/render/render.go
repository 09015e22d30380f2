// Package render prints a report as a console table.
package render

import (
	"fmt"
	"io"
	"strings"

	"crypto-rates-checker/internal/domain"

	"github.com/olekukonko/tablewriter"
)

const unitPlaces = 8

// Report writes the timestamp line, one column per asset and one row per sell
// exchange, then the unusable assets and the error log.
func Report(w io.Writer, report *domain.Report, places int32) {
	fmt.Fprintf(w, "Table timestamp ↓: %s\n", report.GeneratedAt.Format("2006-01-02 15:04 MST"))

	if len(report.Rows) > 0 {
		table := tablewriter.NewWriter(w)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetAlignment(tablewriter.ALIGN_RIGHT)
		table.SetHeaderAlignment(tablewriter.ALIGN_RIGHT)
		table.SetHeader(Header(report))
		for _, row := range Body(report, places) {
			table.Append(row)
		}
		table.Render()
	}

	fmt.Fprintln(w, "The following coins cannot be sold at any of the provided exchanges: "+joinOrDash(report.CannotBeSold))
	fmt.Fprintln(w, "The following coins cannot be bought at any of the provided exchanges: "+joinOrDash(report.CannotBeBought))
	for _, message := range report.ErrorLog {
		fmt.Fprintln(w, message)
	}
	fmt.Fprintln(w)
}

func Header(report *domain.Report) []string {
	header := []string{""}
	for _, row := range report.Rows {
		header = append(header, row.Symbol)
	}
	return header
}

// Body returns the "buy at" and "sell at" rows followed by one row per sell
// exchange. A dash marks an exchange that does not quote the asset.
func Body(report *domain.Report, places int32) [][]string {
	buyAt := []string{"Buy at"}
	sellAt := []string{"Sell at ↓"}
	for _, row := range report.Rows {
		buyAt = append(buyAt, row.SourceExchange)
		sellAt = append(sellAt, row.UnitsAcquired.Round(unitPlaces).String())
	}
	body := [][]string{buyAt, sellAt}

	for i, exchange := range report.SellExchanges {
		line := []string{report.Label(exchange)}
		for _, row := range report.Rows {
			result := row.Results[i]
			if !result.Quoted {
				line = append(line, "-")
				continue
			}
			line = append(line, result.EffectiveRate.StringFixed(places))
		}
		body = append(body, line)
	}
	return body
}

func joinOrDash(symbols []string) string {
	if len(symbols) == 0 {
		return "-"
	}
	return strings.Join(symbols, ", ")
}
