package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// NotAvailable is printed for a growth without a baseline
const NotAvailable = "n/a"

// ReportHeader returns the column titles: identity, one per group average,
// one per growth pair
func ReportHeader(s Schedule) []string {
	header := []string{"identity"}
	for _, g := range s.groups {
		header = append(header, g.Name+" avg")
	}
	for _, p := range s.pairs {
		header = append(header, s.PairName(p)+" %")
	}
	return header
}

// ReportRow formats one identity: averages with 6 decimals, growth with 2
// decimals and a sign, or NotAvailable without a baseline
func ReportRow(st IdentityStats) []string {
	row := []string{st.Identity}
	for _, avg := range st.Averages {
		row = append(row, strconv.FormatFloat(avg, 'f', 6, 64))
	}
	for _, g := range st.Growths {
		row = append(row, FormatGrowth(g))
	}
	return row
}

// FormatGrowth renders a growth percentage, e.g. "+100.00%", "-100.00%", "n/a"
func FormatGrowth(g Growth) string {
	pct, ok := g.Percent()
	if !ok {
		return NotAvailable
	}
	return fmt.Sprintf("%+.2f%%", pct)
}

// WriteReport renders a fixed-width table, one row per identity, in the
// order of rows
func WriteReport(w io.Writer, s Schedule, rows []IdentityStats) error {
	table := [][]string{ReportHeader(s)}
	for _, r := range rows {
		table = append(table, ReportRow(r))
	}

	widths := make([]int, len(table[0]))
	for _, row := range table {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	border := borderLine(widths)
	var b strings.Builder
	b.WriteString(border)
	for i, row := range table {
		b.WriteString("|")
		for col, cell := range row {
			b.WriteString(" ")
			if col == 0 {
				b.WriteString(runewidth.FillRight(cell, widths[col]))
			} else {
				b.WriteString(runewidth.FillLeft(cell, widths[col]))
			}
			b.WriteString(" |")
		}
		b.WriteString("\n")
		if i == 0 {
			b.WriteString(border)
		}
	}
	b.WriteString(border)

	_, err := io.WriteString(w, b.String())
	return err
}

func borderLine(widths []int) string {
	var b strings.Builder
	b.WriteString("+")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("+")
	}
	b.WriteString("\n")
	return b.String()
}
