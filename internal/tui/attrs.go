package tui

import (
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"

	"overlaymap/internal/geom"
)

// refreshAttrs rebuilds the table columns/rows from the focused layer.
func (m *Model) refreshAttrs() {
	c := m.focused()
	if c == nil {
		m.showAttrs = false
		return
	}
	cols, rows := buildAttributes(c.Layer.Features())
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for " + c.Layer.Title
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		w := len(c) + 2
		if w > maxColW {
			w = maxColW
		}
		tcols = append(tcols, table.Column{Title: c, Width: w})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(r)+1)
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	m.status = fmt.Sprintf("attributes: %s  rows=%d", c.Layer.Title, len(trows))
}

// buildAttributes unions the property keys of all features (sorted) and
// returns one row per feature.
func buildAttributes(fs []*geom.Feature) ([]string, [][]string) {
	seen := map[string]bool{}
	var order []string
	for _, f := range fs {
		for k := range f.Properties {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	sort.Strings(order)
	rows := make([][]string, 0, len(fs))
	for _, f := range fs {
		vals := make([]string, len(order))
		for i, k := range order {
			vals[i] = f.String(k)
		}
		rows = append(rows, vals)
	}
	return order, rows
}
