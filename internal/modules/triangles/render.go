package triangles

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Render returns a tabular view of the triangle: origin-year rows by
// development-age columns. Absent cells are left blank so they cannot be
// mistaken for zeros. Purely diagnostic; carries no behavioural contract
// beyond faithfully reflecting present and absent cells.
func (t *Triangle) Render() string {
	if t.Empty() {
		return "Empty Triangle"
	}

	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.Style().Format.Header = text.FormatDefault

	header := table.Row{"Origin Year"}
	for _, age := range t.ages {
		header = append(header, fmt.Sprintf("%d", age))
	}
	w.AppendHeader(header)

	for _, origin := range t.origins {
		row := table.Row{origin}
		for _, age := range t.ages {
			if value, ok := t.Value(origin, age); ok {
				row = append(row, fmt.Sprintf("%.2f", value))
			} else {
				row = append(row, "")
			}
		}
		w.AppendRow(row)
	}

	return w.Render()
}

// String implements fmt.Stringer via Render.
func (t *Triangle) String() string {
	return t.Render()
}
