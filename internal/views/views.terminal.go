// FilePath: internal/views/views.terminal.go
package views

import (
	"fmt"
	"io"
	"strings"

	tm "github.com/buger/goterm"
)

// Terminal renders view-models as plain text tables for the CLI.
type Terminal struct {
	w     io.Writer
	color bool
}

// NewTerminal writes to w. Colors are only used when color is set.
func NewTerminal(w io.Writer, color bool) *Terminal {
	return &Terminal{w: w, color: color}
}

// Status prints a status line, red when it is an error.
func (t *Terminal) Status(s Status) {
	if s.Empty() {
		return
	}
	msg := s.Message
	if t.color {
		switch s.Kind {
		case StatusError:
			msg = tm.Color(msg, tm.RED)
		case StatusSuccess:
			msg = tm.Color(msg, tm.GREEN)
		}
	}
	fmt.Fprintln(t.w, msg)
}

// Table prints headers and rows as aligned columns.
func (t *Terminal) Table(title string, headers []string, rows [][]string) {
	if title != "" {
		if t.color {
			title = tm.Bold(title)
		}
		fmt.Fprintln(t.w, title)
	}
	table := tm.NewTable(0, 8, 2, ' ', 0)
	fmt.Fprintln(table, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(table, strings.Join(row, "\t"))
	}
	fmt.Fprint(t.w, table.String())
}

// Query prints a query page: its status, or the table with the row id first.
func (t *Terminal) Query(v QueryView) {
	t.Status(v.Status)
	if v.Table == nil {
		return
	}
	rows := make([][]string, 0, len(v.Table.Rows))
	for _, r := range v.Table.Rows {
		rows = append(rows, append([]string{r.ID}, r.Cells...))
	}
	t.Table("", append([]string{"ID"}, v.Table.Headers...), rows)
	fmt.Fprintf(t.w, "%d rows\n", len(rows))
}

// AudioList prints the recordings list.
func (t *Terminal) AudioList(v AudioListView) {
	if len(v.Cards) == 0 {
		t.Status(v.Status)
		return
	}
	rows := make([][]string, 0, len(v.Cards))
	for _, c := range v.Cards {
		rows = append(rows, []string{c.ID, c.Filename, c.Subtitle})
	}
	t.Table("", []string{"ID", "Filename", "Recorded"}, rows)
}

// Correlation prints both correlation tables or the panel status.
func (t *Terminal) Correlation(c Correlation) {
	t.Status(c.Status)
	for _, table := range []*Table{c.Sensor, c.Weather} {
		if table != nil {
			t.Table(table.Title, table.Headers, table.Rows)
		}
	}
}
