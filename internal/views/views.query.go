// FilePath: internal/views/views.query.go
package views

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/envmon/console/internal/errors"
	"github.com/envmon/console/internal/models"
)

// NotAvailable is rendered for null or absent cells.
const NotAvailable = "N/A"

var leadingColumns = []string{"date", "time"}

// QueryColumns returns the column order for rows of source: date and time
// first, then every other key of the first row in its own order. The generic
// id and the source's identifier column are not shown.
func QueryColumns(source models.DataSource, rows []models.QueryRow) []string {
	cols := append([]string(nil), leadingColumns...)
	if len(rows) == 0 {
		return cols
	}
	skip := map[string]bool{"id": true, source.IDField(): true}
	for _, c := range leadingColumns {
		skip[c] = true
	}
	for _, key := range rows[0].Keys() {
		if !skip[key] {
			cols = append(cols, key)
		}
	}
	return cols
}

// HeaderLabel turns a column key into its header text: underscores become
// spaces and every word starts upper case.
func HeaderLabel(column string) string {
	words := strings.Split(strings.ReplaceAll(column, "_", " "), " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// QueryTableRow is one rendered body row: the checkbox value then the cells.
type QueryTableRow struct {
	ID    string
	Cells []string
}

// QueryTable is the rendered result table. The first header cell is always
// the select-all checkbox and is not part of Headers.
type QueryTable struct {
	Source  models.DataSource
	Columns []string
	Headers []string
	Rows    []QueryTableRow
}

// BuildQueryTable renders rows of source. It is deterministic: the same input
// always yields the same columns and cells.
func BuildQueryTable(source models.DataSource, rows []models.QueryRow) *QueryTable {
	cols := QueryColumns(source, rows)
	t := &QueryTable{
		Source:  source,
		Columns: cols,
		Headers: make([]string, len(cols)),
		Rows:    make([]QueryTableRow, 0, len(rows)),
	}
	for i, c := range cols {
		t.Headers[i] = HeaderLabel(c)
	}
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = row.Get(c).Or(NotAvailable)
		}
		t.Rows = append(t.Rows, QueryTableRow{ID: row.ID, Cells: cells})
	}
	return t
}

// QueryStatus maps a fetch outcome to the results-area message. A result
// that renders as a table has no status.
func QueryStatus(res *models.QueryResult, err error) Status {
	if err != nil {
		ce, ok := errors.As(err)
		switch {
		case ok && ce.Type == errors.ErrorTypeValidation:
			return ErrorStatus(ce.Message)
		case ok && ce.Type == errors.ErrorTypeBackend:
			if ce.Message != "" {
				return ErrorStatus("API Error: " + ce.Message)
			}
			return ErrorStatus("API Error: Failed to fetch data")
		default:
			return ErrorStatus("Network Error: " + reason(err))
		}
	}
	if res.Empty() {
		return Info(MsgNoData)
	}
	return Status{}
}

// SourceOption is one entry of the data source select.
type SourceOption struct {
	Value    models.DataSource
	Label    string
	Selected bool
}

// QueryView is everything the query page renders.
type QueryView struct {
	Params    models.QueryParams
	Sources   []SourceOption
	Filter    FilterPanel
	TimeRange bool
	Status    Status
	Table     *QueryTable
	Toolbar   Toolbar
}

// NewQueryView renders the page state for params and the outcome of its fetch.
// fetched is false when no fetch was attempted, e.g. on first visit.
func NewQueryView(params models.QueryParams, filter FilterPanel, timeRange bool, fetched bool, res *models.QueryResult, err error) QueryView {
	v := QueryView{
		Params:    params,
		Filter:    filter,
		TimeRange: timeRange,
		// a fresh render has no checked rows
		Toolbar: ToolbarFor(models.Selection{Source: params.Source}, "/query"),
	}
	for _, s := range models.QuerySources() {
		v.Sources = append(v.Sources, SourceOption{
			Value:    s,
			Label:    HeaderLabel(string(s)),
			Selected: s == params.Source,
		})
	}
	if !fetched {
		return v
	}
	v.Status = QueryStatus(res, err)
	if err == nil && !res.Empty() {
		v.Table = BuildQueryTable(params.Source, res.Rows)
	}
	return v
}
