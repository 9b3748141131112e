// FilePath: internal/views/views.selection.go
package views

import "github.com/envmon/console/internal/models"

// Toolbar is the bulk-action region. It is visible iff at least one row is
// checked and always shows the checked count.
type Toolbar struct {
	Visible bool
	Count   int
	// Source is the delete tag posted with the selection.
	Source models.DataSource
	// ReturnTo is the page refreshed after a delete.
	ReturnTo string
}

// ToolbarFor derives the toolbar state from the current selection.
func ToolbarFor(sel models.Selection, returnTo string) Toolbar {
	n := sel.Count()
	return Toolbar{Visible: n > 0, Count: n, Source: sel.Source, ReturnTo: returnTo}
}

// FilterPanel is the show/hide state of the query filter controls.
type FilterPanel struct {
	Open bool
}

// Label is the text of the toggle button.
func (p FilterPanel) Label() string {
	if p.Open {
		return "Hide Filters"
	}
	return "Filter"
}

// Toggle flips the panel visibility. It never triggers a fetch.
func (p FilterPanel) Toggle() FilterPanel {
	return FilterPanel{Open: !p.Open}
}
