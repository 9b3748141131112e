// FilePath: internal/views/views.go
package views

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/envmon/console/internal/models"
)

// Page names accepted by Render.
const (
	PageHome    = "home"
	PageInsert  = "insert"
	PageAudio   = "audio"
	PageDetail  = "detail"
	PageQuery   = "query"
	PageConfirm = "confirm"
)

// Page wraps a view-model with the layout data shared by every page.
type Page struct {
	Title  string
	Active string
	Flash  Status
	Body   any
}

// HomeView lists recent console activity.
type HomeView struct {
	Activity []models.ActivityEntry
}

// UploadPanel is one widget with its last submission status.
type UploadPanel struct {
	Widget UploadWidget
	Status Status
}

// InsertView is the page hosting the upload widgets.
type InsertView struct {
	Panels []UploadPanel
}

// ConfirmDeleteView asks for confirmation when the browser did not.
type ConfirmDeleteView struct {
	Selection models.Selection
	ReturnTo  string
}

// Prompt is the confirmation question.
func (v ConfirmDeleteView) Prompt() string {
	return MsgConfirmDelete
}

var funcMap = template.FuncMap{
	"fmtTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Local().Format("Jan 2 15:04:05")
	},
	"outcomeClass": func(outcome string) string {
		if outcome == models.OutcomeFailure {
			return "error"
		}
		return "success"
	},
}

var pages = map[string]*template.Template{}

func init() {
	for name, body := range map[string]string{
		PageHome:    tmplHome,
		PageInsert:  tmplInsert,
		PageAudio:   tmplAudio,
		PageDetail:  tmplDetail,
		PageQuery:   tmplQuery,
		PageConfirm: tmplConfirm,
	} {
		pages[name] = template.Must(template.New(name).Funcs(funcMap).Parse(tmplBase + tmplPartials + body))
	}
}

// Render writes the full HTML document of the named page.
func Render(w io.Writer, name string, page Page) error {
	t, ok := pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "base", page)
}
