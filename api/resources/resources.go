// FilePath: api/resources/resources.go
package resources

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/envmon/console/api/middleware"
	"github.com/envmon/console/internal/config"
	"github.com/envmon/console/internal/errors"
	"github.com/envmon/console/internal/service"
	"github.com/envmon/console/internal/session"
	"github.com/envmon/console/internal/views"
	"github.com/gorilla/schema"
	nuts "github.com/vaudience/go-nuts"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Pages   *PageHandlers
	Audio   *AudioHandlers
	Query   *QueryHandlers
	Uploads *UploadHandlers
	Delete  *DeleteHandlers
	System  *SystemHandlers
}

// NewResources creates a new Resources instance
func NewResources(svc *service.Service, cfg *config.Config) *Resources {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	b := &base{
		service: svc,
		console: cfg.Console,
		decoder: decoder,
	}
	uploads := newUploadHandlers(b, cfg.Upload)
	return &Resources{
		Pages:   &PageHandlers{base: b, uploads: uploads},
		Audio:   &AudioHandlers{base: b},
		Query:   &QueryHandlers{base: b},
		Uploads: uploads,
		Delete:  &DeleteHandlers{base: b},
		System:  &SystemHandlers{base: b},
	}
}

// base is shared by every handler group.
type base struct {
	service *service.Service
	console config.ConsoleConfig
	decoder *schema.Decoder
}

// navSection highlights the nav entry of pages that have none of their own.
var navSection = map[string]string{
	views.PageDetail:  views.PageAudio,
	views.PageConfirm: "",
}

// render writes the named page with the pending flash of the session.
func (b *base) render(w http.ResponseWriter, r *http.Request, name string, status int, body any) {
	page := views.Page{
		Title:  b.console.Title,
		Active: name,
		Body:   body,
	}
	if section, ok := navSection[name]; ok {
		page.Active = section
	}

	sid := middleware.SessionID(r.Context())
	flash, err := session.TakeFlash(r.Context(), b.service.Sessions(), sid)
	if err != nil {
		nuts.L.Warnf("[API] Failed to load flash for session %s: %v", sid, err)
	}
	if flash != nil {
		page.Flash = views.Success(flash.Message)
		if flash.IsError {
			page.Flash = views.ErrorStatus(flash.Message)
		}
	}

	var buf bytes.Buffer
	if err := views.Render(&buf, name, page); err != nil {
		nuts.L.Errorf("[API] Failed to render %s: %v", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// flash stores st for the next page render of the session.
func (b *base) flash(r *http.Request, st views.Status) {
	sid := middleware.SessionID(r.Context())
	if err := session.SetFlash(r.Context(), b.service.Sessions(), sid, st.Message, st.IsError()); err != nil {
		nuts.L.Warnf("[API] Failed to store flash for session %s: %v", sid, err)
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func respondWithError(w http.ResponseWriter, err *errors.ConsoleError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
