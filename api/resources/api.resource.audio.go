package resources

import (
	"net/http"

	"github.com/envmon/console/api/middleware"
	"github.com/envmon/console/internal/config"
	"github.com/envmon/console/internal/views"
)

// AudioHandlers serves the audio list and the correlation views.
type AudioHandlers struct {
	*base
}

type detailForm struct {
	ID   string `schema:"id"`
	Name string `schema:"name"`
}

// List renders the recordings. In inline mode a selected recording gets its
// correlation panel below the list.
func (h *AudioHandlers) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	selected := r.URL.Query().Get("selected")

	records, err := h.service.ListAudio(ctx)
	view := views.NewAudioListView(h.console.AudioMode, records, err, selected)

	if h.console.AudioMode == config.AudioModeInline && selected != "" {
		bundle, err := h.service.Correlate(ctx, middleware.SessionID(ctx), selected)
		panel := views.NewDetailView(config.AudioModeInline, selected, view.FilenameOf(selected), bundle, err)
		view.Panel = &panel
	}
	h.render(w, r, views.PageAudio, http.StatusOK, view)
}

// Details renders the navigated correlation page of one recording.
func (h *AudioHandlers) Details(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var form detailForm
	if err := h.decoder.Decode(&form, r.URL.Query()); err != nil {
		form = detailForm{}
	}

	if form.ID == "" {
		h.render(w, r, views.PageDetail, http.StatusOK,
			views.NewDetailView(config.AudioModeNavigated, "", "", nil, nil))
		return
	}
	bundle, err := h.service.Correlate(ctx, middleware.SessionID(ctx), form.ID)
	h.render(w, r, views.PageDetail, http.StatusOK,
		views.NewDetailView(config.AudioModeNavigated, form.ID, form.Name, bundle, err))
}
