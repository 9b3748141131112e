package resources

import (
	"net/http"

	"github.com/envmon/console/internal/views"
	nuts "github.com/vaudience/go-nuts"
)

// PageHandlers serves the pages that need no backend data.
type PageHandlers struct {
	*base
	uploads *UploadHandlers
}

// Home lists the recent console activity.
func (h *PageHandlers) Home(w http.ResponseWriter, r *http.Request) {
	activity, err := h.service.RecentActivity(r.Context())
	if err != nil {
		// the page still works without the journal
		nuts.L.Warnf("[API] Failed to load recent activity: %v", err)
	}
	h.render(w, r, views.PageHome, http.StatusOK, views.HomeView{Activity: activity})
}

// Insert shows the two upload widgets.
func (h *PageHandlers) Insert(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, views.PageInsert, http.StatusOK, h.uploads.insertView("", views.Status{}))
}
