package resources

import (
	"net/http"

	"github.com/envmon/console/api/middleware"
	"github.com/envmon/console/internal/models"
	"github.com/envmon/console/internal/views"
	nuts "github.com/vaudience/go-nuts"
)

// QueryHandlers serves the query/browse page.
type QueryHandlers struct {
	*base
}

type queryForm struct {
	Source    string `schema:"source"`
	StartDate string `schema:"start_date"`
	EndDate   string `schema:"end_date"`
	StartTime string `schema:"start_time"`
	EndTime   string `schema:"end_time"`
	Filters   string `schema:"filters"`
}

func (f queryForm) params(timeFilters bool) models.QueryParams {
	p := models.QueryParams{
		Source:    models.DataSource(f.Source),
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
	}
	if timeFilters {
		p.StartTime, p.EndTime = f.StartTime, f.EndTime
	}
	return p
}

// Query fetches when the form was submitted, i.e. a source key is present.
// A bare visit shows the session's active query, if any, without fetching.
func (h *QueryHandlers) Query(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := middleware.SessionID(ctx)
	values := r.URL.Query()

	var form queryForm
	if err := h.decoder.Decode(&form, values); err != nil {
		nuts.L.Debugf("[API] Ignoring malformed query form: %v", err)
		form = queryForm{}
	}
	filter := views.FilterPanel{Open: form.Filters != ""}

	if !values.Has("source") {
		ws, err := h.service.Sessions().Load(ctx, sid)
		if err != nil || ws.Query == nil {
			h.render(w, r, views.PageQuery, http.StatusOK,
				views.NewQueryView(models.QueryParams{}, filter, h.console.TimeFilters, false, nil, nil))
			return
		}
		h.render(w, r, views.PageQuery, http.StatusOK,
			views.NewQueryView(ws.Query.Params, filter, h.console.TimeFilters, true, ws.Query, nil))
		return
	}

	params := form.params(h.console.TimeFilters)
	res, err := h.service.Query(ctx, sid, params)
	h.render(w, r, views.PageQuery, http.StatusOK,
		views.NewQueryView(params, filter, h.console.TimeFilters, true, res, err))
}
