package resources

import (
	"net/http"

	"github.com/envmon/console/api/middleware"
	"github.com/envmon/console/internal/models"
	"github.com/envmon/console/internal/views"
	nuts "github.com/vaudience/go-nuts"
)

// DeleteHandlers handles the bulk delete of the audio and query pages.
type DeleteHandlers struct {
	*base
}

type deleteForm struct {
	IDs       []string `schema:"ids"`
	Type      string   `schema:"type"`
	ReturnTo  string   `schema:"return_to"`
	Confirmed string   `schema:"confirmed"`
}

// returnTarget only ever redirects to one of the two pages hosting a toolbar.
func (f deleteForm) returnTarget() string {
	switch f.ReturnTo {
	case "/audio", "/query":
		return f.ReturnTo
	}
	if models.DataSource(f.Type) == models.SourceAudio {
		return "/audio"
	}
	return "/query"
}

// @Summary Bulk delete
// @Description Delete the selected rows of one data source. Without confirmed=yes a confirmation page is returned.
// @Tags actions
// @Accept x-www-form-urlencoded
// @Produce html
// @Param ids formData []string false "Row identifiers" collectionFormat(multi)
// @Param type formData string true "sensor, weather, combined or audio"
// @Param return_to formData string false "Page refreshed afterwards"
// @Param confirmed formData string false "yes once the user confirmed"
// @Success 200 "Confirmation page"
// @Success 303 "Redirect to the refreshed page"
// @Router /delete [post]
func (h *DeleteHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := middleware.SessionID(ctx)

	var form deleteForm
	if err := r.ParseForm(); err == nil {
		if err := h.decoder.Decode(&form, r.PostForm); err != nil {
			nuts.L.Debugf("[API] Ignoring malformed delete form: %v", err)
		}
	}
	returnTo := form.returnTarget()
	sel := models.Selection{IDs: form.IDs, Source: models.DataSource(form.Type)}

	// empty selections fail in the service without asking first
	if sel.Count() > 0 && form.Confirmed != "yes" {
		h.render(w, r, views.PageConfirm, http.StatusOK, views.ConfirmDeleteView{
			Selection: sel.Normalized(),
			ReturnTo:  returnTo,
		})
		return
	}

	err := h.service.Delete(ctx, middleware.RequestID(ctx), sel)
	h.flash(r, views.DeleteStatus(err))

	if err == nil && returnTo == "/query" {
		// a failed refresh sends the page the query itself so it shows the error
		if params, _, err := h.service.Requery(ctx, sid); err != nil {
			nuts.L.Warnf("[API] Failed to refresh query after delete: %v", err)
			if params.Source != "" {
				returnTo = "/query?" + params.PageValues().Encode()
			}
		}
	}
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}
