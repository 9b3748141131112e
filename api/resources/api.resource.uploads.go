package resources

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/envmon/console/api/middleware"
	"github.com/envmon/console/internal/config"
	"github.com/envmon/console/internal/errors"
	"github.com/envmon/console/internal/models"
	"github.com/envmon/console/internal/views"
	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
)

// multipart parts beyond this size are spooled to disk
const uploadMemory = 32 << 20

// UploadHandlers encapsulates the upload widget submissions
type UploadHandlers struct {
	*base
	widgets     []views.UploadWidget
	maxFileSize int64
}

// UploadReply is the JSON answer the widget script writes into its status element.
type UploadReply struct {
	Message    string `json:"message"`
	IsError    bool   `json:"is_error"`
	ClearInput bool   `json:"clear_input"`
	RequestID  string `json:"request_id"`
}

func newUploadHandlers(b *base, cfg config.UploadConfig) *UploadHandlers {
	return &UploadHandlers{
		base: b,
		widgets: []views.UploadWidget{
			views.NewUploadWidget(models.UploadCSV, "CSV", cfg.CSVExtensions),
			views.NewUploadWidget(models.UploadAudio, "audio", cfg.AudioExtensions),
		},
		maxFileSize: cfg.MaxFileSize,
	}
}

func (h *UploadHandlers) widget(kind models.UploadKind) (views.UploadWidget, bool) {
	for _, w := range h.widgets {
		if w.Kind == kind {
			return w, true
		}
	}
	return views.UploadWidget{}, false
}

// insertView renders every widget, with st shown on the widget of kind.
func (h *UploadHandlers) insertView(kind models.UploadKind, st views.Status) views.InsertView {
	var v views.InsertView
	for _, w := range h.widgets {
		panel := views.UploadPanel{Widget: w}
		if w.Kind == kind {
			panel.Status = st
		}
		v.Panels = append(v.Panels, panel)
	}
	return v
}

// @Summary Upload a file
// @Description Forward one CSV or audio file to the backend
// @Tags actions
// @Accept multipart/form-data
// @Produce json,html
// @Param kind path string true "csv or audio"
// @Param file formData file true "File to upload"
// @Success 200 {object} UploadReply
// @Failure 400 {object} UploadReply
// @Failure 404 {object} errors.ConsoleError
// @Failure 502 {object} UploadReply
// @Router /upload/{kind} [post]
func (h *UploadHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.RequestID(ctx)
	kind := models.UploadKind(mux.Vars(r)["kind"])

	widget, ok := h.widget(kind)
	if !ok {
		respondWithError(w, errors.NewNotFoundError("unknown upload kind", nil).WithRequestID(requestID))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+uploadMemory)
	if err := r.ParseMultipartForm(uploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			h.reply(w, r, kind, http.StatusRequestEntityTooLarge, views.UploadOutcome{
				Status: views.ErrorStatus(fmt.Sprintf("File exceeds the maximum upload size of %d bytes.", h.maxFileSize)),
			})
			return
		}
		if !stderrors.Is(err, http.ErrNotMultipart) {
			nuts.L.Warnf("[Upload] Invalid multipart form: %v", err)
		}
		h.reply(w, r, kind, http.StatusBadRequest, views.UploadOutcome{Status: widget.MissingFile()})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil || header.Filename == "" {
		h.reply(w, r, kind, http.StatusBadRequest, views.UploadOutcome{Status: widget.MissingFile()})
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		h.reply(w, r, kind, http.StatusRequestEntityTooLarge, views.UploadOutcome{
			Status: views.ErrorStatus(fmt.Sprintf("File exceeds the maximum upload size of %d bytes.", h.maxFileSize)),
		})
		return
	}
	if !widget.Allows(header.Filename) {
		h.reply(w, r, kind, http.StatusBadRequest, views.UploadOutcome{Status: widget.RejectedFile(header.Filename)})
		return
	}

	res, err := h.service.Upload(ctx, requestID, kind, header.Filename, file)
	if err != nil {
		nuts.L.Warnf("[Upload] %s upload of %s failed: %v", kind, header.Filename, err)
	} else if res.CSV != nil && len(res.CSV.Errors) > 0 {
		nuts.L.Warnf("[Upload] %s: %d rows rejected by backend: %v", header.Filename, len(res.CSV.Errors), res.CSV.Errors)
	}

	status := http.StatusOK
	if err != nil {
		status = errors.StatusOf(err)
	}
	h.reply(w, r, kind, status, views.UploadStatus(res, err))
}

// reply answers the widget script with JSON, or re-renders the insert page
// for a plain form submission.
func (h *UploadHandlers) reply(w http.ResponseWriter, r *http.Request, kind models.UploadKind, status int, outcome views.UploadOutcome) {
	if wantsJSON(r) {
		respondWithJSON(w, status, UploadReply{
			Message:    outcome.Status.Message,
			IsError:    outcome.Status.IsError(),
			ClearInput: outcome.ClearInput,
			RequestID:  middleware.RequestID(r.Context()),
		})
		return
	}
	h.render(w, r, views.PageInsert, status, h.insertView(kind, outcome.Status))
}
