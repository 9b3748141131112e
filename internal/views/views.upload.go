// FilePath: internal/views/views.upload.go
package views

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/envmon/console/internal/errors"
	"github.com/envmon/console/internal/models"
)

// UploadWidget is the per-instance configuration of a drag/drop file picker.
// The element ids are what the page script binds to.
type UploadWidget struct {
	Kind           models.UploadKind
	DropZoneID     string
	FileInputID    string
	FormID         string
	StatusID       string
	SubmitEndpoint string
	FileTypeLabel  string
	Extensions     []string
}

// NewUploadWidget builds the widget for kind with element ids derived from it.
func NewUploadWidget(kind models.UploadKind, label string, extensions []string) UploadWidget {
	prefix := string(kind)
	return UploadWidget{
		Kind:           kind,
		DropZoneID:     prefix + "-drop-zone",
		FileInputID:    prefix + "-file-input",
		FormID:         prefix + "-upload-form",
		StatusID:       prefix + "-status",
		SubmitEndpoint: "/console/v1/upload/" + prefix,
		FileTypeLabel:  label,
		Extensions:     extensions,
	}
}

// Accept is the value of the file input's accept attribute.
func (w UploadWidget) Accept() string {
	return strings.Join(w.Extensions, ",")
}

// Allows reports whether filename carries one of the widget's extensions.
// A widget without extensions accepts every file.
func (w UploadWidget) Allows(filename string) bool {
	if len(w.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range w.Extensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

// MissingFile is the local validation failure for a submit without a file.
func (w UploadWidget) MissingFile() Status {
	return ErrorStatus(fmt.Sprintf("Please select a %s file first.", w.FileTypeLabel))
}

// RejectedFile is the local validation failure for a disallowed extension.
func (w UploadWidget) RejectedFile(filename string) Status {
	return ErrorStatus(fmt.Sprintf("Upload failed: %s is not a %s file (%s).",
		filename, w.FileTypeLabel, strings.Join(w.Extensions, ", ")))
}

// PickedMessage is the status text after a file was chosen in the dialog or dropped.
func PickedMessage(label, filename string, dropped bool) string {
	verb := "selected"
	if dropped {
		verb = "dropped"
	}
	return fmt.Sprintf("%s %s: %s", label, verb, filename)
}

// UploadOutcome is the status of one submission plus whether the file input
// is cleared afterwards.
type UploadOutcome struct {
	Status     Status
	ClearInput bool
}

// UploadStatus maps a backend upload answer to the widget status.
// Successes clear the input; every failure keeps it so the user can retry.
func UploadStatus(res *models.UploadResponse, err error) UploadOutcome {
	if err != nil {
		switch {
		case errors.IsValidation(err):
			return UploadOutcome{Status: ErrorStatus(reason(err))}
		case errors.IsTransport(err):
			return UploadOutcome{Status: ErrorStatus("A network or server error occurred: " + reason(err))}
		default:
			return UploadOutcome{Status: ErrorStatus("Upload failed: " + reason(err))}
		}
	}

	switch {
	case res != nil && res.Audio != nil:
		msg := fmt.Sprintf("Upload successful: audio recording %s saved.", res.Audio.RecordingID())
		return UploadOutcome{Status: Success(msg), ClearInput: true}
	case res != nil && res.CSV != nil:
		msg := fmt.Sprintf("Upload successful: %d rows inserted. %d rows failed.",
			res.CSV.SuccessCount, res.CSV.FailCount)
		st := Success(msg)
		if res.CSV.FailCount > 0 {
			st = ErrorStatus(msg)
		}
		return UploadOutcome{Status: st, ClearInput: true}
	}
	return UploadOutcome{Status: ErrorStatus("Upload failed: Unknown error occurred.")}
}
