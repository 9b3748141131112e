// FilePath: internal/views/views.status.go
package views

import (
	"fmt"
	"net/http"

	"github.com/envmon/console/internal/errors"
)

// StatusKind selects the style of an inline status message.
type StatusKind string

const (
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the replacement text shown inside a status or results element.
type Status struct {
	Message string     `json:"message"`
	Kind    StatusKind `json:"kind"`
}

// IsError reports whether the status is rendered in the error style.
func (s Status) IsError() bool {
	return s.Kind == StatusError
}

// Empty reports whether there is nothing to show.
func (s Status) Empty() bool {
	return s.Message == ""
}

func Info(msg string) Status        { return Status{Message: msg, Kind: StatusInfo} }
func Success(msg string) Status     { return Status{Message: msg, Kind: StatusSuccess} }
func ErrorStatus(msg string) Status { return Status{Message: msg, Kind: StatusError} }

// Messages shown by more than one view.
const (
	MsgNoSource        = "Please select a data source."
	MsgNoData          = "No data found for the selected criteria."
	MsgNoAudio         = "No audio recordings found."
	MsgNoCorrelation   = "No correlated data found for this recording."
	MsgNoRecording     = "No audio recording selected."
	MsgNoSelection     = "No rows selected for deletion."
	MsgConfirmDelete   = "Are you sure about deleting the selected rows?"
	MsgDeleteSucceeded = "Selected rows deleted successfully."
)

// reason returns the best human text for err: the server-provided message,
// the HTTP status text, or the transport error text.
func reason(err error) string {
	ce, ok := errors.As(err)
	if !ok {
		return err.Error()
	}
	if ce.Message != "" {
		return ce.Message
	}
	if ce.Type == errors.ErrorTypeBackend {
		if text := http.StatusText(ce.Code); text != "" {
			return text
		}
		return fmt.Sprintf("HTTP %d", ce.Code)
	}
	return ce.Error()
}

// DeleteStatus maps the outcome of a bulk delete to its flash message.
func DeleteStatus(err error) Status {
	if err == nil {
		return Success(MsgDeleteSucceeded)
	}
	if errors.IsValidation(err) {
		return ErrorStatus(reason(err))
	}
	return ErrorStatus("Delete failed: " + reason(err))
}
