// FilePath: internal/models/models.actions.go
package models

import "time"

// UploadKind identifies an upload widget and its backend endpoint.
type UploadKind string

const (
	UploadCSV   UploadKind = "csv"
	UploadAudio UploadKind = "audio"
)

// CSVUploadResult is the backend answer to a CSV upload.
type CSVUploadResult struct {
	Status       string `json:"status"`
	SuccessCount int    `json:"success_count"`
	FailCount    int    `json:"fail_count"`
	Message      string `json:"message,omitempty"`
	Errors       []any  `json:"errors,omitempty"`
}

// UploadResponse is any successful upload answer. Exactly one of the two
// fields is set, depending on the response body.
type UploadResponse struct {
	Audio *AudioUploadResult
	CSV   *CSVUploadResult
}

// DeleteRequest is the JSON body posted to the backend delete endpoint.
type DeleteRequest struct {
	IDs  []string   `json:"ids"`
	Type DataSource `json:"type"`
}

// Selection is the set of checked row identifiers plus the active data-source tag.
type Selection struct {
	IDs    []string
	Source DataSource
}

// Count returns the number of selected rows, ignoring blank identifiers.
func (s Selection) Count() int {
	n := 0
	for _, id := range s.IDs {
		if id != "" {
			n++
		}
	}
	return n
}

// Normalized drops blank and duplicate identifiers, keeping first occurrences.
func (s Selection) Normalized() Selection {
	seen := make(map[string]struct{}, len(s.IDs))
	ids := make([]string, 0, len(s.IDs))
	for _, id := range s.IDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return Selection{IDs: ids, Source: s.Source}
}

// ActivityAction names a console action recorded in the journal.
type ActivityAction string

const (
	ActionUpload ActivityAction = "upload"
	ActionDelete ActivityAction = "delete"
)

// ActivityEntry is one journaled upload or delete issued through the console.
type ActivityEntry struct {
	ID        string         `json:"id" db:"id"`
	Action    ActivityAction `json:"action" db:"action"`
	Kind      string         `json:"kind" db:"kind"`
	Target    string         `json:"target" db:"target"`
	Outcome   string         `json:"outcome" db:"outcome"`
	Detail    string         `json:"detail" db:"detail"`
	RequestID string         `json:"request_id" db:"request_id"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
