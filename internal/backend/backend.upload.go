// FilePath: internal/backend/backend.upload.go
package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/envmon/console/internal/errors"
	"github.com/envmon/console/internal/models"
	"github.com/tidwall/gjson"
	nuts "github.com/vaudience/go-nuts"
)

// UploadEndpoint returns the backend route that accepts uploads of kind.
func UploadEndpoint(kind models.UploadKind) (string, bool) {
	switch kind {
	case models.UploadCSV:
		return pathCSVUpload, true
	case models.UploadAudio:
		return pathAudioUpload, true
	}
	return "", false
}

// Upload posts one file as multipart field "file" to the endpoint of kind.
// The response is classified by its content: a body carrying an audio id is an
// audio result, anything else is read as CSV row counts.
func (c *Client) Upload(ctx context.Context, kind models.UploadKind, filename string, content io.Reader) (*models.UploadResponse, error) {
	endpoint, ok := UploadEndpoint(kind)
	if !ok {
		return nil, errors.NewValidationError("unknown upload kind", nil)
	}

	req := c.http.R().
		SetContext(ctx).
		SetFileReader(multipartFileName, filename, content)
	resp, err := c.execute(req, http.MethodPost, endpoint)
	if err != nil {
		return nil, err
	}
	return decodeUpload(resp.StatusCode(), resp.Body())
}

func decodeUpload(status int, body []byte) (*models.UploadResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.NewBackendError(status, "upload response is not JSON", nil)
	}
	parsed := gjson.ParseBytes(body)
	if parsed.Get("audio_id").Exists() || parsed.Get("id").Exists() {
		res := &models.AudioUploadResult{}
		if err := json.Unmarshal(body, res); err != nil {
			return nil, errors.NewBackendError(status, "unexpected upload payload", err)
		}
		return &models.UploadResponse{Audio: res}, nil
	}

	// A CSV run that could not start reports status "error" with a 2xx code.
	if parsed.Get("status").String() == "error" || parsed.Get("error").Exists() {
		return nil, errors.NewBackendError(status, serverMessage(body), nil)
	}

	res := &models.CSVUploadResult{}
	if err := json.Unmarshal(body, res); err != nil {
		return nil, errors.NewBackendError(status, "unexpected upload payload", err)
	}
	if len(res.Errors) > 0 {
		nuts.L.Warnf("[Backend] CSV upload reported %d row errors: %v", len(res.Errors), res.Errors)
	}
	return &models.UploadResponse{CSV: res}, nil
}
