// FilePath: internal/backend/backend.audio.go
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/envmon/console/internal/errors"
	"github.com/envmon/console/internal/models"
	"github.com/tidwall/gjson"
)

// ListAudio fetches every uploaded recording.
func (c *Client) ListAudio(ctx context.Context) ([]models.AudioRecord, error) {
	resp, err := c.execute(c.http.R().SetContext(ctx), http.MethodGet, pathAudioList)
	if err != nil {
		return nil, err
	}
	if err := bodyError(resp); err != nil {
		return nil, err
	}

	var records []models.AudioRecord
	if len(resp.Body()) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, errors.NewBackendError(resp.StatusCode(), "unexpected audio list payload", err)
	}
	return records, nil
}

// Environmental fetches the readings correlated with one recording. Both the
// bundle shape and the legacy flat array of {time, moisture} are accepted; the
// latter is normalized into a bundle.
func (c *Client) Environmental(ctx context.Context, audioID string) (*models.EnvironmentalBundle, error) {
	if audioID == "" {
		return nil, errors.NewValidationError("audio_id is required", nil)
	}
	req := c.http.R().SetContext(ctx).SetQueryParam("audio_id", audioID)
	resp, err := c.execute(req, http.MethodGet, pathAudioEnv)
	if err != nil {
		return nil, err
	}
	if err := bodyError(resp); err != nil {
		return nil, err
	}
	return decodeBundle(resp.Body())
}

func decodeBundle(body []byte) (*models.EnvironmentalBundle, error) {
	if len(body) == 0 {
		return &models.EnvironmentalBundle{}, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.NewBackendError(http.StatusOK, "environmental payload is not JSON", nil)
	}

	switch parsed := gjson.ParseBytes(body); {
	case parsed.IsArray():
		var legacy []models.LegacyReading
		if err := json.Unmarshal(body, &legacy); err != nil {
			return nil, errors.NewBackendError(http.StatusOK, "unexpected environmental payload", err)
		}
		return models.BundleFromLegacy(legacy), nil
	case parsed.IsObject():
		bundle := &models.EnvironmentalBundle{}
		if err := json.Unmarshal(body, bundle); err != nil {
			return nil, errors.NewBackendError(http.StatusOK, "unexpected environmental payload", err)
		}
		return bundle, nil
	default:
		return nil, errors.NewBackendError(http.StatusOK, fmt.Sprintf("unexpected environmental payload type %s", parsed.Type), nil)
	}
}
