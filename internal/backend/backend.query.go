// FilePath: internal/backend/backend.query.go
package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/envmon/console/internal/errors"
	"github.com/envmon/console/internal/models"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Query fetches rows for params.Source bounded by the non-empty date/time bounds.
// A 204 answer or an empty array yields an empty result, not an error.
func (c *Client) Query(ctx context.Context, params models.QueryParams) (*models.QueryResult, error) {
	if params.Source == "" {
		return nil, errors.NewValidationError("Please select a data source.", nil)
	}
	endpoint, ok := params.Source.Endpoint()
	if !ok {
		return nil, errors.NewValidationError("Please select a data source.", nil).
			WithDetails(map[string]string{"source": string(params.Source)})
	}

	req := c.http.R().SetContext(ctx).SetQueryParamsFromValues(params.Values())
	resp, err := c.execute(req, http.MethodGet, endpoint)
	if err != nil {
		return nil, err
	}

	result := &models.QueryResult{Params: params}
	if resp.StatusCode() == http.StatusNoContent || len(resp.Body()) == 0 {
		result.NoContent = true
		return result, nil
	}
	if err := bodyError(resp); err != nil {
		return nil, err
	}

	rows, err := decodeRows(params.Source, resp.Body())
	if err != nil {
		return nil, errors.NewBackendError(resp.StatusCode(), "", err)
	}
	result.Rows = rows
	return result, nil
}

// decodeRows keeps each row's keys in the order the backend sent them and
// normalizes the row identifier once, here at the boundary.
func decodeRows(source models.DataSource, body []byte) ([]models.QueryRow, error) {
	var raw []*orderedmap.OrderedMap[string, models.Value]
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	rows := make([]models.QueryRow, 0, len(raw))
	for _, fields := range raw {
		rows = append(rows, models.NewQueryRow(source, fields))
	}
	return rows, nil
}

// Delete asks the backend to remove the selected rows of one data source.
func (c *Client) Delete(ctx context.Context, sel models.Selection) error {
	sel = sel.Normalized()
	if sel.Count() == 0 {
		return errors.NewValidationError("No rows selected for deletion.", nil)
	}
	if !sel.Source.IsDeletable() {
		return errors.NewValidationError("Unknown data type for deletion.", nil)
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.DeleteRequest{IDs: sel.IDs, Type: sel.Source})
	_, err := c.execute(req, http.MethodPost, pathDelete)
	return err
}
