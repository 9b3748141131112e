// FilePath: internal/models/api.models.query.go
package models

import (
	"net/url"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DataSource selects which backend collection a query targets.
type DataSource string

const (
	SourceSensor   DataSource = "sensor"
	SourceWeather  DataSource = "weather"
	SourceCombined DataSource = "combined"
	// SourceAudio is only used as a delete tag on the audio list page.
	SourceAudio DataSource = "audio"
)

var queryEndpoints = map[DataSource]string{
	SourceSensor:   "/api/v1/sensors",
	SourceWeather:  "/api/v1/weather",
	SourceCombined: "/api/v1/combined",
}

// QuerySources lists the selectable sources in display order.
func QuerySources() []DataSource {
	return []DataSource{SourceSensor, SourceWeather, SourceCombined}
}

// Endpoint returns the backend path for a queryable source.
func (s DataSource) Endpoint() (string, bool) {
	ep, ok := queryEndpoints[s]
	return ep, ok
}

// IDField is the column that identifies a row of this source.
func (s DataSource) IDField() string {
	switch s {
	case SourceSensor:
		return "sensor_id"
	case SourceWeather:
		return "weather_id"
	default:
		return "id"
	}
}

// IsDeletable reports whether the backend delete endpoint accepts this tag.
func (s DataSource) IsDeletable() bool {
	switch s {
	case SourceSensor, SourceWeather, SourceCombined, SourceAudio:
		return true
	}
	return false
}

// QueryParams are the user-selected filters of the Query/Browse view.
type QueryParams struct {
	Source    DataSource `json:"source" schema:"source"`
	StartDate string     `json:"start_date,omitempty" schema:"start_date"`
	EndDate   string     `json:"end_date,omitempty" schema:"end_date"`
	StartTime string     `json:"start_time,omitempty" schema:"start_time"`
	EndTime   string     `json:"end_time,omitempty" schema:"end_time"`
}

// Values returns the non-empty bounds as query parameters. Empty bounds are omitted.
func (p QueryParams) Values() url.Values {
	v := url.Values{}
	for _, kv := range [][2]string{
		{"start_date", p.StartDate},
		{"start_time", p.StartTime},
		{"end_date", p.EndDate},
		{"end_time", p.EndTime},
	} {
		if kv[1] != "" {
			v.Set(kv[0], kv[1])
		}
	}
	return v
}

// PageValues returns the parameters that reproduce this query on the console page.
func (p QueryParams) PageValues() url.Values {
	v := p.Values()
	if p.Source != "" {
		v.Set("source", string(p.Source))
	}
	return v
}

// QueryRow is one heterogeneous result row with its keys in backend order.
// ID is the row identifier, normalized once when the row is decoded.
type QueryRow struct {
	ID     string                                `json:"row_id"`
	Fields *orderedmap.OrderedMap[string, Value] `json:"fields"`
}

// NewQueryRow normalizes the row identifier for source: the source's own id
// column first, then sensor_id, weather_id and id, else empty.
func NewQueryRow(source DataSource, fields *orderedmap.OrderedMap[string, Value]) QueryRow {
	if fields == nil {
		fields = orderedmap.New[string, Value]()
	}
	row := QueryRow{Fields: fields}
	for _, key := range []string{source.IDField(), "sensor_id", "weather_id", "id"} {
		if v, ok := fields.Get(key); ok && !v.IsEmpty() {
			row.ID = v.String()
			break
		}
	}
	return row
}

// Keys returns the row's keys in their original order.
func (r QueryRow) Keys() []string {
	if r.Fields == nil {
		return nil
	}
	keys := make([]string, 0, r.Fields.Len())
	for pair := r.Fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Get returns the value stored under key, absent values are null.
func (r QueryRow) Get(key string) Value {
	if r.Fields == nil {
		return nil
	}
	v, _ := r.Fields.Get(key)
	return v
}

// QueryResult is the outcome of one successful query fetch.
type QueryResult struct {
	Params QueryParams `json:"params"`
	Rows   []QueryRow  `json:"rows"`
	// NoContent is set when the backend answered 204.
	NoContent bool `json:"no_content,omitempty"`
}

// Empty reports the "no data" state (204 or empty array).
func (r *QueryResult) Empty() bool {
	return r == nil || r.NoContent || len(r.Rows) == 0
}
