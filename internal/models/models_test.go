package models

import (
	"encoding/json"
	"testing"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func decodeRow(t *testing.T, source DataSource, raw string) QueryRow {
	t.Helper()
	fields := orderedmap.New[string, Value]()
	if err := json.Unmarshal([]byte(raw), fields); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return NewQueryRow(source, fields)
}

func TestQueryRowKeepsKeyOrder(t *testing.T) {
	row := decodeRow(t, SourceWeather, `{"weather_id":7,"date":"2024-05-01","time":"10:00","out_temperature":21.4,"wind_direction":null}`)

	want := []string{"weather_id", "date", "time", "out_temperature", "wind_direction"}
	got := row.Keys()
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}
	if row.ID != "7" {
		t.Fatalf("row id = %q, want 7", row.ID)
	}
	if s := row.Get("out_temperature").String(); s != "21.4" {
		t.Fatalf("out_temperature = %q", s)
	}
	if !row.Get("wind_direction").IsNull() {
		t.Fatal("null field should be null")
	}
	if !row.Get("missing").IsNull() {
		t.Fatal("absent field should be null")
	}
}

func TestQueryRowIDFallback(t *testing.T) {
	tests := []struct {
		source DataSource
		raw    string
		want   string
	}{
		{SourceSensor, `{"sensor_id":"s-1","id":9}`, "s-1"},
		{SourceCombined, `{"weather_id":3,"sensor_id":4}`, "4"},
		{SourceCombined, `{"id":12}`, "12"},
		{SourceCombined, `{"date":"2024-05-01"}`, ""},
		{SourceSensor, `{"sensor_id":null,"id":5}`, "5"},
	}
	for _, tt := range tests {
		if got := decodeRow(t, tt.source, tt.raw).ID; got != tt.want {
			t.Errorf("%s %s: id = %q, want %q", tt.source, tt.raw, got, tt.want)
		}
	}
}

func TestQueryParamsOmitEmptyBounds(t *testing.T) {
	p := QueryParams{Source: SourceWeather, StartDate: "2024-05-01", EndDate: "2024-05-02"}
	v := p.Values()
	if v.Get("start_date") != "2024-05-01" || v.Get("end_date") != "2024-05-02" {
		t.Fatalf("bounds missing: %v", v)
	}
	if _, ok := v["start_time"]; ok {
		t.Fatal("empty start_time must be omitted")
	}
	if _, ok := v["end_time"]; ok {
		t.Fatal("empty end_time must be omitted")
	}
	if _, ok := v["source"]; ok {
		t.Fatal("source is not a backend parameter")
	}
}

func TestIDAcceptsNumbersAndStrings(t *testing.T) {
	var recs []AudioRecord
	raw := `[{"id":42,"filename":"a.wav"},{"id":"x-1","filename":"b.wav"}]`
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		t.Fatal(err)
	}
	if recs[0].ID != "42" || recs[1].ID != "x-1" {
		t.Fatalf("ids = %q, %q", recs[0].ID, recs[1].ID)
	}
}

func TestSplitTimestamp(t *testing.T) {
	date, clock := SplitTimestamp("2024-05-01 10:00:00")
	if date != "2024-05-01" || clock != "10:00:00" {
		t.Fatalf("got %q %q", date, clock)
	}
	date, clock = SplitTimestamp("2024-05-01")
	if date != "2024-05-01" || clock != "" {
		t.Fatalf("got %q %q", date, clock)
	}
}

func TestSelectionNormalized(t *testing.T) {
	sel := Selection{IDs: []string{"1", "", "2", "1"}, Source: SourceSensor}.Normalized()
	if sel.Count() != 2 || sel.IDs[0] != "1" || sel.IDs[1] != "2" {
		t.Fatalf("normalized = %v", sel.IDs)
	}
}

func TestBundleFromLegacy(t *testing.T) {
	b := BundleFromLegacy([]LegacyReading{{Time: "2024-05-01 10:00:00", Moisture: NumberValue(31)}})
	if b.Empty() || len(b.SensorData) != 1 || b.SensorData[0].Timestamp != "2024-05-01 10:00:00" {
		t.Fatalf("bundle = %+v", b)
	}
	if !BundleFromLegacy(nil).Empty() {
		t.Fatal("empty legacy list should be an empty bundle")
	}
}
