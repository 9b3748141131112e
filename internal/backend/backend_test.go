package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/envmon/console/internal/config"
	"github.com/envmon/console/internal/errors"
	"github.com/envmon/console/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.BackendConfig{BaseURL: srv.URL, UserAgent: "test"})
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func TestQueryBuildsURL(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		writeJSON(w, http.StatusOK, `[{"weather_id":7,"date":"2024-05-01","time":"10:00","out_temperature":21.4}]`)
	})

	res, err := c.Query(context.Background(), models.QueryParams{
		Source:    models.SourceWeather,
		StartDate: "2024-05-01",
		EndDate:   "2024-05-02",
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if gotPath != "/api/v1/weather" {
		t.Fatalf("path = %q", gotPath)
	}
	if len(gotQuery) != 2 || gotQuery["start_date"][0] != "2024-05-01" || gotQuery["end_date"][0] != "2024-05-02" {
		t.Fatalf("query = %v", gotQuery)
	}
	if len(res.Rows) != 1 || res.Rows[0].ID != "7" {
		t.Fatalf("rows = %+v", res.Rows)
	}
	keys := res.Rows[0].Keys()
	if strings.Join(keys, ",") != "weather_id,date,time,out_temperature" {
		t.Fatalf("keys = %v", keys)
	}
}

func TestQueryEndpoints(t *testing.T) {
	for source, path := range map[models.DataSource]string{
		models.SourceSensor:   "/api/v1/sensors",
		models.SourceWeather:  "/api/v1/weather",
		models.SourceCombined: "/api/v1/combined",
	} {
		var got string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			got = r.URL.Path
			writeJSON(w, http.StatusOK, `[]`)
		})
		res, err := c.Query(context.Background(), models.QueryParams{Source: source})
		if err != nil {
			t.Fatalf("%s: %v", source, err)
		}
		if got != path {
			t.Errorf("%s: path = %q, want %q", source, got, path)
		}
		if !res.Empty() {
			t.Errorf("%s: expected empty result", source)
		}
	}
}

func TestQueryOutcomes(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantEmpty bool
		wantMsg   string
	}{
		{name: "no content", status: http.StatusNoContent, wantEmpty: true},
		{name: "empty array", status: http.StatusOK, body: `[]`, wantEmpty: true},
		{name: "server error text", status: http.StatusInternalServerError, body: `{"error":"Failed to load sensor data: boom"}`, wantMsg: "Failed to load sensor data: boom"},
		{name: "error field on 200", status: http.StatusOK, body: `{"error":"bad range"}`, wantMsg: "bad range"},
		{name: "non-json failure", status: http.StatusBadGateway, body: `<html>`, wantMsg: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.status == http.StatusNoContent {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			})
			res, err := c.Query(context.Background(), models.QueryParams{Source: models.SourceSensor})
			if tt.wantEmpty {
				if err != nil || !res.Empty() {
					t.Fatalf("want empty result, got %+v, %v", res, err)
				}
				return
			}
			ce, ok := errors.As(err)
			if !ok || ce.Type != errors.ErrorTypeBackend {
				t.Fatalf("want backend error, got %v", err)
			}
			if ce.Message != tt.wantMsg {
				t.Fatalf("message = %q, want %q", ce.Message, tt.wantMsg)
			}
		})
	}
}

func TestQueryWithoutSourceMakesNoRequest(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	_, err := c.Query(context.Background(), models.QueryParams{})
	if !errors.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
	if _, err := c.Query(context.Background(), models.QueryParams{Source: "rainfall"}); !errors.IsValidation(err) {
		t.Fatalf("unknown source: want validation error, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatal("backend must not be called")
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := New(config.BackendConfig{BaseURL: srv.URL})

	_, err := c.ListAudio(context.Background())
	if !errors.IsTransport(err) {
		t.Fatalf("want transport error, got %v", err)
	}
}

func TestEnvironmentalShapes(t *testing.T) {
	t.Run("bundle", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("audio_id") != "42" {
				t.Errorf("audio_id = %q", r.URL.Query().Get("audio_id"))
			}
			writeJSON(w, http.StatusOK, `{"sensor_data":[{"timestamp":"2024-05-01 10:00:00","moisture":31}],"weather_data":[]}`)
		})
		b, err := c.Environmental(context.Background(), "42")
		if err != nil {
			t.Fatal(err)
		}
		if len(b.SensorData) != 1 || b.SensorData[0].Moisture.String() != "31" {
			t.Fatalf("bundle = %+v", b)
		}
	})
	t.Run("legacy array", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `[{"time":"2024-05-01 10:00:00","moisture":12.5}]`)
		})
		b, err := c.Environmental(context.Background(), "1")
		if err != nil {
			t.Fatal(err)
		}
		if len(b.SensorData) != 1 || b.SensorData[0].Timestamp != "2024-05-01 10:00:00" {
			t.Fatalf("bundle = %+v", b)
		}
	})
	t.Run("legacy empty", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `[]`)
		})
		b, err := c.Environmental(context.Background(), "1")
		if err != nil || !b.Empty() {
			t.Fatalf("want empty bundle, got %+v, %v", b, err)
		}
	})
	t.Run("not found", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"error":"Audio recroding not found"}`)
		})
		_, err := c.Environmental(context.Background(), "9")
		if errors.StatusOf(err) != http.StatusNotFound {
			t.Fatalf("want 404 backend error, got %v", err)
		}
	})
}

func TestUploadClassification(t *testing.T) {
	tests := []struct {
		name     string
		kind     models.UploadKind
		status   int
		body     string
		wantPath string
		check    func(t *testing.T, res *models.UploadResponse, err error)
	}{
		{
			name: "audio id", kind: models.UploadAudio, status: http.StatusOK,
			body: `{"status":"success","audio_id":42}`, wantPath: "/api/v1/audio/upload",
			check: func(t *testing.T, res *models.UploadResponse, err error) {
				if err != nil || res.Audio == nil || res.Audio.RecordingID() != "42" {
					t.Fatalf("got %+v, %v", res, err)
				}
			},
		},
		{
			name: "csv counts", kind: models.UploadCSV, status: http.StatusOK,
			body: `{"status":"completed","success_count":3,"fail_count":1}`, wantPath: "/api/v1/upload",
			check: func(t *testing.T, res *models.UploadResponse, err error) {
				if err != nil || res.CSV == nil || res.CSV.SuccessCount != 3 || res.CSV.FailCount != 1 {
					t.Fatalf("got %+v, %v", res, err)
				}
			},
		},
		{
			name: "csv status error on 200", kind: models.UploadCSV, status: http.StatusOK,
			body: `{"status":"error","message":"Empty file"}`, wantPath: "/api/v1/upload",
			check: func(t *testing.T, res *models.UploadResponse, err error) {
				ce, ok := errors.As(err)
				if !ok || ce.Message != "Empty file" {
					t.Fatalf("got %+v, %v", res, err)
				}
			},
		},
		{
			name: "rejected", kind: models.UploadAudio, status: http.StatusBadRequest,
			body: `{"status":"error","message":"Invalid file type."}`, wantPath: "/api/v1/audio/upload",
			check: func(t *testing.T, res *models.UploadResponse, err error) {
				ce, ok := errors.As(err)
				if !ok || ce.Code != http.StatusBadRequest || ce.Message != "Invalid file type." {
					t.Fatalf("got %+v, %v", res, err)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.wantPath {
					t.Errorf("path = %q, want %q", r.URL.Path, tt.wantPath)
				}
				f, hdr, err := r.FormFile("file")
				if err != nil {
					t.Errorf("form file: %v", err)
				} else {
					data, _ := io.ReadAll(f)
					if hdr.Filename != "data.bin" || string(data) != "payload" {
						t.Errorf("file = %q %q", hdr.Filename, data)
					}
				}
				writeJSON(w, tt.status, tt.body)
			})
			res, err := c.Upload(context.Background(), tt.kind, "data.bin", strings.NewReader("payload"))
			tt.check(t, res, err)
		})
	}
}

func TestDelete(t *testing.T) {
	var got models.DeleteRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/delete" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		writeJSON(w, http.StatusOK, `{"status":"ok"}`)
	})

	err := c.Delete(context.Background(), models.Selection{IDs: []string{"3", "4", "3"}, Source: models.SourceSensor})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got.Type != models.SourceSensor || len(got.IDs) != 2 {
		t.Fatalf("request = %+v", got)
	}
}

func TestDeleteEmptySelection(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	err := c.Delete(context.Background(), models.Selection{Source: models.SourceAudio})
	if !errors.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatal("backend must not be called for an empty selection")
	}
}
