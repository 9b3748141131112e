// FilePath: internal/backend/backend.client.go
package backend

import (
	"context"
	"net/http"
	"strings"

	"github.com/envmon/console/internal/config"
	"github.com/envmon/console/internal/errors"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	nuts "github.com/vaudience/go-nuts"
)

// Backend REST routes consumed by the console.
const (
	pathAudioList     = "/api/v1/audio/list"
	pathAudioEnv      = "/api/v1/audio/environmental"
	pathAudioUpload   = "/api/v1/audio/upload"
	pathCSVUpload     = "/api/v1/upload"
	pathDelete        = "/api/v1/delete"
	multipartFileName = "file"
)

// Client is the typed client for the environmental backend. It is the only
// component that talks to the backend; every failure it returns is a
// *errors.ConsoleError of type backend or transport.
type Client struct {
	http *resty.Client
}

// New creates a client for the backend described by cfg.
func New(cfg config.BackendConfig) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		nuts.L.Debugf("[Backend] %s %s -> %d (%v)",
			resp.Request.Method, resp.Request.URL, resp.StatusCode(), resp.Time())
		return nil
	})
	return &Client{http: rc}
}

// Ping reports whether the backend answers at all. Any status below 500 counts.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get(pathAudioList)
	if err != nil {
		return errors.NewTransportError(err)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return errors.NewBackendError(resp.StatusCode(), serverMessage(resp.Body()), nil)
	}
	return nil
}

// execute runs req and classifies the outcome: transport failures and non-2xx
// statuses become ConsoleErrors, the raw response is returned either way when present.
func (c *Client) execute(req *resty.Request, method, path string) (*resty.Response, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		nuts.L.Warnf("[Backend] %s %s failed: %v", method, path, err)
		return nil, errors.NewTransportError(err)
	}
	if !resp.IsSuccess() {
		return resp, errors.NewBackendError(resp.StatusCode(), serverMessage(resp.Body()), nil)
	}
	return resp, nil
}

// serverMessage extracts the backend's error text from a JSON body:
// the "error" field first, then "message".
func serverMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, key := range []string{"error", "message"} {
		if r := gjson.GetBytes(body, key); r.Exists() && r.String() != "" {
			return r.String()
		}
	}
	return ""
}

// bodyError reports a JSON "error" field carried by an otherwise successful response.
func bodyError(resp *resty.Response) error {
	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return nil
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return nil
	}
	if r := parsed.Get("error"); r.Exists() {
		msg := r.String()
		return errors.NewBackendError(resp.StatusCode(), msg, nil)
	}
	return nil
}
