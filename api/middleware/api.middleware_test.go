package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/envmon/console/internal/config"
)

func TestAttachIssuesSession(t *testing.T) {
	m := NewSessionMiddleware(config.SessionConfig{CookieName: "sid", TTL: time.Hour})
	var gotSID, gotReq string
	h := m.Attach(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSID = SessionID(r.Context())
		gotReq = RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.HasPrefix(gotSID, "ses") {
		t.Fatalf("session id = %q", gotSID)
	}
	if gotReq == "" || rec.Header().Get(RequestIDHeader) != gotReq {
		t.Fatalf("request id = %q, header %q", gotReq, rec.Header().Get(RequestIDHeader))
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sid" || cookies[0].Value != gotSID || !cookies[0].HttpOnly {
		t.Fatalf("cookies = %+v", cookies)
	}
	if cookies[0].MaxAge != 3600 {
		t.Fatalf("max age = %d", cookies[0].MaxAge)
	}
}

func TestAttachKeepsExistingSession(t *testing.T) {
	m := NewSessionMiddleware(config.SessionConfig{CookieName: "sid"})
	var gotSID string
	h := m.Attach(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSID = SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "ses_abc"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if gotSID != "ses_abc" {
		t.Fatalf("session id = %q", gotSID)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("existing session must not be reissued")
	}
}

func TestAttachReplacesMalformedSession(t *testing.T) {
	m := NewSessionMiddleware(config.SessionConfig{})
	var gotSID string
	h := m.Attach(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSID = SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "envmon_session", Value: strings.Repeat("x", 100)})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if len(gotSID) > maxSessionIDLength || gotSID == "" {
		t.Fatalf("session id = %q", gotSID)
	}
}
