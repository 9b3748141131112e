package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/envmon/console/internal/config"
	"github.com/envmon/console/internal/session"
	nuts "github.com/vaudience/go-nuts"
)

type contextKey string

const (
	sessionKey   contextKey = "session"
	requestIDKey contextKey = "request_id"

	// RequestIDHeader carries the request id back to the caller.
	RequestIDHeader = "X-Request-ID"

	maxSessionIDLength = 64
)

// SessionMiddleware binds every request to a browser session and tags it
// with a request id. There is no authentication; the session only scopes
// the console workspace.
type SessionMiddleware struct {
	cookieName string
	ttl        time.Duration
}

func NewSessionMiddleware(cfg config.SessionConfig) *SessionMiddleware {
	name := cfg.CookieName
	if name == "" {
		name = "envmon_session"
	}
	return &SessionMiddleware{cookieName: name, ttl: cfg.TTL}
}

// Attach resolves the session cookie, issuing a new session when it is
// missing or malformed, and stores session and request ids in the context.
func (m *SessionMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(m.cookieName); err == nil && validSessionID(c.Value) {
			sid = c.Value
		}
		if sid == "" {
			sid = session.NewSessionID()
			cookie := &http.Cookie{
				Name:     m.cookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			}
			if m.ttl > 0 {
				cookie.MaxAge = int(m.ttl.Seconds())
			}
			http.SetCookie(w, cookie)
		}

		requestID := nuts.NID("req", 12)
		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), sessionKey, sid)
		ctx = context.WithValue(ctx, requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the session bound to ctx by Attach.
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey).(string)
	return sid
}

// RequestID returns the request id bound to ctx by Attach.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func validSessionID(v string) bool {
	if v == "" || len(v) > maxSessionIDLength {
		return false
	}
	return !strings.ContainsAny(v, " ;,\"\\")
}
