package echoapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysregister/sysregister/core"
	"github.com/sysregister/sysregister/services/spaggiari"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeUpstream is a scripted stand-in for the ClasseViva REST service; it
// counts every request that reaches it.
type fakeUpstream struct {
	*httptest.Server
	hitCount atomic.Int32
}

func newFakeUpstream(handler func(w http.ResponseWriter, r *http.Request)) *fakeUpstream {
	up := &fakeUpstream{}
	up.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up.hitCount.Add(1)
		handler(w, r)
	}))
	return up
}

func (up *fakeUpstream) hits() int { return int(up.hitCount.Load()) }

func newTestServer(upstreamURL string) Server {
	conf := &core.Config{
		Env:      "TEST",
		Debug:    true,
		TestMode: true,
		Upstream: core.UpstreamConfig{
			BaseURL:   upstreamURL,
			Host:      "classeviva.spaggiari.eu",
			APIKey:    "Tg1NWEwNGIgIC0K",
			UserAgent: "CVVS/std/4.1.7 Android/10",
			Timeout:   5 * time.Second,
		},
		Demo: core.DemoConfig{UID: "tester"},
	}
	client := spaggiari.NewClient(conf.Upstream, nopLogger{})
	return NewServer(&Options{
		Addr:           ":0",
		DisableReqLogs: true,
		Conf:           conf,
		Client:         client,
		Logger:         nopLogger{},
	})
}

func doRequest(srv Server, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Set(k, v)
		}
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHome(t *testing.T) {
	srv := newTestServer("http://127.0.0.1:1")
	rec := doRequest(srv, http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to SysRegister!", rec.Body.String())
}

func TestPing(t *testing.T) {
	srv := newTestServer("http://127.0.0.1:1")

	rec := doRequest(srv, http.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "API is working", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestPingEcho(t *testing.T) {
	srv := newTestServer("http://127.0.0.1:1")

	rec := doRequest(srv, http.MethodPost, "/api/ping", `{"hello": "world"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "POST request received", body["status"])
	received, ok := body["receivedData"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "world", received["hello"])

	rec = doRequest(srv, http.MethodPost, "/api/ping", `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Error parsing JSON", decodeBody(t, rec)["status"])
}

func TestLoginMalformedJSONIsBadRequest(t *testing.T) {
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	// a malformed body must come back 400, never a raw 500
	rec := doRequest(srv, http.MethodPost, "/api/auth/login", `{"uid": "x", "pass":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON in request body", decodeBody(t, rec)["error"])
	assert.Equal(t, 0, upstream.hits())
}

func TestLoginMissingCredentials(t *testing.T) {
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	// a whitespace-only uid is trimmed before validation, so it fails too
	for _, body := range []string{`{}`, `{"uid": "demo"}`, `{"pass": "demo"}`, `{"uid": "   ", "pass": "x"}`} {
		rec := doRequest(srv, http.MethodPost, "/api/auth/login", body, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.Equal(t, "Missing credentials", decodeBody(t, rec)["error"])
	}

	rec := doRequest(srv, http.MethodPost, "/api/auth/login", `{}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields, ok := decodeBody(t, rec)["fields"].(map[string]interface{})
	require.True(t, ok, "validation failures carry a per-field breakdown")
	assert.Equal(t, "this field is required", fields["uid"])
	assert.Equal(t, "this field is required", fields["pass"])

	assert.Equal(t, 0, upstream.hits())
}

func TestLoginDemoSentinel(t *testing.T) {
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	// reserved uids (whitespace tolerated) plus the operator override
	for _, uid := range []string{"demo", " demo ", "student", "tester"} {
		rec := doRequest(srv, http.MethodPost, "/api/auth/login", `{"uid": "`+uid+`", "pass": "x"}`, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["isDemoRequest"])
		assert.Equal(t, "Demo mode", body["error"])
	}
	assert.Equal(t, 0, upstream.hits(), "demo credentials must never reach upstream")
}

func TestLoginSuccess(t *testing.T) {
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token": "tok-1", "ident": "\"42\"", "firstName": "MARCO", "usrType": "S"}`))
	})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	rec := doRequest(srv, http.MethodPost, "/api/auth/login", `{"uid": "S1234567A", "pass": "secret"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "tok-1", body["token"])
	ident, ok := body["ident"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(42), ident["id"])
}

func TestLoginBlockedUpstream(t *testing.T) {
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("<!DOCTYPE html>Access Denied"))
	})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	rec := doRequest(srv, http.MethodPost, "/api/auth/login", `{"uid": "S1234567A", "pass": "secret"}`, nil)

	// blocked is always served as 403 regardless of the upstream status
	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["isBlocked"])
	assert.Equal(t, "API Access Blocked", body["error"])
}

func TestLoginUpstreamRejected(t *testing.T) {
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error": "invalid credentials"}`))
	})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	rec := doRequest(srv, http.MethodPost, "/api/auth/login", `{"uid": "S1234567A", "pass": "wrong"}`, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Login failed", body["error"])
	assert.Contains(t, body["details"], "HTTP 422")
}

func authHeader(token string) http.Header {
	h := http.Header{}
	h.Set(echo.HeaderAuthorization, "Bearer "+token)
	return h
}

func TestProxyRequiresToken(t *testing.T) {
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	rec := doRequest(srv, http.MethodGet, "/api/proxy?path=students/1/grades", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing authorization token", decodeBody(t, rec)["error"])
	assert.Equal(t, 0, upstream.hits(), "unauthorized requests must not reach upstream")
}

func TestProxyRequiresPath(t *testing.T) {
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	rec := doRequest(srv, http.MethodGet, "/api/proxy", "", authHeader("tok"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing path parameter", decodeBody(t, rec)["error"])
	assert.Equal(t, 0, upstream.hits())
}

func TestProxyRelaysJSON(t *testing.T) {
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/students/42/grades", r.URL.Path)
		assert.Equal(t, "tok-1", r.Header.Get("Z-Auth-Token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"grades": [{"evtId": 1}]}`))
	})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	rec := doRequest(srv, http.MethodGet, "/api/proxy?path=students/42/grades", "", authHeader("tok-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"grades": [{"evtId": 1}]}`, rec.Body.String())
}

func TestProxyUpstreamFailure(t *testing.T) {
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no such student"))
	})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	rec := doRequest(srv, http.MethodGet, "/api/proxy?path=students/99/grades", "", authHeader("tok"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "API request failed", body["error"])
	assert.Equal(t, "no such student", body["details"])
}

func TestProxyMalformedJSON(t *testing.T) {
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("surprise! not json"))
	})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	rec := doRequest(srv, http.MethodGet, "/api/proxy?path=students/1/grades", "", authHeader("tok"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid response format", body["error"])
	assert.Equal(t, "Server returned non-JSON response", body["details"])
	assert.Equal(t, "surprise! not json", body["rawResponse"])
}

func TestProxyRelaysText(t *testing.T) {
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("plain text reply"))
	})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	rec := doRequest(srv, http.MethodGet, "/api/proxy?path=some/text", "", authHeader("tok"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "plain text reply", rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/plain")
}

func TestProxyCachesImages(t *testing.T) {
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	rec := doRequest(srv, http.MethodGet, "/api/proxy?path=users/avatar", "", authHeader("tok"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, 2, upstream.hits(), "image bodies are re-fetched, not replayed")
}

func TestProxyPostForwardsBody(t *testing.T) {
	var gotBody string
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	rec := doRequest(srv, http.MethodPost, "/api/proxy?path=students/1/notes/read", `{"read": true}`, authHeader("tok"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"read": true}`, gotBody)
}

func TestExportCalendar(t *testing.T) {
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/students/42/agenda/all/")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"agenda": [
			{"evtId": 1, "subjectDesc": "Matematica", "authorName": "Prof.ssa Ferrari",
			 "evtDatetimeBegin": "2024-03-18T08:00:00+01:00", "evtDatetimeEnd": "2024-03-18T09:00:00+01:00"},
			{"evtId": 2, "subjectDesc": "Storia", "authorName": "Prof. Moretti",
			 "evtDatetimeBegin": "2024-03-19T09:00:00+01:00", "evtDatetimeEnd": "2024-03-19T10:00:00+01:00"}
		]}`))
	})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	rec := doRequest(srv, http.MethodPost, "/api/export/calendar", `{"token": "tok", "studentId": 42}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/calendar")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "classeviva-agenda.ics")

	doc := rec.Body.String()
	assert.Equal(t, 2, strings.Count(doc, "BEGIN:VEVENT"))
	assert.Contains(t, doc, "SUMMARY:Matematica")
	assert.Contains(t, doc, "SUMMARY:Storia")
	assert.Contains(t, doc, "ORGANIZER;CN=Prof.ssa Ferrari:MAILTO:prof.ssa.ferrari@classeviva.spaggiari.eu")
	assert.True(t, strings.HasPrefix(doc, "BEGIN:VCALENDAR\r\n"))
}

func TestExportCalendarValidation(t *testing.T) {
	upstream := newFakeUpstream(func(w http.ResponseWriter, r *http.Request) {})
	defer upstream.Close()
	srv := newTestServer(upstream.URL)

	for _, body := range []string{`{}`, `{"token": "tok"}`, `{"studentId": 42}`} {
		rec := doRequest(srv, http.MethodPost, "/api/export/calendar", body, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.Equal(t, "Missing token or studentId", decodeBody(t, rec)["error"])
	}

	rec := doRequest(srv, http.MethodPost, "/api/export/calendar", `{"studentId": 42}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields, ok := decodeBody(t, rec)["fields"].(map[string]interface{})
	require.True(t, ok, "validation failures carry a per-field breakdown")
	assert.Equal(t, "this field is required", fields["token"])

	assert.Equal(t, 0, upstream.hits())
}
