package spaggiari

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysregister/sysregister/core"
	"github.com/sysregister/sysregister/core/classeviva"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(upstreamURL string) *Client {
	return NewClient(core.UpstreamConfig{
		BaseURL:   upstreamURL,
		Host:      "classeviva.spaggiari.eu",
		APIKey:    "Tg1NWEwNGIgIC0K",
		UserAgent: "CVVS/std/4.1.7 Android/10",
		Timeout:   5 * time.Second,
	}, nopLogger{})
}

func TestLogin(t *testing.T) {
	var gotBody []byte
	var gotHeaders http.Header

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		gotBody, _ = io.ReadAll(r.Body)
		gotHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"token": "abc123",
			"release": "2024-03-15T10:30:00+01:00",
			"expire": "2024-03-15T12:00:00+01:00",
			"ident": "\"7654321\"",
			"firstName": "MARCO",
			"lastName": "ROSSI",
			"usrType": "S"
		}`))
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	sess, err := client.Login(context.Background(), classeviva.Credentials{UID: "S1234567A", Pass: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "abc123", sess.Token)
	assert.Equal(t, 7654321, sess.Ident.ID)
	assert.Equal(t, 7654321, sess.Ident.UsrID)
	assert.Equal(t, "MARCO", sess.Ident.FirstName)

	// exact envelope and payload shape upstream requires
	assert.Equal(t, "CVVS/std/4.1.7 Android/10", gotHeaders.Get("User-Agent"))
	assert.Equal(t, "Tg1NWEwNGIgIC0K", gotHeaders.Get("Z-Dev-Apikey"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Empty(t, gotHeaders.Get("Z-Auth-Token"))
	assert.JSONEq(t, `{"ident":null,"pass":"secret","uid":"S1234567A"}`, string(gotBody))
}

func TestLoginNumericIdent(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token": "abc123", "ident": 7654321, "firstName": "MARCO"}`))
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	sess, err := client.Login(context.Background(), classeviva.Credentials{UID: "u", Pass: "p"})

	require.NoError(t, err, "a numeric ident is still a successful login")
	assert.Equal(t, 7654321, sess.Ident.ID)
	assert.Equal(t, 7654321, sess.Ident.UsrID)
}

func TestLoginDefaults(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token": "abc123", "ident": "not-a-number"}`))
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	sess, err := client.Login(context.Background(), classeviva.Credentials{UID: "u", Pass: "p"})

	require.NoError(t, err)
	assert.Equal(t, 0, sess.Ident.ID)
	assert.Equal(t, "User", sess.Ident.FirstName)
	assert.Equal(t, "S", sess.Ident.UsrType)
}

func TestLoginBlocked(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("<!DOCTYPE html><html>Access Denied</html>"))
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	_, err := client.Login(context.Background(), classeviva.Credentials{UID: "u", Pass: "p"})

	require.Error(t, err)
	assert.True(t, classeviva.IsBlocked(err))
}

func TestLoginRejected(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error": "invalid credentials"}`))
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	_, err := client.Login(context.Background(), classeviva.Credentials{UID: "u", Pass: "wrong"})

	require.Error(t, err)
	assert.Equal(t, classeviva.KindUpstreamRejected, classeviva.KindOf(err))
	assert.Contains(t, err.Error(), "HTTP 422")
}

func TestLoginMalformedBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("maintenance in progress"))
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	_, err := client.Login(context.Background(), classeviva.Credentials{UID: "u", Pass: "p"})

	require.Error(t, err)
	assert.Equal(t, classeviva.KindMalformedResponse, classeviva.KindOf(err))
}

func TestLoginNetworkFailure(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	_, err := client.Login(context.Background(), classeviva.Credentials{UID: "u", Pass: "p"})

	require.Error(t, err)
	assert.Equal(t, classeviva.KindNetworkFailure, classeviva.KindOf(err))
}

func TestDoCarriesAuthToken(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-123", r.Header.Get("Z-Auth-Token"))
		assert.Equal(t, "/students/42/grades", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"grades": []}`))
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	res, err := client.Do(context.Background(), "tok-123", http.MethodGet, "/students/42/grades", nil)

	require.NoError(t, err)
	assert.True(t, res.Ok())
	assert.True(t, res.IsJSON())
	assert.False(t, res.IsImage())
}

func TestDoRelaysStatusAndBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no such student"))
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	res, err := client.Do(context.Background(), "tok", http.MethodGet, "students/99/grades", nil)

	require.NoError(t, err)
	assert.False(t, res.Ok())
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "no such student", string(res.Body))
}

func TestAgenda(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/students/7654321/agenda/all/20240215/20240415", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"agenda": [
			{"evtId": 1, "subjectDesc": "Matematica", "evtDatetimeBegin": "2024-03-18T08:00:00+01:00"},
			{"evtId": 2, "subjectDesc": "Storia", "evtDatetimeBegin": "2024-03-19T09:00:00+01:00"}
		]}`))
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	agenda, err := client.Agenda(context.Background(), "tok", 7654321, "20240215", "20240415")

	require.NoError(t, err)
	require.Len(t, agenda, 2)
	assert.Equal(t, "Matematica", agenda[0].SubjectDesc)
	assert.Equal(t, 2, agenda[1].EvtID)
}

func TestAgendaMalformed(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	_, err := client.Agenda(context.Background(), "tok", 1, "20240101", "20240201")

	require.Error(t, err)
	assert.Equal(t, classeviva.KindMalformedResponse, classeviva.KindOf(err))
}
