// Package webapi is the client of this system's own HTTP surface. It is the
// facade's "real" path: every domain fetch goes through the server's generic
// proxy endpoint, login and calendar export through their dedicated routes.
package webapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/sysregister/sysregister/core/classeviva"
)

type Provider struct {
	http    *http.Client
	baseURL string
}

var _ classeviva.Provider = (*Provider)(nil)

func NewProvider(baseURL string) *Provider {
	return &Provider{
		http:    &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// loginReply is the server's login response superset: either a Session, a
// demo sentinel, or a structured error body.
type loginReply struct {
	classeviva.Session

	Error         string `json:"error"`
	Message       string `json:"message"`
	Details       string `json:"details"`
	IsDemoRequest bool   `json:"isDemoRequest"`
	IsBlocked     bool   `json:"isBlocked"`
}

func (p *Provider) Login(ctx context.Context, creds classeviva.Credentials) (classeviva.Session, error) {
	payload, err := json.Marshal(creds)
	if err != nil {
		return classeviva.Session{}, errors.Wrap(err, "marshaling credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/auth/login", bytes.NewReader(payload))
	if err != nil {
		return classeviva.Session{}, errors.Wrap(err, "building login request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.http.Do(req)
	if err != nil {
		return classeviva.Session{}, classeviva.NewNetworkFailure(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return classeviva.Session{}, classeviva.NewNetworkFailure(err)
	}

	var reply loginReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return classeviva.Session{}, classeviva.NewMalformedResponse(classeviva.Truncate(string(body), 200))
	}

	// HTTP 200 with the sentinel means "use the mock path", not success.
	if reply.IsDemoRequest {
		return classeviva.Session{}, classeviva.ErrDemoRequest
	}
	if res.StatusCode == http.StatusOK && reply.Error == "" {
		return reply.Session, nil
	}
	if reply.IsBlocked {
		return classeviva.Session{}, classeviva.NewBlocked(reply.Details)
	}
	msg := reply.Details
	if msg == "" {
		msg = reply.Error
	}
	if msg == "" {
		msg = "Login failed"
	}
	return classeviva.Session{}, classeviva.NewUpstreamRejected(res.StatusCode, msg)
}

// get replays an authenticated GET through the server's generic proxy route
// and returns the relayed body.
func (p *Provider) get(ctx context.Context, token, path string) ([]byte, string, error) {
	u := p.baseURL + "/api/proxy?path=" + url.QueryEscape(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", errors.Wrapf(err, "building proxy request for %s", path)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := p.http.Do(req)
	if err != nil {
		return nil, "", classeviva.NewNetworkFailure(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", classeviva.NewNetworkFailure(err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, "", classeviva.NewRequestFailed(res.StatusCode, errorDetail(body, res.StatusCode))
	}
	return body, res.Header.Get("Content-Type"), nil
}

// errorDetail digs the details/error field out of a structured error body,
// falling back to the raw text.
func errorDetail(body []byte, status int) string {
	var payload struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Details != "" {
			return payload.Details
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if len(body) > 0 {
		return classeviva.Truncate(string(body), 200)
	}
	return fmt.Sprintf("HTTP %d", status)
}

func getList[T any](ctx context.Context, p *Provider, token, path, key string) ([]T, error) {
	body, _, err := p.get(ctx, token, path)
	if err != nil {
		return nil, err
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, classeviva.NewMalformedResponse(classeviva.Truncate(string(body), 200))
	}
	raw, ok := data[key]
	if !ok {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, classeviva.NewMalformedResponse(classeviva.Truncate(string(raw), 200))
	}
	return items, nil
}

func (p *Provider) AuthStatus(ctx context.Context, token string) (classeviva.Status, error) {
	body, _, err := p.get(ctx, token, "auth/status")
	if err != nil {
		return nil, err
	}
	var status classeviva.Status
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, classeviva.NewMalformedResponse(classeviva.Truncate(string(body), 200))
	}
	return status, nil
}

func (p *Provider) Avatar(ctx context.Context, token string) (classeviva.Avatar, error) {
	body, contentType, err := p.get(ctx, token, "auth/avatar")
	if err != nil {
		return classeviva.Avatar{}, err
	}
	return classeviva.Avatar{Data: body, ContentType: contentType}, nil
}

func (p *Provider) Grades(ctx context.Context, token string, studentID int) ([]classeviva.Grade, error) {
	return getList[classeviva.Grade](ctx, p, token, studentPath(studentID, "grades"), "grades")
}

func (p *Provider) Absences(ctx context.Context, token string, studentID int) ([]classeviva.Absence, error) {
	return getList[classeviva.Absence](ctx, p, token, studentPath(studentID, "absences/details"), "events")
}

func (p *Provider) Agenda(ctx context.Context, token string, studentID int, begin, end string) ([]classeviva.AgendaEvent, error) {
	return getList[classeviva.AgendaEvent](ctx, p, token, studentPath(studentID, "agenda/all/"+begin+"/"+end), "agenda")
}

func (p *Provider) LessonsToday(ctx context.Context, token string, studentID int) ([]classeviva.Lesson, error) {
	return getList[classeviva.Lesson](ctx, p, token, studentPath(studentID, "lessons/today"), "lessons")
}

func (p *Provider) Lessons(ctx context.Context, token string, studentID int, start, end string) ([]classeviva.Lesson, error) {
	return getList[classeviva.Lesson](ctx, p, token, studentPath(studentID, "lessons/"+start+"/"+end), "lessons")
}

func (p *Provider) Notices(ctx context.Context, token string, studentID int) ([]classeviva.Notice, error) {
	return getList[classeviva.Notice](ctx, p, token, studentPath(studentID, "noticeboard"), "items")
}

func (p *Provider) Subjects(ctx context.Context, token string, studentID int) ([]classeviva.Subject, error) {
	return getList[classeviva.Subject](ctx, p, token, studentPath(studentID, "subjects"), "subjects")
}

func (p *Provider) Periods(ctx context.Context, token string, studentID int) ([]classeviva.Period, error) {
	return getList[classeviva.Period](ctx, p, token, studentPath(studentID, "periods"), "periods")
}

// ExportCalendar downloads the agenda window as an ICS document via the
// dedicated export route.
func (p *Provider) ExportCalendar(ctx context.Context, token string, studentID, months int) ([]byte, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"token":     token,
		"studentId": studentID,
		"months":    months,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshaling export payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/export/calendar", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "building export request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.http.Do(req)
	if err != nil {
		return nil, classeviva.NewNetworkFailure(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, classeviva.NewNetworkFailure(err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, classeviva.NewRequestFailed(res.StatusCode, errorDetail(body, res.StatusCode))
	}
	return body, nil
}

func studentPath(studentID int, suffix string) string {
	return "students/" + strconv.Itoa(studentID) + "/" + suffix
}
