// Package spaggiari is the REST client for the upstream ClasseViva service.
// Every call carries the fixed envelope headers (device identity, API key,
// JSON content type); authenticated calls add Z-Auth-Token.
package spaggiari

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/sysregister/sysregister/core"
	"github.com/sysregister/sysregister/core/classeviva"
)

const bodyExcerptLen = 200

type Client struct {
	http    *http.Client
	baseURL string
	conf    core.UpstreamConfig
	log     core.Logger
}

func NewClient(conf core.UpstreamConfig, log core.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: conf.Timeout},
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		conf:    conf,
		log:     log,
	}
}

// envelope sets the fixed header set required on every upstream call.
func (c *Client) envelope(req *http.Request, token string) {
	req.Header.Set("User-Agent", c.conf.UserAgent)
	req.Header.Set("Z-Dev-Apikey", c.conf.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Z-Auth-Token", token)
	}
}

// loginEnvelope is the exact upstream login payload; ident is always null.
type loginEnvelope struct {
	Ident *string `json:"ident"`
	Pass  string  `json:"pass"`
	UID   string  `json:"uid"`
}

type loginPayload struct {
	Token     string          `json:"token"`
	Release   string          `json:"release"`
	Expire    string          `json:"expire"`
	Ident     json.RawMessage `json:"ident"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	UsrType   string          `json:"usrType"`
}

// Login exchanges credentials for a Session at POST auth/login.
func (c *Client) Login(ctx context.Context, creds classeviva.Credentials) (classeviva.Session, error) {
	payload, err := json.Marshal(loginEnvelope{Pass: creds.Pass, UID: creds.UID})
	if err != nil {
		return classeviva.Session{}, errors.Wrap(err, "marshaling login payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return classeviva.Session{}, errors.Wrap(err, "building login request")
	}
	c.envelope(req, "")

	res, err := c.http.Do(req)
	if err != nil {
		return classeviva.Session{}, classeviva.NewNetworkFailure(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return classeviva.Session{}, classeviva.NewNetworkFailure(err)
	}
	text := string(body)

	switch classeviva.Classify(res.StatusCode, text) {
	case classeviva.VerdictBlocked:
		c.log.Warn("upstream WAF/security system blocking login", map[string]interface{}{"status": res.StatusCode})
		return classeviva.Session{}, classeviva.NewBlocked("The API may have geographic or IP restrictions.")
	case classeviva.VerdictRejected:
		return classeviva.Session{}, classeviva.NewUpstreamRejected(res.StatusCode, classeviva.Truncate(text, bodyExcerptLen))
	}

	var data loginPayload
	if err := json.Unmarshal(body, &data); err != nil {
		return classeviva.Session{}, classeviva.NewMalformedResponse(classeviva.Truncate(text, bodyExcerptLen))
	}

	id := parseIdent(data.Ident)
	sess := classeviva.Session{
		Token:   data.Token,
		Release: data.Release,
		Expire:  data.Expire,
		Ident: classeviva.Identity{
			ID:        id,
			FirstName: data.FirstName,
			LastName:  data.LastName,
			UsrType:   data.UsrType,
			UsrID:     id,
		},
	}
	if sess.Ident.FirstName == "" {
		sess.Ident.FirstName = "User"
	}
	if sess.Ident.UsrType == "" {
		sess.Ident.UsrType = "S"
	}
	return sess, nil
}

// parseIdent extracts the numeric id from the ident field, which upstream
// serves either as a JSON number, a plain string, or a string wrapped in
// literal quote characters (0 when absent or non-numeric).
func parseIdent(raw json.RawMessage) int {
	var ident string
	if err := json.Unmarshal(raw, &ident); err != nil {
		var id int
		if err := json.Unmarshal(raw, &id); err != nil {
			return 0
		}
		return id
	}
	if strings.HasPrefix(ident, `"`) && strings.HasSuffix(ident, `"`) && len(ident) >= 2 {
		ident = ident[1 : len(ident)-1]
	}
	id, err := strconv.Atoi(ident)
	if err != nil {
		return 0
	}
	return id
}

// Response is one relayed upstream reply. Body is fully drained, so callers
// that must not assume replayability re-issue the request instead.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (r *Response) Ok() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// IsJSON reports whether the declared content type is application/json.
func (r *Response) IsJSON() bool { return strings.Contains(r.ContentType, "application/json") }

// IsImage reports whether the declared content type is image/*.
func (r *Response) IsImage() bool { return strings.HasPrefix(r.ContentType, "image/") }

// Do replays an authenticated call against <baseURL>/<path>. Method is GET
// or POST; body may be nil. Network-level failures come back as
// NetworkFailure; everything else is returned as-is for the caller to shape.
func (c *Client) Do(ctx context.Context, token, method, path string, body []byte) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s %s request", method, path)
	}
	c.envelope(req, token)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, classeviva.NewNetworkFailure(err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, classeviva.NewNetworkFailure(err)
	}

	return &Response{
		StatusCode:  res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// Agenda fetches the date-windowed agenda directly (the calendar exporter
// does not go through the generic proxy handler).
func (c *Client) Agenda(ctx context.Context, token string, studentID int, start, end string) ([]classeviva.AgendaEvent, error) {
	path := "students/" + strconv.Itoa(studentID) + "/agenda/all/" + start + "/" + end
	res, err := c.Do(ctx, token, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !res.Ok() {
		return nil, classeviva.NewRequestFailed(res.StatusCode, string(res.Body))
	}

	var data struct {
		Agenda []classeviva.AgendaEvent `json:"agenda"`
	}
	if err := json.Unmarshal(res.Body, &data); err != nil {
		return nil, classeviva.NewMalformedResponse(classeviva.Truncate(string(res.Body), bodyExcerptLen))
	}
	return data.Agenda, nil
}
