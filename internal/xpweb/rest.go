// Package xpweb mirrors the simulated host into a running X-Plane through
// its web API: REST for name lookups and a websocket for value updates,
// dataref writes and command activation.
package xpweb

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const apiPath = "/api/v2"

// ErrNotFound is returned when X-Plane does not know a name.
var ErrNotFound = errors.New("not found")

// Ref is a resolved dataref or command.
type Ref struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ValueType string `json:"value_type,omitempty"`
}

// IsArray reports whether writes need an index.
func (r Ref) IsArray() bool {
	return strings.HasSuffix(r.ValueType, "_array")
}

type listResponse struct {
	Data []Ref `json:"data"`
}

type errorResponse struct {
	Code    string `json:"error_code"`
	Message string `json:"error_message"`
}

// Client talks to the REST half of the web API.
type Client struct {
	base string
	http *http.Client
}

// NewClient returns a client for base, e.g. http://localhost:8086. A nil hc
// uses a client with a short timeout.
func NewClient(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{base: strings.TrimRight(base, "/"), http: hc}
}

// WebsocketURL is the address of the websocket half of the API.
func (c *Client) WebsocketURL() (string, error) {
	u, err := url.Parse(c.base)
	if err != nil {
		return "", errors.Wrapf(err, "parse %s", c.base)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", errors.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + apiPath
	return u.String(), nil
}

func (c *Client) Dataref(ctx context.Context, name string) (Ref, error) {
	return c.lookup(ctx, "datarefs", name)
}

func (c *Client) Command(ctx context.Context, name string) (Ref, error) {
	return c.lookup(ctx, "commands", name)
}

func (c *Client) lookup(ctx context.Context, collection, name string) (Ref, error) {
	q := url.Values{}
	q.Set("filter[name]", name)
	q.Set("fields", "id,name,value_type")
	endpoint := c.base + apiPath + "/" + collection + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Ref{}, errors.Wrap(err, "build request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Ref{}, errors.Wrapf(err, "lookup %s", name)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Ref{}, errors.Wrapf(err, "read %s lookup", name)
	}
	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if json.Unmarshal(body, &e) == nil && e.Message != "" {
			return Ref{}, errors.Errorf("lookup %s: %s (%s)", name, e.Message, e.Code)
		}
		return Ref{}, errors.Errorf("lookup %s: %s", name, resp.Status)
	}

	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return Ref{}, errors.Wrapf(err, "decode %s lookup", name)
	}
	for _, r := range list.Data {
		if r.Name == name {
			return r, nil
		}
	}
	return Ref{}, errors.Wrapf(ErrNotFound, "%s %s", collection, name)
}
