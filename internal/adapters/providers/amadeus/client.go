// Package amadeus is the GDS-style provider adapter. It speaks the Amadeus
// self-service REST API with client-credentials auth and maps responses to
// the canonical offer model.
package amadeus

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	perr "farescout/internal/platform/errors"
	"farescout/internal/platform/logger"
)

const (
	baseURLDefault = "https://test.api.amadeus.com"
	defaultTimeout = 15 * time.Second
	defaultUA      = "farescout"
	tokenPath      = "/v1/security/oauth2/token"
)

// Options configures the Client
type Options struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	UserAgent    string
	Timeout      time.Duration
}

// Client is a minimal Amadeus REST client with cached bearer auth
// one Client is built per process and reused across requests
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewClient creates a Client with sane defaults
// returns a Validation error when credentials are missing
func NewClient(o Options) (*Client, error) {
	if strings.TrimSpace(o.ClientID) == "" || strings.TrimSpace(o.ClientSecret) == "" {
		return nil, perr.Newf(perr.ErrorCodeValidation, "missing amadeus credentials")
	}
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("amadeus"),
		now:  time.Now,
	}, nil
}

// bearer returns a valid access token, refreshing when near expiry
func (c *Client) bearer(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && c.now().Before(c.expires.Add(-30*time.Second)) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.opts.ClientID)
	form.Set("client_secret", c.opts.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "amadeus token request build failed")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUpstream, "amadeus token request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", perr.Newf(perr.ErrorCodeUpstream, "amadeus token status %d: %s", resp.StatusCode, string(body))
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUpstream, "amadeus token decode failed")
	}
	if tok.AccessToken == "" {
		return "", perr.Newf(perr.ErrorCodeUpstream, "amadeus token response missing access_token")
	}
	c.token = tok.AccessToken
	c.expires = c.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return c.token, nil
}

// getJSON issues an authorized GET and decodes the response into out
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.opts.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return c.doJSON(ctx, http.MethodGet, u, nil, out)
}

// postJSON issues an authorized POST with a JSON body and decodes into out
func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "amadeus request encode failed")
	}
	return c.doJSON(ctx, http.MethodPost, c.opts.BaseURL+path, b, out)
}

func (c *Client) doJSON(ctx context.Context, method, u string, body []byte, out any) error {
	tok, err := c.bearer(ctx)
	if err != nil {
		return err
	}

	var rdr io.Reader
	if body != nil {
		rdr = strings.NewReader(string(body))
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "amadeus request build failed")
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "amadeus request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("method", method).
		Str("url", u).
		Int("status", resp.StatusCode).
		Dur("latency", c.now().Sub(start)).
		Msg("amadeus response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return perr.Newf(perr.ErrorCodeUpstream, "amadeus status %d: %s", resp.StatusCode, string(snippet))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "amadeus response decode failed")
	}
	return nil
}
