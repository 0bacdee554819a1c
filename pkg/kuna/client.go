package kuna

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"kunaclient/pkg/errors"
	"kunaclient/pkg/logger"
	"kunaclient/pkg/ratelimit"
)

const (
	// DefaultBaseURL is the production Kuna REST API v3 endpoint.
	DefaultBaseURL = "https://api.kuna.io/v3/"

	defaultTimeout = 10 * time.Second
)

// Config configures the Kuna client.
type Config struct {
	// AccessKey and SecretKey are only required for the auth/* endpoints.
	// Public market data works without them.
	AccessKey string
	SecretKey string

	// BaseURL overrides DefaultBaseURL, mainly for tests.
	BaseURL string

	// HTTPClient allows injecting a custom transport.
	HTTPClient *http.Client

	// Limiter, when set, throttles outgoing requests to the exchange's
	// documented ceiling before they leave the client.
	Limiter *ratelimit.Limiter

	Logger *logger.Logger
}

// Client is a thin binding over the Kuna v3 REST API. It holds no state
// between calls apart from the credentials and the nonce guard, so it is
// safe for concurrent use.
type Client struct {
	cfg   Config
	http  *http.Client
	log   *logger.Logger
	nonce nonceSource
}

// New constructs a Kuna client from cfg, filling in defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}
	return &Client{
		cfg:  cfg,
		http: httpClient,
		log:  log.With("component", "kuna"),
	}
}

// public issues an unauthenticated GET request.
func (c *Client) public(ctx context.Context, path string, query url.Values, target interface{}) error {
	reqURL := c.cfg.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	return c.do(req, path, target)
}

// private issues a signed POST request. The signature covers the exact
// body bytes that go on the wire; a nil payload signs as "{}" to match
// the remote contract.
func (c *Client) private(ctx context.Context, path string, payload interface{}, target interface{}) error {
	if c.cfg.AccessKey == "" || c.cfg.SecretKey == "" {
		return errors.Wrapf(errors.ErrUnauthorized, "kuna: %s requires api credentials", path)
	}

	body := []byte("{}")
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrapf(err, "kuna: encode %s request", path)
		}
		body = raw
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}

	nonce := c.nonce.Next()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("kun-apikey", c.cfg.AccessKey)
	req.Header.Set("kun-nonce", nonce)
	req.Header.Set("kun-signature", sign(c.cfg.SecretKey, path, nonce, body))

	return c.do(req, path, target)
}

func (c *Client) do(req *http.Request, path string, target interface{}) error {
	if c.cfg.Limiter != nil {
		if err := c.cfg.Limiter.Wait(req.Context()); err != nil {
			return err
		}
	}

	reqID := uuid.NewString()
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "kuna: %s %s", req.Method, path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "kuna: read %s response", path)
	}

	c.log.Debugf("request %s: %s %s -> %d in %s", reqID, req.Method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode > http.StatusAccepted {
		return newAPIError(resp.StatusCode, body)
	}
	// The exchange occasionally reports failures with a 2xx status and an
	// error envelope in the body.
	if apiErr := parseErrorEnvelope(resp.StatusCode, body); apiErr != nil {
		return apiErr
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.Wrapf(err, "kuna: decode %s response", path)
	}
	return nil
}
