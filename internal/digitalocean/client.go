// Package digitalocean talks to the DigitalOcean v2 API on behalf of a stored account.
package digitalocean

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m3rciful/dobot/core/buildinfo"
	"github.com/m3rciful/dobot/core/logger"
	"github.com/m3rciful/dobot/core/metrics"

	"github.com/digitalocean/godo"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

const (
	// DefaultAPIURL is the public DigitalOcean API endpoint.
	DefaultAPIURL = "https://api.digitalocean.com/"
	// DefaultTimeout bounds every API call.
	DefaultTimeout = 30 * time.Second

	errorBodyPreview = 100
	maxErrorBody     = 64 << 10
)

// Config configures Client.
type Config struct {
	APIURL  string
	Timeout time.Duration
	// Transport defaults to http.DefaultTransport.
	Transport http.RoundTripper
	// Metrics is optional.
	Metrics *metrics.Metrics
}

// Client issues API calls with a per-call account token. It never retries.
type Client struct {
	baseURL   *url.URL
	timeout   time.Duration
	transport http.RoundTripper
	userAgent string
	metrics   *metrics.Metrics
}

// Droplet is the subset of droplet metadata the bot shows.
type Droplet struct {
	ID       int
	Name     string
	Status   string
	Region   string
	SizeSlug string
	Memory   int
	VCPUs    int
	Disk     int
	PublicIP string
}

// New validates cfg and builds a Client.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.APIURL)
	if raw == "" {
		raw = DefaultAPIURL
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("digitalocean: invalid api url %q: %w", cfg.APIURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("digitalocean: api url %q must be http or https", cfg.APIURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		baseURL:   base,
		timeout:   timeout,
		transport: transport,
		userAgent: "dobot/" + buildinfo.Version,
		metrics:   cfg.Metrics,
	}, nil
}

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

func (c *Client) httpClient(token string) *http.Client {
	return &http.Client{
		Timeout: c.timeout,
		Transport: &oauth2.Transport{
			Base:   c.transport,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		},
	}
}

// Droplet fetches droplet metadata through the godo SDK.
func (c *Client) Droplet(ctx context.Context, token string, id int) (Droplet, error) {
	op := "droplet.get"
	api, err := godo.New(c.httpClient(token),
		godo.SetBaseURL(c.baseURL.String()),
		godo.SetUserAgent(c.userAgent),
	)
	if err != nil {
		return Droplet{}, fmt.Errorf("digitalocean: build client: %w", err)
	}

	start := time.Now()
	d, resp, err := api.Droplets.Get(ctx, id)
	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}
	c.logCall(ctx, op, id, status, start, err)
	if err != nil {
		return Droplet{}, classifySDKError(op, id, err)
	}
	return fromGodo(d), nil
}

func classifySDKError(op string, id int, err error) error {
	var er *godo.ErrorResponse
	if errors.As(err, &er) {
		status := 0
		if er.Response != nil {
			status = er.Response.StatusCode
		}
		if status == http.StatusNotFound {
			return &NotFoundError{DropletID: id}
		}
		return &APIError{Op: op, Status: status, Message: er.Message, RequestID: er.RequestID}
	}
	return &TransportError{Op: op, Err: err}
}

func fromGodo(d *godo.Droplet) Droplet {
	if d == nil {
		return Droplet{}
	}
	out := Droplet{
		ID:       d.ID,
		Name:     d.Name,
		Status:   d.Status,
		SizeSlug: d.SizeSlug,
		Memory:   d.Memory,
		VCPUs:    d.Vcpus,
		Disk:     d.Disk,
	}
	if d.Region != nil {
		out.Region = d.Region.Slug
	}
	if ip, err := d.PublicIPv4(); err == nil {
		out.PublicIP = ip
	}
	return out
}

type actionRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Rename posts a rename action for droplet id. Only 201 Created counts as success.
func (c *Client) Rename(ctx context.Context, token string, id int, name string) error {
	op := "droplet.rename"
	body, err := json.Marshal(actionRequest{Type: "rename", Name: name})
	if err != nil {
		return fmt.Errorf("digitalocean: encode action: %w", err)
	}
	endpoint := c.baseURL.JoinPath("v2", "droplets", strconv.Itoa(id), "actions")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("digitalocean: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient(token).Do(req)
	if err != nil {
		c.logCall(ctx, op, id, 0, start, err)
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logCall(ctx, op, id, resp.StatusCode, start, nil)
		return nil
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if readErr != nil {
		c.logCall(ctx, op, id, resp.StatusCode, start, readErr)
		return &TransportError{Op: op, Err: readErr}
	}
	apiErr := parseErrorBody(op, resp.StatusCode, raw)
	if ae, ok := apiErr.(*APIError); ok {
		ae.RequestID = resp.Header.Get("x-request-id")
	}
	c.logCall(ctx, op, id, resp.StatusCode, start, apiErr)
	return apiErr
}

// parseErrorBody prefers the JSON "message" field, then the bare status,
// and falls back to a body preview when the body is not a JSON object.
func parseErrorBody(op string, status int, body []byte) error {
	if gjson.ValidBytes(body) {
		doc := gjson.ParseBytes(body)
		if doc.IsObject() {
			return &APIError{Op: op, Status: status, Message: doc.Get("message").String()}
		}
	}
	return &DecodeError{Op: op, Status: status, Body: previewBody(body)}
}

func previewBody(body []byte) string {
	s := strings.ToValidUTF8(string(body), "�")
	if r := []rune(s); len(r) > errorBodyPreview {
		return string(r[:errorBodyPreview])
	}
	return s
}

func (c *Client) logCall(ctx context.Context, op string, id, status int, start time.Time, err error) {
	took := time.Since(start)
	result := "ok"
	switch {
	case err == nil:
	case status > 0:
		result = strconv.Itoa(status)
	default:
		result = "transport"
	}
	c.metrics.APICall(op, result, took)

	attrs := []slog.Attr{
		slog.String("op", op),
		slog.Int("droplet_id", id),
		slog.Duration("duration", took),
	}
	if status > 0 {
		attrs = append(attrs, slog.Int("http_code", status))
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("status", "fail"),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		logger.Warn(ctx, "do", "do.request", attrs...)
		return
	}
	attrs = append(attrs, slog.String("status", "ok"))
	logger.Debug(ctx, "do", "do.request", attrs...)
}
