package remote

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/logging"
)

const (
	// DefaultBaseURL is where `lifespan serve` listens by default.
	DefaultBaseURL = "http://127.0.0.1:8000/api/"

	// DefaultTimeout bounds every request unless the context expires first.
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader carries the per-request correlation ID.
	RequestIDHeader = "X-Request-ID"
)

// Client implements Service over HTTP.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
	logger  *logging.Logger
}

var _ Service = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDial replaces the dialer. Tests use it with an in-memory listener.
func WithDial(dial fasthttp.DialFunc) ClientOption {
	return func(c *Client) {
		c.http.Dial = dial
	}
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	c := &Client{
		baseURL: baseURL,
		timeout: DefaultTimeout,
		http: &fasthttp.Client{
			Name:                "lifespan",
			MaxIdleConnDuration: 30 * time.Second,
		},
		logger: logging.NopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateProfile implements Service.
func (c *Client) CreateProfile(ctx context.Context, age, lifeExpectancy int) (life.UserContext, error) {
	var user life.UserContext
	err := c.do(ctx, OpCreateProfile, fasthttp.MethodPost, "user-profile/",
		ProfileRequest{Age: age, LifeExpectancy: lifeExpectancy}, &user)
	return user, err
}

// ComputeSurvival implements Service.
func (c *Client) ComputeSurvival(ctx context.Context, userID int64, in life.SurvivalInputs) (life.SurvivalResult, error) {
	var result life.SurvivalResult
	err := c.do(ctx, OpComputeSurvival, fasthttp.MethodPost, fmt.Sprintf("level1/%d/", userID), in, &result)
	return result, err
}

// ListMaintenance implements Service.
func (c *Client) ListMaintenance(ctx context.Context, userID int64) ([]life.Activity, error) {
	var activities []life.Activity
	err := c.do(ctx, OpListMaintenance, fasthttp.MethodGet, fmt.Sprintf("category2/%d/", userID), nil, &activities)
	return activities, err
}

// AddMaintenance implements Service.
func (c *Client) AddMaintenance(ctx context.Context, userID int64, label string, hoursPerWeek float64) (life.Activity, error) {
	var activity life.Activity
	err := c.do(ctx, OpAddMaintenance, fasthttp.MethodPost, fmt.Sprintf("category2/%d/", userID),
		ActivityRequest{Label: label, HoursPerWeek: hoursPerWeek}, &activity)
	return activity, err
}

// UpdateMaintenance implements Service.
func (c *Client) UpdateMaintenance(ctx context.Context, userID, activityID int64, patch ActivityPatch) (life.Activity, error) {
	var activity life.Activity
	err := c.do(ctx, OpUpdateMaintenance, fasthttp.MethodPatch,
		fmt.Sprintf("category2/%d/%d/", userID, activityID), patch, &activity)
	return activity, err
}

// AddLeakage implements Service.
func (c *Client) AddLeakage(ctx context.Context, userID int64, label string, hoursPerWeek float64) (life.Activity, error) {
	var activity life.Activity
	err := c.do(ctx, OpAddLeakage, fasthttp.MethodPost, fmt.Sprintf("category3/%d/", userID),
		ActivityRequest{Label: label, HoursPerWeek: hoursPerWeek}, &activity)
	return activity, err
}

// ListLeakage implements Service.
func (c *Client) ListLeakage(ctx context.Context, userID int64) ([]life.Activity, error) {
	var activities []life.Activity
	err := c.do(ctx, OpListLeakage, fasthttp.MethodGet, fmt.Sprintf("category3/%d/", userID), nil, &activities)
	return activities, err
}

// FetchSummary implements Service. A 2xx response that does not decode is
// reported as ErrSummaryUnavailable.
func (c *Client) FetchSummary(ctx context.Context, userID int64) (life.LifeSummary, error) {
	var summary life.LifeSummary
	err := c.do(ctx, OpFetchSummary, fasthttp.MethodGet, fmt.Sprintf("life-summary/%d/", userID), nil, &summary)
	return summary, err
}

// do performs one request/response round trip and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return errors.NewTransportError(op, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	requestID := uuid.NewString()
	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", op, err)
		}
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(payload)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	start := time.Now()
	err := c.http.DoDeadline(req, resp, deadline)
	elapsed := time.Since(start)

	if err != nil {
		c.logger.Debug("remote request failed",
			"op", op,
			"method", method,
			"request_id", requestID,
			"duration_ms", elapsed.Milliseconds(),
			"error", err.Error(),
		)
		return errors.NewTransportError(op, err)
	}

	status := resp.StatusCode()
	c.logger.Debug("remote request",
		"op", op,
		"method", method,
		"status", status,
		"request_id", requestID,
		"duration_ms", elapsed.Milliseconds(),
	)

	if status < 200 || status > 299 {
		return errors.NewRemoteError(op, status, ParseDetail(resp.Body()))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		if op == OpFetchSummary {
			return fmt.Errorf("%w: %v", errors.ErrSummaryUnavailable, err)
		}
		return errors.NewRemoteError(op, status, "").WithCause(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// ParseDetail extracts a human-readable message from an error body. It
// understands {"detail": "..."} and field error maps such as
// {"age": ["A valid integer is required."]}. Unknown bodies yield "".
func ParseDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	if detail, ok := envelope["detail"].(string); ok {
		return detail
	}

	fields := make([]string, 0, len(envelope))
	for field := range envelope {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []string
	for _, field := range fields {
		switch v := envelope[field].(type) {
		case string:
			parts = append(parts, field+": "+v)
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					parts = append(parts, field+": "+s)
				}
			}
		}
	}
	return strings.Join(parts, "; ")
}
