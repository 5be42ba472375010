// Package client is the HTTP client a device uses to reach the aquascape API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"aquascape/internal/device"
	"aquascape/internal/models"
	"aquascape/internal/service"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout = 10 * time.Second
	retryCount     = 3
)

// ErrNotFound is returned when the server answers 404. It is the service
// sentinel, so device code can match it without importing this package.
var ErrNotFound = service.ErrNotFound

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Client implements device.API over HTTP.
type Client struct {
	http *resty.Client
}

var _ device.API = (*Client)(nil)

// New returns a client for baseURL. Transient 5xx answers are retried.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// WithToken makes every following request carry a bearer token.
func (c *Client) WithToken(token string) *Client {
	c.http.SetAuthToken(token)
	return c
}

// SignIn exchanges credentials for a token and keeps it for later requests.
func (c *Client) SignIn(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/sign-in", body, &out); err != nil {
		return "", fmt.Errorf("sign in: %w", err)
	}
	c.WithToken(out.Token)
	return out.Token, nil
}

// SignUp registers a user and returns its id.
func (c *Client) SignUp(ctx context.Context, username, password string) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/sign-up", body, &out); err != nil {
		return 0, fmt.Errorf("sign up: %w", err)
	}
	return out.ID, nil
}

func (c *Client) CreateAquarium(ctx context.Context, in service.AquariumInput) (models.Aquarium, error) {
	var a models.Aquarium
	err := c.do(ctx, http.MethodPost, "/api/v1/aquariums", in, &a)
	return a, err
}

func (c *Client) GetAquarium(ctx context.Context, id int64) (models.Aquarium, error) {
	var a models.Aquarium
	err := c.do(ctx, http.MethodGet, "/api/v1/aquariums/"+strconv.FormatInt(id, 10), nil, &a)
	return a, err
}

func (c *Client) UpdateAquarium(ctx context.Context, id int64, in service.AquariumInput) (models.Aquarium, error) {
	var a models.Aquarium
	err := c.do(ctx, http.MethodPut, "/api/v1/aquariums/"+strconv.FormatInt(id, 10), in, &a)
	return a, err
}

func (c *Client) ListAlerts(ctx context.Context, aquariumID int64) ([]models.Alert, error) {
	var out struct {
		Alerts []models.Alert `json:"alerts"`
	}
	req := c.http.R().SetContext(ctx).SetQueryParam("aquarium_id", strconv.FormatInt(aquariumID, 10))
	if err := c.send(req, http.MethodGet, "/api/v1/alerts", &out); err != nil {
		return nil, err
	}
	return out.Alerts, nil
}

func (c *Client) CreateAlert(ctx context.Context, in service.AlertInput) (models.Alert, error) {
	var a models.Alert
	err := c.do(ctx, http.MethodPost, "/api/v1/alerts", in, &a)
	return a, err
}

func (c *Client) DeleteAlert(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/alerts/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) RecordFeeding(ctx context.Context, in service.FeedingInput) (models.FeedingLog, error) {
	var l models.FeedingLog
	err := c.do(ctx, http.MethodPost, "/api/v1/feeding_logs", in, &l)
	return l, err
}

func (c *Client) PostReading(ctx context.Context, in service.SensorInput) (models.SensorReading, error) {
	var r models.SensorReading
	err := c.do(ctx, http.MethodPost, "/api/v1/sensor_data", in, &r)
	return r, err
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	return c.send(req, method, path, result)
}

func (c *Client) send(req *resty.Request, method, path string, result any) error {
	apiErr := &APIError{}
	req.SetError(apiErr)
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr.Status = resp.StatusCode()
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("%s %s: %w", method, path, apiErr)
	}
	return nil
}
