package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/GriffinCanCode/Raksha/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
)

// Config controls the REST client
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// DefaultConfig returns client defaults for baseURL
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:      baseURL,
		Timeout:      10 * time.Second,
		RetryMax:     3,
		RetryWaitMin: 200 * time.Millisecond,
		RetryWaitMax: 2 * time.Second,
	}
}

// APIError is a non-2xx response from the overlay service
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("overlay api: %d %s", e.StatusCode, e.Message)
}

// Client talks to the overlay REST API
type Client struct {
	rest *resty.Client
}

// New creates a client. Connection failures and 5xx responses are retried;
// domain errors such as 404 or 409 are returned as *APIError.
func New(cfg Config) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil
	retryClient.CheckRetry = checkRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "Raksha-Client/1.0").
		SetHeader("Accept", "application/json")

	return &Client{rest: restyClient}
}

// checkRetry leaves 429 to the caller; desktop limits do not clear by waiting
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// Health is the /health response
type Health struct {
	Status   string             `json:"status"`
	Desktops types.ManagerStats `json:"desktops"`
	Uptime   float64            `json:"uptime_seconds"`
}

// Health reports service health
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out)
	return out, err
}

// CreateDesktop starts a desktop and returns its initial snapshot
func (c *Client) CreateDesktop(ctx context.Context) (types.Snapshot, error) {
	var out struct {
		Snapshot types.Snapshot `json:"snapshot"`
	}
	err := c.do(ctx, http.MethodPost, "/desktops", nil, nil, &out)
	return out.Snapshot, err
}

// ListDesktops lists live desktops
func (c *Client) ListDesktops(ctx context.Context) ([]types.DesktopInfo, error) {
	var out struct {
		Desktops []types.DesktopInfo `json:"desktops"`
	}
	err := c.do(ctx, http.MethodGet, "/desktops", nil, nil, &out)
	return out.Desktops, err
}

// DeleteDesktop closes a desktop
func (c *Client) DeleteDesktop(ctx context.Context, desktopID string) error {
	return c.do(ctx, http.MethodDelete, "/desktops/{id}", params(desktopID, ""), nil, nil)
}

// Snapshot returns the full desktop state
func (c *Client) Snapshot(ctx context.Context, desktopID string) (types.Snapshot, error) {
	var out types.Snapshot
	err := c.do(ctx, http.MethodGet, "/desktops/{id}/windows", params(desktopID, ""), nil, &out)
	return out, err
}

// Catalog lists the window presets
func (c *Client) Catalog(ctx context.Context) ([]catalog.Preset, error) {
	var out struct {
		Presets []catalog.Preset `json:"presets"`
	}
	err := c.do(ctx, http.MethodGet, "/catalog", nil, nil, &out)
	return out.Presets, err
}

// OpenWindow opens or focuses a window
func (c *Client) OpenWindow(ctx context.Context, desktopID string, req types.OpenWindowRequest) (types.WindowEntry, error) {
	var out windowResult
	err := c.do(ctx, http.MethodPost, "/desktops/{id}/windows", params(desktopID, ""), req, &out)
	return out.Window, err
}

// OpenPreset opens the catalog window for kind
func (c *Client) OpenPreset(ctx context.Context, desktopID string, kind types.ContentKind) (types.WindowEntry, error) {
	var out windowResult
	p := params(desktopID, "")
	p["kind"] = string(kind)
	err := c.do(ctx, http.MethodPost, "/desktops/{id}/presets/{kind}", p, nil, &out)
	return out.Window, err
}

// CloseWindow removes a window. The result is false when the window was not open.
func (c *Client) CloseWindow(ctx context.Context, desktopID, windowID string) (bool, error) {
	return c.command(ctx, http.MethodDelete, "/desktops/{id}/windows/{wid}", desktopID, windowID, nil)
}

// FocusWindow brings a window to front
func (c *Client) FocusWindow(ctx context.Context, desktopID, windowID string) (bool, error) {
	return c.command(ctx, http.MethodPost, "/desktops/{id}/windows/{wid}/focus", desktopID, windowID, nil)
}

// MinimizeWindow toggles a window's minimized state
func (c *Client) MinimizeWindow(ctx context.Context, desktopID, windowID string) (bool, error) {
	return c.command(ctx, http.MethodPost, "/desktops/{id}/windows/{wid}/minimize", desktopID, windowID, nil)
}

// MoveWindow replaces a window position
func (c *Client) MoveWindow(ctx context.Context, desktopID, windowID string, pos types.Position) (bool, error) {
	return c.command(ctx, http.MethodPut, "/desktops/{id}/windows/{wid}/position", desktopID, windowID,
		types.PositionRequest{X: pos.X, Y: pos.Y})
}

// ResizeWindow replaces a window size
func (c *Client) ResizeWindow(ctx context.Context, desktopID, windowID string, size types.Size) (bool, error) {
	return c.command(ctx, http.MethodPut, "/desktops/{id}/windows/{wid}/size", desktopID, windowID,
		types.SizeRequest{Width: size.Width, Height: size.Height})
}

// OpenModal activates the global modal
func (c *Client) OpenModal(ctx context.Context, desktopID, modalID string) (types.ModalState, error) {
	var out types.ModalState
	err := c.do(ctx, http.MethodPost, "/desktops/{id}/modal", params(desktopID, ""), types.ModalRequest{ModalID: modalID}, &out)
	return out, err
}

// CloseModal clears the global modal
func (c *Client) CloseModal(ctx context.Context, desktopID string) (types.ModalState, error) {
	var out types.ModalState
	err := c.do(ctx, http.MethodDelete, "/desktops/{id}/modal", params(desktopID, ""), nil, &out)
	return out, err
}

// SetCardsDisabled toggles card affordances
func (c *Client) SetCardsDisabled(ctx context.Context, desktopID string, disabled bool) (types.ModalState, error) {
	var out types.ModalState
	err := c.do(ctx, http.MethodPut, "/desktops/{id}/cards", params(desktopID, ""), types.CardsRequest{Disabled: disabled}, &out)
	return out, err
}

type windowResult struct {
	Success bool              `json:"success"`
	Window  types.WindowEntry `json:"window"`
}

func params(desktopID, windowID string) map[string]string {
	p := map[string]string{"id": desktopID}
	if windowID != "" {
		p["wid"] = windowID
	}
	return p
}

func (c *Client) command(ctx context.Context, method, path, desktopID, windowID string, body interface{}) (bool, error) {
	var out struct {
		Success bool `json:"success"`
	}
	err := c.do(ctx, method, path, params(desktopID, windowID), body, &out)
	return out.Success, err
}

func (c *Client) do(ctx context.Context, method, path string, pathParams map[string]string, body, result interface{}) error {
	// Continue the caller's trace on the server
	headers := make(map[string]string, 2)
	tracing.InjectTraceContext(ctx, headers)

	apiErr := &APIError{}
	req := c.rest.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetError(apiErr)
	if pathParams != nil {
		req.SetPathParams(pathParams)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr.StatusCode = resp.StatusCode()
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode())
		}
		return apiErr
	}
	return nil
}
