package client

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/GriffinCanCode/skydesk/internal/domain/catalog"
	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
)

// Result is the answer to a window operation. Success is false when the
// window does not exist; the server treats that as a no-op.
type Result struct {
	Success  bool            `json:"success"`
	WindowID string          `json:"window_id"`
	Window   *desktop.Window `json:"window,omitempty"`
}

// Health is the /health answer
type Health struct {
	Status      string        `json:"status"`
	Desktop     desktop.Stats `json:"desktop"`
	Subscribers int           `json:"subscribers"`
	Mounts      int           `json:"mounts"`
}

func idPath(id string) func(*resty.Request) {
	return func(r *resty.Request) { r.SetPathParam("id", id) }
}

// Health checks the server
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	err := c.do(ctx, http.MethodGet, "/health", nil, &out)
	return out, err
}

// Apps lists the catalog. An empty category lists everything.
func (c *Client) Apps(ctx context.Context, category catalog.Category) ([]catalog.App, error) {
	var out struct {
		Apps []catalog.App `json:"apps"`
	}
	err := c.do(ctx, http.MethodGet, "/apps", nil, &out, func(r *resty.Request) {
		if category != "" {
			r.SetQueryParam("category", string(category))
		}
	})
	return out.Apps, err
}

// Launch opens a window for appID
func (c *Client) Launch(ctx context.Context, appID string, overrides *desktop.Overrides) (desktop.Window, error) {
	var out struct {
		Window desktop.Window `json:"window"`
	}
	var body interface{}
	if overrides != nil {
		body = overrides
	}
	err := c.do(ctx, http.MethodPost, "/apps/{id}/launch", body, &out, idPath(appID))
	return out.Window, err
}

// Desktop returns the raw desktop state
func (c *Client) Desktop(ctx context.Context) (desktop.State, error) {
	var out struct {
		State desktop.State `json:"state"`
	}
	err := c.do(ctx, http.MethodGet, "/desktop", nil, &out)
	return out.State, err
}

// Windows lists windows back to front
func (c *Client) Windows(ctx context.Context) ([]desktop.Window, string, error) {
	var out struct {
		Windows        []desktop.Window `json:"windows"`
		ActiveWindowID string           `json:"active_window_id"`
	}
	err := c.do(ctx, http.MethodGet, "/windows", nil, &out)
	return out.Windows, out.ActiveWindowID, err
}

// Window returns one window; a missing one matches ErrNotFound
func (c *Client) Window(ctx context.Context, id string) (desktop.Window, error) {
	var out struct {
		Window desktop.Window `json:"window"`
	}
	err := c.do(ctx, http.MethodGet, "/windows/{id}", nil, &out, idPath(id))
	return out.Window, err
}

// Focus raises a window
func (c *Client) Focus(ctx context.Context, id string) (Result, error) {
	return c.windowOp(ctx, http.MethodPost, "/windows/{id}/focus", id, nil)
}

// Minimize toggles a window's minimized flag
func (c *Client) Minimize(ctx context.Context, id string) (Result, error) {
	return c.windowOp(ctx, http.MethodPost, "/windows/{id}/minimize", id, nil)
}

// Maximize toggles a window's maximized flag
func (c *Client) Maximize(ctx context.Context, id string) (Result, error) {
	return c.windowOp(ctx, http.MethodPost, "/windows/{id}/maximize", id, nil)
}

// Close closes a window
func (c *Client) Close(ctx context.Context, id string) (Result, error) {
	return c.windowOp(ctx, http.MethodDelete, "/windows/{id}", id, nil)
}

// Move sets a window's origin
func (c *Client) Move(ctx context.Context, id string, x, y int) (Result, error) {
	return c.windowOp(ctx, http.MethodPut, "/windows/{id}/position", id, map[string]int{"x": x, "y": y})
}

// Resize sets a window's size
func (c *Client) Resize(ctx context.Context, id string, width, height int) (Result, error) {
	return c.windowOp(ctx, http.MethodPut, "/windows/{id}/size", id, map[string]int{"width": width, "height": height})
}

// Activate presses a window's taskbar entry
func (c *Client) Activate(ctx context.Context, id string) (Result, error) {
	return c.windowOp(ctx, http.MethodPost, "/taskbar/{id}/activate", id, nil)
}

func (c *Client) windowOp(ctx context.Context, method, path, id string, body interface{}) (Result, error) {
	var out Result
	err := c.do(ctx, method, path, body, &out, idPath(id))
	return out, err
}

// ToggleTheme flips the theme and returns the new one
func (c *Client) ToggleTheme(ctx context.Context) (desktop.Theme, error) {
	var out struct {
		Theme desktop.Theme `json:"theme"`
	}
	err := c.do(ctx, http.MethodPost, "/theme/toggle", nil, &out)
	return out.Theme, err
}

// Notify posts a notification
func (c *Client) Notify(ctx context.Context, message string, level desktop.Level) (desktop.Notification, error) {
	var out struct {
		Notification desktop.Notification `json:"notification"`
	}
	body := map[string]string{"message": message, "level": string(level)}
	err := c.do(ctx, http.MethodPost, "/notifications", body, &out)
	return out.Notification, err
}

// Dismiss removes a notification and reports whether it existed
func (c *Client) Dismiss(ctx context.Context, id string) (bool, error) {
	var out struct {
		Success bool `json:"success"`
	}
	err := c.do(ctx, http.MethodDelete, "/notifications/{id}", nil, &out, idPath(id))
	return out.Success, err
}
