// Package editorlink pushes generation results to a listening editor UI over
// socket.io, so the code panel and diagnostics list refresh without polling.
// The core stays presentation-free: this is a plain data feed.
package editorlink

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/blockforge/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultEvent is the event name the editor listens on.
const DefaultEvent = "sketch"

// DefaultTimeout bounds one publish attempt end to end.
const DefaultTimeout = 10 * time.Second

// Diagnostic mirrors a validation finding in wire form.
type Diagnostic struct {
	Message string `json:"message"`
	BlockID string `json:"block_id,omitempty"`
}

// Update is the payload emitted after every build attempt.
type Update struct {
	Board       string           `json:"board"`
	Code        string           `json:"code"`
	Mapping     map[string][]int `json:"mapping"`
	Diagnostics []Diagnostic     `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
}

// Client publishes updates to one editor endpoint.
type Client struct {
	url       string
	namespace string
	event     string
	timeout   time.Duration
}

// NewClient creates a publisher for the given socket.io URL.
func NewClient(rawURL string) *Client {
	return &Client{
		url:     rawURL,
		event:   DefaultEvent,
		timeout: DefaultTimeout,
	}
}

// Publish connects, emits one update and disconnects. It returns once the
// payload is handed to the transport or the timeout elapses.
func (c *Client) Publish(ctx context.Context, update *Update) error {
	logger := ctxlog.FromContext(ctx).With("url", c.url, "event", c.event)
	logger.Debug("Publishing update to editor.")

	parsedURL, err := url.Parse(c.url)
	if err != nil {
		return fmt.Errorf("failed to parse editor URL: %w", err)
	}

	opCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(c.namespace, opts)
	defer func() {
		logger.Debug("Disconnecting editor socket.")
		io.Disconnect()
	}()

	done := make(chan error, 1)

	io.On(types.EventName("connect"), func(...any) {
		logger.Debug("Connected to editor.", "sid", io.Id())
		io.Emit(c.event, update)
		done <- nil
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if connectErr, ok := errs[0].(error); ok {
				done <- connectErr
				return
			}
		}
		done <- fmt.Errorf("editor connection failed")
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		return fmt.Errorf("timed out publishing to editor at %s", c.url)
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to publish to editor: %w", err)
		}
		return nil
	}
}
