package pushgateway

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
	"strings"
)

// notifyVersion is the minimum gateway protocol version this client speaks.
// It pins the notify endpoint path; newer gateways accept it unchanged.
const notifyVersion = "v1"

const notifyPath = "/_matrix/push/" + notifyVersion + "/notify"

var (
	// ErrInvalidDestination indicates the pusher URL cannot become a request.
	ErrInvalidDestination = errors.New("invalid push gateway destination")
	// ErrBadGatewayResponse indicates the gateway body failed to decode.
	ErrBadGatewayResponse = errors.New("push gateway returned an unparsable response")
)

// Client delivers notifications to remote push gateways. The HTTP client is
// shared and reusable; connection pooling is its concern, not ours.
type Client struct {
	HTTPClient *http.Client
	// AccessToken is sent as a bearer credential only when non-empty.
	// Gateway notify calls require none.
	AccessToken string
	Log         *slog.Logger
}

// New constructs a gateway client around a shared HTTP client.
func New(httpClient *http.Client, log *slog.Logger) *Client {
	return &Client{HTTPClient: httpClient, Log: log}
}

// Notify posts one notification to the gateway at destination and decodes
// the reply. There is no retry at this layer; callers needing backoff build
// it above. A non-200 status alone is not a failure: the body decides.
func (c *Client) Notify(ctx context.Context, destination string, notification Notification) (*Response, error) {
	// Older registrations stored the full notify URL as the destination.
	dest := strings.ReplaceAll(strings.TrimSpace(destination), notifyPath, "")
	dest = strings.TrimRight(dest, "/")

	parsed, err := url.Parse(dest)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDestination, destination)
	}

	body, err := json.Marshal(notifyRequest{Notification: notification})
	if err != nil {
		return nil, fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, dest+notifyPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDestination, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		c.log().WarnContext(ctx, "could not reach push gateway", "destination", dest, "error", err)
		return nil, fmt.Errorf("send notification to %s: %w", dest, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	wire := c.adaptResponse(ctx, resp)
	if wire.StatusCode != http.StatusOK {
		c.log().InfoContext(ctx, "push gateway returned bad response",
			"destination", dest, "status", wire.StatusCode, "body", string(wire.Body))
	}

	return decodeResponse(wire)
}

// wireResponse is the generic HTTP shape the typed decoder consumes.
type wireResponse struct {
	StatusCode int
	Proto      string
	Header     http.Header
	Body       []byte
}

// adaptResponse maps the HTTP client's response onto the decoder's shape.
// Status, protocol version and headers carry over exactly; a body read
// failure degrades to an empty body and is logged, since notification
// delivery is not critical enough to fail on it.
func (c *Client) adaptResponse(ctx context.Context, resp *http.Response) wireResponse {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log().WarnContext(ctx, "failed to read push gateway response body", "error", err)
		body = nil
	}
	return wireResponse{
		StatusCode: resp.StatusCode,
		Proto:      resp.Proto,
		Header:     resp.Header.Clone(),
		Body:       body,
	}
}

func decodeResponse(wire wireResponse) (*Response, error) {
	var out Response
	if err := json.Unmarshal(wire.Body, &out); err != nil {
		return nil, fmt.Errorf("%w (status %d)", ErrBadGatewayResponse, wire.StatusCode)
	}
	return &out, nil
}

func (c *Client) log() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.Default()
}
