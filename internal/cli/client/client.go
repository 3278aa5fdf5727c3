package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/pranavbafna586/MediMind/internal/cli/types"
	"github.com/pranavbafna586/MediMind/internal/domain"
)

// ErrMissingResponse is returned when a successful reply has no response field
var ErrMissingResponse = errors.New("response field missing")

var _ domain.ChatBackend = (*APIClient)(nil)

// Options configure an APIClient
type Options struct {
	DialTimeout time.Duration // zero keeps the Hertz default
	ReadTimeout time.Duration // zero waits indefinitely
	Logger      *slog.Logger
}

// APIClient wraps Hertz Client for HTTP communication with the chat backend
type APIClient struct {
	client *client.Client
	server string
	logger *slog.Logger
}

// NewAPIClient creates a new API client
func NewAPIClient(server string, opts Options) (*APIClient, error) {
	normalizedServer, err := normalizeServerURL(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	clientOpts := []config.ClientOption{
		client.WithMaxIdleConnDuration(60 * time.Second),
		client.WithDialer(standard.NewDialer()),
	}
	if opts.DialTimeout > 0 {
		clientOpts = append(clientOpts, client.WithDialTimeout(opts.DialTimeout))
	}
	if opts.ReadTimeout > 0 {
		clientOpts = append(clientOpts, client.WithClientReadTimeout(opts.ReadTimeout))
	}

	c, err := client.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "client", "server", normalizedServer)

	c.Use(loggingMiddleware(logger))

	return &APIClient{
		client: c,
		server: normalizedServer,
		logger: logger,
	}, nil
}

// normalizeServerURL ensures the server has a scheme and drops any path
func normalizeServerURL(server string) (string, error) {
	server = strings.TrimSpace(server)
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}

	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL")
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// Server returns the normalized backend address
func (c *APIClient) Server() string {
	return c.server
}

// Chat sends a text message to the chat endpoint
func (c *APIClient) Chat(ctx context.Context, message string) (string, error) {
	return c.post(ctx, endpointChat, types.ChatRequest{Message: message})
}

// AnalyzeImage sends an image and query to the image analysis endpoint
func (c *APIClient) AnalyzeImage(ctx context.Context, image, query string) (string, error) {
	return c.post(ctx, endpointAnalyzeImage, types.AnalyzeImageRequest{Image: image, Query: query})
}

type rawResult struct {
	status int
	body   []byte
	err    error
}

// post sends body as JSON and decodes the response field of the reply.
// Transport errors, non-2xx statuses and undecodable bodies are all errors.
func (c *APIClient) post(ctx context.Context, endpoint string, body interface{}) (string, error) {
	bodyBytes, err := sonic.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	start := time.Now()
	done := make(chan rawResult, 1)

	// Hertz does not abort Do on context cancellation, so the call runs
	// detached and the caller stops waiting when ctx is done.
	go func() {
		req := protocol.AcquireRequest()
		resp := protocol.AcquireResponse()
		defer func() {
			protocol.ReleaseRequest(req)
			protocol.ReleaseResponse(resp)
		}()

		req.SetMethod(consts.MethodPost)
		req.SetRequestURI(c.server + endpoint)
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.Header.Set("Accept", "application/json")
		req.SetBody(bodyBytes)

		if err := c.client.Do(ctx, req, resp); err != nil {
			done <- rawResult{err: err}
			return
		}
		done <- rawResult{
			status: resp.StatusCode(),
			body:   append([]byte(nil), resp.Body()...),
		}
	}()

	var res rawResult
	select {
	case res = <-done:
	case <-ctx.Done():
		c.logger.Debug("request abandoned", "endpoint", endpoint, "error", ctx.Err())
		return "", fmt.Errorf("request aborted: %w", ctx.Err())
	}

	if res.err != nil {
		return "", fmt.Errorf("request failed: %w", res.err)
	}

	c.logger.Debug("request finished",
		"endpoint", endpoint,
		"status", res.status,
		"duration", time.Since(start),
	)

	var chatResp types.ChatResponse
	decodeErr := sonic.Unmarshal(res.body, &chatResp)

	if res.status < 200 || res.status >= 300 {
		if decodeErr == nil && chatResp.Error != "" {
			c.logger.Warn("backend error", "endpoint", endpoint, "status", res.status, "detail", chatResp.Error)
			return "", fmt.Errorf("backend returned HTTP %d: %s", res.status, chatResp.Error)
		}
		return "", fmt.Errorf("backend returned HTTP %d", res.status)
	}

	if decodeErr != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", decodeErr)
	}
	if chatResp.Response == nil {
		return "", ErrMissingResponse
	}

	return *chatResp.Response, nil
}
