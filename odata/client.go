// Package odata is the remote call adapter for the recruitment OData
// backend. It wraps function imports, bound and unbound actions, and
// entity set reads behind a typed request builder, classifying every
// expected failure mode instead of throwing it at callers.
package odata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/remote"
)

// Config holds client configuration for the OData service.
type Config struct {
	// ServiceRoot is the base URL of the OData service, without a
	// trailing slash.
	ServiceRoot string

	// Namespace qualifies bound and unbound action names.
	Namespace string

	// Timeout bounds each call; the default transport timeout applies
	// when zero.
	Timeout time.Duration
}

// Client performs calls against one OData service.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an OData client.
func NewClient(config Config, logger *zap.Logger) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

// CallFunction invokes a function import and returns the decoded
// payload with the OData envelope removed. An empty result set is a
// success.
func (c *Client) CallFunction(ctx context.Context, req *Request) (gjson.Result, error) {
	return c.do(ctx, http.MethodGet, req.Path(c.config.Namespace), req.Name(), nil)
}

// CallAction invokes a bound or unbound action with its JSON body.
func (c *Client) CallAction(ctx context.Context, req *Request) (gjson.Result, error) {
	var body io.Reader
	if req.BodyMap() != nil {
		encoded, err := json.Marshal(req.BodyMap())
		if err != nil {
			return gjson.Result{}, remote.NewCallError(req.Name(), remote.KindDecode, 0, "failed to encode action body", err)
		}
		body = bytes.NewReader(encoded)
	}
	return c.do(ctx, http.MethodPost, req.Path(c.config.Namespace), req.Name(), body)
}

// List reads an entity set with optional query options, returning the
// unwrapped result array.
func (c *Client) List(ctx context.Context, entitySet string, query Query) (gjson.Result, error) {
	path := "/" + entitySet
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return c.do(ctx, http.MethodGet, path, entitySet, nil)
}

// Get reads one entity by key.
func (c *Client) Get(ctx context.Context, entitySet string, key any) (gjson.Result, error) {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/%s(%s)", entitySet, literal(key)), entitySet, nil)
}

// Create inserts one entity.
func (c *Client) Create(ctx context.Context, entitySet string, entity any) (gjson.Result, error) {
	encoded, err := json.Marshal(entity)
	if err != nil {
		return gjson.Result{}, remote.NewCallError(entitySet, remote.KindDecode, 0, "failed to encode entity", err)
	}
	return c.do(ctx, http.MethodPost, "/"+entitySet, entitySet, bytes.NewReader(encoded))
}

// Update patches one entity by key.
func (c *Client) Update(ctx context.Context, entitySet string, key any, entity any) (gjson.Result, error) {
	encoded, err := json.Marshal(entity)
	if err != nil {
		return gjson.Result{}, remote.NewCallError(entitySet, remote.KindDecode, 0, "failed to encode entity", err)
	}
	path := fmt.Sprintf("/%s(%s)", entitySet, literal(key))
	return c.do(ctx, http.MethodPatch, path, entitySet, bytes.NewReader(encoded))
}

// Delete removes one entity by key.
func (c *Client) Delete(ctx context.Context, entitySet string, key any) error {
	path := fmt.Sprintf("/%s(%s)", entitySet, literal(key))
	_, err := c.do(ctx, http.MethodDelete, path, entitySet, nil)
	return err
}

// do executes one HTTP call and classifies the outcome. Success returns
// the payload with the `value` / `d.results` envelope unwrapped; a 204
// or empty body returns an empty result.
func (c *Client) do(ctx context.Context, method, path, operation string, body io.Reader) (gjson.Result, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, c.config.ServiceRoot+path, body)
	if err != nil {
		return gjson.Result{}, remote.NewCallError(operation, remote.KindTransport, 0, "failed to create request", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return gjson.Result{}, remote.NewCallError(operation, remote.KindTransport, 0, "request failed", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return gjson.Result{}, remote.NewCallError(operation, remote.KindTransport, httpResp.StatusCode, "failed to read response", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		message := extractErrorMessage(respBody)
		if message == "" {
			message = http.StatusText(httpResp.StatusCode)
		}
		c.logger.Debug("odata call rejected",
			zap.String("operation", operation),
			zap.Int("status", httpResp.StatusCode))
		return gjson.Result{}, remote.NewCallError(operation, remote.KindStatus, httpResp.StatusCode, message, nil)
	}

	if len(respBody) == 0 || httpResp.StatusCode == http.StatusNoContent {
		return gjson.Result{}, nil
	}

	if !gjson.ValidBytes(respBody) {
		return gjson.Result{}, remote.NewCallError(operation, remote.KindDecode, httpResp.StatusCode, "malformed JSON payload", nil)
	}

	return unwrap(gjson.ParseBytes(respBody)), nil
}

// unwrap strips the OData response envelope. V4 wraps collections in
// `value`, V2 wraps everything in `d` (collections in `d.results`).
func unwrap(payload gjson.Result) gjson.Result {
	if value := payload.Get("value"); value.Exists() {
		return value
	}
	if results := payload.Get("d.results"); results.Exists() {
		return results
	}
	if d := payload.Get("d"); d.Exists() {
		return d
	}
	return payload
}

// extractErrorMessage digs the human-readable message out of an OData
// error envelope, tolerating both V2 and V4 shapes.
func extractErrorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	payload := gjson.ParseBytes(body)
	for _, path := range []string{"error.message.value", "error.message", "message"} {
		if msg := payload.Get(path); msg.Exists() && msg.Type == gjson.String {
			return msg.String()
		}
	}
	return ""
}
