// Package client talks to a running blackjack server over its HTTP API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anchal00/blackjack/internal/parser"
)

const apiPrefix = "/api/v1"

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// New returns a client for the server at baseURL. The server identifies the
// device by address and user agent, so keep userAgent stable between runs.
func New(baseURL, userAgent string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Deal(ctx context.Context) (*parser.GameResponse, error) {
	return call[parser.GameResponse](ctx, c, http.MethodPost, "/deal", nil)
}

func (c *Client) Game(ctx context.Context, token string) (*parser.GameResponse, error) {
	return call[parser.GameResponse](ctx, c, http.MethodGet, "/game", tokenQuery(token))
}

func (c *Client) Hit(ctx context.Context, token string) (*parser.GameResponse, error) {
	return call[parser.GameResponse](ctx, c, http.MethodPost, "/hit", tokenQuery(token))
}

func (c *Client) Stand(ctx context.Context, token string) (*parser.GameResponse, error) {
	return call[parser.GameResponse](ctx, c, http.MethodPost, "/stay", tokenQuery(token))
}

func (c *Client) Stats(ctx context.Context) (*parser.StatsResponse, error) {
	return call[parser.StatsResponse](ctx, c, http.MethodGet, "/stats", nil)
}

func (c *Client) History(ctx context.Context, start string) ([]parser.GameResponse, error) {
	query := url.Values{}
	if start != "" {
		query.Set("start", start)
	}
	history, err := call[[]parser.GameResponse](ctx, c, http.MethodGet, "/history", query)
	if err != nil {
		return nil, err
	}
	return *history, nil
}

// Delete removes finished games, or only the one named by token.
func (c *Client) Delete(ctx context.Context, token string) (*parser.DeleteResponse, error) {
	path := "/delete"
	if token != "" {
		path += "/" + url.PathEscape(token)
	}
	return call[parser.DeleteResponse](ctx, c, http.MethodDelete, path, url.Values{"sure": {"true"}})
}

func call[T any](ctx context.Context, c *Client, method, path string, query url.Values) (*T, error) {
	var out T
	if err := c.do(ctx, method, path, query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func tokenQuery(token string) url.Values {
	if token == "" {
		return nil
	}
	return url.Values{"token": {token}}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, out any) error {
	target := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errResp parser.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			apiErr.Message = errResp.Message
		}
		return apiErr
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
