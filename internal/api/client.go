package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError is a non-2xx backend response. The backend sends plain-text
// error bodies which are surfaced to the user verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Client talks to the Taaza ordering backend over HTTP/JSON.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the backend at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Categories fetches the category list.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var cats []Category
	if err := c.get(ctx, "/categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Items fetches the items of one category. The category travels as a
// percent-encoded path segment.
func (c *Client) Items(ctx context.Context, category string) ([]Item, error) {
	var items []Item
	if err := c.get(ctx, "/items/"+url.PathEscape(category), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateSession registers a customer and returns the opened session.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	var sess Session
	if err := c.post(ctx, "/session/create", req, &sess); err != nil {
		return nil, err
	}
	if sess.SessionID == "" {
		return nil, fmt.Errorf("backend returned no session id")
	}
	return &sess, nil
}

// AddToCart adds an item and returns the authoritative cart.
func (c *Client) AddToCart(ctx context.Context, req AddToCartRequest) ([]CartLine, error) {
	var resp struct {
		Cart []CartLine `json:"cart"`
	}
	if err := c.post(ctx, "/cart/add", req, &resp); err != nil {
		return nil, err
	}
	return resp.Cart, nil
}

// RemoveFromCart removes or reduces an item and returns the authoritative cart.
func (c *Client) RemoveFromCart(ctx context.Context, req RemoveFromCartRequest) ([]CartLine, error) {
	var resp struct {
		Cart []CartLine `json:"cart"`
	}
	if err := c.post(ctx, "/cart/remove", req, &resp); err != nil {
		return nil, err
	}
	return resp.Cart, nil
}

// ViewCart fetches the current cart and customer info for a session.
func (c *Client) ViewCart(ctx context.Context, sessionID string) (*CartView, error) {
	var view CartView
	q := url.Values{"session_id": {sessionID}}
	if err := c.get(ctx, "/cart/view", q, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Checkout places the order for the session's cart. Response fields beyond
// the status are unused.
func (c *Client) Checkout(ctx context.Context, req CheckoutRequest) error {
	return c.post(ctx, "/checkout", req, nil)
}

// ResetSession clears a session on the backend. Used on logout.
func (c *Client) ResetSession(ctx context.Context, sessionID string) error {
	body := map[string]string{"session_id": sessionID}
	return c.post(ctx, "/session/reset", body, nil)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshalling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading backend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshalling backend response: %w", err)
	}
	return nil
}
