// Package gateway talks to the Razorpay orders API. It is the only
// place that holds the key secret besides signature verification.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Error is any failure to create a remote order: transport errors,
// timeouts and non-200 responses all end up here so callers can map
// them to a single upstream-failure outcome. Status is 0 when the
// request never produced a response.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return "razorpay request failed: " + e.Body
	}
	return fmt.Sprintf("razorpay returned %d: %s", e.Status, e.Body)
}

type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func New(keyID, keySecret, baseURL string, timeout time.Duration) *Client {
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
	}
}

type OrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type OrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder posts to /v1/orders with basic auth. Anything other than
// a decodable 200 response is returned as *Error.
func (c *Client) CreateOrder(ctx context.Context, order OrderRequest) (*OrderResponse, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, &Error{Body: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Body: err.Error()}
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &Error{Body: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	var out OrderResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &Error{Status: resp.StatusCode, Body: err.Error()}
	}
	if out.ID == "" {
		return nil, &Error{Status: resp.StatusCode, Body: "response missing order id"}
	}
	return &out, nil
}
