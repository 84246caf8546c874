package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	var got OrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "rzp_test_secret", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       "order_Nxy123",
			"amount":   got.Amount,
			"currency": got.Currency,
			"receipt":  got.Receipt,
			"status":   "created",
		})
	}))
	defer srv.Close()

	c := New("rzp_test_key", "rzp_test_secret", srv.URL, 5*time.Second)
	resp, err := c.CreateOrder(context.Background(), OrderRequest{
		Amount:   49900,
		Currency: "INR",
		Receipt:  "5am_20260828120000",
		Notes:    map[string]string{"product": "mug", "qty": "2", "customer": "Asha"},
	})
	require.NoError(t, err)

	assert.Equal(t, "order_Nxy123", resp.ID)
	assert.Equal(t, int64(49900), resp.Amount)
	assert.Equal(t, int64(49900), got.Amount)
	assert.Equal(t, "INR", got.Currency)
	assert.Equal(t, "mug", got.Notes["product"])
}

func TestCreateOrderNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"description":"Authentication failed"}}`))
	}))
	defer srv.Close()

	c := New("bad", "creds", srv.URL, 5*time.Second)
	_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR"})

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusUnauthorized, gwErr.Status)
	assert.Contains(t, gwErr.Body, "Authentication failed")
}

func TestCreateOrderMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New("k", "s", srv.URL, 5*time.Second)
	_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR"})

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Contains(t, gwErr.Body, "missing order id")
}

func TestCreateOrderTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New("k", "s", srv.URL, 20*time.Millisecond)
	_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR"})

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, 0, gwErr.Status)
}

func TestCreateOrderUnreachable(t *testing.T) {
	c := New("k", "s", "http://127.0.0.1:1", time.Second)
	_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR"})

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
}
