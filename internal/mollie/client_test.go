package mollie

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mollie-bridge/internal/config"
	"mollie-bridge/internal/logger"
	"mollie-bridge/internal/models"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := NewClient(config.MollieConfig{
		APIBaseURL:       baseURL,
		APIToken:         "default_token",
		ChannelTokensRaw: "7:channel_token",
		Timeout:          2 * time.Second,
	}, logger.NewLogger())
	require.NoError(t, err)

	return client
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(config.MollieConfig{APIBaseURL: "https://api.mollie.com/v2"}, logger.NewLogger())

	assert.ErrorIs(t, err, ErrClientInitFailed)
}

func TestGetOrderRequestsEmbeddedPayments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders/ord_1", r.URL.Path)
		assert.Equal(t, "payments", r.URL.Query().Get("embed"))
		assert.Equal(t, "Bearer default_token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"ord_1","status":"paid","_embedded":{"payments":[{"id":"tr_1","status":"paid"}]}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	order, err := client.GetOrder(context.Background(), nil, "ord_1")

	require.NoError(t, err)
	assert.Equal(t, "ord_1", order.ID)
	require.Len(t, order.Embedded.Payments, 1)
	assert.Equal(t, models.MolliePaymentPaid, order.Embedded.Payments[0].Status)
}

func TestGetOrderUsesChannelToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer channel_token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":"ord_2"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	channelID := 7
	_, err := client.GetOrder(context.Background(), &channelID, "ord_2")

	require.NoError(t, err)
}

func TestGetOrderUnknownChannelFallsBackToDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer default_token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":"ord_3"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	channelID := 99
	_, err := client.GetOrder(context.Background(), &channelID, "ord_3")

	require.NoError(t, err)
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrAuthentication},
		{http.StatusForbidden, ErrAuthentication},
		{http.StatusUnprocessableEntity, ErrUnprocessable},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusInternalServerError, ErrAPIError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"status":` + strconv.Itoa(tt.status) + `,"title":"Error","detail":"nope"}`))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			_, err := client.GetOrder(context.Background(), nil, "ord_err")

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateCustomerReturnsProviderSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/customers", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"cst_1","name":"Jane Doe","email":"jane@example.com"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	created, err := client.CreateCustomer(context.Background(), nil, &models.MollieCustomer{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "cst_1", created.ID)
}

func TestDeleteCustomer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/customers/cst_1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	assert.NoError(t, client.DeleteCustomer(context.Background(), nil, "cst_1"))
}

func TestDeleteCustomerUnprocessablePropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"status":422,"title":"Unprocessable Entity","detail":"cannot delete"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.DeleteCustomer(context.Background(), nil, "cst_1")

	assert.ErrorIs(t, err, ErrUnprocessable)
}
