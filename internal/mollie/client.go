package mollie

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"mollie-bridge/internal/config"
	"mollie-bridge/internal/logger"
	"mollie-bridge/internal/models"
)

var (
	ErrClientInitFailed = errors.New("failed to initialize Mollie client")
	ErrAuthentication   = errors.New("mollie authentication failed")
	ErrUnprocessable    = errors.New("mollie rejected the request as unprocessable")
	ErrNotFound         = errors.New("mollie resource not found")
	ErrAPIError         = errors.New("mollie API error")
)

// Client is a thin facade over the Mollie REST API covering the calls this
// service needs: order fetch, customer create, customer delete. Calls are
// authenticated with the bearer token of the given sales channel, falling
// back to the default token when no channel context is present.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	defaultToken  string
	channelTokens map[int]string
	log           *logger.Logger
}

func NewClient(cfg config.MollieConfig, log *logger.Logger) (*Client, error) {
	if cfg.APIToken == "" {
		log.Error("MOLLIE", "MOLLIE_API_TOKEN environment variable not set")
		return nil, ErrClientInitFailed
	}

	log.Info("MOLLIE", "Mollie client initialized")
	return &Client{
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		baseURL:       cfg.APIBaseURL,
		defaultToken:  cfg.APIToken,
		channelTokens: cfg.ChannelTokens(),
		log:           log,
	}, nil
}

func (c *Client) tokenFor(channelID *int) string {
	if channelID != nil {
		if token, ok := c.channelTokens[*channelID]; ok {
			return token
		}
	}
	return c.defaultToken
}

// GetOrder fetches the provider's view of an order with its embedded
// payments. The snapshot is never persisted.
func (c *Client) GetOrder(ctx context.Context, channelID *int, shopReference string) (*models.MollieOrder, error) {
	c.log.LogCallback("FETCH", shopReference, "Fetching order from Mollie")

	url := fmt.Sprintf("%s/orders/%s?embed=payments", c.baseURL, shopReference)

	order := &models.MollieOrder{}
	if err := c.do(ctx, http.MethodGet, url, channelID, nil, order); err != nil {
		return nil, err
	}

	return order, nil
}

// CreateCustomer creates a customer record at the provider and returns its
// snapshot, including the provider-assigned reference.
func (c *Client) CreateCustomer(ctx context.Context, channelID *int, customer *models.MollieCustomer) (*models.MollieCustomer, error) {
	c.log.LogCustomer("CREATE", customer.Email, "Creating customer at Mollie")

	url := fmt.Sprintf("%s/customers", c.baseURL)

	created := &models.MollieCustomer{}
	if err := c.do(ctx, http.MethodPost, url, channelID, customer, created); err != nil {
		return nil, err
	}

	return created, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, channelID *int, mollieReference string) error {
	c.log.LogCustomer("DELETE", mollieReference, "Deleting customer at Mollie")

	url := fmt.Sprintf("%s/customers/%s", c.baseURL, mollieReference)

	return c.do(ctx, http.MethodDelete, url, channelID, nil, nil)
}

type apiError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, url string, channelID *int, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.tokenFor(channelID))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("MOLLIE", fmt.Sprintf("Request to %s failed: %v", url, err))
		return fmt.Errorf("%w: %v", ErrAPIError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.log.Error("MOLLIE", fmt.Sprintf("Failed to decode response from %s: %v", url, err))
			return fmt.Errorf("%w: malformed response: %v", ErrAPIError, err)
		}
	}

	return nil
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	detail := &apiError{}
	if err := json.NewDecoder(resp.Body).Decode(detail); err != nil {
		detail.Title = resp.Status
	}

	c.log.Error("MOLLIE", fmt.Sprintf("API returned %d: %s %s", resp.StatusCode, detail.Title, detail.Detail))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuthentication, detail.Detail)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrUnprocessable, detail.Detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, detail.Detail)
	default:
		return fmt.Errorf("%w: %d %s", ErrAPIError, resp.StatusCode, detail.Detail)
	}
}
