package models

import "time"

const (
	EventCallbackReturn = "callback.return"
	EventCallbackError  = "callback.error"
)

// CallbackEvent carries the transaction's payment-method-derived data to
// registered listeners and to the Kafka fan-out topics.
type CallbackEvent struct {
	Type          string              `json:"type"`
	PaymentMethod string              `json:"payment_method"`
	ChannelID     *int                `json:"channel_id,omitempty"`
	Transaction   *PaymentTransaction `json:"transaction,omitempty"`
	Reason        string              `json:"reason,omitempty"`
	Timestamp     time.Time           `json:"timestamp"`
}

// ErasureEvent is consumed from the customer-erasure topic when a shop
// customer's data must be removed from the provider.
type ErasureEvent struct {
	ShopReference string    `json:"shop_reference"`
	RequestedAt   time.Time `json:"requested_at"`
}
