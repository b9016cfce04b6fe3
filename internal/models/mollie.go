package models

// Snapshot DTOs of the provider's view of an order and its customers.
// Fetched fresh per request, never persisted (except the customer payload,
// which is stored verbatim as the mapping snapshot).

type MolliePaymentStatus string

const (
	MolliePaymentOpen       MolliePaymentStatus = "open"
	MolliePaymentPending    MolliePaymentStatus = "pending"
	MolliePaymentAuthorized MolliePaymentStatus = "authorized"
	MolliePaymentPaid       MolliePaymentStatus = "paid"
	MolliePaymentExpired    MolliePaymentStatus = "expired"
	MolliePaymentFailed     MolliePaymentStatus = "failed"
	MolliePaymentCanceled   MolliePaymentStatus = "canceled"
)

type MolliePayment struct {
	ID     string              `json:"id"`
	Status MolliePaymentStatus `json:"status"`
	Method string              `json:"method,omitempty"`
}

type MollieOrderEmbedded struct {
	Payments []MolliePayment `json:"payments"`
}

type MollieOrder struct {
	ID          string              `json:"id"`
	OrderNumber string              `json:"orderNumber"`
	Status      string              `json:"status"`
	Embedded    MollieOrderEmbedded `json:"_embedded"`
}

// IsSuccessful reports whether the order should route the shopper to the
// success path. A single failed or canceled embedded payment fails the
// whole order; an order with no embedded payments counts as successful.
func (o *MollieOrder) IsSuccessful() bool {
	for _, payment := range o.Embedded.Payments {
		if payment.Status == MolliePaymentFailed || payment.Status == MolliePaymentCanceled {
			return false
		}
	}
	return true
}

type MollieCustomer struct {
	ID       string            `json:"id,omitempty"`
	Name     string            `json:"name,omitempty"`
	Email    string            `json:"email,omitempty"`
	Locale   string            `json:"locale,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
