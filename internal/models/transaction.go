package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PaymentTransaction is the shop-side record of one checkout payment
// attempt. Rows are created by the host platform at checkout start; this
// service only ever reads them.
type PaymentTransaction struct {
	bun.BaseModel `bun:"table:payment_transactions"`

	AccessIdentifier string    `json:"access_identifier" bun:"access_identifier,pk"`
	EntityIdentifier string    `json:"entity_identifier" bun:"entity_identifier"`
	PaymentMethod    string    `json:"payment_method" bun:"payment_method"`
	CreatedAt        time.Time `json:"created_at" bun:"created_at"`
}
