package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CustomerReference maps a shop customer to the provider-side customer
// record created for them. At most one mapping exists per shop reference.
type CustomerReference struct {
	bun.BaseModel `bun:"table:customer_references"`

	ShopReference   string    `json:"shop_reference" bun:"shop_reference,pk"`
	MollieReference string    `json:"mollie_reference" bun:"mollie_reference"`
	Payload         string    `json:"payload" bun:"payload"`
	CreatedAt       time.Time `json:"created_at" bun:"created_at"`
}
