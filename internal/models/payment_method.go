package models

import "github.com/uptrace/bun"

// Method identifiers with special-cased behavior in the settings form.
const (
	MethodBankTransfer = "banktransfer"
	MethodVoucher      = "voucher"
)

type SurchargeType string

const (
	SurchargeNoFee              SurchargeType = "no_fee"
	SurchargeFixedFee           SurchargeType = "fixed_fee"
	SurchargePercentage         SurchargeType = "percentage"
	SurchargeFixedAndPercentage SurchargeType = "fixed_fee_and_percentage"
)

type APIMethod string

const (
	APIMethodPayment APIMethod = "payment_api"
	APIMethodOrders  APIMethod = "orders_api"
)

type IssuerListStyle string

const (
	IssuerStyleList     IssuerListStyle = "list"
	IssuerStyleDropdown IssuerListStyle = "dropdown"
)

type VoucherCategory string

const (
	VoucherCategoryNone VoucherCategory = "none"
	VoucherCategoryMeal VoucherCategory = "meal"
	VoucherCategoryEco  VoucherCategory = "eco"
	VoucherCategoryGift VoucherCategory = "gift"
)

// PaymentMethodSettings is the administrator-configured behavior for one
// payment method variant. The restriction flags are independent; any
// subset may be set at once and the form assembler checks each on its own.
type PaymentMethodSettings struct {
	bun.BaseModel `bun:"table:payment_method_settings"`

	MollieID             string `json:"mollie_id" bun:"mollie_id,pk"`
	Description          string `json:"description" bun:"description"`
	Enabled              bool   `json:"enabled" bun:"enabled"`
	ImagePath            string `json:"image_path" bun:"image_path"`
	OriginalImagePath    string `json:"original_image_path" bun:"original_image_path"`
	APIMethodRestricted  bool   `json:"api_method_restricted" bun:"api_method_restricted"`
	SurchargeRestricted  bool   `json:"surcharge_restricted" bun:"surcharge_restricted"`
	ComponentsSupported  bool   `json:"components_supported" bun:"components_supported"`
	SingleClickSupported bool   `json:"single_click_supported" bun:"single_click_supported"`
	IssuerListSupported  bool   `json:"issuer_list_supported" bun:"issuer_list_supported"`
}
