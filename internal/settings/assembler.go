package settings

import "mollie-bridge/internal/models"

const DefaultTransactionDescription = "{orderNumber}"

const (
	imageMaxSizeBytes = 2 * 1024 * 1024
)

type FieldType string

const (
	FieldHidden    FieldType = "hidden"
	FieldInteger   FieldType = "integer"
	FieldNumber    FieldType = "number"
	FieldCheckbox  FieldType = "checkbox"
	FieldChoice    FieldType = "choice"
	FieldFile      FieldType = "file"
	FieldLocalized FieldType = "localized_collection"
)

type Choice struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Field describes one form control the admin UI should render. The set of
// fields is a strict function of the stored method settings; nothing here
// is user-editable at render time.
type Field struct {
	Name          string    `json:"name"`
	Type          FieldType `json:"type"`
	Label         string    `json:"label,omitempty"`
	Tooltip       string    `json:"tooltip,omitempty"`
	Required      bool      `json:"required"`
	EntryRequired bool      `json:"entry_required,omitempty"`
	Default       string    `json:"default,omitempty"`
	Min           *float64  `json:"min,omitempty"`
	Max           *float64  `json:"max,omitempty"`
	Choices       []Choice  `json:"choices,omitempty"`
	MaxSizeBytes  int64     `json:"max_size_bytes,omitempty"`
	MimeTypes     []string  `json:"mime_types,omitempty"`
}

// ProductAttributeProvider supplies the selectable product attributes for
// the voucher category mapping. Lives outside this service; the platform
// knows its own product schema.
type ProductAttributeProvider interface {
	ProductAttributes() []Choice
}

type Assembler struct {
	attributes ProductAttributeProvider
}

func NewAssembler(attributes ProductAttributeProvider) *Assembler {
	return &Assembler{attributes: attributes}
}

// Assemble produces the ordered field set for one payment method variant.
// Each conditional group is gated by its own flag; the flags are
// independent and any subset may apply at once.
func (a *Assembler) Assemble(cfg *models.PaymentMethodSettings) []Field {
	fields := a.baseFields()

	fields = append(fields, Field{
		Name:     "orderExpiryDays",
		Type:     FieldInteger,
		Label:    "mollie.payment.config.payment_methods.orderExpiryDays.label",
		Tooltip:  restrictedTooltip(cfg.APIMethodRestricted, "mollie.payment.config.payment_methods.orderExpiryDays"),
		Required: false,
		Min:      floatPtr(1),
		Max:      floatPtr(100),
	})

	if cfg.MollieID == models.MethodBankTransfer {
		fields = append(fields, Field{
			Name:     "paymentExpiryDays",
			Type:     FieldInteger,
			Label:    "mollie.payment.config.payment_methods.paymentExpiryDays.label",
			Tooltip:  "mollie.payment.config.payment_methods.paymentExpiryDays.tooltip",
			Required: false,
			Min:      floatPtr(1),
			Max:      floatPtr(100),
		})
	}

	if !cfg.SurchargeRestricted {
		fields = append(fields, a.surchargeFields(cfg)...)
	}

	if !cfg.APIMethodRestricted {
		fields = append(fields, a.apiMethodFields()...)
	}

	if cfg.ComponentsSupported {
		fields = append(fields,
			Field{
				Name:     "mollieComponents",
				Type:     FieldCheckbox,
				Label:    "mollie.payment.config.payment_methods.mollie_components.label",
				Tooltip:  "mollie.payment.config.payment_methods.mollie_components.tooltip",
				Required: true,
				Default:  "1",
			},
			Field{
				Name:     "singleClickPayment",
				Type:     FieldCheckbox,
				Label:    "mollie.payment.config.payment_methods.single_click_payment.label",
				Tooltip:  "mollie.payment.config.payment_methods.single_click_payment.tooltip",
				Required: true,
				Default:  "1",
			},
		)
	}

	if cfg.SingleClickSupported {
		fields = append(fields,
			Field{
				Name:          "singleClickPaymentApprovalText",
				Type:          FieldLocalized,
				Label:         "mollie.payment.config.payment_methods.single_click_payment_approval_text.label",
				Tooltip:       "mollie.payment.config.payment_methods.single_click_payment_approval_text.tooltip",
				Required:      true,
				EntryRequired: true,
			},
			Field{
				Name:          "singleClickPaymentDescription",
				Type:          FieldLocalized,
				Label:         "mollie.payment.config.payment_methods.single_click_payment_description.label",
				Tooltip:       "mollie.payment.config.payment_methods.single_click_payment_description.tooltip",
				Required:      true,
				EntryRequired: true,
			},
		)
	}

	if cfg.IssuerListSupported {
		fields = append(fields, Field{
			Name:     "issuerListStyle",
			Type:     FieldChoice,
			Label:    "mollie.payment.config.payment_methods.issuer_list.label",
			Tooltip:  "mollie.payment.config.payment_methods.issuer_list.tooltip",
			Required: true,
			Choices: []Choice{
				{Label: "mollie.payment.config.payment_methods.issuer_list.option.list", Value: string(models.IssuerStyleList)},
				{Label: "mollie.payment.config.payment_methods.issuer_list.option.dropdown", Value: string(models.IssuerStyleDropdown)},
			},
		})
	}

	if cfg.MollieID == models.MethodVoucher {
		fields = append(fields, a.voucherFields()...)
	}

	return fields
}

func (a *Assembler) baseFields() []Field {
	return []Field{
		{Name: "mollieMethodId", Type: FieldHidden},
		{Name: "mollieMethodDescription", Type: FieldHidden},
		{Name: "enabled", Type: FieldHidden},
		{Name: "imagePath", Type: FieldHidden},
		{Name: "originalImagePath", Type: FieldHidden},
		{
			Name:          "names",
			Type:          FieldLocalized,
			Label:         "mollie.payment.config.payment_methods.name.label",
			Required:      true,
			EntryRequired: true,
		},
		{
			Name:          "descriptions",
			Type:          FieldLocalized,
			Label:         "mollie.payment.config.payment_methods.description.label",
			Required:      true,
			EntryRequired: true,
		},
		{
			Name:          "paymentDescriptions",
			Type:          FieldLocalized,
			Label:         "mollie.payment.config.payment_methods.payment.description.label",
			Tooltip:       "mollie.payment.config.payment_methods.payment.description.tooltip.label",
			Required:      true,
			EntryRequired: true,
		},
		{
			Name:         "image",
			Type:         FieldFile,
			Label:        "mollie.payment.config.payment_methods.image.label",
			Required:     false,
			MaxSizeBytes: imageMaxSizeBytes,
			MimeTypes:    []string{"image/png", "image/jpeg", "image/gif", "image/svg+xml"},
		},
	}
}

func (a *Assembler) surchargeFields(cfg *models.PaymentMethodSettings) []Field {
	return []Field{
		{
			Name:     "surchargeType",
			Type:     FieldChoice,
			Label:    "mollie.payment.config.payment_methods.payment_surcharge.label",
			Tooltip:  "mollie.payment.config.payment_methods.payment_surcharge.tooltip",
			Required: true,
			Choices: []Choice{
				{Label: "mollie.payment.config.payment_methods.payment_surcharge.option.no_fee.label", Value: string(models.SurchargeNoFee)},
				{Label: "mollie.payment.config.payment_methods.payment_surcharge.option.fixed_fee.label", Value: string(models.SurchargeFixedFee)},
				{Label: "mollie.payment.config.payment_methods.payment_surcharge.option.percentage.label", Value: string(models.SurchargePercentage)},
				{Label: "mollie.payment.config.payment_methods.payment_surcharge.option.fixed_fee_and_percentage.label", Value: string(models.SurchargeFixedAndPercentage)},
			},
		},
		{
			Name:     "surchargeFixedAmount",
			Type:     FieldNumber,
			Label:    "mollie.payment.config.payment_methods.surcharge_fixed_amount.label",
			Tooltip:  restrictedTooltip(cfg.SurchargeRestricted, "mollie.payment.config.payment_methods.surcharge_fixed_amount"),
			Required: false,
			Min:      floatPtr(0),
		},
		{
			Name:     "surchargePercentage",
			Type:     FieldNumber,
			Label:    "mollie.payment.config.payment_methods.surcharge_percentage.label",
			Tooltip:  restrictedTooltip(cfg.SurchargeRestricted, "mollie.payment.config.payment_methods.surcharge_percentage"),
			Required: false,
			Min:      floatPtr(0),
			Max:      floatPtr(100),
		},
		{
			Name:     "surchargeLimit",
			Type:     FieldNumber,
			Label:    "mollie.payment.config.payment_methods.surcharge_limit.label",
			Tooltip:  restrictedTooltip(cfg.SurchargeRestricted, "mollie.payment.config.payment_methods.surcharge_limit"),
			Required: false,
			Min:      floatPtr(0),
		},
	}
}

func (a *Assembler) apiMethodFields() []Field {
	return []Field{
		{
			Name:     "method",
			Type:     FieldChoice,
			Label:    "mollie.payment.config.payment_methods.method.label",
			Tooltip:  "mollie.payment.config.payment_methods.method.tooltip",
			Required: true,
			Choices: []Choice{
				{Label: "mollie.payment.config.payment_methods.method.option.payment_api.label", Value: string(models.APIMethodPayment)},
				{Label: "mollie.payment.config.payment_methods.method.option.order_api.label", Value: string(models.APIMethodOrders)},
			},
		},
		{
			Name:          "transactionDescriptions",
			Type:          FieldLocalized,
			Label:         "mollie.payment.config.payment_methods.transactionDescription.label",
			Tooltip:       "mollie.payment.config.payment_methods.transactionDescription.tooltip",
			Required:      true,
			EntryRequired: true,
			Default:       DefaultTransactionDescription,
		},
	}
}

func (a *Assembler) voucherFields() []Field {
	var attributeChoices []Choice
	if a.attributes != nil {
		attributeChoices = a.attributes.ProductAttributes()
	}

	return []Field{
		{
			Name:     "voucherCategory",
			Type:     FieldChoice,
			Label:    "mollie.payment.config.payment_methods.category.label",
			Tooltip:  "mollie.payment.config.payment_methods.category.tooltip",
			Required: true,
			Choices: []Choice{
				{Label: "mollie.payment.config.payment_methods.category.choice.none", Value: string(models.VoucherCategoryNone)},
				{Label: "mollie.payment.config.payment_methods.category.choice.meal", Value: string(models.VoucherCategoryMeal)},
				{Label: "mollie.payment.config.payment_methods.category.choice.eco", Value: string(models.VoucherCategoryEco)},
				{Label: "mollie.payment.config.payment_methods.category.choice.gift", Value: string(models.VoucherCategoryGift)},
			},
		},
		{
			Name:     "productAttribute",
			Type:     FieldChoice,
			Label:    "mollie.payment.config.payment_methods.attribute.label",
			Tooltip:  "mollie.payment.config.payment_methods.attribute.tooltip",
			Required: true,
			Choices:  attributeChoices,
		},
	}
}

// restrictedTooltip picks the restricted-method wording (Klarna and
// friends) when the gating flag is set.
func restrictedTooltip(restricted bool, prefix string) string {
	if restricted {
		return prefix + ".klarna_tooltip"
	}
	return prefix + ".tooltip"
}

func floatPtr(v float64) *float64 { return &v }
