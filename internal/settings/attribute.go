package settings

import (
	"reflect"
	"strings"

	"mollie-bridge/internal/models"
)

// ResolutionStrategy tries exactly one accessor form on the product entity
// and reports whether it resolved a value.
type ResolutionStrategy interface {
	Name() string
	Resolve(product interface{}, property string) (string, bool)
}

// ProductAttributeResolver resolves a voucher category attribute from a
// product entity. Strategies run in a fixed order; the first hit wins. On
// a miss the configured fallback applies, unless the fallback is the
// "none" category, which resolves to empty.
type ProductAttributeResolver struct {
	product           interface{}
	fallbackAttribute string
	productProperty   string
	strategies        []ResolutionStrategy
}

func NewProductAttributeResolver(product interface{}, fallbackAttribute, productProperty string) *ProductAttributeResolver {
	return &ProductAttributeResolver{
		product:           product,
		fallbackAttribute: fallbackAttribute,
		productProperty:   productProperty,
		strategies: []ResolutionStrategy{
			literalAccessor{},
			prefixedAccessor{},
			snakeCaseAccessor{upperFirst: true},
			snakeCaseAccessor{upperFirst: false},
		},
	}
}

func (r *ProductAttributeResolver) PropertyValue() string {
	for _, strategy := range r.strategies {
		if value, ok := strategy.Resolve(r.product, r.productProperty); ok {
			return value
		}
	}

	if r.fallbackAttribute != string(models.VoucherCategoryNone) {
		return r.fallbackAttribute
	}

	return ""
}

// literalAccessor calls a method named exactly like the property.
type literalAccessor struct{}

func (literalAccessor) Name() string { return "literal" }

func (literalAccessor) Resolve(product interface{}, property string) (string, bool) {
	return callAccessor(product, property)
}

// prefixedAccessor calls Get<property> with the property used verbatim.
type prefixedAccessor struct{}

func (prefixedAccessor) Name() string { return "get-prefixed" }

func (prefixedAccessor) Resolve(product interface{}, property string) (string, bool) {
	return callAccessor(product, "Get"+property)
}

// snakeCaseAccessor calls Get<CamelCase> built from a snake_case property,
// with either capitalization of the first segment.
type snakeCaseAccessor struct {
	upperFirst bool
}

func (s snakeCaseAccessor) Name() string {
	if s.upperFirst {
		return "get-camel-upper"
	}
	return "get-camel-lower"
}

func (s snakeCaseAccessor) Resolve(product interface{}, property string) (string, bool) {
	return callAccessor(product, "Get"+camelFromSnake(property, s.upperFirst))
}

func camelFromSnake(property string, upperFirst bool) string {
	parts := strings.Split(property, "_")
	var builder strings.Builder

	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 && !upperFirst {
			builder.WriteString(part)
			continue
		}
		builder.WriteString(strings.ToUpper(part[:1]))
		builder.WriteString(part[1:])
	}

	return builder.String()
}

// identified carries the attribute id when the accessor returns an entity
// rather than a plain value.
type identified interface {
	GetID() string
}

func callAccessor(product interface{}, name string) (string, bool) {
	if product == nil || name == "" {
		return "", false
	}

	method := reflect.ValueOf(product).MethodByName(name)
	if !method.IsValid() || method.Type().NumIn() != 0 || method.Type().NumOut() == 0 {
		return "", false
	}

	result := method.Call(nil)[0]
	if !result.IsValid() || !result.CanInterface() {
		return "", false
	}

	switch value := result.Interface().(type) {
	case string:
		if value == "" {
			return "", false
		}
		return value, true
	case identified:
		if result.Kind() == reflect.Ptr && result.IsNil() {
			return "", false
		}
		id := value.GetID()
		if id == "" {
			return "", false
		}
		return id, true
	default:
		return "", false
	}
}
