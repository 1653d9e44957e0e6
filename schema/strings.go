package schema

import (
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type stringRule struct {
	validation.StringRule
	desc   string
	format string
}

// NewStringRule checks strings with validator; desc is both the error
// message and the printed description.
func NewStringRule(validator func(string) bool, desc string) Rule {
	return stringRule{StringRule: validation.NewStringRule(validator, desc), desc: desc}
}

// NewStringRuleWithError is NewStringRule with a separate error.
func NewStringRuleWithError(validator func(string) bool, err validation.Error, desc string) Rule {
	return stringRule{StringRule: validation.NewStringRuleWithError(validator, err), desc: desc}
}

func formatRule(validator func(string) bool, msg, format string) Rule {
	return stringRule{StringRule: validation.NewStringRule(validator, msg), format: format}
}

func (r stringRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if r.format != "" {
		ref.Value.Format = r.format
	}
	appendDescription(ref, r.desc)
	return nil
}

// String format rules backed by govalidator. Empty strings pass; combine
// with Required to reject them.
var (
	Email        = formatRule(govalidator.IsEmail, "must be a valid email address", "email")
	URL          = formatRule(govalidator.IsURL, "must be a valid URL", "uri")
	UUID         = formatRule(govalidator.IsUUID, "must be a valid UUID", "uuid")
	Alphanumeric = formatRule(govalidator.IsAlphanumeric, "must contain English letters and digits only", "")
)

// DecimalMax limits the digits after the decimal point of a numeric string.
func DecimalMax(places uint) Rule {
	desc := fmt.Sprintf("no more than %d decimals", places)
	return NewStringRule(func(s string) bool {
		_, frac, found := strings.Cut(s, ".")
		return !found || len(frac) <= int(places)
	}, desc)
}
