package schema

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// WhenRule applies rules only when a condition holds, and optionally other
// rules (set with Else) when it does not.
type WhenRule struct {
	validation.WhenRule
	desc      string
	whenRules []Rule
	elseRules []Rule
}

// When applies rules when condition is true. desc names the condition in the
// printed description.
func When(condition bool, desc string, rules ...Rule) *WhenRule {
	return &WhenRule{
		WhenRule:  validation.When(condition, toOzzoRules(rules)...),
		desc:      desc,
		whenRules: rules,
	}
}

// Else sets the rules applied when the condition is false.
func (r *WhenRule) Else(rules ...Rule) *WhenRule {
	r.elseRules = rules
	r.WhenRule = r.WhenRule.Else(toOzzoRules(rules)...)
	return r
}

// summarize describes rules on a scratch schema and turns the result into
// a short human readable list.
func summarize(name string, rules []Rule) (string, error) {
	parent := openapi3.NewSchema()
	ref := &openapi3.SchemaRef{Value: openapi3.NewSchema()}
	for _, rule := range rules {
		if err := rule.Describe(name, parent, ref); err != nil {
			return "", err
		}
	}

	s := ref.Value
	var parts []string
	if s.Description != "" {
		parts = append(parts, s.Description)
	}
	if len(parent.Required) > 0 {
		parts = append(parts, "required")
	}
	if s.Min != nil {
		parts = append(parts, fmt.Sprintf("min %g", *s.Min))
	}
	if s.Max != nil {
		parts = append(parts, fmt.Sprintf("max %g", *s.Max))
	}
	if s.MinLength > 0 || s.MaxLength != nil {
		hi := "∞"
		if s.MaxLength != nil {
			hi = fmt.Sprint(*s.MaxLength)
		}
		parts = append(parts, fmt.Sprintf("length %d..%s", s.MinLength, hi))
	}
	if len(s.Enum) > 0 {
		vals := make([]string, len(s.Enum))
		for i, v := range s.Enum {
			vals[i] = fmt.Sprint(v)
		}
		parts = append(parts, "one of ["+strings.Join(vals, ", ")+"]")
	}
	if s.UniqueItems {
		parts = append(parts, "unique")
	}
	return strings.Join(parts, ", "), nil
}

// Describe appends a summary of both branches to the description.
func (r *WhenRule) Describe(name string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	whenDesc, err := summarize(name, r.whenRules)
	if err != nil {
		return err
	}
	if whenDesc != "" && r.desc != "" {
		whenDesc = fmt.Sprintf("when %s: %s", r.desc, whenDesc)
	}
	appendDescription(ref, whenDesc)

	elseDesc, err := summarize(name, r.elseRules)
	if err != nil {
		return err
	}
	if elseDesc != "" {
		appendDescription(ref, "else: "+elseDesc)
	}
	return nil
}
