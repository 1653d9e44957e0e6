package schema

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// appendDescription adds text to the property description, space separated.
func appendDescription(ref *openapi3.SchemaRef, text string) {
	if text == "" {
		return
	}
	d := ref.Value.Description
	if d != "" && !strings.HasSuffix(d, " ") {
		d += " "
	}
	ref.Value.Description = d + text
}

// docRule is a rule that only documents; it never fails validation.
type docRule func(ref *openapi3.SchemaRef)

func (r docRule) Validate(any) error { return nil }

func (r docRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	r(ref)
	return nil
}

// Describe appends desc to the property description.
func Describe(desc string) Rule {
	return docRule(func(ref *openapi3.SchemaRef) { appendDescription(ref, desc) })
}

// Example sets the property example.
func Example(ex any) Rule {
	return docRule(func(ref *openapi3.SchemaRef) { ref.Value.Example = ex })
}

// Default sets the property default.
func Default(v any) Rule {
	return docRule(func(ref *openapi3.SchemaRef) { ref.Value.Default = v })
}

// Deprecate marks the property deprecated.
func Deprecate() Rule {
	return docRule(func(ref *openapi3.SchemaRef) { ref.Value.Deprecated = true })
}
