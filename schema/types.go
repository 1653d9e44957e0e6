package schema

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type (
	// RuleFunc validates a value and returns an error if it is invalid.
	RuleFunc func(value any) error

	// Rule validates a value and documents itself on a schema.
	// Describe receives the parent object schema (for keywords such as
	// required) and the property's own schema ref.
	Rule interface {
		Validate(value any) error
		Describe(name string, parent *openapi3.Schema, ref *openapi3.SchemaRef) error
	}

	// FieldRules binds a struct field pointer to its rules.
	FieldRules struct {
		fieldPtr any
		tag      string
		rules    []Rule
	}

	// Ruler is implemented by struct pointers that declare field rules.
	Ruler interface {
		Rules() []*FieldRules
	}

	// ContextRuler is Ruler with access to the request context.
	ContextRuler interface {
		Rules(ctx context.Context) []*FieldRules
	}

	// ValueRuler is implemented by non-struct types (type Status string) that
	// carry their own rules. The rules apply wherever the type is used as a
	// field, both in validation and in the printed schema.
	ValueRuler interface {
		ValueRules() []Rule
	}

	// ValidationErrors maps field names to their errors. It is the
	// ozzo-validation error map and marshals to a JSON object.
	ValidationErrors = validation.Errors
)

// rulesOf returns the field rules declared by v, if any.
func rulesOf(ctx context.Context, v any) ([]*FieldRules, bool) {
	switch r := v.(type) {
	case Ruler:
		return r.Rules(), true
	case ContextRuler:
		return r.Rules(ctx), true
	}
	return nil, false
}
