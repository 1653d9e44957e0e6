package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type absentRule struct {
	validation.Rule
	what string
}

// Nil fails unless the value is nil.
var Nil Rule = absentRule{validation.Nil, "null"}

// Empty fails unless the value is empty. Nil passes.
var Empty Rule = absentRule{validation.Empty, "empty"}

func (r absentRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, "must be "+r.what)
	return nil
}

// KeyIn fails when a map or object has a key outside values.
func KeyIn(values ...string) Rule {
	return keyInRule(values)
}

type keyInRule []string

func (r keyInRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, fmt.Sprintf("keys must be in (%s)", strings.Join(r, ",")))
	return nil
}

func (r keyInRule) Validate(value any) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return err
	}
	for k := range keys {
		found := false
		for _, v := range r {
			if v == k {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("key '%s' not allowed", k)
		}
	}
	return nil
}

// Skip stops validation of the field at this point: the rules after it are
// not run. desc is added to the description.
func Skip(desc string) *SkipRule {
	return &SkipRule{skip: true, desc: desc}
}

// SkipRule is returned by Skip.
type SkipRule struct {
	skip bool
	desc string
}

// When skips only if condition is true.
func (r *SkipRule) When(condition bool) *SkipRule {
	return &SkipRule{skip: condition, desc: r.desc}
}

func (r *SkipRule) Validate(any) error { return nil }

func (r *SkipRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, r.desc)
	return nil
}
