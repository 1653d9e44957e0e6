package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type requiredRule struct {
	validation.RequiredRule
}

// Required fails on empty values and lists the property as required.
var Required Rule = requiredRule{validation.Required}

func (requiredRule) Describe(name string, parent *openapi3.Schema, _ *openapi3.SchemaRef) error {
	for _, n := range parent.Required {
		if n == name {
			return nil
		}
	}
	parent.Required = append(parent.Required, name)
	return nil
}

type notNilRule struct {
	validation.Rule
}

// NotNil fails on nil pointers, maps, slices and interfaces.
var NotNil Rule = notNilRule{validation.NotNil}

func (notNilRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Nullable = false
	return nil
}

type lengthRule struct {
	validation.LengthRule
	lo, hi int
}

// Length checks the rune length of strings, or the length of slices and
// maps, is within [lo, hi]. hi == 0 means no upper bound.
func Length(lo, hi int) Rule {
	return &lengthRule{validation.RuneLength(lo, hi), lo, hi}
}

func (r *lengthRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	lo := uint64(r.lo)
	var hi *uint64
	if r.hi > 0 {
		h := uint64(r.hi)
		hi = &h
	}
	if ref.Value.Type.Is(openapi3.TypeArray) {
		ref.Value.MinItems, ref.Value.MaxItems = lo, hi
		return nil
	}
	ref.Value.MinLength, ref.Value.MaxLength = lo, hi
	return nil
}

type inRule struct {
	validation.InRule
	values []any
}

// In checks the value is one of values and documents them as an enum.
func In(values ...any) Rule {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("'%v'", v)
	}
	msg := "must be one of " + strings.Join(quoted, ", ")
	return &inRule{validation.In(values...).Error(msg), values}
}

func (r *inRule) Validate(value any) error {
	if err := r.InRule.Validate(value); err != nil {
		return fmt.Errorf("%s got '%v'", err, value)
	}
	return nil
}

func (r *inRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Enum = r.values
	return nil
}

type eachRule struct {
	validation.EachRule
	rules []Rule
}

// Each applies rules to every element of a slice, array or map.
func Each(rules ...Rule) Rule {
	return &eachRule{validation.Each(toOzzoRules(rules)...), rules}
}

func (r *eachRule) Describe(name string, parent *openapi3.Schema, ref *openapi3.SchemaRef) error {
	target := ref
	if ref.Value.Items != nil {
		target = ref.Value.Items
	}
	for _, rule := range r.rules {
		if err := rule.Describe(name, parent, target); err != nil {
			return err
		}
	}
	return nil
}

type funcRule struct {
	f    RuleFunc
	desc string
}

// Custom validates with f and documents desc.
func Custom(f func(any) error, desc string) Rule {
	return funcRule{f: f, desc: desc}
}

// By is Custom with a RuleFunc.
func By(f RuleFunc, desc string) Rule {
	return funcRule{f: f, desc: desc}
}

func (r funcRule) Validate(value any) error { return r.f(value) }

func (r funcRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, r.desc)
	return nil
}

type uniqueRule struct {
	key  func(i int) any
	desc string
}

// Unique checks that key(i) differs for every element i of a slice.
func Unique(key func(i int) any, desc string) Rule {
	return uniqueRule{key: key, desc: desc}
}

func (r uniqueRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.UniqueItems = true
	appendDescription(ref, r.desc)
	return nil
}

func (r uniqueRule) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return nil
	}
	rv = reflect.Indirect(rv)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return errors.New("must be slice")
	}
	seen := make(map[any]struct{}, rv.Len())
	for i := range rv.Len() {
		seen[r.key(i)] = struct{}{}
	}
	if len(seen) != rv.Len() {
		return errors.New("not unique")
	}
	return nil
}

func toOzzoRules(rules []Rule) []validation.Rule {
	out := make([]validation.Rule, len(rules))
	for i, r := range rules {
		if s, ok := r.(*SkipRule); ok {
			out[i] = validation.Skip.When(s.skip)
			continue
		}
		out[i] = r
	}
	return out
}
