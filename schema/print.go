package schema

import (
	"context"
	"reflect"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// Print renders value's type as a JSON-Schema shaped OpenAPI schema, with the
// rules declared by [Ruler], [ContextRuler] and [ValueRuler] types applied.
// Fields tagged docs:"skip" are left out.
func Print(value any) (*openapi3.SchemaRef, error) {
	return PrintDefinitions(value, nil)
}

// PrintDefinitions is Print for documents that carry shared schemas. The
// schema of every recursive type met while printing is added to defs under
// its type name, and references to it point at #/components/schemas/<name>.
// A nil defs drops those schemas, leaving the references dangling.
func PrintDefinitions(value any, defs openapi3.Schemas) (*openapi3.SchemaRef, error) {
	if value == nil {
		return nil, ErrNilSchema
	}
	g := openapi3gen.NewGenerator(openapi3gen.SchemaCustomizer(customizer(value)))
	return g.NewSchemaRefForValue(value, defs)
}

// PropertyNames returns the top-level property names of value's printed
// schema, in the order the struct declares them. Embedded structs contribute
// their fields in place. Non-struct values with properties (maps of known
// keys, custom printers) fall back to sorted order.
func PropertyNames(value any) ([]string, error) {
	ref, err := Print(value)
	if err != nil {
		return nil, err
	}
	if ref.Value == nil || len(ref.Value.Properties) == 0 {
		return nil, nil
	}
	props := ref.Value.Properties

	seen := make(map[string]bool, len(props))
	names := make([]string, 0, len(props))
	if t := structType(reflect.TypeOf(value)); t != nil {
		for _, name := range declaredNames(t) {
			if _, ok := props[name]; ok && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	var rest []string
	for name := range props {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...), nil
}

func structType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

// declaredNames walks t's fields in order, flattening untagged embedded
// structs the way encoding/json does.
func declaredNames(t reflect.Type) []string {
	var names []string
	for i := range t.NumField() {
		sf := t.Field(i)
		if jsonName(sf) == "-" || docsSkipped(sf) {
			continue
		}
		if sf.Anonymous && jsonName(sf) == "" {
			if inner := structType(sf.Type); inner != nil {
				names = append(names, declaredNames(inner)...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		names = append(names, propertyName(sf))
	}
	return names
}

func indirect(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = reflect.Indirect(rv)
	}
	return rv
}

// goFieldName maps a property name back to an exported Go field name.
func goFieldName(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// rulesForType returns a fresh *t and its rules when *t is a Ruler.
func rulesForType(t reflect.Type) (any, []*FieldRules) {
	inst := reflect.New(t).Interface()
	if fields, ok := rulesOf(context.Background(), inst); ok {
		return inst, fields
	}
	return nil, nil
}

// customizer applies rules to every generated schema. value is only used to
// resolve interface-typed fields to the concrete type they hold.
func customizer(value any) openapi3gen.SchemaCustomizerFn {
	return func(name string, t reflect.Type, _ reflect.StructTag, s *openapi3.Schema) error {
		if concrete, ok := concreteField(value, name); ok {
			g := openapi3gen.NewGenerator(openapi3gen.SchemaCustomizer(customizer(nil)))
			ref, err := g.NewSchemaRefForValue(concrete, nil)
			if err != nil {
				return err
			}
			*s = *ref.Value
			return nil
		}

		inst, fields := rulesForType(t)
		if inst == nil {
			return describeValueRuler(t, name, s)
		}
		structVal := indirect(inst)
		fields = expandFields(context.Background(), inst, fields)
		dropSkipped(structVal.Type(), s)
		if err := bindTags(fields, structVal); err != nil {
			return err
		}
		return describeFields(fields, s)
	}
}

// concreteField returns the value held by value's interface field name.
func concreteField(value any, name string) (any, bool) {
	if value == nil {
		return nil, false
	}
	rv := indirect(value)
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	fv := rv.FieldByName(goFieldName(name))
	if !fv.IsValid() || fv.Kind() != reflect.Interface || !fv.Elem().IsValid() || fv.Elem().Kind() == reflect.Interface {
		return nil, false
	}
	return fv.Elem().Interface(), true
}

func dropSkipped(t reflect.Type, s *openapi3.Schema) {
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous {
			if inner := structType(sf.Type); inner != nil {
				dropSkipped(inner, s)
			}
			continue
		}
		if docsSkipped(sf) {
			delete(s.Properties, propertyName(sf))
		}
	}
}

// describeFields runs each field's rules against its property, in the order
// the fields were declared so keywords like required stay stable.
func describeFields(fields []*FieldRules, s *openapi3.Schema) error {
	for _, f := range fields {
		prop, ok := s.Properties[f.tag]
		if !ok {
			continue
		}
		for _, rule := range f.rules {
			if err := rule.Describe(f.tag, s, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

// describeValueRuler applies the rules of a ValueRuler type to its schema.
func describeValueRuler(t reflect.Type, name string, s *openapi3.Schema) error {
	vr, ok := reflect.New(t).Interface().(ValueRuler)
	if !ok {
		return nil
	}
	ref := &openapi3.SchemaRef{Value: s}
	for _, rule := range vr.ValueRules() {
		if err := rule.Describe(name, s, ref); err != nil {
			return err
		}
	}
	return nil
}
