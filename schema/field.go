package schema

import (
	"context"
	"reflect"
	"strings"
)

// Field binds fieldPtr to rules. fieldPtr must point into the struct whose
// Rules method returned it.
func Field[T any](fieldPtr *T, rules ...Rule) *FieldRules {
	return &FieldRules{
		fieldPtr: fieldPtr,
		rules:    rules,
	}
}

// jsonName returns the json tag name of sf, "" when untagged.
func jsonName(sf reflect.StructField) string {
	return strings.Split(sf.Tag.Get("json"), ",")[0]
}

func docsSkipped(sf reflect.StructField) bool {
	return strings.Split(sf.Tag.Get("docs"), ",")[0] == "skip"
}

// propertyName is the key a field gets in JSON and in the printed schema.
func propertyName(sf reflect.StructField) string {
	if name := jsonName(sf); name != "" && name != "-" {
		return name
	}
	return sf.Name
}

// findStructField locates the field of structVal that fieldPtr points at,
// searching embedded structs too. Embedded structs share their first field's
// address, so the type is compared as well.
func findStructField(structVal reflect.Value, fieldPtr reflect.Value) *reflect.StructField {
	if fieldPtr.Kind() != reflect.Ptr || fieldPtr.IsNil() {
		return nil
	}
	addr := fieldPtr.Pointer()
	target := fieldPtr.Type().Elem()
	for i := range structVal.NumField() {
		fv := structVal.Field(i)
		if !fv.CanAddr() {
			continue
		}
		sf := structVal.Type().Field(i)
		if fv.Type() == target && fv.Addr().Pointer() == addr {
			return &sf
		}
		if sf.Anonymous && fv.Kind() == reflect.Struct {
			if inner := findStructField(fv, fieldPtr); inner != nil {
				return inner
			}
		}
	}
	return nil
}

// expandFields inlines the rules of embedded Ruler fields so error keys and
// schema properties stay flat.
func expandFields(ctx context.Context, structPtr any, fields []*FieldRules) []*FieldRules {
	structVal := reflect.Indirect(reflect.ValueOf(structPtr))
	if !structVal.IsValid() || structVal.Kind() != reflect.Struct {
		return fields
	}

	out := make([]*FieldRules, 0, len(fields))
	for _, fr := range fields {
		fv := reflect.ValueOf(fr.fieldPtr)
		if sf := findStructField(structVal, fv); sf != nil && sf.Anonymous {
			embedded := fv.Interface()
			if inner, ok := rulesOf(ctx, embedded); ok {
				out = append(out, expandFields(ctx, embedded, inner)...)
				continue
			}
		}
		out = append(out, fr)
	}
	return out
}

// bindTags resolves every FieldRules to the property name of its field.
func bindTags(fields []*FieldRules, structVal reflect.Value) error {
	for i, fr := range fields {
		fv := reflect.ValueOf(fr.fieldPtr)
		if fv.Kind() != reflect.Ptr {
			return &FieldError{Index: i, Struct: structVal.Type(), Reason: "must be a pointer, got " + fv.Kind().String()}
		}
		sf := findStructField(structVal, fv)
		if sf == nil {
			return &FieldError{Index: i, Struct: structVal.Type(), Reason: "not found in struct"}
		}
		if sf.Anonymous {
			fr.tag = ""
			continue
		}
		fr.tag = propertyName(*sf)
	}
	return nil
}

// MissingRules lists the exported fields of structPtr that no rule covers.
// Fields tagged json:"-", docs:"skip" or validate:"-" are ignored, as are the
// names in exclude (Go name or json name). Embedded Ruler fields are checked
// recursively.
//
//	assert.Empty(t, schema.MissingRules(&CreateUser{}))
func MissingRules(structPtr any, exclude ...string) []string {
	ctx := context.Background()
	fields, ok := rulesOf(ctx, structPtr)
	if !ok {
		return nil
	}
	structVal := reflect.Indirect(reflect.ValueOf(structPtr))
	covered := map[string]bool{}
	coverFields(ctx, structVal, fields, covered)

	excl := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excl[e] = true
	}

	var missing []string
	collectUncovered(structVal.Type(), excl, covered, &missing)
	return missing
}

// coverFields marks the property names bound by fields, descending into
// embedded Ruler fields.
func coverFields(ctx context.Context, structVal reflect.Value, fields []*FieldRules, covered map[string]bool) {
	for _, fr := range fields {
		fv := reflect.ValueOf(fr.fieldPtr)
		sf := findStructField(structVal, fv)
		if sf == nil {
			continue
		}
		if sf.Anonymous {
			if inner, ok := rulesOf(ctx, fv.Interface()); ok {
				coverFields(ctx, fv.Elem(), inner, covered)
			}
			continue
		}
		covered[propertyName(*sf)] = true
	}
}

func collectUncovered(t reflect.Type, excl, covered map[string]bool, missing *[]string) {
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous {
			inner := sf.Type
			if inner.Kind() == reflect.Ptr {
				inner = inner.Elem()
			}
			if inner.Kind() == reflect.Struct {
				collectUncovered(inner, excl, covered, missing)
			}
			continue
		}
		switch {
		case !sf.IsExported(), jsonName(sf) == "-", docsSkipped(sf), sf.Tag.Get("validate") == "-":
			continue
		}
		key := propertyName(sf)
		if excl[key] || excl[sf.Name] || covered[key] {
			continue
		}
		*missing = append(*missing, key)
	}
}
