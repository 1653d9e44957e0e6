package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks value against its declared rules. Ruler structs validate
// their fields, ValueRuler values their own rules, and slices or maps of
// Ruler structs every element.
func Validate(value any) error {
	return validateCore(context.Background(), value)
}

// ValidateCtx is Validate with a context passed to ContextRuler.
func ValidateCtx(ctx context.Context, value any) error {
	return validateCore(ctx, value)
}

// ValidateStruct validates structPtr with explicit field rules.
func ValidateStruct(structPtr any, fields []*FieldRules) error {
	return validation.ValidateStruct(structPtr, toOzzoFields(context.Background(), structPtr, fields)...)
}

// UnmarshalAndValidate decodes JSON b into dst, normalizes it and validates.
func UnmarshalAndValidate(b []byte, dst any) error {
	return UnmarshalAndValidateCtx(context.Background(), b, dst)
}

// UnmarshalAndValidateCtx is UnmarshalAndValidate with a context.
func UnmarshalAndValidateCtx(ctx context.Context, b []byte, dst any) error {
	if err := json.Unmarshal(b, dst); err != nil {
		return err
	}
	Normalize(ctx, dst)
	return ValidateCtx(ctx, dst)
}

// DecodeAndValidate is UnmarshalAndValidate reading from r, for request
// bodies.
func DecodeAndValidate(r io.Reader, dst any) error {
	return DecodeAndValidateCtx(context.Background(), r, dst)
}

// DecodeAndValidateCtx is DecodeAndValidate with a context.
func DecodeAndValidateCtx(ctx context.Context, r io.Reader, dst any) error {
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return err
	}
	Normalize(ctx, dst)
	return ValidateCtx(ctx, dst)
}

func isNilRef(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func validateCore(ctx context.Context, value any) error {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil
	}

	if fields, ok := rulesOf(ctx, value); ok {
		return validation.ValidateStruct(value, toOzzoFields(ctx, value, fields)...)
	}
	// Struct values reach here from ozzo field validation; the rules hang
	// off the pointer type.
	if rv.Kind() == reflect.Struct {
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		pi := ptr.Interface()
		if fields, ok := rulesOf(ctx, pi); ok {
			return validation.ValidateStruct(pi, toOzzoFields(ctx, pi, fields)...)
		}
	}

	if vr, ok := value.(ValueRuler); ok {
		for _, rule := range vr.ValueRules() {
			if err := rule.Validate(value); err != nil {
				return err
			}
		}
		return nil
	}

	if isNilRef(rv) {
		return nil
	}
	rv = reflect.Indirect(rv)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if validatesElems(rv.Type().Elem()) {
			errs := validation.Errors{}
			for i := range rv.Len() {
				if err := validateElem(ctx, rv.Index(i)); err != nil {
					errs[strconv.Itoa(i)] = err
				}
			}
			return errs.Filter()
		}
	case reflect.Map:
		if validatesElems(rv.Type().Elem()) {
			errs := validation.Errors{}
			iter := rv.MapRange()
			for iter.Next() {
				if err := validateElem(ctx, iter.Value()); err != nil {
					errs[fmt.Sprint(iter.Key().Interface())] = err
				}
			}
			return errs.Filter()
		}
	case reflect.Ptr, reflect.Interface:
		return validateCore(ctx, rv.Elem().Interface())
	}
	return nil
}

// validatesElems reports whether collections of t hold Ruler structs,
// directly or nested.
func validatesElems(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct:
		_, ok := rulesOf(context.Background(), reflect.New(t).Interface())
		return ok
	case reflect.Ptr:
		return t.Elem().Kind() == reflect.Struct && validatesElems(t.Elem())
	case reflect.Slice, reflect.Array, reflect.Map:
		return validatesElems(t.Elem())
	}
	return false
}

func validateElem(ctx context.Context, v reflect.Value) error {
	if isNilRef(v) {
		return nil
	}
	if v.Kind() == reflect.Struct && v.CanAddr() {
		return validateCore(ctx, v.Addr().Interface())
	}
	return validateCore(ctx, v.Interface())
}

// nestedRule hands each field value back to validateCore so nested Ruler
// structs and collections are validated too.
type nestedRule struct {
	ctx context.Context
}

func (b nestedRule) Validate(value any) error {
	return validateCore(b.ctx, value)
}

func toOzzoFields(ctx context.Context, structPtr any, fields []*FieldRules) []*validation.FieldRules {
	flat := expandFields(ctx, structPtr, fields)
	out := make([]*validation.FieldRules, len(flat))
	for i, fr := range flat {
		rules := append(toOzzoRules(fr.rules), nestedRule{ctx: ctx})
		out[i] = validation.Field(fr.fieldPtr, rules...)
	}
	return out
}
