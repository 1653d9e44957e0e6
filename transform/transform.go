package transform

import (
	"reflect"
	"strings"
)

// Struct applies fns, in order, to every settable string reachable from the
// struct pointer v: fields, nested and embedded structs, pointers, slice
// elements and map values. Interface fields are left alone. Non-struct
// values are ignored.
func Struct(v any, fns ...func(string) string) {
	if len(fns) == 0 {
		return
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return
	}
	apply := func(s string) string {
		for _, f := range fns {
			s = f(s)
		}
		return s
	}
	walk(rv, apply)
}

// TrimSpace trims every string in the struct pointer v.
func TrimSpace(v any) {
	Struct(v, strings.TrimSpace)
}

// ToLower lowercases every string in the struct pointer v.
func ToLower(v any) {
	Struct(v, strings.ToLower)
}

// walk rewrites strings under v. Map values are not addressable, so they are
// copied, rewritten and stored back.
func walk(v reflect.Value, f func(string) string) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(f(v.String()))
		}
	case reflect.Struct:
		for i := range v.NumField() {
			if v.Field(i).CanSet() {
				walk(v.Field(i), f)
			}
		}
	case reflect.Ptr:
		if !v.IsNil() {
			walk(v.Elem(), f)
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			walk(v.Index(i), f)
		}
	case reflect.Map:
		if v.IsNil() || !v.CanSet() {
			return
		}
		iter := v.MapRange()
		for iter.Next() {
			cp := reflect.New(iter.Value().Type()).Elem()
			cp.Set(iter.Value())
			walk(cp, f)
			v.SetMapIndex(iter.Key(), cp)
		}
	}
}
