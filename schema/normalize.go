package schema

import (
	"context"
	"reflect"
)

// Normalizer is implemented by types that clean themselves up after
// decoding, before validation.
type Normalizer interface {
	Normalize()
}

// ContextNormalizer is Normalizer with a context.
type ContextNormalizer interface {
	Normalize(ctx context.Context)
}

// Normalize calls Normalize on v, then depth-first on every nested struct,
// pointer, slice element and map value that implements Normalizer or
// ContextNormalizer.
func Normalize(ctx context.Context, v any) {
	if v == nil {
		return
	}
	normalizeOne(ctx, v)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		normalizeFields(ctx, rv)
	}
}

func normalizeOne(ctx context.Context, v any) {
	switch n := v.(type) {
	case ContextNormalizer:
		n.Normalize(ctx)
	case Normalizer:
		n.Normalize()
	}
}

func normalizeFields(ctx context.Context, rv reflect.Value) {
	for i := range rv.NumField() {
		if rv.Type().Field(i).IsExported() || rv.Type().Field(i).Anonymous {
			normalizeValue(ctx, rv.Field(i))
		}
	}
}

// normalizeValue visits one value; map values are copied out and stored back
// because they are not addressable.
func normalizeValue(ctx context.Context, v reflect.Value) {
	switch v.Kind() {
	case reflect.Struct:
		if v.CanAddr() && v.Addr().CanInterface() {
			normalizeOne(ctx, v.Addr().Interface())
		}
		normalizeFields(ctx, v)
	case reflect.Ptr:
		if v.IsNil() {
			return
		}
		if v.CanInterface() {
			normalizeOne(ctx, v.Interface())
		}
		if v.Elem().Kind() == reflect.Struct {
			normalizeFields(ctx, v.Elem())
		}
	case reflect.Slice:
		for j := range v.Len() {
			normalizeValue(ctx, v.Index(j))
		}
	case reflect.Map:
		if !v.CanInterface() || v.Type().Elem().Kind() != reflect.Struct {
			return
		}
		iter := v.MapRange()
		for iter.Next() {
			cp := reflect.New(iter.Value().Type()).Elem()
			cp.Set(iter.Value())
			normalizeValue(ctx, cp)
			v.SetMapIndex(iter.Key(), cp)
		}
	}
}
