package docer

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/Gobd/docer/schema"
)

// bindValues sets the fields of the struct pointed to by dst from lookup,
// keyed by json name. Embedded structs are flattened. Fields lookup has no
// value for are left alone. Conversion failures are reported per field.
func bindValues(dst any, lookup func(name string) []string) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", ErrNotStruct, dst)
	}
	errs := schema.ValidationErrors{}
	bindStruct(rv.Elem(), lookup, errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func bindStruct(sv reflect.Value, lookup func(string) []string, errs schema.ValidationErrors) {
	st := sv.Type()
	for i := range st.NumField() {
		sf := st.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		fv := sv.Field(i)
		if sf.Anonymous && name == "" {
			if fv.Kind() == reflect.Ptr && fv.Type().Elem().Kind() == reflect.Struct {
				if fv.IsNil() {
					if !fv.CanSet() {
						continue
					}
					fv.Set(reflect.New(fv.Type().Elem()))
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				bindStruct(fv, lookup, errs)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		vals := lookup(name)
		if len(vals) == 0 {
			continue
		}
		if err := setField(fv, vals); err != nil {
			errs[name] = err
		}
	}
}

func setField(fv reflect.Value, vals []string) error {
	if fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() != reflect.Uint8 {
		out := reflect.MakeSlice(fv.Type(), len(vals), len(vals))
		for i, s := range vals {
			if err := setScalar(out.Index(i), s); err != nil {
				return err
			}
		}
		fv.Set(out)
		return nil
	}
	if fv.Kind() == reflect.Ptr {
		p := reflect.New(fv.Type().Elem())
		if err := setScalar(p.Elem(), vals[0]); err != nil {
			return err
		}
		fv.Set(p)
		return nil
	}
	return setScalar(fv, vals[0])
}

func setScalar(v reflect.Value, s string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return errors.New("must be a boolean")
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return errors.New("must be an integer")
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return errors.New("must be a non-negative integer")
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return errors.New("must be a number")
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("unsupported type %s", v.Type())
	}
	return nil
}
