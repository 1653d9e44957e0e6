package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type thresholdRule struct {
	validation.ThresholdRule
	threshold any
	min       bool
}

// Min checks value >= threshold. Numeric strings are parsed using the kind
// of threshold, so Min(0) accepts "12" but rejects "1.5".
func Min(threshold any) Rule {
	return thresholdRule{validation.Min(threshold), threshold, true}
}

// Max checks value <= threshold, with the same string handling as Min.
func Max(threshold any) Rule {
	return thresholdRule{validation.Max(threshold), threshold, false}
}

var floatType = reflect.TypeOf(float64(0))

func toFloat(v any) (float64, error) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if !rv.IsValid() || !rv.Type().ConvertibleTo(floatType) {
		return 0, fmt.Errorf("schema: cannot convert %T to float64", v)
	}
	return rv.Convert(floatType).Float(), nil
}

func (r thresholdRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	// Numbers carried in strings: record the threshold's Go type as format.
	if ref.Value.Type.Is(openapi3.TypeString) {
		ref.Value.Format = fmt.Sprintf("%T", r.threshold)
	}
	f, err := toFloat(r.threshold)
	if err != nil {
		return err
	}
	if r.min {
		ref.Value.Min = &f
	} else {
		ref.Value.Max = &f
	}
	return nil
}

func (r thresholdRule) Validate(value any) error {
	value, isNil := validation.Indirect(value)
	if isNil || validation.IsEmpty(value) {
		return nil
	}
	if s, ok := value.(fmt.Stringer); ok && reflect.ValueOf(value).Kind() == reflect.String {
		value = s.String()
	}
	str, ok := value.(string)
	if !ok {
		return r.ThresholdRule.Validate(value)
	}

	var err error
	switch reflect.ValueOf(r.threshold).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if value, err = strconv.ParseInt(str, 10, 64); err != nil {
			return errors.New("must be int64")
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if value, err = strconv.ParseUint(str, 10, 64); err != nil {
			return errors.New("must be uint64")
		}
	case reflect.Float32, reflect.Float64:
		if value, err = strconv.ParseFloat(str, 64); err != nil {
			return errors.New("must be float64")
		}
	}
	return r.ThresholdRule.Validate(value)
}
