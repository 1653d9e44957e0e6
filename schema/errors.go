package schema

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNilSchema is returned when a nil value is printed.
var ErrNilSchema = errors.New("schema: nil value")

// FieldError reports a FieldRules entry that does not resolve to a field of
// the struct that declared it.
type FieldError struct {
	Index  int
	Struct reflect.Type
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("schema: rule target for field index %d in %s: %s", e.Index, e.Struct, e.Reason)
}
