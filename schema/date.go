package schema

import (
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateRule checks a string parses with a time layout. The optional range set
// with Min and Max is enforced and documented.
type DateRule struct {
	validation.DateRule
	layout   string
	min, max time.Time
}

// Date returns a rule for strings in layout.
func Date(layout string) *DateRule {
	return &DateRule{DateRule: validation.Date(layout), layout: layout}
}

// Min sets the earliest accepted date.
func (r *DateRule) Min(t time.Time) *DateRule {
	r.min = t
	r.DateRule = r.DateRule.Min(t)
	return r
}

// Max sets the latest accepted date.
func (r *DateRule) Max(t time.Time) *DateRule {
	r.max = t
	r.DateRule = r.DateRule.Max(t)
	return r
}

// Describe sets the layout as format and notes the range.
func (r *DateRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Format = r.layout
	if !r.min.IsZero() {
		appendDescription(ref, "> "+r.min.Format(r.layout))
	}
	if !r.max.IsZero() {
		appendDescription(ref, "< "+r.max.Format(r.layout))
	}
	return nil
}
