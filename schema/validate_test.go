package schema_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gobd/docer/schema"
	"github.com/Gobd/docer/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type valChild struct {
	Label string `json:"label"`
}

func (c *valChild) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{schema.Field(&c.Label, schema.Required)}
}

type valParent struct {
	Title    string              `json:"title"`
	Children []valChild          `json:"children"`
	Lookup   map[string]valChild `json:"lookup"`
	Status   printStatus         `json:"status"`
}

func (p *valParent) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{
		schema.Field(&p.Title, schema.Required),
		schema.Field(&p.Children),
		schema.Field(&p.Lookup),
		schema.Field(&p.Status),
	}
}

type valTrimmed struct {
	Name string `json:"name"`
}

func (v *valTrimmed) Normalize() { transform.TrimSpace(v) }

func (v *valTrimmed) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{schema.Field(&v.Name, schema.Required)}
}

type ctxKey struct{}

type valCtx struct {
	Name string `json:"name"`
	seen bool
}

func (v *valCtx) Normalize(ctx context.Context) {
	v.seen = ctx.Value(ctxKey{}) != nil
}

func (v *valCtx) Rules(_ context.Context) []*schema.FieldRules {
	return []*schema.FieldRules{schema.Field(&v.Name, schema.Length(2, 4))}
}

func TestValidate_Basic(t *testing.T) {
	require.NoError(t, schema.Validate(&printBasic{Name: "Ann", Email: "ann@example.com", Age: 30}))

	err := schema.Validate(&printBasic{Age: -1})
	require.Error(t, err)
	assert.Equal(t, "age: must be no less than 0; email: cannot be blank; name: cannot be blank.", err.Error())

	var verrs schema.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, "name")
}

func TestValidate_StringRules(t *testing.T) {
	err := schema.Validate(&printBasic{Name: "Ann", Email: "not-an-email"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email: must be a valid email address")
}

func TestValidate_Nested(t *testing.T) {
	p := &valParent{
		Title:    "t",
		Children: []valChild{{Label: "ok"}, {}},
		Lookup:   map[string]valChild{"k": {}},
		Status:   "maybe",
	}
	err := schema.Validate(p)
	require.Error(t, err)

	var verrs schema.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, "children")
	assert.Contains(t, verrs, "lookup")
	assert.Contains(t, verrs, "status")
	assert.Contains(t, verrs["status"].Error(), "got 'maybe'")
}

func TestValidate_SliceOfRulers(t *testing.T) {
	err := schema.Validate([]valChild{{Label: "a"}, {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1: (label: cannot be blank.)")

	assert.NoError(t, schema.Validate([]valChild{{Label: "a"}}))
}

func TestValidate_NilAndPlain(t *testing.T) {
	assert.NoError(t, schema.Validate(nil))
	assert.NoError(t, schema.Validate((*printBasic)(nil)))
	assert.NoError(t, schema.Validate(42))
	assert.NoError(t, schema.Validate(printOrdered{}))
}

func TestDecodeAndValidate_Normalizes(t *testing.T) {
	var v valTrimmed
	require.NoError(t, schema.DecodeAndValidate(strings.NewReader(`{"name":"  Ann  "}`), &v))
	assert.Equal(t, "Ann", v.Name)

	err := schema.DecodeAndValidate(strings.NewReader(`{"name":"   "}`), &v)
	assert.EqualError(t, err, "name: cannot be blank.")

	err = schema.DecodeAndValidate(strings.NewReader(`{"name":`), &v)
	assert.Error(t, err)
}

func TestUnmarshalAndValidateCtx(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey{}, true)
	var v valCtx
	require.NoError(t, schema.UnmarshalAndValidateCtx(ctx, []byte(`{"name":"abc"}`), &v))
	assert.True(t, v.seen)

	err := schema.UnmarshalAndValidateCtx(ctx, []byte(`{"name":"abcdef"}`), &v)
	assert.EqualError(t, err, "name: the length must be between 2 and 4.")
}

func TestValidateStruct_Explicit(t *testing.T) {
	o := printOrdered{}
	err := schema.ValidateStruct(&o, []*schema.FieldRules{schema.Field(&o.Zeta, schema.Required)})
	assert.EqualError(t, err, "zeta: cannot be blank.")
}
