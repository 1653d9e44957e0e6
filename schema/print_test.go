package schema_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Gobd/docer/schema"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type printBasic struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

func (s *printBasic) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{
		schema.Field(&s.Name, schema.Required, schema.Length(1, 100)),
		schema.Field(&s.Email, schema.Required, schema.Email),
		schema.Field(&s.Age, schema.Min(0), schema.Max(150)),
	}
}

type printBase struct {
	ID string `json:"id"`
}

func (s *printBase) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{
		schema.Field(&s.ID, schema.Required, schema.UUID),
	}
}

type printEmbed struct {
	printBase
	Value  string `json:"value"`
	Secret string `json:"secret" docs:"skip"`
	Hidden string `json:"-"`
}

func (s *printEmbed) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{
		schema.Field(&s.printBase),
		schema.Field(&s.Value, schema.Describe("free text")),
	}
}

type printStatus string

func (printStatus) ValueRules() []schema.Rule {
	return []schema.Rule{schema.In(printStatus("on"), printStatus("off"))}
}

type printWithStatus struct {
	Status printStatus `json:"status"`
}

func (s *printWithStatus) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{schema.Field(&s.Status, schema.Required)}
}

type printCtx struct {
	Title string `json:"title"`
}

func (s *printCtx) Rules(_ context.Context) []*schema.FieldRules {
	return []*schema.FieldRules{schema.Field(&s.Title, schema.Required)}
}

type printOrdered struct {
	Zeta  string `json:"zeta"`
	Alpha string `json:"alpha"`
	Mid   string
}

func TestPrint_BasicStruct(t *testing.T) {
	ref, err := schema.Print(printBasic{})
	require.NoError(t, err)
	s := ref.Value
	require.NotNil(t, s)

	assert.True(t, s.Type.Is(openapi3.TypeObject))
	assert.Equal(t, []string{"name", "email"}, s.Required)

	name := s.Properties["name"].Value
	assert.Equal(t, uint64(1), name.MinLength)
	require.NotNil(t, name.MaxLength)
	assert.Equal(t, uint64(100), *name.MaxLength)

	assert.Equal(t, "email", s.Properties["email"].Value.Format)

	age := s.Properties["age"].Value
	require.NotNil(t, age.Min)
	require.NotNil(t, age.Max)
	assert.Equal(t, float64(0), *age.Min)
	assert.Equal(t, float64(150), *age.Max)
}

func TestPrint_EmbeddedAndSkipped(t *testing.T) {
	ref, err := schema.Print(printEmbed{})
	require.NoError(t, err)
	s := ref.Value

	assert.Contains(t, s.Properties, "id")
	assert.Contains(t, s.Properties, "value")
	assert.NotContains(t, s.Properties, "secret")
	assert.NotContains(t, s.Properties, "Hidden")
	assert.Contains(t, s.Required, "id")
	assert.Equal(t, "uuid", s.Properties["id"].Value.Format)
	assert.Equal(t, "free text", s.Properties["value"].Value.Description)
}

func TestPrint_ValueRuler(t *testing.T) {
	ref, err := schema.Print(printWithStatus{})
	require.NoError(t, err)
	status := ref.Value.Properties["status"].Value
	assert.Len(t, status.Enum, 2)
	assert.Contains(t, ref.Value.Required, "status")
}

func TestPrint_ContextRuler(t *testing.T) {
	ref, err := schema.Print(printCtx{})
	require.NoError(t, err)
	assert.Equal(t, []string{"title"}, ref.Value.Required)
}

func TestPrint_Nil(t *testing.T) {
	_, err := schema.Print(nil)
	assert.ErrorIs(t, err, schema.ErrNilSchema)
}

func TestPrint_IsValidJSONSchema(t *testing.T) {
	ref, err := schema.Print(printBasic{})
	require.NoError(t, err)
	raw, err := json.Marshal(ref)
	require.NoError(t, err)

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	require.NoError(t, err)
	c := jsonschema.NewCompiler()
	require.NoError(t, c.AddResource("basic.json", doc))
	sch, err := c.Compile("basic.json")
	require.NoError(t, err)

	good, err := jsonschema.UnmarshalJSON(strings.NewReader(`{"name":"Ann","email":"ann@example.com","age":30}`))
	require.NoError(t, err)
	assert.NoError(t, sch.Validate(good))

	bad, err := jsonschema.UnmarshalJSON(strings.NewReader(`{"email":"ann@example.com","age":200}`))
	require.NoError(t, err)
	assert.Error(t, sch.Validate(bad))
}

type printTree struct {
	Label    string       `json:"label"`
	Children []*printTree `json:"children"`
}

func TestPrintDefinitions_Recursive(t *testing.T) {
	defs := openapi3.Schemas{}
	ref, err := schema.PrintDefinitions(printTree{}, defs)
	require.NoError(t, err)

	children := ref.Value.Properties["children"]
	require.NotNil(t, children)
	assert.Equal(t, "#/components/schemas/printTree", children.Value.Items.Ref)
	require.Contains(t, defs, "printTree")
	assert.Contains(t, defs["printTree"].Value.Properties, "label")
}

func TestPrintDefinitions_PlainTypeAddsNothing(t *testing.T) {
	defs := openapi3.Schemas{}
	_, err := schema.PrintDefinitions(printBasic{}, defs)
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestPropertyNames(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{name: "declaration order", value: printOrdered{}, want: []string{"zeta", "alpha", "Mid"}},
		{name: "pointer", value: &printOrdered{}, want: []string{"zeta", "alpha", "Mid"}},
		{name: "embedded flattened", value: printEmbed{}, want: []string{"id", "value"}},
		{name: "rules", value: printBasic{}, want: []string{"name", "email", "age"}},
		{name: "no properties", value: "scalar", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := schema.PropertyNames(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type printPartial struct {
	Covered   string `json:"covered"`
	Forgotten string `json:"forgotten"`
	Internal  string `json:"internal" validate:"-"`
}

func (s *printPartial) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{schema.Field(&s.Covered, schema.Required)}
}

func TestMissingRules(t *testing.T) {
	assert.Empty(t, schema.MissingRules(&printBasic{}))
	assert.Empty(t, schema.MissingRules(&printEmbed{}))
	assert.Equal(t, []string{"forgotten"}, schema.MissingRules(&printPartial{}))
	assert.Empty(t, schema.MissingRules(&printPartial{}, "Forgotten"))
	assert.Nil(t, schema.MissingRules(&printOrdered{}))
}
