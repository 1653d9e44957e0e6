package swagger

import (
	"maps"
	"slices"

	"github.com/getkin/kin-openapi/openapi2"
)

// Version is the document format version written to the swagger field.
const Version = "2.0"

// Default info of a new document.
const (
	DefaultTitle       = "Swagger documentation"
	DefaultVersion     = "1.0.0"
	DefaultDescription = "Swagger description"
)

// Location is where a parameter is carried in the request.
type Location string

const (
	InBody  Location = "body"
	InPath  Location = "path"
	InQuery Location = "query"
)

// Fixed names of the body and query string parameters.
const (
	BodyName  = "body"
	QueryName = "query parameters"
)

// Document is a Swagger 2.0 document. Schemes is left out when nil; an
// empty list is written as [].
type Document struct {
	Swagger     string              `json:"swagger"`
	Info        Info                `json:"info"`
	Tags        []Tag               `json:"tags"`
	Paths       map[string]PathItem `json:"paths"`
	Definitions openapi2.Schemas    `json:"definitions"`
	Schemes     []string            `json:"schemes,omitzero"`
}

// Info is the API metadata.
type Info struct {
	Title       string `json:"title,omitempty"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
}

// Tag groups operations in the UI.
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PathItem maps a lowercase HTTP method to its operation.
type PathItem map[string]*Operation

// Operation documents one (path, method) pair.
type Operation struct {
	Parameters  []Parameter         `json:"parameters"`
	Responses   map[string]Response `json:"responses"`
	Summary     string              `json:"summary,omitempty"`
	Description string              `json:"description,omitempty"`
	OperationID string              `json:"operationId,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
}

// Parameter documents one request parameter.
type Parameter struct {
	In          Location            `json:"in"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Schema      *openapi2.SchemaRef `json:"schema,omitempty"`
}

// Response documents one response status.
type Response struct {
	Description string              `json:"description,omitempty"`
	Schema      *openapi2.SchemaRef `json:"schema,omitempty"`
}

func newDocument() Document {
	return Document{
		Swagger: Version,
		Info: Info{
			Title:       DefaultTitle,
			Version:     DefaultVersion,
			Description: DefaultDescription,
		},
		Tags:        []Tag{},
		Paths:       map[string]PathItem{},
		Definitions: openapi2.Schemas{},
	}
}

// clone copies the operation, schemas included.
func (o *Operation) clone() Operation {
	c := *o
	c.Tags = slices.Clone(o.Tags)
	c.Parameters = make([]Parameter, len(o.Parameters))
	for i, p := range o.Parameters {
		p.Schema = cloneSchemaRef(p.Schema)
		c.Parameters[i] = p
	}
	c.Responses = make(map[string]Response, len(o.Responses))
	for k, r := range o.Responses {
		r.Schema = cloneSchemaRef(r.Schema)
		c.Responses[k] = r
	}
	return c
}

// cloneSchemaRef deep-copies a converted schema. Converted schemas are trees:
// recursion goes through $ref, never through a shared pointer. Schemas of map
// values (additionalProperties) stay shared.
func cloneSchemaRef(r *openapi2.SchemaRef) *openapi2.SchemaRef {
	if r == nil {
		return nil
	}
	c := *r
	c.Extensions = maps.Clone(r.Extensions)
	if r.Value == nil {
		return &c
	}
	v := *r.Value
	v.Extensions = maps.Clone(v.Extensions)
	if v.Type != nil {
		types := slices.Clone(*v.Type)
		v.Type = &types
	}
	v.Enum = slices.Clone(v.Enum)
	v.Required = slices.Clone(v.Required)
	v.Not = cloneSchemaRef(v.Not)
	v.Items = cloneSchemaRef(v.Items)
	if v.AllOf != nil {
		v.AllOf = make(openapi2.SchemaRefs, len(r.Value.AllOf))
		for i, s := range r.Value.AllOf {
			v.AllOf[i] = cloneSchemaRef(s)
		}
	}
	if v.Properties != nil {
		v.Properties = make(openapi2.Schemas, len(r.Value.Properties))
		for k, s := range r.Value.Properties {
			v.Properties[k] = cloneSchemaRef(s)
		}
	}
	v.Min = clonePtr(v.Min)
	v.Max = clonePtr(v.Max)
	v.MultipleOf = clonePtr(v.MultipleOf)
	v.MaxLength = clonePtr(v.MaxLength)
	v.MaxItems = clonePtr(v.MaxItems)
	v.MaxProps = clonePtr(v.MaxProps)
	c.Value = &v
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
