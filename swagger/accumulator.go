package swagger

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Gobd/docer/schema"
	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedMethod is returned by Register for methods other than get,
// post, put, patch and delete.
var ErrUnsupportedMethod = errors.New("swagger: unsupported method")

// ErrFileSchema is returned for parts that print as a binary string, which
// Swagger 2.0 can only express as a formData file parameter.
var ErrFileSchema = errors.New("swagger: binary schema has no body representation")

var methods = map[string]bool{
	"get":    true,
	"post":   true,
	"put":    true,
	"patch":  true,
	"delete": true,
}

// Part documents one component of a request. Schema is a value whose type
// describes the shape, usually the zero value of a struct.
type Part struct {
	Schema      any
	Description string
}

// ResponseDoc documents a response status. Body, when set, is printed as the
// response schema.
type ResponseDoc struct {
	Description string
	Body        any
}

// RouteOptions is the documentation of a route. Every field is optional.
type RouteOptions struct {
	Body        *Part
	Params      *Part
	QueryString *Part

	Summary     string
	Description string
	OperationID string
	Tags        []string
	Responses   map[string]ResponseDoc
}

// Metadata is merged over the document by Finalize.
type Metadata struct {
	// Info, when set, replaces the whole info object.
	Info    *Info
	Schemes []string
}

// Accumulator owns a document and the operations that may change it.
// Registration normally happens from a single goroutine at startup; the
// mutex only keeps late calls from racing a Finalize.
type Accumulator struct {
	mu  sync.Mutex
	doc Document
}

// Option configures a new Accumulator.
type Option func(*Document)

// WithInfo replaces the default info.
func WithInfo(info Info) Option {
	return func(d *Document) { d.Info = info }
}

// WithTags sets the document tags, in order.
func WithTags(tags ...Tag) Option {
	return func(d *Document) { d.Tags = append([]Tag{}, tags...) }
}

// New returns an Accumulator holding an empty document with default info.
func New(opts ...Option) *Accumulator {
	doc := newDocument()
	for _, opt := range opts {
		opt(&doc)
	}
	return &Accumulator{doc: doc}
}

// Register records the documentation of (method, prefix+rawPath).
//
// Parameters are appended: registering the same route twice lists the
// parameters of both calls. responses["200"] is guaranteed to exist
// afterwards; other statuses are only ever added.
//
// Schemas of recursive types are added to definitions under their Go type
// name; a later type with the same name replaces an earlier one.
//
// Errors from printing a schema are returned wrapped and leave the document
// unchanged.
func (a *Accumulator) Register(method, prefix, rawPath string, opts RouteOptions) error {
	m := strings.ToLower(method)
	if !methods[m] {
		return fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
	path := NormalizePath(prefix, rawPath)

	defs := openapi2.Schemas{}
	params, err := parameters(opts, defs)
	if err != nil {
		return fmt.Errorf("swagger: %s %s: %w", m, path, err)
	}
	responses, err := responses(opts.Responses, defs)
	if err != nil {
		return fmt.Errorf("swagger: %s %s: %w", m, path, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for name, def := range defs {
		a.doc.Definitions[name] = def
	}
	item := a.doc.Paths[path]
	if item == nil {
		item = PathItem{}
		a.doc.Paths[path] = item
	}
	op := item[m]
	if op == nil {
		op = &Operation{Parameters: []Parameter{}, Responses: map[string]Response{}}
		item[m] = op
	}
	op.Parameters = append(op.Parameters, params...)

	for status, r := range responses {
		op.Responses[status] = r
	}
	if _, ok := op.Responses["200"]; !ok {
		op.Responses["200"] = Response{}
	}

	if opts.Summary != "" {
		op.Summary = opts.Summary
	}
	if opts.Description != "" {
		op.Description = opts.Description
	}
	if opts.OperationID != "" {
		op.OperationID = opts.OperationID
	}
	op.Tags = appendMissing(op.Tags, opts.Tags...)
	return nil
}

// printSchema prints value as a Swagger 2.0 schema. References to recursive
// types are rewritten to #/definitions/<name> and their schemas added to defs;
// nullable becomes x-nullable.
func printSchema(value any, defs openapi2.Schemas) (*openapi2.SchemaRef, error) {
	found := openapi3.Schemas{}
	ref, err := schema.PrintDefinitions(value, found)
	if err != nil || ref == nil {
		return nil, err
	}
	components := &openapi3.Components{Schemas: found}
	out := fromV3(ref, components)
	if out == nil {
		return nil, ErrFileSchema
	}
	for name, def := range found {
		conv := fromV3(def, components)
		if conv == nil || conv.Value == nil {
			continue
		}
		// A definition describes the type; nullability belongs to the field
		// that points at it.
		conv.Value.Extensions = maps.Clone(conv.Value.Extensions)
		delete(conv.Value.Extensions, "x-nullable")
		defs[name] = conv
	}
	return out, nil
}

// fromV3 converts ref, restoring the nullable flags the conversion clears so
// schemas shared with a definition convert the same way twice.
func fromV3(ref *openapi3.SchemaRef, components *openapi3.Components) *openapi2.SchemaRef {
	marked := nullables(ref, nil)
	out, _ := openapi2conv.FromV3SchemaRef(ref, components)
	for _, s := range marked {
		s.Nullable = true
	}
	return out
}

// nullables walks the same children as the conversion. Printed schemas are
// acyclic below references.
func nullables(ref *openapi3.SchemaRef, out []*openapi3.Schema) []*openapi3.Schema {
	if ref == nil || ref.Ref != "" || ref.Value == nil {
		return out
	}
	s := ref.Value
	if s.Nullable {
		out = append(out, s)
	}
	out = nullables(s.Items, out)
	for _, p := range s.Properties {
		out = nullables(p, out)
	}
	for _, p := range s.AllOf {
		out = nullables(p, out)
	}
	return out
}

// parameters prints every part before anything is appended.
func parameters(opts RouteOptions, defs openapi2.Schemas) ([]Parameter, error) {
	var out []Parameter
	if p := opts.Body; p != nil {
		ref, err := printSchema(p.Schema, defs)
		if err != nil {
			return nil, fmt.Errorf("body: %w", err)
		}
		out = append(out, Parameter{In: InBody, Name: BodyName, Description: p.Description, Schema: ref})
	}
	if p := opts.Params; p != nil {
		names, err := schema.PropertyNames(p.Schema)
		if err != nil {
			return nil, fmt.Errorf("params: %w", err)
		}
		for _, name := range names {
			out = append(out, Parameter{In: InPath, Name: name})
		}
	}
	if p := opts.QueryString; p != nil {
		ref, err := printSchema(p.Schema, defs)
		if err != nil {
			return nil, fmt.Errorf("querystring: %w", err)
		}
		out = append(out, Parameter{In: InQuery, Name: QueryName, Description: p.Description, Schema: ref})
	}
	return out, nil
}

func responses(docs map[string]ResponseDoc, defs openapi2.Schemas) (map[string]Response, error) {
	out := make(map[string]Response, len(docs))
	for status, d := range docs {
		r := Response{Description: d.Description}
		if d.Body != nil {
			ref, err := printSchema(d.Body, defs)
			if err != nil {
				return nil, fmt.Errorf("response %s: %w", status, err)
			}
			r.Schema = ref
		}
		out[status] = r
	}
	return out, nil
}

func appendMissing(list []string, items ...string) []string {
	for _, it := range items {
		found := false
		for _, have := range list {
			if have == it {
				found = true
				break
			}
		}
		if !found {
			list = append(list, it)
		}
	}
	return list
}

// Operation returns a copy of the operation registered for method at path.
// path may use either marker or brace syntax.
func (a *Accumulator) Operation(method, path string) (Operation, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	op := a.doc.Paths[NormalizePath("", path)][strings.ToLower(method)]
	if op == nil {
		return Operation{}, false
	}
	return op.clone(), true
}

// Paths returns the documented paths, sorted.
func (a *Accumulator) Paths() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	paths := make([]string, 0, len(a.doc.Paths))
	for p := range a.doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Finalize merges meta over the document and returns it as JSON. The merge
// is shallow: a non-nil meta.Info replaces the whole info object, so fields
// left empty there are dropped. The accumulator itself is not changed.
func (a *Accumulator) Finalize(meta Metadata) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return json.Marshal(a.merged(meta))
}

// FinalizeYAML is Finalize encoded as YAML.
func (a *Accumulator) FinalizeYAML(meta Metadata) ([]byte, error) {
	b, err := a.Finalize(meta)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}

func (a *Accumulator) merged(meta Metadata) Document {
	d := a.doc
	if meta.Info != nil {
		d.Info = *meta.Info
	}
	if meta.Schemes != nil {
		d.Schemes = meta.Schemes
	}
	return d
}

// WriteFile finalizes the document and writes the JSON to path, creating
// parent directories.
func (a *Accumulator) WriteFile(path string, meta Metadata) error {
	b, err := a.Finalize(meta)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Handler finalizes the document once and serves it: YAML for request paths
// ending in .yaml or .yml, JSON otherwise. Routes registered afterwards are
// not served.
func (a *Accumulator) Handler(meta Metadata) (http.Handler, error) {
	jsonDoc, err := a.Finalize(meta)
	if err != nil {
		return nil, err
	}
	yamlDoc, err := a.FinalizeYAML(meta)
	if err != nil {
		return nil, err
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch filepath.Ext(r.URL.Path) {
		case ".yaml", ".yml":
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write(yamlDoc)
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(jsonDoc)
		}
	}), nil
}
