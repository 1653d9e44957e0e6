package docer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/Gobd/docer/schema"
	"github.com/Gobd/docer/swagger"
)

// ErrEmptyBody is reported when a route with a body type receives none.
var ErrEmptyBody = errors.New("docer: request body is empty")

// ErrNotStruct is returned when a params or query type is not a struct.
var ErrNotStruct = errors.New("docer: params and query types must be structs")

// Empty marks a request part the route does not take.
type Empty struct{}

// Request is an http.Request with its decoded and validated parts.
type Request[B, P, Q any] struct {
	*http.Request
	Body   B
	Params P
	Query  Q
}

// Handler handles a typed request.
type Handler[B, P, Q any] func(w http.ResponseWriter, r *Request[B, P, Q])

// Route documents (method, path) and attaches h to the host router with path
// unchanged.
//
// A nil opts.Body, opts.Params or opts.QueryString is filled from the
// matching type parameter unless it is Empty. Nothing is attached when the
// documentation cannot be recorded.
func Route[B, P, Q any](rt *Router, method, path string, opts swagger.RouteOptions, h Handler[B, P, Q]) error {
	for _, t := range []reflect.Type{reflect.TypeFor[P](), reflect.TypeFor[Q]()} {
		if elem(t).Kind() != reflect.Struct {
			return fmt.Errorf("%w: %s", ErrNotStruct, t)
		}
	}

	opts.Body = partFor[B](opts.Body)
	opts.Params = partFor[P](opts.Params)
	opts.QueryString = partFor[Q](opts.QueryString)

	if err := rt.acc.Register(method, rt.prefix, path, opts); err != nil {
		return err
	}
	rt.reg.Method(strings.ToUpper(method), path, serve(rt, h))
	rt.log.Debug("route registered",
		"method", strings.ToUpper(method),
		"path", path,
		"doc_path", swagger.NormalizePath(rt.prefix, path))
	return nil
}

// Get is Route with GET.
func Get[B, P, Q any](rt *Router, path string, opts swagger.RouteOptions, h Handler[B, P, Q]) error {
	return Route(rt, http.MethodGet, path, opts, h)
}

// Post is Route with POST.
func Post[B, P, Q any](rt *Router, path string, opts swagger.RouteOptions, h Handler[B, P, Q]) error {
	return Route(rt, http.MethodPost, path, opts, h)
}

// Put is Route with PUT.
func Put[B, P, Q any](rt *Router, path string, opts swagger.RouteOptions, h Handler[B, P, Q]) error {
	return Route(rt, http.MethodPut, path, opts, h)
}

// Patch is Route with PATCH.
func Patch[B, P, Q any](rt *Router, path string, opts swagger.RouteOptions, h Handler[B, P, Q]) error {
	return Route(rt, http.MethodPatch, path, opts, h)
}

// Delete is Route with DELETE.
func Delete[B, P, Q any](rt *Router, path string, opts swagger.RouteOptions, h Handler[B, P, Q]) error {
	return Route(rt, http.MethodDelete, path, opts, h)
}

func isEmpty[T any]() bool {
	return reflect.TypeFor[T]() == reflect.TypeFor[Empty]()
}

func elem(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// zero returns a printable zero value of T; pointer types yield a pointer to
// a zero element.
func zero[T any]() any {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Ptr {
		return reflect.New(elem(t)).Interface()
	}
	var v T
	return v
}

func partFor[T any](p *swagger.Part) *swagger.Part {
	if p != nil || isEmpty[T]() {
		return p
	}
	return &swagger.Part{Schema: zero[T]()}
}

// newValue returns a *T ready to decode into, with nested pointers allocated.
func newValue[T any]() *T {
	v := new(T)
	rv := reflect.ValueOf(v).Elem()
	for rv.Kind() == reflect.Ptr {
		rv.Set(reflect.New(rv.Type().Elem()))
		rv = rv.Elem()
	}
	return v
}

// target strips the pointers newValue allocated so rules declared on the
// struct pointer are found.
func target(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Elem().Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	return rv.Interface()
}

func check(ctx context.Context, v any) error {
	v = target(v)
	schema.Normalize(ctx, v)
	return schema.ValidateCtx(ctx, v)
}

func serve[B, P, Q any](rt *Router, h Handler[B, P, Q]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decode[B, P, Q](rt, r)
		if err != nil {
			rt.log.Warn("request rejected",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err)
			rt.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		h(w, req)
	})
}

func decode[B, P, Q any](rt *Router, r *http.Request) (*Request[B, P, Q], error) {
	req := &Request[B, P, Q]{Request: r}
	ctx := r.Context()

	if !isEmpty[P]() {
		p := newValue[P]()
		err := bindValues(target(p), func(name string) []string {
			if v := rt.reg.URLParam(r, name); v != "" {
				return []string{v}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("params: %w", err)
		}
		if err := check(ctx, p); err != nil {
			return nil, fmt.Errorf("params: %w", err)
		}
		req.Params = *p
	}

	if !isEmpty[Q]() {
		q := newValue[Q]()
		values := r.URL.Query()
		if err := bindValues(target(q), func(name string) []string { return values[name] }); err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}
		if err := check(ctx, q); err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}
		req.Query = *q
	}

	if !isEmpty[B]() {
		b := newValue[B]()
		if r.Body == nil {
			return nil, ErrEmptyBody
		}
		if err := schema.DecodeAndValidateCtx(ctx, r.Body, target(b)); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrEmptyBody
			}
			return nil, fmt.Errorf("body: %w", err)
		}
		req.Body = *b
	}
	return req, nil
}
