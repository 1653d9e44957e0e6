package docer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Gobd/docer/schema"
	"github.com/Gobd/docer/swagger"
)

// Registrar is the host router: it attaches handlers and reads path
// parameters of matched requests.
type Registrar interface {
	Method(method, pattern string, h http.Handler)
	URLParam(r *http.Request, name string) string
}

// ErrorWriter writes the response for a request that could not be decoded.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, status int, err error)

// ErrorResponse is the JSON body written by the default ErrorWriter.
type ErrorResponse struct {
	Error  string                  `json:"error"`
	Errors schema.ValidationErrors `json:"errors,omitempty"`
}

// Router registers typed routes on a Registrar and documents them in an
// Accumulator.
type Router struct {
	reg        Registrar
	acc        *swagger.Accumulator
	prefix     string
	log        *slog.Logger
	writeError ErrorWriter
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(rt *Router) { rt.log = l }
}

// WithErrorWriter replaces the default JSON error response.
func WithErrorWriter(fn ErrorWriter) Option {
	return func(rt *Router) { rt.writeError = fn }
}

// NewRouter returns a Router. prefix is prepended to documented paths only;
// mount reg under the same prefix on the host router.
func NewRouter(reg Registrar, acc *swagger.Accumulator, prefix string, opts ...Option) *Router {
	rt := &Router{
		reg:        reg,
		acc:        acc,
		prefix:     prefix,
		log:        slog.Default(),
		writeError: WriteError,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Accumulator returns the document the router registers into.
func (rt *Router) Accumulator() *swagger.Accumulator {
	return rt.acc
}

// WriteError writes err as an ErrorResponse with the given status.
// Validation errors are listed per field.
func WriteError(w http.ResponseWriter, _ *http.Request, status int, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var verrs schema.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Errors = verrs
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
