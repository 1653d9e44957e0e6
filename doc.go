// Package docer attaches typed handlers to an HTTP router and documents each
// route in a Swagger 2.0 document as it is registered.
//
// Declare the request shapes as structs with [schema.Ruler] rules:
//
//	type UserParams struct {
//	    ID string `json:"id"`
//	}
//
//	func (p *UserParams) Rules() []*schema.FieldRules {
//	    return []*schema.FieldRules{schema.Field(&p.ID, schema.Required, schema.UUID)}
//	}
//
// Then register routes through a [Router]:
//
//	acc := swagger.New()
//	rt := docer.NewRouter(docer.Chi(r), acc, "")
//	err := docer.Get[docer.Empty, UserParams, docer.Empty](rt, "/users/{id}", swagger.RouteOptions{},
//	    func(w http.ResponseWriter, r *docer.Request[docer.Empty, UserParams, docer.Empty]) {
//	        // r.Params.ID is decoded and validated
//	    })
//
// The router receives the path unchanged; the document stores it in brace
// form. Once every route is registered, serve acc.Finalize with the
// swaggerui package.
//
// Sub-packages:
//   - swagger – the document accumulator
//   - schema – validation rules and JSON-Schema printing
//   - swaggerui – Swagger UI serving and asset bootstrap
//   - transform – struct string transformation utilities
package docer
