// Package swagger accumulates route declarations into a Swagger 2.0
// document.
//
// Create one [Accumulator] at startup, call [Accumulator.Register] once per
// documented route, then [Accumulator.Finalize] with the API metadata once
// every route is registered:
//
//	acc := swagger.New()
//	err := acc.Register("post", "/example", "/users", swagger.RouteOptions{
//	    Body: &swagger.Part{Schema: CreateUser{}, Description: "new user"},
//	})
//	err = acc.Register("get", "/example", "/users/:id", swagger.RouteOptions{
//	    Params: &swagger.Part{Schema: UserParams{}},
//	})
//	b, err := acc.Finalize(swagger.Metadata{Info: &swagger.Info{Title: "Users", Version: "1"}})
//
// Paths are stored in brace form ("/example/users/{id}") whatever marker
// syntax the router uses. Schemas are printed with package schema.
package swagger
