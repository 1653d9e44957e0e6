// Package schema describes request shapes as Go types carrying validation
// rules, and prints those types as JSON-Schema for API documentation.
//
// A shape is any struct whose pointer implements [Ruler]:
//
//	type CreateUser struct {
//	    Name  string `json:"name"`
//	    Email string `json:"email"`
//	}
//
//	func (u *CreateUser) Rules() []*schema.FieldRules {
//	    return []*schema.FieldRules{
//	        schema.Field(&u.Name, schema.Required, schema.Length(1, 100)),
//	        schema.Field(&u.Email, schema.Required, schema.Email),
//	    }
//	}
//
// [Print] renders the shape (rules included) as an OpenAPI schema object and
// [PropertyNames] lists its top-level properties in declaration order.
// [Validate] and [DecodeAndValidate] enforce the same rules on request data.
package schema
