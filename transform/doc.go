// Package transform rewrites the string fields of a struct in place. It is
// meant for [schema.Normalizer] implementations that clean request data
// before validation:
//
//	func (u *CreateUser) Normalize() {
//	    transform.Struct(u, strings.TrimSpace, strings.ToLower)
//	}
package transform
