package swagger_test

import (
	"testing"

	"github.com/Gobd/docer/swagger"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		prefix, raw, want string
	}{
		{"", "/a/:id/:name", "/a/{id}/{name}"},
		{"", "/users", "/users"},
		{"", "/users/", "/users/"},
		{"", "", ""},
		{"", "/", "/"},
		{"/api", "/users/:id", "/api/users/{id}"},
		{"/api/:tenant", "/users", "/api/{tenant}/users"},
		{"", "/files/{name}", "/files/{name}"},
		{"", "/files/{id:[0-9]+}", "/files/{id}"},
		{"", "//double//:x", "//double//{x}"},
		{"", "/a-:id", "/a-:id"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, swagger.NormalizePath(tt.prefix, tt.raw))
		})
	}
}

func TestNormalizePathIdempotent(t *testing.T) {
	for _, p := range []string{"/a/:id/:name", "/plain/path", "/x/{id:[a-z]+}/y"} {
		once := swagger.NormalizePath("", p)
		assert.Equal(t, once, swagger.NormalizePath("", once), p)
	}
}
