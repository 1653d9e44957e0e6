package docer

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type chiRegistrar struct {
	r chi.Router
}

// Chi adapts a chi router. Patterns use chi syntax (/users/{id}).
func Chi(r chi.Router) Registrar {
	return chiRegistrar{r: r}
}

func (c chiRegistrar) Method(method, pattern string, h http.Handler) {
	c.r.Method(method, pattern, h)
}

func (chiRegistrar) URLParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}
