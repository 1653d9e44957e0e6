package docer

import (
	"net/http"

	"github.com/gorilla/mux"
)

type gorillaRegistrar struct {
	r *mux.Router
}

// Gorilla adapts a gorilla/mux router. Patterns use mux syntax
// (/users/{id} or /users/{id:[0-9]+}).
func Gorilla(r *mux.Router) Registrar {
	return gorillaRegistrar{r: r}
}

func (g gorillaRegistrar) Method(method, pattern string, h http.Handler) {
	g.r.Handle(pattern, h).Methods(method)
}

func (gorillaRegistrar) URLParam(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}
