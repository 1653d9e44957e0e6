// Command gorilla demonstrates docer with a gorilla/mux router.
//
// Run:
//
//	cd _example/gorilla && go run .
//
// Then open http://localhost:8080/docs/ in your browser.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/Gobd/docer"
	"github.com/Gobd/docer/schema"
	"github.com/Gobd/docer/swagger"
	"github.com/Gobd/docer/swaggerui"
	"github.com/gorilla/mux"
)

type Widget struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (w *Widget) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{
		schema.Field(&w.Name, schema.Required, schema.Length(1, 64)),
		schema.Field(&w.Color, schema.In("red", "green", "blue")),
	}
}

type WidgetParams struct {
	ID int `json:"id"`
}

type ListQuery struct {
	Color string `json:"color"`
	Limit int    `json:"limit"`
}

func (q *ListQuery) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{
		schema.Field(&q.Color, schema.In("red", "green", "blue")),
		schema.Field(&q.Limit, schema.Max(50)),
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func main() {
	acc := swagger.New(swagger.WithTags(swagger.Tag{Name: "widgets", Description: "Widget catalogue"}))
	r := mux.NewRouter()
	rt := docer.NewRouter(docer.Gorilla(r.PathPrefix("/api").Subrouter()), acc, "/api")

	must := func(err error) {
		if err != nil {
			log.Fatal(err)
		}
	}

	must(docer.Get[docer.Empty, docer.Empty, ListQuery](rt, "/widgets", swagger.RouteOptions{
		Tags: []string{"widgets"},
	}, func(w http.ResponseWriter, r *docer.Request[docer.Empty, docer.Empty, ListQuery]) {
		writeJSON(w, r.Query)
	}))

	must(docer.Put[Widget, WidgetParams, docer.Empty](rt, "/widgets/{id:[0-9]+}", swagger.RouteOptions{
		Tags: []string{"widgets"},
	}, func(w http.ResponseWriter, r *docer.Request[Widget, WidgetParams, docer.Empty]) {
		writeJSON(w, map[string]any{"id": r.Params.ID, "widget": r.Body})
	}))

	must(docer.Delete[docer.Empty, WidgetParams, docer.Empty](rt, "/widgets/{id:[0-9]+}", swagger.RouteOptions{
		Tags: []string{"widgets"},
	}, func(w http.ResponseWriter, _ *docer.Request[docer.Empty, WidgetParams, docer.Empty]) {
		w.WriteHeader(http.StatusNoContent)
	}))

	meta := swagger.Metadata{
		Info: &swagger.Info{Title: "Example API (gorilla)", Description: "Demonstrates docer with gorilla/mux", Version: "0.1.0"},
	}
	doc, err := acc.Finalize(meta)
	must(err)
	docYAML, err := acc.FinalizeYAML(meta)
	must(err)
	r.PathPrefix("/docs/").Handler(swaggerui.HandlerMust("/docs/", doc, swaggerui.WithYAML(docYAML)))

	fmt.Println("Listening on http://localhost:8080")
	fmt.Println("Swagger UI: http://localhost:8080/docs/")
	log.Fatal(http.ListenAndServe(":8080", r))
}
