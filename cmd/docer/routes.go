package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Gobd/docer"
	"github.com/Gobd/docer/schema"
	"github.com/Gobd/docer/swagger"
	"github.com/Gobd/docer/transform"
)

type ExampleUser struct {
	Age string `json:"age"`
}

type ExamplePostBody struct {
	Name string      `json:"name"`
	ID   string      `json:"id"`
	User ExampleUser `json:"user"`
}

func (b *ExamplePostBody) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{
		schema.Field(&b.Name, schema.Required, schema.Length(1, 100)),
		schema.Field(&b.ID, schema.Required),
		schema.Field(&b.User),
	}
}

func (b *ExamplePostBody) Normalize() {
	transform.TrimSpace(b)
}

type ExamplePostResponse struct {
	ID    string `json:"id"`
	Name2 string `json:"name2"`
}

type ExampleGetParams struct {
	ExampleID string `json:"exampleId"`
}

func (p *ExampleGetParams) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{schema.Field(&p.ExampleID, schema.Required)}
}

type ExampleGetResponse struct {
	ID string `json:"id"`
}

type ExampleSearchQuery struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

func (q *ExampleSearchQuery) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{
		schema.Field(&q.Name, schema.Describe("case-insensitive name filter")),
		schema.Field(&q.Limit, schema.Min(0), schema.Max(100), schema.Default(10)),
	}
}

func (q *ExampleSearchQuery) Normalize() {
	transform.ToLower(q)
	if q.Limit == 0 {
		q.Limit = 10
	}
}

type ExampleSearchResponse struct {
	Name    string   `json:"name"`
	Limit   int      `json:"limit"`
	Results []string `json:"results"`
}

// ExampleError documents the 400 body written by docer.WriteError.
type ExampleError struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors,omitempty"`
}

var exampleNames = []string{"ada", "grace", "linus", "margaret"}

func reply(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// registerRoutes registers the demo API on rt.
func registerRoutes(rt *docer.Router) error {
	err := docer.Post[ExamplePostBody, docer.Empty, docer.Empty](rt, "/post_route", swagger.RouteOptions{
		Body:    &swagger.Part{Schema: ExamplePostBody{}, Description: "Some description"},
		Summary: "Echo a posted example",
		Tags:    []string{"example"},
		Responses: map[string]swagger.ResponseDoc{
			"200": {Description: "OK", Body: ExamplePostResponse{}},
			"400": {Description: "invalid body", Body: ExampleError{}},
		},
	}, func(w http.ResponseWriter, r *docer.Request[ExamplePostBody, docer.Empty, docer.Empty]) {
		reply(w, ExamplePostResponse{ID: r.Body.ID, Name2: r.Body.Name})
	})
	if err != nil {
		return err
	}

	err = docer.Get[docer.Empty, ExampleGetParams, docer.Empty](rt, "/get_route/{exampleId}", swagger.RouteOptions{
		Summary: "Fetch an example",
		Tags:    []string{"example"},
	}, func(w http.ResponseWriter, r *docer.Request[docer.Empty, ExampleGetParams, docer.Empty]) {
		reply(w, ExampleGetResponse{ID: r.Params.ExampleID})
	})
	if err != nil {
		return err
	}

	return docer.Get[docer.Empty, docer.Empty, ExampleSearchQuery](rt, "/search", swagger.RouteOptions{
		QueryString: &swagger.Part{Schema: ExampleSearchQuery{}, Description: "search filters"},
		Summary:     "Search examples",
		Tags:        []string{"example"},
	}, func(w http.ResponseWriter, r *docer.Request[docer.Empty, docer.Empty, ExampleSearchQuery]) {
		results := []string{}
		for _, n := range exampleNames {
			if len(results) == r.Query.Limit {
				break
			}
			if r.Query.Name == "" || strings.Contains(n, r.Query.Name) {
				results = append(results, n)
			}
		}
		reply(w, ExampleSearchResponse{Name: r.Query.Name, Limit: r.Query.Limit, Results: results})
	})
}
