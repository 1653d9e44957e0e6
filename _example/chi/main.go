// Command chi demonstrates docer with a chi router.
//
// Run:
//
//	cd _example/chi && go run .
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
	"github.com/go-chi/chi/v5"
)

type Order struct {
	CustomerName string  `json:"customer_name"`
	ItemCount    int     `json:"item_count"`
	Total        float64 `json:"total"`
}

func (o *Order) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{
		schema.Field(&o.CustomerName, schema.Required, schema.Length(1, 200)),
		schema.Field(&o.ItemCount, schema.Required, schema.Min(1)),
		schema.Field(&o.Total, schema.Required, schema.Min(0.01)),
	}
}

type OrderParams struct {
	OrderID string `json:"orderId"`
}

func (p *OrderParams) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{schema.Field(&p.OrderID, schema.Required, schema.UUID)}
}

func main() {
	acc := swagger.New()
	r := chi.NewRouter()
	api := chi.NewRouter()
	r.Mount("/api", api)
	rt := docer.NewRouter(docer.Chi(api), acc, "/api")

	err := docer.Post[Order, docer.Empty, docer.Empty](rt, "/orders", swagger.RouteOptions{
		Summary:     "Create an order",
		OperationID: "createOrder",
	}, func(w http.ResponseWriter, r *docer.Request[Order, docer.Empty, docer.Empty]) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(r.Body)
	})
	if err != nil {
		log.Fatal(err)
	}

	err = docer.Get[docer.Empty, OrderParams, docer.Empty](rt, "/orders/{orderId}", swagger.RouteOptions{
		Summary:     "Fetch an order",
		OperationID: "getOrder",
	}, func(w http.ResponseWriter, r *docer.Request[docer.Empty, OrderParams, docer.Empty]) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": r.Params.OrderID})
	})
	if err != nil {
		log.Fatal(err)
	}

	doc, err := acc.Finalize(swagger.Metadata{
		Info: &swagger.Info{Title: "Example API (chi)", Description: "Demonstrates docer with chi", Version: "0.1.0"},
	})
	if err != nil {
		log.Fatal(err)
	}
	r.Handle("/docs/*", swaggerui.HandlerMust("/docs/", doc))

	fmt.Println("Listening on http://localhost:8080")
	fmt.Println("Swagger UI: http://localhost:8080/docs/")
	log.Fatal(http.ListenAndServe(":8080", r))
}
