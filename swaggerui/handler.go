package swaggerui

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"
)

//go:embed index.html
var pageFS embed.FS

// DefaultCDN is the swagger-ui-dist release the page loads.
const DefaultCDN = "https://unpkg.com/swagger-ui-dist@3.42.0"

type handlerConfig struct {
	title string
	cdn   string
	yaml  []byte
}

// HandlerOption configures Handler.
type HandlerOption func(*handlerConfig)

// WithTitle sets the page title. The default is the document's info.title.
func WithTitle(title string) HandlerOption {
	return func(c *handlerConfig) { c.title = title }
}

// WithCDN sets the base URL swagger-ui.css and swagger-ui-bundle.js are
// loaded from.
func WithCDN(base string) HandlerOption {
	return func(c *handlerConfig) { c.cdn = strings.TrimRight(base, "/") }
}

// WithYAML also serves doc at docs.yaml.
func WithYAML(doc []byte) HandlerOption {
	return func(c *handlerConfig) { c.yaml = doc }
}

// Handler returns an http.Handler serving the UI page at prefix and docJSON
// at prefix+"docs.json". The prefix is stripped automatically, so just
// mount it:
//
//	http.Handle("/docs/", swaggerui.HandlerMust("/docs/", docJSON))
func Handler(prefix string, docJSON []byte, opts ...HandlerOption) (http.Handler, error) {
	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
	}
	if err := json.Unmarshal(docJSON, &doc); err != nil {
		return nil, fmt.Errorf("swaggerui: document: %w", err)
	}

	cfg := handlerConfig{title: doc.Info.Title, cdn: DefaultCDN}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.title == "" {
		cfg.title = "Swagger UI"
	}

	tmpl, err := template.ParseFS(pageFS, "index.html")
	if err != nil {
		return nil, err
	}
	base := strings.TrimRight(prefix, "/")
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Title":   cfg.title,
		"CDN":     cfg.cdn,
		"DocsURL": base + "/docs.json",
	})
	if err != nil {
		return nil, err
	}
	index := buf.Bytes()

	return http.StripPrefix(base, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "", "/", "/index.html":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write(index)
		case "/docs.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(docJSON)
		case "/docs.yaml", "/docs.yml":
			if cfg.yaml == nil {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write(cfg.yaml)
		default:
			http.NotFound(w, r)
		}
	})), nil
}

// HandlerMust is like Handler but panics on error.
func HandlerMust(prefix string, docJSON []byte, opts ...HandlerOption) http.Handler {
	h, err := Handler(prefix, docJSON, opts...)
	if err != nil {
		panic(err)
	}
	return h
}

// Static serves a bundle placed by Ensure. dir is the directory given to
// Ensure, so the page is at /docs/ and the document at /docs/docs.json.
func Static(dir string) http.Handler {
	return http.FileServer(http.Dir(dir))
}
