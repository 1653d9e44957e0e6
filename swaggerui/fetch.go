package swaggerui

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	// DefaultArchiveURL is the Swagger UI release Ensure downloads.
	DefaultArchiveURL = "https://codeload.github.com/swagger-api/swagger-ui/zip/v3.42.0"

	// DefaultDir is where Ensure places the bundle when FetchConfig.Dir is empty.
	DefaultDir = "swagger"

	// DefaultDocsURL is the JavaScript expression the bundled page loads the
	// document from.
	DefaultDocsURL = "`${window.location.origin}/docs/docs.json`"

	petstoreURL = `"https://petstore.swagger.io/v2/swagger.json"`

	// marker is the file whose presence means the bundle is installed.
	marker = "swagger-ui.js"
)

var (
	ErrBadStatus    = errors.New("swaggerui: unexpected response status")
	ErrDistNotFound = errors.New("swaggerui: archive has no dist directory")
	ErrUnsafePath   = errors.New("swaggerui: archive entry escapes the target directory")
)

// FetchConfig configures Ensure. The zero value downloads DefaultArchiveURL
// into DefaultDir.
type FetchConfig struct {
	Dir      string
	URL      string
	DocsURL  string
	Client   *http.Client
	Progress Progress
	Logger   *slog.Logger
}

func (c FetchConfig) withDefaults() FetchConfig {
	if c.Dir == "" {
		c.Dir = DefaultDir
	}
	if c.URL == "" {
		c.URL = DefaultArchiveURL
	}
	if c.DocsURL == "" {
		c.DocsURL = DefaultDocsURL
	}
	if c.Client == nil {
		c.Client = http.DefaultClient
	}
	if c.Progress == nil {
		c.Progress = nopProgress{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// DocsDir is the directory Ensure unpacks into and the document should be
// written to.
func DocsDir(dir string) string {
	if dir == "" {
		dir = DefaultDir
	}
	return filepath.Join(dir, "docs")
}

// Ensure installs the Swagger UI bundle into <dir>/docs unless
// <dir>/docs/swagger-ui.js already exists. The archive is streamed to a
// temporary file, the files under its <root>/dist directory are unpacked and
// the petstore URL in index.html is replaced with cfg.DocsURL.
func Ensure(ctx context.Context, cfg FetchConfig) error {
	cfg = cfg.withDefaults()
	docs := DocsDir(cfg.Dir)

	if _, err := os.Stat(filepath.Join(docs, marker)); err == nil {
		cfg.Logger.Debug("swagger ui already installed", "dir", docs)
		return nil
	}
	if err := os.MkdirAll(docs, 0o755); err != nil {
		return err
	}

	cfg.Logger.Info("installing swagger ui, this only happens once", "url", cfg.URL)

	archive, err := download(ctx, cfg)
	if err != nil {
		return err
	}
	defer os.Remove(archive)

	staging, err := os.MkdirTemp(cfg.Dir, "swagger-temp-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(staging)

	if err := unpackDist(archive, staging); err != nil {
		return err
	}

	entries, err := os.ReadDir(staging)
	if err != nil {
		return err
	}
	for _, e := range entries {
		dst := filepath.Join(docs, e.Name())
		if err := os.RemoveAll(dst); err != nil {
			return err
		}
		if err := os.Rename(filepath.Join(staging, e.Name()), dst); err != nil {
			return err
		}
	}

	if err := rewriteIndex(filepath.Join(docs, "index.html"), cfg.DocsURL); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		cfg.Logger.Warn("swagger ui bundle has no index.html", "dir", docs)
	}

	cfg.Logger.Info("swagger ui installed", "dir", docs)
	return nil
}

// download streams the archive to a temporary file and returns its name.
func download(ctx context.Context, cfg FetchConfig) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return "", err
	}
	resp, err := cfg.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	f, err := os.CreateTemp("", "swagger-*.zip")
	if err != nil {
		return "", err
	}

	cfg.Progress.Start("swagger-"+strings.TrimSuffix(path.Base(cfg.URL), ".zip")+".zip", resp.ContentLength)
	_, err = io.Copy(f, progressReader{r: resp.Body, p: cfg.Progress})
	cfg.Progress.Done()
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// distPrefix finds "<root>/dist/" among the archive entries.
func distPrefix(files []*zip.File) (string, bool) {
	for _, f := range files {
		parts := strings.SplitN(f.Name, "/", 3)
		if len(parts) >= 2 && parts[0] != "" && parts[1] == "dist" {
			return parts[0] + "/dist/", true
		}
	}
	return "", false
}

func unpackDist(archive, dst string) error {
	zr, err := zip.OpenReader(archive)
	if errors.Is(err, zip.ErrInsecurePath) {
		zr.Close()
		return fmt.Errorf("%w: %w", ErrUnsafePath, err)
	}
	if err != nil {
		return err
	}
	defer zr.Close()

	prefix, ok := distPrefix(zr.File)
	if !ok {
		return ErrDistNotFound
	}

	for _, f := range zr.File {
		rel, ok := strings.CutPrefix(f.Name, prefix)
		if !ok || rel == "" {
			continue
		}
		if !filepath.IsLocal(rel) {
			return fmt.Errorf("%w: %s", ErrUnsafePath, f.Name)
		}
		target := filepath.Join(dst, filepath.FromSlash(rel))
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := extract(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extract(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func rewriteIndex(name, docsURL string) error {
	b, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	page := strings.Replace(string(b), petstoreURL, docsURL, 1)
	return os.WriteFile(name, []byte(page), 0o644)
}
