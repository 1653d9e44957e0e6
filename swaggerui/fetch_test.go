package swaggerui_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Gobd/docer/swaggerui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bundledIndex = `<script>
const ui = SwaggerUIBundle({
  url: "https://petstore.swagger.io/v2/swagger.json",
  dom_id: '#swagger-ui',
})
</script>`

type entry struct {
	name, body string
}

func buildZip(t *testing.T, entries ...entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = io.WriteString(w, e.body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func release(t *testing.T) []byte {
	return buildZip(t,
		entry{"swagger-ui-3.42.0/", ""},
		entry{"swagger-ui-3.42.0/README.md", "readme"},
		entry{"swagger-ui-3.42.0/dist/", ""},
		entry{"swagger-ui-3.42.0/dist/index.html", bundledIndex},
		entry{"swagger-ui-3.42.0/dist/swagger-ui.js", "ui()"},
		entry{"swagger-ui-3.42.0/dist/css/swagger-ui.css", "body{}"},
		entry{"swagger-ui-3.42.0/src/dist/ignored.js", "no"},
	)
}

func serveArchive(t *testing.T, archive []byte) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Length", strconv.Itoa(len(archive)))
		_, _ = w.Write(archive)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnsure(t *testing.T) {
	archive := release(t)
	srv, hits := serveArchive(t, archive)
	dir := t.TempDir()
	var out bytes.Buffer
	bar := swaggerui.NewBarProgress(&out)

	cfg := swaggerui.FetchConfig{
		Dir:      dir,
		URL:      srv.URL + "/zip/v3.42.0",
		Progress: bar,
		Logger:   quiet(),
	}
	require.NoError(t, swaggerui.Ensure(context.Background(), cfg))
	assert.Equal(t, 1, *hits)

	docs := swaggerui.DocsDir(dir)
	js, err := os.ReadFile(filepath.Join(docs, "swagger-ui.js"))
	require.NoError(t, err)
	assert.Equal(t, "ui()", string(js))

	css, err := os.ReadFile(filepath.Join(docs, "css", "swagger-ui.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(css))

	index, err := os.ReadFile(filepath.Join(docs, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "url: `${window.location.origin}/docs/docs.json`,")
	assert.NotContains(t, string(index), "petstore")

	assert.NoFileExists(t, filepath.Join(docs, "README.md"))
	assert.NoFileExists(t, filepath.Join(docs, "ignored.js"))

	leftovers, err := filepath.Glob(filepath.Join(dir, "swagger-temp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	size := strconv.Itoa(len(archive))
	assert.True(t, strings.HasPrefix(bar.Line(), "[====================] swagger-v3.42.0.zip 100% "), bar.Line())
	assert.True(t, strings.HasSuffix(bar.Line(), "/"+groupDigits(size)+" bytes"), bar.Line())
	assert.True(t, strings.HasSuffix(out.String(), "\n"))

	// Installed: nothing is fetched again.
	require.NoError(t, swaggerui.Ensure(context.Background(), cfg))
	assert.Equal(t, 1, *hits)
}

func TestEnsureKeepsOtherFiles(t *testing.T) {
	srv, _ := serveArchive(t, release(t))
	dir := t.TempDir()
	docs := swaggerui.DocsDir(dir)
	require.NoError(t, os.MkdirAll(docs, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "docs.json"), []byte(`{}`), 0o644))

	require.NoError(t, swaggerui.Ensure(context.Background(), swaggerui.FetchConfig{
		Dir:    dir,
		URL:    srv.URL,
		Logger: quiet(),
	}))
	assert.FileExists(t, filepath.Join(docs, "docs.json"))
	assert.FileExists(t, filepath.Join(docs, "swagger-ui.js"))
}

func TestEnsureErrors(t *testing.T) {
	notFound := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(notFound.Close)
	noDist, _ := serveArchive(t, buildZip(t, entry{"swagger-ui-3.42.0/src/index.js", "x"}))
	slip, _ := serveArchive(t, buildZip(t,
		entry{"swagger-ui-3.42.0/dist/swagger-ui.js", "ui()"},
		entry{"swagger-ui-3.42.0/dist/../../../evil.sh", "boom"},
	))

	tests := []struct {
		name string
		url  string
		want error
	}{
		{"bad status", notFound.URL, swaggerui.ErrBadStatus},
		{"no dist", noDist.URL, swaggerui.ErrDistNotFound},
		{"zip slip", slip.URL, swaggerui.ErrUnsafePath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			err := swaggerui.Ensure(context.Background(), swaggerui.FetchConfig{
				Dir:    dir,
				URL:    tt.url,
				Logger: quiet(),
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err)
			assert.NoFileExists(t, filepath.Join(swaggerui.DocsDir(dir), "swagger-ui.js"))
		})
	}
}

func TestEnsureCanceled(t *testing.T) {
	srv, hits := serveArchive(t, release(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := swaggerui.Ensure(ctx, swaggerui.FetchConfig{Dir: t.TempDir(), URL: srv.URL, Logger: quiet()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, *hits)
}

// groupDigits inserts thousands separators into a decimal string.
func groupDigits(s string) string {
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
