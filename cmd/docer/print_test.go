package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestPrintJSON(t *testing.T) {
	out, err := runCmd(t, "print")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "2.0", doc["swagger"])
	paths := doc["paths"].(map[string]any)
	assert.Len(t, paths, 3)
	assert.Contains(t, paths, "/example/get_route/{exampleId}")

	indented, err := runCmd(t, "print", "--indent")
	require.NoError(t, err)
	assert.Contains(t, indented, "\n  \"swagger\": \"2.0\"")
}

func TestPrintYAML(t *testing.T) {
	out, err := runCmd(t, "print", "--format", "yaml")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc["paths"], "/example/post_route")
}

func TestPrintUnknownFormat(t *testing.T) {
	_, err := runCmd(t, "print", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}
