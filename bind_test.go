package docer

import (
	"testing"

	"github.com/Gobd/docer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paging struct {
	Page uint `json:"page"`
}

type bindTarget struct {
	paging
	*Extra
	Name    string  `json:"name,omitempty"`
	Ratio   float32 `json:"ratio"`
	IDs     []int64 `json:"ids"`
	Skipped string  `json:"-"`
	Bare    int8
	Ptr     *string `json:"ptr"`
	hidden  string
}

type Extra struct {
	Flag bool `json:"flag"`
}

func TestBindValues(t *testing.T) {
	values := map[string][]string{
		"page":    {"3"},
		"flag":    {"true"},
		"name":    {"x", "ignored"},
		"ratio":   {"0.5"},
		"ids":     {"1", "2"},
		"Skipped": {"no"},
		"-":       {"no"},
		"Bare":    {"-4"},
		"ptr":     {"p"},
		"hidden":  {"no"},
	}
	var got bindTarget
	require.NoError(t, bindValues(&got, func(name string) []string { return values[name] }))

	assert.Equal(t, uint(3), got.Page)
	require.NotNil(t, got.Extra)
	assert.True(t, got.Flag)
	assert.Equal(t, "x", got.Name)
	assert.Equal(t, float32(0.5), got.Ratio)
	assert.Equal(t, []int64{1, 2}, got.IDs)
	assert.Empty(t, got.Skipped)
	assert.Equal(t, int8(-4), got.Bare)
	require.NotNil(t, got.Ptr)
	assert.Equal(t, "p", *got.Ptr)
	assert.Empty(t, got.hidden)
}

func TestBindValuesErrors(t *testing.T) {
	values := map[string][]string{
		"page": {"-1"},
		"ids":  {"1", "x"},
		"Bare": {"300"},
	}
	var got bindTarget
	err := bindValues(&got, func(name string) []string { return values[name] })
	require.Error(t, err)

	verrs, ok := err.(schema.ValidationErrors)
	require.True(t, ok)
	assert.Len(t, verrs, 3)
	assert.EqualError(t, verrs["page"], "must be a non-negative integer")
	assert.EqualError(t, verrs["ids"], "must be an integer")
	assert.EqualError(t, verrs["Bare"], "must be an integer")

	assert.ErrorIs(t, bindValues(got, nil), ErrNotStruct)
}
