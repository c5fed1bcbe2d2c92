package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGenres = []Genre{
	{ID: 28, Name: "Action"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 10770, Name: "TV Movie"},
}

func TestResolveGenre(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"Action", 28},
		{"action", 28},
		{"science fiction", 878},
		{"Science-Fiction", 878},
		{"tv movie", 10770},
		{"comdy", 35},
		{"animated", 16},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			g, err := resolveGenre(tt.input, testGenres)
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.ID)
		})
	}
}

func TestResolveGenre_Unknown(t *testing.T) {
	for _, input := range []string{"western", "documentary", "   ", "!!"} {
		_, err := resolveGenre(input, testGenres)
		assert.Error(t, err, input)
	}
}

func TestResolveGenre_EmptyList(t *testing.T) {
	_, err := resolveGenre("action", nil)
	assert.Error(t, err)
}

func TestNormalizeGenre(t *testing.T) {
	assert.Equal(t, "sciencefiction", normalizeGenre("Science Fiction"))
	assert.Equal(t, "tvmovie", normalizeGenre(" TV-Movie "))
	assert.Empty(t, normalizeGenre("--"))
}

func TestLookupGenre_NumericSkipsServer(t *testing.T) {
	// A closed server proves no request is made.
	srv := newMockServer(t).Build()
	srv.Close()

	g, err := lookupGenre(NewClient(srv.URL), " 28 ")
	require.NoError(t, err)
	assert.Equal(t, "28", g.IDString())
	assert.Empty(t, g.Name)
}

func TestLookupGenre_ByName(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/genres").
		RespondJSON(testGenres).
		Build()
	defer srv.Close()

	g, err := lookupGenre(NewClient(srv.URL), "comedy")
	require.NoError(t, err)
	assert.Equal(t, Genre{ID: 35, Name: "Comedy"}, g)
}

func TestPrintGenres(t *testing.T) {
	var buf bytes.Buffer
	printGenres(&buf, testGenres[:2])

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "    28 │ Action")
	assert.Contains(t, out, "    16 │ Animation")
}
