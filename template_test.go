package ho_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i2mint/ho"
)

func TestCompileTemplate_paramMetadata(t *testing.T) {
	t.Parallel()

	fn, err := ho.CompileTemplate("https://restcountries.com/v3.1/name/{country_name}?fullText={full_text:false}")
	require.NoError(t, err)

	params := fn.Descriptor().Params()
	require.Len(t, params, 2)

	assert.Equal(t, "country_name", params[0].Name)
	assert.Equal(t, ho.LocationPath, params[0].Location)
	assert.True(t, params[0].Required)
	assert.Nil(t, params[0].Default)

	assert.Equal(t, "full_text", params[1].Name)
	assert.Equal(t, "fullText", params[1].Key)
	assert.Equal(t, ho.LocationQuery, params[1].Location)
	assert.False(t, params[1].Required)
	assert.Equal(t, "false", params[1].Default)
}

func TestCompileTemplate_pathDefault(t *testing.T) {
	t.Parallel()

	fn, err := ho.CompileTemplate("https://api.example.com/{version:v1}/status")
	require.NoError(t, err)

	params := fn.Descriptor().Params()
	require.Len(t, params, 1)
	assert.False(t, params[0].Required)
	assert.Equal(t, "v1", params[0].Default)
	assert.Equal(t, ho.LocationPath, params[0].Location)
}

func TestCompileTemplate_parseErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unbalanced open":       "https://api.example.com/users/{id",
		"unbalanced close":      "https://api.example.com/users/id}",
		"empty name":            "https://api.example.com/users/{}",
		"empty name in query":   "https://api.example.com/users?q={}",
		"duplicate names":       "https://api.example.com/{id}/things/{id}",
		"duplicate across":      "https://api.example.com/{id}/things?id={id}",
		"nested braces":         "https://api.example.com/users?q={{id}}",
		"name with dash":        "https://api.example.com/users/{user-id}",
		"name starting digit":   "https://api.example.com/users/{1st}",
		"placeholder query key": "https://api.example.com/users?{key}=value",
	}

	for name, tmpl := range tests {
		tmpl := tmpl
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := ho.CompileTemplate(tmpl)
			var perr *ho.TemplateParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tmpl, perr.Template)
		})
	}
}

func TestCompileTemplate_literalQueryPairs(t *testing.T) {
	t.Parallel()

	// Literal key=value pairs are a fixed part of the query string, not
	// parameters.
	fn, err := ho.CompileTemplate("https://api.example.com/search?format=json&q={query}")
	require.NoError(t, err)

	params := fn.Descriptor().Params()
	require.Len(t, params, 1)
	assert.Equal(t, "query", params[0].Name)
}

func TestCompileTemplate_idempotent(t *testing.T) {
	t.Parallel()

	const tmpl = "https://api.example.com/items/{id}?limit={limit:10}&verbose={verbose:false}"
	types := map[string]ho.ParamType{"limit": ho.TypeInteger, "verbose": ho.TypeBoolean}

	first, err := ho.CompileTemplate(tmpl, ho.WithParamTypes(types))
	require.NoError(t, err)
	second, err := ho.CompileTemplate(tmpl, ho.WithParamTypes(types))
	require.NoError(t, err)

	assert.Equal(t, first.Descriptor().Params(), second.Descriptor().Params())
	assert.Equal(t, first.Descriptor().Method(), second.Descriptor().Method())
}
