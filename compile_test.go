package ho_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i2mint/ho"
	"github.com/i2mint/ho/hotest"
)

const countriesTemplate = "https://restcountries.com/v3.1/name/{country_name}?fullText={full_text:false}"

func compileCountries(t *testing.T, tr ho.Transport, opts ...ho.Option) *ho.CompiledFunction {
	t.Helper()
	opts = append([]ho.Option{ho.WithTransport(tr)}, opts...)
	fn, err := ho.CompileTemplate(countriesTemplate, opts...)
	require.NoError(t, err)
	return fn
}

func TestCall_defaultFallback(t *testing.T) {
	t.Parallel()

	tr := hotest.JSON(t, []any{})
	fn := compileCountries(t, tr)

	_, err := fn.Call(context.Background(), ho.Args{"country_name": "germany"})
	require.NoError(t, err)

	req := tr.Last(t)
	assert.Equal(t, "https://restcountries.com/v3.1/name/germany?fullText=false", req.URL)
}

func TestCall_missingRequired(t *testing.T) {
	t.Parallel()

	tr := hotest.JSON(t, []any{})
	fn := compileCountries(t, tr)

	_, err := fn.Call(context.Background(), ho.Args{"full_text": true})

	var merr *ho.MissingParameterError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "country_name", merr.Name)
	assert.Zero(t, tr.Count(), "no request should be sent on a binding failure")
}

func TestCall_unknownArgument(t *testing.T) {
	t.Parallel()

	tr := hotest.JSON(t, []any{})
	fn := compileCountries(t, tr)

	_, err := fn.Call(context.Background(), ho.Args{"country_name": "germany", "bogus": 1})

	var uerr *ho.UnknownParameterError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "bogus", uerr.Name)
}

func TestCall_booleanCoercion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		value   any
		want    string
		wantErr bool
	}{
		"native bool":    {value: true, want: "fullText=true"},
		"string true":    {value: "true", want: "fullText=true"},
		"string false":   {value: "false", want: "fullText=false"},
		"string one":     {value: "1", want: "fullText=true"},
		"string zero":    {value: "0", want: "fullText=false"},
		"int one":        {value: 1, want: "fullText=true"},
		"not a bool":     {value: "notabool", wantErr: true},
		"numeric string": {value: "2", wantErr: true},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tr := hotest.JSON(t, []any{})
			fn := compileCountries(t, tr, ho.WithParamTypes(map[string]ho.ParamType{"full_text": ho.TypeBoolean}))

			_, err := fn.Call(context.Background(), ho.Args{"country_name": "germany", "full_text": tc.value})
			if tc.wantErr {
				var terr *ho.TypeMismatchError
				require.ErrorAs(t, err, &terr)
				assert.Equal(t, "full_text", terr.Name)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, tr.Last(t).URL, tc.want)
		})
	}
}

func TestCall_numericCoercion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		declared ho.ParamType
		value    any
		want     string
		wantErr  bool
	}{
		"integer from string": {declared: ho.TypeInteger, value: "42", want: "limit=42"},
		"integer from float":  {declared: ho.TypeInteger, value: 42.0, want: "limit=42"},
		"integer fractional":  {declared: ho.TypeInteger, value: 4.2, wantErr: true},
		"integer garbage":     {declared: ho.TypeInteger, value: "many", wantErr: true},
		"number from string":  {declared: ho.TypeNumber, value: "4.25", want: "limit=4.25"},
		"number from int":     {declared: ho.TypeNumber, value: 3, want: "limit=3"},
		"number garbage":      {declared: ho.TypeNumber, value: "NaNish", wantErr: true},
		"string from int":     {declared: ho.TypeString, value: 7, want: "limit=7"},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tr := hotest.JSON(t, []any{})
			fn, err := ho.CompileTemplate(
				"https://api.example.com/items?limit={limit}",
				ho.WithTransport(tr),
				ho.WithParamTypes(map[string]ho.ParamType{"limit": tc.declared}),
			)
			require.NoError(t, err)

			_, err = fn.Call(context.Background(), ho.Args{"limit": tc.value})
			if tc.wantErr {
				var terr *ho.TypeMismatchError
				require.ErrorAs(t, err, &terr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, tr.Last(t).URL, tc.want)
		})
	}
}

func TestCall_omitSentinel(t *testing.T) {
	t.Parallel()

	tr := hotest.JSON(t, []any{})
	fn := compileCountries(t, tr)

	_, err := fn.Call(context.Background(), ho.Args{"country_name": "germany", "full_text": ho.Omit})
	require.NoError(t, err)
	assert.Equal(t, "https://restcountries.com/v3.1/name/germany", tr.Last(t).URL)

	// Omitting a required parameter is still a missing parameter.
	_, err = fn.Call(context.Background(), ho.Args{"country_name": ho.Omit})
	var merr *ho.MissingParameterError
	require.ErrorAs(t, err, &merr)
}

func TestCall_omitDefaultsOption(t *testing.T) {
	t.Parallel()

	tr := hotest.JSON(t, []any{})
	fn := compileCountries(t, tr, ho.WithOmitDefaults())

	_, err := fn.Call(context.Background(), ho.Args{"country_name": "germany"})
	require.NoError(t, err)
	assert.Equal(t, "https://restcountries.com/v3.1/name/germany", tr.Last(t).URL)

	// Explicitly supplied values are still sent.
	_, err = fn.Call(context.Background(), ho.Args{"country_name": "france", "full_text": "true"})
	require.NoError(t, err)
	assert.Equal(t, "https://restcountries.com/v3.1/name/france?fullText=true", tr.Last(t).URL)
}

func TestCall_statelessBetweenCalls(t *testing.T) {
	t.Parallel()

	tr := hotest.JSON(t, []any{})
	fn := compileCountries(t, tr)

	for i := 0; i < 3; i++ {
		_, err := fn.Call(context.Background(), ho.Args{"country_name": "germany"})
		require.NoError(t, err)
	}
	require.Equal(t, 3, tr.Count(), "each call performs an independent request")
}

func TestCompileTemplate_unknownParamType(t *testing.T) {
	t.Parallel()

	_, err := ho.CompileTemplate(
		countriesTemplate,
		ho.WithParamTypes(map[string]ho.ParamType{"not_a_param": ho.TypeString}),
	)

	var uerr *ho.UnknownParameterError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "not_a_param", uerr.Name)
}

func TestCompileTemplate_defaultCoercedAtCompileTime(t *testing.T) {
	t.Parallel()

	_, err := ho.CompileTemplate(
		"https://api.example.com/items?limit={limit:ten}",
		ho.WithParamTypes(map[string]ho.ParamType{"limit": ho.TypeInteger}),
	)

	var terr *ho.TypeMismatchError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "limit", terr.Name)
}

func TestCall_pathValuePercentEncoding(t *testing.T) {
	t.Parallel()

	tr := hotest.JSON(t, []any{})
	fn := compileCountries(t, tr)

	_, err := fn.Call(context.Background(), ho.Args{"country_name": "new zealand/aotearoa"})
	require.NoError(t, err)

	req := tr.Last(t)
	assert.Contains(t, req.URL, "/name/new%20zealand%2Faotearoa")
	assert.False(t, strings.Contains(strings.TrimPrefix(req.URL, "https://"), "//"))

	parsed, err := url.Parse(req.URL)
	require.NoError(t, err)
	assert.Equal(t, "restcountries.com", parsed.Host)
}
