package ho_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i2mint/ho"
	"github.com/i2mint/ho/hotest"
)

func TestSynthesis_requiredBeforeOptional(t *testing.T) {
	t.Parallel()

	fn, err := ho.CompileTemplate("https://api.example.com/{p}?a={a:1}&b={b}&c={c:2}")
	require.NoError(t, err)

	var names []string
	var required []bool
	for _, p := range fn.Descriptor().Params() {
		names = append(names, p.Name)
		required = append(required, p.Required)
	}

	// Required first, declaration order preserved within each group.
	assert.Equal(t, []string{"p", "b", "a", "c"}, names)
	assert.Equal(t, []bool{true, true, false, false}, required)
}

func TestSynthesis_methodOption(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		method  string
		want    string
		wantErr bool
	}{
		"default":    {method: "", want: "GET"},
		"lowercase":  {method: "post", want: "POST"},
		"uppercase":  {method: "DELETE", want: "DELETE"},
		"mixed case": {method: "Patch", want: "PATCH"},
		"unknown":    {method: "FETCH", wantErr: true},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fn, err := ho.CompileTemplate("https://api.example.com/x", ho.WithMethod(tc.method))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, fn.Descriptor().Method())
		})
	}
}

func TestSynthesis_descriptionMetadata(t *testing.T) {
	t.Parallel()

	fn, err := ho.CompileTemplate(
		"https://api.example.com/ping",
		ho.WithDescription("Liveness probe"),
	)
	require.NoError(t, err)
	assert.Equal(t, "Liveness probe", fn.Descriptor().Description())
	assert.Equal(t, "https://api.example.com/ping", fn.Descriptor().PathTemplate())
}

func TestSynthesis_descriptorImmutable(t *testing.T) {
	t.Parallel()

	tr := hotest.JSON(t, []any{})
	fn := compileCountries(t, tr)

	params := fn.Descriptor().Params()
	params[0].Name = "mutated"
	headers := fn.Descriptor().Headers()
	headers["X-Injected"] = "nope"

	// Mutating the copies must not leak into the descriptor.
	assert.Equal(t, "country_name", fn.Descriptor().Params()[0].Name)
	assert.NotContains(t, fn.Descriptor().Headers(), "X-Injected")

	_, err := fn.Call(context.Background(), ho.Args{"country_name": "germany"})
	require.NoError(t, err)
	assert.NotContains(t, tr.Last(t).Header, "X-Injected")
}
