package factory

import (
	"io"
	"testing"

	"github.com/brimdata/stax"
	"github.com/stretchr/testify/require"
)

func TestBuiltinAliases(t *testing.T) {
	require.Equal(t, []string{
		"csv-default-stream-writer",
		"csv-default-writer-factory",
		"csv-indent-stream-writer",
		"default",
		"indent",
	}, Aliases())
	require.NotEmpty(t, Short(DefaultAlias))
}

func TestLookup(t *testing.T) {
	f, err := Lookup("", Options{})
	require.NoError(t, err)
	require.Equal(t, Default{}, f)

	f, err = Lookup("csv-default-writer-factory", Options{Normalize: true})
	require.NoError(t, err)
	require.Equal(t, Default{Normalize: true}, f)

	f, err = Lookup(IndentAlias, Options{Indent: "\t"})
	require.NoError(t, err)
	require.Equal(t, Indent{Indent: "\t"}, f)
}

func TestLookupErrors(t *testing.T) {
	_, err := Lookup("csv-pretty", Options{})
	require.ErrorIs(t, err, ErrUnknownAlias)
	require.ErrorContains(t, err, `"csv-pretty"`)

	_, err = Lookup(DefaultAlias, Options{Indent: "  "})
	require.ErrorContains(t, err, "indentation is not supported")
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	custom := func(Options) (stax.Factory, error) {
		return stax.FactoryFunc(func(w io.Writer) (stax.StreamWriter, error) {
			return Indent{Indent: " "}.Create(w)
		}), nil
	}
	require.NoError(t, r.Register("custom", "one-space indent", custom))
	require.ErrorIs(t, r.Register("custom", "", custom), ErrDuplicateAlias)
	require.Error(t, r.Register("", "", custom))
	require.Error(t, r.Register("nil", "", nil))
	require.Equal(t, []string{"custom"}, r.Aliases())
	require.Equal(t, "one-space indent", r.Short("custom"))

	f, err := r.Lookup("custom", Options{})
	require.NoError(t, err)
	require.NotNil(t, f)
	_, err = r.Lookup("", Options{})
	require.ErrorIs(t, err, ErrUnknownAlias)
}
