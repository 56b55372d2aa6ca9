package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"actionkit/internal/config"
)

func openTemp(t *testing.T, kind Kind, opts ...Option) *File {
	t.Helper()
	path := filepath.Join(t.TempDir(), string(kind))
	f, err := Open(kind, config.MapEnviron{string(kind): path}, opts...)
	require.NoError(t, err)
	return f
}

func readFile(t *testing.T, f *File) string {
	t.Helper()
	b, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	return string(b)
}

// sequence yields tokens in order, then repeats the last one.
func sequence(tokens ...string) func() string {
	i := 0
	return func() string {
		tok := tokens[i]
		if i < len(tokens)-1 {
			i++
		}
		return tok
	}
}

func lines(parts ...string) string {
	out := ""
	for _, p := range parts {
		out += p + EOL
	}
	return out
}
