package actions

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"actionkit/internal/config"
	"actionkit/internal/trace"
)

type harness struct {
	tk     *Toolkit
	env    config.MapEnviron
	stdout *bytes.Buffer
	rec    *trace.Recorder
	dir    string
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	dir := t.TempDir()
	env := config.MapEnviron{
		"GITHUB_ENV":          filepath.Join(dir, "env"),
		"GITHUB_OUTPUT":       filepath.Join(dir, "output"),
		"GITHUB_PATH":         filepath.Join(dir, "path"),
		"GITHUB_STATE":        filepath.Join(dir, "state"),
		"GITHUB_STEP_SUMMARY": filepath.Join(dir, "summary"),
	}
	h := &harness{env: env, stdout: &bytes.Buffer{}, rec: trace.NewRecorder(), dir: dir}
	all := append([]Option{WithEnviron(env), WithStdout(h.stdout), WithSink(h.rec)}, opts...)
	h.tk = New(all...)
	return h
}

func (h *harness) read(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(h.dir, name))
	if os.IsNotExist(err) {
		return ""
	}
	require.NoError(t, err)
	return string(b)
}

func fixedDelimiter(d string) func() string {
	return func() string { return d }
}
