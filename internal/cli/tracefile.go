package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"actionkit/internal/trace"
)

type traceFileWriter struct {
	enabled bool
	path    string
}

func newTraceWriter(path string) (*traceFileWriter, error) {
	if path == "" {
		return &traceFileWriter{enabled: false}, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, invalidInvocationf("--trace %q: %v", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("create trace dir: %w", err)
	}
	return &traceFileWriter{enabled: true, path: abs}, nil
}

// Finalize writes the journal, also when the command failed.
func (w *traceFileWriter) Finalize(j trace.Journal) error {
	if w == nil || !w.enabled {
		return nil
	}
	b, err := j.JSON()
	if err != nil {
		return err
	}
	return writeFileAtomic(w.path, b, 0o644)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	_ = tmp.Sync() // best-effort durability
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
