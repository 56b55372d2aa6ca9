package command

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"go.uber.org/zap"

	"actionkit/internal/config"
	"actionkit/internal/trace"
)

// Kind names a command file. Its value is the configuration key holding the
// file's path.
type Kind string

const (
	KindEnv         Kind = config.KeyEnv
	KindOutput      Kind = config.KeyOutput
	KindPath        Kind = config.KeyPath
	KindState       Kind = config.KeyState
	KindStepSummary Kind = config.KeyStepSummary
)

var kindPattern = regexp.MustCompile(`^(?:[0-9A-Z][0-9A-Z_-]*)?[0-9A-Z]$`)

// Validate checks the shape of a custom kind.
func (k Kind) Validate() error {
	if !kindPattern.MatchString(string(k)) {
		return invalidf("command kind %q must match %s", string(k), kindPattern.String())
	}
	return nil
}

// Option configures a File or an Emitter.
type Option func(*options)

type options struct {
	logger    *zap.Logger
	sink      trace.Sink
	delimiter func() string
	writer    io.Writer
}

func defaultOptions() options {
	return options{
		logger:    zap.NewNop(),
		sink:      trace.NopSink{},
		delimiter: NewDelimiter,
		writer:    os.Stdout,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithLogger sets the logger. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSink sets the trace sink.
func WithSink(s trace.Sink) Option {
	return func(o *options) {
		if s != nil {
			o.sink = s
		}
	}
}

// WithDelimiter replaces the heredoc delimiter generator.
func WithDelimiter(gen func() string) Option {
	return func(o *options) {
		if gen != nil {
			o.delimiter = gen
		}
	}
}

// File is a runner-owned command file. The path is resolved once by Open.
//
// File does no locking. Callers must not run Optimize or WriteAll while
// another writer (in this process or another step) targets the same path.
type File struct {
	kind Kind
	path string
	opts options
}

// Open resolves the path of the command file for kind from src.
func Open(kind Kind, src config.Source, opts ...Option) (*File, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	path, ok := "", false
	if src != nil {
		path, ok = src.Lookup(string(kind))
	}
	switch {
	case !ok:
		return nil, &ConfigurationError{Key: string(kind), Msg: "not set"}
	case path == "":
		return nil, &ConfigurationError{Key: string(kind), Msg: "empty path"}
	case !filepath.IsAbs(path):
		return nil, &ConfigurationError{Key: string(kind), Path: path, Msg: "path is not absolute"}
	}
	o := buildOptions(opts)
	return &File{kind: kind, path: path, opts: o}, nil
}

func (f *File) Kind() Kind   { return f.kind }
func (f *File) Path() string { return f.path }

// ReadAll returns the whole file. A file that does not exist yet reads as
// empty.
func (f *File) ReadAll() (string, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", f.path, err)
	}
	return string(b), nil
}

// AppendText appends text verbatim, creating the file if needed.
func (f *File) AppendText(text string) error {
	if text == "" {
		return nil
	}
	fh, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.path, err)
	}
	if _, err := fh.WriteString(text); err != nil {
		_ = fh.Close()
		return fmt.Errorf("append %s: %w", f.path, err)
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("close %s: %w", f.path, err)
	}
	return nil
}

// WriteAll replaces the file content. Readers see either the old or the new
// content, never a partial write.
func (f *File) WriteAll(text string) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(f.path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := writeFileAtomicDurable(f.path, []byte(text), perm); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

// Clear truncates the file to zero length.
func (f *File) Clear() error {
	fh, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("truncate %s: %w", f.path, err)
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("close %s: %w", f.path, err)
	}
	f.opts.logger.Debug("command file cleared", zap.String("kind", string(f.kind)), zap.String("path", f.path))
	f.record(trace.Event{Kind: trace.EventCommandCleared})
	return nil
}

func (f *File) record(ev trace.Event) {
	ev.Command = string(f.kind)
	trace.SafeRecord(f.opts.sink, ev)
}

func writeFileAtomicDurable(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return fsyncDir(dir)
}

// Directories cannot be opened for sync on Windows.
func fsyncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
