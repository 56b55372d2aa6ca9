// Package actions is the step-facing API: set outputs, save state, export
// environment variables and PATH entries, write the job summary, read inputs
// and log through the runner's stdout commands.
//
// A Toolkit is not safe for concurrent use, and neither are the command files
// it writes: a step is expected to have a single writer.
package actions

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"actionkit/internal/command"
	"actionkit/internal/config"
	"actionkit/internal/trace"
	"actionkit/internal/workflow"
)

type Option func(*Toolkit)

// WithEnviron replaces the process environment the Toolkit reads and
// writes.
func WithEnviron(env config.Environ) Option {
	return func(t *Toolkit) {
		if env != nil {
			t.env = env
		}
	}
}

// WithSource layers src over the environment configured so far. Lookups see
// src first; writes still go to the underlying environment.
func WithSource(src config.Source) Option {
	return func(t *Toolkit) {
		if src != nil {
			t.env = config.LayeredEnviron{Overlays: config.Layered{src}, Base: t.env}
		}
	}
}

func WithStdout(w io.Writer) Option {
	return func(t *Toolkit) {
		if w != nil {
			t.stdout = w
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(t *Toolkit) {
		if l != nil {
			t.logger = l
		}
	}
}

func WithSink(s trace.Sink) Option {
	return func(t *Toolkit) {
		if s != nil {
			t.sink = s
		}
	}
}

// WithDelimiter replaces the heredoc delimiter generator of every map
// command the Toolkit opens.
func WithDelimiter(gen func() string) Option {
	return func(t *Toolkit) {
		t.delimiter = gen
	}
}

type Toolkit struct {
	env       config.Environ
	stdout    io.Writer
	logger    *zap.Logger
	sink      trace.Sink
	delimiter func() string
	emitter   *command.Emitter
}

func New(opts ...Option) *Toolkit {
	t := &Toolkit{
		env:    config.OSEnviron{},
		stdout: os.Stdout,
		logger: zap.NewNop(),
		sink:   trace.NopSink{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	t.emitter = command.NewEmitter(
		command.WithWriter(t.stdout),
		command.WithLogger(t.logger),
		command.WithSink(t.sink),
	)
	return t
}

func (t *Toolkit) Environ() config.Environ { return t.env }

// Context reads the workflow run context from the Toolkit's environment.
func (t *Toolkit) Context() *workflow.Reader {
	return workflow.NewReader(t.env, workflow.WithLogger(t.logger))
}

func (t *Toolkit) open(kind command.Kind) (*command.File, error) {
	return command.Open(kind, t.env,
		command.WithLogger(t.logger),
		command.WithSink(t.sink),
		command.WithDelimiter(t.delimiter),
	)
}

func invalidf(format string, args ...any) error {
	return &command.ValidationError{Msg: fmt.Sprintf(format, args...)}
}
