package command

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"actionkit/internal/trace"
)

// Stdout command names understood by the runner.
const (
	CmdAddMask       = "add-mask"
	CmdAddMatcher    = "add-matcher"
	CmdDebug         = "debug"
	CmdEcho          = "echo"
	CmdEndGroup      = "endgroup"
	CmdError         = "error"
	CmdGroup         = "group"
	CmdNotice        = "notice"
	CmdRemoveMatcher = "remove-matcher"
	CmdStopCommands  = "stop-commands"
	CmdWarning       = "warning"
)

var (
	stdoutCommands = map[string]struct{}{
		CmdAddMask: {}, CmdAddMatcher: {}, CmdDebug: {}, CmdEcho: {},
		CmdEndGroup: {}, CmdError: {}, CmdGroup: {}, CmdNotice: {},
		CmdRemoveMatcher: {}, CmdStopCommands: {}, CmdWarning: {},
	}
	// Replaced by command files; the runner refuses them on stdout.
	legacyStdoutCommands = map[string]struct{}{
		"add-path": {}, "save-state": {}, "set-env": {}, "set-output": {},
	}
	stdoutNamePattern = regexp.MustCompile(`^(?:[0-9a-z][0-9a-z._-]*)?[0-9a-z]$`)
)

// ValidateStdoutName checks a stdout command name.
func ValidateStdoutName(name string) error {
	if _, ok := stdoutCommands[name]; !ok && !stdoutNamePattern.MatchString(name) {
		return invalidf("stdout command %q must match %s", name, stdoutNamePattern.String())
	}
	if _, ok := legacyStdoutCommands[name]; ok {
		return invalidf("stdout command %q is no longer supported; use a command file", name)
	}
	return nil
}

// ValidateEndToken checks a stop-commands end token.
func ValidateEndToken(token string) error {
	if len([]rune(token)) < 4 {
		return invalidf("end token %q must be at least 4 characters", token)
	}
	if !stdoutNamePattern.MatchString(token) {
		return invalidf("end token %q must match %s", token, stdoutNamePattern.String())
	}
	_, known := stdoutCommands[token]
	_, legacy := legacyStdoutCommands[token]
	if known || legacy {
		return invalidf("end token %q is a command name", token)
	}
	return nil
}

// NewEndToken returns a random end token for StopCommands.
func NewEndToken() string {
	return NewDelimiter()
}

// StdoutCommand is one "::name k=v,...::message" line.
type StdoutCommand struct {
	name       string
	properties Pairs
	message    string
}

func NewStdoutCommand(name string) (*StdoutCommand, error) {
	if err := ValidateStdoutName(name); err != nil {
		return nil, err
	}
	return &StdoutCommand{name: name}, nil
}

func (c *StdoutCommand) Name() string { return c.name }

func (c *StdoutCommand) Message() string { return c.message }

func (c *StdoutCommand) Properties() *Pairs { return c.properties.Clone() }

func (c *StdoutCommand) SetMessage(message string) *StdoutCommand {
	c.message = message
	return c
}

// SetProperty adds a property. Keys are single-line and non-empty; values are
// escaped when rendered.
func (c *StdoutCommand) SetProperty(key, value string) error {
	if err := validateSingleLine("property key", key); err != nil {
		return err
	}
	if strings.ContainsAny(key, "=,:") {
		return invalidf("property key %q must not contain '=', ',' or ':'", key)
	}
	c.properties.Set(key, value)
	return nil
}

func (c *StdoutCommand) String() string {
	var b strings.Builder
	b.WriteString("::")
	b.WriteString(c.name)
	first := true
	c.properties.Range(func(k, v string) bool {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(",")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(EscapeProperty(v))
		return true
	})
	b.WriteString("::")
	b.WriteString(EscapeData(c.message))
	return b.String()
}

// Emitter writes stdout commands and plain log lines. The default writer is
// os.Stdout.
type Emitter struct {
	opts options
}

// WithWriter sets the Emitter's output. File ignores it.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

func NewEmitter(opts ...Option) *Emitter {
	return &Emitter{opts: buildOptions(opts)}
}

func (e *Emitter) Emit(cmd *StdoutCommand) error {
	if _, err := fmt.Fprintln(e.opts.writer, cmd.String()); err != nil {
		return fmt.Errorf("emit %s: %w", cmd.name, err)
	}
	e.opts.logger.Debug("stdout command dispatched", zap.String("command", cmd.name))
	trace.SafeRecord(e.opts.sink, trace.Event{
		Kind:    trace.EventStdoutDispatched,
		Command: cmd.name,
		Keys:    cmd.properties.Keys(),
	})
	return nil
}

// Println writes text as a plain log line.
func (e *Emitter) Println(text string) error {
	if _, err := fmt.Fprintln(e.opts.writer, text); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}

func (e *Emitter) emitSimple(name, message string) error {
	cmd, err := NewStdoutCommand(name)
	if err != nil {
		return err
	}
	return e.Emit(cmd.SetMessage(message))
}

func (e *Emitter) EchoOn() error  { return e.emitSimple(CmdEcho, "on") }
func (e *Emitter) EchoOff() error { return e.emitSimple(CmdEcho, "off") }

// StopCommands makes the runner ignore stdout commands until ResumeCommands
// is called with the returned token. An empty token is replaced by a random
// one.
func (e *Emitter) StopCommands(token string) (string, error) {
	if token == "" {
		token = NewEndToken()
	}
	if err := ValidateEndToken(token); err != nil {
		return "", err
	}
	if err := e.emitSimple(CmdStopCommands, token); err != nil {
		return "", err
	}
	return token, nil
}

func (e *Emitter) ResumeCommands(token string) error {
	if err := ValidateEndToken(token); err != nil {
		return err
	}
	return e.Emit(&StdoutCommand{name: token})
}
