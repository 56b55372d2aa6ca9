package actions

import (
	"os"
	"strings"

	"actionkit/internal/command"
)

type mapFacade struct {
	cmd *command.MapCommand
}

func (m mapFacade) Set(key, value string) error {
	return m.SetMany(command.PairsOf(key, value))
}

// SetMany validates every key before anything is written.
func (m mapFacade) SetMany(p *command.Pairs) error {
	if err := validatePairs(p, validateKey); err != nil {
		return err
	}
	return m.cmd.Append(p)
}

func (m mapFacade) Clear() error    { return m.cmd.Clear() }
func (m mapFacade) Optimize() error { return m.cmd.Optimize() }

// Outputs sets step outputs through GITHUB_OUTPUT.
type Outputs struct{ mapFacade }

// States saves values for the post step of the same action through
// GITHUB_STATE.
type States struct{ mapFacade }

func (t *Toolkit) Outputs() (*Outputs, error) {
	f, err := t.open(command.KindOutput)
	if err != nil {
		return nil, err
	}
	return &Outputs{mapFacade{cmd: command.NewMapCommand(f)}}, nil
}

func (t *Toolkit) States() (*States, error) {
	f, err := t.open(command.KindState)
	if err != nil {
		return nil, err
	}
	return &States{mapFacade{cmd: command.NewMapCommand(f)}}, nil
}

// GetState reads a value saved by an earlier step of the same action. It
// returns "" when nothing was saved.
func (t *Toolkit) GetState(key string) (string, error) {
	if err := validateSingleLine("state key", key); err != nil {
		return "", err
	}
	v, _ := t.env.Lookup(envName("STATE_", key))
	return v, nil
}

// EnvOptions selects where exported variables take effect: this process,
// later steps of the job, or both. With neither set, exports do nothing.
type EnvOptions struct {
	ScopeCurrent    bool
	ScopeSubsequent bool
}

func DefaultEnvOptions() EnvOptions {
	return EnvOptions{ScopeCurrent: true, ScopeSubsequent: true}
}

type EnvExporter struct {
	t    *Toolkit
	opts EnvOptions
	cmd  *command.MapCommand
}

// Env returns an exporter. GITHUB_ENV is only resolved when subsequent
// steps are in scope.
func (t *Toolkit) Env(opts EnvOptions) (*EnvExporter, error) {
	e := &EnvExporter{t: t, opts: opts}
	if opts.ScopeSubsequent {
		f, err := t.open(command.KindEnv)
		if err != nil {
			return nil, err
		}
		e.cmd = command.NewMapCommand(f)
	}
	return e, nil
}

func (e *EnvExporter) Set(key, value string) error {
	return e.SetMany(command.PairsOf(key, value))
}

func (e *EnvExporter) SetMany(p *command.Pairs) error {
	if err := validatePairs(p, validateEnvKey); err != nil {
		return err
	}
	if p.Len() == 0 {
		return nil
	}
	if e.cmd != nil {
		if err := e.cmd.Append(p); err != nil {
			return err
		}
	}
	if e.opts.ScopeCurrent {
		var err error
		p.Range(func(k, v string) bool {
			err = e.t.env.Setenv(k, v)
			return err == nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *EnvExporter) ClearSubsequent() error {
	if e.cmd == nil {
		return nil
	}
	return e.cmd.Clear()
}

func (e *EnvExporter) OptimizeSubsequent() error {
	if e.cmd == nil {
		return nil
	}
	return e.cmd.Optimize()
}

type PathExporter struct {
	t    *Toolkit
	opts EnvOptions
	cmd  *command.LineCommand
}

// Path returns a PATH exporter. GITHUB_PATH is only resolved when subsequent
// steps are in scope.
func (t *Toolkit) Path(opts EnvOptions) (*PathExporter, error) {
	p := &PathExporter{t: t, opts: opts}
	if opts.ScopeSubsequent {
		f, err := t.open(command.KindPath)
		if err != nil {
			return nil, err
		}
		p.cmd = command.NewLineCommand(f)
	}
	return p, nil
}

// Add puts paths in front of PATH, first argument first.
func (p *PathExporter) Add(paths ...string) error {
	for _, path := range paths {
		if err := validateSingleLine("path", path); err != nil {
			return err
		}
	}
	if len(paths) == 0 {
		return nil
	}
	if p.cmd != nil {
		if err := p.cmd.Append(paths...); err != nil {
			return err
		}
	}
	if p.opts.ScopeCurrent {
		current, _ := p.t.env.Lookup("PATH")
		return p.t.env.Setenv("PATH", prependPathList(current, paths))
	}
	return nil
}

func (p *PathExporter) ClearSubsequent() error {
	if p.cmd == nil {
		return nil
	}
	return p.cmd.Clear()
}

func (p *PathExporter) OptimizeSubsequent() error {
	if p.cmd == nil {
		return nil
	}
	return p.cmd.Optimize()
}

func prependPathList(current string, add []string) string {
	sep := string(os.PathListSeparator)
	seen := make(map[string]struct{})
	var out []string
	push := func(entry string) {
		if entry == "" {
			return
		}
		if _, ok := seen[entry]; ok {
			return
		}
		seen[entry] = struct{}{}
		out = append(out, entry)
	}
	for _, entry := range add {
		push(entry)
	}
	if current != "" {
		for _, entry := range strings.Split(current, sep) {
			push(entry)
		}
	}
	return strings.Join(out, sep)
}

// Summary writes Markdown to the job summary through GITHUB_STEP_SUMMARY.
type Summary struct {
	cmd *command.RawCommand
}

func (t *Toolkit) Summary() (*Summary, error) {
	f, err := t.open(command.KindStepSummary)
	if err != nil {
		return nil, err
	}
	return &Summary{cmd: command.NewRawCommand(f)}, nil
}

func (s *Summary) Append(text string) error { return s.cmd.Append(text) }
func (s *Summary) Clear() error             { return s.cmd.Clear() }
