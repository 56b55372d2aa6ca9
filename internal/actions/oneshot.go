package actions

import "actionkit/internal/command"

// FileCommandOptions tunes the one-shot helpers.
type FileCommandOptions struct {
	// Optimize compacts the command file after writing.
	Optimize bool
}

func (t *Toolkit) SetOutput(key, value string, opts FileCommandOptions) error {
	return t.SetOutputs(command.PairsOf(key, value), opts)
}

func (t *Toolkit) SetOutputs(p *command.Pairs, opts FileCommandOptions) error {
	o, err := t.Outputs()
	if err != nil {
		return err
	}
	if err := o.SetMany(p); err != nil {
		return err
	}
	if opts.Optimize {
		return o.Optimize()
	}
	return nil
}

func (t *Toolkit) SetState(key, value string, opts FileCommandOptions) error {
	return t.SetStates(command.PairsOf(key, value), opts)
}

func (t *Toolkit) SetStates(p *command.Pairs, opts FileCommandOptions) error {
	s, err := t.States()
	if err != nil {
		return err
	}
	if err := s.SetMany(p); err != nil {
		return err
	}
	if opts.Optimize {
		return s.Optimize()
	}
	return nil
}

// SetEnv exports to both this process and later steps.
func (t *Toolkit) SetEnv(key, value string, opts FileCommandOptions) error {
	return t.SetEnvs(command.PairsOf(key, value), opts)
}

func (t *Toolkit) SetEnvs(p *command.Pairs, opts FileCommandOptions) error {
	e, err := t.Env(DefaultEnvOptions())
	if err != nil {
		return err
	}
	if err := e.SetMany(p); err != nil {
		return err
	}
	if opts.Optimize {
		return e.OptimizeSubsequent()
	}
	return nil
}

// AddPath prepends paths to PATH for this process and later steps.
func (t *Toolkit) AddPath(opts FileCommandOptions, paths ...string) error {
	p, err := t.Path(DefaultEnvOptions())
	if err != nil {
		return err
	}
	if err := p.Add(paths...); err != nil {
		return err
	}
	if opts.Optimize {
		return p.OptimizeSubsequent()
	}
	return nil
}
