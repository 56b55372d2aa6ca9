package actions

import "actionkit/internal/command"

func (t *Toolkit) emit(name, message string) error {
	cmd, err := command.NewStdoutCommand(name)
	if err != nil {
		return err
	}
	return t.emitter.Emit(cmd.SetMessage(message))
}

// Info prints a plain log line. Lines that look like stdout commands are
// fenced so the runner only displays them.
func (t *Toolkit) Info(text string) error {
	return t.printRaw(text)
}

// Debug prints each message as a debug line, shown only when step debug
// logging is on.
func (t *Toolkit) Debug(messages ...string) error {
	for _, m := range messages {
		if err := t.emit(command.CmdDebug, m); err != nil {
			return err
		}
	}
	return nil
}

// Group starts a collapsible log group. The title may be empty but must be a
// single line.
func (t *Toolkit) Group(title string) error {
	if !command.IsSimple(title) {
		return invalidf("group title %q must be a single line", title)
	}
	return t.emit(command.CmdGroup, title)
}

func (t *Toolkit) EndGroup() error {
	return t.emit(command.CmdEndGroup, "")
}

// AddMask registers secrets to be masked in the log. Empty values are
// skipped.
func (t *Toolkit) AddMask(values ...string) error {
	for _, v := range values {
		if v == "" {
			continue
		}
		if err := t.emit(command.CmdAddMask, v); err != nil {
			return err
		}
	}
	return nil
}

// AddMatcher registers problem matcher files.
func (t *Toolkit) AddMatcher(paths ...string) error {
	for _, p := range paths {
		if err := validateSingleLine("problem matcher path", p); err != nil {
			return err
		}
	}
	for _, p := range paths {
		if err := t.emit(command.CmdAddMatcher, p); err != nil {
			return err
		}
	}
	return nil
}

// RemoveMatcher removes problem matchers by owner.
func (t *Toolkit) RemoveMatcher(owners ...string) error {
	for _, o := range owners {
		if err := validateSingleLine("problem matcher owner", o); err != nil {
			return err
		}
	}
	for _, o := range owners {
		cmd, err := command.NewStdoutCommand(command.CmdRemoveMatcher)
		if err != nil {
			return err
		}
		if err := cmd.SetProperty("owner", o); err != nil {
			return err
		}
		if err := t.emitter.Emit(cmd); err != nil {
			return err
		}
	}
	return nil
}

// EchoCommands toggles whether the runner echoes stdout commands to the log.
func (t *Toolkit) EchoCommands(on bool) error {
	if on {
		return t.emitter.EchoOn()
	}
	return t.emitter.EchoOff()
}

// StopCommands stops stdout command processing until ResumeCommands is
// called with the returned token. An empty token is generated.
func (t *Toolkit) StopCommands(token string) (string, error) {
	return t.emitter.StopCommands(token)
}

func (t *Toolkit) ResumeCommands(token string) error {
	return t.emitter.ResumeCommands(token)
}
