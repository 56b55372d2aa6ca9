package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"actionkit/internal/actions"
)

type keyValueFlags struct {
	optimize  bool
	fromStdin bool
}

func (f *keyValueFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.optimize, "optimize", false, "compact the command file after writing")
	cmd.Flags().BoolVar(&f.fromStdin, "stdin", false, "read the value from stdin instead of the second argument")
}

// keyValue returns KEY and VALUE from the arguments, or KEY from the
// arguments and VALUE from stdin.
func (f *keyValueFlags) keyValue(cmd *cobra.Command, args []string) (string, string, error) {
	if f.fromStdin {
		if len(args) != 1 {
			return "", "", invalidInvocationf("%s --stdin: expected KEY, got %d argument(s)", cmd.CommandPath(), len(args))
		}
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return args[0], string(b), nil
	}
	if len(args) != 2 {
		return "", "", invalidInvocationf("%s: expected KEY VALUE, got %d argument(s)", cmd.CommandPath(), len(args))
	}
	return args[0], args[1], nil
}

// mapFile is what output and state share.
type mapFile interface {
	Set(key, value string) error
	Clear() error
	Optimize() error
}

func (a *app) mapFileCommand(use, short string, open func() (mapFile, error)) *cobra.Command {
	group := newGroup(use, short)

	var kv keyValueFlags
	set := &cobra.Command{
		Use:   "set KEY [VALUE]",
		Short: "Append KEY=VALUE; multi-line values are written as a delimited block",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value, err := kv.keyValue(cmd, args)
			if err != nil {
				return err
			}
			f, err := open()
			if err != nil {
				return err
			}
			if err := f.Set(key, value); err != nil {
				return err
			}
			if kv.optimize {
				return f.Optimize()
			}
			return nil
		},
	}
	kv.register(set)

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Truncate the command file",
		Args:  exactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			f, err := open()
			if err != nil {
				return err
			}
			return f.Clear()
		},
	}
	optimize := &cobra.Command{
		Use:   "optimize",
		Short: "Keep only the last value of each key; unparsable files are left alone",
		Args:  exactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			f, err := open()
			if err != nil {
				return err
			}
			return f.Optimize()
		},
	}
	group.AddCommand(set, clearCmd, optimize)
	return group
}

func (a *app) outputCommand() *cobra.Command {
	return a.mapFileCommand("output", "Set step outputs (GITHUB_OUTPUT)", func() (mapFile, error) {
		return a.tk.Outputs()
	})
}

func (a *app) stateCommand() *cobra.Command {
	cmd := a.mapFileCommand("state", "Save state for the post step (GITHUB_STATE)", func() (mapFile, error) {
		return a.tk.States()
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get KEY",
		Short: "Print state saved by an earlier step of this action",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.tk.GetState(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	})
	return cmd
}

// Exports from a CLI process only matter to later steps.
var subsequentOnly = actions.EnvOptions{ScopeSubsequent: true}

func (a *app) envCommand() *cobra.Command {
	return a.mapFileCommand("env", "Export environment variables to later steps (GITHUB_ENV)", func() (mapFile, error) {
		e, err := a.tk.Env(subsequentOnly)
		if err != nil {
			return nil, err
		}
		return envFile{e}, nil
	})
}

type envFile struct{ e *actions.EnvExporter }

func (f envFile) Set(key, value string) error { return f.e.Set(key, value) }
func (f envFile) Clear() error                { return f.e.ClearSubsequent() }
func (f envFile) Optimize() error             { return f.e.OptimizeSubsequent() }

func (a *app) pathCommand() *cobra.Command {
	group := newGroup("path", "Prepend directories to PATH for later steps (GITHUB_PATH)")

	var optimize bool
	add := &cobra.Command{
		Use:   "add DIR...",
		Short: "Append directories to the PATH command file",
		Args:  minArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := a.tk.Path(subsequentOnly)
			if err != nil {
				return err
			}
			if err := p.Add(args...); err != nil {
				return err
			}
			if optimize {
				return p.OptimizeSubsequent()
			}
			return nil
		},
	}
	add.Flags().BoolVar(&optimize, "optimize", false, "compact the command file after writing")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Truncate the PATH command file",
		Args:  exactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			p, err := a.tk.Path(subsequentOnly)
			if err != nil {
				return err
			}
			return p.ClearSubsequent()
		},
	}
	opt := &cobra.Command{
		Use:   "optimize",
		Short: "Trim, drop blank and duplicate lines",
		Args:  exactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			p, err := a.tk.Path(subsequentOnly)
			if err != nil {
				return err
			}
			return p.OptimizeSubsequent()
		},
	}
	group.AddCommand(add, clearCmd, opt)
	return group
}

func (a *app) summaryCommand() *cobra.Command {
	group := newGroup("summary", "Write the job summary (GITHUB_STEP_SUMMARY)")

	var fromStdin bool
	appendCmd := &cobra.Command{
		Use:   "append [TEXT]",
		Short: "Append Markdown to the job summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			switch {
			case fromStdin && len(args) == 0:
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(b)
			case !fromStdin && len(args) == 1:
				text = args[0]
			default:
				return invalidInvocationf("%s: expected TEXT or --stdin", cmd.CommandPath())
			}
			s, err := a.tk.Summary()
			if err != nil {
				return err
			}
			return s.Append(text)
		},
	}
	appendCmd.Flags().BoolVar(&fromStdin, "stdin", false, "read the text from stdin")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Truncate the job summary",
		Args:  exactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			s, err := a.tk.Summary()
			if err != nil {
				return err
			}
			return s.Clear()
		},
	}
	group.AddCommand(appendCmd, clearCmd)
	return group
}

var _ mapFile = (*actions.Outputs)(nil)
var _ mapFile = (*actions.States)(nil)
