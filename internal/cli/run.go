package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"actionkit/internal/actions"
	"actionkit/internal/config"
	"actionkit/internal/trace"
)

// Streams are the process handles a run uses. Nil fields default to the
// real process: os.Stdin, os.Stdout, os.Stderr and the OS environment.
type Streams struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Environ config.Environ
}

func (s Streams) withDefaults() Streams {
	if s.Stdin == nil {
		s.Stdin = os.Stdin
	}
	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}
	if s.Stderr == nil {
		s.Stderr = os.Stderr
	}
	if s.Environ == nil {
		s.Environ = config.OSEnviron{}
	}
	return s
}

type app struct {
	streams Streams

	profile   string
	tracePath string
	verbose   bool

	logger   *zap.Logger
	recorder *trace.Recorder
	tk       *actions.Toolkit
}

// Run is a high-level CLI entrypoint suitable for black-box tests.
// It accepts the argument slice (excluding argv[0]) and returns the semantic
// exit code plus any error.
func Run(ctx context.Context, args []string, streams Streams) (CLIResult, error) {
	a := &app{
		streams:  streams.withDefaults(),
		logger:   zap.NewNop(),
		recorder: trace.NewRecorder(),
	}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.streams.Stdin)
	root.SetOut(a.streams.Stdout)
	root.SetErr(a.streams.Stderr)

	err := root.ExecuteContext(ctx)
	if ferr := a.finish(); err == nil {
		err = ferr
	}
	if err != nil {
		return CLIResult{ExitCode: ExitCode(err)}, err
	}
	return CLIResult{ExitCode: ExitSuccess}, nil
}

// setup runs before every subcommand, once flags are parsed.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.logger = newLogger(a.streams.Stderr, a.verbose)

	env := a.streams.Environ
	if a.profile != "" {
		overlay, err := config.LoadProfile(a.profile)
		if err != nil {
			return configErrorf("%v", err)
		}
		a.logger.Debug("runner profile loaded",
			zap.String("path", a.profile),
			zap.Strings("keys", overlay.Keys()))
		env = config.LayeredEnviron{Overlays: config.Layered{overlay}, Base: env}
	}

	a.tk = actions.New(
		actions.WithEnviron(env),
		actions.WithStdout(a.streams.Stdout),
		actions.WithLogger(a.logger),
		actions.WithSink(a.recorder),
	)
	return nil
}

func (a *app) finish() error {
	defer func() { _ = a.logger.Sync() }()
	w, err := newTraceWriter(a.tracePath)
	if err != nil {
		return err
	}
	return w.Finalize(a.recorder.Journal())
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "actionkit",
		Short: "Talk to a CI runner through its command files and stdout commands",
		Long: `actionkit writes step outputs, saved state, environment and PATH exports
and the job summary to the files a runner names in GITHUB_OUTPUT, GITHUB_STATE,
GITHUB_ENV, GITHUB_PATH and GITHUB_STEP_SUMMARY, and prints the runner's
"::command::" lines for logging, masking and annotations.

Use --profile to emulate a runner locally from a YAML file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		Args:              cobra.ArbitraryArgs,
		RunE:              groupRunE,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return invalidInvocationf("%v", err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.profile, "profile", "", "YAML runner profile layered over the process environment")
	flags.StringVar(&a.tracePath, "trace", "", "write the command journal as JSON to this file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level to stderr")

	root.AddCommand(
		a.outputCommand(),
		a.stateCommand(),
		a.envCommand(),
		a.pathCommand(),
		a.summaryCommand(),
		a.annotateCommand(),
		a.debugCommand(),
		a.maskCommand(),
		a.groupCommand(),
		a.endGroupCommand(),
		a.matcherCommand(),
		a.echoCommand(),
		a.inputCommand(),
		a.contextCommand(),
		a.runnerCommand(),
	)
	return root
}

// groupRunE makes command groups reject unknown subcommands instead of
// printing help and succeeding.
func groupRunE(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return invalidInvocationf("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return cmd.Help()
}

func newGroup(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE:  groupRunE,
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return invalidInvocationf("%s: expected %d argument(s), got %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return invalidInvocationf("%s: expected at least %d argument(s), got %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}
