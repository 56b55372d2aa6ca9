package cli

import (
	"github.com/spf13/cobra"

	"actionkit/internal/actions"
)

func (a *app) annotateCommand() *cobra.Command {
	var props actions.AnnotationProperties
	cmd := &cobra.Command{
		Use:   "annotate TYPE MESSAGE",
		Short: "Emit an error, warning or notice annotation",
		Long: `Emit an annotation. TYPE is error, warning (warn) or notice (note).
A MESSAGE longer than 4096 characters is printed to the log and the annotation
carries --summary instead, when one is given.`,
		Args: exactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.tk.Annotate(args[0], args[1], props)
		},
	}
	f := cmd.Flags()
	f.StringVar(&props.File, "file", "", "file the annotation refers to")
	f.IntVar(&props.Line, "line", 0, "start line (1-based)")
	f.IntVar(&props.Column, "col", 0, "start column (1-based)")
	f.IntVar(&props.EndLine, "end-line", 0, "end line")
	f.IntVar(&props.EndColumn, "end-col", 0, "end column")
	f.StringVar(&props.Title, "title", "", "annotation title")
	f.StringVar(&props.Summary, "summary", "", "short text used instead of an overlong message")
	return cmd
}

func (a *app) debugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "debug MESSAGE...",
		Short: "Print debug messages, shown when step debug logging is on",
		Args:  minArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.tk.Debug(args...)
		},
	}
}

func (a *app) maskCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mask VALUE...",
		Short: "Mask values in the log",
		Args:  minArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.tk.AddMask(args...)
		},
	}
}

func (a *app) groupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "group [TITLE]",
		Short: "Start a collapsible log group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			title := ""
			if len(args) == 1 {
				title = args[0]
			}
			return a.tk.Group(title)
		},
	}
}

func (a *app) endGroupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "endgroup",
		Short: "End the current log group",
		Args:  exactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			return a.tk.EndGroup()
		},
	}
}

func (a *app) matcherCommand() *cobra.Command {
	group := newGroup("matcher", "Add or remove problem matchers")
	group.AddCommand(
		&cobra.Command{
			Use:   "add FILE...",
			Short: "Register problem matcher files",
			Args:  minArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return a.tk.AddMatcher(args...)
			},
		},
		&cobra.Command{
			Use:   "remove OWNER...",
			Short: "Remove problem matchers by owner",
			Args:  minArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return a.tk.RemoveMatcher(args...)
			},
		},
	)
	return group
}

func (a *app) echoCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "echo on|off",
		Short:     "Toggle echoing of stdout commands in the log",
		Args:      exactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "on":
				return a.tk.EchoCommands(true)
			case "off":
				return a.tk.EchoCommands(false)
			}
			return invalidInvocationf("echo: expected on or off, got %q", args[0])
		},
	}
}
