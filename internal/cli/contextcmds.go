package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"actionkit/internal/actions"
	"actionkit/internal/workflow"
)

func (a *app) inputCommand() *cobra.Command {
	group := newGroup("input", "Read action inputs (INPUT_*)")

	var (
		required bool
		kind     string
	)
	get := &cobra.Command{
		Use:   "get NAME",
		Short: "Print an input, optionally parsed as bool, int, number or regexp",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := actions.InputOptions{Required: required}
			var (
				v   any
				err error
			)
			switch kind {
			case "string":
				v, err = a.tk.Input(args[0], opts)
			case "bool":
				v, err = a.tk.InputBool(args[0], opts)
			case "int":
				v, err = a.tk.InputInt(args[0], opts)
			case "number":
				v, err = a.tk.InputNumber(args[0], opts)
			case "regexp":
				v, err = a.tk.InputRegexp(args[0], opts)
			default:
				return invalidInvocationf("--type %q: expected string|bool|int|number|regexp", kind)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
	get.Flags().BoolVar(&required, "required", false, "fail when the input is not set")
	get.Flags().StringVar(&kind, "type", "string", "string|bool|int|number|regexp")
	group.AddCommand(get)
	return group
}

// runContext is the YAML shape printed by "actionkit context". Fields the
// environment does not provide are left out.
type runContext struct {
	Workflow   string              `yaml:"workflow,omitempty"`
	Event      string              `yaml:"event,omitempty"`
	Repository string              `yaml:"repository,omitempty"`
	Actor      string              `yaml:"actor,omitempty"`
	SHA        string              `yaml:"sha,omitempty"`
	Job        string              `yaml:"job,omitempty"`
	RunID      int64               `yaml:"run_id,omitempty"`
	RunNumber  int64               `yaml:"run_number,omitempty"`
	RunAttempt int64               `yaml:"run_attempt,omitempty"`
	RunURL     string              `yaml:"run_url,omitempty"`
	ServerURL  string              `yaml:"server_url,omitempty"`
	APIURL     string              `yaml:"api_url,omitempty"`
	Ref        *workflow.Reference `yaml:"ref,omitempty"`
	Runner     *runnerContext      `yaml:"runner,omitempty"`
}

type runnerContext struct {
	Name  string `yaml:"name,omitempty"`
	OS    string `yaml:"os,omitempty"`
	Arch  string `yaml:"arch,omitempty"`
	Temp  string `yaml:"temp,omitempty"`
	Debug bool   `yaml:"debug,omitempty"`
}

func (a *app) contextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Print the workflow run context as YAML",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := yaml.Marshal(a.collectContext())
			if err != nil {
				return fmt.Errorf("encode context: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}

func (a *app) collectContext() runContext {
	r := a.tk.Context()
	var c runContext

	// A field that cannot be read is skipped; the reason is logged.
	str := func(name string, get func() (string, error)) string {
		v, err := get()
		if err != nil {
			a.logger.Debug("context field unavailable", zap.String("field", name), zap.Error(err))
		}
		return v
	}
	num := func(name string, get func() (int64, error)) int64 {
		v, err := get()
		if err != nil {
			a.logger.Debug("context field unavailable", zap.String("field", name), zap.Error(err))
		}
		return v
	}

	c.Workflow = str("workflow", r.WorkflowName)
	c.Event = str("event", func() (string, error) {
		ev, err := r.EventName()
		return string(ev), err
	})
	c.Repository = str("repository", r.Repository)
	c.Actor = str("actor", r.ActorName)
	c.SHA = str("sha", r.CommitSHA)
	c.Job = str("job", r.JobID)
	c.RunID = num("run_id", r.RunID)
	c.RunNumber = num("run_number", r.RunNumber)
	c.RunAttempt = num("run_attempt", r.RunAttempt)
	if u, err := r.RunURL(); err == nil {
		c.RunURL = u.String()
	}
	if u, err := r.ServerURL(); err == nil {
		c.ServerURL = u.String()
	}
	if u, err := r.APIURL(); err == nil {
		c.APIURL = u.String()
	}
	if ref, err := r.Reference(); err == nil {
		c.Ref = &ref
	}

	rc := runnerContext{
		Name:  str("runner.name", r.RunnerName),
		OS:    str("runner.os", r.RunnerOS),
		Arch:  str("runner.arch", r.RunnerArch),
		Temp:  str("runner.temp", r.RunnerTemp),
		Debug: r.RunnerDebug(),
	}
	if rc != (runnerContext{}) {
		c.Runner = &rc
	}
	return c
}

func (a *app) runnerCommand() *cobra.Command {
	group := newGroup("runner", "Inspect the runner environment")

	var check workflow.RunnerCheck
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Exit 1 unless the runner variables are all present",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			missing := a.tk.Context().MissingRunnerVars(check)
			if len(missing) == 0 {
				return nil
			}
			for _, key := range missing {
				fmt.Fprintf(cmd.ErrOrStderr(), "missing or unexpected: %s\n", key)
			}
			return &InvocationError{
				ExitCode: ExitFailure,
				Message:  fmt.Sprintf("%s (%d variables)", workflow.ErrNotInRunner, len(missing)),
			}
		},
	}
	f := checkCmd.Flags()
	f.BoolVar(&check.Artifact, "artifact", false, "also require the artifact service variables")
	f.BoolVar(&check.Cache, "cache", false, "also require the cache service variables")
	f.BoolVar(&check.OIDC, "oidc", false, "also require the OIDC token variables")
	group.AddCommand(checkCmd)
	return group
}
