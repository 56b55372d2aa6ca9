package workflow

import (
	"errors"

	"go.uber.org/zap"
)

var ErrNotInRunner = errors.New("process is not running inside a runner job")

var (
	runnerArchs = []string{"ARM", "ARM64", "X64", "X86"}
	runnerOSes  = []string{"Linux", "macOS", "Windows"}
)

func (r *Reader) RunnerArch() (string, error) { return r.requireEnum("RUNNER_ARCH", runnerArchs) }
func (r *Reader) RunnerOS() (string, error)   { return r.requireEnum("RUNNER_OS", runnerOSes) }
func (r *Reader) RunnerName() (string, error) { return r.require("RUNNER_NAME") }
func (r *Reader) RunnerTemp() (string, error) { return r.require("RUNNER_TEMP") }
func (r *Reader) Workspace() (string, error)  { return r.require("GITHUB_WORKSPACE") }

// RunnerToolCache reports the tool cache directory, if the runner has one.
func (r *Reader) RunnerToolCache() (string, bool) { return r.lookup("RUNNER_TOOL_CACHE") }

// RunnerDebug reports whether step debug logging is enabled.
func (r *Reader) RunnerDebug() bool {
	v, _ := r.lookup("RUNNER_DEBUG")
	return v == "1"
}

// RunnerCheck selects the optional service variables InRunner also requires.
type RunnerCheck struct {
	Artifact bool
	Cache    bool
	OIDC     bool
}

type runnerVar struct {
	key  string
	want string
	need func(RunnerCheck) bool
}

func always(RunnerCheck) bool { return true }

var runnerVars = []runnerVar{
	{key: "CI", want: "true"},
	{key: "GITHUB_ACTION"},
	{key: "GITHUB_ACTIONS", want: "true"},
	{key: "GITHUB_ACTOR"},
	{key: "GITHUB_ACTOR_ID"},
	{key: "GITHUB_API_URL"},
	{key: "GITHUB_ENV"},
	{key: "GITHUB_EVENT_NAME"},
	{key: "GITHUB_EVENT_PATH"},
	{key: "GITHUB_GRAPHQL_URL"},
	{key: "GITHUB_JOB"},
	{key: "GITHUB_OUTPUT"},
	{key: "GITHUB_PATH"},
	{key: "GITHUB_REF_NAME"},
	{key: "GITHUB_REF_TYPE"},
	{key: "GITHUB_REPOSITORY"},
	{key: "GITHUB_REPOSITORY_ID"},
	{key: "GITHUB_REPOSITORY_OWNER"},
	{key: "GITHUB_REPOSITORY_OWNER_ID"},
	{key: "GITHUB_RETENTION_DAYS"},
	{key: "GITHUB_RUN_ATTEMPT"},
	{key: "GITHUB_RUN_ID"},
	{key: "GITHUB_RUN_NUMBER"},
	{key: "GITHUB_SERVER_URL"},
	{key: "GITHUB_SHA"},
	{key: "GITHUB_STATE"},
	{key: "GITHUB_STEP_SUMMARY"},
	{key: "GITHUB_WORKFLOW"},
	{key: "GITHUB_WORKFLOW_REF"},
	{key: "GITHUB_WORKFLOW_SHA"},
	{key: "GITHUB_WORKSPACE"},
	{key: "RUNNER_ARCH"},
	{key: "RUNNER_NAME"},
	{key: "RUNNER_OS"},
	{key: "RUNNER_TEMP"},
	{key: "RUNNER_TOOL_CACHE"},
	{key: "ACTIONS_RESULTS_URL", need: func(c RunnerCheck) bool { return c.Artifact }},
	{key: "ACTIONS_RUNTIME_TOKEN", need: func(c RunnerCheck) bool { return c.Artifact || c.Cache }},
	{key: "ACTIONS_RUNTIME_URL", need: func(c RunnerCheck) bool { return c.Artifact }},
	{key: "ACTIONS_CACHE_URL", need: func(c RunnerCheck) bool { return c.Cache }},
	{key: "ACTIONS_ID_TOKEN_REQUEST_TOKEN", need: func(c RunnerCheck) bool { return c.OIDC }},
	{key: "ACTIONS_ID_TOKEN_REQUEST_URL", need: func(c RunnerCheck) bool { return c.OIDC }},
}

// MissingRunnerVars lists the variables that are absent or hold an
// unexpected value.
func (r *Reader) MissingRunnerVars(check RunnerCheck) []string {
	var missing []string
	for _, v := range runnerVars {
		need := v.need
		if need == nil {
			need = always
		}
		if !need(check) {
			continue
		}
		got, ok := r.lookup(v.key)
		if !ok || (v.want != "" && got != v.want) {
			missing = append(missing, v.key)
		}
	}
	return missing
}

// InRunner reports whether every runner variable selected by check is set.
// Each miss is logged at Warn.
func (r *Reader) InRunner(check RunnerCheck) bool {
	missing := r.MissingRunnerVars(check)
	for _, key := range missing {
		r.logger.Warn("runner variable missing or unexpected", zap.String("key", key))
	}
	return len(missing) == 0
}

func (r *Reader) ValidateInRunner(check RunnerCheck) error {
	if !r.InRunner(check) {
		return ErrNotInRunner
	}
	return nil
}
