package actions

import (
	"regexp"
	"strings"

	"actionkit/internal/command"
)

// validateKey accepts keys the runner can read back unambiguously from a
// key/value command file.
func validateKey(key string) error {
	switch {
	case key == "":
		return invalidf("key must not be empty")
	case !command.IsSimple(key):
		return invalidf("key %q must be a single line", key)
	case strings.Contains(key, "="):
		return invalidf("key %q must not contain '='", key)
	case strings.Contains(key, "<<"):
		return invalidf("key %q must not contain '<<'", key)
	}
	return nil
}

func validatePairs(p *command.Pairs, check func(string) error) error {
	var err error
	p.Range(func(key, _ string) bool {
		err = check(key)
		return err == nil
	})
	return err
}

var reservedEnvKey = regexp.MustCompile(`(?i)^(?:CI|PATH)$|^(?:ACTIONS|GITHUB|RUNNER)_`)

// validateEnvKey also refuses variables the runner manages itself.
func validateEnvKey(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if reservedEnvKey.MatchString(key) {
		return invalidf("environment variable %q is managed by the runner", key)
	}
	return nil
}

func validateSingleLine(what, v string) error {
	if v == "" {
		return invalidf("%s must not be empty", what)
	}
	if !command.IsSimple(v) {
		return invalidf("%s %q must be a single line", what, v)
	}
	return nil
}

// envName maps an input or state name to its variable: spaces become
// underscores and the result is upper-cased.
func envName(prefix, name string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}
