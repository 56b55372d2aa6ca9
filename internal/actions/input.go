package actions

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"actionkit/internal/workflow"
)

type InputOptions struct {
	// Required turns an absent or empty input into a *workflow.LookupError.
	Required bool
}

func inputVar(key string) (string, error) {
	if err := validateSingleLine("input key", key); err != nil {
		return "", err
	}
	return envName("INPUT_", key), nil
}

// InputRaw reports the input exactly as the runner passed it.
func (t *Toolkit) InputRaw(key string) (string, bool, error) {
	name, err := inputVar(key)
	if err != nil {
		return "", false, err
	}
	v, ok := t.env.Lookup(name)
	return v, ok, nil
}

func (t *Toolkit) Input(key string, opts InputOptions) (string, error) {
	v, ok, err := t.InputRaw(key)
	if err != nil {
		return "", err
	}
	if !ok && opts.Required {
		return "", &workflow.LookupError{Key: envName("INPUT_", key)}
	}
	return v, nil
}

// nonEmptyInput returns "" for an absent or empty optional input.
func (t *Toolkit) nonEmptyInput(key string, opts InputOptions) (string, error) {
	v, err := t.Input(key, opts)
	if err != nil {
		return "", err
	}
	if v == "" && opts.Required {
		return "", &workflow.LookupError{Key: envName("INPUT_", key)}
	}
	return v, nil
}

// InputBool accepts true, True, TRUE, false, False and FALSE. An empty
// optional input is false.
func (t *Toolkit) InputBool(key string, opts InputOptions) (bool, error) {
	v, err := t.nonEmptyInput(key, opts)
	if err != nil || v == "" {
		return false, err
	}
	switch v {
	case "true", "True", "TRUE":
		return true, nil
	case "false", "False", "FALSE":
		return false, nil
	}
	return false, invalidf("input %q: %q is not a boolean", key, v)
}

// InputInt parses an arbitrary-precision integer. A trailing "n" and the
// 0x, 0o and 0b prefixes are accepted. An empty optional input is zero.
func (t *Toolkit) InputInt(key string, opts InputOptions) (*big.Int, error) {
	v, err := t.nonEmptyInput(key, opts)
	if err != nil {
		return nil, err
	}
	if v == "" {
		return new(big.Int), nil
	}
	s := strings.TrimSuffix(strings.TrimSpace(v), "n")
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, invalidf("input %q: %q is not an integer", key, v)
	}
	return n, nil
}

// InputNumber parses a float64. An empty optional input is zero.
func (t *Toolkit) InputNumber(key string, opts InputOptions) (float64, error) {
	v, err := t.nonEmptyInput(key, opts)
	if err != nil || v == "" {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, invalidf("input %q: %q is not a number", key, v)
	}
	return f, nil
}

var regexpLiteral = regexp.MustCompile(`(?s)^/(.+)/([a-z]*)$`)

// InputRegexp parses a "/expr/flags" literal. Flags i, m and s map to Go
// inline flags; g, u, v, y and d only matter to stateful matchers and are
// ignored. An empty optional input matches anything.
func (t *Toolkit) InputRegexp(key string, opts InputOptions) (*regexp.Regexp, error) {
	v, err := t.nonEmptyInput(key, opts)
	if err != nil {
		return nil, err
	}
	if v == "" {
		return regexp.MustCompile(`(?m).*`), nil
	}
	m := regexpLiteral.FindStringSubmatch(v)
	if m == nil {
		return nil, invalidf("input %q: %q is not a /expression/flags literal", key, v)
	}
	var inline []rune
	for _, f := range m[2] {
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(string(inline), f) {
				inline = append(inline, f)
			}
		case 'g', 'u', 'v', 'y', 'd':
		default:
			return nil, invalidf("input %q: unknown regular expression flag %q", key, f)
		}
	}
	expr := m[1]
	if len(inline) > 0 {
		expr = "(?" + string(inline) + ")" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, invalidf("input %q: %v", key, err)
	}
	return re, nil
}
