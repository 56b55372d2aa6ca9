package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile emulates a runner locally: a fixed set of variables, typically the
// file command paths, layered over the real process environment.
//
//	env:
//	  GITHUB_OUTPUT: out.txt
//	  GITHUB_STATE: /tmp/state
//
// Relative paths for the file command keys are resolved against the
// directory holding the profile.
type Profile struct {
	Env map[string]string `yaml:"env"`
}

var fileCommandKeys = map[string]bool{
	KeyEnv:         true,
	KeyOutput:      true,
	KeyPath:        true,
	KeyState:       true,
	KeyStepSummary: true,
}

// LoadProfile reads and validates a YAML runner profile.
func LoadProfile(path string) (MapEnviron, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("profile path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()

	var p Profile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return MapEnviron{}, nil
		}
		return nil, fmt.Errorf("decode profile %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve profile path: %w", err)
	}
	base := filepath.Dir(abs)

	out := make(MapEnviron, len(p.Env))
	for k, v := range p.Env {
		if strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("profile %s: empty variable name", path)
		}
		if fileCommandKeys[k] && v != "" && !filepath.IsAbs(v) {
			v = filepath.Join(base, filepath.Clean(v))
		}
		out[k] = v
	}
	return out, nil
}
