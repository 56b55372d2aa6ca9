// Package workflow reads the typed context a runner exposes to a job through
// its environment: URLs, run identifiers, the triggering event, the checked
// out reference and facts about the runner itself.
package workflow

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"actionkit/internal/config"
)

type Option func(*Reader)

func WithLogger(l *zap.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// Reader parses well-known runner variables from a config.Source.
type Reader struct {
	src    config.Source
	logger *zap.Logger
}

func NewReader(src config.Source, opts ...Option) *Reader {
	r := &Reader{src: src, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Reader) lookup(key string) (string, bool) {
	if r.src == nil {
		return "", false
	}
	return r.src.Lookup(key)
}

func (r *Reader) require(key string) (string, error) {
	v, ok := r.lookup(key)
	if !ok {
		return "", &LookupError{Key: key}
	}
	return v, nil
}

func (r *Reader) requireInt(key string) (int64, error) {
	v, err := r.require(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, &FormatError{Key: key, Value: v, Err: err}
	}
	return n, nil
}

func (r *Reader) requireEnum(key string, allowed []string) (string, error) {
	v, err := r.require(key)
	if err != nil {
		return "", err
	}
	if !slices.Contains(allowed, v) {
		return "", &EnumError{Key: key, Value: v, Allowed: allowed}
	}
	return v, nil
}

func (r *Reader) urlOr(key, fallback string) (*url.URL, error) {
	v, ok := r.lookup(key)
	if !ok {
		v = fallback
	}
	u, err := url.Parse(v)
	if err != nil {
		return nil, &FormatError{Key: key, Value: v, Err: err}
	}
	if !u.IsAbs() {
		return nil, &FormatError{Key: key, Value: v, Err: fmt.Errorf("not an absolute URL")}
	}
	return u, nil
}

func (r *Reader) APIURL() (*url.URL, error) {
	return r.urlOr("GITHUB_API_URL", "https://api.github.com")
}

func (r *Reader) GraphQLURL() (*url.URL, error) {
	return r.urlOr("GITHUB_GRAPHQL_URL", "https://api.github.com/graphql")
}

func (r *Reader) ServerURL() (*url.URL, error) {
	return r.urlOr("GITHUB_SERVER_URL", "https://github.com")
}

func (r *Reader) WorkflowName() (string, error) { return r.require("GITHUB_WORKFLOW") }
func (r *Reader) WorkflowRef() (string, error)  { return r.require("GITHUB_WORKFLOW_REF") }
func (r *Reader) WorkflowSHA() (string, error)  { return r.require("GITHUB_WORKFLOW_SHA") }
func (r *Reader) ActionID() (string, error)     { return r.require("GITHUB_ACTION") }
func (r *Reader) ActorName() (string, error)    { return r.require("GITHUB_ACTOR") }
func (r *Reader) CommitSHA() (string, error)    { return r.require("GITHUB_SHA") }
func (r *Reader) JobID() (string, error)        { return r.require("GITHUB_JOB") }
func (r *Reader) Repository() (string, error)   { return r.require("GITHUB_REPOSITORY") }

func (r *Reader) ActorID() (int64, error)    { return r.requireInt("GITHUB_ACTOR_ID") }
func (r *Reader) RunID() (int64, error)      { return r.requireInt("GITHUB_RUN_ID") }
func (r *Reader) RunNumber() (int64, error)  { return r.requireInt("GITHUB_RUN_NUMBER") }
func (r *Reader) RunAttempt() (int64, error) { return r.requireInt("GITHUB_RUN_ATTEMPT") }

// RunURL is the web page of the current workflow run.
func (r *Reader) RunURL() (*url.URL, error) {
	repo, err := r.Repository()
	if err != nil {
		return nil, err
	}
	id, err := r.RunID()
	if err != nil {
		return nil, err
	}
	server, err := r.ServerURL()
	if err != nil {
		return nil, err
	}
	return server.JoinPath(repo, "actions", "runs", strconv.FormatInt(id, 10)), nil
}

// EventPayload decodes the webhook payload of the triggering event.
func (r *Reader) EventPayload() (map[string]any, error) {
	path, err := r.require("GITHUB_EVENT_PATH")
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(path) {
		return nil, &FormatError{Key: "GITHUB_EVENT_PATH", Value: path, Err: fmt.Errorf("not an absolute path")}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event payload %s: %w", path, err)
	}
	var payload map[string]any
	if err := json.Unmarshal(b, &payload); err != nil {
		return nil, fmt.Errorf("decode event payload %s: %w", path, err)
	}
	return payload, nil
}
