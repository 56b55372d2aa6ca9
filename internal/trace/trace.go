package trace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Journal is the ordered record of what actionkit did to the runner's
// command channels during one process.
//
// Events keep the order they were recorded in: command files are written
// sequentially, so recording order is the order the runner will observe.
//
// Journal is observational only. Nothing in actionkit reads it back to decide
// what to do.
type Journal struct {
	Events []Event
}

// EventKind is the stable discriminator for Event.
//
// The string values are part of the journal's JSON bytes; do not rename.
type EventKind string

const (
	EventCommandAppended        EventKind = "CommandAppended"
	EventCommandCleared         EventKind = "CommandCleared"
	EventCommandOptimized       EventKind = "CommandOptimized"
	EventCommandOptimizeAborted EventKind = "CommandOptimizeAborted"
	EventStdoutDispatched       EventKind = "StdoutDispatched"
)

// Event is a single logical operation on a command channel.
//
// Values are never recorded, only keys: outputs and environment values may
// carry secrets.
type Event struct {
	Kind EventKind

	// Command is the command kind (GITHUB_OUTPUT, ...) or the stdout command name.
	Command string

	// Keys lists the keys or line values touched, in write order.
	Keys []string

	// Reason is a stable reason code for aborted operations (e.g. "UnterminatedBlock").
	Reason string

	// Line is the 1-based line of the file the Reason refers to.
	Line int
}

// Validate checks basic invariants and returns a descriptive error.
func (j *Journal) Validate() error {
	if j == nil {
		return errors.New("journal is nil")
	}
	for i := range j.Events {
		e := j.Events[i]
		if e.Kind == "" {
			return fmt.Errorf("events[%d].kind is required", i)
		}
		if e.Command == "" {
			return fmt.Errorf("events[%d].command is required for kind %q", i, e.Kind)
		}
		if e.Kind == EventCommandOptimizeAborted && e.Reason == "" {
			return fmt.Errorf("events[%d].reason is required for kind %q", i, e.Kind)
		}
	}
	return nil
}

// JSON returns the validated JSON encoding of the journal.
func (j Journal) JSON() ([]byte, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(j)
}

// Hash returns the sha256 hex of the journal's JSON bytes.
func (j Journal) Hash() (string, error) {
	b, err := j.JSON()
	if err != nil {
		return "", err
	}
	return ComputeHash(b), nil
}

// MarshalJSON fixes field order.
func (j Journal) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\"events\":[")
	for i := range j.Events {
		if i > 0 {
			buf.WriteByte(',')
		}
		eb, err := json.Marshal(j.Events[i])
		if err != nil {
			return nil, err
		}
		buf.Write(eb)
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

// MarshalJSON fixes field order and omits empty optional fields.
func (e Event) MarshalJSON() ([]byte, error) {
	if e.Kind == "" {
		return nil, errors.New("kind is required")
	}
	var buf bytes.Buffer
	buf.WriteByte('{')

	// kind (always first)
	buf.WriteString("\"kind\":")
	kb, _ := json.Marshal(string(e.Kind))
	buf.Write(kb)

	if e.Command != "" {
		buf.WriteString(",\"command\":")
		cb, _ := json.Marshal(e.Command)
		buf.Write(cb)
	}

	if len(e.Keys) > 0 {
		buf.WriteString(",\"keys\":[")
		for i := range e.Keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, _ := json.Marshal(e.Keys[i])
			buf.Write(kb)
		}
		buf.WriteByte(']')
	}

	if e.Reason != "" {
		buf.WriteString(",\"reason\":")
		rb, _ := json.Marshal(e.Reason)
		buf.Write(rb)
	}

	if e.Line > 0 {
		buf.WriteString(fmt.Sprintf(",\"line\":%d", e.Line))
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
