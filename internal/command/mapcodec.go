package command

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// maxDelimiterAttempts bounds the regenerate-and-check loop so a broken
// generator fails instead of spinning.
const maxDelimiterAttempts = 64

// NewDelimiter returns a random heredoc delimiter without hyphens.
func NewDelimiter() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// EncodePairs renders p in the runner's key/value file format. Simple values
// are written as key=value; values with line breaks use a key<<DELIM block
// whose delimiter occurs in neither key nor value. A nil newDelimiter uses
// NewDelimiter.
//
// Keys are written as given; callers validate them.
func EncodePairs(p *Pairs, newDelimiter func() string) (string, error) {
	if newDelimiter == nil {
		newDelimiter = NewDelimiter
	}
	return encodePairs(p, func(key, value string) (string, error) {
		return pickDelimiter(key, value, "", newDelimiter)
	})
}

func encodePairs(p *Pairs, delimiterFor func(key, value string) (string, error)) (string, error) {
	if p.Len() == 0 {
		return "", nil
	}
	var b strings.Builder
	var err error
	p.Range(func(key, value string) bool {
		if IsSimple(value) {
			b.WriteString(key)
			b.WriteString("=")
			b.WriteString(value)
			b.WriteString(EOL)
			return true
		}
		var delim string
		delim, err = delimiterFor(key, value)
		if err != nil {
			return false
		}
		b.WriteString(key)
		b.WriteString("<<")
		b.WriteString(delim)
		b.WriteString(EOL)
		b.WriteString(NormalizeEOL(value))
		b.WriteString(EOL)
		b.WriteString(delim)
		b.WriteString(EOL)
		return true
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// pickDelimiter returns preferred when it is usable for key and value, and
// otherwise draws from gen until a usable token appears.
func pickDelimiter(key, value, preferred string, gen func() string) (string, error) {
	if usableDelimiter(key, value, preferred) {
		return preferred, nil
	}
	for i := 0; i < maxDelimiterAttempts; i++ {
		if d := gen(); usableDelimiter(key, value, d) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w for key %q", ErrNoDelimiter, key)
}

func usableDelimiter(key, value, d string) bool {
	return d != "" &&
		IsSimple(d) &&
		strings.TrimSpace(d) == d &&
		!strings.Contains(d, "<<") &&
		!strings.Contains(key, d) &&
		!strings.Contains(value, d)
}

// DecodePairs parses a key/value command file. Each non-blank line is either
// a direct entry or opens a heredoc block, whichever of "=" and "<<" occurs
// first on the line. Direct entries split at the first "="; block headers
// split at the last "<<". A repeated key keeps the position of its first
// occurrence and the value of its last.
//
// Errors wrap ErrMalformedContent.
func DecodePairs(content string) (*Pairs, error) {
	p, _, err := decodeDocument(content)
	return p, err
}

// decodeDocument also reports the delimiter last used for each block key.
func decodeDocument(content string) (*Pairs, map[string]string, error) {
	lines := SplitLines(content)
	out := NewPairs()
	delims := make(map[string]string)

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		eq := strings.Index(line, "=")
		hd := strings.Index(line, "<<")

		switch {
		case hd >= 0 && (eq < 0 || hd < eq):
			last := strings.LastIndex(line, "<<")
			key, delim := line[:last], line[last+2:]
			if key == "" {
				return nil, nil, malformed(i+1, ReasonEmptyKey)
			}
			if delim == "" {
				return nil, nil, malformed(i+1, ReasonEmptyDelimiter)
			}
			start := i + 1
			end := start
			for end < len(lines) && lines[end] != delim {
				end++
			}
			if end >= len(lines) {
				return nil, nil, malformed(i+1, ReasonUnterminatedBlock)
			}
			out.Set(key, strings.Join(lines[start:end], "\n"))
			delims[key] = delim
			i = end
		case eq >= 0:
			key := line[:eq]
			if key == "" {
				return nil, nil, malformed(i+1, ReasonEmptyKey)
			}
			out.Set(key, line[eq+1:])
			delete(delims, key)
		default:
			return nil, nil, malformed(i+1, ReasonUnrecognizedLine)
		}
	}
	return out, delims, nil
}
