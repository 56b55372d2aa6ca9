package command

import (
	"errors"

	"go.uber.org/zap"

	"actionkit/internal/trace"
)

// MapCommand writes key/value entries, as used by GITHUB_OUTPUT, GITHUB_STATE
// and GITHUB_ENV.
type MapCommand struct {
	file *File
}

func NewMapCommand(f *File) *MapCommand {
	return &MapCommand{file: f}
}

func (c *MapCommand) File() *File { return c.file }

// Append encodes p and appends it. An empty p performs no I/O.
func (c *MapCommand) Append(p *Pairs) error {
	if p.Len() == 0 {
		return nil
	}
	text, err := EncodePairs(p, c.file.opts.delimiter)
	if err != nil {
		return err
	}
	if err := c.file.AppendText(text); err != nil {
		return err
	}
	keys := p.Keys()
	c.file.opts.logger.Debug("map command appended",
		zap.String("kind", string(c.file.kind)),
		zap.Strings("keys", keys))
	c.file.record(trace.Event{Kind: trace.EventCommandAppended, Keys: keys})
	return nil
}

func (c *MapCommand) Set(key, value string) error {
	return c.Append(PairsOf(key, value))
}

func (c *MapCommand) Clear() error {
	return c.file.Clear()
}

// Optimize collapses repeated keys to their last value and rewrites the file.
// Content that cannot be parsed is left untouched and no error is returned.
// Optimize must not run concurrently with other writers of the same file.
func (c *MapCommand) Optimize() error {
	content, err := c.file.ReadAll()
	if err != nil {
		return err
	}
	pairs, delims, err := decodeDocument(content)
	if err != nil {
		var mce *MalformedContentError
		if errors.As(err, &mce) {
			c.file.opts.logger.Warn("command file not optimized: malformed content",
				zap.String("kind", string(c.file.kind)),
				zap.String("path", c.file.path),
				zap.Int("line", mce.Line),
				zap.String("reason", mce.Reason))
			c.file.record(trace.Event{
				Kind:   trace.EventCommandOptimizeAborted,
				Reason: mce.Reason,
				Line:   mce.Line,
			})
			return nil
		}
		return err
	}

	// Reusing the delimiters already in the file keeps a second Optimize from
	// rewriting anything.
	gen := c.file.opts.delimiter
	text, err := encodePairs(pairs, func(key, value string) (string, error) {
		return pickDelimiter(key, value, delims[key], gen)
	})
	if err != nil {
		return err
	}
	if text != content {
		if err := c.file.WriteAll(text); err != nil {
			return err
		}
	}
	keys := pairs.Keys()
	c.file.opts.logger.Debug("map command optimized",
		zap.String("kind", string(c.file.kind)),
		zap.Strings("keys", keys))
	c.file.record(trace.Event{Kind: trace.EventCommandOptimized, Keys: keys})
	return nil
}
