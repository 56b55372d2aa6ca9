package command

import (
	"strings"

	"go.uber.org/zap"

	"actionkit/internal/trace"
)

// LineCommand writes one simple value per line, as used by GITHUB_PATH.
type LineCommand struct {
	file *File
}

func NewLineCommand(f *File) *LineCommand {
	return &LineCommand{file: f}
}

func (c *LineCommand) File() *File { return c.file }

// Append validates every value before writing any of them, then appends the
// distinct values in first-seen order.
func (c *LineCommand) Append(values ...string) error {
	for _, v := range values {
		if err := validateSingleLine("line value", v); err != nil {
			return err
		}
	}
	unique := dedup(values)
	if len(unique) == 0 {
		return nil
	}
	if err := c.file.AppendText(strings.Join(unique, EOL) + EOL); err != nil {
		return err
	}
	c.file.opts.logger.Debug("line command appended",
		zap.String("kind", string(c.file.kind)),
		zap.Int("lines", len(unique)))
	c.file.record(trace.Event{Kind: trace.EventCommandAppended, Keys: unique})
	return nil
}

func (c *LineCommand) Clear() error {
	return c.file.Clear()
}

// Optimize trims every line, drops blanks and duplicates, and rewrites the
// file. It must not run concurrently with other writers of the same file.
func (c *LineCommand) Optimize() error {
	content, err := c.file.ReadAll()
	if err != nil {
		return err
	}
	lines := SplitLines(content)
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	lines = dedup(lines)

	text := ""
	if len(lines) > 0 {
		text = strings.Join(lines, EOL) + EOL
	}
	if text != content {
		if err := c.file.WriteAll(text); err != nil {
			return err
		}
	}
	c.file.opts.logger.Debug("line command optimized",
		zap.String("kind", string(c.file.kind)),
		zap.Int("lines", len(lines)))
	c.file.record(trace.Event{Kind: trace.EventCommandOptimized, Keys: lines})
	return nil
}

// dedup drops empty strings and repeats, keeping first-seen order.
func dedup(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
