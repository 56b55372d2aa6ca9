package command

import (
	"strings"

	"go.uber.org/zap"

	"actionkit/internal/trace"
)

// RawCommand appends free-form text, as used by GITHUB_STEP_SUMMARY.
type RawCommand struct {
	file *File
}

func NewRawCommand(f *File) *RawCommand {
	return &RawCommand{file: f}
}

func (c *RawCommand) File() *File { return c.file }

// Append normalizes line endings and terminates text with EOL.
func (c *RawCommand) Append(text string) error {
	text = NormalizeEOL(text)
	if !strings.HasSuffix(text, EOL) {
		text += EOL
	}
	if err := c.file.AppendText(text); err != nil {
		return err
	}
	c.file.opts.logger.Debug("raw command appended",
		zap.String("kind", string(c.file.kind)),
		zap.Int("bytes", len(text)))
	c.file.record(trace.Event{Kind: trace.EventCommandAppended})
	return nil
}

func (c *RawCommand) Clear() error {
	return c.file.Clear()
}
