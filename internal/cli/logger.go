package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger logs JSON to w, or human-readable lines when w is a terminal.
// Stdout is never used: it carries the runner's command stream.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	config := zap.NewProductionConfig()
	encoder := zapcore.NewJSONEncoder(config.EncoderConfig)
	if isTerminal(w) {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		encoder = zapcore.NewConsoleEncoder(config.EncoderConfig)
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), config.Level))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
