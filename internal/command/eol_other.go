//go:build !windows

package command

// EOL is the line terminator written to command files.
const EOL = "\n"
