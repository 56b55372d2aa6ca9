package command

import "strings"

// IsSimple reports whether v can be written inline: it contains neither a
// carriage return nor a line feed.
func IsSimple(v string) bool {
	return !strings.ContainsAny(v, "\r\n")
}

// Replacers scan the input once, so the "%" introduced by one substitution is
// never escaped again.
var (
	dataEscaper = strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
	)
	propertyEscaper = strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
		":", "%3A",
		",", "%2C",
	)
)

// EscapeData escapes the message part of a stdout command.
func EscapeData(v string) string {
	return dataEscaper.Replace(v)
}

// EscapeProperty escapes a property value of a stdout command.
func EscapeProperty(v string) string {
	return propertyEscaper.Replace(v)
}

// NormalizeEOL converts LF and CRLF line endings to EOL. A lone CR is not a
// line ending and is left alone.
func NormalizeEOL(v string) string {
	v = strings.ReplaceAll(v, "\r\n", "\n")
	if EOL != "\n" {
		v = strings.ReplaceAll(v, "\n", EOL)
	}
	return v
}

// SplitLines splits content on LF or CRLF.
func SplitLines(content string) []string {
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

func validateSingleLine(what, v string) error {
	if v == "" {
		return invalidf("%s must not be empty", what)
	}
	if !IsSimple(v) {
		return invalidf("%s %q must be a single line", what, v)
	}
	return nil
}
