package errors

import (
	"fmt"
	"strings"
)

// Format renders the error with source context for terminal output.
// Syntax errors include the offending line with a caret under column 1;
// other kinds render the header and message only. Color is applied by the
// CLI layer, not here, so the core stays terminal-agnostic.
func (e *Error) Format(source string) string {
	var sb strings.Builder

	if e.Filename != "" && e.Line > 0 {
		sb.WriteString(fmt.Sprintf("%s error in %s:%d\n", e.Kind, e.Filename, e.Line))
	} else if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("%s error at line %d\n", e.Kind, e.Line))
	} else {
		sb.WriteString(fmt.Sprintf("%s error\n", e.Kind))
	}

	if line := sourceLine(source, e.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)))
		sb.WriteString("^\n")
	}

	sb.WriteString(e.Message)
	return sb.String()
}

// sourceLine extracts the 1-indexed line from source, or "" when out of range.
func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
