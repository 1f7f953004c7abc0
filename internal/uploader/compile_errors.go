package uploader

import (
	"strconv"
	"strings"
)

// CompileError is one parsed compiler finding, suitable for highlighting
// against the sketch's line mapping.
type CompileError struct {
	File    string
	Line    int
	Column  int
	Message string
}

// ParseCompileErrors extracts `file:line:column: message` errors from
// compiler output. Lines that do not match the shape, or whose message does
// not look like an error, are ignored.
func ParseCompileErrors(output string) []CompileError {
	var errors []CompileError
	for _, line := range strings.Split(output, "\n") {
		parts := strings.SplitN(line, ":", 4)
		if len(parts) < 4 {
			continue
		}
		lineNo, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		column, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			continue
		}
		message := strings.TrimSpace(parts[3])
		if !strings.Contains(strings.ToLower(message), "error") {
			continue
		}
		errors = append(errors, CompileError{
			File:    parts[0],
			Line:    lineNo,
			Column:  column,
			Message: message,
		})
	}
	return errors
}
