// Package errors holds the error type reported for malformed TOML input.
package errors

import "fmt"

// SyntaxError represents a TOML syntax or structure error, such as an
// unterminated string or a key defined twice. It includes the position of
// the error.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}
