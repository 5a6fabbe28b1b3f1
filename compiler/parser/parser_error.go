package parser

import "fmt"

// ParseError is a grammar mismatch. The parser performs no recovery: the
// first ParseError aborts the parse.
type ParseError struct {
	Line    int
	Column  int
	Message string
	Actual  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s (got %s)", e.Line, e.Column, e.Message, e.Actual)
}
