package syntax

import "fmt"

// SyntaxError reports input that does not form a valid command or formula.
// Offset is a byte offset into the input line.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}

func errorAt(tok Token, format string, args ...any) error {
	return &SyntaxError{Offset: tok.Offset, Msg: fmt.Sprintf(format, args...)}
}
