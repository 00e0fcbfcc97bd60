package symdiff

import (
	"errors"
	"fmt"
)

var (
	// ErrNilTree is returned when a pass is asked to work on an absent node.
	ErrNilTree = errors.New("symdiff: nil tree")
	// ErrMalformedTree marks a node whose children do not match its kind.
	ErrMalformedTree = errors.New("symdiff: malformed tree")
)

// LexError reports a character outside the supported charset.
type LexError struct {
	Pos  int
	Char rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d: undefined character %q", e.Pos, e.Char)
}

// ParseError reports an empty or unbalanced range, a malformed function call
// or a missing comma. Pos is the offset of the first token of the range.
type ParseError struct {
	Pos    int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Reason)
}

func parseErr(pos int, format string, args ...interface{}) error {
	return &ParseError{Pos: pos, Reason: fmt.Sprintf(format, args...)}
}
