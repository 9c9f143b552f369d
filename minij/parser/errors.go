package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/minij/minij/grammar"
	"github.com/dhamidi/minij/minij/lex"
)

type ErrorKind int

const (
	// TerminalMismatch: the expected terminal differs from the lookahead.
	TerminalMismatch ErrorKind = iota
	// NoProduction: the table has no entry for the non-terminal and lookahead.
	NoProduction
	// ExtraInput: the derivation ended before the tokens did.
	ExtraInput
)

var errorKindNames = map[ErrorKind]string{
	TerminalMismatch: "terminal mismatch",
	NoProduction:     "no production",
	ExtraInput:       "extra input",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// SyntaxError describes the first point where the tokens diverge from the
// grammar. Expected is the terminal that failed to match, or the non-terminal
// that could not be expanded. Index is the position of Got in the token
// sequence.
type SyntaxError struct {
	Kind     ErrorKind
	Expected grammar.Symbol
	Got      lex.Token
	Index    int
	// Lookaheads lists the token kinds that would have been accepted.
	Lookaheads []lex.TokenKind
}

func (e *SyntaxError) Error() string {
	pos := e.Got.Span.Start.String()
	switch e.Kind {
	case TerminalMismatch:
		return fmt.Sprintf("%s: expected %s, found %s", pos, e.Expected, e.Got)
	case NoProduction:
		msg := fmt.Sprintf("%s: no production for %s on %s", pos, e.Expected, e.Got)
		if len(e.Lookaheads) > 0 {
			msg += " (expected one of " + joinKinds(e.Lookaheads) + ")"
		}
		return msg
	case ExtraInput:
		return fmt.Sprintf("%s: extra input %s after end of program", pos, e.Got)
	}
	return fmt.Sprintf("%s: syntax error at %s", pos, e.Got)
}

// Unexpected reports whether the error is about an unexpected token rather
// than a specific missing terminal.
func (e *SyntaxError) Unexpected() bool {
	return e.Kind == NoProduction || e.Kind == ExtraInput
}

func joinKinds(kinds []lex.TokenKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
