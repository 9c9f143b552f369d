package lsp

import (
	"errors"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/minij/minij/lex"
	"github.com/dhamidi/minij/minij/parser"
)

const diagnosticSource = "minij"

// Analyze tokenizes and parses src. It returns the tree of a valid program,
// or no tree and exactly one error diagnostic. The diagnostic slice is never
// nil so that publishing it clears earlier results.
func Analyze(path string, src []byte) (*parser.Tree, []protocol.Diagnostic) {
	tokens, err := lex.Tokenize(src, path)
	if err != nil {
		return nil, []protocol.Diagnostic{Diagnostic(err)}
	}
	tree, err := parser.Parse(tokens, parser.WithFile(path))
	if err != nil {
		return nil, []protocol.Diagnostic{Diagnostic(err)}
	}
	return tree, []protocol.Diagnostic{}
}

// Diagnostic converts a lexical or syntax error into an LSP diagnostic whose
// range covers the offending token.
func Diagnostic(err error) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := diagnosticSource
	diag := protocol.Diagnostic{
		Severity: &severity,
		Source:   &source,
		Message:  err.Error(),
	}

	var syntaxErr *parser.SyntaxError
	var lexErr *lex.Error
	switch {
	case errors.As(err, &syntaxErr):
		diag.Range = toRange(syntaxErr.Got.Span)
		diag.Message = syntaxMessage(syntaxErr)
		diag.Code = &protocol.IntegerOrString{Value: codeFor(syntaxErr.Kind)}
	case errors.As(err, &lexErr):
		start := toPosition(lexErr.Pos)
		end := start
		if lit := lexErr.Literal; lit != "" && !strings.Contains(lit, "\n") {
			end.Character += protocol.UInteger(len(lit))
		} else {
			end.Character++
		}
		diag.Range = protocol.Range{Start: start, End: end}
		diag.Message = lexErr.Message
		diag.Code = &protocol.IntegerOrString{Value: "lexical-error"}
	}
	return diag
}

// syntaxMessage is the error text without its position prefix, which the
// client already shows through the range.
func syntaxMessage(err *parser.SyntaxError) string {
	msg := err.Error()
	prefix := err.Got.Span.Start.String() + ": "
	return strings.TrimPrefix(msg, prefix)
}

func codeFor(kind parser.ErrorKind) string {
	return strings.ReplaceAll(kind.String(), " ", "-")
}

func toPosition(p lex.Position) protocol.Position {
	line, col := p.Line-1, p.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}

func toRange(span lex.Span) protocol.Range {
	return protocol.Range{Start: toPosition(span.Start), End: toPosition(span.End)}
}
