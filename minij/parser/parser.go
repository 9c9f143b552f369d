package parser

import (
	"github.com/tliron/commonlog"

	"github.com/dhamidi/minij/minij/grammar"
	"github.com/dhamidi/minij/minij/lex"
)

type Option func(*config)

type config struct {
	table  *grammar.Table
	start  grammar.Label
	file   string
	tracer commonlog.Logger
}

// WithTable parses against t instead of grammar.Default().
func WithTable(t *grammar.Table) Option {
	return func(c *config) {
		c.table = t
	}
}

// WithStart derives the tokens from label instead of the table's start
// symbol.
func WithStart(label grammar.Label) Option {
	return func(c *config) {
		c.start = label
	}
}

// WithFile names the file used for the position of a synthesized EOF token
// when the input is empty.
func WithFile(path string) Option {
	return func(c *config) {
		c.file = path
	}
}

// WithTracer logs every expansion and match at debug level.
func WithTracer(log commonlog.Logger) Option {
	return func(c *config) {
		c.tracer = log
	}
}

type frame struct {
	sym  grammar.Symbol
	node *Node
}

// Parse derives tokens from the start symbol and returns the parse tree, or a
// *SyntaxError describing the first divergence. An EOF token is appended when
// the input does not end with one. tokens is never modified.
func Parse(tokens []lex.Token, opts ...Option) (*Tree, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.table == nil {
		cfg.table = grammar.Default()
	}
	if !cfg.start.Valid() {
		cfg.start = cfg.table.Start()
	}

	tokens = terminate(tokens, cfg.file)
	root := &Node{Kind: KindNonTerminal, Label: cfg.start}
	parents := make(map[*Node]*Node)

	stack := []frame{
		{sym: grammar.T(lex.TokenEOF)},
		{sym: grammar.N(cfg.start), node: root},
	}
	cursor := 0

	for len(stack) > 0 {
		la := tokens[cursor]
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch {
		case top.node == nil:
			if la.Kind != lex.TokenEOF {
				return nil, &SyntaxError{Kind: ExtraInput, Expected: top.sym, Got: la, Index: cursor}
			}
			cursor++

		case top.sym.IsTerminal():
			if !top.sym.Matches(la.Kind) {
				return nil, &SyntaxError{
					Kind:       TerminalMismatch,
					Expected:   top.sym,
					Got:        la,
					Index:      cursor,
					Lookaheads: expectedKinds(top.sym),
				}
			}
			tok := la
			top.node.Token = &tok
			top.node.Span = tok.Span
			if cfg.tracer != nil {
				cfg.tracer.Debugf("match %s at %s", tok, tok.Span.Start)
			}
			cursor++

		case top.sym.IsNonTerminal():
			label, _ := top.sym.Label()
			prod, ok := cfg.table.Lookup(label, la.Kind)
			if !ok {
				return nil, &SyntaxError{
					Kind:       NoProduction,
					Expected:   top.sym,
					Got:        la,
					Index:      cursor,
					Lookaheads: cfg.table.Expected(label),
				}
			}
			if cfg.tracer != nil {
				cfg.tracer.Debugf("expand %s on %s: %s", label, la.Kind, prod)
			}

			if prod.IsEmpty() {
				empty := &Node{Kind: KindEmpty, Span: lex.Span{Start: la.Span.Start, End: la.Span.Start}}
				top.node.Children = []*Node{empty}
				parents[empty] = top.node
				continue
			}

			children := make([]*Node, len(prod))
			for i, sym := range prod {
				if l, ok := sym.Label(); ok {
					children[i] = &Node{Kind: KindNonTerminal, Label: l}
				} else {
					children[i] = &Node{Kind: KindTerminal}
				}
				parents[children[i]] = top.node
			}
			top.node.Children = children
			for i := len(prod) - 1; i >= 0; i-- {
				stack = append(stack, frame{sym: prod[i], node: children[i]})
			}

		default:
			// Empty and zero symbols never reach the stack from a valid table.
			return nil, &SyntaxError{Kind: NoProduction, Expected: top.sym, Got: la, Index: cursor}
		}
	}

	if cursor != len(tokens) {
		return nil, &SyntaxError{Kind: ExtraInput, Expected: grammar.T(lex.TokenEOF), Got: tokens[cursor], Index: cursor}
	}

	fillSpans(root)
	return &Tree{Root: root, Tokens: tokens, parents: parents}, nil
}

// terminate returns tokens ending in EOF, copying only when one must be
// appended.
func terminate(tokens []lex.Token, file string) []lex.Token {
	if n := len(tokens); n > 0 && tokens[n-1].Kind == lex.TokenEOF {
		return tokens
	}
	pos := lex.Position{File: file, Line: 1, Column: 1}
	if n := len(tokens); n > 0 {
		pos = tokens[n-1].Span.End
	}
	out := make([]lex.Token, len(tokens), len(tokens)+1)
	copy(out, tokens)
	return append(out, lex.Token{Kind: lex.TokenEOF, Span: lex.Span{Start: pos, End: pos}})
}

func expectedKinds(sym grammar.Symbol) []lex.TokenKind {
	if k, ok := sym.Terminal(); ok {
		return []lex.TokenKind{k}
	}
	return nil
}

// fillSpans sets the span of every non-terminal from its first and last
// tokens and reports whether n covers any token. A non-terminal that derives
// only ε takes the zero-width span of its first empty descendant.
func fillSpans(n *Node) bool {
	switch n.Kind {
	case KindTerminal:
		return n.Token != nil
	case KindEmpty:
		return false
	}

	covered := false
	for _, child := range n.Children {
		if fillSpans(child) {
			if !covered {
				n.Span.Start = child.Span.Start
				covered = true
			}
			n.Span.End = child.Span.End
		}
	}
	if !covered && len(n.Children) > 0 {
		n.Span = n.Children[0].Span
	}
	return covered
}
