package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/minij/minij/parser"
)

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	tree := ls.tree(params.TextDocument.URI)
	if tree == nil {
		return nil, nil
	}
	return Hover(tree, params.Position), nil
}

// Hover describes the token under pos and the non-terminals deriving it,
// innermost first. It returns nil when pos is not on a token.
func Hover(tree *parser.Tree, pos protocol.Position) *protocol.Hover {
	leaf := leafAt(tree.Root, int(pos.Line)+1, int(pos.Character)+1)
	if leaf == nil {
		return nil
	}

	var path []string
	for _, n := range tree.Ancestors(leaf) {
		path = append(path, n.Label.String())
	}

	value := leaf.Token.Kind.String() + " " + leaf.Token.Literal
	if len(path) > 0 {
		value += "\n" + strings.Join(path, " < ")
	}
	r := toRange(leaf.Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindPlainText, Value: value},
		Range:    &r,
	}
}

// leafAt returns the terminal whose token covers the 1-based line and
// column.
func leafAt(root *parser.Node, line, column int) *parser.Node {
	var found *parser.Node
	parser.Walk(root, func(n *parser.Node) bool {
		if found != nil {
			return false
		}
		if n.Kind == parser.KindEmpty || !covers(n, line, column) {
			return false
		}
		if n.Kind == parser.KindTerminal {
			found = n
		}
		return true
	})
	return found
}

func covers(n *parser.Node, line, column int) bool {
	start, end := n.Span.Start, n.Span.End
	if line < start.Line || line > end.Line {
		return false
	}
	if line == start.Line && column < start.Column {
		return false
	}
	if line == end.Line && column >= end.Column {
		return false
	}
	return true
}
