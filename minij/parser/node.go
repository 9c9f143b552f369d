package parser

import (
	"strings"

	"github.com/dhamidi/minij/minij/grammar"
	"github.com/dhamidi/minij/minij/lex"
)

type NodeKind int

const (
	KindNonTerminal NodeKind = iota
	KindTerminal
	KindEmpty
)

var nodeKindNames = map[NodeKind]string{
	KindNonTerminal: "non-terminal",
	KindTerminal:    "terminal",
	KindEmpty:       "empty",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is one vertex of the parse tree. Label is set for non-terminals,
// Token for terminals.
type Node struct {
	Kind     NodeKind
	Label    grammar.Label
	Span     lex.Span
	Children []*Node
	Token    *lex.Token
}

func (n *Node) IsEmpty() bool {
	return n.Kind == KindEmpty
}

func (n *Node) FirstChildWithLabel(label grammar.Label) *Node {
	for _, child := range n.Children {
		if child.Kind == KindNonTerminal && child.Label == label {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenWithLabel(label grammar.Label) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == KindNonTerminal && child.Label == label {
			result = append(result, child)
		}
	}
	return result
}

// FirstTerminal returns the first child that holds a token of the given kind.
func (n *Node) FirstTerminal(kind lex.TokenKind) *Node {
	for _, child := range n.Children {
		if child.Kind == KindTerminal && child.Token != nil && child.Token.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Name is the label of a non-terminal, the token kind of a terminal and ε
// for an empty node.
func (n *Node) Name() string {
	switch n.Kind {
	case KindNonTerminal:
		return n.Label.String()
	case KindTerminal:
		if n.Token != nil {
			return n.Token.Kind.String()
		}
		return "?"
	case KindEmpty:
		return "ε"
	}
	return "Unknown"
}

func (n *Node) String() string {
	var sb strings.Builder
	n.stringIndent(&sb, 0, false)
	return sb.String()
}

func (n *Node) StringWithPositions() string {
	var sb strings.Builder
	n.stringIndent(&sb, 0, true)
	return sb.String()
}

func (n *Node) stringIndent(sb *strings.Builder, indent int, showPositions bool) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Name())
	if showPositions && n.Kind != KindEmpty {
		sb.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil && n.Token.Literal != "" {
		sb.WriteString(" " + n.Token.Literal)
	}
	sb.WriteString("\n")

	for _, child := range n.Children {
		child.stringIndent(sb, indent+1, showPositions)
	}
}

// Tree is the result of a successful parse. Tokens is the input the tree was
// derived from, terminated by EOF.
type Tree struct {
	Root    *Node
	Tokens  []lex.Token
	parents map[*Node]*Node
}

// Parent returns the non-terminal that owns n, or nil for the root and for
// nodes outside the tree.
func (t *Tree) Parent(n *Node) *Node {
	return t.parents[n]
}

// Ancestors returns the chain of owners of n, nearest first.
func (t *Tree) Ancestors(n *Node) []*Node {
	var result []*Node
	for p := t.parents[n]; p != nil; p = t.parents[p] {
		result = append(result, p)
	}
	return result
}

func (t *Tree) String() string {
	return t.Root.String()
}
