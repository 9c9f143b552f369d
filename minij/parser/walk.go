package parser

import "github.com/dhamidi/minij/minij/lex"

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the node just visited.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Leaves returns the tokens held by the terminal nodes under n, left to
// right. For the root of a successful parse this is the input without EOF.
func Leaves(n *Node) []lex.Token {
	var tokens []lex.Token
	Walk(n, func(node *Node) bool {
		if node.Kind == KindTerminal && node.Token != nil {
			tokens = append(tokens, *node.Token)
		}
		return true
	})
	return tokens
}

// Equal reports whether two trees have the same shape, labels and tokens.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Label != b.Label || a.Span != b.Span {
		return false
	}
	if (a.Token == nil) != (b.Token == nil) {
		return false
	}
	if a.Token != nil && *a.Token != *b.Token {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// Find returns every node under n, n included, that satisfies fn.
func Find(n *Node, fn func(*Node) bool) []*Node {
	var result []*Node
	Walk(n, func(node *Node) bool {
		if fn(node) {
			result = append(result, node)
		}
		return true
	})
	return result
}
