// Package parser is the predictive LL(1) driver for the minij teaching
// language.
//
// # Overview
//
// Parse consumes a complete token sequence produced by package lex and
// derives it from the program non-terminal using the table built by package
// grammar. The result is a concrete parse tree that mirrors the derivation:
// every production symbol becomes one child, terminals included.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Tokens    │────▶│   Driver    │────▶│    Tree     │
//	│  (lex)      │     │  (stack)    │     │  (Node)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           │
//	                           ▼
//	                    ┌─────────────┐
//	                    │   Table     │
//	                    │  (grammar)  │
//	                    └─────────────┘
//
// # Driver
//
// The driver keeps an explicit stack of (symbol, node) pairs with an EOF
// sentinel at the bottom. On each step it pops the top pair:
//
//   - a terminal must match the lookahead; the token is stored in the node
//   - a non-terminal is expanded by the table entry for the lookahead; one
//     child is created per symbol and the children are pushed in reverse
//   - an epsilon entry appends a single Empty child and consumes nothing
//
// The first divergence ends the parse with a *SyntaxError. There is no error
// recovery.
//
// # Tree
//
// Non-terminal nodes own their children. Terminal nodes hold exactly one
// token and Empty nodes hold nothing. The parent relation is kept by the
// Tree as a separate map:
//
//	tree, err := parser.Parse(tokens)
//	if err != nil {
//	    return err
//	}
//	stmt := tree.Root.FirstChildWithLabel(grammar.StatementList)
//	fmt.Println(tree.Parent(stmt) == tree.Root) // true
//
// Spans of non-terminal nodes are filled after a successful parse from their
// first and last tokens.
package parser
