package grammar

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"unicode"

	"golang.org/x/exp/ebnf"
)

//go:embed minij.ebnf
var ebnfSource []byte

// EBNFStart is the start production of the EBNF description.
const EBNFStart = "Program"

// ebnfNames maps each label to the production describing it in minij.ebnf.
var ebnfNames = map[Label]string{
	Program:              "Program",
	StatementList:        "StatementList",
	Statement:            "Statement",
	WhileStatement:       "WhileStatement",
	ForStatement:         "ForStatement",
	ForStart:             "ForStart",
	ForArithmetic:        "ForArithmetic",
	IfStatement:          "IfStatement",
	ElseChain:            "ElseChain",
	ElseOrElseIf:         "ElseOrElseIf",
	PossibleIf:           "PossibleIf",
	Assignment:           "Assignment",
	Declaration:          "Declaration",
	PossibleAssignment:   "PossibleAssignment",
	PrintStatement:       "PrintStatement",
	Type:                 "Type",
	Expression:           "Expression",
	CharExpression:       "CharExpression",
	BooleanExpression:    "BooleanExpression",
	BooleanOperator:      "BooleanOperator",
	BooleanEquality:      "BooleanEquality",
	BooleanLogical:       "BooleanLogical",
	RelationalExpression: "RelationalExpression",
	RelationalTail:       "RelationalTail",
	RelationalOperator:   "RelationalOperator",
	ArithmeticExpression: "ArithmeticExpression",
	ArithmeticTail:       "ArithmeticTail",
	Term:                 "Term",
	TermTail:             "TermTail",
	Factor:               "Factor",
	PrintExpression:      "PrintExpression",
}

// EBNFSource returns the embedded EBNF description of the concrete syntax.
func EBNFSource() []byte {
	return ebnfSource
}

// EBNF parses and verifies the embedded EBNF description.
func EBNF() (ebnf.Grammar, error) {
	return ParseEBNF("minij.ebnf", bytes.NewReader(ebnfSource))
}

// ParseEBNF parses an EBNF description and verifies it is consistent from
// EBNFStart.
func ParseEBNF(filename string, r io.Reader) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if err := ebnf.Verify(g, EBNFStart); err != nil {
		return nil, fmt.Errorf("verify %s: %w", filename, err)
	}
	return g, nil
}

// CheckEBNF confirms that g describes the same non-terminal structure as the
// rule list: every label has a production, and each production references
// exactly the non-terminals its rule references.
func CheckEBNF(g ebnf.Grammar) error {
	var errs []error
	for _, rule := range Rules() {
		name := ebnfNames[rule.Head]
		prod, ok := g[name]
		if !ok {
			errs = append(errs, &DefectError{Label: rule.Head, Message: fmt.Sprintf("no EBNF production %s", name)})
			continue
		}

		want := make(map[string]bool)
		for _, alt := range rule.Alternatives {
			for _, sym := range alt.Symbols {
				if l, ok := sym.Label(); ok {
					want[ebnfNames[l]] = true
				}
			}
		}
		got := make(map[string]bool)
		collectNames(prod.Expr, got)

		if missing := difference(want, got); len(missing) > 0 {
			errs = append(errs, &DefectError{Label: rule.Head, Message: fmt.Sprintf("EBNF production %s does not reference %v", name, missing)})
		}
		if extra := difference(got, want); len(extra) > 0 {
			errs = append(errs, &DefectError{Label: rule.Head, Message: fmt.Sprintf("EBNF production %s also references %v", name, extra)})
		}
	}
	return errors.Join(errs...)
}

// collectNames gathers the syntactic (capitalized) production names used in x.
func collectNames(x ebnf.Expression, names map[string]bool) {
	switch x := x.(type) {
	case ebnf.Alternative:
		for _, e := range x {
			collectNames(e, names)
		}
	case ebnf.Sequence:
		for _, e := range x {
			collectNames(e, names)
		}
	case *ebnf.Group:
		collectNames(x.Body, names)
	case *ebnf.Option:
		collectNames(x.Body, names)
	case *ebnf.Repetition:
		collectNames(x.Body, names)
	case *ebnf.Name:
		if r := []rune(x.String); len(r) > 0 && unicode.IsUpper(r[0]) {
			names[x.String] = true
		}
	}
}

func difference(a, b map[string]bool) []string {
	var out []string
	for name := range a {
		if !b[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
