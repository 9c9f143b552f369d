package grammar

import (
	"fmt"

	"github.com/dhamidi/minij/minij/lex"
)

// Label names a non-terminal of the fixed grammar.
type Label int

const (
	labelInvalid Label = iota

	Program
	StatementList
	Statement
	WhileStatement
	ForStatement
	ForStart
	ForArithmetic
	IfStatement
	ElseChain
	ElseOrElseIf
	PossibleIf
	Assignment
	Declaration
	PossibleAssignment
	PrintStatement
	Type
	Expression
	CharExpression
	BooleanExpression
	BooleanOperator
	BooleanEquality
	BooleanLogical
	RelationalExpression
	RelationalTail
	RelationalOperator
	ArithmeticExpression
	ArithmeticTail
	Term
	TermTail
	Factor
	PrintExpression

	labelCount
)

var labelNames = map[Label]string{
	Program:              "program",
	StatementList:        "list-of-statements",
	Statement:            "statement",
	WhileStatement:       "while-statement",
	ForStatement:         "for-statement",
	ForStart:             "for-start",
	ForArithmetic:        "for-arithmetic-tail",
	IfStatement:          "if-statement",
	ElseChain:            "else-chain",
	ElseOrElseIf:         "else-or-else-if",
	PossibleIf:           "possible-if",
	Assignment:           "assignment",
	Declaration:          "declaration",
	PossibleAssignment:   "possible-assignment",
	PrintStatement:       "print-statement",
	Type:                 "type",
	Expression:           "expression",
	CharExpression:       "char-expression",
	BooleanExpression:    "boolean-expression",
	BooleanOperator:      "boolean-operator",
	BooleanEquality:      "boolean-equality-operator",
	BooleanLogical:       "boolean-logical-operator",
	RelationalExpression: "relational-expression",
	RelationalTail:       "relational-expression-tail",
	RelationalOperator:   "relational-operator",
	ArithmeticExpression: "arithmetic-expression",
	ArithmeticTail:       "arithmetic-expression-tail",
	Term:                 "term",
	TermTail:             "term-tail",
	Factor:               "factor",
	PrintExpression:      "print-expression",
}

func (l Label) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return "Unknown"
}

func (l Label) Valid() bool {
	return l > labelInvalid && l < labelCount
}

// Labels returns every non-terminal in declaration order.
func Labels() []Label {
	labels := make([]Label, 0, labelCount-1)
	for l := Program; l < labelCount; l++ {
		labels = append(labels, l)
	}
	return labels
}

func ParseLabel(name string) (Label, bool) {
	for l, n := range labelNames {
		if n == name {
			return l, true
		}
	}
	return labelInvalid, false
}

type SymbolKind uint8

const (
	SymbolTerminal SymbolKind = iota + 1
	SymbolNonTerminal
	SymbolEmpty
	SymbolAny
)

// Symbol is a grammar symbol: a terminal token kind, a non-terminal label,
// the empty-production marker, or the placeholder matching any single token.
// The zero Symbol is invalid. Symbols are comparable and may be used as map
// keys.
type Symbol struct {
	kind  SymbolKind
	term  lex.TokenKind
	label Label
}

var (
	Empty = Symbol{kind: SymbolEmpty}
	Any   = Symbol{kind: SymbolAny}
)

func T(kind lex.TokenKind) Symbol {
	return Symbol{kind: SymbolTerminal, term: kind}
}

func N(label Label) Symbol {
	return Symbol{kind: SymbolNonTerminal, label: label}
}

func (s Symbol) Kind() SymbolKind { return s.kind }

func (s Symbol) IsTerminal() bool {
	return s.kind == SymbolTerminal || s.kind == SymbolAny
}

func (s Symbol) IsNonTerminal() bool {
	return s.kind == SymbolNonTerminal
}

func (s Symbol) IsEmpty() bool {
	return s.kind == SymbolEmpty
}

// Terminal returns the token kind of a terminal symbol.
func (s Symbol) Terminal() (lex.TokenKind, bool) {
	return s.term, s.kind == SymbolTerminal
}

// Label returns the label of a non-terminal symbol.
func (s Symbol) Label() (Label, bool) {
	return s.label, s.kind == SymbolNonTerminal
}

// Matches reports whether a token of the given kind satisfies the terminal
// symbol s. Any matches every kind except EOF.
func (s Symbol) Matches(kind lex.TokenKind) bool {
	switch s.kind {
	case SymbolTerminal:
		return s.term == kind
	case SymbolAny:
		return kind != lex.TokenEOF
	}
	return false
}

func (s Symbol) String() string {
	switch s.kind {
	case SymbolTerminal:
		return s.term.String()
	case SymbolNonTerminal:
		return s.label.String()
	case SymbolEmpty:
		return "ε"
	case SymbolAny:
		return "*"
	}
	return fmt.Sprintf("Symbol(%d)", s.kind)
}

// Production is the right-hand side chosen for one table entry. It is never
// empty: an epsilon derivation is the single Empty symbol.
type Production []Symbol

func (p Production) IsEmpty() bool {
	return len(p) == 1 && p[0].IsEmpty()
}

func (p Production) Equal(o Production) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

func (p Production) String() string {
	result := ""
	for i, sym := range p {
		if i > 0 {
			result += " "
		}
		result += sym.String()
	}
	return result
}
