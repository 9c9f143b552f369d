package grammar

import (
	"errors"
	"sync"
	"testing"

	"github.com/dhamidi/minij/minij/lex"
)

var (
	stmtStart  = []lex.TokenKind{lex.TokenWhile, lex.TokenFor, lex.TokenIf, lex.TokenID, lex.TokenType, lex.TokenPrint, lex.TokenSemicolon}
	exprStart  = []lex.TokenKind{lex.TokenLParen, lex.TokenID, lex.TokenNum, lex.TokenTrue, lex.TokenFalse}
	arithStart = []lex.TokenKind{lex.TokenLParen, lex.TokenID, lex.TokenNum}
	condEnd    = []lex.TokenKind{lex.TokenSemicolon, lex.TokenRParen}
	relEnd     = []lex.TokenKind{lex.TokenEqual, lex.TokenNEqual, lex.TokenAnd, lex.TokenOr, lex.TokenSemicolon, lex.TokenRParen}
	arithEnd   = append([]lex.TokenKind{lex.TokenLT, lex.TokenLE, lex.TokenGT, lex.TokenGE}, relEnd...)
	termEnd    = append([]lex.TokenKind{lex.TokenPlus, lex.TokenMinus}, arithEnd...)
)

// referenceTable is the complete expected table, written out by hand.
var referenceTable = []struct {
	label      Label
	lookaheads []lex.TokenKind
	production string
}{
	{Program, []lex.TokenKind{lex.TokenPublic}, "PUBLIC CLASS ID LBRACE PUBLIC STATIC VOID MAIN LPAREN STRINGARR ARGS RPAREN LBRACE list-of-statements RBRACE RBRACE"},
	{StatementList, stmtStart, "statement list-of-statements"},
	{StatementList, []lex.TokenKind{lex.TokenRBrace}, "ε"},
	{Statement, []lex.TokenKind{lex.TokenWhile}, "while-statement"},
	{Statement, []lex.TokenKind{lex.TokenFor}, "for-statement"},
	{Statement, []lex.TokenKind{lex.TokenIf}, "if-statement"},
	{Statement, []lex.TokenKind{lex.TokenID}, "assignment SEMICOLON"},
	{Statement, []lex.TokenKind{lex.TokenType}, "declaration SEMICOLON"},
	{Statement, []lex.TokenKind{lex.TokenPrint}, "print-statement SEMICOLON"},
	{Statement, []lex.TokenKind{lex.TokenSemicolon}, "SEMICOLON"},
	{WhileStatement, []lex.TokenKind{lex.TokenWhile}, "WHILE LPAREN relational-expression boolean-expression RPAREN LBRACE list-of-statements RBRACE"},
	{ForStatement, []lex.TokenKind{lex.TokenFor}, "FOR LPAREN for-start SEMICOLON relational-expression boolean-expression SEMICOLON for-arithmetic-tail RPAREN LBRACE list-of-statements RBRACE"},
	{ForStart, []lex.TokenKind{lex.TokenType}, "declaration"},
	{ForStart, []lex.TokenKind{lex.TokenID}, "assignment"},
	{ForStart, []lex.TokenKind{lex.TokenSemicolon}, "ε"},
	{ForArithmetic, arithStart, "arithmetic-expression"},
	{ForArithmetic, []lex.TokenKind{lex.TokenRParen}, "ε"},
	{IfStatement, []lex.TokenKind{lex.TokenIf}, "IF LPAREN relational-expression boolean-expression RPAREN LBRACE list-of-statements RBRACE else-chain"},
	{ElseChain, []lex.TokenKind{lex.TokenElse}, "else-or-else-if LBRACE list-of-statements RBRACE else-chain"},
	{ElseChain, append(append([]lex.TokenKind{}, stmtStart...), lex.TokenRBrace), "ε"},
	{ElseOrElseIf, []lex.TokenKind{lex.TokenElse}, "ELSE possible-if"},
	{PossibleIf, []lex.TokenKind{lex.TokenIf}, "IF LPAREN relational-expression boolean-expression RPAREN"},
	{PossibleIf, []lex.TokenKind{lex.TokenLBrace}, "ε"},
	{Assignment, []lex.TokenKind{lex.TokenID}, "ID ASSIGN expression"},
	{Declaration, []lex.TokenKind{lex.TokenType}, "type ID possible-assignment"},
	{PossibleAssignment, []lex.TokenKind{lex.TokenAssign}, "ASSIGN expression"},
	{PossibleAssignment, []lex.TokenKind{lex.TokenSemicolon}, "ε"},
	{PrintStatement, []lex.TokenKind{lex.TokenPrint}, "PRINT LPAREN print-expression RPAREN"},
	{Type, []lex.TokenKind{lex.TokenType}, "*"},
	{Expression, exprStart, "relational-expression boolean-expression"},
	{Expression, []lex.TokenKind{lex.TokenSQuote}, "char-expression"},
	{CharExpression, []lex.TokenKind{lex.TokenSQuote}, "SQUOTE CHARLIT SQUOTE"},
	{BooleanExpression, []lex.TokenKind{lex.TokenEqual, lex.TokenNEqual, lex.TokenAnd, lex.TokenOr}, "boolean-operator relational-expression boolean-expression"},
	{BooleanExpression, condEnd, "ε"},
	{BooleanOperator, []lex.TokenKind{lex.TokenEqual, lex.TokenNEqual}, "boolean-equality-operator"},
	{BooleanOperator, []lex.TokenKind{lex.TokenAnd, lex.TokenOr}, "boolean-logical-operator"},
	{BooleanEquality, []lex.TokenKind{lex.TokenEqual, lex.TokenNEqual}, "*"},
	{BooleanLogical, []lex.TokenKind{lex.TokenAnd, lex.TokenOr}, "*"},
	{RelationalExpression, arithStart, "arithmetic-expression relational-expression-tail"},
	{RelationalExpression, []lex.TokenKind{lex.TokenTrue}, "TRUE"},
	{RelationalExpression, []lex.TokenKind{lex.TokenFalse}, "FALSE"},
	{RelationalTail, []lex.TokenKind{lex.TokenLT, lex.TokenLE, lex.TokenGT, lex.TokenGE}, "relational-operator arithmetic-expression"},
	{RelationalTail, relEnd, "ε"},
	{RelationalOperator, []lex.TokenKind{lex.TokenLT, lex.TokenLE, lex.TokenGT, lex.TokenGE}, "*"},
	{ArithmeticExpression, arithStart, "term arithmetic-expression-tail"},
	{ArithmeticTail, []lex.TokenKind{lex.TokenPlus}, "PLUS term arithmetic-expression-tail"},
	{ArithmeticTail, []lex.TokenKind{lex.TokenMinus}, "MINUS term arithmetic-expression-tail"},
	{ArithmeticTail, arithEnd, "ε"},
	{Term, arithStart, "factor term-tail"},
	{TermTail, []lex.TokenKind{lex.TokenTimes}, "TIMES factor term-tail"},
	{TermTail, []lex.TokenKind{lex.TokenDivide}, "DIVIDE factor term-tail"},
	{TermTail, []lex.TokenKind{lex.TokenMod}, "MOD factor term-tail"},
	{TermTail, termEnd, "ε"},
	{Factor, []lex.TokenKind{lex.TokenLParen}, "LPAREN arithmetic-expression RPAREN"},
	{Factor, []lex.TokenKind{lex.TokenID}, "ID"},
	{Factor, []lex.TokenKind{lex.TokenNum}, "NUM"},
	{PrintExpression, exprStart, "relational-expression boolean-expression"},
	{PrintExpression, []lex.TokenKind{lex.TokenDQuote}, "DQUOTE STRINGLIT DQUOTE"},
}

func TestBuildMatchesReferenceTable(t *testing.T) {
	table, err := Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	want := 0
	for _, ref := range referenceTable {
		for _, la := range ref.lookaheads {
			want++
			prod, ok := table.Lookup(ref.label, la)
			if !ok {
				t.Errorf("Lookup(%s, %s) not found, want %q", ref.label, la, ref.production)
				continue
			}
			if got := prod.String(); got != ref.production {
				t.Errorf("Lookup(%s, %s) = %q, want %q", ref.label, la, got, ref.production)
			}
		}
	}
	if table.Len() != want {
		t.Errorf("table has %d entries, want %d", table.Len(), want)
	}
}

func TestTableEveryLabelHasEntries(t *testing.T) {
	table := Default()
	for _, l := range Labels() {
		if len(table.Expected(l)) == 0 {
			t.Errorf("%s has no table entries", l)
		}
	}
}

func TestTableNullableCoversFollow(t *testing.T) {
	table := Default()
	for _, l := range Labels() {
		if !table.Nullable(l) {
			continue
		}
		for _, la := range table.Follow(l) {
			prod, ok := table.Lookup(l, la)
			if !ok {
				t.Errorf("nullable %s has no entry for FOLLOW terminal %s", l, la)
				continue
			}
			if !prod.IsEmpty() {
				t.Errorf("(%s, %s) = %q, want the empty production", l, la, prod)
			}
		}
	}
}

func TestTableProductionsNeverEmpty(t *testing.T) {
	for _, e := range Default().Entries() {
		if len(e.Production) == 0 {
			t.Errorf("(%s, %s) has a zero-length production", e.Label, e.Lookahead)
		}
	}
}

func TestTableRejectsEOFOutsideFollow(t *testing.T) {
	table := Default()
	for _, l := range []Label{StatementList, ElseChain} {
		if _, ok := table.Lookup(l, lex.TokenEOF); ok {
			t.Errorf("Lookup(%s, EOF) found an entry; EOF never follows %s", l, l)
		}
	}
}

func TestFirstAndFollow(t *testing.T) {
	table := Default()
	tests := []struct {
		label  Label
		first  []lex.TokenKind
		follow []lex.TokenKind
	}{
		{Program, []lex.TokenKind{lex.TokenPublic}, []lex.TokenKind{lex.TokenEOF}},
		{StatementList, []lex.TokenKind{lex.TokenID, lex.TokenType, lex.TokenWhile, lex.TokenFor, lex.TokenIf, lex.TokenPrint, lex.TokenSemicolon}, []lex.TokenKind{lex.TokenRBrace}},
		{BooleanExpression, []lex.TokenKind{lex.TokenEqual, lex.TokenNEqual, lex.TokenAnd, lex.TokenOr}, []lex.TokenKind{lex.TokenRParen, lex.TokenSemicolon}},
		{PossibleIf, []lex.TokenKind{lex.TokenIf}, []lex.TokenKind{lex.TokenLBrace}},
	}
	for _, tt := range tests {
		t.Run(tt.label.String(), func(t *testing.T) {
			if got := table.First(tt.label); !sameKinds(got, tt.first) {
				t.Errorf("First(%s) = %v, want %v", tt.label, got, tt.first)
			}
			if got := table.Follow(tt.label); !sameKinds(got, tt.follow) {
				t.Errorf("Follow(%s) = %v, want %v", tt.label, got, tt.follow)
			}
		})
	}
}

func TestDefaultIsShared(t *testing.T) {
	var wg sync.WaitGroup
	tables := make([]*Table, 8)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tables[i] = Default()
			if _, ok := tables[i].Lookup(Factor, lex.TokenNum); !ok {
				t.Error("Lookup(factor, NUM) not found")
			}
		}(i)
	}
	wg.Wait()
	for _, table := range tables[1:] {
		if table != tables[0] {
			t.Fatal("Default() returned different tables")
		}
	}
}

func TestBuildReportsConflict(t *testing.T) {
	rules := []Rule{
		{Program, []Alternative{
			seq(N(Statement)),
		}},
		{Statement, []Alternative{
			seq(T(lex.TokenID), T(lex.TokenAssign), T(lex.TokenNum)),
			seq(T(lex.TokenID), T(lex.TokenSemicolon)),
		}},
	}
	_, err := build(rules, Program)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("build() error = %v, want *ConflictError", err)
	}
	if conflict.Label != Statement || conflict.Lookahead != lex.TokenID {
		t.Errorf("conflict on (%s, %s), want (statement, ID)", conflict.Label, conflict.Lookahead)
	}
}

func TestBuildReportsFirstFollowConflict(t *testing.T) {
	// list -> ID list | ε, followed by ID: ID is in both FIRST and FOLLOW.
	rules := []Rule{
		{Program, []Alternative{
			seq(N(StatementList), T(lex.TokenID)),
		}},
		{StatementList, []Alternative{
			seq(T(lex.TokenID), N(StatementList)),
			epsilon(),
		}},
	}
	_, err := build(rules, Program)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("build() error = %v, want *ConflictError", err)
	}
}

func TestBuildReportsDefects(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{"empty alternative", []Rule{
			{Program, []Alternative{{}}},
		}},
		{"empty mixed with symbols", []Rule{
			{Program, []Alternative{seq(Empty, T(lex.TokenID))}},
		}},
		{"any without accepts", []Rule{
			{Program, []Alternative{seq(Any)}},
		}},
		{"any inside a sequence", []Rule{
			{Program, []Alternative{{Symbols: Production{T(lex.TokenID), Any}, Accepts: []lex.TokenKind{lex.TokenNum}}}},
		}},
		{"eof in production", []Rule{
			{Program, []Alternative{seq(T(lex.TokenID), T(lex.TokenEOF))}},
		}},
		{"undefined non-terminal", []Rule{
			{Program, []Alternative{seq(N(Statement))}},
		}},
		{"duplicate rule", []Rule{
			{Program, []Alternative{seq(T(lex.TokenID))}},
			{Program, []Alternative{seq(T(lex.TokenNum))}},
		}},
		{"unreachable rule", []Rule{
			{Program, []Alternative{seq(T(lex.TokenID))}},
			{Statement, []Alternative{seq(T(lex.TokenNum))}},
		}},
		{"no entries", []Rule{
			{Program, []Alternative{seq(N(Statement))}},
			{Statement, []Alternative{seq(N(Statement))}},
		}},
		{"missing start", []Rule{
			{Statement, []Alternative{seq(T(lex.TokenNum))}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(tt.rules, Program)
			var defect *DefectError
			if !errors.As(err, &defect) {
				t.Fatalf("build() error = %v, want *DefectError", err)
			}
		})
	}
}

func sameKinds(a, b []lex.TokenKind) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[lex.TokenKind]bool)
	for _, k := range a {
		set[k] = true
	}
	for _, k := range b {
		if !set[k] {
			return false
		}
	}
	return true
}
