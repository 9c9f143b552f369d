package lex

import (
	"errors"
	"testing"
)

func kindsOf(t *testing.T, input string) []TokenKind {
	t.Helper()
	tokens, err := Tokenize([]byte(input), "Test.java")
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", input, err)
	}
	var kinds []TokenKind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"class", []TokenKind{TokenClass, TokenEOF}},
		{
			"public class Test { public static void main(String[] args) { } }",
			[]TokenKind{
				TokenPublic, TokenClass, TokenID, TokenLBrace,
				TokenPublic, TokenStatic, TokenVoid, TokenMain,
				TokenLParen, TokenStringArr, TokenArgs, TokenRParen,
				TokenLBrace, TokenRBrace, TokenRBrace, TokenEOF,
			},
		},
		{"int x = 42;", []TokenKind{TokenType, TokenID, TokenAssign, TokenNum, TokenSemicolon, TokenEOF}},
		{"boolean char", []TokenKind{TokenType, TokenType, TokenEOF}},
		{"'a'", []TokenKind{TokenSQuote, TokenCharLit, TokenSQuote, TokenEOF}},
		{`"hello world"`, []TokenKind{TokenDQuote, TokenStringLit, TokenDQuote, TokenEOF}},
		{`""`, []TokenKind{TokenDQuote, TokenStringLit, TokenDQuote, TokenEOF}},
		{"System.out.println(x);", []TokenKind{TokenPrint, TokenLParen, TokenID, TokenRParen, TokenSemicolon, TokenEOF}},
		{"System.out", []TokenKind{TokenID, TokenError}},
		{"String s", []TokenKind{TokenID, TokenID, TokenEOF}},
		{"// comment\nwhile", []TokenKind{TokenWhile, TokenEOF}},
		{"/* block */ for", []TokenKind{TokenFor, TokenEOF}},
		{"+ - * / %", []TokenKind{TokenPlus, TokenMinus, TokenTimes, TokenDivide, TokenMod, TokenEOF}},
		{"== != < <= > >=", []TokenKind{TokenEqual, TokenNEqual, TokenLT, TokenLE, TokenGT, TokenGE, TokenEOF}},
		{"&& ||", []TokenKind{TokenAnd, TokenOr, TokenEOF}},
		{"if else true false", []TokenKind{TokenIf, TokenElse, TokenTrue, TokenFalse, TokenEOF}},
		{"x1 _y", []TokenKind{TokenID, TokenID, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if tt.expected[len(tt.expected)-1] == TokenError {
				if _, err := Tokenize([]byte(tt.input), "Test.java"); err == nil {
					t.Fatalf("Tokenize(%q) succeeded, want error", tt.input)
				}
				return
			}
			got := kindsOf(t, tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestTokenizeLiterals(t *testing.T) {
	tokens, err := Tokenize([]byte(`x = 'q'; print "hi there"`), "")
	if err != nil {
		t.Fatal(err)
	}
	if tokens[0].Literal != "x" {
		t.Errorf("identifier literal = %q, want %q", tokens[0].Literal, "x")
	}
	if tokens[3].Kind != TokenCharLit || tokens[3].Literal != "q" {
		t.Errorf("char literal = %v, want CHARLIT \"q\"", tokens[3])
	}
	if tokens[8].Kind != TokenStringLit || tokens[8].Literal != "hi there" {
		t.Errorf("string literal = %v, want STRINGLIT \"hi there\"", tokens[8])
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize([]byte("int x;\n  x = 1;"), "Main.java")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		index  int
		line   int
		column int
		offset int
	}{
		{0, 1, 1, 0},
		{1, 1, 5, 4},
		{3, 2, 3, 9},
		{5, 2, 7, 13},
	}
	for _, tt := range tests {
		pos := tokens[tt.index].Span.Start
		if pos.Line != tt.line || pos.Column != tt.column || pos.Offset != tt.offset {
			t.Errorf("token %d at %d:%d (offset %d), want %d:%d (offset %d)",
				tt.index, pos.Line, pos.Column, pos.Offset, tt.line, tt.column, tt.offset)
		}
		if pos.File != "Main.java" {
			t.Errorf("token %d file = %q, want %q", tt.index, pos.File, "Main.java")
		}
	}
	eof := tokens[len(tokens)-1]
	if eof.Kind != TokenEOF || eof.Span.Start.Offset != len("int x;\n  x = 1;") {
		t.Errorf("EOF token = %+v", eof)
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
		line    int
		column  int
	}{
		{"x = #;", "unexpected character", 1, 5},
		{"a ! b", "unexpected character", 1, 3},
		{"x & y", "unexpected character", 1, 3},
		{"'ab'", "malformed character literal", 1, 1},
		{"''", "malformed character literal", 1, 1},
		{"\n\"open", "unterminated string literal", 2, 1},
		{"/* never closed", "unterminated comment", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Tokenize([]byte(tt.input), "")
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("error = %v, want *lex.Error", err)
			}
			if lexErr.Message != tt.message {
				t.Errorf("Message = %q, want %q", lexErr.Message, tt.message)
			}
			if lexErr.Pos.Line != tt.line || lexErr.Pos.Column != tt.column {
				t.Errorf("Pos = %v, want %d:%d", lexErr.Pos, tt.line, tt.column)
			}
		})
	}
}

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenEOF, "EOF"},
		{TokenStringArr, "STRINGARR"},
		{TokenRParen, "RPAREN"},
		{TokenNEqual, "NEQUAL"},
		{TokenKind(9999), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("TokenKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", k.String(), got, ok, k)
		}
	}
	if _, ok := ParseKind("Whitespace"); ok {
		t.Error("ParseKind accepted a lexer-internal kind")
	}
}
