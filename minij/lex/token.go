package lex

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment

	// Program skeleton
	TokenPublic
	TokenClass
	TokenStatic
	TokenVoid
	TokenMain
	TokenStringArr
	TokenArgs

	// Literals and names
	TokenID
	TokenNum
	TokenType
	TokenTrue
	TokenFalse
	TokenCharLit
	TokenStringLit

	// Statements
	TokenWhile
	TokenFor
	TokenIf
	TokenElse
	TokenPrint

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenSemicolon
	TokenSQuote
	TokenDQuote

	// Operators
	TokenAssign
	TokenEqual
	TokenNEqual
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenPlus
	TokenMinus
	TokenTimes
	TokenDivide
	TokenMod

	tokenKindCount
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenError:      "Error",
	TokenWhitespace: "Whitespace",
	TokenComment:    "Comment",
	TokenPublic:     "PUBLIC",
	TokenClass:      "CLASS",
	TokenStatic:     "STATIC",
	TokenVoid:       "VOID",
	TokenMain:       "MAIN",
	TokenStringArr:  "STRINGARR",
	TokenArgs:       "ARGS",
	TokenID:         "ID",
	TokenNum:        "NUM",
	TokenType:       "TYPE",
	TokenTrue:       "TRUE",
	TokenFalse:      "FALSE",
	TokenCharLit:    "CHARLIT",
	TokenStringLit:  "STRINGLIT",
	TokenWhile:      "WHILE",
	TokenFor:        "FOR",
	TokenIf:         "IF",
	TokenElse:       "ELSE",
	TokenPrint:      "PRINT",
	TokenLParen:     "LPAREN",
	TokenRParen:     "RPAREN",
	TokenLBrace:     "LBRACE",
	TokenRBrace:     "RBRACE",
	TokenSemicolon:  "SEMICOLON",
	TokenSQuote:     "SQUOTE",
	TokenDQuote:     "DQUOTE",
	TokenAssign:     "ASSIGN",
	TokenEqual:      "EQUAL",
	TokenNEqual:     "NEQUAL",
	TokenLT:         "LT",
	TokenLE:         "LE",
	TokenGT:         "GT",
	TokenGE:         "GE",
	TokenAnd:        "AND",
	TokenOr:         "OR",
	TokenPlus:       "PLUS",
	TokenMinus:      "MINUS",
	TokenTimes:      "TIMES",
	TokenDivide:     "DIVIDE",
	TokenMod:        "MOD",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsGrammatical reports whether k can appear in a token sequence handed to
// the parser. Errors, whitespace and comments are lexer-internal.
func (k TokenKind) IsGrammatical() bool {
	return k == TokenEOF || (k > TokenComment && k < tokenKindCount)
}

// Kinds returns every grammatical token kind in declaration order, EOF first.
func Kinds() []TokenKind {
	kinds := []TokenKind{TokenEOF}
	for k := TokenComment + 1; k < tokenKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind is the inverse of TokenKind.String for grammatical kinds.
func ParseKind(name string) (TokenKind, bool) {
	for k, n := range tokenKindNames {
		if n == name && k.IsGrammatical() {
			return k, true
		}
	}
	return TokenError, false
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

func (t Token) String() string {
	if t.Literal == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Literal)
}

var keywords = map[string]TokenKind{
	"public":  TokenPublic,
	"class":   TokenClass,
	"static":  TokenStatic,
	"void":    TokenVoid,
	"main":    TokenMain,
	"args":    TokenArgs,
	"int":     TokenType,
	"boolean": TokenType,
	"char":    TokenType,
	"true":    TokenTrue,
	"false":   TokenFalse,
	"while":   TokenWhile,
	"for":     TokenFor,
	"if":      TokenIf,
	"else":    TokenElse,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenID
}
