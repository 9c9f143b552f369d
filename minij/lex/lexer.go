package lex

import "fmt"

// Error reports input the lexer could not classify.
type Error struct {
	Pos     Position
	Literal string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Pos, e.Message, e.Literal)
}

type Lexer struct {
	input   []byte
	file    string
	pos     int
	line    int
	column  int
	pending []Token
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

// Tokenize scans the whole input and returns the grammatical tokens,
// terminated by a single EOF token.
func Tokenize(input []byte, file string) ([]Token, error) {
	l := NewLexer(input, file)
	var tokens []Token
	for {
		tok := l.NextToken()
		switch tok.Kind {
		case TokenWhitespace, TokenComment:
			continue
		case TokenError:
			return nil, l.errorFor(tok)
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) errorFor(tok Token) *Error {
	msg := "unexpected character"
	switch {
	case len(tok.Literal) > 0 && tok.Literal[0] == '\'':
		msg = "malformed character literal"
	case len(tok.Literal) > 0 && tok.Literal[0] == '"':
		msg = "unterminated string literal"
	case tok.Literal == "/*":
		msg = "unterminated comment"
	}
	return &Error{Pos: tok.Span.Start, Literal: tok.Literal, Message: msg}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) hasPrefix(s string) bool {
	if l.pos+len(s) > len(l.input) {
		return false
	}
	return string(l.input[l.pos:l.pos+len(s)]) == s
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}

	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(startPos)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(startPos)
	}

	if isSpace(ch) {
		return l.scanWhitespace(startPos)
	}

	if isLetter(ch) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) {
		return l.scanNumber(startPos)
	}

	if ch == '\'' {
		return l.scanCharLiteral(startPos)
	}

	if ch == '"' {
		return l.scanStringLiteral(startPos)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for isSpace(l.peek()) {
		l.advance()
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start Position) Token {
	l.advanceN(2)
	for l.peek() != 0 && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenComment, start)
}

func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	for {
		if l.pos >= len(l.input) {
			return Token{
				Kind:    TokenError,
				Span:    Span{Start: start, End: l.Position()},
				Literal: "/*",
			}
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	return l.token(TokenComment, start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isLetterOrDigit(l.peek()) {
		l.advance()
	}
	literal := string(l.input[start.Offset:l.pos])

	switch {
	case literal == "String" && l.hasPrefix("[]"):
		l.advanceN(2)
		return l.token(TokenStringArr, start)
	case literal == "System" && l.hasPrefix(".out.println") && !isLetterOrDigit(l.peekN(len(".out.println"))):
		l.advanceN(len(".out.println"))
		return l.token(TokenPrint, start)
	}

	return l.token(LookupKeyword(literal), start)
}

func (l *Lexer) scanNumber(start Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	return l.token(TokenNum, start)
}

// scanCharLiteral splits 'c' into SQUOTE CHARLIT SQUOTE; the trailing two
// tokens are queued.
func (l *Lexer) scanCharLiteral(start Position) Token {
	l.advance()
	open := l.token(TokenSQuote, start)

	bodyStart := l.Position()
	if l.peek() == '\\' {
		l.advance()
	}
	if l.peek() == 0 || l.peek() == '\'' || l.peek() == '\n' {
		return l.malformed(start)
	}
	l.advance()
	body := l.token(TokenCharLit, bodyStart)

	if l.peek() != '\'' {
		return l.malformed(start)
	}
	closeStart := l.Position()
	l.advance()
	l.pending = append(l.pending, body, l.token(TokenSQuote, closeStart))
	return open
}

// scanStringLiteral splits "text" into DQUOTE STRINGLIT DQUOTE.
func (l *Lexer) scanStringLiteral(start Position) Token {
	l.advance()
	open := l.token(TokenDQuote, start)

	bodyStart := l.Position()
	for l.peek() != 0 && l.peek() != '"' && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() != '"' {
		return l.malformed(start)
	}
	body := l.token(TokenStringLit, bodyStart)
	closeStart := l.Position()
	l.advance()
	l.pending = append(l.pending, body, l.token(TokenDQuote, closeStart))
	return open
}

func (l *Lexer) malformed(start Position) Token {
	return Token{
		Kind:    TokenError,
		Span:    Span{Start: start, End: l.Position()},
		Literal: string(l.input[start.Offset:l.pos]),
	}
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	case '{':
		l.advance()
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		return l.token(TokenRBrace, start)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start)
	case '+':
		l.advance()
		return l.token(TokenPlus, start)
	case '-':
		l.advance()
		return l.token(TokenMinus, start)
	case '*':
		l.advance()
		return l.token(TokenTimes, start)
	case '/':
		l.advance()
		return l.token(TokenDivide, start)
	case '%':
		l.advance()
		return l.token(TokenMod, start)

	case '=':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenEqual, start)
		}
		l.advance()
		return l.token(TokenAssign, start)

	case '!':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenNEqual, start)
		}

	case '<':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenLE, start)
		}
		l.advance()
		return l.token(TokenLT, start)

	case '>':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenGE, start)
		}
		l.advance()
		return l.token(TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(TokenAnd, start)
		}

	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(TokenOr, start)
		}
	}

	l.advance()
	return Token{
		Kind:    TokenError,
		Span:    Span{Start: start, End: l.Position()},
		Literal: string(l.input[start.Offset:l.pos]),
	}
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isLetterOrDigit(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}
