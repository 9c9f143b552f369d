package grammar

import "github.com/dhamidi/minij/minij/lex"

// Rule lists the alternatives of one non-terminal in the order they are
// registered in the parsing table.
type Rule struct {
	Head         Label
	Alternatives []Alternative
}

// Alternative is one right-hand side of a rule. An alternative made of the
// lone Any placeholder must list the terminals it accepts; those form its
// FIRST set.
type Alternative struct {
	Symbols Production
	Accepts []lex.TokenKind
}

func seq(symbols ...Symbol) Alternative {
	return Alternative{Symbols: Production(symbols)}
}

func epsilon() Alternative {
	return Alternative{Symbols: Production{Empty}}
}

func oneOf(kinds ...lex.TokenKind) Alternative {
	return Alternative{Symbols: Production{Any}, Accepts: kinds}
}

// Rules returns the fixed grammar of the teaching language.
func Rules() []Rule {
	var (
		public    = T(lex.TokenPublic)
		lparen    = T(lex.TokenLParen)
		rparen    = T(lex.TokenRParen)
		lbrace    = T(lex.TokenLBrace)
		rbrace    = T(lex.TokenRBrace)
		semicolon = T(lex.TokenSemicolon)
		id        = T(lex.TokenID)
		condition = []Symbol{N(RelationalExpression), N(BooleanExpression)}
	)

	block := func(head ...Symbol) []Symbol {
		return append(head, lbrace, N(StatementList), rbrace)
	}
	parenthesized := func(keyword Symbol) []Symbol {
		s := []Symbol{keyword, lparen}
		s = append(s, condition...)
		return append(s, rparen)
	}

	return []Rule{
		{Program, []Alternative{
			seq(block(
				public, T(lex.TokenClass), id, lbrace,
				public, T(lex.TokenStatic), T(lex.TokenVoid), T(lex.TokenMain),
				lparen, T(lex.TokenStringArr), T(lex.TokenArgs), rparen,
			)...).append(rbrace),
		}},
		{StatementList, []Alternative{
			seq(N(Statement), N(StatementList)),
			epsilon(),
		}},
		{Statement, []Alternative{
			seq(N(WhileStatement)),
			seq(N(ForStatement)),
			seq(N(IfStatement)),
			seq(N(Assignment), semicolon),
			seq(N(Declaration), semicolon),
			seq(N(PrintStatement), semicolon),
			seq(semicolon),
		}},
		{WhileStatement, []Alternative{
			seq(block(parenthesized(T(lex.TokenWhile))...)...),
		}},
		{ForStatement, []Alternative{
			seq(block(
				T(lex.TokenFor), lparen, N(ForStart), semicolon,
				N(RelationalExpression), N(BooleanExpression), semicolon,
				N(ForArithmetic), rparen,
			)...),
		}},
		{ForStart, []Alternative{
			seq(N(Declaration)),
			seq(N(Assignment)),
			epsilon(),
		}},
		{ForArithmetic, []Alternative{
			seq(N(ArithmeticExpression)),
			epsilon(),
		}},
		{IfStatement, []Alternative{
			seq(block(parenthesized(T(lex.TokenIf))...)...).append(N(ElseChain)),
		}},
		{ElseChain, []Alternative{
			seq(block(N(ElseOrElseIf))...).append(N(ElseChain)),
			epsilon(),
		}},
		{ElseOrElseIf, []Alternative{
			seq(T(lex.TokenElse), N(PossibleIf)),
		}},
		{PossibleIf, []Alternative{
			seq(parenthesized(T(lex.TokenIf))...),
			epsilon(),
		}},
		{Assignment, []Alternative{
			seq(id, T(lex.TokenAssign), N(Expression)),
		}},
		{Declaration, []Alternative{
			seq(N(Type), id, N(PossibleAssignment)),
		}},
		{PossibleAssignment, []Alternative{
			seq(T(lex.TokenAssign), N(Expression)),
			epsilon(),
		}},
		{PrintStatement, []Alternative{
			seq(T(lex.TokenPrint), lparen, N(PrintExpression), rparen),
		}},
		{Type, []Alternative{
			oneOf(lex.TokenType),
		}},
		{Expression, []Alternative{
			seq(condition...),
			seq(N(CharExpression)),
		}},
		{CharExpression, []Alternative{
			seq(T(lex.TokenSQuote), T(lex.TokenCharLit), T(lex.TokenSQuote)),
		}},
		{BooleanExpression, []Alternative{
			seq(N(BooleanOperator), N(RelationalExpression), N(BooleanExpression)),
			epsilon(),
		}},
		{BooleanOperator, []Alternative{
			seq(N(BooleanEquality)),
			seq(N(BooleanLogical)),
		}},
		{BooleanEquality, []Alternative{
			oneOf(lex.TokenEqual, lex.TokenNEqual),
		}},
		{BooleanLogical, []Alternative{
			oneOf(lex.TokenAnd, lex.TokenOr),
		}},
		{RelationalExpression, []Alternative{
			seq(N(ArithmeticExpression), N(RelationalTail)),
			seq(T(lex.TokenTrue)),
			seq(T(lex.TokenFalse)),
		}},
		{RelationalTail, []Alternative{
			seq(N(RelationalOperator), N(ArithmeticExpression)),
			epsilon(),
		}},
		{RelationalOperator, []Alternative{
			oneOf(lex.TokenLT, lex.TokenLE, lex.TokenGT, lex.TokenGE),
		}},
		{ArithmeticExpression, []Alternative{
			seq(N(Term), N(ArithmeticTail)),
		}},
		{ArithmeticTail, []Alternative{
			seq(T(lex.TokenPlus), N(Term), N(ArithmeticTail)),
			seq(T(lex.TokenMinus), N(Term), N(ArithmeticTail)),
			epsilon(),
		}},
		{Term, []Alternative{
			seq(N(Factor), N(TermTail)),
		}},
		{TermTail, []Alternative{
			seq(T(lex.TokenTimes), N(Factor), N(TermTail)),
			seq(T(lex.TokenDivide), N(Factor), N(TermTail)),
			seq(T(lex.TokenMod), N(Factor), N(TermTail)),
			epsilon(),
		}},
		{Factor, []Alternative{
			seq(lparen, N(ArithmeticExpression), rparen),
			seq(id),
			seq(T(lex.TokenNum)),
		}},
		{PrintExpression, []Alternative{
			seq(condition...),
			seq(T(lex.TokenDQuote), T(lex.TokenStringLit), T(lex.TokenDQuote)),
		}},
	}
}

func (a Alternative) append(symbols ...Symbol) Alternative {
	a.Symbols = append(a.Symbols[:len(a.Symbols):len(a.Symbols)], symbols...)
	return a
}
