package condeval

import (
	"fmt"
	"strconv"
)

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	// TokenNumber is a numeric literal.
	TokenNumber TokenKind = iota
	// TokenBoolean is a true or false literal.
	TokenBoolean
	// TokenIdentifier is a variable name.
	TokenIdentifier
	// TokenOperator is a unary or binary operator.
	TokenOperator
	// TokenLParen is an opening parenthesis.
	TokenLParen
	// TokenRParen is a closing parenthesis.
	TokenRParen
	// TokenEOF marks the end of the input. The lexer always emits it as
	// the final token of a successful scan.
	TokenEOF
)

// String returns a human-readable name for the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "number"
	case TokenBoolean:
		return "boolean"
	case TokenIdentifier:
		return "identifier"
	case TokenOperator:
		return "operator"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenEOF:
		return "end of input"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit of an expression. Tokens are immutable;
// the lexer produces them once per scan and the parser consumes them
// left to right.
type Token struct {
	// Kind is the lexical class.
	Kind TokenKind
	// Pos is the byte offset of the token in the source expression.
	Pos int
	// Num is the literal value for TokenNumber tokens.
	Num float64
	// Bool is the literal value for TokenBoolean tokens.
	Bool bool
	// Text is the identifier name or operator spelling.
	Text string
}

// String formats the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case TokenBoolean:
		return strconv.FormatBool(t.Bool)
	case TokenIdentifier, TokenOperator:
		return t.Text
	default:
		return t.Kind.String()
	}
}

// describe renders a token the way parser errors report it.
func (t Token) describe() string {
	if t.Kind == TokenEOF || t.Kind == TokenLParen || t.Kind == TokenRParen {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.String())
}
