package condeval

import (
	"strconv"
	"strings"
)

// DefaultMaxLength is the expression length cap, in bytes, applied before
// scanning begins. Override with WithMaxLength.
const DefaultMaxLength = 1000

// three- and two-byte operators, longest first so the scanner always takes
// the maximal munch. Single-byte operators are matched after these.
var (
	threeByteOps = []string{"===", "!=="}
	twoByteOps   = []string{"==", "!=", "<=", ">=", "&&", "||"}
)

// lexer scans a source expression into a flat token sequence.
type lexer struct {
	src string
	pos int
}

// lex scans src into tokens terminated by a TokenEOF. The length cap is
// enforced before any scanning work happens.
func lex(src string, maxLength int) ([]Token, error) {
	if len(src) > maxLength {
		return nil, &LexError{Pos: -1, Err: ErrTooLong}
	}
	l := &lexer{src: src}
	// Most tokens are at least two bytes apart once whitespace is counted;
	// this sizing avoids growth for typical condition strings.
	toks := make([]Token, 0, len(src)/2+1)
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

// next scans a single token, skipping leading ASCII whitespace.
func (l *lexer) next() (Token, error) {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return Token{Kind: TokenEOF, Pos: l.pos}, nil
	}

	start := l.pos
	c := l.src[l.pos]
	switch {
	case c >= '0' && c <= '9':
		return l.scanNumber()
	case c == '_' || isLetter(c):
		return l.scanIdentifier()
	case c == '(':
		l.pos++
		return Token{Kind: TokenLParen, Pos: start, Text: "("}, nil
	case c == ')':
		l.pos++
		return Token{Kind: TokenRParen, Pos: start, Text: ")"}, nil
	}

	// Operators by maximal munch: three bytes, then two, then one.
	rest := l.src[l.pos:]
	for _, op := range threeByteOps {
		if strings.HasPrefix(rest, op) {
			l.pos += 3
			return Token{Kind: TokenOperator, Pos: start, Text: op}, nil
		}
	}
	for _, op := range twoByteOps {
		if strings.HasPrefix(rest, op) {
			l.pos += 2
			return Token{Kind: TokenOperator, Pos: start, Text: op}, nil
		}
	}
	if strings.IndexByte("+-*/%<>!", c) >= 0 {
		l.pos++
		return Token{Kind: TokenOperator, Pos: start, Text: string(c)}, nil
	}

	return Token{}, &LexError{Pos: start, Char: rune(c), Err: ErrUnexpectedChar}
}

// scanNumber consumes a run of digits and decimal points and parses it as
// a float. Runs that do not form a valid float, such as "1..2", fail with
// ErrInvalidNumber.
func (l *lexer) scanNumber() (Token, error) {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		l.pos++
	}
	text := l.src[start:l.pos]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, &LexError{Pos: start, Err: ErrInvalidNumber}
	}
	return Token{Kind: TokenNumber, Pos: start, Num: n, Text: text}, nil
}

// scanIdentifier consumes an identifier and classifies it: the keywords
// true and false become boolean literals, blocklisted names fail the scan
// outright, and everything else is a variable reference.
func (l *lexer) scanIdentifier() (Token, error) {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c != '_' && !isLetter(c) && (c < '0' || c > '9') {
			break
		}
		l.pos++
	}
	name := l.src[start:l.pos]
	switch name {
	case "true":
		return Token{Kind: TokenBoolean, Pos: start, Bool: true, Text: name}, nil
	case "false":
		return Token{Kind: TokenBoolean, Pos: start, Bool: false, Text: name}, nil
	}
	if IsBlocked(name) {
		return Token{}, &LexError{Pos: start, Ident: name, Err: ErrBlockedIdentifier}
	}
	return Token{Kind: TokenIdentifier, Pos: start, Text: name}, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
