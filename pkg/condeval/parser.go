package condeval

// DefaultMaxDepth is the parser recursion depth cap. It bounds unary and
// parenthesized nesting so adversarial input like "((((((..." cannot
// overflow the goroutine stack. Override with WithMaxDepth.
const DefaultMaxDepth = 100

// binaryPrec maps each binary operator to its precedence. Lower values
// bind loosest. All binary operators are left-associative; the parser
// enforces that by recursing into the right operand with precedence+1.
var binaryPrec = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "===": 3, "!=": 3, "!==": 3,
	"<": 4, ">": 4, "<=": 4, ">=": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6, "%": 6,
}

// parser consumes a token sequence by precedence climbing.
type parser struct {
	toks     []Token
	pos      int
	depth    int
	maxDepth int
}

// parse builds the AST for a complete expression. The final token must be
// TokenEOF; anything left over after the top-level expression fails with
// ErrTrailingTokens.
func parse(toks []Token, maxDepth int) (Node, error) {
	p := &parser{toks: toks, maxDepth: maxDepth}
	n, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, &ParseError{Pos: tok.Pos, Found: tok.describe(), Err: ErrTrailingTokens}
	}
	return n, nil
}

// peek returns the current token without consuming it.
func (p *parser) peek() Token {
	return p.toks[p.pos]
}

// advance consumes and returns the current token. The EOF token is never
// consumed, so peek stays in bounds.
func (p *parser) advance() Token {
	tok := p.toks[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

// enter guards recursion depth. Every recursive descent, unary or
// parenthesized, passes through it.
func (p *parser) enter(at Token) error {
	p.depth++
	if p.depth > p.maxDepth {
		return &ParseError{Pos: at.Pos, Err: ErrTooDeep}
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// parseExpr parses a subexpression by precedence climbing: parse a unary
// term, then fold in binary operators whose precedence is at least
// minPrec, recursing into the right operand at precedence+1 so equal
// precedence associates left.
func (p *parser) parseExpr(minPrec int) (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Kind != TokenOperator {
			return left, nil
		}
		prec, ok := binaryPrec[tok.Text]
		if !ok || prec < minPrec {
			return left, nil
		}
		p.advance()
		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: tok.Text, Left: left, Right: right}
	}
}

// parseUnary parses a chain of prefix operators followed by a primary.
func (p *parser) parseUnary() (Node, error) {
	tok := p.peek()
	if tok.Kind == TokenOperator && (tok.Text == "!" || tok.Text == "-") {
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		defer p.leave()
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: tok.Text, Operand: operand}, nil
	}
	return p.parsePrimary()
}

// parsePrimary parses a literal, a variable reference, or a parenthesized
// subexpression.
func (p *parser) parsePrimary() (Node, error) {
	tok := p.advance()
	switch tok.Kind {
	case TokenNumber:
		return &NumberLit{Value: tok.Num}, nil
	case TokenBoolean:
		return &BoolLit{Value: tok.Bool}, nil
	case TokenIdentifier:
		return &Ident{Name: tok.Text}, nil
	case TokenLParen:
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		defer p.leave()
		n, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		end := p.advance()
		if end.Kind != TokenRParen {
			return nil, &ParseError{Pos: end.Pos, Expected: TokenRParen.String(), Found: end.describe(), Err: ErrExpectedToken}
		}
		return n, nil
	default:
		return nil, &ParseError{Pos: tok.Pos, Expected: "expression", Found: tok.describe(), Err: ErrUnexpectedToken}
	}
}
