package condeval

import (
	"strconv"
	"strings"
)

// Node is a node of the abstract syntax tree. The tree is immutable after
// parsing: parents own their children, there are no cycles and no shared
// mutable nodes, so a parsed tree is safe to evaluate concurrently.
type Node interface {
	// write renders the node into b with explicit grouping, for String.
	write(b *strings.Builder)
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
}

// Ident is a variable reference, resolved against the Env at evaluation
// time. The lexer guarantees the name is never blocklisted.
type Ident struct {
	Name string
}

// UnaryExpr applies a prefix operator, "!" or "-", to its operand.
type UnaryExpr struct {
	Op      string
	Operand Node
}

// BinaryExpr applies a binary operator to two operands.
type BinaryExpr struct {
	Op    string
	Left  Node
	Right Node
}

func (n *NumberLit) write(b *strings.Builder) {
	b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
}

func (n *BoolLit) write(b *strings.Builder) {
	b.WriteString(strconv.FormatBool(n.Value))
}

func (n *Ident) write(b *strings.Builder) {
	b.WriteString(n.Name)
}

func (n *UnaryExpr) write(b *strings.Builder) {
	b.WriteString(n.Op)
	b.WriteByte('(')
	n.Operand.write(b)
	b.WriteByte(')')
}

func (n *BinaryExpr) write(b *strings.Builder) {
	b.WriteByte('(')
	n.Left.write(b)
	b.WriteByte(' ')
	b.WriteString(n.Op)
	b.WriteByte(' ')
	n.Right.write(b)
	b.WriteByte(')')
}

// format renders a tree with every grouping explicit, which makes parser
// tests readable: "1+2*3" formats as "(1 + (2 * 3))".
func format(n Node) string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}
