package condeval

import "math"

// evalNode walks the tree bottom-up and produces a Value. The only
// failure mode is an undefined variable; arithmetic follows IEEE-754
// semantics, so division by zero yields Inf or NaN instead of an error.
func evalNode(n Node, env Env) (Value, error) {
	switch node := n.(type) {
	case *NumberLit:
		return Number(node.Value), nil
	case *BoolLit:
		return Boolean(node.Value), nil
	case *Ident:
		v, ok := env[node.Name]
		if !ok {
			return Value{}, &EvalError{Name: node.Name, Err: ErrUndefinedVariable}
		}
		return v, nil
	case *UnaryExpr:
		return evalUnary(node, env)
	case *BinaryExpr:
		return evalBinary(node, env)
	default:
		// The parser produces no other node types.
		panic("condeval: unknown node type")
	}
}

func evalUnary(n *UnaryExpr, env Env) (Value, error) {
	v, err := evalNode(n.Operand, env)
	if err != nil {
		return Value{}, err
	}
	if n.Op == "!" {
		return Boolean(!v.Truthy()), nil
	}
	return Number(-v.AsNumber()), nil
}

// evalBinary evaluates both operands unconditionally. The logical
// operators deliberately do not short-circuit: rule authors may rely on
// both sides always running, so "1/0 > 0 || true" evaluates the division
// (to Inf) and still succeeds.
func evalBinary(n *BinaryExpr, env Env) (Value, error) {
	l, err := evalNode(n.Left, env)
	if err != nil {
		return Value{}, err
	}
	r, err := evalNode(n.Right, env)
	if err != nil {
		return Value{}, err
	}

	switch n.Op {
	case "+":
		return Number(l.AsNumber() + r.AsNumber()), nil
	case "-":
		return Number(l.AsNumber() - r.AsNumber()), nil
	case "*":
		return Number(l.AsNumber() * r.AsNumber()), nil
	case "/":
		return Number(l.AsNumber() / r.AsNumber()), nil
	case "%":
		return Number(math.Mod(l.AsNumber(), r.AsNumber())), nil
	case "<":
		return Boolean(l.AsNumber() < r.AsNumber()), nil
	case ">":
		return Boolean(l.AsNumber() > r.AsNumber()), nil
	case "<=":
		return Boolean(l.AsNumber() <= r.AsNumber()), nil
	case ">=":
		return Boolean(l.AsNumber() >= r.AsNumber()), nil
	case "===":
		return Boolean(l.StrictEquals(r)), nil
	case "!==":
		return Boolean(!l.StrictEquals(r)), nil
	case "==":
		return Boolean(l.AsNumber() == r.AsNumber()), nil
	case "!=":
		return Boolean(l.AsNumber() != r.AsNumber()), nil
	case "&&":
		return Boolean(l.Truthy() && r.Truthy()), nil
	case "||":
		return Boolean(l.Truthy() || r.Truthy()), nil
	default:
		// The lexer only emits operators the parser accepts.
		panic("condeval: unknown binary operator " + n.Op)
	}
}
