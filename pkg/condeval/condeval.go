package condeval

import "sort"

// Evaluator lexes, parses, and evaluates expressions with configured
// limits. The zero configuration from New is suitable for untrusted
// input. An Evaluator is immutable after construction and safe for
// concurrent use.
type Evaluator struct {
	maxLength int
	maxDepth  int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMaxLength sets the expression length cap in bytes.
// Default: DefaultMaxLength. Values below 1 are ignored.
func WithMaxLength(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxLength = n
		}
	}
}

// WithMaxDepth sets the parser recursion depth cap.
// Default: DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// New creates an Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		maxLength: DefaultMaxLength,
		maxDepth:  DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate lexes, parses, and evaluates expression against env in one
// call, with no caching. Use Compile when the same expression is
// evaluated repeatedly.
func (e *Evaluator) Evaluate(expression string, env Env) (Value, error) {
	compiled, err := e.Compile(expression)
	if err != nil {
		return Value{}, err
	}
	return compiled.Run(env)
}

// Compile lexes and parses expression once, returning a reusable handle.
// The surrounding rule engine pattern is one Compile per rule and one Run
// per record.
func (e *Evaluator) Compile(expression string) (*Compiled, error) {
	toks, err := lex(expression, e.maxLength)
	if err != nil {
		return nil, err
	}
	root, err := parse(toks, e.maxDepth)
	if err != nil {
		return nil, err
	}
	return &Compiled{source: expression, root: root, vars: collectVars(root)}, nil
}

// Compiled is a parsed expression ready for repeated evaluation. It is
// immutable and safe for concurrent Run calls.
type Compiled struct {
	source string
	root   Node
	vars   []string
}

// Run evaluates the cached AST against env without re-parsing.
func (c *Compiled) Run(env Env) (Value, error) {
	return evalNode(c.root, env)
}

// Source returns the original expression text.
func (c *Compiled) Source() string {
	return c.source
}

// String renders the parsed tree with every grouping explicit.
func (c *Compiled) String() string {
	return format(c.root)
}

// Vars returns the variable names the expression references, sorted and
// deduplicated. Callers can use it to validate an Env up front.
func (c *Compiled) Vars() []string {
	return append([]string(nil), c.vars...)
}

// collectVars gathers the distinct identifier names in a tree.
func collectVars(root Node) []string {
	seen := make(map[string]bool)
	var walk func(Node)
	walk = func(n Node) {
		switch node := n.(type) {
		case *Ident:
			seen[node.Name] = true
		case *UnaryExpr:
			walk(node.Operand)
		case *BinaryExpr:
			walk(node.Left)
			walk(node.Right)
		}
	}
	walk(root)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultEvaluator backs the package-level convenience functions.
var defaultEvaluator = New()

// Evaluate evaluates expression against env using the default limits.
func Evaluate(expression string, env Env) (Value, error) {
	return defaultEvaluator.Evaluate(expression, env)
}

// Compile parses expression using the default limits.
func Compile(expression string) (*Compiled, error) {
	return defaultEvaluator.Compile(expression)
}
