/*
Package condeval evaluates restricted arithmetic and boolean expressions
against caller-supplied variables.

# Overview

condeval is a small, safe expression language for condition strings that
arrive from users or configuration, e.g. rule engines deciding whether a
record matches a condition like:

	x < 10 && y > 5

An expression is lexed into tokens, parsed into an abstract syntax tree,
and evaluated as a tree walk. There is no reflection, no property access,
and no function execution anywhere in the pipeline: the grammar simply
has no production for calls or member access, so injected input cannot
reach host-runtime behavior.

# Expression Syntax

	expr    := unary (binaryOp expr)*
	unary   := ('!' | '-') unary | primary
	primary := NUMBER | BOOLEAN | IDENTIFIER | '(' expr ')'

Binary operators, loosest to tightest binding, all left-associative:

	||
	&&
	==  ===  !=  !==
	<  >  <=  >=
	+  -
	*  /  %

# Value Types

Only two runtime value kinds exist: numbers (IEEE-754 float64) and
booleans. There are no strings, no null, no objects. Coercion rules:

  - to boolean: numbers are true when non-zero; booleans pass through
  - to number: true is 1, false is 0; numbers pass through

Strict equality (=== / !==) never coerces: operands of different kinds
are simply unequal. Loose equality (== / !=) coerces both operands to
numbers first, so "1 == true" holds while "1 === true" does not.

The logical operators && and || do NOT short-circuit: both operands are
always evaluated, and the result is always a boolean, never one of the
operand values.

# Usage

One-shot evaluation:

	env, err := condeval.NewEnv(map[string]any{"x": 5, "y": 10})
	if err != nil {
	    log.Fatal(err)
	}
	v, err := condeval.Evaluate("x < 10 && y > 5", env)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(v.Truthy()) // true

Compile once, evaluate per record:

	compiled, err := condeval.Compile("amount > 1000 && !flagged")
	if err != nil {
	    log.Fatal(err)
	}
	for _, rec := range records {
	    v, err := compiled.Run(rec.Env())
	    ...
	}

# Security

Several hardening measures are structural rather than advisory:

  - A fixed identifier blocklist (prototype-chain, global-object, and
    module-system names) is enforced at lex time, so a blocked name can
    never become an AST node, even as dead code.
  - Input length is capped before scanning begins (default 1000 bytes)
    to bound tokenization cost.
  - Parser recursion depth is capped (default 100) so pathologically
    nested input cannot overflow the stack.
  - The evaluator reads only the Env passed by the caller; there is no
    ambient or global scope to fall back to.

Error messages never echo a blocked identifier; the error value carries
it for logging.

# Thread Safety

A scan, parse, or evaluation operates only on its own token slice, AST,
and Env; there is no shared mutable state between calls. An Evaluator
and a Compiled expression are immutable after construction and safe for
concurrent use, as long as callers do not mutate a shared Env during
evaluation.

# Subpackages

  - rules: named, compiled condition sets with batch evaluation
  - history: evaluation audit storage (memory, SQLite)
  - observability: logging, metrics, and tracing helpers
*/
package condeval
