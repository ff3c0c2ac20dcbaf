package condeval

import (
	"errors"
	"fmt"
)

// Sentinel errors for lexing.
var (
	// ErrTooLong indicates the expression exceeds the length limit.
	// Checked before scanning begins.
	ErrTooLong = errors.New("expression too long")

	// ErrInvalidNumber indicates a malformed numeric literal.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrBlockedIdentifier indicates an identifier on the blocklist.
	ErrBlockedIdentifier = errors.New("identifier not allowed")

	// ErrUnexpectedChar indicates a character with no lexical meaning.
	ErrUnexpectedChar = errors.New("unexpected character")
)

// Sentinel errors for parsing.
var (
	// ErrUnexpectedToken indicates a token that cannot start or continue
	// the expected construct.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrExpectedToken indicates a required token was missing, such as a
	// closing parenthesis.
	ErrExpectedToken = errors.New("expected token")

	// ErrTrailingTokens indicates input remained after a complete expression.
	ErrTrailingTokens = errors.New("trailing tokens after expression")

	// ErrTooDeep indicates the expression nests beyond the depth limit.
	ErrTooDeep = errors.New("expression nested too deeply")
)

// Sentinel errors for evaluation and the environment boundary.
var (
	// ErrUndefinedVariable indicates an identifier absent from the Env.
	ErrUndefinedVariable = errors.New("undefined variable")

	// ErrUnsupportedVarType indicates a caller supplied a variable whose Go
	// type cannot map to a number or boolean.
	ErrUnsupportedVarType = errors.New("unsupported variable type")
)

// LexError reports a failure while scanning an expression.
type LexError struct {
	// Pos is the byte offset where scanning failed. It is -1 for failures
	// detected before scanning, such as the length cap.
	Pos int
	// Char is the offending character for ErrUnexpectedChar.
	Char rune
	// Ident is the offending name for ErrBlockedIdentifier. It is carried
	// for logs only and deliberately excluded from Error() so user-facing
	// messages do not reveal blocklist contents.
	Ident string
	// Err is the sentinel classifying the failure.
	Err error
}

// Error implements the error interface.
func (e *LexError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnexpectedChar):
		return fmt.Sprintf("lex: %v %q at offset %d", e.Err, e.Char, e.Pos)
	case e.Pos >= 0:
		return fmt.Sprintf("lex: %v at offset %d", e.Err, e.Pos)
	default:
		return fmt.Sprintf("lex: %v", e.Err)
	}
}

// Unwrap returns the sentinel for errors.Is support.
func (e *LexError) Unwrap() error {
	return e.Err
}

// ParseError reports a failure while building the syntax tree.
type ParseError struct {
	// Pos is the byte offset of the token that triggered the failure.
	Pos int
	// Expected describes what the parser required, when known.
	Expected string
	// Found describes the token actually seen, when known.
	Found string
	// Err is the sentinel classifying the failure.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Expected != "" && e.Found != "" {
		return fmt.Sprintf("parse: %v at offset %d: expected %s, found %s", e.Err, e.Pos, e.Expected, e.Found)
	}
	if e.Found != "" {
		return fmt.Sprintf("parse: %v at offset %d: found %s", e.Err, e.Pos, e.Found)
	}
	return fmt.Sprintf("parse: %v at offset %d", e.Err, e.Pos)
}

// Unwrap returns the sentinel for errors.Is support.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// EvalError reports a failure while evaluating a parsed expression.
// The only defined evaluation failure is an undefined variable; arithmetic
// follows floating-point semantics and never fails.
type EvalError struct {
	// Name is the variable that could not be resolved.
	Name string
	// Err is the sentinel classifying the failure.
	Err error
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("eval: %v: %s", e.Err, e.Name)
}

// Unwrap returns the sentinel for errors.Is support.
func (e *EvalError) Unwrap() error {
	return e.Err
}

// VarTypeError reports a variable rejected at the environment boundary.
type VarTypeError struct {
	// Name is the variable name supplied by the caller.
	Name string
	// Value is the rejected value.
	Value any
}

// Error implements the error interface.
func (e *VarTypeError) Error() string {
	return fmt.Sprintf("env: %v: variable %q has type %T", ErrUnsupportedVarType, e.Name, e.Value)
}

// Unwrap returns ErrUnsupportedVarType for errors.Is support.
func (e *VarTypeError) Unwrap() error {
	return ErrUnsupportedVarType
}
