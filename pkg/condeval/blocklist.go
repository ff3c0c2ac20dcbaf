package condeval

// blocklist is the fixed set of identifier names that must never resolve
// as variables. It covers prototype-chain names, host global objects, and
// module-system entry points. The lexer rejects these before a token is
// ever produced, so a blocked name cannot appear in an AST even as dead
// code inside an unevaluated branch.
//
// The set is process-wide immutable static data; nothing mutates it after
// package initialization.
var blocklist = map[string]struct{}{
	// Prototype-chain and self-reference names.
	"__proto__":   {},
	"prototype":   {},
	"constructor": {},
	"this":        {},

	// Host global objects.
	"window":     {},
	"document":   {},
	"global":     {},
	"globalThis": {},
	"process":    {},

	// Module and import system.
	"require": {},
	"module":  {},
	"exports": {},
	"import":  {},

	// Dynamic code loading.
	"eval":     {},
	"Function": {},
}

// BlockedIdentifiers returns the blocklisted names in unspecified order.
// The result is a copy; callers may not grow or shrink the blocklist.
func BlockedIdentifiers() []string {
	names := make([]string, 0, len(blocklist))
	for name := range blocklist {
		names = append(names, name)
	}
	return names
}

// IsBlocked reports whether name is on the identifier blocklist.
// The check is case-sensitive.
func IsBlocked(name string) bool {
	_, ok := blocklist[name]
	return ok
}
