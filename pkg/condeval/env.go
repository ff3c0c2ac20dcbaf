package condeval

// Env maps variable names to values for one evaluation. The evaluator
// treats it as read-only and resolves names against it exclusively; there
// is no ambient scope to fall back to when a name is missing.
type Env map[string]Value

// NewEnv converts a loosely typed variable map into an Env, the boundary
// where callers hand data to the evaluator. Go numeric kinds map to
// numbers and bool maps to boolean; any other type is rejected with a
// VarTypeError rather than silently coerced.
func NewEnv(vars map[string]any) (Env, error) {
	env := make(Env, len(vars))
	for name, raw := range vars {
		v, ok := convertVar(raw)
		if !ok {
			return nil, &VarTypeError{Name: name, Value: raw}
		}
		env[name] = v
	}
	return env, nil
}

// convertVar maps a Go value onto one of the two runtime value kinds.
func convertVar(raw any) (Value, bool) {
	switch val := raw.(type) {
	case bool:
		return Boolean(val), true
	case float64:
		return Number(val), true
	case float32:
		return Number(float64(val)), true
	case int:
		return Number(float64(val)), true
	case int8:
		return Number(float64(val)), true
	case int16:
		return Number(float64(val)), true
	case int32:
		return Number(float64(val)), true
	case int64:
		return Number(float64(val)), true
	case uint:
		return Number(float64(val)), true
	case uint8:
		return Number(float64(val)), true
	case uint16:
		return Number(float64(val)), true
	case uint32:
		return Number(float64(val)), true
	case uint64:
		return Number(float64(val)), true
	case Value:
		return val, true
	default:
		return Value{}, false
	}
}
