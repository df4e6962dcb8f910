package core

// Args is a borrowed, mutable cursor over a heterogeneous argument list,
// consumed strictly in order by the engine's converters. It replaces the
// ABI-specific VARGS/VALPARM/VALST cursor of the C original with a single
// owning type: every converter that needs an argument calls Next exactly
// once for it, so no specifier can read the list twice.
type Args struct {
	vals []interface{}
	pos  int
}

// NewArgs wraps vals in an Args cursor starting at the first element.
func NewArgs(vals []interface{}) *Args {
	return &Args{vals: vals}
}

// Next returns the next unconsumed argument and advances the cursor. ok is
// false once the list is exhausted; callers that reach this point have hit
// undefined behavior per the format template (spec.md §4.1's "missing
// argument" policy) and may substitute a zero value rather than fault.
func (a *Args) Next() (interface{}, bool) {
	if a == nil || a.pos >= len(a.vals) {
		return nil, false
	}
	v := a.vals[a.pos]
	a.pos++
	return v, true
}

// Remaining reports how many arguments have not yet been consumed.
func (a *Args) Remaining() int {
	if a == nil {
		return 0
	}
	return len(a.vals) - a.pos
}
