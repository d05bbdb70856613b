package latex

import "fmt"

// UnsupportedConstructError reports a LaTeX construct that has neither a
// substitution-table entry nor a structural handler.
type UnsupportedConstructError struct {
	// Construct is the offending command or marker, e.g. `\operatorname*` or `^`.
	Construct string
	// Fragment is the snippet being converted when the construct was met.
	Fragment string
	// Reason is an optional short explanation.
	Reason string
}

func (e *UnsupportedConstructError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported construct %q in %q: %s", e.Construct, e.Fragment, e.Reason)
	}
	return fmt.Sprintf("unsupported construct %q in %q", e.Construct, e.Fragment)
}
