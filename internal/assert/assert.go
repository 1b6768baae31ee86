// Package assert provides checks for contract violations that cannot be
// recovered from.
package assert

import "fmt"

// That panics with an error wrapping err if cond is false.
// The check is compiled into every build.
func That(cond bool, err error, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)))
	}
}
