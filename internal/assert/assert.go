// Package assert provides runtime assertion checking for invariants.
package assert

import "fmt"

// That panics if condition is false.
func That(condition bool, msg string, args ...any) {
	if condition {
		return
	}

	if len(args) > 0 {
		panic(fmt.Sprintf(msg, args...))
	}
	panic(msg)
}

// Unreachable panics unconditionally. Use it for branches that well-formed callers can never
// reach, such as the default case of an exhaustive switch over a closed set of kinds.
func Unreachable(msg string, args ...any) {
	That(false, msg, args...)
}
