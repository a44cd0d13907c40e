// Package stub replaces package-level variables in tests.
package stub

import "testing"

// Replace sets *dst to val and restores the old value when the test ends.
//
// Tests that use Replace on shared globals must not be parallel.
func Replace[V any](t testing.TB, dst *V, val V) {
	t.Helper()

	old := *dst
	*dst = val
	t.Cleanup(func() {
		*dst = old
	})
}
