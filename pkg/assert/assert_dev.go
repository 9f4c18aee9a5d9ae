//go:build !release

// Package assert holds invariant checks that are compiled out of release builds.
package assert

import "fmt"

// Enabled reports whether checks are compiled in. Build with -tags release to turn them off.
const Enabled = true

func That(cond bool, format string, args ...any) { //nolint:goprintffuncname // it's ok
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
