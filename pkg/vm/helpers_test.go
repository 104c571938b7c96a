package vm

import (
	"fmt"
	"testing"
)

// assert mirrors the small hand-rolled helper KTStephano-GVM's tests
// use (vm_test.go's assert(t, cond, format, args...)) rather than
// reaching for a third-party assertion library in every unit test.
func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(fmt.Sprintf("assertion failed: %s", format), args...)
	}
}
