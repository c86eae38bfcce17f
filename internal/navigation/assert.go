package navigation

import (
	"fmt"
	"log"
)

// assertInvariant reports a broken internal invariant. Debug builds panic;
// release builds log and carry on.
func assertInvariant(logger *log.Logger, ok bool, format string, args ...any) {
	if ok {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if debugAsserts {
		panic("navigation: " + msg)
	}
	if logger != nil {
		logger.Printf("invariant violated: %s", msg)
	}
}
