//go:build !windows

package app

import (
	"os"
	"syscall"
)

// contSignals lists the signals that mean "resume after a stop", delivered
// both after our own suspend and after an external SIGSTOP.
func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}
