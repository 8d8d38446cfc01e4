//go:build windows

package app

// Windows has no SIGTSTP/SIGCONT job control, so suspend does nothing.
func (app *Application) suspendToShell() {
}

func (app *Application) resumeAfterStop() bool {
	return false
}
