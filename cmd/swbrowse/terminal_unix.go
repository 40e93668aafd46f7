//go:build !windows

package main

import (
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// quietInterrupt clears ECHOCTL on an interactive stdin, so Ctrl+C ends the session
// without leaving "^C" in front of the prompt. returns a function restoring the terminal.
func quietInterrupt() (restore func()) {
	noop := func() {}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return noop
	}

	state, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return noop
	}
	saved := *state
	state.Lflag &^= unix.ECHOCTL
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, state); err != nil {
		return noop
	}
	return func() {
		_ = unix.IoctlSetTermios(fd, ioctlWriteTermios, &saved)
	}
}
