//go:build windows

package main

// quietInterrupt is a no-op on windows.
func quietInterrupt() (restore func()) { return func() {} }
