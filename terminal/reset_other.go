//go:build !linux

package terminal

// resetTerminalMode is a no-op off linux; escape sequences are all we send
func resetTerminalMode() {}
