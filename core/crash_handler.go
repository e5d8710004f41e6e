package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/ninja-engine/terminal"
)

// exit is replaced in tests
var exit = os.Exit

// HandleCrash resets the terminal, prints the panic value and stack trace, and exits
// Call from a deferred recover; nil is ignored
func HandleCrash(r any) {
	if r == nil {
		return
	}
	reportCrash(os.Stdout, os.Stderr, r, debug.Stack())
	exit(1)
}

// reportCrash restores the terminal on tty and writes the report to errOut
func reportCrash(tty io.Writer, errOut io.Writer, r any, stack []byte) {
	terminal.EmergencyReset(tty)

	if f, ok := tty.(*os.File); ok {
		f.Sync()
	}

	// Raw mode may still be active on some terminals, use \r\n
	fmt.Fprintf(errOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(errOut, "Stack Trace:\r\n%s\r\n", stack)

	if f, ok := errOut.(*os.File); ok {
		f.Sync()
	}
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword so a crash still restores the terminal
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
