//go:build windows

package main

import "os"

// shutdownSignals abort an in-flight render. Windows only delivers interrupts.
var shutdownSignals = []os.Signal{os.Interrupt}
