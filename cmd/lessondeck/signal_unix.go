//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals abort an in-flight render; SIGHUP covers a closed terminal.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
