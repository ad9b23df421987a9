package main

import (
	"io"
	"os"

	"github.com/google/uuid"
)

// Environment holds the process-level dependencies of every command.
// Tests swap the writers and the id source to observe output deterministically.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	NewID  func() string
}

// DefaultEnv returns an environment wired to the real process.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewID:  uuid.NewString,
	}
}
