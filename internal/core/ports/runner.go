// Package ports defines the core interfaces for the application.
package ports

import "context"

// Command describes a single external process invocation.
type Command struct {
	// Name is the executable to run, absolute or resolved via PATH.
	Name string

	// Args are the arguments, not including the executable itself.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env contains environment variable overrides applied on top of the
	// process environment.
	Env map[string]string

	// PathPrepend is a directory prepended to PATH, the way virtualenv
	// activation does.
	PathPrepend string
}

// Result carries the captured output of a completed command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes external commands to completion, sequentially and blocking.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes the command and returns its captured output.
	// A non-zero exit returns both the Result and a non-nil error.
	Run(ctx context.Context, cmd Command) (Result, error)
}
