// Command creatorpulse is the CreatorPulse Data Brain: it turns per-platform
// social media records into a posting schedule, platform focus scores,
// growth alerts and content themes.
//
// Usage:
//
//	creatorpulse analyze < export.json
//	creatorpulse analyze --files youtube.json,tiktok.json --format xlsx --out report.xlsx
//	creatorpulse serve --port 8080
//	creatorpulse version
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and maps the outcome to a process exit code
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "creatorpulse: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	var ue *usageError
	if errors.As(err, &ue) {
		return exitUsage
	}
	return exitError
}

// usageError marks command line mistakes
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }
