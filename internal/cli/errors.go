package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitRuntime = 1
	ExitUsage   = 2
)

const helpHint = "Run '--help' for usage information.\n"

// ExitError carries the exit code of a failed invocation. Its message has
// already been written to stderr when Execute returns it.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitRuntime
}

var errNoCommand = errors.New("no command given")

type unknownCommandError struct {
	name string
}

func (e *unknownCommandError) Error() string {
	return fmt.Sprintf("unknown command '%s'", e.name)
}

// usageError is an argument-shape or flag error on cmd.
type usageError struct {
	cmd *cobra.Command
	err error
}

func newUsageError(cmd *cobra.Command, err error) error {
	return &usageError{cmd: cmd, err: err}
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// exactArgs requires one positional argument per name and reports the first
// missing one by name.
func exactArgs(names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		switch {
		case len(args) < len(names):
			return newUsageError(cmd, fmt.Errorf("missing required argument '%s'", names[len(args)]))
		case len(args) > len(names):
			return newUsageError(cmd, fmt.Errorf("too many arguments for '%s'. Expected %d argument(s) but got %d",
				cmd.Name(), len(names), len(args)))
		}
		return nil
	}
}

// report writes err to w and wraps it with its exit code.
func report(w io.Writer, cmd *cobra.Command, err error) *ExitError {
	var (
		unknown *unknownCommandError
		usage   *usageError
	)

	switch {
	case errors.Is(err, errNoCommand):
		fmt.Fprint(w, cmd.UsageString())
		return &ExitError{Code: ExitUsage, Err: err}
	case errors.As(err, &unknown):
		fmt.Fprintf(w, "error: %s\n%s", unknown, helpHint)
		return &ExitError{Code: ExitUsage, Err: err}
	case errors.As(err, &usage):
		if usage.cmd != nil {
			cmd = usage.cmd
		}
		fmt.Fprintf(w, "error: %s\n%s%s", usage.err, cmd.UsageString(), helpHint)
		return &ExitError{Code: ExitUsage, Err: err}
	default:
		fmt.Fprintf(w, "error: %s\n", err)
		return &ExitError{Code: ExitRuntime, Err: err}
	}
}
