package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/darylhandley/15five-utils/pkg/domain/objective"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var noParent *objective.NoParentError
	if errors.As(err, &noParent) {
		return NewCLIError(
			noParent.Error(),
			fmt.Sprintf("Objective %d is not linked to a parent — nothing was written", noParent.ChildID),
			err,
		)
	}

	var unknownID *objective.CreatedUnknownIDError
	if errors.As(err, &unknownID) {
		return NewCLIError(
			"objective was created but its ID could not be confirmed",
			"Check 15Five manually before retrying — retrying would create a duplicate",
			err,
		)
	}

	var remote *objective.RemoteError
	if errors.As(err, &remote) {
		hint := "Check the request and try again"
		if remote.StatusCode == 403 || remote.StatusCode == 401 {
			hint = "Your session may have expired — run '15five setup' with fresh browser credentials"
		}
		return NewCLIError(remote.Error(), hint, err)
	}

	return err
}

// printError renders an error to stderr, with its hint when it carries one.
func printError(err error) {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", cliErr.Message)
		if cliErr.Hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", cliErr.Hint)
		}
		return
	}
	color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
}
