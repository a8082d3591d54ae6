package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	customError "github.com/segyhp/yunta/pkg/errors"
	"github.com/segyhp/yunta/pkg/utils"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // unexpected failure
	ExitCommandError = 2 // bad flags or arguments
	ExitNotFound     = 3
	ExitConflict     = 4 // the junta state does not allow the operation
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode picks the exit code for err: an explicit ExitError wins,
// otherwise the service error category decides.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch customError.CategoryOf(err) {
	case customError.CategoryValidation:
		return ExitCommandError
	case customError.CategoryNotFound:
		return ExitNotFound
	case customError.CategoryConflict:
		return ExitConflict
	default:
		return ExitFailure
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(flag, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, WrapExitError(ExitCommandError, fmt.Sprintf("--%s must be a UUID", flag), err)
	}
	return id, nil
}

func parseDay(value string) (time.Time, error) {
	day, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, WrapExitError(ExitCommandError, "--date must be YYYY-MM-DD", err)
	}
	return day, nil
}
