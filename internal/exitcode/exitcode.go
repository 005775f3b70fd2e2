package exitcode

import (
	"os"
	"strings"

	"github.com/reftrack/refadmin/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication or authorization failure
	AuthError = 3

	// NetworkError indicates a network or backend connectivity issue
	NetworkError = 4

	// Interrupted indicates the run was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with the code determined from the error
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to an exit code. Coded errors map by
// their code range; anything else falls back on message sniffing.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if code := errors.GetCode(err); code != "" {
		switch {
		case strings.HasPrefix(string(code), "AUTH-"):
			return AuthError
		case code == errors.ErrCodeAPITransport || code == errors.ErrCodeAPIUnavailable:
			return NetworkError
		case strings.HasPrefix(string(code), "CONFIG-"):
			return UsageError
		default:
			return GeneralError
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unauthorized") || strings.Contains(msg, "not logged in") {
		return AuthError
	}
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") {
		return NetworkError
	}
	if strings.Contains(msg, "required") || strings.Contains(msg, "unknown flag") {
		return UsageError
	}

	return GeneralError
}
