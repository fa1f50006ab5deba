package abort

import (
	"errors"
	"os"
)

const (
	abortingMessageConstant                = "Aborting."
	reporterNotConfiguredMessageConstant   = "abort reporter not configured"
	terminatorNotConfiguredMessageConstant = "abort terminator not configured"
)

// ExitCodeFailure is the exit code used for every abort.
const ExitCodeFailure = 1

var (
	// ErrReporterNotConfigured indicates that the handler was created without an error reporter.
	ErrReporterNotConfigured = errors.New(reporterNotConfiguredMessageConstant)
	// ErrTerminatorNotConfigured indicates that the handler was created without a terminator.
	ErrTerminatorNotConfigured = errors.New(terminatorNotConfiguredMessageConstant)
)

// ErrorReporter writes error-severity console output.
type ErrorReporter interface {
	Blank()
	Err(message string, values ...any)
}

// Terminator ends the process with the given exit code.
type Terminator interface {
	Terminate(exitCode int)
}

// OSTerminator terminates the current process through os.Exit.
type OSTerminator struct{}

// Terminate exits the process immediately; deferred functions do not run.
func (OSTerminator) Terminate(exitCode int) {
	os.Exit(exitCode)
}

// Handler reports fatal conditions and terminates the process.
type Handler struct {
	reporter   ErrorReporter
	terminator Terminator
}

// NewHandler constructs a Handler around the provided reporter and terminator.
func NewHandler(reporter ErrorReporter, terminator Terminator) (*Handler, error) {
	if reporter == nil {
		return nil, ErrReporterNotConfigured
	}
	if terminator == nil {
		return nil, ErrTerminatorNotConfigured
	}
	return &Handler{reporter: reporter, terminator: terminator}, nil
}

// Abort prints a blank line, the message, and "Aborting." at error severity, then exits with ExitCodeFailure.
func (handler *Handler) Abort(message string) {
	handler.reporter.Blank()
	handler.reporter.Err(message)
	handler.reporter.Err(abortingMessageConstant)
	handler.terminator.Terminate(ExitCodeFailure)
}
