package execshell

import (
	"errors"
	"fmt"
)

const (
	loggerNotConfiguredMessageConstant        = "execshell logger not configured"
	commandRunnerNotConfiguredMessageConstant = "execshell command runner not configured"
	aborterNotConfiguredMessageConstant       = "execshell abort handler not configured"
	workingDirectoryRequiredMessageConstant   = "command executed without working directory"
	emptyCommandMessageConstant               = "command executed without executable"
	programmingErrorTemplateConstant          = "programming error: %s"
	commandFailedErrorTemplateConstant        = "%s failed with exit code %d"
	commandSignaledErrorTemplateConstant      = "%s exited with signal %s"
	commandExecutionErrorTemplateConstant     = "%s failed: %v"
)

var (
	// ErrLoggerNotConfigured indicates that the executor was created without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates that the executor was created without a runner.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
	// ErrAborterNotConfigured indicates that the executor was created without an abort handler.
	ErrAborterNotConfigured = errors.New(aborterNotConfiguredMessageConstant)
	// ErrWorkingDirectoryRequired is returned when a command is executed without a working directory.
	ErrWorkingDirectoryRequired = ProgrammingError{Reason: workingDirectoryRequiredMessageConstant}
	// ErrEmptyCommand is returned when a command line has no executable.
	ErrEmptyCommand = ProgrammingError{Reason: emptyCommandMessageConstant}
)

// ProgrammingError reports misuse of the executor by calling code, distinct from command failures.
type ProgrammingError struct {
	Reason string
}

// Error describes the misuse.
func (programmingError ProgrammingError) Error() string {
	return fmt.Sprintf(programmingErrorTemplateConstant, programmingError.Reason)
}

// CommandFailedError reports a subprocess that exited non-zero or was terminated by a signal.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command.
func (commandFailedError CommandFailedError) Error() string {
	if len(commandFailedError.Result.Signal) > 0 {
		return fmt.Sprintf(commandSignaledErrorTemplateConstant, commandFailedError.Command.Label(), commandFailedError.Result.Signal)
	}
	return fmt.Sprintf(commandFailedErrorTemplateConstant, commandFailedError.Command.Label(), commandFailedError.Result.ExitCode)
}

// CommandExecutionError reports a subprocess that could not be started.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (commandExecutionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, commandExecutionError.Command.Label(), commandExecutionError.Cause)
}

// Unwrap exposes the underlying cause.
func (commandExecutionError CommandExecutionError) Unwrap() error {
	return commandExecutionError.Cause
}
