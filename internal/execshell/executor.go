package execshell

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	commandStartedLogMessageConstant   = "command started"
	commandCompletedLogMessageConstant = "command completed"
	commandFailedLogMessageConstant    = "command failed"
	commandErroredLogMessageConstant   = "command could not be executed"
	logFieldRunIdentifierConstant      = "run_id"
	logFieldCommandConstant            = "command"
	logFieldWorkingDirectoryConstant   = "working_directory"
	logFieldExitCodeConstant           = "exit_code"
	logFieldSignalConstant             = "signal"
)

// CommandRunner runs a resolved shell command to completion.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// Aborter terminates the process after reporting a fatal message.
type Aborter interface {
	Abort(message string)
}

// ExecutorOption customizes a ShellExecutor.
type ExecutorOption func(executor *ShellExecutor)

// WithCommandEventObserver registers an observer for command lifecycle events.
func WithCommandEventObserver(observer CommandEventObserver) ExecutorOption {
	return func(executor *ShellExecutor) {
		if observer != nil {
			executor.observer = observer
		}
	}
}

// WithCommandHighlighter styles command text inside abort messages.
func WithCommandHighlighter(highlighter CommandHighlighter) ExecutorOption {
	return func(executor *ShellExecutor) {
		executor.formatter.Highlight = highlighter
	}
}

// ShellExecutor runs commands and aborts the process on any failure.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	aborter   Aborter
	observer  CommandEventObserver
	formatter CommandMessageFormatter
}

// NewShellExecutor constructs a ShellExecutor from its collaborators.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, aborter Aborter, options ...ExecutorOption) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if aborter == nil {
		return nil, ErrAborterNotConfigured
	}

	executor := &ShellExecutor{
		logger:   logger,
		runner:   runner,
		aborter:  aborter,
		observer: noopCommandEventObserver{},
	}
	for _, option := range options {
		option(executor)
	}
	return executor, nil
}

// Execute runs commandLine in workingDirectory with the parent's environment.
func (executor *ShellExecutor) Execute(executionContext context.Context, commandLine CommandLine, workingDirectory string) error {
	return executor.ExecuteWithEnvironment(executionContext, commandLine, workingDirectory, nil)
}

// ExecuteWithEnvironment runs commandLine in workingDirectory with additional environment variables.
//
// A blank working directory or an empty command returns a ProgrammingError without running anything.
// A failed command invokes the Aborter; if the Aborter returns, the failure is returned as an error.
func (executor *ShellExecutor) ExecuteWithEnvironment(executionContext context.Context, commandLine CommandLine, workingDirectory string, environmentVariables map[string]string) error {
	if len(strings.TrimSpace(workingDirectory)) == 0 {
		return ErrWorkingDirectoryRequired
	}
	if commandLine.Empty() {
		return ErrEmptyCommand
	}

	tokens := commandLine.Tokens()
	command := ShellCommand{
		RunID: uuid.NewString(),
		Name:  CommandName(tokens[0]),
		Details: CommandDetails{
			Arguments:            tokens[1:],
			WorkingDirectory:     workingDirectory,
			EnvironmentVariables: environmentVariables,
		},
	}

	executor.observer.CommandStarted(command)
	executor.logger.Debug(
		commandStartedLogMessageConstant,
		zap.String(logFieldRunIdentifierConstant, command.RunID),
		zap.String(logFieldCommandConstant, command.Label()),
		zap.String(logFieldWorkingDirectoryConstant, workingDirectory),
	)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.observer.CommandExecutionFailed(command, runError)
		executor.logger.Debug(
			commandErroredLogMessageConstant,
			zap.String(logFieldRunIdentifierConstant, command.RunID),
			zap.String(logFieldCommandConstant, command.Label()),
			zap.Error(runError),
		)
		executor.aborter.Abort(executor.formatter.BuildExecutionFailureMessage(commandLine, runError))
		return CommandExecutionError{Command: command, Cause: runError}
	}

	executor.observer.CommandCompleted(command, executionResult)
	if !executionResult.Succeeded() {
		executor.logger.Debug(
			commandFailedLogMessageConstant,
			zap.String(logFieldRunIdentifierConstant, command.RunID),
			zap.String(logFieldCommandConstant, command.Label()),
			zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
			zap.String(logFieldSignalConstant, executionResult.Signal),
		)
		executor.aborter.Abort(executor.formatter.BuildFailureMessage(commandLine, executionResult))
		return CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(
		commandCompletedLogMessageConstant,
		zap.String(logFieldRunIdentifierConstant, command.RunID),
		zap.String(logFieldCommandConstant, command.Label()),
	)
	return nil
}
