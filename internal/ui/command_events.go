package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/bundlekit/internal/execshell"
)

const (
	commandStartedMessageTemplateConstant          = "Running %s"
	commandCompletedMessageTemplateConstant        = "Completed %s"
	commandFailedExitCodeMessageTemplateConstant   = "%s failed with exit code %d"
	commandFailedSignalMessageTemplateConstant     = "%s terminated by signal %s"
	commandExecutionFailureMessageTemplateConstant = "%s failed: %s"
	workingDirectorySuffixTemplateConstant         = " (in %s)"
	unknownFailureMessageConstant                  = "unknown error"
	emptyStringConstant                            = ""
	logFieldRunIdentifierConstant                  = "run_id"
)

// CommandEventFormatter builds human-readable messages for build subprocess events.
type CommandEventFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandEventFormatter) BuildStartedMessage(command execshell.ShellCommand) string {
	return fmt.Sprintf(commandStartedMessageTemplateConstant, formatter.formatCommandLabel(command))
}

// BuildSuccessMessage formats the message describing a command that exited cleanly.
func (formatter CommandEventFormatter) BuildSuccessMessage(command execshell.ShellCommand) string {
	return fmt.Sprintf(commandCompletedMessageTemplateConstant, formatter.formatCommandLabel(command))
}

// BuildFailureMessage formats the message describing a non-zero exit or a signal termination.
func (formatter CommandEventFormatter) BuildFailureMessage(command execshell.ShellCommand, result execshell.ExecutionResult) string {
	if len(result.Signal) > 0 {
		return fmt.Sprintf(commandFailedSignalMessageTemplateConstant, formatter.formatCommandLabel(command), result.Signal)
	}
	return fmt.Sprintf(commandFailedExitCodeMessageTemplateConstant, formatter.formatCommandLabel(command), result.ExitCode)
}

// BuildExecutionFailureMessage formats the message describing a command that could not start.
func (formatter CommandEventFormatter) BuildExecutionFailureMessage(command execshell.ShellCommand, failure error) string {
	failureMessage := unknownFailureMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	return fmt.Sprintf(commandExecutionFailureMessageTemplateConstant, formatter.formatCommandLabel(command), failureMessage)
}

func (formatter CommandEventFormatter) formatCommandLabel(command execshell.ShellCommand) string {
	return command.Label() + formatter.formatWorkingDirectorySuffix(command)
}

func (formatter CommandEventFormatter) formatWorkingDirectorySuffix(command execshell.ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

// ConsoleCommandEventLogger reports build subprocess events through a zap logger at debug level.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter CommandEventFormatter
}

// NewConsoleCommandEventLogger constructs an event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger, formatter: CommandEventFormatter{}}
}

// CommandStarted implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Debug(eventLogger.formatter.BuildStartedMessage(command), zap.String(logFieldRunIdentifierConstant, command.RunID))
}

// CommandCompleted implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.Succeeded() {
		eventLogger.logger.Debug(eventLogger.formatter.BuildSuccessMessage(command), zap.String(logFieldRunIdentifierConstant, command.RunID))
		return
	}
	eventLogger.logger.Debug(eventLogger.formatter.BuildFailureMessage(command, result), zap.String(logFieldRunIdentifierConstant, command.RunID))
}

// CommandExecutionFailed implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Debug(eventLogger.formatter.BuildExecutionFailureMessage(command, failure), zap.String(logFieldRunIdentifierConstant, command.RunID))
}
