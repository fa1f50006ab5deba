package execshell

import (
	"fmt"
)

const (
	abortExitCodeTemplateConstant       = "Command '%s' failed with exit code %d"
	abortSignalTemplateConstant         = "Command '%s' exited with signal: \"%s\""
	abortExecutionErrorTemplateConstant = "Command '%s' failed with error: \"%v\""
)

// CommandHighlighter styles a command label inside abort messages.
type CommandHighlighter func(commandText string) string

// CommandMessageFormatter builds the abort messages for failed commands.
type CommandMessageFormatter struct {
	Highlight CommandHighlighter
}

// BuildFailureMessage names the command and its exit status or terminating signal.
func (formatter CommandMessageFormatter) BuildFailureMessage(commandLine CommandLine, result ExecutionResult) string {
	if len(result.Signal) > 0 {
		return fmt.Sprintf(abortSignalTemplateConstant, formatter.highlight(commandLine), result.Signal)
	}
	return fmt.Sprintf(abortExitCodeTemplateConstant, formatter.highlight(commandLine), result.ExitCode)
}

// BuildExecutionFailureMessage names the command and the error that prevented it from running.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(commandLine CommandLine, failure error) string {
	return fmt.Sprintf(abortExecutionErrorTemplateConstant, formatter.highlight(commandLine), failure)
}

func (formatter CommandMessageFormatter) highlight(commandLine CommandLine) string {
	if formatter.Highlight == nil {
		return commandLine.String()
	}
	return formatter.Highlight(commandLine.String())
}
