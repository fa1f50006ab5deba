package execshell

// CommandEventObserver is notified as build subprocesses start and finish.
type CommandEventObserver interface {
	// CommandStarted is called before the subprocess is spawned.
	CommandStarted(command ShellCommand)
	// CommandCompleted is called once the subprocess terminated, successfully or not.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed is called when the subprocess could not be started.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
