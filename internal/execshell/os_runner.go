package execshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
)

const (
	environmentAssignmentSeparatorConstant = "="
	environmentAssignmentTemplateConstant  = "%s%s%s"
)

// OSCommandRunner executes commands using the operating system facilities.
// Standard streams are passed through to the subprocess unbuffered.
type OSCommandRunner struct {
	standardInput  io.Reader
	standardOutput io.Writer
	standardError  io.Writer
}

// NewOSCommandRunner constructs a runner that shares the parent's standard streams.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{
		standardInput:  os.Stdin,
		standardOutput: os.Stdout,
		standardError:  os.Stderr,
	}
}

// NewOSCommandRunnerWithStreams constructs a runner attached to the provided streams.
func NewOSCommandRunnerWithStreams(standardInput io.Reader, standardOutput io.Writer, standardError io.Writer) *OSCommandRunner {
	return &OSCommandRunner{
		standardInput:  standardInput,
		standardOutput: standardOutput,
		standardError:  standardError,
	}
}

// Run executes the supplied command and blocks until it terminates.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandArguments := append([]string{}, command.Details.Arguments...)
	executable := exec.CommandContext(executionContext, string(command.Name), commandArguments...)
	executable.Dir = command.Details.WorkingDirectory

	if len(command.Details.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range command.Details.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	executable.Stdin = runner.standardInput
	executable.Stdout = runner.standardOutput
	executable.Stderr = runner.standardError

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return resultFromProcessState(exitError.ProcessState), nil
		}
		return ExecutionResult{}, runError
	}

	return resultFromProcessState(executable.ProcessState), nil
}

func resultFromProcessState(processState *os.ProcessState) ExecutionResult {
	if processState == nil {
		return ExecutionResult{}
	}
	if waitStatus, isWaitStatus := processState.Sys().(syscall.WaitStatus); isWaitStatus && waitStatus.Signaled() {
		return ExecutionResult{ExitCode: processState.ExitCode(), Signal: waitStatus.Signal().String()}
	}
	return ExecutionResult{ExitCode: processState.ExitCode()}
}
