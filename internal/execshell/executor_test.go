package execshell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/bundlekit/internal/execshell"
)

const (
	testWorkingDirectoryConstant = "/workspace/app"
	testBuildCommandConstant     = "webpack --mode production"
	testRunnerFailureConstant    = "executable file not found"
	testSignalNameConstant       = "killed"
	testHighlightPrefixConstant  = "<"
	testHighlightSuffixConstant  = ">"
)

type recordingCommandRunner struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	return runner.executionResult, runner.executionError
}

type recordingAborter struct {
	messages []string
}

func (aborter *recordingAborter) Abort(message string) {
	aborter.messages = append(aborter.messages, message)
}

type recordingObserver struct {
	started   int
	completed int
	failed    int
}

func (observer *recordingObserver) CommandStarted(execshell.ShellCommand) {
	observer.started++
}

func (observer *recordingObserver) CommandCompleted(execshell.ShellCommand, execshell.ExecutionResult) {
	observer.completed++
}

func (observer *recordingObserver) CommandExecutionFailed(execshell.ShellCommand, error) {
	observer.failed++
}

func TestShellExecutorInitializationValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logger        *zap.Logger
		runner        execshell.CommandRunner
		aborter       execshell.Aborter
		expectError   error
		expectSuccess bool
	}{
		{
			name:        "logger_validation",
			runner:      &recordingCommandRunner{},
			aborter:     &recordingAborter{},
			expectError: execshell.ErrLoggerNotConfigured,
		},
		{
			name:        "runner_validation",
			logger:      zap.NewNop(),
			aborter:     &recordingAborter{},
			expectError: execshell.ErrCommandRunnerNotConfigured,
		},
		{
			name:        "aborter_validation",
			logger:      zap.NewNop(),
			runner:      &recordingCommandRunner{},
			expectError: execshell.ErrAborterNotConfigured,
		},
		{
			name:          "successful_initialization",
			logger:        zap.NewNop(),
			runner:        &recordingCommandRunner{},
			aborter:       &recordingAborter{},
			expectSuccess: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor, creationError := execshell.NewShellExecutor(testCase.logger, testCase.runner, testCase.aborter)
			if testCase.expectSuccess {
				require.NoError(testInstance, creationError)
				require.NotNil(testInstance, executor)
				return
			}
			require.ErrorIs(testInstance, creationError, testCase.expectError)
		})
	}
}

func TestShellExecutorExecuteBehavior(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		runnerResult         execshell.ExecutionResult
		runnerError          error
		expectErrorType      any
		expectedAbortMessage string
		expectedLogCount     int
		expectedCompleted    int
		expectedFailed       int
	}{
		{
			name:              "success",
			runnerResult:      execshell.ExecutionResult{ExitCode: 0},
			expectedLogCount:  2,
			expectedCompleted: 1,
		},
		{
			name:                 "failure_exit_code",
			runnerResult:         execshell.ExecutionResult{ExitCode: 2},
			expectErrorType:      execshell.CommandFailedError{},
			expectedAbortMessage: "Command 'webpack --mode production' failed with exit code 2",
			expectedLogCount:     2,
			expectedCompleted:    1,
		},
		{
			name:                 "terminated_by_signal",
			runnerResult:         execshell.ExecutionResult{ExitCode: -1, Signal: testSignalNameConstant},
			expectErrorType:      execshell.CommandFailedError{},
			expectedAbortMessage: "Command 'webpack --mode production' exited with signal: \"killed\"",
			expectedLogCount:     2,
			expectedCompleted:    1,
		},
		{
			name:                 "runner_error",
			runnerError:          errors.New(testRunnerFailureConstant),
			expectErrorType:      execshell.CommandExecutionError{},
			expectedAbortMessage: "Command 'webpack --mode production' failed with error: \"executable file not found\"",
			expectedLogCount:     2,
			expectedFailed:       1,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observerLogs := observer.New(zap.DebugLevel)
			logger := zap.New(observerCore)

			recordingRunner := &recordingCommandRunner{
				executionResult: testCase.runnerResult,
				executionError:  testCase.runnerError,
			}
			aborter := &recordingAborter{}
			eventObserver := &recordingObserver{}

			shellExecutor, creationError := execshell.NewShellExecutor(logger, recordingRunner, aborter, execshell.WithCommandEventObserver(eventObserver))
			require.NoError(testInstance, creationError)

			executionError := shellExecutor.Execute(context.Background(), execshell.NewCommandLine(testBuildCommandConstant), testWorkingDirectoryConstant)

			if testCase.expectErrorType != nil {
				require.Error(testInstance, executionError)
				require.IsType(testInstance, testCase.expectErrorType, executionError)
				require.Equal(testInstance, []string{testCase.expectedAbortMessage}, aborter.messages)
			} else {
				require.NoError(testInstance, executionError)
				require.Empty(testInstance, aborter.messages)
			}

			require.Len(testInstance, observerLogs.All(), testCase.expectedLogCount)
			for _, entry := range observerLogs.All() {
				require.Equal(testInstance, zap.DebugLevel, entry.Level, entry.Message)
			}
			require.Equal(testInstance, 1, eventObserver.started)
			require.Equal(testInstance, testCase.expectedCompleted, eventObserver.completed)
			require.Equal(testInstance, testCase.expectedFailed, eventObserver.failed)
		})
	}
}

func TestShellExecutorRequiresWorkingDirectory(testInstance *testing.T) {
	recordingRunner := &recordingCommandRunner{}
	aborter := &recordingAborter{}
	shellExecutor, creationError := execshell.NewShellExecutor(zap.NewNop(), recordingRunner, aborter)
	require.NoError(testInstance, creationError)

	for _, workingDirectory := range []string{"", "   "} {
		executionError := shellExecutor.Execute(context.Background(), execshell.NewCommandLine(testBuildCommandConstant), workingDirectory)
		require.ErrorIs(testInstance, executionError, execshell.ErrWorkingDirectoryRequired)

		var programmingError execshell.ProgrammingError
		require.True(testInstance, errors.As(executionError, &programmingError))
	}

	emptyCommandError := shellExecutor.Execute(context.Background(), execshell.NewCommandLine("  "), testWorkingDirectoryConstant)
	require.ErrorIs(testInstance, emptyCommandError, execshell.ErrEmptyCommand)

	require.Empty(testInstance, recordingRunner.recordedCommands)
	require.Empty(testInstance, aborter.messages)
}

func TestShellExecutorResolvesCommandTokens(testInstance *testing.T) {
	testCases := []struct {
		name              string
		commandLine       execshell.CommandLine
		expectedName      execshell.CommandName
		expectedArguments []string
	}{
		{
			name:              "text_split_on_whitespace",
			commandLine:       execshell.NewCommandLine("webpack   --mode\tproduction"),
			expectedName:      "webpack",
			expectedArguments: []string{"--mode", "production"},
		},
		{
			name:              "tokens_used_as_given",
			commandLine:       execshell.NewCommandTokens("node", "scripts/build.js", "--out dir"),
			expectedName:      "node",
			expectedArguments: []string{"scripts/build.js", "--out dir"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			recordingRunner := &recordingCommandRunner{}
			shellExecutor, creationError := execshell.NewShellExecutor(zap.NewNop(), recordingRunner, &recordingAborter{})
			require.NoError(testInstance, creationError)

			environment := map[string]string{"NODE_ENV": "production"}
			executionError := shellExecutor.ExecuteWithEnvironment(context.Background(), testCase.commandLine, testWorkingDirectoryConstant, environment)
			require.NoError(testInstance, executionError)

			require.Len(testInstance, recordingRunner.recordedCommands, 1)
			recordedCommand := recordingRunner.recordedCommands[0]
			require.Equal(testInstance, testCase.expectedName, recordedCommand.Name)
			require.Equal(testInstance, testCase.expectedArguments, recordedCommand.Details.Arguments)
			require.Equal(testInstance, testWorkingDirectoryConstant, recordedCommand.Details.WorkingDirectory)
			require.Equal(testInstance, environment, recordedCommand.Details.EnvironmentVariables)
			require.NotEmpty(testInstance, recordedCommand.RunID)
		})
	}
}

func TestShellExecutorHighlightsCommandInAbortMessage(testInstance *testing.T) {
	aborter := &recordingAborter{}
	highlighter := func(commandText string) string {
		return testHighlightPrefixConstant + commandText + testHighlightSuffixConstant
	}
	shellExecutor, creationError := execshell.NewShellExecutor(
		zap.NewNop(),
		&recordingCommandRunner{executionResult: execshell.ExecutionResult{ExitCode: 1}},
		aborter,
		execshell.WithCommandHighlighter(highlighter),
	)
	require.NoError(testInstance, creationError)

	executionError := shellExecutor.Execute(context.Background(), execshell.NewCommandLine("yarn build"), testWorkingDirectoryConstant)
	require.Error(testInstance, executionError)
	require.Equal(testInstance, []string{"Command '<yarn build>' failed with exit code 1"}, aborter.messages)
}
