package dependencies_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/bundlekit/internal/console"
	"github.com/temirov/bundlekit/internal/dependencies"
	"github.com/temirov/bundlekit/internal/execshell"
)

type stubCommandRunner struct {
	result execshell.ExecutionResult
}

func (runner stubCommandRunner) Run(context.Context, execshell.ShellCommand) (execshell.ExecutionResult, error) {
	return runner.result, nil
}

type recordingTerminator struct {
	exitCodes []int
}

func (terminator *recordingTerminator) Terminate(exitCode int) {
	terminator.exitCodes = append(terminator.exitCodes, exitCode)
}

func TestResolveCommandExecutorAbortsThroughConsole(testInstance *testing.T) {
	var outputBuffer bytes.Buffer
	var errorBuffer bytes.Buffer
	consoleLogger := console.NewLogger(console.Streams{Output: &outputBuffer, Error: &errorBuffer}, console.NewPalette(false))
	terminator := &recordingTerminator{}

	commandExecutor, resolveError := dependencies.ResolveCommandExecutor(nil, zap.NewNop(), consoleLogger, stubCommandRunner{result: execshell.ExecutionResult{ExitCode: 3}}, terminator)
	require.NoError(testInstance, resolveError)

	executeError := commandExecutor.ExecuteWithEnvironment(context.Background(), execshell.NewCommandLine("npm run build"), testInstance.TempDir(), nil)
	require.Error(testInstance, executeError)
	require.Equal(testInstance, []int{1}, terminator.exitCodes)
	require.Equal(testInstance, "\n", outputBuffer.String())
	require.Equal(testInstance, "!!! Command 'npm run build' failed with exit code 3\n!!! Aborting.\n", errorBuffer.String())
}

func TestResolveCommandExecutorPrefersExisting(testInstance *testing.T) {
	existing, resolveError := dependencies.ResolveCommandExecutor(nil, nil, console.NewLogger(console.Streams{}, console.NewPalette(false)), stubCommandRunner{}, &recordingTerminator{})
	require.NoError(testInstance, resolveError)

	resolved, secondResolveError := dependencies.ResolveCommandExecutor(existing, nil, nil, nil, nil)
	require.NoError(testInstance, secondResolveError)
	require.Same(testInstance, existing, resolved)
}

func TestResolveAssetReporterBuildsDefault(testInstance *testing.T) {
	require.NotNil(testInstance, dependencies.ResolveAssetReporter(nil, nil, console.NewPalette(false)))
}
