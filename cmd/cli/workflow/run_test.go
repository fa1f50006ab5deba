package workflow_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	workflowcmd "github.com/temirov/bundlekit/cmd/cli/workflow"
	"github.com/temirov/bundlekit/internal/assets"
	"github.com/temirov/bundlekit/internal/console"
	"github.com/temirov/bundlekit/internal/execshell"
)

const (
	pipelineFileNameConstant        = "pipeline.yaml"
	pipelineConfigurationConstant   = "steps:\n  - name: install\n    operation: exec\n    with:\n      command: npm ci\n      dir: web\n  - operation: report\n    with:\n      dir: web\n      stats: build/stats.json\n      stats_format: webpack\n      output_dir: build\n"
	pipelineStatisticsConstant      = `{"assets":[{"name":"main.js"}]}`
	pipelineExpectedListingConstant = "\n • install: npm ci (in web)\n • report: webpack statistics build/stats.json for build\n"
)

type recordingCommandRunner struct {
	result   execshell.ExecutionResult
	commands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.commands = append(runner.commands, command)
	return runner.result, nil
}

type recordingTerminator struct {
	exitCodes []int
}

func (terminator *recordingTerminator) Terminate(exitCode int) {
	terminator.exitCodes = append(terminator.exitCodes, exitCode)
}

type countingAssetReporter struct {
	requests []assets.ReportRequest
}

func (reporter *countingAssetReporter) Report(request assets.ReportRequest) (assets.Report, error) {
	reporter.requests = append(reporter.requests, request)
	budget := request.Budget
	if budget <= 0 {
		budget = assets.DefaultBudget
	}
	descriptors := []assets.Descriptor{{Folder: "build", Name: "main.js", Size: 2048, SizeCompressed: 512}}
	return assets.NewFormatter(console.NewPalette(false)).Format(descriptors, budget), nil
}

type pipelineHarness struct {
	output     bytes.Buffer
	errors     bytes.Buffer
	runner     *recordingCommandRunner
	terminator *recordingTerminator
	reporter   *countingAssetReporter
}

func newPipelineHarness(result execshell.ExecutionResult) *pipelineHarness {
	return &pipelineHarness{
		runner:     &recordingCommandRunner{result: result},
		terminator: &recordingTerminator{},
		reporter:   &countingAssetReporter{},
	}
}

func (harness *pipelineHarness) builder() *workflowcmd.CommandBuilder {
	return &workflowcmd.CommandBuilder{
		ConsoleLogger: console.NewLogger(console.Streams{Output: &harness.output, Error: &harness.errors}, console.NewPalette(false)),
		CommandRunner: harness.runner,
		Terminator:    harness.terminator,
		AssetReporter: harness.reporter,
	}
}

func writePipelineProject(testInstance *testing.T) (string, string) {
	testInstance.Helper()
	baseDirectory := testInstance.TempDir()
	buildDirectory := filepath.Join(baseDirectory, "web", "build")
	require.NoError(testInstance, os.MkdirAll(buildDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(buildDirectory, "stats.json"), []byte(pipelineStatisticsConstant), 0o600))
	pipelinePath := filepath.Join(baseDirectory, pipelineFileNameConstant)
	require.NoError(testInstance, os.WriteFile(pipelinePath, []byte(pipelineConfigurationConstant), 0o600))
	return baseDirectory, pipelinePath
}

func executePipelineCommand(testInstance *testing.T, builder *workflowcmd.CommandBuilder, arguments ...string) error {
	testInstance.Helper()
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetArgs(arguments)
	command.SetContext(context.Background())
	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SilenceUsage = true
	command.SilenceErrors = true
	return command.Execute()
}

func TestPipelineCommandListsSteps(testInstance *testing.T) {
	_, pipelinePath := writePipelineProject(testInstance)
	harness := newPipelineHarness(execshell.ExecutionResult{})

	require.NoError(testInstance, executePipelineCommand(testInstance, harness.builder(), "--file", pipelinePath, "--list"))

	require.Equal(testInstance, pipelineExpectedListingConstant, harness.output.String())
	require.Empty(testInstance, harness.runner.commands)
	require.Empty(testInstance, harness.reporter.requests)
}

func TestPipelineCommandRunsStepsRelativeToFile(testInstance *testing.T) {
	baseDirectory, pipelinePath := writePipelineProject(testInstance)
	harness := newPipelineHarness(execshell.ExecutionResult{})

	require.NoError(testInstance, executePipelineCommand(testInstance, harness.builder(), pipelinePath))

	require.Len(testInstance, harness.runner.commands, 1)
	require.Equal(testInstance, "npm ci", harness.runner.commands[0].Label())
	require.Equal(testInstance, filepath.Join(baseDirectory, "web"), harness.runner.commands[0].Details.WorkingDirectory)

	require.Len(testInstance, harness.reporter.requests, 1)
	require.Equal(testInstance, filepath.Join(baseDirectory, "web"), harness.reporter.requests[0].ProjectDirectory)
	require.Equal(testInstance, "build/stats.json", harness.reporter.requests[0].StatisticsPath)
	require.Equal(testInstance, assets.StatsFormatWebpack, harness.reporter.requests[0].StatsFormat)

	require.Equal(testInstance, "   "+filepath.Join("build", "main.js")+"   2 KB (512 B gzipped)\n\n", harness.output.String())
	require.Empty(testInstance, harness.errors.String())
}

func TestPipelineCommandStopsAtFailingStep(testInstance *testing.T) {
	_, pipelinePath := writePipelineProject(testInstance)
	harness := newPipelineHarness(execshell.ExecutionResult{ExitCode: 4})

	executeError := executePipelineCommand(testInstance, harness.builder(), "-f", pipelinePath)
	require.ErrorContains(testInstance, executeError, "pipeline step install failed")

	require.Equal(testInstance, []int{1}, harness.terminator.exitCodes)
	require.Equal(testInstance, "!!! Command 'npm ci' failed with exit code 4\n!!! Aborting.\n", harness.errors.String())
	require.Empty(testInstance, harness.reporter.requests)
}

func TestPipelineCommandReportsMissingFile(testInstance *testing.T) {
	harness := newPipelineHarness(execshell.ExecutionResult{})
	missingPath := filepath.Join(testInstance.TempDir(), pipelineFileNameConstant)

	executeError := executePipelineCommand(testInstance, harness.builder(), missingPath)
	require.ErrorContains(testInstance, executeError, "unable to load pipeline configuration")
	require.ErrorIs(testInstance, executeError, os.ErrNotExist)
	require.Empty(testInstance, harness.runner.commands)
}

func TestPipelineCommandUsesConfiguredFile(testInstance *testing.T) {
	_, pipelinePath := writePipelineProject(testInstance)
	harness := newPipelineHarness(execshell.ExecutionResult{})
	builder := harness.builder()
	builder.ConfigurationProvider = func() workflowcmd.CommandConfiguration {
		return workflowcmd.CommandConfiguration{File: pipelinePath}
	}

	require.NoError(testInstance, executePipelineCommand(testInstance, builder, "--list"))
	require.Equal(testInstance, pipelineExpectedListingConstant, harness.output.String())
}

func TestDeterminePipelineFile(testInstance *testing.T) {
	testCases := []struct {
		name        string
		arguments   []string
		flagValue   string
		flagChanged bool
		configured  string
		expected    string
	}{
		{name: "positional_wins", arguments: []string{" ci.yaml "}, flagValue: "flag.yaml", flagChanged: true, configured: "pipeline.yaml", expected: "ci.yaml"},
		{name: "flag_over_configuration", flagValue: "flag.yaml", flagChanged: true, configured: "pipeline.yaml", expected: "flag.yaml"},
		{name: "unchanged_flag_ignored", flagValue: "flag.yaml", configured: "pipeline.yaml", expected: "pipeline.yaml"},
		{name: "blank_flag_falls_back", flagValue: "  ", flagChanged: true, configured: "pipeline.yaml", expected: "pipeline.yaml"},
		{name: "nothing_available", expected: ""},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expected, workflowcmd.DeterminePipelineFile(testCase.arguments, testCase.flagValue, testCase.flagChanged, testCase.configured))
		})
	}
}

func TestCommandConfigurationSanitize(testInstance *testing.T) {
	require.Equal(testInstance, workflowcmd.DefaultCommandConfiguration(), workflowcmd.CommandConfiguration{File: "   "}.Sanitize())
	require.Equal(testInstance, "ci.yaml", workflowcmd.CommandConfiguration{File: " ci.yaml "}.Sanitize().File)
	require.Equal(testInstance, map[string]any{"tools.pipeline.file": "pipeline.yaml"}, workflowcmd.DefaultConfigurationValues("tools.pipeline"))
}
