package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/bundlekit/internal/execshell"
	"github.com/temirov/bundlekit/internal/utils"
)

const (
	execCommandRequiredMessageConstant      = "exec step requires a command or args"
	execExecutorMissingMessageConstant      = "exec step requires a command executor"
	execEnvironmentErrorTemplateConstant    = "unable to load environment for %s: %w"
	execDescriptionTemplateConstant         = "%s (in %s)"
	execEnvironmentLoadedLogMessageConstant = "environment file loaded"
	logFieldEnvironmentFileConstant         = "environment_file"
	logFieldVariableCountConstant           = "variable_count"
	currentDirectoryConstant                = "."
)

// ExecOperation runs one command in a project directory.
type ExecOperation struct {
	StepName        string
	CommandLine     execshell.CommandLine
	Directory       string
	Environment     map[string]string
	EnvironmentFile string
}

func buildExecOperation(step StepConfiguration) (Operation, error) {
	options := ExecStepOptions{}
	if decodeError := decodeStepOptions(step.Operation, step.Options, &options); decodeError != nil {
		return nil, decodeError
	}

	tokens := append(strings.Fields(options.Command), options.Arguments...)
	if len(tokens) == 0 {
		return nil, errors.New(execCommandRequiredMessageConstant)
	}

	commandLine := execshell.NewCommandTokens(tokens...)
	if len(options.Arguments) == 0 {
		commandLine = execshell.NewCommandLine(options.Command)
	}

	directory := strings.TrimSpace(options.Directory)
	if len(directory) == 0 {
		directory = currentDirectoryConstant
	}

	environmentFile := strings.TrimSpace(options.EnvironmentFile)
	if len(environmentFile) == 0 {
		environmentFile = utils.DefaultEnvironmentFileName
	}

	return &ExecOperation{
		StepName:        step.Name,
		CommandLine:     commandLine,
		Directory:       directory,
		Environment:     options.Environment,
		EnvironmentFile: environmentFile,
	}, nil
}

// Name returns the step name, or the operation type when the step is unnamed.
func (operation *ExecOperation) Name() string {
	if len(operation.StepName) > 0 {
		return operation.StepName
	}
	return string(OperationTypeExec)
}

// Describe summarizes the command and where it runs.
func (operation *ExecOperation) Describe() string {
	return fmt.Sprintf(execDescriptionTemplateConstant, operation.CommandLine.String(), operation.Directory)
}

// Execute runs the command with variables from the environment file overlaid by the step's env map.
func (operation *ExecOperation) Execute(executionContext context.Context, environment *Environment) error {
	if environment == nil || environment.CommandExecutor == nil {
		return errors.New(execExecutorMissingMessageConstant)
	}

	workingDirectory := resolveStepPath(environment.BaseDirectory, operation.Directory)
	environmentFilePath := resolveStepPath(workingDirectory, operation.EnvironmentFile)

	fileVariables, loadError := utils.LoadEnvironmentFile(environmentFilePath)
	if loadError != nil {
		return fmt.Errorf(execEnvironmentErrorTemplateConstant, operation.Name(), loadError)
	}
	if environment.Logger != nil && len(fileVariables) > 0 {
		environment.Logger.Debug(
			execEnvironmentLoadedLogMessageConstant,
			zap.String(logFieldEnvironmentFileConstant, environmentFilePath),
			zap.Int(logFieldVariableCountConstant, len(fileVariables)),
		)
	}

	variables := utils.MergeEnvironment(fileVariables, operation.Environment)
	return environment.CommandExecutor.ExecuteWithEnvironment(executionContext, operation.CommandLine, workingDirectory, variables)
}

func resolveStepPath(baseDirectory string, candidatePath string) string {
	if filepath.IsAbs(candidatePath) {
		return filepath.Clean(candidatePath)
	}
	if len(strings.TrimSpace(baseDirectory)) == 0 {
		baseDirectory = currentDirectoryConstant
	}
	return filepath.Join(baseDirectory, candidatePath)
}
