package workflow

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/bundlekit/internal/abort"
	"github.com/temirov/bundlekit/internal/console"
	"github.com/temirov/bundlekit/internal/dependencies"
	"github.com/temirov/bundlekit/internal/execshell"
	pathutils "github.com/temirov/bundlekit/internal/utils/path"
	"github.com/temirov/bundlekit/internal/workflow"
)

const (
	commandUseConstant                       = "pipeline [FILE]"
	commandShortDescriptionConstant          = "Run a pipeline configuration file"
	commandLongDescriptionConstant           = "pipeline executes the exec and report steps defined in a YAML file in order, stopping at the first failure. Step directories are relative to the file."
	fileFlagNameConstant                     = "file"
	fileFlagShorthandConstant                = "f"
	fileFlagDescriptionConstant              = "Pipeline configuration file"
	listFlagNameConstant                     = "list"
	listFlagDescriptionConstant              = "List the pipeline steps without running them"
	configurationPathRequiredMessageConstant = "pipeline configuration path required; provide a positional argument or --file flag"
	loadConfigurationErrorTemplateConstant   = "unable to load pipeline configuration: %w"
	buildOperationsErrorTemplateConstant     = "unable to build pipeline operations: %w"
)

// CommandBuilder assembles the pipeline command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	ConsoleLogger         *console.Logger
	CommandRunner         execshell.CommandRunner
	Terminator            abort.Terminator
	CommandExecutor       workflow.CommandExecutor
	AssetReporter         workflow.AssetReporter
}

// Build constructs the pipeline command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().StringP(fileFlagNameConstant, fileFlagShorthandConstant, "", fileFlagDescriptionConstant)
	command.Flags().Bool(listFlagNameConstant, false, listFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	commandConfiguration := builder.resolveConfiguration()
	flagValue, _ := command.Flags().GetString(fileFlagNameConstant)
	pipelineFile := DeterminePipelineFile(arguments, flagValue, command.Flags().Changed(fileFlagNameConstant), commandConfiguration.File)
	if len(pipelineFile) == 0 {
		if helpError := displayCommandHelp(command); helpError != nil {
			return helpError
		}
		return errors.New(configurationPathRequiredMessageConstant)
	}

	pipelineConfiguration, configurationError := workflow.LoadConfiguration(pathutils.NewHomeExpander().Expand(pipelineFile))
	if configurationError != nil {
		return fmt.Errorf(loadConfigurationErrorTemplateConstant, configurationError)
	}

	operations, operationsError := workflow.BuildOperations(pipelineConfiguration)
	if operationsError != nil {
		return fmt.Errorf(buildOperationsErrorTemplateConstant, operationsError)
	}

	consoleLogger := dependencies.ResolveConsoleLogger(builder.ConsoleLogger)

	listOnly, _ := command.Flags().GetBool(listFlagNameConstant)
	if listOnly {
		consoleLogger.Print(renderStepList(workflow.Describe(operations), consoleLogger.Palette()))
		return nil
	}

	logger := resolveLogger(builder.LoggerProvider)
	commandExecutor, executorError := dependencies.ResolveCommandExecutor(builder.CommandExecutor, logger, consoleLogger, builder.CommandRunner, builder.Terminator)
	if executorError != nil {
		return executorError
	}

	environment := workflow.Environment{
		CommandExecutor: commandExecutor,
		AssetReporter:   dependencies.ResolveAssetReporter(builder.AssetReporter, logger, consoleLogger.Palette()),
		Printer:         consoleLogger,
		Logger:          logger,
		BaseDirectory:   pipelineConfiguration.BaseDirectory,
	}

	return workflow.NewExecutor(operations, environment).Execute(command.Context())
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}
