package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/bundlekit/cmd/cli/bundle"
	workflowcmd "github.com/temirov/bundlekit/cmd/cli/workflow"
	"github.com/temirov/bundlekit/internal/utils"
	"github.com/temirov/bundlekit/internal/utils/flags"
)

const (
	applicationNameConstant                 = "bundlekit"
	applicationShortDescriptionConstant     = "Build, measure, and report web application bundles"
	applicationLongDescriptionConstant      = "bundlekit runs web application build commands with a fail-fast abort path and reports the raw and gzip sizes of the emitted scripts and stylesheets."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "BUNDLEKIT"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	commandBuildErrorTemplateConstant       = "unable to build %s command: %w"
	rootCommandDebugMessageConstant         = "bundlekit CLI diagnostics"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentsConstant               = "arguments"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	toolsConfigurationKeyConstant           = "tools"
	pipelineConfigurationKeyConstant        = toolsConfigurationKeyConstant + ".pipeline"
)

var (
	logLevelFlagDefinition = flags.ChoiceFlagDefinition{
		Name:          logLevelFlagNameConstant,
		DefaultChoice: string(utils.LogLevelInfo),
		Choices:       []string{string(utils.LogLevelDebug), string(utils.LogLevelInfo), string(utils.LogLevelWarn), string(utils.LogLevelError)},
		Description:   logLevelFlagUsageConstant,
	}
	logFormatFlagDefinition = flags.ChoiceFlagDefinition{
		Name:          logFormatFlagNameConstant,
		DefaultChoice: string(utils.LogFormatConsole),
		Choices:       []string{string(utils.LogFormatStructured), string(utils.LogFormatConsole)},
		Description:   logFormatFlagUsageConstant,
	}
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for the bundle commands and the pipeline command.
type ApplicationToolsConfiguration struct {
	bundle.ToolsConfiguration `mapstructure:",squash"`
	Pipeline                  workflowcmd.CommandConfiguration `mapstructure:"pipeline"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
}

// NewApplication assembles a fully wired CLI application instance backed by the process streams.
func NewApplication() *Application {
	application, _ := NewApplicationWithDependencies(bundle.Dependencies{})
	return application
}

// NewApplicationWithDependencies assembles the CLI with injected collaborators shared by every command.
func NewApplicationWithDependencies(dependencies bundle.Dependencies) (*Application, error) {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		utils.DefaultConfigurationSearchPaths(applicationNameConstant),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	flags.BindChoiceFlag(cobraCommand.PersistentFlags(), logLevelFlagDefinition)
	flags.BindChoiceFlag(cobraCommand.PersistentFlags(), logFormatFlagDefinition)

	loggerProvider := func() *zap.Logger {
		return application.logger
	}
	toolsConfigurationProvider := func() bundle.ToolsConfiguration {
		return application.configuration.Tools.ToolsConfiguration
	}

	commandBuilders := []struct {
		name  string
		build func() (*cobra.Command, error)
	}{
		{name: "exec", build: (&bundle.ExecCommandBuilder{LoggerProvider: loggerProvider, ConfigurationProvider: toolsConfigurationProvider, Dependencies: dependencies}).Build},
		{name: "report", build: (&bundle.ReportCommandBuilder{LoggerProvider: loggerProvider, ConfigurationProvider: toolsConfigurationProvider, Dependencies: dependencies}).Build},
		{name: "build", build: (&bundle.BuildCommandBuilder{LoggerProvider: loggerProvider, ConfigurationProvider: toolsConfigurationProvider, Dependencies: dependencies}).Build},
		{name: "banner", build: (&bundle.BannerCommandBuilder{ConfigurationProvider: toolsConfigurationProvider, Dependencies: dependencies}).Build},
		{name: "pipeline", build: (&workflowcmd.CommandBuilder{
			LoggerProvider: loggerProvider,
			ConfigurationProvider: func() workflowcmd.CommandConfiguration {
				return application.configuration.Tools.Pipeline
			},
			ConsoleLogger:   dependencies.ConsoleLogger,
			CommandRunner:   dependencies.CommandRunner,
			Terminator:      dependencies.Terminator,
			CommandExecutor: dependencies.CommandExecutor,
			AssetReporter:   dependencies.AssetReporter,
		}).Build},
	}

	for _, commandBuilder := range commandBuilders {
		subcommand, buildError := commandBuilder.build()
		if buildError != nil {
			return nil, fmt.Errorf(commandBuildErrorTemplateConstant, commandBuilder.name, buildError)
		}
		cobraCommand.AddCommand(subcommand)
	}

	application.rootCommand = cobraCommand

	return application, nil
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := utils.SyncLogger(application.logger); syncError != nil {
		return errors.Join(executionError, fmt.Errorf(loggerSyncErrorTemplateConstant, syncError))
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}
	for configurationKey, configurationValue := range bundle.DefaultConfigurationValues(toolsConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range workflowcmd.DefaultConfigurationValues(pipelineConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	logLevel, logLevelError := application.resolveChoiceOverride(command, logLevelFlagDefinition, application.configuration.Common.LogLevel)
	if logLevelError != nil {
		return logLevelError
	}
	application.configuration.Common.LogLevel = logLevel

	logFormat, logFormatError := application.resolveChoiceOverride(command, logFormatFlagDefinition, application.configuration.Common.LogFormat)
	if logFormatError != nil {
		return logFormatError
	}
	application.configuration.Common.LogFormat = logFormat

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

// resolveChoiceOverride prefers an explicitly set persistent flag over the configured value.
func (application *Application) resolveChoiceOverride(command *cobra.Command, definition flags.ChoiceFlagDefinition, configured string) (string, error) {
	flagSet := application.changedPersistentFlagSet(command, definition.Name)
	if flagSet == nil {
		return flags.ResolveChoice(definition, configured)
	}
	flagValue, _ := flagSet.GetString(definition.Name)
	return flags.ResolveChoice(definition, strings.TrimSpace(flagValue))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	return command.Help()
}

func (application *Application) changedPersistentFlagSet(command *cobra.Command, flagName string) *pflag.FlagSet {
	if command == nil {
		return nil
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return flagSet
		}
	}

	return nil
}
