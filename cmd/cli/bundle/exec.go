package bundle

import (
	"github.com/spf13/cobra"

	"github.com/temirov/bundlekit/internal/execshell"
	"github.com/temirov/bundlekit/internal/utils"
)

const (
	execCommandUseConstant              = "exec [flags] -- COMMAND [ARGS...]"
	execCommandShortDescriptionConstant = "Run a command and abort on failure"
	execCommandLongDescriptionConstant  = "exec runs a single command in a directory with inherited standard streams. A non-zero exit status, a terminating signal, or a failure to start prints an error and exits with status 1."
	directoryFlagNameConstant           = "dir"
	directoryFlagUsageConstant          = "Working directory of the command."
	environmentFileFlagNameConstant     = "env-file"
	environmentFileFlagUsageConstant    = "Optional dotenv file whose variables are added to the command environment."
)

// ExecCommandBuilder assembles the exec command.
type ExecCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Dependencies          Dependencies
}

// Build constructs the exec command.
func (builder *ExecCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   execCommandUseConstant,
		Short: execCommandShortDescriptionConstant,
		Long:  execCommandLongDescriptionConstant,
		Args:  cobra.MinimumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(directoryFlagNameConstant, defaultProjectDirectoryConstant, directoryFlagUsageConstant)
	command.Flags().String(environmentFileFlagNameConstant, "", environmentFileFlagUsageConstant)

	return command, nil
}

func (builder *ExecCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)
	logger := resolveLogger(builder.LoggerProvider)
	consoleLogger := builder.Dependencies.consoleLogger()

	directory := stringFlagOrDefault(command, directoryFlagNameConstant, configuration.Project.Directory)
	workingDirectory, directoryError := builder.Dependencies.resolveProjectDirectory(directory)
	if directoryError != nil {
		return directoryError
	}

	environmentFile := stringFlagOrDefault(command, environmentFileFlagNameConstant, "")
	environmentVariables, environmentError := utils.LoadEnvironmentFile(builder.Dependencies.homeExpander().Resolve(workingDirectory, environmentFile))
	if environmentError != nil {
		return environmentError
	}

	commandExecutor, executorError := builder.Dependencies.commandExecutor(logger, consoleLogger)
	if executorError != nil {
		return executorError
	}

	return commandExecutor.ExecuteWithEnvironment(command.Context(), execshell.NewCommandTokens(arguments...), workingDirectory, environmentVariables)
}
