package bundle

import (
	"github.com/spf13/cobra"

	"github.com/temirov/bundlekit/internal/console"
	"github.com/temirov/bundlekit/internal/execshell"
	"github.com/temirov/bundlekit/internal/utils"
)

const (
	buildCommandUseConstant              = "build"
	buildCommandShortDescriptionConstant = "Run the production build and report asset sizes"
	buildCommandLongDescriptionConstant  = "build prints the banner, runs the configured build command in the project directory with its .env variables, then prints the asset size report and a completion notice. A failing build aborts with status 1."
	buildCommandFlagNameConstant         = "command"
	buildCommandFlagUsageConstant        = "Build command, split on whitespace."
	noBannerFlagNameConstant             = "no-banner"
	noBannerFlagUsageConstant            = "Skip the startup banner."
	buildStartedMessageConstant          = "Creating an optimized production build..."
	buildSucceededMessageConstant        = "Compiled successfully."
	buildSizesMessageConstant            = "File sizes after gzip:"
)

// BuildCommandBuilder assembles the build command.
type BuildCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Dependencies          Dependencies
}

// Build constructs the build command.
func (builder *BuildCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   buildCommandUseConstant,
		Short: buildCommandShortDescriptionConstant,
		Long:  buildCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	bindProjectFlags(command)
	command.Flags().String(buildCommandFlagNameConstant, DefaultToolsConfiguration().Build.Command, buildCommandFlagUsageConstant)
	command.Flags().String(environmentFileFlagNameConstant, DefaultToolsConfiguration().Build.EnvironmentFile, environmentFileFlagUsageConstant)
	command.Flags().Bool(noBannerFlagNameConstant, false, noBannerFlagUsageConstant)
	return command, nil
}

func (builder *BuildCommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)
	logger := resolveLogger(builder.LoggerProvider)
	consoleLogger := builder.Dependencies.consoleLogger()

	request, requestError := builder.Dependencies.buildReportRequest(command, configuration.Project)
	if requestError != nil {
		return requestError
	}

	showBanner := configuration.Build.ShowBanner
	if command.Flags().Changed(noBannerFlagNameConstant) {
		skipBanner, _ := command.Flags().GetBool(noBannerFlagNameConstant)
		showBanner = !skipBanner
	}
	if showBanner {
		if bannerError := builder.Dependencies.printBanner(consoleLogger, configuration.Banner); bannerError != nil {
			return bannerError
		}
	}

	environmentFile := stringFlagOrDefault(command, environmentFileFlagNameConstant, configuration.Build.EnvironmentFile)
	environmentVariables, environmentError := utils.LoadEnvironmentFile(builder.Dependencies.homeExpander().Resolve(request.ProjectDirectory, environmentFile))
	if environmentError != nil {
		return environmentError
	}

	commandExecutor, executorError := builder.Dependencies.commandExecutor(logger, consoleLogger)
	if executorError != nil {
		return executorError
	}

	consoleLogger.Info(buildStartedMessageConstant)
	buildCommand := execshell.NewCommandLine(stringFlagOrDefault(command, buildCommandFlagNameConstant, configuration.Build.Command))
	if executeError := commandExecutor.ExecuteWithEnvironment(command.Context(), buildCommand, request.ProjectDirectory, environmentVariables); executeError != nil {
		return executeError
	}

	consoleLogger.Ok(buildSucceededMessageConstant)
	consoleLogger.Blank()
	consoleLogger.Info(buildSizesMessageConstant)
	consoleLogger.Blank()
	if reportError := printReport(builder.Dependencies.assetReporter(logger, consoleLogger), consoleLogger, request); reportError != nil {
		return reportError
	}

	if len(configuration.Build.CompletionMessage) > 0 {
		consoleLogger.Print(console.YellowBox(consoleLogger.Palette(), configuration.Build.CompletionMessage))
	}
	return nil
}
