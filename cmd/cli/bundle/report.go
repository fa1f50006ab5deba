package bundle

import (
	"github.com/spf13/cobra"

	"github.com/temirov/bundlekit/internal/assets"
	"github.com/temirov/bundlekit/internal/console"
	"github.com/temirov/bundlekit/internal/utils/flags"
	"github.com/temirov/bundlekit/internal/workflow"
)

const (
	reportCommandUseConstant              = "report"
	reportCommandShortDescriptionConstant = "Print emitted asset sizes"
	reportCommandLongDescriptionConstant  = "report reads bundler statistics, measures every emitted script and stylesheet, and prints raw and gzip sizes with a warning when a script exceeds the size budget."
	statsFlagNameConstant                 = "stats"
	statsFlagUsageConstant                = "Path to the bundler statistics file, relative to the project directory."
	statsFormatFlagNameConstant           = "stats-format"
	statsFormatFlagUsageConstant          = "Bundler that produced the statistics file."
	outputDirectoryFlagNameConstant       = "output-dir"
	outputDirectoryFlagUsageConstant      = "Build output directory, relative to the project directory."
	budgetFlagNameConstant                = "budget"
	budgetFlagUsageConstant               = "Raw size in bytes above which a script is reported as oversized."
	projectDirectoryFlagUsageConstant     = "Project directory."
)

var statsFormatFlagDefinition = flags.ChoiceFlagDefinition{
	Name:          statsFormatFlagNameConstant,
	DefaultChoice: string(assets.StatsFormatWebpack),
	Choices:       []string{string(assets.StatsFormatWebpack), string(assets.StatsFormatEsbuild)},
	Description:   statsFormatFlagUsageConstant,
}

// ReportCommandBuilder assembles the report command.
type ReportCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Dependencies          Dependencies
}

// Build constructs the report command.
func (builder *ReportCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   reportCommandUseConstant,
		Short: reportCommandShortDescriptionConstant,
		Long:  reportCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	bindProjectFlags(command)
	return command, nil
}

func (builder *ReportCommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)
	logger := resolveLogger(builder.LoggerProvider)
	consoleLogger := builder.Dependencies.consoleLogger()

	request, requestError := builder.Dependencies.buildReportRequest(command, configuration.Project)
	if requestError != nil {
		return requestError
	}

	return printReport(builder.Dependencies.assetReporter(logger, consoleLogger), consoleLogger, request)
}

func bindProjectFlags(command *cobra.Command) {
	defaults := DefaultToolsConfiguration().Project
	command.Flags().String(directoryFlagNameConstant, defaults.Directory, projectDirectoryFlagUsageConstant)
	command.Flags().String(statsFlagNameConstant, defaults.Statistics, statsFlagUsageConstant)
	flags.BindChoiceFlag(command.Flags(), statsFormatFlagDefinition)
	command.Flags().String(outputDirectoryFlagNameConstant, defaults.OutputDirectory, outputDirectoryFlagUsageConstant)
	command.Flags().Int64(budgetFlagNameConstant, defaults.Budget, budgetFlagUsageConstant)
}

func (resolved Dependencies) buildReportRequest(command *cobra.Command, project ProjectConfiguration) (assets.ReportRequest, error) {
	projectDirectory, directoryError := resolved.resolveProjectDirectory(stringFlagOrDefault(command, directoryFlagNameConstant, project.Directory))
	if directoryError != nil {
		return assets.ReportRequest{}, directoryError
	}

	rawFormat, choiceError := flags.ResolveChoice(statsFormatFlagDefinition, stringFlagOrDefault(command, statsFormatFlagNameConstant, project.StatsFormat))
	if choiceError != nil {
		return assets.ReportRequest{}, choiceError
	}
	statsFormat, formatError := assets.ParseStatsFormat(rawFormat)
	if formatError != nil {
		return assets.ReportRequest{}, formatError
	}

	homeExpander := resolved.homeExpander()
	return assets.ReportRequest{
		ProjectDirectory: projectDirectory,
		StatisticsPath:   homeExpander.Expand(stringFlagOrDefault(command, statsFlagNameConstant, project.Statistics)),
		StatsFormat:      statsFormat,
		OutputDirectory:  homeExpander.Expand(stringFlagOrDefault(command, outputDirectoryFlagNameConstant, project.OutputDirectory)),
		Budget:           int64FlagOrDefault(command, budgetFlagNameConstant, project.Budget),
	}, nil
}

func printReport(reporter workflow.AssetReporter, consoleLogger *console.Logger, request assets.ReportRequest) error {
	report, reportError := reporter.Report(request)
	if reportError != nil {
		return reportError
	}
	rendered := report.Render()
	if len(rendered) == 0 {
		return nil
	}
	consoleLogger.Print(rendered)
	consoleLogger.Blank()
	return nil
}
