package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/bundlekit/internal/assets"
)

const (
	reportStatisticsRequiredMessageConstant  = "report step requires a stats file"
	reportOutputRequiredMessageConstant      = "report step requires an output_dir"
	reportDependenciesMissingMessageConstant = "report step requires an asset reporter and printer"
	reportDescriptionTemplateConstant        = "%s statistics %s for %s"
)

// ReportOperation prints the asset size report of a finished build.
type ReportOperation struct {
	StepName        string
	Directory       string
	Statistics      string
	StatsFormat     assets.StatsFormat
	OutputDirectory string
	Budget          int64
}

func buildReportOperation(step StepConfiguration) (Operation, error) {
	options := ReportStepOptions{}
	if decodeError := decodeStepOptions(step.Operation, step.Options, &options); decodeError != nil {
		return nil, decodeError
	}

	statistics := strings.TrimSpace(options.Statistics)
	if len(statistics) == 0 {
		return nil, errors.New(reportStatisticsRequiredMessageConstant)
	}
	outputDirectory := strings.TrimSpace(options.OutputDirectory)
	if len(outputDirectory) == 0 {
		return nil, errors.New(reportOutputRequiredMessageConstant)
	}

	statsFormat, formatError := assets.ParseStatsFormat(options.StatsFormat)
	if formatError != nil {
		return nil, formatError
	}

	directory := strings.TrimSpace(options.Directory)
	if len(directory) == 0 {
		directory = currentDirectoryConstant
	}

	budget := options.Budget
	if budget <= 0 {
		budget = assets.DefaultBudget
	}

	return &ReportOperation{
		StepName:        step.Name,
		Directory:       directory,
		Statistics:      statistics,
		StatsFormat:     statsFormat,
		OutputDirectory: outputDirectory,
		Budget:          budget,
	}, nil
}

// Name returns the step name, or the operation type when the step is unnamed.
func (operation *ReportOperation) Name() string {
	if len(operation.StepName) > 0 {
		return operation.StepName
	}
	return string(OperationTypeReport)
}

// Describe summarizes the statistics source and output directory.
func (operation *ReportOperation) Describe() string {
	return fmt.Sprintf(reportDescriptionTemplateConstant, operation.StatsFormat, operation.Statistics, operation.OutputDirectory)
}

// Execute renders the report and prints it followed by a blank line.
func (operation *ReportOperation) Execute(executionContext context.Context, environment *Environment) error {
	if environment == nil || environment.AssetReporter == nil || environment.Printer == nil {
		return errors.New(reportDependenciesMissingMessageConstant)
	}

	report, reportError := environment.AssetReporter.Report(assets.ReportRequest{
		ProjectDirectory: resolveStepPath(environment.BaseDirectory, operation.Directory),
		StatisticsPath:   operation.Statistics,
		StatsFormat:      operation.StatsFormat,
		OutputDirectory:  operation.OutputDirectory,
		Budget:           operation.Budget,
	})
	if reportError != nil {
		return reportError
	}

	rendered := report.Render()
	if len(rendered) == 0 {
		return nil
	}
	environment.Printer.Print(rendered)
	environment.Printer.Blank()
	return nil
}
