package assets

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	reporterLoadErrorTemplateConstant    = "unable to load build statistics: %w"
	reporterCollectErrorTemplateConstant = "unable to collect assets: %w"
	reporterCurrentDirectoryConstant     = "."
)

// StatisticsSource loads bundler statistics.
type StatisticsSource interface {
	Load(statisticsPath string, format StatsFormat, outputRoot string) (Statistics, error)
}

// ReportRequest locates the statistics and output directory of one project build.
// Relative paths are resolved against ProjectDirectory.
type ReportRequest struct {
	ProjectDirectory string
	StatisticsPath   string
	StatsFormat      StatsFormat
	OutputDirectory  string
	Budget           int64
}

// Reporter loads statistics, measures emitted assets, and formats the size report.
type Reporter struct {
	source    StatisticsSource
	collector *Collector
	formatter Formatter
}

// NewReporter constructs a Reporter. A nil source reads statistics from disk and a nil collector
// measures the OS file system.
func NewReporter(source StatisticsSource, collector *Collector, formatter Formatter) *Reporter {
	if source == nil {
		source = NewStatisticsLoader()
	}
	if collector == nil {
		collector = NewCollector(nil, nil, nil)
	}
	return &Reporter{source: source, collector: collector, formatter: formatter}
}

// Report produces the asset report for request. A non-positive budget selects DefaultBudget.
func (reporter *Reporter) Report(request ReportRequest) (Report, error) {
	projectDirectory := request.ProjectDirectory
	if len(strings.TrimSpace(projectDirectory)) == 0 {
		projectDirectory = reporterCurrentDirectoryConstant
	}

	outputDirectory := resolveAgainst(projectDirectory, request.OutputDirectory)
	outputRoot := request.OutputDirectory
	if filepath.IsAbs(outputRoot) {
		relativeRoot, relativeError := filepath.Rel(projectDirectory, outputRoot)
		if relativeError != nil {
			relativeRoot = ""
		}
		outputRoot = relativeRoot
	}

	statisticsPath := request.StatisticsPath
	if len(strings.TrimSpace(statisticsPath)) > 0 {
		statisticsPath = resolveAgainst(projectDirectory, statisticsPath)
	}

	statistics, loadError := reporter.source.Load(statisticsPath, request.StatsFormat, outputRoot)
	if loadError != nil {
		return Report{}, fmt.Errorf(reporterLoadErrorTemplateConstant, loadError)
	}

	descriptors, collectError := reporter.collector.Collect(statistics, outputDirectory)
	if collectError != nil {
		return Report{}, fmt.Errorf(reporterCollectErrorTemplateConstant, collectError)
	}

	budget := request.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}
	return reporter.formatter.Format(descriptors, budget), nil
}

func resolveAgainst(baseDirectory string, candidatePath string) string {
	if filepath.IsAbs(candidatePath) {
		return filepath.Clean(candidatePath)
	}
	return filepath.Join(baseDirectory, candidatePath)
}
