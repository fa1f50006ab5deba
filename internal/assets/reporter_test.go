package assets_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/bundlekit/internal/assets"
	"github.com/temirov/bundlekit/internal/console"
)

type recordingStatisticsSource struct {
	statistics         assets.Statistics
	failure            error
	recordedPath       string
	recordedFormat     assets.StatsFormat
	recordedOutputRoot string
}

func (source *recordingStatisticsSource) Load(statisticsPath string, format assets.StatsFormat, outputRoot string) (assets.Statistics, error) {
	source.recordedPath = statisticsPath
	source.recordedFormat = format
	source.recordedOutputRoot = outputRoot
	if source.failure != nil {
		return nil, source.failure
	}
	return source.statistics, nil
}

func TestReporterResolvesPathsAgainstProjectDirectory(testInstance *testing.T) {
	projectDirectory := testInstance.TempDir()
	writeSizedFile(testInstance, filepath.Join(projectDirectory, "dist", "app.js"), 2048)

	testCases := []struct {
		name               string
		outputDirectory    string
		expectedOutputRoot string
	}{
		{name: "relative_output_directory", outputDirectory: "dist", expectedOutputRoot: "dist"},
		{name: "absolute_output_directory", outputDirectory: filepath.Join(projectDirectory, "dist"), expectedOutputRoot: "dist"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			source := &recordingStatisticsSource{statistics: assets.CompilationSet{assets.CompilationAssets{{Name: "app.js"}}}}
			reporter := assets.NewReporter(source, assets.NewCollector(nil, fixedCompressor{size: 100}, nil), assets.NewFormatter(console.NewPalette(false)))

			report, reportError := reporter.Report(assets.ReportRequest{
				ProjectDirectory: projectDirectory,
				StatisticsPath:   "stats.json",
				StatsFormat:      assets.StatsFormatEsbuild,
				OutputDirectory:  testCase.outputDirectory,
			})
			require.NoError(testInstance, reportError)

			require.Equal(testInstance, filepath.Join(projectDirectory, "stats.json"), source.recordedPath)
			require.Equal(testInstance, assets.StatsFormatEsbuild, source.recordedFormat)
			require.Equal(testInstance, testCase.expectedOutputRoot, source.recordedOutputRoot)
			require.Len(testInstance, report.Rows, 1)
			require.Equal(testInstance, assets.Descriptor{Folder: "dist", Name: "app.js", Size: 2048, SizeCompressed: 100}, report.Rows[0].Descriptor)
		})
	}
}

func TestReporterAppliesDefaultBudget(testInstance *testing.T) {
	projectDirectory := testInstance.TempDir()
	writeSizedFile(testInstance, filepath.Join(projectDirectory, "build", "main.js"), assets.DefaultBudget+1)

	source := &recordingStatisticsSource{statistics: assets.CompilationSet{assets.CompilationAssets{{Name: "main.js"}}}}
	reporter := assets.NewReporter(source, assets.NewCollector(nil, fixedCompressor{size: 1}, nil), assets.NewFormatter(console.NewPalette(false)))

	report, reportError := reporter.Report(assets.ReportRequest{ProjectDirectory: projectDirectory, StatisticsPath: "stats.json", OutputDirectory: "build"})
	require.NoError(testInstance, reportError)
	require.True(testInstance, report.Oversized)
}

func TestReporterEndToEndWithWebpackStatistics(testInstance *testing.T) {
	projectDirectory := testInstance.TempDir()
	writeSizedFile(testInstance, filepath.Join(projectDirectory, "build", "static", "js", "main.js"), 4096)
	require.NoError(testInstance, os.WriteFile(
		filepath.Join(projectDirectory, "stats.json"),
		[]byte(`{"assets":[{"name":"static/js/main.js"},{"name":"static/js/missing.js"}]}`),
		0o600,
	))

	reporter := assets.NewReporter(nil, assets.NewCollector(nil, fixedCompressor{size: 2048}, nil), assets.NewFormatter(console.NewPalette(false)))
	report, reportError := reporter.Report(assets.ReportRequest{
		ProjectDirectory: projectDirectory,
		StatisticsPath:   "stats.json",
		StatsFormat:      assets.StatsFormatWebpack,
		OutputDirectory:  "build",
	})
	require.NoError(testInstance, reportError)
	require.Equal(testInstance, "   "+filepath.Join("build", "static", "js", "main.js")+"   4 KB (2 KB gzipped)", report.Render())
}

func TestReporterWrapsLoadFailures(testInstance *testing.T) {
	failure := errors.New("stats unavailable")
	reporter := assets.NewReporter(&recordingStatisticsSource{failure: failure}, nil, assets.NewFormatter(console.NewPalette(false)))

	_, reportError := reporter.Report(assets.ReportRequest{StatisticsPath: "stats.json", OutputDirectory: "build"})
	require.ErrorIs(testInstance, reportError, failure)
}
