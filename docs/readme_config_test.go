package docs_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/bundlekit/cmd/cli"
	"github.com/temirov/bundlekit/internal/workflow"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	pipelineHeaderMarkerConstant     = "# pipeline.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
)

func readReadme(testInstance *testing.T) string {
	testInstance.Helper()
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)
	return string(contentBytes)
}

func extractYAMLSnippet(testInstance *testing.T, contentText string, headerMarker string) string {
	testInstance.Helper()
	headerIndex := strings.Index(contentText, headerMarker)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)

	return strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : headerIndex+fenceEndRelativeIndex])
}

func TestReadmeConfigurationDecodes(testInstance *testing.T) {
	snippet := extractYAMLSnippet(testInstance, readReadme(testInstance), configHeaderMarkerConstant)

	viperInstance := viper.New()
	viperInstance.SetConfigType("yaml")
	require.NoError(testInstance, viperInstance.ReadConfig(bytes.NewReader([]byte(snippet))))

	var configuration cli.ApplicationConfiguration
	require.NoError(testInstance, viperInstance.Unmarshal(&configuration))

	require.Equal(testInstance, "console", configuration.Common.LogFormat)
	require.Equal(testInstance, "web", configuration.Tools.Project.Directory)
	require.Equal(testInstance, int64(524288), configuration.Tools.Project.Budget)
	require.Equal(testInstance, "npm run build", configuration.Tools.Build.Command)
	require.Equal(testInstance, "green", configuration.Tools.Banner.PrimaryColor)
	require.Equal(testInstance, "pipeline.yaml", configuration.Tools.Pipeline.File)
}

func TestReadmePipelineBuildsOperations(testInstance *testing.T) {
	snippet := extractYAMLSnippet(testInstance, readReadme(testInstance), pipelineHeaderMarkerConstant)

	configuration, parseError := workflow.ParseConfiguration([]byte(snippet))
	require.NoError(testInstance, parseError)

	operations, buildError := workflow.BuildOperations(configuration)
	require.NoError(testInstance, buildError)

	require.Equal(testInstance, []string{
		"install: npm ci (in web)",
		"bundle: node scripts/build.js --metafile (in web)",
		"sizes: esbuild statistics dist/meta.json for dist",
	}, workflow.Describe(operations))
}
