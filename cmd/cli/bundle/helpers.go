// Package bundle provides the exec, report, build, and banner commands.
package bundle

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/bundlekit/internal/abort"
	"github.com/temirov/bundlekit/internal/console"
	"github.com/temirov/bundlekit/internal/dependencies"
	"github.com/temirov/bundlekit/internal/execshell"
	pathutils "github.com/temirov/bundlekit/internal/utils/path"
	"github.com/temirov/bundlekit/internal/workflow"
)

const (
	workingDirectoryErrorTemplateConstant = "unable to determine working directory: %w"
	unknownBannerColorTemplateConstant    = "unknown banner color: %s"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider yields the current tools configuration.
type ConfigurationProvider func() ToolsConfiguration

// Dependencies carries optional collaborators; nil fields fall back to process-backed defaults.
type Dependencies struct {
	ConsoleLogger   *console.Logger
	CommandRunner   execshell.CommandRunner
	Terminator      abort.Terminator
	CommandExecutor workflow.CommandExecutor
	AssetReporter   workflow.AssetReporter
	WidthProvider   console.TerminalWidthProvider
	HomeExpander    *pathutils.HomeExpander
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveConfiguration(provider ConfigurationProvider) ToolsConfiguration {
	if provider == nil {
		return DefaultToolsConfiguration()
	}
	return provider().Sanitize()
}

func (resolved Dependencies) consoleLogger() *console.Logger {
	return dependencies.ResolveConsoleLogger(resolved.ConsoleLogger)
}

func (resolved Dependencies) commandExecutor(logger *zap.Logger, consoleLogger *console.Logger) (workflow.CommandExecutor, error) {
	return dependencies.ResolveCommandExecutor(resolved.CommandExecutor, logger, consoleLogger, resolved.CommandRunner, resolved.Terminator)
}

func (resolved Dependencies) assetReporter(logger *zap.Logger, consoleLogger *console.Logger) workflow.AssetReporter {
	return dependencies.ResolveAssetReporter(resolved.AssetReporter, logger, consoleLogger.Palette())
}

func (resolved Dependencies) homeExpander() *pathutils.HomeExpander {
	if resolved.HomeExpander != nil {
		return resolved.HomeExpander
	}
	return pathutils.NewHomeExpander()
}

func (resolved Dependencies) widthProvider() console.TerminalWidthProvider {
	if resolved.WidthProvider != nil {
		return resolved.WidthProvider
	}
	return console.NewStandardOutputWidthProvider()
}

// resolveProjectDirectory expands and anchors directory at the process working directory.
func (resolved Dependencies) resolveProjectDirectory(directory string) (string, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return "", fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
	}
	return resolved.homeExpander().Resolve(workingDirectory, directory), nil
}

func stringFlagOrDefault(command *cobra.Command, flagName string, configured string) string {
	if command == nil || !command.Flags().Changed(flagName) {
		return configured
	}
	value, _ := command.Flags().GetString(flagName)
	return strings.TrimSpace(value)
}

func int64FlagOrDefault(command *cobra.Command, flagName string, configured int64) int64 {
	if command == nil || !command.Flags().Changed(flagName) {
		return configured
	}
	value, _ := command.Flags().GetInt64(flagName)
	return value
}

func parseBannerColors(configuration BannerConfiguration) (console.BannerColors, error) {
	colors := console.BannerColors{
		Primary:   console.ColorName(strings.ToLower(configuration.PrimaryColor)),
		Secondary: console.ColorName(strings.ToLower(configuration.SecondaryColor)),
	}
	for _, colorName := range []console.ColorName{colors.Primary, colors.Secondary} {
		if !console.KnownColor(colorName) {
			return console.BannerColors{}, fmt.Errorf(unknownBannerColorTemplateConstant, colorName)
		}
	}
	return colors, nil
}
