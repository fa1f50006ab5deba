// Package workflow provides the pipeline command.
package workflow

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/bundlekit/internal/console"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

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

// DeterminePipelineFile selects the pipeline file from the positional argument, the flag, or configuration.
func DeterminePipelineFile(arguments []string, flagValue string, flagChanged bool, configured string) string {
	if len(arguments) > 0 {
		if positional := strings.TrimSpace(arguments[0]); len(positional) > 0 {
			return positional
		}
	}
	if flagChanged {
		if trimmedFlag := strings.TrimSpace(flagValue); len(trimmedFlag) > 0 {
			return trimmedFlag
		}
	}
	return strings.TrimSpace(configured)
}

func renderStepList(descriptions []string, palette console.Palette) string {
	bulletStyle := func(bullet string) string {
		return palette.Paint(console.ColorCyan, bullet)
	}
	lines := make([]string, 0, len(descriptions))
	for _, description := range descriptions {
		lines = append(lines, console.ListLine(description, bulletStyle))
	}
	return strings.Join(lines, "")
}

func displayCommandHelp(command *cobra.Command) error {
	if command == nil {
		return nil
	}
	return command.Help()
}
