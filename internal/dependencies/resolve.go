// Package dependencies resolves the shared collaborators used by bundlekit commands,
// preferring injected instances and falling back to process-backed defaults.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/bundlekit/internal/abort"
	"github.com/temirov/bundlekit/internal/assets"
	"github.com/temirov/bundlekit/internal/console"
	"github.com/temirov/bundlekit/internal/execshell"
	"github.com/temirov/bundlekit/internal/ui"
	"github.com/temirov/bundlekit/internal/workflow"
)

// ResolveConsoleLogger returns the provided console logger or one writing to the process streams.
func ResolveConsoleLogger(existing *console.Logger) *console.Logger {
	if existing != nil {
		return existing
	}
	return console.NewLogger(console.StandardStreams(), console.DetectPalette())
}

// ResolveTerminator returns the provided terminator or one that exits the process.
func ResolveTerminator(existing abort.Terminator) abort.Terminator {
	if existing != nil {
		return existing
	}
	return abort.OSTerminator{}
}

// ResolveCommandRunner returns the provided runner or one attached to the process streams.
func ResolveCommandRunner(existing execshell.CommandRunner) execshell.CommandRunner {
	if existing != nil {
		return existing
	}
	return execshell.NewOSCommandRunner()
}

// ResolveCommandExecutor returns the provided executor or constructs a fail-fast shell executor that
// reports lifecycle events through logger and aborts through consoleLogger.
func ResolveCommandExecutor(existing workflow.CommandExecutor, logger *zap.Logger, consoleLogger *console.Logger, runner execshell.CommandRunner, terminator abort.Terminator) (workflow.CommandExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	consoleLogger = ResolveConsoleLogger(consoleLogger)

	abortHandler, handlerError := abort.NewHandler(consoleLogger, ResolveTerminator(terminator))
	if handlerError != nil {
		return nil, handlerError
	}

	palette := consoleLogger.Palette()
	shellExecutor, executorError := execshell.NewShellExecutor(
		logger,
		ResolveCommandRunner(runner),
		abortHandler,
		execshell.WithCommandEventObserver(ui.NewConsoleCommandEventLogger(logger)),
		execshell.WithCommandHighlighter(func(commandText string) string {
			return palette.Paint(console.ColorCyan, commandText)
		}),
	)
	if executorError != nil {
		return nil, executorError
	}
	return shellExecutor, nil
}

// ResolveAssetReporter returns the provided reporter or one measuring the OS file system.
func ResolveAssetReporter(existing workflow.AssetReporter, logger *zap.Logger, palette console.Palette) workflow.AssetReporter {
	if existing != nil {
		return existing
	}
	return assets.NewReporter(nil, assets.NewCollector(nil, nil, logger), assets.NewFormatter(palette))
}
