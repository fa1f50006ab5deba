package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/bundlekit/internal/assets"
	"github.com/temirov/bundlekit/internal/execshell"
)

// Operation performs a single pipeline step.
type Operation interface {
	Name() string
	Describe() string
	Execute(executionContext context.Context, environment *Environment) error
}

// CommandExecutor runs a command and aborts the process when it fails.
type CommandExecutor interface {
	ExecuteWithEnvironment(executionContext context.Context, commandLine execshell.CommandLine, workingDirectory string, environmentVariables map[string]string) error
}

// AssetReporter produces the asset size report for a finished build.
type AssetReporter interface {
	Report(request assets.ReportRequest) (assets.Report, error)
}

// ReportPrinter writes rendered reports to the user.
type ReportPrinter interface {
	Print(text string)
	Blank()
}

// Environment exposes shared dependencies for pipeline operations.
type Environment struct {
	CommandExecutor CommandExecutor
	AssetReporter   AssetReporter
	Printer         ReportPrinter
	Logger          *zap.Logger
	BaseDirectory   string
}
