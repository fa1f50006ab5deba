package workflow

import "strings"

const (
	defaultPipelineFileConstant          = "pipeline.yaml"
	pipelineFileConfigurationKeyConstant = "file"
	configurationKeySeparatorConstant    = "."
)

// CommandConfiguration captures configuration values for the pipeline command.
type CommandConfiguration struct {
	File string `mapstructure:"file"`
}

// DefaultCommandConfiguration provides default pipeline command settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{File: defaultPipelineFileConstant}
}

// DefaultConfigurationValues flattens DefaultCommandConfiguration into Viper keys under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	return map[string]any{
		prefix + configurationKeySeparatorConstant + pipelineFileConfigurationKeyConstant: defaultPipelineFileConstant,
	}
}

// Sanitize normalizes configuration values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.File = strings.TrimSpace(configuration.File)
	if len(sanitized.File) == 0 {
		sanitized.File = defaultPipelineFileConstant
	}
	return sanitized
}
