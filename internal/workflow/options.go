package workflow

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

const (
	optionsDecoderErrorTemplateConstant = "unable to prepare %s step options: %w"
	optionsDecodeErrorTemplateConstant  = "invalid %s step options: %w"
	optionsTagNameConstant              = "mapstructure"
)

// ExecStepOptions configures an exec step.
type ExecStepOptions struct {
	Command         string            `mapstructure:"command"`
	Arguments       []string          `mapstructure:"args"`
	Directory       string            `mapstructure:"dir"`
	Environment     map[string]string `mapstructure:"env"`
	EnvironmentFile string            `mapstructure:"env_file"`
}

// ReportStepOptions configures a report step.
type ReportStepOptions struct {
	Directory       string `mapstructure:"dir"`
	Statistics      string `mapstructure:"stats"`
	StatsFormat     string `mapstructure:"stats_format"`
	OutputDirectory string `mapstructure:"output_dir"`
	Budget          int64  `mapstructure:"budget"`
}

func decodeStepOptions(operationType OperationType, options map[string]any, target any) error {
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          optionsTagNameConstant,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           target,
	})
	if decoderError != nil {
		return fmt.Errorf(optionsDecoderErrorTemplateConstant, operationType, decoderError)
	}
	if options == nil {
		return nil
	}
	if decodeError := decoder.Decode(options); decodeError != nil {
		return fmt.Errorf(optionsDecodeErrorTemplateConstant, operationType, decodeError)
	}
	return nil
}
