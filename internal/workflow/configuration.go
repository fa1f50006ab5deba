package workflow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configurationLoadErrorTemplateConstant        = "failed to load pipeline configuration: %w"
	configurationParseErrorTemplateConstant       = "failed to parse pipeline configuration: %w"
	configurationPathRequiredMessageConstant      = "pipeline configuration path must be provided"
	configurationEmptyStepsMessageConstant        = "pipeline configuration must define at least one step"
	configurationOperationMissingTemplateConstant = "pipeline step %d missing operation name"
)

// ErrConfigurationPathRequired indicates that no pipeline file was provided.
var ErrConfigurationPathRequired = errors.New(configurationPathRequiredMessageConstant)

// ErrEmptyPipeline indicates a pipeline file without steps.
var ErrEmptyPipeline = errors.New(configurationEmptyStepsMessageConstant)

// OperationType identifies supported pipeline operations.
type OperationType string

// Supported pipeline operations.
const (
	OperationTypeExec   OperationType = OperationType("exec")
	OperationTypeReport OperationType = OperationType("report")
)

// Configuration describes the ordered pipeline steps loaded from YAML.
type Configuration struct {
	Steps []StepConfiguration `yaml:"steps"`

	// BaseDirectory anchors relative step directories; it is the directory holding the pipeline file.
	BaseDirectory string `yaml:"-"`
}

// StepConfiguration associates an operation type with declarative options.
type StepConfiguration struct {
	Name      string         `yaml:"name"`
	Operation OperationType  `yaml:"operation"`
	Options   map[string]any `yaml:"with"`
}

// LoadConfiguration reads the pipeline definition from disk and performs basic validation.
// Steps may be declared at the top level or nested under a `pipeline` key.
func LoadConfiguration(filePath string) (Configuration, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Configuration{}, ErrConfigurationPathRequired
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Configuration{}, fmt.Errorf(configurationLoadErrorTemplateConstant, readError)
	}

	configuration, parseError := ParseConfiguration(contentBytes)
	if parseError != nil {
		return Configuration{}, parseError
	}

	absolutePath, absoluteError := filepath.Abs(trimmedPath)
	if absoluteError != nil {
		absolutePath = trimmedPath
	}
	configuration.BaseDirectory = filepath.Dir(absolutePath)

	return configuration, nil
}

// ParseConfiguration decodes and validates pipeline YAML.
func ParseConfiguration(contentBytes []byte) (Configuration, error) {
	var document struct {
		Configuration `yaml:",inline"`
		Pipeline      *Configuration `yaml:"pipeline"`
	}
	if unmarshalError := yaml.Unmarshal(contentBytes, &document); unmarshalError != nil {
		return Configuration{}, fmt.Errorf(configurationParseErrorTemplateConstant, unmarshalError)
	}

	configuration := document.Configuration
	if len(configuration.Steps) == 0 && document.Pipeline != nil {
		configuration = *document.Pipeline
	}

	if len(configuration.Steps) == 0 {
		return Configuration{}, ErrEmptyPipeline
	}

	for stepIndex := range configuration.Steps {
		trimmedOperation := strings.ToLower(strings.TrimSpace(string(configuration.Steps[stepIndex].Operation)))
		if len(trimmedOperation) == 0 {
			return Configuration{}, fmt.Errorf(configurationOperationMissingTemplateConstant, stepIndex+1)
		}
		configuration.Steps[stepIndex].Operation = OperationType(trimmedOperation)
		configuration.Steps[stepIndex].Name = strings.TrimSpace(configuration.Steps[stepIndex].Name)
	}

	return configuration, nil
}
