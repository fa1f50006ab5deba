package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const (
	pipelineExecutionErrorTemplateConstant = "pipeline step %s failed: %w"
	pipelineStepStartedLogMessageConstant  = "pipeline step started"
	pipelineCompletedLogMessageConstant    = "pipeline completed"
	logFieldStepIndexConstant              = "step_index"
	logFieldStepNameConstant               = "step_name"
	logFieldStepCountConstant              = "step_count"
)

// Executor runs pipeline operations in order and stops at the first failure.
type Executor struct {
	operations  []Operation
	environment Environment
}

// NewExecutor constructs an Executor instance.
func NewExecutor(operations []Operation, environment Environment) *Executor {
	if environment.Logger == nil {
		environment.Logger = zap.NewNop()
	}
	return &Executor{operations: append([]Operation{}, operations...), environment: environment}
}

// Execute runs every operation against the shared environment.
func (executor *Executor) Execute(executionContext context.Context) error {
	for operationIndex, operation := range executor.operations {
		if operation == nil {
			continue
		}
		executor.environment.Logger.Debug(
			pipelineStepStartedLogMessageConstant,
			zap.Int(logFieldStepIndexConstant, operationIndex+1),
			zap.String(logFieldStepNameConstant, operation.Name()),
		)
		if executeError := operation.Execute(executionContext, &executor.environment); executeError != nil {
			return fmt.Errorf(pipelineExecutionErrorTemplateConstant, operation.Name(), executeError)
		}
	}

	executor.environment.Logger.Debug(pipelineCompletedLogMessageConstant, zap.Int(logFieldStepCountConstant, len(executor.operations)))
	return nil
}

// Describe returns one "name: summary" line per operation.
func Describe(operations []Operation) []string {
	descriptions := make([]string, 0, len(operations))
	for _, operation := range operations {
		if operation == nil {
			continue
		}
		descriptions = append(descriptions, operation.Name()+": "+operation.Describe())
	}
	return descriptions
}
