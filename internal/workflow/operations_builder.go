package workflow

import "fmt"

const unsupportedOperationTemplateConstant = "unsupported pipeline operation: %s"

// BuildOperations converts the declarative configuration into executable operations.
func BuildOperations(configuration Configuration) ([]Operation, error) {
	operations := make([]Operation, 0, len(configuration.Steps))
	for stepIndex := range configuration.Steps {
		operation, buildError := buildOperationFromStep(configuration.Steps[stepIndex])
		if buildError != nil {
			return nil, buildError
		}
		operations = append(operations, operation)
	}
	return operations, nil
}

func buildOperationFromStep(step StepConfiguration) (Operation, error) {
	switch step.Operation {
	case OperationTypeExec:
		return buildExecOperation(step)
	case OperationTypeReport:
		return buildReportOperation(step)
	default:
		return nil, fmt.Errorf(unsupportedOperationTemplateConstant, step.Operation)
	}
}
