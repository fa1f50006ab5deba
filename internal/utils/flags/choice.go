// Package flags provides helpers for binding enumerated flags to Cobra commands.
package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	choicePlaceholderPrefix    = "<"
	choicePlaceholderSuffix    = ">"
	choiceSeparatorLiteral     = "|"
	choiceUsageEmptyTemplate   = "`%s`"
	choiceUsageFullTemplate    = "`%s` %s"
	unsupportedChoiceTemplate  = "unsupported value %q for --%s; expected one of %s"
	choiceListSeparatorLiteral = ", "
)

// ChoiceFlagDefinition describes a string flag restricted to a fixed set of values.
type ChoiceFlagDefinition struct {
	Name          string
	DefaultChoice string
	Choices       []string
	Description   string
}

// BindChoiceFlag registers the flag on flagSet with a usage string that highlights the default.
func BindChoiceFlag(flagSet *pflag.FlagSet, definition ChoiceFlagDefinition) {
	if flagSet == nil || len(strings.TrimSpace(definition.Name)) == 0 {
		return
	}
	flagSet.String(definition.Name, definition.DefaultChoice, FormatChoiceUsage(definition.DefaultChoice, definition.Choices, definition.Description))
}

// ResolveChoice normalizes value and verifies that it names one of the definition's choices.
func ResolveChoice(definition ChoiceFlagDefinition, value string) (string, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(value))
	if len(normalizedValue) == 0 {
		return strings.ToLower(strings.TrimSpace(definition.DefaultChoice)), nil
	}
	for _, choice := range definition.Choices {
		if strings.ToLower(strings.TrimSpace(choice)) == normalizedValue {
			return normalizedValue, nil
		}
	}
	return "", fmt.Errorf(unsupportedChoiceTemplate, value, definition.Name, strings.Join(definition.Choices, choiceListSeparatorLiteral))
}

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := buildChoicePlaceholder(defaultChoice, choices)
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

func buildChoicePlaceholder(defaultChoice string, choices []string) string {
	highlightedChoices := highlightDefaultChoice(defaultChoice, choices)
	return choicePlaceholderPrefix + strings.Join(highlightedChoices, choiceSeparatorLiteral) + choicePlaceholderSuffix
}

func highlightDefaultChoice(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	highlighted := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}

		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}

		displayValue := trimmedChoice
		if normalizedChoice == normalizedDefault {
			displayValue = strings.ToUpper(trimmedChoice)
		}

		highlighted = append(highlighted, displayValue)
		seen[normalizedChoice] = struct{}{}
	}

	return highlighted
}
