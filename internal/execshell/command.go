package execshell

import (
	"strings"
)

const (
	commandTokenSeparatorConstant = " "
)

// CommandName identifies the executable of a shell command.
type CommandName string

// CommandLine is a command given either as text or as discrete tokens.
type CommandLine struct {
	text   string
	tokens []string
}

// NewCommandLine creates a command line from text split on whitespace.
func NewCommandLine(text string) CommandLine {
	return CommandLine{text: text, tokens: strings.Fields(text)}
}

// NewCommandTokens creates a command line from tokens that are used as given.
func NewCommandTokens(tokens ...string) CommandLine {
	duplicatedTokens := append([]string{}, tokens...)
	return CommandLine{text: strings.Join(duplicatedTokens, commandTokenSeparatorConstant), tokens: duplicatedTokens}
}

// Tokens returns a copy of the executable followed by its arguments.
func (commandLine CommandLine) Tokens() []string {
	return append([]string{}, commandLine.tokens...)
}

// String returns the command as the caller wrote it.
func (commandLine CommandLine) String() string {
	return commandLine.text
}

// Empty reports whether the command line names no executable.
func (commandLine CommandLine) Empty() bool {
	return len(commandLine.tokens) == 0 || len(commandLine.tokens[0]) == 0
}

// CommandDetails describes how a command is invoked.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
}

// ShellCommand is a fully resolved invocation.
type ShellCommand struct {
	RunID   string
	Name    CommandName
	Details CommandDetails
}

// Label renders the executable and its arguments separated by spaces.
func (command ShellCommand) Label() string {
	commandParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	return strings.Join(commandParts, commandTokenSeparatorConstant)
}

// ExecutionResult captures how a subprocess terminated.
type ExecutionResult struct {
	ExitCode int
	Signal   string
}

// Succeeded reports a zero exit status without signal termination.
func (result ExecutionResult) Succeeded() bool {
	return result.ExitCode == 0 && len(result.Signal) == 0
}
