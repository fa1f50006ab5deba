package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultEnvironmentFileName is the project-level file consulted for build variables.
	DefaultEnvironmentFileName               = ".env"
	environmentFileReadErrorTemplateConstant = "unable to read environment file %s: %w"
)

// LoadEnvironmentFile parses a dotenv file into a variable map. A missing file yields an empty map.
func LoadEnvironmentFile(filePath string) (map[string]string, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return map[string]string{}, nil
	}

	variables, readError := godotenv.Read(trimmedPath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf(environmentFileReadErrorTemplateConstant, trimmedPath, readError)
	}
	return variables, nil
}

// MergeEnvironment overlays each map onto the previous ones; later values win.
func MergeEnvironment(layers ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, layer := range layers {
		for variableName, variableValue := range layer {
			merged[variableName] = variableValue
		}
	}
	return merged
}
