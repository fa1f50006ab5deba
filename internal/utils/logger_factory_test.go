package utils_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/bundlekit/internal/utils"
)

const (
	testLoggerFactoryCaseSupportedFormatConstant   = "supported_log_level_%s_format_%s"
	testLoggerFactoryCaseUnsupportedLevelConstant  = "unsupported_log_level"
	testLoggerFactoryCaseUnsupportedFormatConstant = "unsupported_log_format"
	testLoggerFactorySubtestTemplateConstant       = "%d_%s"
	testInvalidLogLevelConstant                    = "invalid"
	testInvalidLogFormatConstant                   = "invalid"
	testLogMessageConstant                         = "logger_factory_test_message"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name                string
		requestedLogLevel   utils.LogLevel
		requestedLogFormat  utils.LogFormat
		expectError         bool
		expectStructuredLog bool
	}{
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelDebug, utils.LogFormatStructured),
			requestedLogLevel:   utils.LogLevelDebug,
			requestedLogFormat:  utils.LogFormatStructured,
			expectStructuredLog: true,
		},
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelInfo, utils.LogFormatStructured),
			requestedLogLevel:   utils.LogLevelInfo,
			requestedLogFormat:  utils.LogFormatStructured,
			expectStructuredLog: true,
		},
		{
			name:               fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelInfo, utils.LogFormatConsole),
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormatConsole,
		},
		{
			name:               testLoggerFactoryCaseUnsupportedLevelConstant,
			requestedLogLevel:  utils.LogLevel(testInvalidLogLevelConstant),
			requestedLogFormat: utils.LogFormatStructured,
			expectError:        true,
		},
		{
			name:               testLoggerFactoryCaseUnsupportedFormatConstant,
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormat(testInvalidLogFormatConstant),
			expectError:        true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testLoggerFactorySubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			var outputBuffer bytes.Buffer
			loggerFactory := utils.NewLoggerFactoryWithOutput(&outputBuffer)

			logger, creationError := loggerFactory.CreateLogger(testCase.requestedLogLevel, testCase.requestedLogFormat)
			if testCase.expectError {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, logger)
				return
			}

			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, logger)

			logger.Info(testLogMessageConstant)
			require.NoError(testInstance, utils.SyncLogger(logger))

			trimmedOutput := bytes.TrimSpace(outputBuffer.Bytes())
			require.Contains(testInstance, string(trimmedOutput), testLogMessageConstant)
			require.Equal(testInstance, testCase.expectStructuredLog, json.Valid(trimmedOutput))
		})
	}
}

func TestLoggerFactoryHonorsLevel(testInstance *testing.T) {
	var outputBuffer bytes.Buffer
	logger, creationError := utils.NewLoggerFactoryWithOutput(&outputBuffer).CreateLogger(utils.LogLevelWarn, utils.LogFormatStructured)
	require.NoError(testInstance, creationError)

	logger.Info("suppressed")
	logger.Warn("emitted")

	lines := strings.Split(strings.TrimSpace(outputBuffer.String()), "\n")
	require.Len(testInstance, lines, 1)
	require.Contains(testInstance, lines[0], "emitted")
}

func TestSyncLoggerAcceptsNil(testInstance *testing.T) {
	require.NoError(testInstance, utils.SyncLogger(nil))
	require.NoError(testInstance, utils.SyncLogger(zap.NewNop()))
}

func TestLoggerFactoryOmitsStacktraces(testInstance *testing.T) {
	var outputBuffer bytes.Buffer
	logger, creationError := utils.NewLoggerFactoryWithOutput(&outputBuffer).CreateLogger(utils.LogLevelDebug, utils.LogFormatStructured)
	require.NoError(testInstance, creationError)

	logger.Error(testLogMessageConstant)

	decodedEntry := map[string]any{}
	require.NoError(testInstance, json.Unmarshal(bytes.TrimSpace(outputBuffer.Bytes()), &decodedEntry))
	require.Equal(testInstance, testLogMessageConstant, decodedEntry["msg"])
	require.NotContains(testInstance, decodedEntry, "stacktrace")
}
