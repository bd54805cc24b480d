package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	internalTestConfigurationFileNameConstant = "config.yaml"
	internalTestConfigurationTemplateConstant = "common:\n  log_level: debug\n  log_format: console\ntools:\n  scan:\n    roots:\n      - %s\n    box_width: 100\n"
	internalTestUnknownLogLevelConstant       = "common:\n  log_level: verbose\n"
	internalTestLogLevelEnvironmentName       = "UNCOMMITTED_COMMON_LOG_LEVEL"
)

func writeInternalConfigurationFile(t *testing.T, directory string, content string) string {
	t.Helper()

	configurationPath := filepath.Join(directory, internalTestConfigurationFileNameConstant)
	require.NoError(t, os.WriteFile(configurationPath, []byte(content), 0o600))
	return configurationPath
}

func TestInitializeConfigurationAppliesConfigurationFile(t *testing.T) {
	searchDirectory := t.TempDir()
	scanRoot := t.TempDir()
	configurationContent := fmt.Sprintf(internalTestConfigurationTemplateConstant, scanRoot)
	configurationPath := writeInternalConfigurationFile(t, searchDirectory, configurationContent)
	t.Setenv(configurationSearchPathEnvironmentNameConstant, searchDirectory)

	application := NewApplication()
	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(t, initializationError)

	require.Equal(t, "debug", application.configuration.Common.LogLevel)
	require.Equal(t, "console", application.configuration.Common.LogFormat)
	require.Equal(t, []string{scanRoot}, application.configuration.Tools.Scan.Roots)
	require.Equal(t, 100, application.configuration.Tools.Scan.BoxWidth)
	require.Equal(t, configurationPath, application.configurationMetadata.ConfigFileUsed)
	require.NotNil(t, application.scanCommandBuilder.CommandEventsObserver)

	storedPath, pathAvailable := application.commandContextAccessor.ConfigurationFilePath(application.rootCommand.Context())
	require.True(t, pathAvailable)
	require.Equal(t, configurationPath, storedPath)
}

func TestInitializeConfigurationFlagOverridesTakePriority(t *testing.T) {
	t.Setenv(configurationSearchPathEnvironmentNameConstant, t.TempDir())

	application := NewApplication()
	rootCommand := application.rootCommand
	require.NoError(t, rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, "error"))
	require.NoError(t, rootCommand.PersistentFlags().Set(logFormatFlagNameConstant, "console"))

	initializationError := application.initializeConfiguration(rootCommand)
	require.NoError(t, initializationError)

	require.Equal(t, "error", application.configuration.Common.LogLevel)
	require.Equal(t, "console", application.configuration.Common.LogFormat)
}

func TestInitializeConfigurationHonorsEnvironmentOverrides(t *testing.T) {
	t.Setenv(configurationSearchPathEnvironmentNameConstant, t.TempDir())
	t.Setenv(internalTestLogLevelEnvironmentName, "warn")

	application := NewApplication()
	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(t, initializationError)

	require.Equal(t, "warn", application.configuration.Common.LogLevel)
}

func TestInitializeConfigurationOmitsCommandEchoForStructuredLogs(t *testing.T) {
	t.Setenv(configurationSearchPathEnvironmentNameConstant, t.TempDir())

	application := NewApplication()
	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(t, initializationError)

	require.Equal(t, "structured", application.configuration.Common.LogFormat)
	require.Nil(t, application.scanCommandBuilder.CommandEventsObserver)
}

func TestInitializeConfigurationRejectsUnknownLogLevel(t *testing.T) {
	searchDirectory := t.TempDir()
	writeInternalConfigurationFile(t, searchDirectory, internalTestUnknownLogLevelConstant)
	t.Setenv(configurationSearchPathEnvironmentNameConstant, searchDirectory)

	application := NewApplication()
	initializationError := application.initializeConfiguration(application.rootCommand)
	require.Error(t, initializationError)
	require.Contains(t, initializationError.Error(), "unsupported log level")
}

func TestVersionRequested(t *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
		expected  bool
	}{
		{name: "VersionFlagPresent", arguments: []string{"--version"}, expected: true},
		{name: "VersionFlagAfterPath", arguments: []string{"/tmp/projects", "--version"}, expected: true},
		{name: "VersionAfterTerminator", arguments: []string{"--", "--version"}, expected: false},
		{name: "NoArguments", arguments: nil, expected: false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, versionRequested(testCase.arguments))
		})
	}
}
