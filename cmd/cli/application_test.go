package cli_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/uncommitted/cmd/cli"
	"github.com/temirov/uncommitted/internal/scan"
)

const (
	testConfigurationSearchPathEnvironmentName = "UNCOMMITTED_CONFIG_SEARCH_PATH"
	testScanConfigurationKeyConstant           = "tools.scan"
	expectedDefaultLogLevelConstant            = "info"
	expectedDefaultLogFormatConstant           = "structured"
	expectedDefaultBoxWidthConstant            = 80
	scanStartFragmentConstant                  = "Scanning for git repositories"
	noChangesFragmentConstant                  = "No uncommitted changes found"
)

func decodeEmbeddedApplicationConfiguration(testingInstance testing.TB) cli.ApplicationConfiguration {
	testingInstance.Helper()

	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)

	readError := viperInstance.ReadConfig(bytes.NewReader(configurationData))
	require.NoError(testingInstance, readError)

	var configuration cli.ApplicationConfiguration
	unmarshalError := viperInstance.Unmarshal(&configuration)
	require.NoError(testingInstance, unmarshalError)

	return configuration
}

func TestApplicationEmbeddedDefaultsDescribeScanner(testInstance *testing.T) {
	configuration := decodeEmbeddedApplicationConfiguration(testInstance)

	require.Equal(testInstance, expectedDefaultLogLevelConstant, configuration.Common.LogLevel)
	require.Equal(testInstance, expectedDefaultLogFormatConstant, configuration.Common.LogFormat)
	require.Empty(testInstance, configuration.Tools.Scan.Roots)
	require.Equal(testInstance, expectedDefaultBoxWidthConstant, configuration.Tools.Scan.BoxWidth)
}

func TestApplicationEmbeddedScanSectionDecodesDirectly(testInstance *testing.T) {
	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)
	require.NoError(testInstance, viperInstance.ReadConfig(bytes.NewReader(configurationData)))

	scanSection := viperInstance.GetStringMap(testScanConfigurationKeyConstant)
	require.NotEmpty(testInstance, scanSection)

	var configuration scan.CommandConfiguration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: &configuration})
	require.NoError(testInstance, decoderError)
	require.NoError(testInstance, decoder.Decode(scanSection))

	require.Equal(testInstance, expectedDefaultBoxWidthConstant, configuration.BoxWidth)
}

func TestApplicationExecuteScansDirectoryWithoutRepositories(testInstance *testing.T) {
	testInstance.Setenv(testConfigurationSearchPathEnvironmentName, testInstance.TempDir())

	scanRoot := testInstance.TempDir()
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()
	os.Args = []string{"uncommitted", scanRoot}

	originalStdout := os.Stdout
	readEnd, writeEnd, pipeError := os.Pipe()
	require.NoError(testInstance, pipeError)
	os.Stdout = writeEnd
	defer func() {
		os.Stdout = originalStdout
	}()

	application := cli.NewApplication()
	executionError := application.Execute()

	os.Stdout = originalStdout
	require.NoError(testInstance, writeEnd.Close())
	capturedBytes, readError := io.ReadAll(readEnd)
	require.NoError(testInstance, readError)
	require.NoError(testInstance, readEnd.Close())

	require.NoError(testInstance, executionError)

	capturedOutput := string(capturedBytes)
	require.Contains(testInstance, capturedOutput, scanStartFragmentConstant)
	require.Contains(testInstance, capturedOutput, noChangesFragmentConstant)
}
