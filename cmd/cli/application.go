package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/uncommitted/internal/report"
	"github.com/temirov/uncommitted/internal/scan"
	"github.com/temirov/uncommitted/internal/ui"
	"github.com/temirov/uncommitted/internal/utils"
	flagutils "github.com/temirov/uncommitted/internal/utils/flags"
)

const (
	applicationNameConstant                        = "uncommitted"
	configFileFlagNameConstant                     = "config"
	configFileFlagUsageConstant                    = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                       = "log-level"
	logLevelFlagDescriptionConstant                = "Override the configured log level."
	logFormatFlagNameConstant                      = "log-format"
	logFormatFlagDescriptionConstant               = "Override the configured log format."
	versionFlagNameConstant                        = "version"
	versionFlagUsageConstant                       = "Print the uncommitted version and exit."
	versionFlagTokenConstant                       = "--version"
	flagTerminatorConstant                         = "--"
	versionOutputTemplateConstant                  = "uncommitted version: %s\n"
	developmentVersionConstant                     = "dev"
	commonConfigurationKeyConstant                 = "common"
	commonLogLevelConfigKeyConstant                = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant               = commonConfigurationKeyConstant + ".log_format"
	toolsConfigurationKeyConstant                  = "tools"
	scanConfigurationKeyConstant                   = toolsConfigurationKeyConstant + ".scan"
	environmentPrefixConstant                      = "UNCOMMITTED"
	configurationSearchPathEnvironmentNameConstant = "UNCOMMITTED_CONFIG_SEARCH_PATH"
	configurationNameConstant                      = "config"
	configurationTypeConstant                      = "yaml"
	userConfigurationDirectoryNameConstant         = ".uncommitted"
	defaultConfigurationSearchPathConstant         = "."
	configurationInitializedMessageConstant        = "configuration initialized"
	configurationLogLevelFieldConstant             = "log_level"
	configurationLogFormatFieldConstant            = "log_format"
	configurationFileFieldConstant                 = "config_file"
	configurationLoadErrorTemplateConstant         = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant            = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant                = "unable to flush logger: %w"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for CLI tools grouped by name.
type ApplicationToolsConfiguration struct {
	Scan scan.CommandConfiguration `mapstructure:"scan"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	scanCommandBuilder     *scan.CommandBuilder
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	versionFlagValue       bool
	versionResolver        func(executionContext context.Context) string
	exitFunction           func(exitCode int)
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	embeddedConfigurationData, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedConfigurationData, embeddedConfigurationType)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		versionResolver:        resolveBuildVersion,
		exitFunction:           os.Exit,
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	application.scanCommandBuilder = &scan.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() scan.CommandConfiguration {
			return application.configuration.Tools.Scan
		},
		PresenterFactory: newConsoleReportPresenter,
	}

	rootCommand, buildError := application.scanCommandBuilder.Build()
	if buildError != nil {
		rootCommand = &cobra.Command{
			Use: applicationNameConstant,
			RunE: func(*cobra.Command, []string) error {
				return buildError
			},
		}
	}

	rootCommand.SilenceUsage = true
	rootCommand.SilenceErrors = true
	rootCommand.PersistentPreRunE = func(command *cobra.Command, arguments []string) error {
		return application.initializeConfiguration(command)
	}

	rootCommand.SetContext(context.Background())
	application.registerPersistentFlags(rootCommand.PersistentFlags())
	application.rootCommand = rootCommand

	return application
}

func (application *Application) registerPersistentFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	flagSet.StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsage())
	flagSet.StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsage())
	flagSet.BoolVar(&application.versionFlagValue, versionFlagNameConstant, false, versionFlagUsageConstant)
}

// Execute runs the root command and ensures logger flushing. A failing scan
// takes precedence over flush problems when both occur.
func (application *Application) Execute() error {
	if versionRequested(os.Args[1:]) {
		application.printVersion()
		application.exitFunction(0)
		return nil
	}

	executionError := application.rootCommand.Execute()
	syncError := application.flushLogger()
	if executionError != nil {
		return executionError
	}
	if syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return nil
}

// Execute builds a fresh application instance and executes the root command.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range scan.DefaultConfigurationValues(scanConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration
	application.applyFlagOverrides(command)

	loggerInstance, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(strings.ToLower(strings.TrimSpace(application.configuration.Common.LogLevel))),
		utils.LogFormat(strings.ToLower(strings.TrimSpace(application.configuration.Common.LogFormat))),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = loggerInstance
	application.scanCommandBuilder.CommandEventsObserver = nil
	if application.humanReadableLoggingEnabled() {
		application.scanCommandBuilder.CommandEventsObserver = ui.NewConsoleCommandEventLogger(loggerInstance)
	}

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		command.SetContext(application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		))
	}

	return nil
}

// applyFlagOverrides copies explicitly set logging flags over the loaded
// configuration. Unset flags leave the configured values alone.
func (application *Application) applyFlagOverrides(command *cobra.Command) {
	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}
}

// humanReadableLoggingEnabled reports whether the effective log format asks
// for console output. Structured logs already carry every command lifecycle
// event, so the human-readable echo is attached only for console sessions.
func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) printVersion() {
	resolvedVersion := application.versionResolver(application.rootCommand.Context())
	fmt.Fprintf(os.Stdout, versionOutputTemplateConstant, resolvedVersion)
}

// flushLogger drains buffered log output. Sync failures on terminal file
// descriptors (ENOTSUP, EINVAL) are routine and suppressed.
func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	if syncError == nil || errors.Is(syncError, syscall.ENOTSUP) || errors.Is(syncError, syscall.EINVAL) {
		return nil
	}
	return syncError
}

// persistentFlagChanged reports whether the named flag was set on the command
// line. The scanner exposes a single root command, so its persistent flag set
// is authoritative.
func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}
	return command.PersistentFlags().Changed(flagName)
}

func versionRequested(arguments []string) bool {
	for _, argument := range arguments {
		switch argument {
		case flagTerminatorConstant:
			return false
		case versionFlagTokenConstant:
			return true
		}
	}
	return false
}

func resolveBuildVersion(context.Context) string {
	buildInformation, buildInformationAvailable := debug.ReadBuildInfo()
	if !buildInformationAvailable || len(buildInformation.Main.Version) == 0 {
		return developmentVersionConstant
	}
	return buildInformation.Main.Version
}

// newConsoleReportPresenter hands the command's writer to the renderer
// unwrapped so terminal color detection sees the real file descriptor.
func newConsoleReportPresenter(outputWriter io.Writer, boxWidth int) scan.ReportPresenter {
	return report.NewConsoleRenderer(outputWriter, boxWidth)
}

func configurationSearchPaths() []string {
	overridePath := strings.TrimSpace(os.Getenv(configurationSearchPathEnvironmentNameConstant))
	if len(overridePath) > 0 {
		return []string{overridePath}
	}

	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if homeDirectory, homeDirectoryError := os.UserHomeDir(); homeDirectoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDirectory, userConfigurationDirectoryNameConstant))
	}
	return searchPaths
}

func logLevelFlagUsage() string {
	logLevelChoices := []string{
		string(utils.LogLevelDebug),
		string(utils.LogLevelInfo),
		string(utils.LogLevelWarn),
		string(utils.LogLevelError),
	}
	return flagutils.FormatChoiceUsage(string(utils.LogLevelInfo), logLevelChoices, logLevelFlagDescriptionConstant)
}

func logFormatFlagUsage() string {
	logFormatChoices := []string{
		string(utils.LogFormatStructured),
		string(utils.LogFormatConsole),
	}
	return flagutils.FormatChoiceUsage(string(utils.LogFormatStructured), logFormatChoices, logFormatFlagDescriptionConstant)
}
