package utils

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel selects the minimum severity a created logger emits.
type LogLevel string

// Log levels accepted by CreateLogger.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat selects the encoding a created logger writes.
type LogFormat string

// Log formats accepted by CreateLogger.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

const (
	standardErrorOutputPathConstant      = "stderr"
	structuredEncodingNameConstant       = "json"
	consoleEncodingNameConstant          = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
)

// LoggerFactory builds zap loggers that write to standard error.
type LoggerFactory struct{}

// NewLoggerFactory constructs a LoggerFactory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger builds a zap.Logger honoring the requested level and format.
// Structured loggers emit one JSON object per line while console loggers use
// the development encoder with timestamps omitted for human reading. Both
// write to standard error so scan reports keep standard output to themselves.
func (loggerFactory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	zapLevel, levelError := resolveZapLevel(requestedLogLevel)
	if levelError != nil {
		return nil, levelError
	}

	loggerConfiguration, configurationError := newLoggerConfiguration(requestedLogFormat)
	if configurationError != nil {
		return nil, configurationError
	}
	loggerConfiguration.Level = zap.NewAtomicLevelAt(zapLevel)

	return loggerConfiguration.Build()
}

func resolveZapLevel(requestedLogLevel LogLevel) (zapcore.Level, error) {
	switch requestedLogLevel {
	case LogLevelDebug:
		return zapcore.DebugLevel, nil
	case LogLevelInfo:
		return zapcore.InfoLevel, nil
	case LogLevelWarn:
		return zapcore.WarnLevel, nil
	case LogLevelError:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InvalidLevel, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}
}

func newLoggerConfiguration(requestedLogFormat LogFormat) (zap.Config, error) {
	loggerConfiguration := zap.NewProductionConfig()
	loggerConfiguration.OutputPaths = []string{standardErrorOutputPathConstant}
	loggerConfiguration.ErrorOutputPaths = []string{standardErrorOutputPathConstant}

	switch requestedLogFormat {
	case LogFormatStructured:
		loggerConfiguration.Encoding = structuredEncodingNameConstant
	case LogFormatConsole:
		loggerConfiguration.Encoding = consoleEncodingNameConstant
		encoderConfiguration := zap.NewDevelopmentEncoderConfig()
		encoderConfiguration.TimeKey = zapcore.OmitKey
		loggerConfiguration.EncoderConfig = encoderConfiguration
	default:
		return zap.Config{}, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	return loggerConfiguration, nil
}
