package ui

import (
	"go.uber.org/zap"

	"github.com/temirov/uncommitted/internal/execshell"
)

// ConsoleCommandEventLogger implements execshell.CommandEventObserver by
// rendering lifecycle events through a zap logger configured for console
// output. Message text and severity come from the execshell formatter, which
// keeps routine absence probes at debug level so scanning large trees does
// not flood the console.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter execshell.CommandMessageFormatter
}

// NewConsoleCommandEventLogger wraps the provided zap logger in a command
// event observer. A nil logger silences the observer.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger, formatter: execshell.CommandMessageFormatter{}}
}

// CommandStarted logs the announcement for a command about to run.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	message, severity := eventLogger.formatter.DescribeStart(command)
	eventLogger.logAt(severity, message)
}

// CommandCompleted logs the outcome of a finished command at the severity the
// formatter assigns.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	message, severity := eventLogger.formatter.DescribeCompletion(command, result)
	eventLogger.logAt(severity, message)
}

// CommandExecutionFailed logs commands that never ran.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	message, severity := eventLogger.formatter.DescribeExecutionFailure(command, failure)
	eventLogger.logAt(severity, message)
}

func (eventLogger *ConsoleCommandEventLogger) logAt(severity execshell.MessageSeverity, message string) {
	switch severity {
	case execshell.MessageSeverityDebug:
		eventLogger.logger.Debug(message)
	case execshell.MessageSeverityInfo:
		eventLogger.logger.Info(message)
	case execshell.MessageSeverityWarning:
		eventLogger.logger.Warn(message)
	default:
		eventLogger.logger.Error(message)
	}
}
