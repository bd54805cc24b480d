package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// CommandName identifies the external tool a ShellCommand invokes.
type CommandName string

// CommandGit names the git executable used for every repository query.
const CommandGit CommandName = "git"

const (
	commandFieldNameConstant           = "command"
	argumentsFieldNameConstant         = "arguments"
	workingDirectoryFieldNameConstant  = "working_directory"
	exitCodeFieldNameConstant          = "exit_code"
	standardErrorFieldNameConstant     = "standard_error"
	commandStartedLogMessageConstant   = "starting command"
	commandCompletedLogMessageConstant = "command completed"
	commandFailedLogMessageConstant    = "command exited with failure"
	commandRunnerLogMessageConstant    = "command execution failed"
	commandFailedErrorTemplateConstant = "%s %s failed with exit code %d%s"
	commandRunnerErrorTemplateConstant = "%s %s failed to execute: %v"
	standardErrorLabelTemplateConstant = ": %s"
)

// ErrLoggerNotConfigured reports a ShellExecutor constructed without a logger.
var ErrLoggerNotConfigured = errors.New("shell executor requires a logger")

// ErrCommandRunnerNotConfigured reports a ShellExecutor constructed without a command runner.
var ErrCommandRunnerNotConfigured = errors.New("shell executor requires a command runner")

// CommandDetails carries the arguments and working directory of one invocation.
type CommandDetails struct {
	Arguments        []string
	WorkingDirectory string
}

// ShellCommand pairs the executable name with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a completed command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner executes a ShellCommand and reports its result.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a command that ran to completion with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including its exit code and trailing stderr.
func (failure CommandFailedError) Error() string {
	standardErrorSuffix := ""
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(standardErrorLabelTemplateConstant, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailedErrorTemplateConstant, failure.Command.Name, strings.Join(failure.Command.Details.Arguments, " "), failure.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a command that could not be executed at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the invocation failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandRunnerErrorTemplateConstant, failure.Command.Name, strings.Join(failure.Command.Details.Arguments, " "), failure.Cause)
}

// Unwrap exposes the underlying runner failure.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ShellExecutor runs external commands with structured logging and event notification.
type ShellExecutor struct {
	logger        *zap.Logger
	commandRunner CommandRunner
	eventObserver CommandEventObserver
}

// NewShellExecutor constructs a ShellExecutor without event observation.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner) (*ShellExecutor, error) {
	return NewShellExecutorWithObserver(logger, commandRunner, nil)
}

// NewShellExecutorWithObserver constructs a ShellExecutor that notifies the supplied observer.
func NewShellExecutorWithObserver(logger *zap.Logger, commandRunner CommandRunner, eventObserver CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if eventObserver == nil {
		eventObserver = noopCommandEventObserver{}
	}
	return &ShellExecutor{logger: logger, commandRunner: commandRunner, eventObserver: eventObserver}, nil
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

func (executor *ShellExecutor) execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.logger.Debug(commandStartedLogMessageConstant, executor.commandFields(command)...)
	executor.eventObserver.CommandStarted(command)

	executionResult, runError := executor.commandRunner.Run(executionContext, command)
	if runError != nil {
		executionFailure := CommandExecutionError{Command: command, Cause: runError}
		executor.logger.Error(commandRunnerLogMessageConstant, append(executor.commandFields(command), zap.Error(runError))...)
		executor.eventObserver.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, executionFailure
	}

	executor.eventObserver.CommandCompleted(command, executionResult)
	if executionResult.ExitCode != 0 {
		executor.logger.Debug(commandFailedLogMessageConstant, append(executor.commandFields(command), zap.Int(exitCodeFieldNameConstant, executionResult.ExitCode), zap.String(standardErrorFieldNameConstant, strings.TrimSpace(executionResult.StandardError)))...)
		return executionResult, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(commandCompletedLogMessageConstant, append(executor.commandFields(command), zap.Int(exitCodeFieldNameConstant, executionResult.ExitCode))...)
	return executionResult, nil
}

func (executor *ShellExecutor) commandFields(command ShellCommand) []zap.Field {
	return []zap.Field{
		zap.String(commandFieldNameConstant, string(command.Name)),
		zap.Strings(argumentsFieldNameConstant, command.Details.Arguments),
		zap.String(workingDirectoryFieldNameConstant, command.Details.WorkingDirectory),
	}
}
