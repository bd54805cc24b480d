package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/uncommitted/internal/execshell"
	"github.com/temirov/uncommitted/internal/ui"
)

const (
	testCommandWorkingDirectoryConstant     = "/tmp/project"
	testCommandArgumentConstant             = "--prune"
	testCommandNameFieldExpectationConstant = "git --prune (in /tmp/project)"
	testExecutionFailureReasonConstant      = "execution failed"
	testStandardErrorMessageConstant        = "fatal: remote error"
	testStartMessageExpectationConstant     = "Running " + testCommandNameFieldExpectationConstant
	testSuccessMessageExpectationConstant   = "Completed " + testCommandNameFieldExpectationConstant
	testFailureMessageExpectationConstant   = testCommandNameFieldExpectationConstant + " failed with exit code 1: " + testStandardErrorMessageConstant
	testExecutionFailureMessageExpectation  = testCommandNameFieldExpectationConstant + " failed: " + testExecutionFailureReasonConstant
)

func newGitCommand(arguments ...string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        arguments,
			WorkingDirectory: testCommandWorkingDirectoryConstant,
		},
	}
}

func TestConsoleCommandEventLoggerEmitsMessages(testInstance *testing.T) {
	command := newGitCommand(testCommandArgumentConstant)

	testCases := []struct {
		name            string
		invoke          func(logger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "command_started",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(command)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testStartMessageExpectationConstant,
		},
		{
			name: "command_completed_success",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testSuccessMessageExpectationConstant,
		},
		{
			name: "command_completed_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1, StandardError: testStandardErrorMessageConstant})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: testFailureMessageExpectationConstant,
		},
		{
			name: "command_execution_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandExecutionFailed(command, errors.New(testExecutionFailureReasonConstant))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: testExecutionFailureMessageExpectation,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			consoleLogger := zap.New(observerCore)
			eventLogger := ui.NewConsoleCommandEventLogger(consoleLogger)

			testCase.invoke(eventLogger)

			entries := observedLogs.All()
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, testCase.expectedLevel, entries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, entries[0].Message)
		})
	}
}

func TestConsoleCommandEventLoggerClassifiesGitMessages(testInstance *testing.T) {
	branchCommand := newGitCommand("rev-parse", "--abbrev-ref", "HEAD")
	upstreamCommand := newGitCommand("rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}")
	trackingProbeCommand := newGitCommand("rev-parse", "--verify", "--quiet", "refs/remotes/origin/main")
	ignoreProbeCommand := newGitCommand("check-ignore", "-q", "--no-index", "build.log")
	statusCommand := newGitCommand("status", "--porcelain")
	remoteCommand := newGitCommand("remote", "get-url", "origin")
	divergenceCommand := newGitCommand("rev-list", "--left-right", "--count", "HEAD...@{u}")

	testCases := []struct {
		name            string
		invoke          func(logger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "branch_resolved",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(branchCommand, execshell.ExecutionResult{StandardOutput: "main\n"})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "Current branch in /tmp/project is main",
		},
		{
			name: "detached_head_reported",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(branchCommand, execshell.ExecutionResult{StandardOutput: "HEAD\n"})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "/tmp/project is in a detached HEAD state",
		},
		{
			name: "missing_upstream_noted",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(upstreamCommand, execshell.ExecutionResult{ExitCode: 128})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "No upstream branch configured in /tmp/project",
		},
		{
			name: "tracking_probe_start_stays_quiet",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(trackingProbeCommand)
			},
			expectedLevel:   zapcore.DebugLevel,
			expectedMessage: "Resolving refs/remotes/origin/main in /tmp/project",
		},
		{
			name: "tracking_ref_missing_stays_quiet",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(trackingProbeCommand, execshell.ExecutionResult{ExitCode: 1})
			},
			expectedLevel:   zapcore.DebugLevel,
			expectedMessage: "refs/remotes/origin/main in /tmp/project did not resolve to a revision",
		},
		{
			name: "ignored_path_stays_quiet",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(ignoreProbeCommand, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zapcore.DebugLevel,
			expectedMessage: "build.log is ignored in /tmp/project",
		},
		{
			name: "unignored_path_stays_quiet",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(ignoreProbeCommand, execshell.ExecutionResult{ExitCode: 1})
			},
			expectedLevel:   zapcore.DebugLevel,
			expectedMessage: "build.log is not ignored in /tmp/project",
		},
		{
			name: "status_collected",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(statusCommand, execshell.ExecutionResult{StandardOutput: " M main.go\n"})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "Collected working tree status for /tmp/project",
		},
		{
			name: "status_failure_warned",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(statusCommand, execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: "Failed to review working tree status in /tmp/project (exit code 128: fatal: not a git repository)",
		},
		{
			name: "missing_remote_noted",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(remoteCommand, execshell.ExecutionResult{ExitCode: 2})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "No origin remote configured for /tmp/project",
		},
		{
			name: "divergence_counted",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(divergenceCommand, execshell.ExecutionResult{StandardOutput: "2\t3\n"})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "Counted upstream divergence for /tmp/project",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			consoleLogger := zap.New(observerCore)
			eventLogger := ui.NewConsoleCommandEventLogger(consoleLogger)

			testCase.invoke(eventLogger)

			entries := observedLogs.All()
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, testCase.expectedLevel, entries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, entries[0].Message)
		})
	}
}
