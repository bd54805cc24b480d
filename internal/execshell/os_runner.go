package execshell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied command with fresh output buffers per call.
// A non-zero exit code is reported through the result rather than the error
// so callers can distinguish absence probes from invocation failures.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	executable.Dir = command.Details.WorkingDirectory

	standardOutputBuffer := bytes.Buffer{}
	standardErrorBuffer := bytes.Buffer{}
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	runError := executable.Run()

	executionResult := ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}
	if runError == nil {
		return executionResult, nil
	}

	exitError := &exec.ExitError{}
	if !errors.As(runError, &exitError) {
		return ExecutionResult{}, runError
	}
	executionResult.ExitCode = exitError.ExitCode()
	return executionResult, nil
}
