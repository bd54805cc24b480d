package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/uncommitted/internal/execshell"
)

const (
	gitRevParseSubcommandConstant       = "rev-parse"
	gitRevListSubcommandConstant        = "rev-list"
	gitRemoteSubcommandConstant         = "remote"
	gitStatusSubcommandConstant         = "status"
	gitCheckIgnoreSubcommandConstant    = "check-ignore"
	gitRemoteGetURLSubcommandConstant   = "get-url"
	gitAbbrevRefFlagConstant            = "--abbrev-ref"
	gitSymbolicFullNameFlagConstant     = "--symbolic-full-name"
	gitVerifyFlagConstant               = "--verify"
	gitQuietFlagConstant                = "--quiet"
	gitLeftRightFlagConstant            = "--left-right"
	gitCountFlagConstant                = "--count"
	gitPorcelainFlagConstant            = "--porcelain"
	gitNoIndexFlagConstant              = "--no-index"
	gitShortQuietFlagConstant           = "-q"
	gitHeadReferenceConstant            = "HEAD"
	gitUpstreamReferenceConstant        = "@{u}"
	gitDivergenceRangeConstant          = "HEAD...@{u}"
	remoteTrackingRefTemplateConstant   = "refs/remotes/%s/%s"
	divergenceFieldCountConstant        = 2
	divergenceParseErrorTemplate        = "unexpected rev-list output %q"
	notIgnoredExitCodeConstant          = 1
	lineBreakConstant                   = "\n"
	carriageReturnConstant              = "\r"
)

// ErrExecutorNotConfigured reports a RepositoryManager constructed without an executor.
var ErrExecutorNotConfigured = errors.New("git executor not configured")

// GitExecutor runs git commands on behalf of the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager answers read-only questions about a single repository by
// invoking git scoped to the repository path. Queries that come back empty or
// with a non-zero exit report errors; callers decide whether the absence is
// meaningful.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager backed by the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// GetCurrentBranch reports the abbreviated name of the checked-out branch.
// Detached worktrees report the literal HEAD reference.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.run(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant)
	if executionError != nil {
		return "", executionError
	}
	return firstOutputLine(executionResult.StandardOutput), nil
}

// GetRemoteURL reports the URL the named remote points to.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	executionResult, executionError := manager.run(executionContext, repositoryPath, gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, remoteName)
	if executionError != nil {
		return "", executionError
	}
	return firstOutputLine(executionResult.StandardOutput), nil
}

// GetUpstreamBranch reports the symbolic name of the configured upstream
// tracking branch. Repositories without an upstream report an error.
func (manager *RepositoryManager) GetUpstreamBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.run(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitSymbolicFullNameFlagConstant, gitUpstreamReferenceConstant)
	if executionError != nil {
		return "", executionError
	}
	return firstOutputLine(executionResult.StandardOutput), nil
}

// HasRemoteTrackingRef reports whether a cached remote-tracking ref exists for
// the branch. The probe consults local refs only and never touches the network.
func (manager *RepositoryManager) HasRemoteTrackingRef(executionContext context.Context, repositoryPath string, remoteName string, branchName string) (bool, error) {
	trackingReference := fmt.Sprintf(remoteTrackingRefTemplateConstant, remoteName, branchName)
	_, executionError := manager.run(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitVerifyFlagConstant, gitQuietFlagConstant, trackingReference)
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return false, nil
		}
		return false, executionError
	}
	return true, nil
}

// CountAheadBehind reports how many commits the current branch is ahead of and
// behind its upstream.
func (manager *RepositoryManager) CountAheadBehind(executionContext context.Context, repositoryPath string) (int, int, error) {
	executionResult, executionError := manager.run(executionContext, repositoryPath, gitRevListSubcommandConstant, gitLeftRightFlagConstant, gitCountFlagConstant, gitDivergenceRangeConstant)
	if executionError != nil {
		return 0, 0, executionError
	}

	divergenceFields := strings.Fields(firstOutputLine(executionResult.StandardOutput))
	if len(divergenceFields) != divergenceFieldCountConstant {
		return 0, 0, fmt.Errorf(divergenceParseErrorTemplate, executionResult.StandardOutput)
	}

	aheadCount, aheadParseError := strconv.Atoi(divergenceFields[0])
	if aheadParseError != nil {
		return 0, 0, fmt.Errorf(divergenceParseErrorTemplate, executionResult.StandardOutput)
	}
	behindCount, behindParseError := strconv.Atoi(divergenceFields[1])
	if behindParseError != nil {
		return 0, 0, fmt.Errorf(divergenceParseErrorTemplate, executionResult.StandardOutput)
	}

	return aheadCount, behindCount, nil
}

// IsPathIgnored reports whether the repository's ignore rules cover the
// relative path. Exit code one means the path is not ignored; any other
// failure is reported to the caller.
func (manager *RepositoryManager) IsPathIgnored(executionContext context.Context, repositoryPath string, relativePath string) (bool, error) {
	_, executionError := manager.run(executionContext, repositoryPath, gitCheckIgnoreSubcommandConstant, gitShortQuietFlagConstant, gitNoIndexFlagConstant, relativePath)
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) && commandFailure.Result.ExitCode == notIgnoredExitCodeConstant {
			return false, nil
		}
		return false, executionError
	}
	return true, nil
}

// ListStatusEntries reports the porcelain status lines for the repository in
// the order git produced them.
func (manager *RepositoryManager) ListStatusEntries(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := manager.run(executionContext, repositoryPath, gitStatusSubcommandConstant, gitPorcelainFlagConstant)
	if executionError != nil {
		return nil, executionError
	}

	rawLines := strings.Split(executionResult.StandardOutput, lineBreakConstant)
	statusLines := make([]string, 0, len(rawLines))
	for _, rawLine := range rawLines {
		trimmedLine := strings.TrimRight(rawLine, carriageReturnConstant)
		if len(trimmedLine) == 0 {
			continue
		}
		statusLines = append(statusLines, trimmedLine)
	}
	return statusLines, nil
}

func (manager *RepositoryManager) run(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	}
	return manager.executor.ExecuteGit(executionContext, commandDetails)
}

func firstOutputLine(standardOutput string) string {
	lineBreakIndex := strings.Index(standardOutput, lineBreakConstant)
	if lineBreakIndex >= 0 {
		standardOutput = standardOutput[:lineBreakIndex]
	}
	return strings.TrimSpace(standardOutput)
}
