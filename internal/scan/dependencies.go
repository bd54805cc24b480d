package scan

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/uncommitted/internal/execshell"
	"github.com/temirov/uncommitted/internal/gitrepo"
)

// RepositoryWalker finds git repositories rooted under the provided paths.
type RepositoryWalker interface {
	DiscoverRepositories(roots []string) ([]string, error)
}

// GitRepositoryManager exposes the repository-level git queries the scan
// aggregation depends on.
type GitRepositoryManager interface {
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	GetUpstreamBranch(executionContext context.Context, repositoryPath string) (string, error)
	HasRemoteTrackingRef(executionContext context.Context, repositoryPath string, remoteName string, branchName string) (bool, error)
	CountAheadBehind(executionContext context.Context, repositoryPath string) (int, int, error)
	IsPathIgnored(executionContext context.Context, repositoryPath string, relativePath string) (bool, error)
	ListStatusEntries(executionContext context.Context, repositoryPath string) ([]string, error)
}

// GitExecutor exposes the subset of shell execution used by the scan command.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ReportPresenter renders scan progress and the assembled report to the user.
type ReportPresenter interface {
	ShowScanStart()
	ShowReport(report ScanReport)
}

// PresenterFactory builds a ReportPresenter bound to the command's output
// writer and the configured frame width.
type PresenterFactory func(outputWriter io.Writer, boxWidth int) ReportPresenter

// ResolveRepositoryWalker returns the provided walker or a filesystem-backed default.
func ResolveRepositoryWalker(existing RepositoryWalker, logger *zap.Logger) RepositoryWalker {
	if existing != nil {
		return existing
	}
	return NewFilesystemRepositoryWalker(logger)
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing GitExecutor, logger *zap.Logger, observer execshell.CommandEventObserver) (GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutorWithObserver(logger, commandRunner, observer)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveGitRepositoryManager returns the provided repository manager or constructs one from the executor.
func ResolveGitRepositoryManager(existing GitRepositoryManager, executor GitExecutor) (GitRepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}
