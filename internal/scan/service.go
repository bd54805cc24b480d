package scan

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultRootPathConstant         = "."
	defaultRemoteNameConstant       = "origin"
	detachedHeadOutputConstant      = "HEAD"
	statusUnavailableLogMessage     = "status listing unavailable"
	repositoryLogFieldNameConstant  = "repository"
	changeCountLogFieldNameConstant = "changes"
	inspectedRepositoryLogMessage   = "inspected repository"
)

// Service coordinates repository discovery, aggregation, and report rendering.
type Service struct {
	walker     RepositoryWalker
	gitManager GitRepositoryManager
	parser     *StatusParser
	presenter  ReportPresenter
	logger     *zap.Logger
}

// NewService constructs a Service using the provided dependencies.
func NewService(walker RepositoryWalker, gitManager GitRepositoryManager, parser *StatusParser, presenter ReportPresenter, logger *zap.Logger) *Service {
	if parser == nil {
		parser = NewStatusParser()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		walker:     walker,
		gitManager: gitManager,
		parser:     parser,
		presenter:  presenter,
		logger:     logger,
	}
}

// Run walks the configured roots, aggregates uncommitted state for every
// discovered repository, and renders the final report. Repositories without
// changes never reach the report.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	roots := options.Roots
	if len(roots) == 0 {
		roots = []string{defaultRootPathConstant}
	}

	service.presenter.ShowScanStart()

	repositories, discoveryError := service.walker.DiscoverRepositories(roots)
	if discoveryError != nil {
		return discoveryError
	}

	report := ScanReport{}
	for _, repositoryPath := range repositories {
		repositoryStatus, reportable := service.inspectRepository(executionContext, repositoryPath)
		if !reportable {
			continue
		}
		report.Repositories = append(report.Repositories, repositoryStatus)
		report.TotalStaged += repositoryStatus.StagedCount
		report.TotalUnstaged += repositoryStatus.UnstagedCount
		report.TotalUntracked += repositoryStatus.UntrackedCount
	}

	service.presenter.ShowReport(report)
	return nil
}

// inspectRepository assembles the status record for one repository. Every git
// query degrades independently: a failing branch, remote, or divergence lookup
// leaves the corresponding field at its zero value rather than aborting the
// repository.
func (service *Service) inspectRepository(executionContext context.Context, repositoryPath string) (RepositoryStatus, bool) {
	repositoryStatus := RepositoryStatus{Path: repositoryPath}

	branchName, branchError := service.gitManager.GetCurrentBranch(executionContext, repositoryPath)
	if branchError == nil {
		repositoryStatus.Branch = sanitizeBranchName(branchName)
	}

	remoteURL, remoteError := service.gitManager.GetRemoteURL(executionContext, repositoryPath, defaultRemoteNameConstant)
	if remoteError == nil && len(remoteURL) > 0 {
		repositoryStatus.RemoteURL = remoteURL
		repositoryStatus.HasRemote = true
	}

	upstreamBranch, upstreamError := service.gitManager.GetUpstreamBranch(executionContext, repositoryPath)
	if upstreamError == nil && len(upstreamBranch) > 0 {
		repositoryStatus.UpstreamBranch = upstreamBranch
		repositoryStatus.IsPushed = true
	}

	// A branch with no upstream may still exist on the remote; the cached
	// remote-tracking ref answers that without touching the network.
	if !repositoryStatus.IsPushed && repositoryStatus.HasRemote && len(repositoryStatus.Branch) > 0 {
		trackingRefExists, trackingRefError := service.gitManager.HasRemoteTrackingRef(executionContext, repositoryPath, defaultRemoteNameConstant, repositoryStatus.Branch)
		if trackingRefError == nil && trackingRefExists {
			repositoryStatus.IsPushed = true
		}
	}

	if len(repositoryStatus.UpstreamBranch) > 0 {
		aheadCount, behindCount, divergenceError := service.gitManager.CountAheadBehind(executionContext, repositoryPath)
		if divergenceError == nil {
			repositoryStatus.AheadCount = aheadCount
			repositoryStatus.BehindCount = behindCount
		}
	}

	statusLines, statusError := service.gitManager.ListStatusEntries(executionContext, repositoryPath)
	if statusError != nil {
		service.logger.Debug(statusUnavailableLogMessage, zap.String(repositoryLogFieldNameConstant, repositoryPath), zap.Error(statusError))
		return RepositoryStatus{}, false
	}

	changeSummary := service.parser.Parse(statusLines, service.ignorePredicate(executionContext, repositoryPath))
	if len(changeSummary.Changes) == 0 {
		return RepositoryStatus{}, false
	}

	repositoryStatus.Changes = changeSummary.Changes
	repositoryStatus.StagedCount = changeSummary.StagedCount
	repositoryStatus.UnstagedCount = changeSummary.UnstagedCount
	repositoryStatus.UntrackedCount = changeSummary.UntrackedCount

	service.logger.Debug(inspectedRepositoryLogMessage,
		zap.String(repositoryLogFieldNameConstant, repositoryPath),
		zap.Int(changeCountLogFieldNameConstant, len(repositoryStatus.Changes)),
	)

	return repositoryStatus, true
}

// ignorePredicate binds the per-path ignore check to one repository. Ignore
// probe failures keep the path visible rather than hiding a reported change.
func (service *Service) ignorePredicate(executionContext context.Context, repositoryPath string) IgnorePredicate {
	return func(relativePath string) bool {
		ignored, ignoreError := service.gitManager.IsPathIgnored(executionContext, repositoryPath, relativePath)
		if ignoreError != nil {
			return false
		}
		return ignored
	}
}

func sanitizeBranchName(branchName string) string {
	trimmedName := strings.TrimSpace(branchName)
	if trimmedName == detachedHeadOutputConstant {
		return ""
	}
	return trimmedName
}
