package scan

// ChangeCode classifies a single file change reported by git.
type ChangeCode string

// Change classifications produced by the status parser.
const (
	ChangeCodeModified  ChangeCode = ChangeCode("modified")
	ChangeCodeAdded     ChangeCode = ChangeCode("added")
	ChangeCodeDeleted   ChangeCode = ChangeCode("deleted")
	ChangeCodeUntracked ChangeCode = ChangeCode("untracked")
	ChangeCodeRenamed   ChangeCode = ChangeCode("renamed")
	ChangeCodeUnknown   ChangeCode = ChangeCode("unknown")
)

// FileChange describes one file's change state within a repository. A file
// with independent index and worktree edits appears twice, once staged and
// once unstaged; an untracked file appears exactly once and is never staged.
type FileChange struct {
	Path   string
	Code   ChangeCode
	Staged bool
}

// ChangeSummary carries parsed file changes alongside per-bucket counts. The
// three counts always sum to the number of changes.
type ChangeSummary struct {
	Changes        []FileChange
	StagedCount    int
	UnstagedCount  int
	UntrackedCount int
}

// RepositoryStatus aggregates everything the scanner learned about one
// repository. Fields describing the remote relationship degrade to their zero
// values when the underlying git queries fail or report nothing.
type RepositoryStatus struct {
	Path           string
	Branch         string
	UpstreamBranch string
	RemoteURL      string
	HasRemote      bool
	IsPushed       bool
	AheadCount     int
	BehindCount    int
	Changes        []FileChange
	StagedCount    int
	UnstagedCount  int
	UntrackedCount int
}

// ScanReport collects repository statuses in discovery order together with
// cross-repository totals.
type ScanReport struct {
	Repositories   []RepositoryStatus
	TotalStaged    int
	TotalUnstaged  int
	TotalUntracked int
}

// CommandOptions captures the configurable parameters for the scan command.
type CommandOptions struct {
	Roots    []string
	BoxWidth int
}
