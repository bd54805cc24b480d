package scan

const (
	minimumStatusLineLengthConstant = 4
	statusPathOffsetConstant        = 3
	blankStatusMarkerConstant       = byte(' ')
	untrackedStatusMarkerConstant   = byte('?')
	modifiedStatusCharacterConstant = byte('M')
	addedStatusCharacterConstant    = byte('A')
	deletedStatusCharacterConstant  = byte('D')
	renamedStatusCharacterConstant  = byte('R')
)

// IgnorePredicate reports whether a repository-relative path is covered by
// ignore rules and should be excluded from the change set.
type IgnorePredicate func(relativePath string) bool

// StatusParser converts porcelain status lines into structured file changes.
type StatusParser struct{}

// NewStatusParser constructs a StatusParser.
func NewStatusParser() *StatusParser {
	return &StatusParser{}
}

// Parse classifies each status line into staged, unstaged, and untracked file
// changes. Each line carries an index status character, a worktree status
// character, and a path; one line can therefore yield up to two changes. Lines
// whose path satisfies the ignore predicate are dropped entirely. A nil
// predicate keeps every line.
func (parser *StatusParser) Parse(statusLines []string, isIgnored IgnorePredicate) ChangeSummary {
	summary := ChangeSummary{Changes: []FileChange{}}

	for _, statusLine := range statusLines {
		if len(statusLine) < minimumStatusLineLengthConstant {
			continue
		}

		indexStatus := statusLine[0]
		worktreeStatus := statusLine[1]
		relativePath := statusLine[statusPathOffsetConstant:]

		if isIgnored != nil && isIgnored(relativePath) {
			continue
		}

		if indexStatus != blankStatusMarkerConstant && indexStatus != untrackedStatusMarkerConstant {
			summary.Changes = append(summary.Changes, FileChange{
				Path:   relativePath,
				Code:   classifyStatusCharacter(indexStatus),
				Staged: true,
			})
			summary.StagedCount++
		}

		if worktreeStatus != blankStatusMarkerConstant && worktreeStatus != untrackedStatusMarkerConstant {
			summary.Changes = append(summary.Changes, FileChange{
				Path:   relativePath,
				Code:   classifyStatusCharacter(worktreeStatus),
				Staged: false,
			})
			summary.UnstagedCount++
		}

		if indexStatus == untrackedStatusMarkerConstant && worktreeStatus == untrackedStatusMarkerConstant {
			summary.Changes = append(summary.Changes, FileChange{
				Path:   relativePath,
				Code:   ChangeCodeUntracked,
				Staged: false,
			})
			summary.UntrackedCount++
		}
	}

	return summary
}

func classifyStatusCharacter(statusCharacter byte) ChangeCode {
	switch statusCharacter {
	case modifiedStatusCharacterConstant:
		return ChangeCodeModified
	case addedStatusCharacterConstant:
		return ChangeCodeAdded
	case deletedStatusCharacterConstant:
		return ChangeCodeDeleted
	case untrackedStatusMarkerConstant:
		return ChangeCodeUntracked
	case renamedStatusCharacterConstant:
		return ChangeCodeRenamed
	default:
		return ChangeCodeUnknown
	}
}
