package scan

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	gitMetadataEntryNameConstant  = ".git"
	hiddenEntryPrefixConstant     = "."
	unreadableDirectoryLogMessage = "skipping unreadable directory"
	directoryLogFieldNameConstant = "path"
)

// FilesystemRepositoryWalker locates git repositories beneath directory roots.
//
// The walker stops at repository boundaries: once a directory carries a .git
// entry it is reported and its children are never visited. Hidden directories
// are skipped, symbolic links are not followed, and unreadable directories are
// logged and passed over. Entries within a directory are visited in name
// order, so discovery order is deterministic for a given tree.
type FilesystemRepositoryWalker struct {
	logger *zap.Logger
}

// NewFilesystemRepositoryWalker constructs a walker that logs skipped
// directories through the provided logger.
func NewFilesystemRepositoryWalker(logger *zap.Logger) *FilesystemRepositoryWalker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilesystemRepositoryWalker{logger: logger}
}

// DiscoverRepositories walks the provided roots and returns repository root
// directories in discovery order.
func (walker *FilesystemRepositoryWalker) DiscoverRepositories(roots []string) ([]string, error) {
	var repositories []string
	seen := make(map[string]struct{})

	for _, root := range roots {
		walker.visitDirectory(root, &repositories, seen)
	}

	return repositories, nil
}

func (walker *FilesystemRepositoryWalker) visitDirectory(directoryPath string, repositories *[]string, seen map[string]struct{}) {
	if walker.isRepositoryRoot(directoryPath) {
		if _, alreadySeen := seen[directoryPath]; !alreadySeen {
			seen[directoryPath] = struct{}{}
			*repositories = append(*repositories, directoryPath)
		}
		return
	}

	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		walker.logger.Debug(unreadableDirectoryLogMessage, zap.String(directoryLogFieldNameConstant, directoryPath), zap.Error(readError))
		return
	}

	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if strings.HasPrefix(entryName, hiddenEntryPrefixConstant) {
			continue
		}
		if !directoryEntry.IsDir() {
			continue
		}
		walker.visitDirectory(filepath.Join(directoryPath, entryName), repositories, seen)
	}
}

func (walker *FilesystemRepositoryWalker) isRepositoryRoot(directoryPath string) bool {
	_, statError := os.Stat(filepath.Join(directoryPath, gitMetadataEntryNameConstant))
	return statError == nil
}
