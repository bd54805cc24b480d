package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildePrefixConstant  = "~"
	forwardSlashConstant = "/"
)

// HomeDirectoryProvider resolves the current user's home directory.
type HomeDirectoryProvider func() (string, error)

// HomeExpander rewrites leading tildes in scan roots to the user's home
// directory. The provider result is cached after the first lookup.
type HomeExpander struct {
	provider    HomeDirectoryProvider
	lookupOnce  sync.Once
	homePath    string
	lookupError error
}

// NewHomeExpander constructs a HomeExpander backed by os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander using the supplied
// provider. A nil provider falls back to os.UserHomeDir.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{provider: provider}
}

// Expand resolves a leading tilde to the user's home directory. Paths without
// the prefix, and every path when the home lookup fails, pass through
// unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, tildePrefixConstant) {
		return candidatePath
	}

	remainder, tildeRecognized := splitTildePrefix(candidatePath)
	if !tildeRecognized {
		return candidatePath
	}

	homePath := expander.homeDirectory()
	if len(homePath) == 0 {
		return candidatePath
	}
	if len(remainder) == 0 {
		return homePath
	}
	return filepath.Join(homePath, remainder)
}

// splitTildePrefix strips a tilde followed by a path separator, reporting
// whether the candidate carried the prefix. A bare tilde yields an empty
// remainder; names that merely start with a tilde are not expanded.
func splitTildePrefix(candidatePath string) (string, bool) {
	if candidatePath == tildePrefixConstant {
		return "", true
	}
	remainder := candidatePath[len(tildePrefixConstant):]
	if strings.HasPrefix(remainder, forwardSlashConstant) || strings.HasPrefix(remainder, string(os.PathSeparator)) {
		return remainder[1:], true
	}
	return "", false
}

func (expander *HomeExpander) homeDirectory() string {
	expander.lookupOnce.Do(func() {
		expander.homePath, expander.lookupError = expander.provider()
	})
	if expander.lookupError != nil {
		return ""
	}
	return expander.homePath
}
