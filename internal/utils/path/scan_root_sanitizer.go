package pathutils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ScanRootSanitizer normalizes the scan roots gathered from configuration
// before repository discovery walks them.
type ScanRootSanitizer struct {
	homeExpander *HomeExpander
}

// NewScanRootSanitizer constructs a ScanRootSanitizer with the default home
// directory lookup.
func NewScanRootSanitizer() *ScanRootSanitizer {
	return NewScanRootSanitizerWithExpander(nil)
}

// NewScanRootSanitizerWithExpander constructs a ScanRootSanitizer using the
// supplied expander. A nil expander falls back to the default lookup.
func NewScanRootSanitizerWithExpander(homeExpander *HomeExpander) *ScanRootSanitizer {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &ScanRootSanitizer{homeExpander: homeExpander}
}

// Sanitize trims and tilde-expands the candidate roots, drops blanks and
// repeats, and removes roots nested inside other candidates so the walker
// never visits the same repository twice. Survivors keep their input order
// and spelling. Sanitize returns nil when nothing survives.
func (sanitizer *ScanRootSanitizer) Sanitize(candidateRoots []string) []string {
	expander := sanitizer.resolveExpander()

	expandedRoots := make([]string, 0, len(candidateRoots))
	for _, candidateRoot := range candidateRoots {
		trimmedRoot := strings.TrimSpace(candidateRoot)
		if len(trimmedRoot) == 0 {
			continue
		}
		expandedRoots = append(expandedRoots, expander.Expand(trimmedRoot))
	}
	if len(expandedRoots) == 0 {
		return nil
	}

	return pruneRedundantRoots(expandedRoots)
}

func (sanitizer *ScanRootSanitizer) resolveExpander() *HomeExpander {
	if sanitizer == nil || sanitizer.homeExpander == nil {
		return NewHomeExpander()
	}
	return sanitizer.homeExpander
}

type comparableRoot struct {
	display    string
	comparison string
}

func pruneRedundantRoots(expandedRoots []string) []string {
	comparableRoots := make([]comparableRoot, 0, len(expandedRoots))
	for _, expandedRoot := range expandedRoots {
		comparableRoots = append(comparableRoots, comparableRoot{
			display:    expandedRoot,
			comparison: comparableRootPath(expandedRoot),
		})
	}

	keptRoots := make([]string, 0, len(comparableRoots))
	for candidateIndex, candidate := range comparableRoots {
		if isRedundantRoot(comparableRoots, candidateIndex, candidate) {
			continue
		}
		keptRoots = append(keptRoots, candidate.display)
	}
	return keptRoots
}

// isRedundantRoot reports whether the candidate duplicates an earlier root or
// lies inside any other root.
func isRedundantRoot(comparableRoots []comparableRoot, candidateIndex int, candidate comparableRoot) bool {
	for otherIndex, other := range comparableRoots {
		if otherIndex == candidateIndex {
			continue
		}
		if other.comparison == candidate.comparison {
			if otherIndex < candidateIndex {
				return true
			}
			continue
		}
		if rootContains(other.comparison, candidate.comparison) {
			return true
		}
	}
	return false
}

// comparableRootPath canonicalizes a root for containment checks without
// touching the value handed back to callers.
func comparableRootPath(rootPath string) string {
	comparablePath, absoluteError := filepath.Abs(rootPath)
	if absoluteError != nil {
		comparablePath = filepath.Clean(rootPath)
	}
	if runtime.GOOS == "windows" {
		comparablePath = strings.ToLower(comparablePath)
	}
	return comparablePath
}

// rootContains reports whether candidate lies strictly inside parent. Both
// arguments must already be canonicalized.
func rootContains(parent string, candidate string) bool {
	if len(candidate) <= len(parent) {
		return false
	}
	if !strings.HasPrefix(candidate, parent) {
		return false
	}
	if parent[len(parent)-1] == os.PathSeparator {
		return true
	}
	return candidate[len(parent)] == os.PathSeparator
}
